package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion() Question {
	return Question{
		ID:               "q1",
		Prompt:           "What is a stack?",
		ReferenceAnswers: []string{"a", "b", "c", "d"},
		Category:         "Data Structures",
		Difficulty:       "easy",
	}
}

func TestQuestionValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		q := validQuestion()
		assert.NoError(t, q.Validate())
	})

	t.Run("missing prompt", func(t *testing.T) {
		q := validQuestion()
		q.Prompt = ""
		assert.Error(t, q.Validate())
	})

	t.Run("wrong reference answer count", func(t *testing.T) {
		q := validQuestion()
		q.ReferenceAnswers = q.ReferenceAnswers[:3]
		assert.Error(t, q.Validate())
	})

	t.Run("empty reference answer", func(t *testing.T) {
		q := validQuestion()
		q.ReferenceAnswers[2] = ""
		assert.Error(t, q.Validate())
	})
}

func TestSessionLifecycle(t *testing.T) {
	session := NewSession("s1", []Question{validQuestion(), validQuestion()})

	assert.Equal(t, SessionActive, session.Status)
	assert.Equal(t, 0, session.AnsweredCount())
	assert.False(t, session.IsComplete())

	session.Answers = append(session.Answers, AnswerRecord{Similarity: 0.9})
	assert.Equal(t, 1, session.AnsweredCount())
	assert.False(t, session.IsComplete())

	session.Answers = append(session.Answers, AnswerRecord{Similarity: 0.4})
	assert.True(t, session.IsComplete())
}

func TestSessionClone(t *testing.T) {
	session := NewSession("s1", []Question{validQuestion()})
	session.Answers = append(session.Answers, AnswerRecord{UserAnswer: "original"})

	clone := session.Clone()
	clone.Answers[0].UserAnswer = "mutated"
	clone.Questions[0].Prompt = "mutated"
	clone.TotalScore = 42

	assert.Equal(t, "original", session.Answers[0].UserAnswer)
	assert.Equal(t, "What is a stack?", session.Questions[0].Prompt)
	assert.Equal(t, 0.0, session.TotalScore)
}

func TestDomainError(t *testing.T) {
	t.Run("unwraps its cause", func(t *testing.T) {
		cause := errors.New("socket closed")
		err := NewEmbeddingServiceError(cause)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, CodeEmbeddingService, err.Code)
	})

	t.Run("error string includes the cause", func(t *testing.T) {
		err := NewInternalError("failed to persist", errors.New("disk full"))
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("out of range carries context", func(t *testing.T) {
		err := NewOutOfRangeError("question_index", 5, 0, 2)
		require.NotNil(t, err.Context)
		assert.Equal(t, 5, err.Context["value"])
		assert.Contains(t, err.Message, "question_index")
	})

	t.Run("works with errors.As through wrapping", func(t *testing.T) {
		wrapped := NewInternalError("outer", NewConflictError("inner"))
		var domainErr *DomainError
		require.ErrorAs(t, wrapped, &domainErr)
		assert.Equal(t, CodeInternal, domainErr.Code)
	})
}
