package interview

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"interview-ease/internal/config"
	"interview-ease/internal/domain"
	"interview-ease/internal/service/metrics"
	"interview-ease/internal/service/selector"
	"interview-ease/internal/store"
)

// MockScorer is a mock implementation of AnswerScorer
type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Score(ctx context.Context, candidate string, references []string) (float64, bool, error) {
	args := m.Called(ctx, candidate, references)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

// fixedScorer scores every answer with the same similarity.
type fixedScorer struct {
	similarity float64
	isCorrect  bool
}

func (f fixedScorer) Score(ctx context.Context, candidate string, references []string) (float64, bool, error) {
	return f.similarity, f.isCorrect, nil
}

type stubBank struct {
	questions []domain.Question
}

func (b stubBank) All() []domain.Question { return b.questions }
func (b stubBank) ByCategory(category string) []domain.Question {
	var out []domain.Question
	for _, q := range b.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}
func (b stubBank) Categories() []string {
	var cats []string
	seen := make(map[string]struct{})
	for _, q := range b.questions {
		if _, ok := seen[q.Category]; !ok {
			seen[q.Category] = struct{}{}
			cats = append(cats, q.Category)
		}
	}
	return cats
}
func (b stubBank) ReferenceCorpus() []string { return nil }

func testQuestions(category string, n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, domain.Question{
			ID:               fmt.Sprintf("%s-%d", category, i),
			Prompt:           fmt.Sprintf("%s question %d", category, i),
			ReferenceAnswers: []string{"r1", "r2", "r3", "r4"},
			Category:         category,
			Difficulty:       "easy",
		})
	}
	return questions
}

func newTestService(t *testing.T, scorer AnswerScorer) *Service {
	t.Helper()
	sessions := store.NewMemorySessionStore(0)
	t.Cleanup(sessions.Close)
	facial := store.NewMemoryFacialStore(0)
	t.Cleanup(facial.Close)
	bank := stubBank{questions: testQuestions("Algorithms", 3)}
	return NewService(bank, selector.New(42), scorer, sessions, facial, config.InterviewConfig{QuestionsPerCategory: 3}, metrics.New())
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a session with selected questions", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{similarity: 0.9, isCorrect: true})

		resp, err := svc.Create(ctx, []string{"Algorithms"}, 3)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.SessionID)
		assert.Equal(t, 3, resp.TotalQuestions)
		require.NotNil(t, resp.FirstQuestion)
		assert.Equal(t, 0, resp.FirstQuestion.Index)
		assert.Len(t, resp.Questions, 3)
	})

	t.Run("session ids are unique", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{})
		seen := make(map[string]struct{})
		for i := 0; i < 50; i++ {
			resp, err := svc.Create(ctx, []string{"Algorithms"}, 1)
			require.NoError(t, err)
			_, dup := seen[resp.SessionID]
			assert.False(t, dup, "duplicate session id %s", resp.SessionID)
			seen[resp.SessionID] = struct{}{}
		}
	})

	t.Run("omitted per-category count falls back to the configured default", func(t *testing.T) {
		sessions := store.NewMemorySessionStore(0)
		t.Cleanup(sessions.Close)
		facial := store.NewMemoryFacialStore(0)
		t.Cleanup(facial.Close)
		bank := stubBank{questions: testQuestions("Algorithms", 3)}
		svc := NewService(bank, selector.New(42), fixedScorer{}, sessions, facial, config.InterviewConfig{QuestionsPerCategory: 2}, metrics.New())

		resp, err := svc.Create(ctx, []string{"Algorithms"}, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.TotalQuestions)
		assert.Len(t, resp.Questions, 2)
	})

	t.Run("explicit per-category count overrides the default", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{})

		resp, err := svc.Create(ctx, []string{"Algorithms"}, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, resp.TotalQuestions)
	})

	t.Run("no categories is invalid input", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{})
		_, err := svc.Create(ctx, nil, 3)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	})

	t.Run("no matching questions creates no session", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{})
		_, err := svc.Create(ctx, []string{"Quantum Computing"}, 3)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeNoQuestionsAvailable, domainErr.Code)
	})
}

func TestGetQuestion(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixedScorer{})
	created, err := svc.Create(ctx, []string{"Algorithms"}, 3)
	require.NoError(t, err)

	t.Run("returns the question without reference answers", func(t *testing.T) {
		resp, err := svc.GetQuestion(ctx, created.SessionID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Question.Index)
		assert.Equal(t, 2, resp.CurrentQuestion)
		assert.Equal(t, 3, resp.TotalQuestions)
		assert.NotEmpty(t, resp.Question.Question)
	})

	t.Run("index past the end is out of range", func(t *testing.T) {
		_, err := svc.GetQuestion(ctx, created.SessionID, 3)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeOutOfRange, domainErr.Code)
	})

	t.Run("negative index is out of range", func(t *testing.T) {
		_, err := svc.GetQuestion(ctx, created.SessionID, -1)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeOutOfRange, domainErr.Code)
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		_, err := svc.GetQuestion(ctx, "missing", 0)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)
	})
}

func TestSubmitAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("in-order submissions accumulate the score", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{similarity: 0.8, isCorrect: true})
		created, err := svc.Create(ctx, []string{"Algorithms"}, 3)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			resp, err := svc.SubmitAnswer(ctx, created.SessionID, i, "an answer")
			require.NoError(t, err)
			assert.InDelta(t, 0.8, resp.Score, 1e-9)
			assert.True(t, resp.IsCorrect)
			// running total equals the sum of all recorded similarities
			assert.InDelta(t, 0.8*float64(i+1), resp.CurrentScore, 1e-9)

			if i < 2 {
				assert.False(t, resp.IsComplete)
				require.NotNil(t, resp.NextQuestionIndex)
				assert.Equal(t, i+1, *resp.NextQuestionIndex)
			} else {
				assert.True(t, resp.IsComplete)
				assert.Nil(t, resp.NextQuestionIndex)
			}
		}
	})

	t.Run("out-of-order submission conflicts and changes nothing", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{similarity: 0.8, isCorrect: true})
		created, err := svc.Create(ctx, []string{"Algorithms"}, 3)
		require.NoError(t, err)

		_, err = svc.SubmitAnswer(ctx, created.SessionID, 1, "skipping ahead")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeConflict, domainErr.Code)

		results, err := svc.GetResults(ctx, created.SessionID)
		require.NoError(t, err)
		assert.Equal(t, 0, results.AnsweredCount)
		assert.Equal(t, 0.0, results.Score)
	})

	t.Run("repeated index conflicts", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{similarity: 0.8, isCorrect: true})
		created, err := svc.Create(ctx, []string{"Algorithms"}, 3)
		require.NoError(t, err)

		_, err = svc.SubmitAnswer(ctx, created.SessionID, 0, "first")
		require.NoError(t, err)

		_, err = svc.SubmitAnswer(ctx, created.SessionID, 0, "again")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeConflict, domainErr.Code)
	})

	t.Run("index out of bounds", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{})
		created, err := svc.Create(ctx, []string{"Algorithms"}, 3)
		require.NoError(t, err)

		_, err = svc.SubmitAnswer(ctx, created.SessionID, 7, "answer")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeOutOfRange, domainErr.Code)
	})

	t.Run("completed session rejects further answers", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{similarity: 0.5})
		created, err := svc.Create(ctx, []string{"Algorithms"}, 3)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			_, err := svc.SubmitAnswer(ctx, created.SessionID, i, "answer")
			require.NoError(t, err)
		}

		_, err = svc.SubmitAnswer(ctx, created.SessionID, 2, "late")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeConflict, domainErr.Code)
	})

	t.Run("scoring failure leaves the session retryable", func(t *testing.T) {
		scorer := new(MockScorer)
		scorer.On("Score", mock.Anything, "flaky", mock.Anything).
			Return(0.0, false, domain.NewEmbeddingServiceError(assert.AnError)).Once()
		scorer.On("Score", mock.Anything, "flaky", mock.Anything).
			Return(0.9, true, nil).Once()

		svc := newTestService(t, scorer)
		created, err := svc.Create(ctx, []string{"Algorithms"}, 3)
		require.NoError(t, err)

		_, err = svc.SubmitAnswer(ctx, created.SessionID, 0, "flaky")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeEmbeddingService, domainErr.Code)

		// the failed call recorded nothing, so the same index is still next
		resp, err := svc.SubmitAnswer(ctx, created.SessionID, 0, "flaky")
		require.NoError(t, err)
		assert.InDelta(t, 0.9, resp.Score, 1e-9)
		scorer.AssertExpectations(t)
	})

	t.Run("concurrent submissions record exactly one answer per index", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{similarity: 0.6, isCorrect: false})
		created, err := svc.Create(ctx, []string{"Algorithms"}, 3)
		require.NoError(t, err)

		var wg sync.WaitGroup
		succeeded := make(chan struct{}, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := svc.SubmitAnswer(ctx, created.SessionID, 0, "racing"); err == nil {
					succeeded <- struct{}{}
				}
			}()
		}
		wg.Wait()
		close(succeeded)

		count := 0
		for range succeeded {
			count++
		}
		assert.Equal(t, 1, count)

		results, err := svc.GetResults(ctx, created.SessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, results.AnsweredCount)
	})
}

func TestGetResults(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown session is not found", func(t *testing.T) {
		svc := newTestService(t, fixedScorer{})
		_, err := svc.GetResults(ctx, "missing")

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)
	})

	t.Run("results reflect recorded answers and facial data", func(t *testing.T) {
		sessions := store.NewMemorySessionStore(0)
		t.Cleanup(sessions.Close)
		facialStore := store.NewMemoryFacialStore(0)
		t.Cleanup(facialStore.Close)
		bank := stubBank{questions: testQuestions("Algorithms", 2)}
		svc := NewService(bank, selector.New(42), fixedScorer{similarity: 0.75, isCorrect: true}, sessions, facialStore, config.InterviewConfig{QuestionsPerCategory: 3}, metrics.New())

		created, err := svc.Create(ctx, []string{"Algorithms"}, 2)
		require.NoError(t, err)
		for i := 0; i < 2; i++ {
			_, err := svc.SubmitAnswer(ctx, created.SessionID, i, "answer")
			require.NoError(t, err)
		}

		facialSession := domain.NewFacialSession(created.SessionID)
		facialSession.FramesAnalyzed = 4
		facialSession.AttentionScores = []float64{0.5, 0.7, 0.9, 0.7}
		facialSession.Emotions = []string{"neutral", "focused", "focused", "neutral"}
		require.NoError(t, facialStore.Create(ctx, facialSession))

		results, err := svc.GetResults(ctx, created.SessionID)
		require.NoError(t, err)
		assert.True(t, results.IsComplete)
		assert.Equal(t, "completed", results.Status)
		assert.InDelta(t, 7.5, results.Score, 1e-9)
		assert.True(t, results.FacialAvailable)
		require.NotNil(t, results.Facial)
		assert.Equal(t, 4, results.Facial.TotalFrames)
	})
}

func TestSubmitAnswerTimestamps(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	original := timeNow
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = original }()

	ctx := context.Background()
	svc := newTestService(t, fixedScorer{similarity: 1, isCorrect: true})
	created, err := svc.Create(ctx, []string{"Algorithms"}, 1)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, created.SessionID, 0, "answer")
	require.NoError(t, err)

	results, err := svc.GetResults(ctx, created.SessionID)
	require.NoError(t, err)
	require.Len(t, results.Questions, 1)
}
