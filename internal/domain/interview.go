package domain

import (
	"time"
)

// ReferenceAnswerCount is the number of reference answers every question carries.
const ReferenceAnswerCount = 4

// Question represents a single interview question loaded from the question bank.
// Questions are immutable once loaded.
type Question struct {
	ID               string   `json:"id"`
	Prompt           string   `json:"prompt"`
	ReferenceAnswers []string `json:"reference_answers"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.Prompt == "" {
		return NewInvalidInputError("question prompt is required")
	}
	if len(q.ReferenceAnswers) != ReferenceAnswerCount {
		return NewInvalidInputError("question must have exactly four reference answers")
	}
	for _, ref := range q.ReferenceAnswers {
		if ref == "" {
			return NewInvalidInputError("reference answers must not be empty")
		}
	}
	return nil
}

// AnswerRecord is one scored answer inside a session. Immutable once appended.
type AnswerRecord struct {
	Question   string    `json:"question"`
	Category   string    `json:"category"`
	UserAnswer string    `json:"user_answer"`
	Similarity float64   `json:"similarity"`
	IsCorrect  bool      `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

// SessionStatus is the lifecycle state of an interview session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// Session is one candidate's interview attempt. The question list is fixed at
// creation; answers grow by exactly one per submission, in question order.
// Invariant: len(Answers) <= len(Questions) and Answers[i] answers Questions[i].
type Session struct {
	ID         string        `json:"id"`
	Questions  []Question    `json:"questions"`
	Answers    []AnswerRecord `json:"answers"`
	TotalScore float64       `json:"total_score"`
	Status     SessionStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// NewSession creates an active session over the given question list.
func NewSession(id string, questions []Question) *Session {
	return &Session{
		ID:        id,
		Questions: questions,
		Answers:   []AnswerRecord{},
		Status:    SessionActive,
		CreatedAt: time.Now(),
	}
}

// AnsweredCount returns how many answers have been recorded so far.
func (s *Session) AnsweredCount() int {
	return len(s.Answers)
}

// IsComplete reports whether every question has been answered.
func (s *Session) IsComplete() bool {
	return len(s.Answers) == len(s.Questions)
}

// Clone returns a deep copy of the session so callers can mutate it safely
// before persisting it back through a SessionStore.
func (s *Session) Clone() *Session {
	clone := *s
	clone.Questions = make([]Question, len(s.Questions))
	copy(clone.Questions, s.Questions)
	clone.Answers = make([]AnswerRecord, len(s.Answers))
	copy(clone.Answers, s.Answers)
	return &clone
}
