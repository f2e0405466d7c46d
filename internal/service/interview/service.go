// Package interview owns the lifecycle of interview sessions: question
// assignment, strict in-order answer submission and scoring, and results.
package interview

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"interview-ease/internal/config"
	"interview-ease/internal/domain"
	"interview-ease/internal/dto"
	"interview-ease/internal/logger"
	"interview-ease/internal/service/metrics"
	"interview-ease/internal/service/results"
	"interview-ease/internal/service/selector"
	"interview-ease/internal/util"

	"go.uber.org/zap"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// lockStripes bounds the lock table; sessions hashing to the same stripe
// share a mutex, which is harmless for correctness.
const lockStripes = 64

// AnswerScorer scores a candidate answer against reference answers.
type AnswerScorer interface {
	Score(ctx context.Context, candidate string, references []string) (similarity float64, isCorrect bool, err error)
}

// Service implements the interview session manager.
//
// Submissions to one session are serialized through a striped per-session
// lock so the strict-ordering check cannot race. Different sessions proceed
// concurrently. Sessions are ephemeral: a process restart (memory backend)
// or TTL expiry (redis backend) discards them.
type Service struct {
	bank               domain.QuestionRepository
	selector           *selector.Selector
	scorer             AnswerScorer
	store              domain.SessionStore
	facial             domain.FacialStore
	metrics            *metrics.Metrics
	defaultPerCategory int
	locks              [lockStripes]sync.Mutex
}

// NewService creates an interview service. The facial store may be nil when
// frame analysis is not deployed; results then omit the facial block.
func NewService(
	bank domain.QuestionRepository,
	sel *selector.Selector,
	scorer AnswerScorer,
	store domain.SessionStore,
	facial domain.FacialStore,
	cfg config.InterviewConfig,
	m *metrics.Metrics,
) *Service {
	return &Service{
		bank:               bank,
		selector:           sel,
		scorer:             scorer,
		store:              store,
		facial:             facial,
		metrics:            m,
		defaultPerCategory: cfg.QuestionsPerCategory,
	}
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}

// Create selects questions for the given categories and opens a session.
// A perCategory of zero or less falls back to the configured default.
// Fails with NO_QUESTIONS_AVAILABLE when no category matches any question;
// no session is created in that case.
func (s *Service) Create(ctx context.Context, categories []string, perCategory int) (*dto.StartInterviewResponse, error) {
	if len(categories) == 0 {
		return nil, domain.NewInvalidInputError("at least one category is required")
	}
	if perCategory < 1 {
		perCategory = s.defaultPerCategory
	}

	questions, err := s.selector.Select(categories, s.bank.All(), perCategory)
	if err != nil {
		return nil, err
	}

	session := domain.NewSession(util.NewULID(), questions)
	if err := s.store.Create(ctx, session); err != nil {
		return nil, domain.NewInternalError("failed to persist session", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementInterviewsStarted()
	}
	logger.Get().Info("Interview session created",
		zap.String("sessionID", session.ID),
		zap.Int("totalQuestions", len(questions)),
		zap.Strings("categories", categories))

	views := questionViews(questions)
	return &dto.StartInterviewResponse{
		SessionID:      session.ID,
		TotalQuestions: len(questions),
		FirstQuestion:  &views[0],
		Questions:      views,
	}, nil
}

// GetQuestion returns the question at index for an existing session.
func (s *Service) GetQuestion(ctx context.Context, sessionID string, index int) (*dto.GetQuestionResponse, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(session.Questions) {
		return nil, domain.NewOutOfRangeError("question_index", index, 0, len(session.Questions)-1)
	}

	view := questionView(session.Questions[index], index)
	return &dto.GetQuestionResponse{
		Question:        view,
		CurrentQuestion: index + 1,
		TotalQuestions:  len(session.Questions),
	}, nil
}

// SubmitAnswer scores and records the answer for the question at index.
//
// Submission is valid only while the session is active and only at
// index == len(answers): answers cannot be skipped, repeated or reordered.
// Scoring failures leave the session untouched so the caller can retry the
// same index; an answer is recorded atomically or not at all.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID string, index int, answer string) (*dto.SubmitAnswerResponse, error) {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != domain.SessionActive {
		return nil, domain.NewConflictError("session is already completed")
	}
	if index < 0 || index >= len(session.Questions) {
		return nil, domain.NewOutOfRangeError("question_index", index, 0, len(session.Questions)-1)
	}
	if index != len(session.Answers) {
		return nil, domain.NewConflictError("answers must be submitted in question order")
	}

	question := session.Questions[index]
	similarity, isCorrect, err := s.scorer.Score(ctx, answer, question.ReferenceAnswers)
	if err != nil {
		// Not recorded: the session stays at the prior index and a retry of
		// the same index is valid. A failed scoring call must never count
		// as a zero score.
		if s.metrics != nil {
			s.metrics.IncrementScoringFailures()
		}
		logger.Get().Error("Answer scoring failed",
			zap.Error(err),
			zap.String("sessionID", sessionID),
			zap.Int("index", index))
		return nil, err
	}

	session.Answers = append(session.Answers, domain.AnswerRecord{
		Question:   question.Prompt,
		Category:   question.Category,
		UserAnswer: answer,
		Similarity: similarity,
		IsCorrect:  isCorrect,
		AnsweredAt: timeNow(),
	})
	session.TotalScore += similarity
	if session.IsComplete() {
		session.Status = domain.SessionCompleted
	}

	if err := s.store.Update(ctx, session); err != nil {
		return nil, domain.NewInternalError("failed to persist session", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementAnswersScored()
		if session.Status == domain.SessionCompleted {
			s.metrics.IncrementInterviewsCompleted()
		}
	}

	resp := &dto.SubmitAnswerResponse{
		Score:        similarity,
		IsCorrect:    isCorrect,
		CurrentScore: session.TotalScore,
		IsComplete:   session.Status == domain.SessionCompleted,
	}
	if !resp.IsComplete {
		next := index + 1
		resp.NextQuestionIndex = &next
	}
	return resp, nil
}

// GetResults summarizes the session. Valid in both states: partial results
// are returned while the session is active and are explicitly marked
// non-final. Never mutates the session.
func (s *Service) GetResults(ctx context.Context, sessionID string) (*dto.InterviewResults, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var facial *domain.FacialSession
	if s.facial != nil {
		// Facial data is optional; a store failure degrades to "absent".
		facial, err = s.facial.Get(ctx, sessionID)
		if err != nil {
			logger.Get().Warn("Failed to load facial session for results",
				zap.Error(err), zap.String("sessionID", sessionID))
			facial = nil
		}
	}

	return results.Summarize(session, facial), nil
}

func (s *Service) getSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.NewInvalidInputError("session id is required")
	}
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load session", err)
	}
	if session == nil {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return session, nil
}

func questionViews(questions []domain.Question) []dto.QuestionView {
	views := make([]dto.QuestionView, len(questions))
	for i, q := range questions {
		views[i] = questionView(q, i)
	}
	return views
}

func questionView(q domain.Question, index int) dto.QuestionView {
	return dto.QuestionView{
		Index:      index,
		Question:   q.Prompt,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}
