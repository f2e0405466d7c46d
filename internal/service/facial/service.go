// Package facial records per-session webcam frame observations. The core
// never computes observations itself; it stores what the frame analyzer
// reports, bounded so long interviews cannot grow memory without limit.
package facial

import (
	"context"
	"time"

	"interview-ease/internal/config"
	"interview-ease/internal/domain"
	"interview-ease/internal/dto"
	"interview-ease/internal/logger"
	"interview-ease/internal/service/metrics"

	"go.uber.org/zap"
)

// Service manages facial observation sessions keyed by interview session id.
type Service struct {
	store    domain.FacialStore
	analyzer domain.FrameAnalyzer
	cfg      config.FacialConfig
	metrics  *metrics.Metrics
}

// NewService creates a facial observation service.
func NewService(store domain.FacialStore, analyzer domain.FrameAnalyzer, cfg config.FacialConfig, m *metrics.Metrics) *Service {
	return &Service{store: store, analyzer: analyzer, cfg: cfg, metrics: m}
}

// Start opens (or restarts) the facial session for an interview.
func (s *Service) Start(ctx context.Context, sessionID string) (*dto.StartFacialResponse, error) {
	if sessionID == "" {
		return nil, domain.NewInvalidInputError("session id is required")
	}
	session := domain.NewFacialSession(sessionID)
	if err := s.store.Create(ctx, session); err != nil {
		return nil, domain.NewInternalError("failed to persist facial session", err)
	}
	logger.Get().Info("Facial session started", zap.String("sessionID", sessionID))
	return &dto.StartFacialResponse{SessionID: sessionID, Status: "active"}, nil
}

// ProcessFrame analyzes one frame and appends the observation. A missing
// facial session is created on the fly so frames arriving before an
// explicit Start are not lost.
func (s *Service) ProcessFrame(ctx context.Context, sessionID string, frame []byte) (*dto.FrameResponse, error) {
	if sessionID == "" {
		return nil, domain.NewInvalidInputError("session id is required")
	}
	if len(frame) == 0 {
		return nil, domain.NewInvalidInputError("frame data is required")
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load facial session", err)
	}
	if session == nil {
		session = domain.NewFacialSession(sessionID)
		if err := s.store.Create(ctx, session); err != nil {
			return nil, domain.NewInternalError("failed to persist facial session", err)
		}
	}

	obs, err := s.analyzer.Analyze(ctx, frame)
	if err != nil {
		return nil, domain.NewInvalidInputError("could not analyze frame: " + err.Error())
	}

	var alert *domain.Alert
	switch {
	case obs.FaceCount > 1:
		alert = &domain.Alert{
			Type:      "multiple_faces",
			Message:   "Multiple faces detected",
			Timestamp: time.Now(),
		}
	case obs.FaceCount == 0:
		alert = &domain.Alert{
			Type:      "no_face",
			Message:   "No face detected",
			Timestamp: time.Now(),
		}
	}

	session.FramesAnalyzed++
	session.AttentionScores = appendBounded(session.AttentionScores, obs.Attention, s.maxAttention())
	session.Emotions = appendBounded(session.Emotions, obs.Emotion, s.maxEmotions())
	if alert != nil {
		// Newest alerts first, oldest dropped past the cap.
		session.Alerts = append([]domain.Alert{*alert}, session.Alerts...)
		if len(session.Alerts) > s.maxAlerts() {
			session.Alerts = session.Alerts[:s.maxAlerts()]
		}
	}

	if err := s.store.Update(ctx, session); err != nil {
		return nil, domain.NewInternalError("failed to persist facial session", err)
	}
	if s.metrics != nil {
		s.metrics.IncrementFramesAnalyzed()
	}

	resp := &dto.FrameResponse{
		FramesProcessed: session.FramesAnalyzed,
		AttentionScore:  obs.Attention,
		Emotion:         obs.Emotion,
		FaceCount:       obs.FaceCount,
	}
	if alert != nil {
		resp.Alert = &dto.AlertView{Type: alert.Type, Message: alert.Message, Timestamp: alert.Timestamp}
	}
	return resp, nil
}

// Data returns the polling view of a facial session.
func (s *Service) Data(ctx context.Context, sessionID string) (*dto.FacialStatus, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	recent := make([]dto.AlertView, 0, 5)
	for i, alert := range session.Alerts {
		if i == 5 {
			break
		}
		recent = append(recent, dto.AlertView{Type: alert.Type, Message: alert.Message, Timestamp: alert.Timestamp})
	}

	status := &dto.FacialStatus{
		SessionID:      sessionID,
		IsActive:       session.Active,
		FramesAnalyzed: session.FramesAnalyzed,
		RecentAlerts:   recent,
	}
	if n := len(session.AttentionScores); n > 0 {
		status.CurrentAttention = session.AttentionScores[n-1]
	}
	if n := len(session.Emotions); n > 0 {
		status.CurrentEmotion = session.Emotions[n-1]
	}
	return status, nil
}

// Stop deactivates the facial session and returns its summary.
func (s *Service) Stop(ctx context.Context, sessionID string) (*dto.FacialSummary, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Active = false
	if err := s.store.Update(ctx, session); err != nil {
		return nil, domain.NewInternalError("failed to persist facial session", err)
	}

	var attentionSum float64
	for _, a := range session.AttentionScores {
		attentionSum += a
	}
	summary := &dto.FacialSummary{
		FramesAnalyzed: session.FramesAnalyzed,
		AlertsCount:    len(session.Alerts),
	}
	if n := len(session.AttentionScores); n > 0 {
		summary.AvgAttention = attentionSum / float64(n)
	}
	if n := len(session.Emotions); n > 0 {
		summary.LastEmotion = session.Emotions[n-1]
	}
	logger.Get().Info("Facial session stopped",
		zap.String("sessionID", sessionID),
		zap.Int("framesAnalyzed", session.FramesAnalyzed))
	return summary, nil
}

func (s *Service) getSession(ctx context.Context, sessionID string) (*domain.FacialSession, error) {
	if sessionID == "" {
		return nil, domain.NewInvalidInputError("session id is required")
	}
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load facial session", err)
	}
	if session == nil {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return session, nil
}

func (s *Service) maxAttention() int {
	if s.cfg.MaxAttentionScores > 0 {
		return s.cfg.MaxAttentionScores
	}
	return 100
}

func (s *Service) maxEmotions() int {
	if s.cfg.MaxEmotions > 0 {
		return s.cfg.MaxEmotions
	}
	return 200
}

func (s *Service) maxAlerts() int {
	if s.cfg.MaxAlerts > 0 {
		return s.cfg.MaxAlerts
	}
	return 20
}

func appendBounded[T any](slice []T, value T, max int) []T {
	slice = append(slice, value)
	if len(slice) > max {
		slice = slice[len(slice)-max:]
	}
	return slice
}
