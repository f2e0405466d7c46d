package domain

import (
	"context"
	"time"
)

// FrameObservation is the fixed-shape result of analyzing one webcam frame.
type FrameObservation struct {
	FaceCount  int     `json:"face_count"`
	Attention  float64 `json:"attention_score"`
	Emotion    string  `json:"emotion"`
	Brightness float64 `json:"brightness"`
}

// FrameAnalyzer produces an observation for a single encoded image frame.
// Implementations are external collaborators; the session core only records
// their output.
type FrameAnalyzer interface {
	Analyze(ctx context.Context, frame []byte) (FrameObservation, error)
}

// Alert flags a notable condition seen while analyzing frames.
type Alert struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// FacialSession holds the bounded observation time series recorded during an
// interview. It shares its identifier with the interview session.
type FacialSession struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	Active          bool      `json:"active"`
	FramesAnalyzed  int       `json:"frames_analyzed"`
	AttentionScores []float64 `json:"attention_scores"`
	Emotions        []string  `json:"emotions"`
	Alerts          []Alert   `json:"alerts"`
}

// NewFacialSession creates an active facial session.
func NewFacialSession(id string) *FacialSession {
	return &FacialSession{
		ID:              id,
		StartedAt:       time.Now(),
		Active:          true,
		AttentionScores: []float64{},
		Emotions:        []string{},
		Alerts:          []Alert{},
	}
}

// Clone returns a deep copy of the facial session.
func (f *FacialSession) Clone() *FacialSession {
	clone := *f
	clone.AttentionScores = make([]float64, len(f.AttentionScores))
	copy(clone.AttentionScores, f.AttentionScores)
	clone.Emotions = make([]string, len(f.Emotions))
	copy(clone.Emotions, f.Emotions)
	clone.Alerts = make([]Alert, len(f.Alerts))
	copy(clone.Alerts, f.Alerts)
	return &clone
}
