package dto

import "time"

// AlertView is an alert surfaced while analyzing frames.
type AlertView struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// EmotionCount is one slice of the emotion distribution.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

// FacialData is the facial block embedded in interview results.
type FacialData struct {
	AttentionScores []float64      `json:"attention_scores"`
	AvgAttention    float64        `json:"avg_attention"`
	DominantEmotion string         `json:"dominant_emotion"`
	Emotions        []EmotionCount `json:"emotions"`
	Alerts          []AlertView    `json:"alerts"`
	TotalFrames     int            `json:"total_frames"`
}

// StartFacialResponse acknowledges a started facial session.
type StartFacialResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// FrameRequest carries one base64-encoded webcam frame.
type FrameRequest struct {
	Frame string `json:"frame"`
}

// FrameResponse reports the observation for one processed frame.
type FrameResponse struct {
	FramesProcessed int        `json:"frames_processed"`
	AttentionScore  float64    `json:"attention_score"`
	Emotion         string     `json:"emotion"`
	FaceCount       int        `json:"face_count"`
	Alert           *AlertView `json:"alert,omitempty"`
}

// FacialStatus is the polling view of a facial session.
type FacialStatus struct {
	SessionID        string      `json:"session_id"`
	IsActive         bool        `json:"is_active"`
	FramesAnalyzed   int         `json:"frames_analyzed"`
	RecentAlerts     []AlertView `json:"recent_alerts"`
	CurrentAttention float64     `json:"current_attention"`
	CurrentEmotion   string      `json:"current_emotion"`
}

// FacialSummary is returned when a facial session is stopped.
type FacialSummary struct {
	FramesAnalyzed int     `json:"frames_analyzed"`
	AlertsCount    int     `json:"alerts_count"`
	LastEmotion    string  `json:"last_emotion"`
	AvgAttention   float64 `json:"avg_attention"`
}
