// Package metrics keeps in-process counters for the health endpoint.
package metrics

import (
	"sync"
	"time"
)

// Metrics is a mutex-guarded set of process counters.
type Metrics struct {
	mu                  sync.RWMutex
	interviewsStarted   int64
	interviewsCompleted int64
	answersScored       int64
	scoringFailures     int64
	framesAnalyzed      int64
	lastUpdate          time.Time
}

// New creates an empty Metrics set.
func New() *Metrics {
	return &Metrics{lastUpdate: time.Now()}
}

func (m *Metrics) IncrementInterviewsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interviewsStarted++
	m.lastUpdate = time.Now()
}

func (m *Metrics) IncrementInterviewsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interviewsCompleted++
	m.lastUpdate = time.Now()
}

func (m *Metrics) IncrementAnswersScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answersScored++
	m.lastUpdate = time.Now()
}

func (m *Metrics) IncrementScoringFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoringFailures++
	m.lastUpdate = time.Now()
}

func (m *Metrics) IncrementFramesAnalyzed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.framesAnalyzed++
	m.lastUpdate = time.Now()
}

// Snapshot returns the counters as a map for the health endpoint.
func (m *Metrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]interface{}{
		"interviews_started":   m.interviewsStarted,
		"interviews_completed": m.interviewsCompleted,
		"answers_scored":       m.answersScored,
		"scoring_failures":     m.scoringFailures,
		"frames_analyzed":      m.framesAnalyzed,
		"last_update":          m.lastUpdate,
	}
}
