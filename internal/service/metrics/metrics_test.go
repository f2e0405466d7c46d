package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.IncrementInterviewsStarted()
	m.IncrementInterviewsStarted()
	m.IncrementInterviewsCompleted()
	m.IncrementAnswersScored()
	m.IncrementScoringFailures()
	m.IncrementFramesAnalyzed()

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap["interviews_started"])
	assert.Equal(t, int64(1), snap["interviews_completed"])
	assert.Equal(t, int64(1), snap["answers_scored"])
	assert.Equal(t, int64(1), snap["scoring_failures"])
	assert.Equal(t, int64(1), snap["frames_analyzed"])
}

func TestMetricsConcurrent(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementAnswersScored()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), m.Snapshot()["answers_scored"])
}
