package reportsink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-ease/internal/dto"
)

func TestFileSink(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the results as JSON", func(t *testing.T) {
		dir := t.TempDir()
		sink, err := NewFileSink(dir)
		require.NoError(t, err)

		res := &dto.InterviewResults{
			SessionID:      "sess-1",
			Status:         "completed",
			Score:          7.54,
			TotalQuestions: 3,
		}
		reportID, path, err := sink.Write(ctx, res)
		require.NoError(t, err)
		assert.NotEmpty(t, reportID)
		assert.Contains(t, filepath.Base(path), "sess-1")
		assert.Contains(t, filepath.Base(path), reportID)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var decoded dto.InterviewResults
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "sess-1", decoded.SessionID)
		assert.InDelta(t, 7.54, decoded.Score, 1e-9)
	})

	t.Run("consecutive reports for one session do not collide", func(t *testing.T) {
		sink, err := NewFileSink(t.TempDir())
		require.NoError(t, err)

		res := &dto.InterviewResults{SessionID: "sess-1"}
		_, first, err := sink.Write(ctx, res)
		require.NoError(t, err)
		_, second, err := sink.Write(ctx, res)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("creates the directory if missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "reports")
		_, err := NewFileSink(dir)
		require.NoError(t, err)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
