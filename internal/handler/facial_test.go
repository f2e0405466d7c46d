package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"interview-ease/internal/domain"
	"interview-ease/internal/dto"
	"interview-ease/internal/middleware"
)

// MockFacialService is a mock implementation of FacialService
type MockFacialService struct {
	mock.Mock
}

func (m *MockFacialService) Start(ctx context.Context, sessionID string) (*dto.StartFacialResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StartFacialResponse), args.Error(1)
}

func (m *MockFacialService) ProcessFrame(ctx context.Context, sessionID string, frame []byte) (*dto.FrameResponse, error) {
	args := m.Called(ctx, sessionID, frame)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FrameResponse), args.Error(1)
}

func (m *MockFacialService) Data(ctx context.Context, sessionID string) (*dto.FacialStatus, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FacialStatus), args.Error(1)
}

func (m *MockFacialService) Stop(ctx context.Context, sessionID string) (*dto.FacialSummary, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FacialSummary), args.Error(1)
}

func newFacialTestApp(svc FacialService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewFacialHandler(svc)
	group := app.Group("/api/facial")
	group.Post("/:id/start", h.Start)
	group.Post("/:id/frames", h.ProcessFrame)
	group.Get("/:id", h.Data)
	group.Post("/:id/stop", h.Stop)
	return app
}

func TestFacialStartHandler(t *testing.T) {
	svc := new(MockFacialService)
	svc.On("Start", mock.Anything, "sess-1").Return(&dto.StartFacialResponse{
		SessionID: "sess-1",
		Status:    "active",
	}, nil)
	app := newFacialTestApp(svc)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/facial/sess-1/start", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.StartFacialResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "active", body.Status)
}

func TestProcessFrameHandler(t *testing.T) {
	frameBytes := []byte("fake image bytes")
	encoded := base64.StdEncoding.EncodeToString(frameBytes)

	t.Run("decodes raw base64", func(t *testing.T) {
		svc := new(MockFacialService)
		svc.On("ProcessFrame", mock.Anything, "sess-1", frameBytes).Return(&dto.FrameResponse{
			FramesProcessed: 1,
			AttentionScore:  0.8,
			Emotion:         "focused",
			FaceCount:       1,
		}, nil)
		app := newFacialTestApp(svc)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/facial/sess-1/frames", dto.FrameRequest{Frame: encoded}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("decodes data URL payloads", func(t *testing.T) {
		svc := new(MockFacialService)
		svc.On("ProcessFrame", mock.Anything, "sess-1", frameBytes).Return(&dto.FrameResponse{FramesProcessed: 1}, nil)
		app := newFacialTestApp(svc)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/facial/sess-1/frames", dto.FrameRequest{
			Frame: "data:image/jpeg;base64," + encoded,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("invalid base64 is a 400", func(t *testing.T) {
		app := newFacialTestApp(new(MockFacialService))

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/facial/sess-1/frames", dto.FrameRequest{
			Frame: "!!not base64!!",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		app := newFacialTestApp(new(MockFacialService))

		req := httptest.NewRequest(http.MethodPost, "/api/facial/sess-1/frames", bytes.NewReader([]byte("{oops")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestFacialDataHandler(t *testing.T) {
	t.Run("returns the status", func(t *testing.T) {
		svc := new(MockFacialService)
		svc.On("Data", mock.Anything, "sess-1").Return(&dto.FacialStatus{
			SessionID:      "sess-1",
			IsActive:       true,
			FramesAnalyzed: 3,
		}, nil)
		app := newFacialTestApp(svc)

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/facial/sess-1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown session is a 404", func(t *testing.T) {
		svc := new(MockFacialService)
		svc.On("Data", mock.Anything, "missing").Return(nil, domain.NewSessionNotFoundError("missing"))
		app := newFacialTestApp(svc)

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/facial/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestFacialStopHandler(t *testing.T) {
	svc := new(MockFacialService)
	svc.On("Stop", mock.Anything, "sess-1").Return(&dto.FacialSummary{
		FramesAnalyzed: 5,
		AvgAttention:   0.7,
		LastEmotion:    "neutral",
	}, nil)
	app := newFacialTestApp(svc)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/facial/sess-1/stop", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.FacialSummary
	decodeBody(t, resp, &body)
	assert.Equal(t, 5, body.FramesAnalyzed)
}
