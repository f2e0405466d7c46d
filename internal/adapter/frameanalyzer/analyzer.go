// Package frameanalyzer provides a heuristic implementation of the frame
// analyzer port. It estimates attention from luma variance and brightness;
// a real face-detection backend can replace it behind the same interface.
package frameanalyzer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"interview-ease/internal/domain"
)

// Attention proxy bounds, matching the calibrated range of the original
// heuristic: plain dark or washed-out frames never score below 0.30 or
// above 0.95.
const (
	minAttention = 0.30
	maxAttention = 0.95

	// Frames darker than this mean luma are assumed to contain no visible face.
	faceBrightnessFloor = 40.0
)

// HeuristicAnalyzer implements domain.FrameAnalyzer without an external
// vision model. Deterministic for a fixed frame.
type HeuristicAnalyzer struct{}

// New creates a HeuristicAnalyzer.
func New() *HeuristicAnalyzer {
	return &HeuristicAnalyzer{}
}

// Analyze decodes a JPEG or PNG frame and derives the observation:
// brightness is the mean luma, attention a clamped luma-variance proxy,
// face count a brightness plausibility check, and the emotion label a
// deterministic function of the attention band.
func (a *HeuristicAnalyzer) Analyze(ctx context.Context, frame []byte) (domain.FrameObservation, error) {
	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return domain.FrameObservation{}, fmt.Errorf("failed to decode frame: %w", err)
	}

	mean, variance := lumaStats(img)

	attention := variance / 2550.0
	attention = math.Min(math.Max(attention, minAttention), maxAttention)

	faceCount := 0
	if mean >= faceBrightnessFloor {
		faceCount = 1
	}

	return domain.FrameObservation{
		FaceCount:  faceCount,
		Attention:  attention,
		Emotion:    emotionFor(attention),
		Brightness: mean,
	}, nil
}

// lumaStats computes mean and variance of the 0-255 luma channel.
func lumaStats(img image.Image) (mean, variance float64) {
	bounds := img.Bounds()
	n := float64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return 0, 0
	}

	var sum, sumSquares float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Rec. 601 luma on 8-bit channels.
			luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			sum += luma
			sumSquares += luma * luma
		}
	}
	mean = sum / n
	variance = sumSquares/n - mean*mean
	return mean, variance
}

func emotionFor(attention float64) string {
	switch {
	case attention >= 0.85:
		return "focused"
	case attention >= 0.70:
		return "confident"
	case attention >= 0.55:
		return "neutral"
	default:
		return "concentrating"
	}
}
