package util

import (
	"fmt"
	"math"
)

// CosineSimilarity calculates the cosine similarity between two float32 vectors.
// The result is clamped to [-1, 1] to absorb floating point drift.
func CosineSimilarity(vec1 []float32, vec2 []float32) (float64, error) {
	if len(vec1) == 0 || len(vec2) == 0 {
		return 0, fmt.Errorf("input vectors cannot be empty")
	}
	if len(vec1) != len(vec2) {
		return 0, fmt.Errorf("vector dimensions do not match: %d vs %d", len(vec1), len(vec2))
	}

	var dotProduct float64
	var mag1Squared float64
	var mag2Squared float64

	for i := 0; i < len(vec1); i++ {
		dotProduct += float64(vec1[i]) * float64(vec2[i])
		mag1Squared += float64(vec1[i]) * float64(vec1[i])
		mag2Squared += float64(vec2[i]) * float64(vec2[i])
	}

	mag1 := math.Sqrt(mag1Squared)
	mag2 := math.Sqrt(mag2Squared)

	if mag1 == 0 || mag2 == 0 {
		// A zero-magnitude vector has undefined similarity; treat as 0.
		return 0, nil
	}

	similarity := dotProduct / (mag1 * mag2)
	if similarity > 1 {
		similarity = 1
	} else if similarity < -1 {
		similarity = -1
	}
	return similarity, nil
}

// Round2 rounds to two decimal places, used for the 0-10 display score.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds to four decimal places, used for reported similarities.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
