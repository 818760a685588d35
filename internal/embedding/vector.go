package embedding

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch means two vectors from different models or providers
// were compared. It indicates a wiring bug, not bad user input.
var ErrDimensionMismatch = errors.New("vector dimensions differ")

// CosineSimilarity computes the cosine of the angle between a and b.
//
// The result lies in [-1, 1] up to floating-point error. Empty or zero-magnitude
// vectors have no direction and yield 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Similarity is CosineSimilarity clamped to [0, 1]. Opposite directions count
// as no similarity rather than negative similarity.
func Similarity(a, b []float32) (float64, error) {
	cos, err := CosineSimilarity(a, b)
	if err != nil {
		return 0, err
	}
	return math.Max(0, math.Min(1, cos)), nil
}
