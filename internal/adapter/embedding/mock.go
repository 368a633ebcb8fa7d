package embedding

import (
	"crypto/sha256"
	"math"
)

// MockEmbedder produces deterministic pseudo-embeddings without any model.
// Similar texts do not get similar vectors; it only exists so tests and
// offline smoke runs can exercise the full pipeline.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	if dimension <= 0 {
		dimension = 384
	}
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = e.vectorFor(text)
	}
	return vectors, nil
}

func (e *MockEmbedder) vectorFor(text string) []float32 {
	v := make([]float32, e.dimension)
	sum := sha256.Sum256([]byte(text))
	for i := range v {
		v[i] = float32(sum[i%len(sum)]) - 128
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range v {
			v[i] *= inv
		}
	}
	return v
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
