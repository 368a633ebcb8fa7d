package ranker

import (
	"math"
	"testing"

	"ila/internal/domain"
)

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	v := []float32{0.3, -0.7, 0.2, 0.9}

	sim := CosineSimilarity(v, v)
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("expected similarity 1 for identical vectors, got %f", sim)
	}
}

func TestCosineSimilarityBounds(t *testing.T) {
	cases := [][2][]float32{
		{{1, 0}, {0, 1}},
		{{1, 0}, {-1, 0}},
		{{0.5, 0.5}, {100, 200}},
		{{-3, 2, -1}, {4, -5, 6}},
	}
	for _, c := range cases {
		sim := CosineSimilarity(c[0], c[1])
		if sim < -1.0-1e-9 || sim > 1.0+1e-9 {
			t.Errorf("similarity out of [-1,1]: %f for %v vs %v", sim, c[0], c[1])
		}
	}
}

func TestCosineSimilarityOppositeVectors(t *testing.T) {
	sim := CosineSimilarity([]float32{1, 2, 3}, []float32{-1, -2, -3})
	if math.Abs(sim+1.0) > 1e-9 {
		t.Errorf("expected -1 for opposite vectors, got %f", sim)
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	zero := []float32{0, 0, 0}
	other := []float32{1, 2, 3}

	if sim := CosineSimilarity(zero, other); sim != 0 {
		t.Errorf("expected 0 for zero vector, got %f", sim)
	}
	if sim := CosineSimilarity(other, zero); sim != 0 {
		t.Errorf("expected 0 for zero vector, got %f", sim)
	}
	if sim := CosineSimilarity(zero, zero); sim != 0 {
		t.Errorf("expected 0 for two zero vectors, got %f", sim)
	}
}

func TestCosineSimilarityLengthMismatch(t *testing.T) {
	if sim := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}); sim != 0 {
		t.Errorf("expected 0 for mismatched lengths, got %f", sim)
	}
}

func note(id int64, embedding ...float32) domain.Note {
	return domain.Note{ID: id, Embedding: embedding}
}

func TestRankOrdering(t *testing.T) {
	query := []float32{1, 0}
	notes := []domain.Note{
		note(1, 0, 1),  // orthogonal, score 0
		note(2, 1, 0),  // identical direction, score 1
		note(3, 1, 1),  // score ~0.707
		note(4, -1, 0), // opposite, score -1
	}

	results := Rank(query, notes, 4)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	wantOrder := []int64{2, 3, 1, 4}
	for i, want := range wantOrder {
		if results[i].Note.ID != want {
			t.Errorf("position %d: expected note %d, got %d", i, want, results[i].Note.ID)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not descending at position %d", i)
		}
	}
}

func TestRankTopK(t *testing.T) {
	query := []float32{1, 0}
	notes := []domain.Note{note(1, 1, 0), note(2, 0, 1), note(3, 1, 1)}

	results := Rank(query, notes, 2)
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestRankKLargerThanCandidates(t *testing.T) {
	query := []float32{1, 0}
	notes := []domain.Note{note(1, 1, 0), note(2, 0, 1)}

	results := Rank(query, notes, 10)
	if len(results) != 2 {
		t.Errorf("expected all 2 candidates, got %d", len(results))
	}
}

func TestRankEmptyCandidates(t *testing.T) {
	if results := Rank([]float32{1, 0}, nil, 3); len(results) != 0 {
		t.Errorf("expected empty result for no candidates, got %d", len(results))
	}
}

func TestRankNonPositiveK(t *testing.T) {
	notes := []domain.Note{note(1, 1, 0)}

	if results := Rank([]float32{1, 0}, notes, 0); len(results) != 0 {
		t.Errorf("expected empty result for k=0, got %d", len(results))
	}
	if results := Rank([]float32{1, 0}, notes, -5); len(results) != 0 {
		t.Errorf("expected empty result for negative k, got %d", len(results))
	}
}

func TestRankTieBreakAscendingID(t *testing.T) {
	query := []float32{1, 0}
	// Same vector on purpose: identical scores.
	notes := []domain.Note{note(7, 1, 1), note(3, 1, 1), note(5, 1, 1)}

	results := Rank(query, notes, 3)
	wantOrder := []int64{3, 5, 7}
	for i, want := range wantOrder {
		if results[i].Note.ID != want {
			t.Errorf("tie-break position %d: expected note %d, got %d", i, want, results[i].Note.ID)
		}
	}
}
