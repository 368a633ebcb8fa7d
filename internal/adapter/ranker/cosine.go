package ranker

import (
	"math"
	"sort"

	"ila/internal/domain"
)

// Rank scores every candidate against the query vector by cosine
// similarity and returns the top k, highest score first. Equal scores
// break toward the lower note id so results are deterministic. The caller
// supplies the candidates; ranking never touches storage.
func Rank(query []float32, notes []domain.Note, k int) []domain.ScoredNote {
	if k <= 0 || len(notes) == 0 {
		return nil
	}

	scored := make([]domain.ScoredNote, 0, len(notes))
	for _, note := range notes {
		scored = append(scored, domain.ScoredNote{
			Note:  note,
			Score: CosineSimilarity(query, note.Embedding),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Note.ID < scored[j].Note.ID
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|) in [-1, 1]. Mismatched
// lengths or a zero-norm vector score 0 instead of failing, so one
// degenerate vector cannot crash retrieval.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
