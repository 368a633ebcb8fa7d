package usecase

import (
	"fmt"
	"strings"

	"ila/internal/adapter/ranker"
	"ila/internal/domain"
	"ila/internal/port"
)

// DefaultTopK is the number of results Find returns unless told otherwise.
const DefaultTopK = 3

// Archive is the facade the CLI talks to: it composes the embedder, the
// note store, and the ranker into add/find/delete/list operations.
type Archive struct {
	store    port.NoteStore
	embedder port.Embedder
}

func NewArchive(store port.NoteStore, embedder port.Embedder) *Archive {
	return &Archive{
		store:    store,
		embedder: embedder,
	}
}

// AddNote embeds the content and stores it as a new note.
func (a *Archive) AddNote(content string) (int64, error) {
	if strings.TrimSpace(content) == "" {
		return 0, domain.ErrEmptyContent
	}

	vectors, err := a.embedder.Embed([]string{content})
	if err != nil {
		return 0, fmt.Errorf("failed to embed note: %w", err)
	}
	if len(vectors) == 0 {
		return 0, fmt.Errorf("embedder returned no vector for note")
	}

	id, err := a.store.Add(domain.NewNote{Content: content, Embedding: vectors[0]})
	if err != nil {
		return 0, fmt.Errorf("failed to store note: %w", err)
	}
	return id, nil
}

// Find embeds the query, scans every stored note, and returns the top-k
// by cosine similarity. Blank queries are rejected before the embedding
// provider is invoked.
func (a *Archive) Find(query string, k int) ([]domain.ScoredNote, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidQuery
	}
	if k <= 0 {
		k = DefaultTopK
	}

	vectors, err := a.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	notes, err := a.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	return ranker.Rank(vectors[0], notes, k), nil
}

func (a *Archive) GetNote(id int64) (domain.Note, error) {
	return a.store.Get(id)
}

func (a *Archive) DeleteNote(id int64) error {
	return a.store.Delete(id)
}

func (a *Archive) ListNotes() ([]domain.Note, error) {
	return a.store.List()
}

func (a *Archive) CountNotes() (int, error) {
	return a.store.Count()
}
