package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"ila/internal/domain"
)

// MemoryStore is an in-memory NoteStore with the same semantics as the
// SQLite store: ids are strictly increasing and never reused, the first
// note establishes the dimension. Used by tests and as a fake for the
// archive facade.
type MemoryStore struct {
	mu     sync.RWMutex
	notes  map[int64]domain.Note
	nextID int64
	dim    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes:  make(map[int64]domain.Note),
		nextID: 1,
	}
}

func (s *MemoryStore) Add(note domain.NewNote) (int64, error) {
	ids, err := s.AddBatch([]domain.NewNote{note})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

func (s *MemoryStore) AddBatch(notes []domain.NewNote) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching state, so a bad note
	// leaves the store unchanged.
	dim := s.dim
	for _, note := range notes {
		if note.Content == "" {
			return nil, domain.ErrEmptyContent
		}
		if dim > 0 && len(note.Embedding) != dim {
			return nil, fmt.Errorf("%w: got %d, archive dimension is %d", domain.ErrDimensionMismatch, len(note.Embedding), dim)
		}
		if dim == 0 {
			dim = len(note.Embedding)
		}
	}

	ids := make([]int64, 0, len(notes))
	for _, note := range notes {
		id := s.nextID
		s.nextID++
		s.notes[id] = domain.Note{
			ID:         id,
			Content:    note.Content,
			Embedding:  note.Embedding,
			SourceFile: note.SourceFile,
			CreatedAt:  time.Now(),
		}
		ids = append(ids, id)
	}
	s.dim = dim
	return ids, nil
}

func (s *MemoryStore) Get(id int64) (domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[id]
	if !ok {
		return domain.Note{}, fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	return note, nil
}

func (s *MemoryStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	delete(s.notes, id)
	return nil
}

func (s *MemoryStore) List() ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := make([]domain.Note, 0, len(s.notes))
	for _, note := range s.notes {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (s *MemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
