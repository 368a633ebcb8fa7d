package store

import (
	"errors"
	"path/filepath"
	"testing"

	"ila/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "ila.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func vec(dim int, fill float32) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = fill
	}
	return v
}

func TestAddAndGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	embedding := []float32{0.1, -0.5, 0.25, 1.0}
	id, err := s.Add(domain.NewNote{Content: "hello archive", Embedding: embedding})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if id != 1 {
		t.Errorf("expected first id to be 1, got %d", id)
	}

	note, err := s.Get(id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if note.Content != "hello archive" {
		t.Errorf("content mismatch: %q", note.Content)
	}
	if len(note.Embedding) != len(embedding) {
		t.Fatalf("embedding length mismatch: %d", len(note.Embedding))
	}
	for i := range embedding {
		if note.Embedding[i] != embedding[i] {
			t.Errorf("embedding[%d] = %f, want %f", i, note.Embedding[i], embedding[i])
		}
	}
	if note.SourceFile != "" {
		t.Errorf("unexpected source file: %q", note.SourceFile)
	}
	if note.CreatedAt.IsZero() {
		t.Error("created time not set")
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNotFoundOnEmptyStore(t *testing.T) {
	s := newTestStore(t)

	if err := s.Delete(99); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletionFinalityAndIDNonReuse(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Add(domain.NewNote{Content: "one", Embedding: vec(4, 0.1)})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(first); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := s.Get(first); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(first); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}

	second, err := s.Add(domain.NewNote{Content: "two", Embedding: vec(4, 0.2)})
	if err != nil {
		t.Fatal(err)
	}
	if second <= first {
		t.Errorf("deleted id reused: first=%d second=%d", first, second)
	}

	notes, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range notes {
		if n.ID == first {
			t.Errorf("deleted note %d reappeared in list", first)
		}
	}
}

func TestListOrderedByID(t *testing.T) {
	s := newTestStore(t)

	for _, content := range []string{"a", "b", "c"} {
		if _, err := s.Add(domain.NewNote{Content: content, Embedding: vec(4, 0.5)}); err != nil {
			t.Fatal(err)
		}
	}

	notes, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i := 1; i < len(notes); i++ {
		if notes[i].ID <= notes[i-1].ID {
			t.Errorf("list not ordered by ascending id: %d before %d", notes[i-1].ID, notes[i].ID)
		}
	}
}

func TestDimensionEstablishedByFirstNote(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add(domain.NewNote{Content: "first", Embedding: vec(384, 0.1)}); err != nil {
		t.Fatal(err)
	}

	_, err := s.Add(domain.NewNote{Content: "wrong", Embedding: vec(100, 0.1)})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestAddBatchAllOrNothing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add(domain.NewNote{Content: "seed", Embedding: vec(4, 0.1)}); err != nil {
		t.Fatal(err)
	}

	_, err := s.AddBatch([]domain.NewNote{
		{Content: "ok", Embedding: vec(4, 0.2)},
		{Content: "bad", Embedding: vec(3, 0.2)},
	})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}

	count, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("failed batch left partial notes behind: count=%d", count)
	}
}

func TestAddBatchConsecutiveIDs(t *testing.T) {
	s := newTestStore(t)

	ids, err := s.AddBatch([]domain.NewNote{
		{Content: "c1", Embedding: vec(4, 0.1), SourceFile: "doc.txt"},
		{Content: "c2", Embedding: vec(4, 0.2), SourceFile: "doc.txt"},
		{Content: "c3", Embedding: vec(4, 0.3), SourceFile: "doc.txt"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] != ids[i-1]+1 {
			t.Errorf("ids not consecutive: %v", ids)
		}
	}

	note, err := s.Get(ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if note.SourceFile != "doc.txt" {
		t.Errorf("source file not persisted: %q", note.SourceFile)
	}
}

func TestAddRejectsEmptyContent(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add(domain.NewNote{Content: "", Embedding: vec(4, 0.1)}); !errors.Is(err, domain.ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestCorruptBlobDetectedOnRead(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add(domain.NewNote{Content: "good", Embedding: vec(384, 0.1)}); err != nil {
		t.Fatal(err)
	}
	id, err := s.Add(domain.NewNote{Content: "victim", Embedding: vec(384, 0.2)})
	if err != nil {
		t.Fatal(err)
	}

	// Truncate the stored blob to 383 floats behind the store's back.
	if _, err := s.db.Exec(`UPDATE notes SET embedding = ? WHERE id = ?`, encodeEmbedding(vec(383, 0.2)), id); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Get(id); !errors.Is(err, domain.ErrCorruptStorage) {
		t.Errorf("expected ErrCorruptStorage from Get, got %v", err)
	}
	if _, err := s.List(); !errors.Is(err, domain.ErrCorruptStorage) {
		t.Errorf("expected ErrCorruptStorage from List, got %v", err)
	}
}

func TestTruncatedBlobDetectedOnRead(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Add(domain.NewNote{Content: "victim", Embedding: vec(4, 0.1)})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.db.Exec(`UPDATE notes SET embedding = ? WHERE id = ?`, []byte{1, 2, 3}, id); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Get(id); !errors.Is(err, domain.ErrCorruptStorage) {
		t.Errorf("expected ErrCorruptStorage for non-multiple-of-4 blob, got %v", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ila.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	id, err := s.Add(domain.NewNote{Content: "durable", Embedding: vec(4, 0.7)})
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	note, err := reopened.Get(id)
	if err != nil {
		t.Fatalf("note lost across reopen: %v", err)
	}
	if note.Content != "durable" {
		t.Errorf("content mismatch after reopen: %q", note.Content)
	}
}
