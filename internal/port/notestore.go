package port

import "ila/internal/domain"

// NoteStore persists notes durably. Every mutating call commits before
// returning; the archive assumes a single writer process.
//
// The embedding dimension is established by the first stored note and
// enforced on every write after that.
type NoteStore interface {
	// Add persists one note and returns its assigned id.
	Add(note domain.NewNote) (int64, error)

	// AddBatch persists all notes in a single transaction. Either every
	// note is stored or none are; returned ids are in input order.
	AddBatch(notes []domain.NewNote) ([]int64, error)

	// Get returns the note with the given id, or domain.ErrNotFound.
	Get(id int64) (domain.Note, error)

	// Delete removes a note permanently. The id is never reused.
	Delete(id int64) error

	// List returns every note ordered by ascending id, embeddings
	// included. Blob validation happens here: a stored vector that does
	// not match the archive dimension surfaces domain.ErrCorruptStorage.
	List() ([]domain.Note, error)

	// Count returns the number of stored notes.
	Count() (int, error)

	Close() error
}
