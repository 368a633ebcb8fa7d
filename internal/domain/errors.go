package domain

import "errors"

var (
	// ErrNotFound is returned when a note id does not exist in the archive.
	ErrNotFound = errors.New("note not found")

	// ErrDimensionMismatch is returned when a vector's length disagrees
	// with the dimension established by the first stored note.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrCorruptStorage is returned when a persisted embedding blob fails
	// length validation on read.
	ErrCorruptStorage = errors.New("corrupt embedding blob")

	// ErrInvalidQuery is returned for blank search queries, before the
	// embedding provider is invoked.
	ErrInvalidQuery = errors.New("query text is empty")

	// ErrEmptyContent is returned when adding a note with no content.
	ErrEmptyContent = errors.New("note content is empty")
)
