package domain

import "time"

// Note is the persisted unit of the archive: a piece of text, its
// embedding vector, and the file it came from when it was ingested
// rather than typed in.
type Note struct {
	ID         int64
	Content    string
	Embedding  []float32
	SourceFile string
	CreatedAt  time.Time
}

// NewNote is a note that has not been stored yet. The store assigns
// the id and creation time.
type NewNote struct {
	Content    string
	Embedding  []float32
	SourceFile string
}

// ScoredNote pairs a note with its similarity score against a query.
type ScoredNote struct {
	Note  Note
	Score float64
}
