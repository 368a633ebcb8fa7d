package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"ila/internal/domain"
)

// AUTOINCREMENT keeps SQLite from ever reusing the id of a deleted note.
const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	content     TEXT NOT NULL,
	embedding   BLOB NOT NULL,
	source_file TEXT,
	created_at  INTEGER NOT NULL
);
`

// SQLiteStore persists notes in a single SQLite table. Every mutating
// call commits before returning; the archive assumes one writer process
// at a time.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the archive database at path.
// Use ":memory:" for a throwaway store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create notes table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// dimension returns the float count of the earliest stored note, or 0 for
// an empty archive. The first stored note establishes the dimension for
// everything after it.
func (s *SQLiteStore) dimension() (int, error) {
	var blobLen int
	err := s.db.QueryRow(`SELECT length(embedding) FROM notes ORDER BY id LIMIT 1`).Scan(&blobLen)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read archive dimension: %w", err)
	}
	if blobLen%4 != 0 {
		return 0, fmt.Errorf("%w: blob length %d is not a multiple of 4", domain.ErrCorruptStorage, blobLen)
	}
	return blobLen / 4, nil
}

func (s *SQLiteStore) checkDimension(dim int, vec []float32) error {
	if dim > 0 && len(vec) != dim {
		return fmt.Errorf("%w: got %d, archive dimension is %d", domain.ErrDimensionMismatch, len(vec), dim)
	}
	return nil
}

func (s *SQLiteStore) Add(note domain.NewNote) (int64, error) {
	ids, err := s.AddBatch([]domain.NewNote{note})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// AddBatch inserts all notes in one transaction. A dimension mismatch on
// any note rolls back the whole batch, which is what gives file ingestion
// its all-or-nothing behavior.
func (s *SQLiteStore) AddBatch(notes []domain.NewNote) ([]int64, error) {
	if len(notes) == 0 {
		return nil, nil
	}

	dim, err := s.dimension()
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO notes (content, embedding, source_file, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	ids := make([]int64, 0, len(notes))
	for _, note := range notes {
		if note.Content == "" {
			return nil, domain.ErrEmptyContent
		}
		if err := s.checkDimension(dim, note.Embedding); err != nil {
			return nil, err
		}
		if dim == 0 {
			dim = len(note.Embedding)
		}

		source := sql.NullString{String: note.SourceFile, Valid: note.SourceFile != ""}
		res, err := stmt.Exec(note.Content, encodeEmbedding(note.Embedding), source, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert note: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read inserted id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return ids, nil
}

func (s *SQLiteStore) Get(id int64) (domain.Note, error) {
	dim, err := s.dimension()
	if err != nil {
		return domain.Note{}, err
	}

	row := s.db.QueryRow(`SELECT id, content, embedding, source_file, created_at FROM notes WHERE id = ?`, id)
	note, err := scanNote(row, dim)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Note{}, fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Note{}, fmt.Errorf("failed to get note %d: %w", id, err)
	}
	return note, nil
}

func (s *SQLiteStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) List() ([]domain.Note, error) {
	dim, err := s.dimension()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT id, content, embedding, source_file, created_at FROM notes ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		note, err := scanNote(rows, dim)
		if err != nil {
			return nil, fmt.Errorf("failed to read note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (s *SQLiteStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner, dim int) (domain.Note, error) {
	var (
		note      domain.Note
		blob      []byte
		source    sql.NullString
		createdAt int64
	)
	if err := row.Scan(&note.ID, &note.Content, &blob, &source, &createdAt); err != nil {
		return domain.Note{}, err
	}
	vec, err := decodeEmbedding(blob, dim)
	if err != nil {
		return domain.Note{}, err
	}
	note.Embedding = vec
	note.SourceFile = source.String
	note.CreatedAt = time.Unix(createdAt, 0)
	return note, nil
}
