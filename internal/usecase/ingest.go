package usecase

import (
	"fmt"
	"os"
	"path/filepath"

	"ila/internal/domain"
	"ila/internal/port"
)

// Ingestor turns whole files into notes: read, chunk, embed, store. One
// note per chunk, tagged with the originating file name.
type Ingestor struct {
	store    port.NoteStore
	embedder port.Embedder
	chunker  port.Chunker
	walker   port.Walker
}

func NewIngestor(store port.NoteStore, embedder port.Embedder, chunker port.Chunker, walker port.Walker) *Ingestor {
	return &Ingestor{
		store:    store,
		embedder: embedder,
		chunker:  chunker,
		walker:   walker,
	}
}

// IngestFile ingests a single file and returns the created note ids in
// chunk order. The whole file is stored in one transaction: if embedding
// or storage fails for any chunk, no notes from this file are kept.
func (in *Ingestor) IngestFile(path string) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	chunks := in.chunker.Chunk(string(data))
	if len(chunks) == 0 {
		return nil, nil
	}

	vectors, err := in.embedder.Embed(chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to embed %s: %w", path, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks of %s", len(vectors), len(chunks), path)
	}

	source := filepath.Base(path)
	notes := make([]domain.NewNote, len(chunks))
	for i, chunk := range chunks {
		notes[i] = domain.NewNote{
			Content:    chunk,
			Embedding:  vectors[i],
			SourceFile: source,
		}
	}

	ids, err := in.store.AddBatch(notes)
	if err != nil {
		return nil, fmt.Errorf("failed to store chunks of %s: %w", path, err)
	}
	return ids, nil
}

// DirResult summarizes a directory ingestion.
type DirResult struct {
	FilesIngested int
	NotesCreated  int
	Errors        []string
}

// IngestDir walks root with the configured include/exclude patterns and
// ingests every matching file. Each file keeps its own all-or-nothing
// transaction; a failing file is reported and skipped, not fatal to the
// rest of the walk. progress may be nil.
func (in *Ingestor) IngestDir(root string, progress func(done, total int, file string)) (DirResult, error) {
	var result DirResult

	files, err := in.walker.Walk(root)
	if err != nil {
		return result, err
	}

	for i, file := range files {
		if progress != nil {
			progress(i, len(files), file)
		}
		ids, err := in.IngestFile(file)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if len(ids) > 0 {
			result.FilesIngested++
			result.NotesCreated += len(ids)
		}
	}
	if progress != nil {
		progress(len(files), len(files), "")
	}

	return result, nil
}
