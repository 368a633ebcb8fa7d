package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"ila/internal/port"
)

var bucketEmbeddings = []byte("embeddings")

// CachedEmbedder wraps an Embedder with a durable bbolt cache keyed by
// model name and text. Embeddings are deterministic for a fixed model, so
// a hit is always equivalent to recomputing; re-ingesting the same file or
// repeating a query skips the model entirely.
type CachedEmbedder struct {
	inner port.Embedder
	db    *bbolt.DB
}

func NewCachedEmbedder(inner port.Embedder, path string) (*CachedEmbedder, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEmbeddings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create embeddings bucket: %w", err)
	}
	return &CachedEmbedder{inner: inner, db: db}, nil
}

func (c *CachedEmbedder) Close() error {
	return c.db.Close()
}

func (c *CachedEmbedder) cacheKey(text string) []byte {
	h := sha256.New()
	h.Write([]byte(c.inner.ModelName()))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return h.Sum(nil)
}

func (c *CachedEmbedder) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		for i, text := range texts {
			data := b.Get(c.cacheKey(text))
			if data == nil {
				continue
			}
			var vec []float32
			if err := json.Unmarshal(data, &vec); err != nil {
				continue // treat undecodable entries as misses
			}
			if len(vec) != c.inner.Dimension() {
				continue
			}
			vectors[i] = vec
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("embedding cache read failed: %w", err)
	}

	for i := range texts {
		if vectors[i] == nil {
			missing = append(missing, texts[i])
			missingIdx = append(missingIdx, i)
		}
	}
	if len(missing) == 0 {
		return vectors, nil
	}

	computed, err := c.inner.Embed(missing)
	if err != nil {
		return nil, err
	}
	if len(computed) != len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(computed), len(missing))
	}

	err = c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		for j, vec := range computed {
			data, err := json.Marshal(vec)
			if err != nil {
				return err
			}
			if err := b.Put(c.cacheKey(missing[j]), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("embedding cache write failed: %w", err)
	}

	for j, idx := range missingIdx {
		vectors[idx] = computed[j]
	}
	return vectors, nil
}

func (c *CachedEmbedder) Dimension() int {
	return c.inner.Dimension()
}

func (c *CachedEmbedder) ModelName() string {
	return c.inner.ModelName()
}
