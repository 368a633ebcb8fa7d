package chunker

import "strings"

// DefaultChunkSize is the target chunk length in characters.
const DefaultChunkSize = 500

// WordChunker splits text into chunks of at most maxSize characters,
// breaking only at whitespace. A single word longer than maxSize becomes
// its own chunk rather than being split.
type WordChunker struct {
	maxSize int
}

func NewWordChunker(maxSize int) *WordChunker {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	return &WordChunker{maxSize: maxSize}
}

func (c *WordChunker) MaxSize() int {
	return c.maxSize
}

// Chunk splits text at word boundaries. Runs of whitespace collapse to a
// single space, so joining the chunks with spaces reproduces the
// whitespace-normalized input. Empty or all-whitespace text yields nil.
func (c *WordChunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, word := range words {
		// +1 accounts for the joining space.
		if currentLen+len(word)+1 > c.maxSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{word}
			currentLen = len(word)
		} else {
			current = append(current, word)
			currentLen += len(word) + 1
		}
	}

	chunks = append(chunks, strings.Join(current, " "))
	return chunks
}
