package store

import (
	"encoding/binary"
	"fmt"
	"math"

	"ila/internal/domain"
)

// encodeEmbedding packs a vector as little-endian IEEE-754 float32 values
// with no length prefix; the float count is derived from the blob size on
// decode.
func encodeEmbedding(vec []float32) []byte {
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// decodeEmbedding unpacks a stored blob. wantDim > 0 enforces the archive
// dimension; a blob that is not a whole number of floats, or the wrong
// float count, is storage corruption.
func decodeEmbedding(b []byte, wantDim int) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: blob length %d is not a multiple of 4", domain.ErrCorruptStorage, len(b))
	}
	n := len(b) / 4
	if wantDim > 0 && n != wantDim {
		return nil, fmt.Errorf("%w: blob holds %d floats, archive dimension is %d", domain.ErrCorruptStorage, n, wantDim)
	}
	vec := make([]float32, n)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}
