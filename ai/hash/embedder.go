package hash

import (
	"context"
	"encoding/binary"
	"math"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/indexit/ai"
)

// DefaultDimension matches the default vector length of the production
// embedding models so fallback vectors fit existing collections.
const DefaultDimension = 384

// Embedder implements ai.Embedder with deterministic hash-seeded vectors.
type Embedder struct {
	dimension int
}

// newEmbedder is an internal constructor that returns the concrete type.
func newEmbedder(dimension int) *Embedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Embedder{dimension: dimension}
}

// NewEmbedder creates a deterministic fallback embedder with the given
// vector dimension. A non-positive dimension selects DefaultDimension.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(dimension int) ai.Embedder {
	return newEmbedder(dimension)
}

// EmbedText generates a deterministic vector for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return e.vector(text), nil
}

// EmbedTexts generates deterministic vectors for multiple text strings.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = e.vector(text)
	}
	return vectors, nil
}

// Dimension returns the configured embedding vector length.
func (e *Embedder) Dimension() int {
	return e.dimension
}

// vector derives an L2-normalized pseudo-embedding from a BLAKE2b hash of
// the text. A linear congruential generator seeded from the hash fills the
// vector with values in [-1, 1].
func (e *Embedder) vector(text string) []float32 {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(text))
	seed := binary.LittleEndian.Uint64(h.Sum(nil))

	vector := make([]float32, e.dimension)
	var sumSquares float64
	for i := range vector {
		seed = seed*6364136223846793005 + 1442695040888963407
		// Top bits have the best statistical quality in an LCG.
		v := float64(int32(seed>>32)) / math.MaxInt32
		vector[i] = float32(v)
		sumSquares += v * v
	}

	if sumSquares > 0 {
		norm := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
