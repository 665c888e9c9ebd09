package badger

import (
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/indexit/core"
)

// MarshalChunk serializes a stored chunk to bytes.
func MarshalChunk(chunk *core.Chunk) []byte {
	buf := make([]byte, core.ChunkMUS.Size(*chunk))
	core.ChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a stored chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	chunk, _, err := core.ChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalDimension serializes a collection dimension to bytes.
func MarshalDimension(dimension int) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(dimension)))
	varint.Uint64.Marshal(uint64(dimension), buf)
	return buf
}

// UnmarshalDimension deserializes a collection dimension from bytes.
func UnmarshalDimension(data []byte) (int, error) {
	dim, _, err := varint.Uint64.Unmarshal(data)
	return int(dim), err
}
