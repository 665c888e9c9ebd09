package core

import (
	"errors"
	"testing"
)

func validChunk() *Chunk {
	return &Chunk{
		ID:      ChunkID("doc-1", 0),
		Content: "some text",
		Metadata: Metadata{
			MetaDocumentID: String("doc-1"),
			MetaChunkIndex: Int(0),
			MetaFilename:   String("doc.txt"),
			MetaFileType:   String("txt"),
		},
	}
}

func TestValidateChunk(t *testing.T) {
	t.Run("valid chunk", func(t *testing.T) {
		if err := ValidateChunk(validChunk()); err != nil {
			t.Errorf("ValidateChunk() = %v, want nil", err)
		}
	})

	t.Run("nil chunk", func(t *testing.T) {
		if err := ValidateChunk(nil); !errors.Is(err, ErrInvalidChunk) {
			t.Errorf("ValidateChunk(nil) = %v, want ErrInvalidChunk", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		chunk := validChunk()
		chunk.ID = ""
		if err := ValidateChunk(chunk); !errors.Is(err, ErrEmptyChunkID) {
			t.Errorf("ValidateChunk() = %v, want ErrEmptyChunkID", err)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		chunk := validChunk()
		chunk.Content = ""
		if err := ValidateChunk(chunk); !errors.Is(err, ErrEmptyContent) {
			t.Errorf("ValidateChunk() = %v, want ErrEmptyContent", err)
		}
	})

	t.Run("missing required metadata", func(t *testing.T) {
		chunk := validChunk()
		delete(chunk.Metadata, MetaFilename)
		if err := ValidateChunk(chunk); !errors.Is(err, ErrMissingMetadataKey) {
			t.Errorf("ValidateChunk() = %v, want ErrMissingMetadataKey", err)
		}
	})
}

func TestValidateNode(t *testing.T) {
	t.Run("valid node", func(t *testing.T) {
		node := &Node{ID: "theme_0", Label: "budget", Type: NodeTheme, Level: 1}
		if err := ValidateNode(node); err != nil {
			t.Errorf("ValidateNode() = %v, want nil", err)
		}
	})

	t.Run("level mismatch", func(t *testing.T) {
		node := &Node{ID: "theme_0", Label: "budget", Type: NodeTheme, Level: 2}
		if err := ValidateNode(node); !errors.Is(err, ErrInvalidNode) {
			t.Errorf("ValidateNode() = %v, want ErrInvalidNode", err)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		node := &Node{ID: "x", Label: "x", Type: NodeType("cluster"), Level: 1}
		if err := ValidateNode(node); !errors.Is(err, ErrInvalidNode) {
			t.Errorf("ValidateNode() = %v, want ErrInvalidNode", err)
		}
	})

	t.Run("empty label", func(t *testing.T) {
		node := &Node{ID: "x", Label: "", Type: NodeTheme, Level: 1}
		if err := ValidateNode(node); !errors.Is(err, ErrInvalidNode) {
			t.Errorf("ValidateNode() = %v, want ErrInvalidNode", err)
		}
	})
}
