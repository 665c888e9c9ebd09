package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.EmbeddingHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.Equal(t, 384, cfg.EmbeddingDimension)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://embed.internal:8080"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithCompletionModel("gpt-4o-mini"),
		WithEmbeddingDimension(1536),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://embed.internal:8080/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://embed.internal:8080/v1", cfg.CompletionHost)
	assert.Equal(t, 1536, cfg.EmbeddingDimension)
}

func TestConfig_Normalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost("http://localhost:11434"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("strips trailing slash before adding suffix", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost("http://localhost:11434/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("keeps existing v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost("http://localhost:11434/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("missing embedding host", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost(""))
		assert.ErrorIs(t, cfg.Validate(), ErrEmbeddingHostRequired)
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingModel(""))
		assert.ErrorIs(t, cfg.Validate(), ErrEmbeddingModelRequired)
	})

	t.Run("completion host without model", func(t *testing.T) {
		cfg := NewConfig(WithCompletionModel(""))
		assert.ErrorIs(t, cfg.Validate(), ErrCompletionModelRequired)
	})

	t.Run("invalid dimension", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingDimension(0))
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidDimension)
	})
}
