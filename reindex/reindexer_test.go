package reindex

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/indexit/ai/hash"
	"github.com/poiesic/indexit/ai/mock"
	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/vectorstore"
	"github.com/poiesic/indexit/vectorstore/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCollection(t *testing.T, n int) *badger.Store {
	t.Helper()
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.EnsureCollection(ctx, "documents", hash.DefaultDimension))

	embedder := hash.NewEmbedder(hash.DefaultDimension)
	items := make([]vectorstore.Item, n)
	for i := range items {
		content := "chunk content " + core.ChunkID("doc-1", i)
		vector, err := embedder.EmbedText(ctx, "stale "+content)
		require.NoError(t, err)
		items[i] = vectorstore.Item{
			ID:      core.ChunkID("doc-1", i),
			Vector:  vector,
			Content: content,
			Metadata: core.Metadata{
				core.MetaDocumentID: core.String("doc-1"),
				core.MetaChunkIndex: core.Int(int64(i)),
			},
		}
	}
	if n > 0 {
		require.NoError(t, store.Upsert(ctx, "documents", items))
	}
	return store
}

func testConfig() *Config {
	config := DefaultConfig()
	config.RetryDelay = time.Millisecond
	return config
}

func TestNewReindexer_Validation(t *testing.T) {
	store := seedCollection(t, 0)

	_, err := NewReindexer(nil, mock.NewMockEmbedder(), nil, nil)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewReindexer(store, nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestRun_EmptyCollection(t *testing.T) {
	store := seedCollection(t, 0)
	var progress bytes.Buffer

	reindexer, err := NewReindexer(store, mock.NewMockEmbedder(), testConfig(), &progress)
	require.NoError(t, err)

	n, err := reindexer.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, progress.String(), "nothing to reindex")
}

func TestRun_ReembedsAllChunks(t *testing.T) {
	store := seedCollection(t, 7)
	ctx := context.Background()

	config := testConfig()
	config.BatchSize = 3
	var progress bytes.Buffer
	embedder := hash.NewEmbedder(hash.DefaultDimension)

	reindexer, err := NewReindexer(store, embedder, config, &progress)
	require.NoError(t, err)

	n, err := reindexer.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	// Count is unchanged and every vector now matches a fresh embedding
	// of its content.
	count, err := store.Count(ctx, "documents")
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	items, _, err := store.Scroll(ctx, "documents", "", 10)
	require.NoError(t, err)
	require.Len(t, items, 7)
	for _, item := range items {
		want, err := embedder.EmbedText(ctx, item.Content)
		require.NoError(t, err)
		assert.Equal(t, want, item.Vector, "chunk %s should carry a fresh embedding", item.ID)
	}
}

func TestRun_EmbedderFailureSurfaces(t *testing.T) {
	store := seedCollection(t, 2)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("model offline")
	}

	config := testConfig()
	config.MaxRetries = 2
	reindexer, err := NewReindexer(store, embedder, config, nil)
	require.NoError(t, err)

	_, err = reindexer.Run(context.Background())
	assert.ErrorContains(t, err, "model offline")
	assert.Equal(t, 2, embedder.CallCount(), "failure should be retried")
}
