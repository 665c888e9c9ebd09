package ingestion

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/poiesic/indexit/ai/mock"
	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/vectorstore/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCoordinator(t *testing.T, opts ...Option) (*Coordinator, *badger.Store) {
	t.Helper()
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	coordinator, err := NewCoordinator(store, mock.NewMockEmbedder(), opts...)
	require.NoError(t, err)
	t.Cleanup(coordinator.Release)
	return coordinator, store
}

func textDocument(id, content string) Document {
	return Document{
		Filename:   id + ".txt",
		Data:       []byte(content),
		DocumentID: id,
	}
}

func TestNewCoordinator_Validation(t *testing.T) {
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	_, err = NewCoordinator(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewCoordinator(store, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestIngestDocument(t *testing.T) {
	coordinator, store := setupCoordinator(t)
	ctx := context.Background()

	result := coordinator.IngestDocument(ctx, textDocument("doc-1", "some document text"))

	assert.True(t, result.Success)
	assert.Equal(t, "doc-1", result.DocumentID)
	assert.Equal(t, "doc-1.txt", result.Filename)
	assert.Equal(t, 1, result.ChunksCreated)
	assert.GreaterOrEqual(t, result.ProcessingTimeMS, 0.0)
	assert.Empty(t, result.Error)

	count, err := store.Count(ctx, DefaultCollection)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestDocument_GeneratesDocumentID(t *testing.T) {
	coordinator, _ := setupCoordinator(t)

	result := coordinator.IngestDocument(context.Background(), Document{
		Filename: "anon.txt",
		Data:     []byte("text without an id"),
	})
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.DocumentID)
}

func TestIngestDocument_UnsupportedType(t *testing.T) {
	coordinator, store := setupCoordinator(t)
	ctx := context.Background()

	result := coordinator.IngestDocument(ctx, Document{
		Filename:   "binary.exe",
		Data:       []byte{0x4d, 0x5a},
		DocumentID: "doc-1",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unsupported file type")

	count, err := store.Count(ctx, DefaultCollection)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "failed documents must not write chunks")
}

func TestIngestDocument_EmptyText(t *testing.T) {
	coordinator, _ := setupCoordinator(t)

	result := coordinator.IngestDocument(context.Background(), textDocument("doc-1", "   \n\n  "))
	assert.False(t, result.Success)
	assert.Equal(t, "no text content extracted", result.Error)
}

func TestIngestDocument_EmbedderFailure(t *testing.T) {
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("model offline")
	}

	coordinator, err := NewCoordinator(store, embedder)
	require.NoError(t, err)
	defer coordinator.Release()

	result := coordinator.IngestDocument(context.Background(), textDocument("doc-1", "text"))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "model offline")
}

func TestIngestDocument_ReingestUpserts(t *testing.T) {
	coordinator, store := setupCoordinator(t)
	ctx := context.Background()

	first := coordinator.IngestDocument(ctx, textDocument("doc-1", "original text"))
	require.True(t, first.Success)
	second := coordinator.IngestDocument(ctx, textDocument("doc-1", "revised text"))
	require.True(t, second.Success)

	count, err := store.Count(ctx, DefaultCollection)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "same document id must overwrite, not duplicate")
}

func TestIngestDocument_WriteBatching(t *testing.T) {
	// Force many chunks through a tiny write batch; every chunk must
	// still arrive.
	coordinator, store := setupCoordinator(t, WithWriteBatchSize(2))
	ctx := context.Background()

	var parts []string
	for i := 0; i < 7; i++ {
		parts = append(parts, strings.Repeat("paragraph text ", 60))
	}
	doc := textDocument("doc-1", strings.Join(parts, "\n\n"))

	result := coordinator.IngestDocument(ctx, doc)
	require.True(t, result.Success)
	require.Greater(t, result.ChunksCreated, 2)

	count, err := store.Count(ctx, DefaultCollection)
	require.NoError(t, err)
	assert.Equal(t, result.ChunksCreated, count)
}

func TestIngestBatch(t *testing.T) {
	coordinator, _ := setupCoordinator(t, WithWorkers(2))
	ctx := context.Background()

	docs := []Document{
		textDocument("doc-1", "first document"),
		{Filename: "bad.exe", Data: []byte{1}, DocumentID: "doc-2"},
		textDocument("doc-3", "third document"),
	}
	results := coordinator.IngestBatch(ctx, docs)

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.Equal(t, "doc-1", results[0].DocumentID)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].Success)
	assert.Equal(t, "doc-3", results[2].DocumentID)
}

type failingExecutor struct {
	calls atomic.Int32
}

func (f *failingExecutor) Submit(func()) error {
	f.calls.Add(1)
	return ErrExecutorUnavailable
}

func (f *failingExecutor) Release() {}

func TestIngestBatch_ExecutorFallback(t *testing.T) {
	executor := &failingExecutor{}
	coordinator, _ := setupCoordinator(t, WithExecutor(executor))
	ctx := context.Background()

	results := coordinator.IngestBatch(ctx, []Document{
		textDocument("doc-1", "first"),
		textDocument("doc-2", "second"),
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.Equal(t, int32(2), executor.calls.Load(), "every task is offered to the executor first")
}

type recordingExecutor struct {
	calls atomic.Int32
}

func (r *recordingExecutor) Submit(task func()) error {
	r.calls.Add(1)
	go task()
	return nil
}

func (r *recordingExecutor) Release() {}

func TestIngestBatch_ExecutorPreferred(t *testing.T) {
	executor := &recordingExecutor{}
	coordinator, _ := setupCoordinator(t, WithExecutor(executor))

	results := coordinator.IngestBatch(context.Background(), []Document{
		textDocument("doc-1", "first"),
		textDocument("doc-2", "second"),
	})

	require.Len(t, results, 2)
	assert.Equal(t, int32(2), executor.calls.Load())
}

func TestDeleteDocument_Idempotent(t *testing.T) {
	coordinator, store := setupCoordinator(t)
	ctx := context.Background()

	require.True(t, coordinator.IngestDocument(ctx, textDocument("doc-1", "text")).Success)
	require.NoError(t, coordinator.DeleteDocument(ctx, "doc-1"))

	count, err := store.Count(ctx, DefaultCollection)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, coordinator.DeleteDocument(ctx, "doc-1"))
	require.NoError(t, coordinator.DeleteDocument(ctx, "never-existed"))
}

func TestClearAndCount(t *testing.T) {
	coordinator, _ := setupCoordinator(t)
	ctx := context.Background()

	require.True(t, coordinator.IngestDocument(ctx, textDocument("doc-1", "text")).Success)

	count, err := coordinator.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, coordinator.Clear(ctx))
	count, err = coordinator.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Clearing again is still a success.
	require.NoError(t, coordinator.Clear(ctx))
}

func TestIngestDocument_HTMLChunkedByParagraph(t *testing.T) {
	coordinator, store := setupCoordinator(t)
	ctx := context.Background()

	// Ten paragraphs of ~460 bytes each. If extraction flattened the
	// paragraph structure the whole page would land in one oversized
	// chunk; with it intact the default chunk size holds.
	var page strings.Builder
	page.WriteString("<html><body>")
	for i := 0; i < 10; i++ {
		page.WriteString("<p>")
		page.WriteString(strings.Repeat("searchable sentence content. ", 16))
		page.WriteString("</p>")
	}
	page.WriteString("</body></html>")

	result := coordinator.IngestDocument(ctx, Document{
		Filename:   "page.html",
		Data:       []byte(page.String()),
		DocumentID: "doc-1",
	})
	require.True(t, result.Success)
	assert.Greater(t, result.ChunksCreated, 1)

	items, _, err := store.Scroll(ctx, DefaultCollection, "", 100)
	require.NoError(t, err)
	require.Len(t, items, result.ChunksCreated)
	for _, item := range items {
		assert.LessOrEqual(t, len(item.Content), 1000,
			"chunk %s exceeds the configured size", item.ID)
	}
}

func TestIngestDocument_MetadataOnChunks(t *testing.T) {
	coordinator, store := setupCoordinator(t)
	ctx := context.Background()

	doc := textDocument("doc-1", "tagged text")
	doc.Metadata = core.Metadata{"session_id": core.String("session-9")}
	require.True(t, coordinator.IngestDocument(ctx, doc).Success)

	items, _, err := store.Scroll(ctx, DefaultCollection, "", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)

	meta := items[0].Metadata
	assert.True(t, meta["session_id"].Equal(core.String("session-9")))
	assert.True(t, meta[core.MetaFilename].Equal(core.String("doc-1.txt")))
	assert.True(t, meta[core.MetaFileType].Equal(core.String("txt")))
}
