package indexit

import (
	"context"
	"testing"

	"github.com/poiesic/indexit/ai/mock"
	"github.com/poiesic/indexit/graph"
	"github.com/poiesic/indexit/ingestion"
	"github.com/poiesic/indexit/query"
	"github.com/poiesic/indexit/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEngine builds an engine over the in-memory embedded store with a
// deterministic mock provider.
func setupEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestEngine_IngestAndSearch(t *testing.T) {
	engine := setupEngine(t)
	ctx := context.Background()

	result := engine.IngestDocument(ctx, ingestion.Document{
		Filename:   "notes.txt",
		Data:       []byte("the deployment pipeline runs nightly builds"),
		DocumentID: "doc-1",
	})
	require.True(t, result.Success)
	require.Equal(t, 1, result.ChunksCreated)

	count, err := engine.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The hash embedder is deterministic, so querying with the exact
	// chunk text is a guaranteed hit.
	found, err := engine.Search(ctx, "the deployment pipeline runs nightly builds")
	require.NoError(t, err)
	require.Equal(t, 1, found.TotalResults)
	assert.Equal(t, "doc-1:0", found.Chunks[0].ID)
}

func TestEngine_IngestBatchMixedResults(t *testing.T) {
	engine := setupEngine(t)

	results := engine.IngestBatch(context.Background(), []ingestion.Document{
		{Filename: "good.txt", Data: []byte("useful content"), DocumentID: "doc-1"},
		{Filename: "bad.bin", Data: []byte{0}, DocumentID: "doc-2"},
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
}

func TestEngine_AskEmptyStore(t *testing.T) {
	engine := setupEngine(t)

	response, err := engine.Ask(context.Background(), "anything at all?")
	require.NoError(t, err)
	assert.Equal(t, query.NoInformationAnswer, response.Answer)
	assert.Equal(t, float32(0), response.Confidence)
}

func TestEngine_AskAfterIngest(t *testing.T) {
	engine := setupEngine(t)
	ctx := context.Background()

	ingested := engine.IngestDocument(ctx, ingestion.Document{
		Filename:   "facts.txt",
		Data:       []byte("the warehouse moved to Rotterdam in March"),
		DocumentID: "doc-1",
	})
	require.True(t, ingested.Success)

	response, err := engine.Ask(ctx, "the warehouse moved to Rotterdam in March",
		retrieval.WithMinScore(0.9))
	require.NoError(t, err)
	assert.Equal(t, "mock answer", response.Answer)
	assert.NotEmpty(t, response.Sources)
	assert.Greater(t, response.Confidence, float32(0.9))
}

func TestEngine_DeleteAndClear(t *testing.T) {
	engine := setupEngine(t)
	ctx := context.Background()

	require.True(t, engine.IngestDocument(ctx, ingestion.Document{
		Filename: "a.txt", Data: []byte("first"), DocumentID: "doc-1",
	}).Success)
	require.True(t, engine.IngestDocument(ctx, ingestion.Document{
		Filename: "b.txt", Data: []byte("second"), DocumentID: "doc-2",
	}).Success)

	require.NoError(t, engine.DeleteDocument(ctx, "doc-1"))
	count, err := engine.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, engine.Clear(ctx))
	count, err = engine.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestEngine_BuildGraph(t *testing.T) {
	engine := setupEngine(t)
	ctx := context.Background()

	require.True(t, engine.IngestDocument(ctx, ingestion.Document{
		Filename:   "report.txt",
		Data:       []byte("revenue grew and revenue targets moved\n\nrevenue planning continues"),
		DocumentID: "doc-1",
	}).Success)

	g, err := engine.BuildGraph(ctx, graph.WithMaxNodes(10))
	require.NoError(t, err)
	assert.NotEmpty(t, g.Nodes)
	assert.LessOrEqual(t, g.Statistics.TotalNodes, 10)
}

func TestEngine_Reindex(t *testing.T) {
	engine := setupEngine(t)
	ctx := context.Background()

	require.True(t, engine.IngestDocument(ctx, ingestion.Document{
		Filename: "a.txt", Data: []byte("reindex me"), DocumentID: "doc-1",
	}).Success)

	n, err := engine.Reindex(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
