package badger

import (
	"context"
	"testing"

	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCollection = "documents"

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.EnsureCollection(context.Background(), testCollection, 3))
	return store
}

func item(docID string, index int, vector []float32, content string) vectorstore.Item {
	return vectorstore.Item{
		ID:      core.ChunkID(docID, index),
		Vector:  vector,
		Content: content,
		Metadata: core.Metadata{
			core.MetaDocumentID: core.String(docID),
			core.MetaChunkIndex: core.Int(int64(index)),
			core.MetaFilename:   core.String(docID + ".txt"),
			core.MetaFileType:   core.String("txt"),
		},
	}
}

func TestStore_UpsertAndQuery(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	items := []vectorstore.Item{
		item("doc-a", 0, []float32{1, 0, 0}, "alpha"),
		item("doc-a", 1, []float32{0, 1, 0}, "beta"),
		item("doc-b", 0, []float32{0.9, 0.1, 0}, "gamma"),
	}
	require.NoError(t, store.Upsert(ctx, testCollection, items))

	matches, err := store.Query(ctx, testCollection, []float32{1, 0, 0}, 10, nil)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// Descending score order, exact hit first.
	assert.Equal(t, "doc-a:0", matches[0].ID)
	assert.InDelta(t, 1.0, float64(matches[0].Score), 1e-5)
	for i := 0; i+1 < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i].Score, matches[i+1].Score)
	}
}

func TestStore_Query_Filter(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testCollection, []vectorstore.Item{
		item("doc-a", 0, []float32{1, 0, 0}, "alpha"),
		item("doc-b", 0, []float32{1, 0, 0}, "beta"),
		item("doc-c", 0, []float32{1, 0, 0}, "gamma"),
	}))

	t.Run("equality", func(t *testing.T) {
		matches, err := store.Query(ctx, testCollection, []float32{1, 0, 0}, 10,
			core.Eq(core.MetaDocumentID, core.String("doc-b")))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "doc-b:0", matches[0].ID)
	})

	t.Run("any-of", func(t *testing.T) {
		filter := core.Filter{
			core.MetaDocumentID: []core.Value{core.String("doc-a"), core.String("doc-c")},
		}
		matches, err := store.Query(ctx, testCollection, []float32{1, 0, 0}, 10, filter)
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})
}

func TestStore_Upsert_Idempotent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	items := []vectorstore.Item{
		item("doc-a", 0, []float32{1, 0, 0}, "first"),
		item("doc-a", 1, []float32{0, 1, 0}, "second"),
	}
	require.NoError(t, store.Upsert(ctx, testCollection, items))
	require.NoError(t, store.Upsert(ctx, testCollection, items))

	count, err := store.Count(ctx, testCollection)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "re-upserting the same ids must not duplicate")
}

func TestStore_Upsert_DimensionMismatch(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	err := store.Upsert(ctx, testCollection, []vectorstore.Item{
		item("doc-a", 0, []float32{1, 0}, "short vector"),
	})
	assert.ErrorIs(t, err, vectorstore.ErrDimensionMismatch)
}

func TestStore_Delete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testCollection, []vectorstore.Item{
		item("doc-a", 0, []float32{1, 0, 0}, "a0"),
		item("doc-a", 1, []float32{0, 1, 0}, "a1"),
		item("doc-b", 0, []float32{0, 0, 1}, "b0"),
	}))

	filter := core.Eq(core.MetaDocumentID, core.String("doc-a"))
	require.NoError(t, store.Delete(ctx, testCollection, filter))

	count, err := store.Count(ctx, testCollection)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Deleting again is a no-op success.
	require.NoError(t, store.Delete(ctx, testCollection, filter))
}

func TestStore_DropCollection_Idempotent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testCollection, []vectorstore.Item{
		item("doc-a", 0, []float32{1, 0, 0}, "a0"),
	}))

	require.NoError(t, store.DropCollection(ctx, testCollection))
	count, err := store.Count(ctx, testCollection)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Dropping a collection that no longer exists still succeeds.
	require.NoError(t, store.DropCollection(ctx, testCollection))
	count, err = store.Count(ctx, testCollection)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_Scroll(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	var items []vectorstore.Item
	for i := 0; i < 7; i++ {
		items = append(items, item("doc-a", i, []float32{1, 0, 0}, "x"))
	}
	require.NoError(t, store.Upsert(ctx, testCollection, items))

	seen := make(map[string]bool)
	cursor := ""
	pages := 0
	for {
		page, next, err := store.Scroll(ctx, testCollection, cursor, 3)
		require.NoError(t, err)
		for _, it := range page {
			assert.False(t, seen[it.ID], "scroll returned %s twice", it.ID)
			seen[it.ID] = true
		}
		pages++
		if next == "" {
			break
		}
		cursor = next
	}

	assert.Len(t, seen, 7)
	assert.Equal(t, 3, pages)
}

func TestStore_EmptyCollection(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	matches, err := store.Query(ctx, testCollection, []float32{1, 0, 0}, 5, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)

	count, err := store.Count(ctx, testCollection)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
