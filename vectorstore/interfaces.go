package vectorstore

import (
	"context"

	"github.com/poiesic/indexit/core"
)

// Item is a chunk as written to a vector store collection.
type Item struct {
	ID       string
	Vector   []float32
	Content  string
	Metadata core.Metadata
}

// Match is a single scored hit returned from a query.
// Score is a similarity in [0,1]; higher is more relevant.
type Match struct {
	ID       string
	Content  string
	Score    float32
	Metadata core.Metadata
}

// Store is the common contract of the remote and embedded vector stores.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// EnsureCollection creates the named collection if it does not exist.
	// Idempotent; implementations cache readiness so repeated calls are cheap.
	EnsureCollection(ctx context.Context, collection string, dimension int) error

	// Upsert writes items into the collection, overwriting items with the
	// same id. Items must carry vectors of the collection's dimension.
	Upsert(ctx context.Context, collection string, items []Item) error

	// Query returns up to topK matches for the vector, ordered by descending
	// similarity. A non-nil filter restricts candidates by metadata: each key
	// maps to an any-of list, keys combine with AND.
	Query(ctx context.Context, collection string, vector []float32, topK int, filter core.Filter) ([]Match, error)

	// Scroll pages through all items of a collection. Pass an empty cursor to
	// start; an empty returned cursor means the scan is complete.
	Scroll(ctx context.Context, collection string, cursor string, limit int) ([]Item, string, error)

	// Delete removes all items matching the filter.
	// Deleting items that do not exist is not an error.
	Delete(ctx context.Context, collection string, filter core.Filter) error

	// DropCollection removes the collection and all its items.
	// Dropping a collection that does not exist is a no-op success.
	DropCollection(ctx context.Context, collection string) error

	// Count returns the number of items in the collection.
	// A collection that does not exist counts as empty.
	Count(ctx context.Context, collection string) (int, error)

	// Close releases resources held by the store.
	Close() error
}
