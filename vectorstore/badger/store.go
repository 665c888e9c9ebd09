// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/vectorstore"
)

// Store is a vectorstore.Store backed by an embedded BadgerDB database.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// dimensions caches collection dimensions once read or written.
	mu         sync.Mutex
	dimensions map[string]int
}

var _ vectorstore.Store = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to the badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens a BadgerDB-backed store at the specified path.
// Creates the directory if it doesn't exist.
func OpenStore(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		logger:     slog.Default().With("component", "badger-store"),
		dimensions: make(map[string]int),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx executes a function within a BadgerDB transaction.
func (s *Store) withTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := s.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// EnsureCollection records the collection's vector dimension if not present.
// The dimension is cached so repeated calls don't touch the database.
func (s *Store) EnsureCollection(ctx context.Context, collection string, dimension int) error {
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}

	s.mu.Lock()
	if _, ok := s.dimensions[collection]; ok {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	err := s.withTx(func(tx *badger.Txn) error {
		key := makeDimensionKey(collection)
		_, err := tx.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		if err := tx.Set(key, MarshalDimension(dimension)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.dimensions[collection] = dimension
	s.mu.Unlock()
	return nil
}

// Upsert writes items, overwriting items with the same id.
func (s *Store) Upsert(ctx context.Context, collection string, items []vectorstore.Item) error {
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}
	if len(items) == 0 {
		return nil
	}

	dimension, err := s.dimension(collection)
	if err != nil {
		return err
	}

	return s.withTx(func(tx *badger.Txn) error {
		for _, item := range items {
			if len(item.Vector) == 0 {
				return fmt.Errorf("item %q: %w", item.ID, vectorstore.ErrEmptyVector)
			}
			if dimension > 0 && len(item.Vector) != dimension {
				return fmt.Errorf("item %q: %w: got %d, collection has %d",
					item.ID, vectorstore.ErrDimensionMismatch, len(item.Vector), dimension)
			}
			chunk := core.Chunk{
				ID:       item.ID,
				Content:  item.Content,
				Vector:   item.Vector,
				Metadata: item.Metadata,
			}
			if err := tx.Set(makeChunkKey(collection, item.ID), MarshalChunk(&chunk)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Query scans the collection, scoring every chunk by cosine similarity.
// Matches are ordered by descending score; ties keep scan order.
func (s *Store) Query(ctx context.Context, collection string, vector []float32, topK int, filter core.Filter) ([]vectorstore.Match, error) {
	if collection == "" {
		return nil, vectorstore.ErrCollectionRequired
	}
	if len(vector) == 0 {
		return nil, vectorstore.ErrEmptyVector
	}
	if topK <= 0 {
		topK = 10
	}

	var matches []vectorstore.Match
	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil || len(chunk.Vector) == 0 {
				continue
			}
			if !filter.Matches(chunk.Metadata) {
				continue
			}
			matches = append(matches, vectorstore.Match{
				ID:       chunk.ID,
				Content:  chunk.Content,
				Score:    cosineSimilarity(vector, chunk.Vector),
				Metadata: chunk.Metadata,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Scroll pages through the collection in key order. The cursor is the last
// key of the previous page; an empty returned cursor ends the scan.
func (s *Store) Scroll(ctx context.Context, collection string, cursor string, limit int) ([]vectorstore.Item, string, error) {
	if collection == "" {
		return nil, "", vectorstore.ErrCollectionRequired
	}
	if limit <= 0 {
		limit = 100
	}

	var items []vectorstore.Item
	var next string
	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		if cursor == "" {
			iter.Rewind()
		} else {
			iter.Seek([]byte(cursor))
			// The cursor key itself was returned in the previous page.
			if iter.Valid() && bytes.Equal(iter.Item().Key(), []byte(cursor)) {
				iter.Next()
			}
		}

		for ; iter.Valid(); iter.Next() {
			if len(items) == limit {
				// More items remain; the cursor is the last returned key,
				// skipped by the Seek above on the next call.
				next = string(makeChunkKey(collection, items[len(items)-1].ID))
				return nil
			}
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			items = append(items, vectorstore.Item{
				ID:       chunk.ID,
				Vector:   chunk.Vector,
				Content:  chunk.Content,
				Metadata: chunk.Metadata,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, "", err
	}
	return items, next, nil
}

// Delete removes all chunks matching the filter.
// Deleting chunks that do not exist is not an error.
func (s *Store) Delete(ctx context.Context, collection string, filter core.Filter) error {
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}

	return s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(collection)
		iter := tx.NewIterator(opts)

		var doomed [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = UnmarshalChunk(val)
				return err
			})
			if err != nil {
				iter.Close()
				return err
			}
			if filter.Matches(chunk.Metadata) {
				doomed = append(doomed, iter.Item().KeyCopy(nil))
			}
		}
		iter.Close()

		for _, key := range doomed {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DropCollection removes every chunk of the collection and its dimension
// record. Dropping a collection that does not exist is a no-op success.
func (s *Store) DropCollection(ctx context.Context, collection string) error {
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}

	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(collection)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var doomed [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			doomed = append(doomed, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range doomed {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		if err := tx.Delete(makeDimensionKey(collection)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.dimensions, collection)
	s.mu.Unlock()
	return nil
}

// Count returns the number of chunks in the collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	if collection == "" {
		return 0, vectorstore.ErrCollectionRequired
	}

	count := 0
	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(collection)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// dimension returns the cached or stored dimension for a collection.
// Returns 0 when the collection has no dimension record yet.
func (s *Store) dimension(collection string) (int, error) {
	s.mu.Lock()
	if dim, ok := s.dimensions[collection]; ok {
		s.mu.Unlock()
		return dim, nil
	}
	s.mu.Unlock()

	dim := 0
	err := s.withTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDimensionKey(collection))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			dim, err = UnmarshalDimension(val)
			return err
		})
	}, false)
	if err != nil {
		return 0, err
	}

	if dim > 0 {
		s.mu.Lock()
		s.dimensions[collection] = dim
		s.mu.Unlock()
	}
	return dim, nil
}

// cosineSimilarity computes the cosine similarity of two vectors, clamped
// into [0,1] so both backends expose identical score semantics.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return float32(score)
}
