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


package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/indexit/ai"
	"github.com/poiesic/indexit/vectorstore"
)

// Config holds configuration for the reindexing operation.
type Config struct {
	// Collection is the collection to reindex. Default "documents".
	Collection string

	// BatchSize is the number of chunks re-embedded per round trip.
	BatchSize int

	// MaxRetries is the maximum number of attempts for embedding calls.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Collection: "documents",
		BatchSize:  100,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// Reindexer re-embeds every chunk in a collection in place.
type Reindexer struct {
	store    vectorstore.Store
	embedder ai.Embedder
	config   *Config
	progress io.Writer
}

// NewReindexer creates a reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(store vectorstore.Store, embedder ai.Embedder, config *Config, progress io.Writer) (*Reindexer, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reindexer{
		store:    store,
		embedder: embedder,
		config:   config,
		progress: progress,
	}, nil
}

// Run scrolls the whole collection and re-embeds it batch by batch.
// Returns the number of chunks reindexed.
func (r *Reindexer) Run(ctx context.Context) (int, error) {
	total, err := r.store.Count(ctx, r.config.Collection)
	if err != nil {
		return 0, fmt.Errorf("count collection: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "Collection %q is empty, nothing to reindex\n", r.config.Collection)
		return 0, nil
	}

	fmt.Fprintf(r.progress, "Reindexing %d chunks in %q...\n", total, r.config.Collection)
	startTime := time.Now()

	processed := 0
	cursor := ""
	for {
		items, next, err := r.store.Scroll(ctx, r.config.Collection, cursor, r.config.BatchSize)
		if err != nil {
			return processed, fmt.Errorf("scroll collection: %w", err)
		}
		if len(items) == 0 {
			break
		}

		if err := r.processBatch(ctx, items); err != nil {
			return processed, err
		}
		processed += len(items)
		fmt.Fprintf(r.progress, "  %d/%d chunks reindexed\n", processed, total)

		if next == "" {
			break
		}
		cursor = next
	}

	elapsed := time.Since(startTime).Round(time.Millisecond)
	fmt.Fprintf(r.progress, "Done: %d chunks reindexed in %s\n", processed, elapsed)
	return processed, nil
}

// processBatch regenerates embeddings for one batch and writes the
// chunks back under their existing ids.
func (r *Reindexer) processBatch(ctx context.Context, items []vectorstore.Item) error {
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Content
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = r.embedder.EmbedTexts(ctx, texts)
		return err
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", r.config.MaxRetries, err)
	}
	if len(embeddings) != len(items) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(items), len(embeddings))
	}

	for i := range items {
		items[i].Vector = embeddings[i]
	}

	err = RetryWithBackoff(ctx, func() error {
		return r.store.Upsert(ctx, r.config.Collection, items)
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to store embeddings after %d attempts: %w", r.config.MaxRetries, err)
	}
	return nil
}
