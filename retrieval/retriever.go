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


package retrieval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/indexit/ai"
	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/vectorstore"
)

const (
	// DefaultTopK is the number of chunks returned when the caller does
	// not ask for a specific count.
	DefaultTopK = 5

	// DefaultMinScore is the similarity threshold below which candidates
	// are discarded.
	DefaultMinScore = 0.5
)

// SearchOption adjusts a single Retrieve call.
type SearchOption func(*searchParams)

type searchParams struct {
	topK     int
	minScore float32
	filter   core.Filter
	monitor  Monitor
}

// WithTopK sets how many chunks to return. Values below 1 are ignored.
func WithTopK(topK int) SearchOption {
	return func(p *searchParams) {
		if topK >= 1 {
			p.topK = topK
		}
	}
}

// WithMinScore sets the similarity threshold for this call. Scores are
// in [0,1]; candidates strictly below the threshold are dropped.
func WithMinScore(minScore float32) SearchOption {
	return func(p *searchParams) {
		p.minScore = minScore
	}
}

// WithFilter restricts retrieval to chunks whose metadata matches.
func WithFilter(filter core.Filter) SearchOption {
	return func(p *searchParams) {
		p.filter = filter
	}
}

// WithMonitor attaches a monitor to this call.
func WithMonitor(monitor Monitor) SearchOption {
	return func(p *searchParams) {
		if monitor != nil {
			p.monitor = monitor
		}
	}
}

// Retriever runs thresholded semantic retrieval against a vector store
// collection.
type Retriever struct {
	store      vectorstore.Store
	embedder   ai.Embedder
	collection string
	logger     *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithCollection sets the collection to search. Default is "documents".
func WithCollection(name string) Option {
	return func(r *Retriever) error {
		if name == "" {
			return vectorstore.ErrCollectionRequired
		}
		r.collection = name
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a retriever.
func NewRetriever(store vectorstore.Store, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		store:      store,
		embedder:   embedder,
		collection: "documents",
		logger:     slog.Default().With("component", "retrieval"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns the chunks most relevant to the query, in descending
// score order. The store is asked for twice the requested count so the
// threshold has headroom; surviving candidates are deduplicated by chunk
// id (highest score wins) and truncated.
//
// A query that matches nothing yields an empty result, not an error. A
// store failure is returned as-is; partial results are never returned.
func (r *Retriever) Retrieve(ctx context.Context, query string, opts ...SearchOption) (*core.RetrievalResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	params := searchParams{
		topK:     DefaultTopK,
		minScore: DefaultMinScore,
		monitor:  &noopMonitor{},
	}
	for _, opt := range opts {
		opt(&params)
	}
	monitor := params.monitor
	monitor.Start(query)

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error embedding query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(vector)

	matches, err := r.store.Query(ctx, r.collection, vector, 2*params.topK, params.filter)
	if err != nil {
		r.logger.Error("error querying vector store", "collection", r.collection, "err", err)
		return nil, err
	}
	monitor.AfterStoreQuery(matches)

	kept := threshold(matches, params.minScore)
	monitor.AfterThreshold(kept)

	if len(kept) > params.topK {
		kept = kept[:params.topK]
	}

	result := &core.RetrievalResult{
		Chunks:       kept,
		Query:        query,
		TotalResults: len(kept),
		Filters:      params.filter,
	}
	monitor.Finish(result)

	r.logger.Debug("retrieval complete",
		"query", query,
		"candidates", len(matches),
		"returned", len(kept))
	return result, nil
}

// threshold drops candidates below minScore and deduplicates by id.
// Matches arrive in descending score order from the store, so the first
// occurrence of an id is its best score and order is preserved.
func threshold(matches []vectorstore.Match, minScore float32) []core.SearchResult {
	kept := make([]core.SearchResult, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, match := range matches {
		if match.Score < minScore {
			continue
		}
		if seen[match.ID] {
			continue
		}
		seen[match.ID] = true
		kept = append(kept, core.SearchResult{
			ID:       match.ID,
			Content:  match.Content,
			Score:    match.Score,
			Metadata: match.Metadata,
		})
	}
	return kept
}
