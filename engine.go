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


// Package indexit is a document ingestion and retrieval engine. It
// extracts text from documents, chunks and embeds it into a vector
// store, and answers questions over the stored corpus.
package indexit

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/indexit/ai"
	"github.com/poiesic/indexit/ai/openai"
	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/graph"
	"github.com/poiesic/indexit/ingestion"
	"github.com/poiesic/indexit/query"
	"github.com/poiesic/indexit/reindex"
	"github.com/poiesic/indexit/retrieval"
	"github.com/poiesic/indexit/vectorstore"
)

// Engine bundles the ingestion, retrieval, query and graph subsystems
// over one vector store binding and one AI provider.
type Engine struct {
	store       vectorstore.Store
	provider    ai.Provider
	coordinator *ingestion.Coordinator
	retriever   *retrieval.Retriever
	answerer    *query.Engine
	builder     *graph.Builder
	collection  string
	logger      *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig    *ai.Config
	storeConfig StoreConfig
	provider    ai.Provider
	collection  string
	workers     int
	executor    ingestion.Executor
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithStoreConfig sets the vector store configuration. The remote
// backend is probed once at engine construction; an unreachable remote
// falls back to the embedded store.
func WithStoreConfig(config StoreConfig) EngineOption {
	return func(o *engineOptions) {
		o.storeConfig = config
	}
}

// WithProvider injects a pre-built AI provider. The engine takes
// ownership and closes it on Close. When set, the AI configuration is
// ignored.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithCollection sets the collection name shared by all subsystems.
// Default is "documents".
func WithCollection(name string) EngineOption {
	return func(o *engineOptions) {
		if name != "" {
			o.collection = name
		}
	}
}

// WithWorkers sets the batch ingestion worker count.
func WithWorkers(workers int) EngineOption {
	return func(o *engineOptions) {
		o.workers = workers
	}
}

// WithExecutor sets a distributed execution backend for batch ingestion.
func WithExecutor(executor ingestion.Executor) EngineOption {
	return func(o *engineOptions) {
		o.executor = executor
	}
}

// NewEngine connects the vector store, initializes the AI provider, and
// wires the subsystems together.
func NewEngine(ctx context.Context, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig:   ai.DefaultConfig(),
		collection: ingestion.DefaultCollection,
		workers:    ingestion.DefaultWorkers,
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := ConnectStore(ctx, options.storeConfig)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	coordinatorOpts := []ingestion.Option{
		ingestion.WithCollection(options.collection),
		ingestion.WithWorkers(options.workers),
	}
	if options.executor != nil {
		coordinatorOpts = append(coordinatorOpts, ingestion.WithExecutor(options.executor))
	}
	coordinator, err := ingestion.NewCoordinator(store, provider.Embedder(), coordinatorOpts...)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	retriever, err := retrieval.NewRetriever(store, provider.Embedder(),
		retrieval.WithCollection(options.collection))
	if err != nil {
		coordinator.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	answerer, err := query.NewEngine(retriever, provider.Completer())
	if err != nil {
		coordinator.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	builder, err := graph.NewBuilder(retriever)
	if err != nil {
		coordinator.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	return &Engine{
		store:       store,
		provider:    provider,
		coordinator: coordinator,
		retriever:   retriever,
		answerer:    answerer,
		builder:     builder,
		collection:  options.collection,
		logger:      slog.Default(),
	}, nil
}

// Close releases the worker pool, the AI provider and the vector store.
func (e *Engine) Close() error {
	e.coordinator.Release()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing vector store", "err", err)
		return err
	}
	return nil
}

// IngestDocument ingests one document and reports the outcome.
func (e *Engine) IngestDocument(ctx context.Context, doc ingestion.Document) core.ProcessingResult {
	return e.coordinator.IngestDocument(ctx, doc)
}

// IngestFile ingests one file from disk.
func (e *Engine) IngestFile(ctx context.Context, path string) core.ProcessingResult {
	return e.coordinator.IngestDocument(ctx, ingestion.Document{Path: path})
}

// IngestBatch ingests documents in parallel, one result per input.
func (e *Engine) IngestBatch(ctx context.Context, docs []ingestion.Document) []core.ProcessingResult {
	return e.coordinator.IngestBatch(ctx, docs)
}

// Search returns the chunks most relevant to the query.
func (e *Engine) Search(ctx context.Context, q string, opts ...retrieval.SearchOption) (*core.RetrievalResult, error) {
	return e.retriever.Retrieve(ctx, q, opts...)
}

// Ask answers a question over the ingested corpus.
func (e *Engine) Ask(ctx context.Context, question string, opts ...retrieval.SearchOption) (*query.Response, error) {
	return e.answerer.Ask(ctx, question, opts...)
}

// BuildGraph generates a knowledge graph over the ingested corpus.
func (e *Engine) BuildGraph(ctx context.Context, opts ...graph.BuildOption) (*core.KnowledgeGraph, error) {
	return e.builder.Build(ctx, opts...)
}

// Reindex re-embeds every stored chunk with the current embedder,
// writing progress to the given writer.
func (e *Engine) Reindex(ctx context.Context, progress io.Writer) (int, error) {
	config := reindex.DefaultConfig()
	config.Collection = e.collection
	reindexer, err := reindex.NewReindexer(e.store, e.provider.Embedder(), config, progress)
	if err != nil {
		return 0, err
	}
	return reindexer.Run(ctx)
}

// DeleteDocument removes all chunks of a document. Unknown ids are a
// no-op success.
func (e *Engine) DeleteDocument(ctx context.Context, documentID string) error {
	return e.coordinator.DeleteDocument(ctx, documentID)
}

// Clear removes the whole collection.
func (e *Engine) Clear(ctx context.Context) error {
	return e.coordinator.Clear(ctx)
}

// Count returns the number of stored chunks.
func (e *Engine) Count(ctx context.Context) (int, error) {
	return e.coordinator.Count(ctx)
}

// Store exposes the bound vector store.
func (e *Engine) Store() vectorstore.Store {
	return e.store
}

// Provider exposes the AI provider.
func (e *Engine) Provider() ai.Provider {
	return e.provider
}
