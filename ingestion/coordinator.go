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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/indexit/ai"
	"github.com/poiesic/indexit/chunker"
	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/extract"
	"github.com/poiesic/indexit/vectorstore"
)

const (
	// DefaultCollection is the vector store collection documents land in.
	DefaultCollection = "documents"

	// DefaultWorkers is the size of the local worker pool for batch
	// ingestion.
	DefaultWorkers = 4

	// DefaultWriteBatchSize is the number of chunks per vector store
	// upsert request.
	DefaultWriteBatchSize = 64
)

// Document is one ingestion input. Either Path or Filename+Data must be
// set; when Data is nil the coordinator reads Path from disk. A zero
// DocumentID gets a generated one.
type Document struct {
	Path       string
	Filename   string
	Data       []byte
	DocumentID string
	Metadata   core.Metadata
}

// Coordinator runs the document ingestion pipeline: extract, chunk,
// embed, upsert.
type Coordinator struct {
	store      vectorstore.Store
	embedder   ai.Embedder
	splitter   *chunker.Chunker
	executor   Executor
	pool       *PoolExecutor
	collection string
	writeBatch int
	logger     *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithCollection sets the target collection. Default is "documents".
func WithCollection(name string) Option {
	return func(c *Coordinator) error {
		if name == "" {
			return vectorstore.ErrCollectionRequired
		}
		c.collection = name
		return nil
	}
}

// WithChunker sets the text chunker. Default is chunker.New().
func WithChunker(splitter *chunker.Chunker) Option {
	return func(c *Coordinator) error {
		if splitter != nil {
			c.splitter = splitter
		}
		return nil
	}
}

// WithWriteBatchSize sets the number of chunks per upsert request.
// Values below 1 are ignored.
func WithWriteBatchSize(size int) Option {
	return func(c *Coordinator) error {
		if size >= 1 {
			c.writeBatch = size
		}
		return nil
	}
}

// WithWorkers sets the local worker pool size for batch ingestion.
// Default is 4.
func WithWorkers(workers int) Option {
	return func(c *Coordinator) error {
		pool, err := NewPoolExecutor(workers)
		if err != nil {
			return err
		}
		if c.pool != nil {
			c.pool.Release()
		}
		c.pool = pool
		return nil
	}
}

// WithExecutor sets a distributed execution backend for batch ingestion.
// Tasks whose submission fails run on the local pool instead. The caller
// keeps ownership of the executor's lifecycle.
func WithExecutor(executor Executor) Option {
	return func(c *Coordinator) error {
		c.executor = executor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCoordinator creates an ingestion coordinator.
func NewCoordinator(store vectorstore.Store, embedder ai.Embedder, opts ...Option) (*Coordinator, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	pool, err := NewPoolExecutor(DefaultWorkers)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		store:      store,
		embedder:   embedder,
		splitter:   chunker.New(),
		pool:       pool,
		collection: DefaultCollection,
		writeBatch: DefaultWriteBatchSize,
		logger:     slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(c); optErr != nil {
			c.pool.Release()
			return nil, optErr
		}
	}

	return c, nil
}

// Collection returns the collection this coordinator writes to.
func (c *Coordinator) Collection() string {
	return c.collection
}

// IngestDocument runs the full pipeline for one document. Problems with
// the document itself (unsupported type, nothing to extract) and
// downstream failures (embedding, storage) all land in the returned
// result; this method never panics on bad input and never raises for a
// single bad document.
func (c *Coordinator) IngestDocument(ctx context.Context, doc Document) core.ProcessingResult {
	start := time.Now()

	filename := doc.Filename
	if filename == "" {
		filename = filepath.Base(doc.Path)
	}
	documentID := doc.DocumentID
	if documentID == "" {
		documentID = uuid.NewString()
	}

	data := doc.Data
	if data == nil {
		var err error
		data, err = os.ReadFile(doc.Path)
		if err != nil {
			return c.failed(documentID, filename, fmt.Sprintf("read file: %v", err))
		}
	}

	text, err := extract.Text(filename, data)
	if err != nil {
		return c.failed(documentID, filename, err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return c.failed(documentID, filename, "no text content extracted")
	}

	meta := doc.Metadata.Clone()
	if meta == nil {
		meta = core.Metadata{}
	}
	meta[core.MetaFilename] = core.String(filename)
	meta[core.MetaFileType] = core.String(extract.Type(filename))

	chunks := c.splitter.Chunk(text, documentID, meta)
	if len(chunks) == 0 {
		return c.failed(documentID, filename, "no text content extracted")
	}

	if err := c.store.EnsureCollection(ctx, c.collection, c.embedder.Dimension()); err != nil {
		return c.failed(documentID, filename, fmt.Sprintf("prepare collection: %v", err))
	}

	contents := make([]string, len(chunks))
	for i, chunk := range chunks {
		contents[i] = chunk.Content
	}
	vectors, err := c.embedder.EmbedTexts(ctx, contents)
	if err != nil {
		return c.failed(documentID, filename, fmt.Sprintf("embed chunks: %v", err))
	}
	if len(vectors) != len(chunks) {
		return c.failed(documentID, filename,
			fmt.Sprintf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks)))
	}

	items := make([]vectorstore.Item, len(chunks))
	for i, chunk := range chunks {
		items[i] = vectorstore.Item{
			ID:       chunk.ID,
			Vector:   vectors[i],
			Content:  chunk.Content,
			Metadata: chunk.Metadata,
		}
	}
	for offset := 0; offset < len(items); offset += c.writeBatch {
		end := offset + c.writeBatch
		if end > len(items) {
			end = len(items)
		}
		if err := c.store.Upsert(ctx, c.collection, items[offset:end]); err != nil {
			return c.failed(documentID, filename, fmt.Sprintf("store chunks: %v", err))
		}
	}

	elapsed := time.Since(start)
	c.logger.Info("document ingested",
		"document_id", documentID,
		"filename", filename,
		"chunks", len(chunks),
		"elapsed", elapsed)

	return core.ProcessingResult{
		Success:          true,
		DocumentID:       documentID,
		Filename:         filename,
		ChunksCreated:    len(chunks),
		ProcessingTimeMS: float64(elapsed) / float64(time.Millisecond),
		Metadata:         doc.Metadata,
	}
}

// IngestBatch ingests documents in parallel and returns one result per
// input, in input order. Individual failures never abort the batch.
func (c *Coordinator) IngestBatch(ctx context.Context, docs []Document) []core.ProcessingResult {
	results := make([]core.ProcessingResult, len(docs))
	var wg sync.WaitGroup
	for i := range docs {
		wg.Add(1)
		c.submit(func() {
			defer wg.Done()
			results[i] = c.IngestDocument(ctx, docs[i])
		})
	}
	wg.Wait()
	return results
}

// submit schedules a batch task, preferring the configured executor and
// falling back to the local pool when it cannot accept work.
func (c *Coordinator) submit(task func()) {
	if c.executor != nil {
		err := c.executor.Submit(task)
		if err == nil {
			return
		}
		c.logger.Debug("executor rejected task, using local pool", "err", err)
	}
	if err := c.pool.Submit(task); err != nil {
		// The pool only rejects after Release; run inline so the batch
		// still completes.
		task()
	}
}

// DeleteDocument removes every chunk of a document. Deleting a document
// that does not exist is a no-op success.
func (c *Coordinator) DeleteDocument(ctx context.Context, documentID string) error {
	return c.store.Delete(ctx, c.collection, core.Eq(core.MetaDocumentID, core.String(documentID)))
}

// Clear drops the whole collection. Clearing a collection that does not
// exist is a no-op success.
func (c *Coordinator) Clear(ctx context.Context) error {
	return c.store.DropCollection(ctx, c.collection)
}

// Count returns the number of stored chunks.
func (c *Coordinator) Count(ctx context.Context) (int, error) {
	return c.store.Count(ctx, c.collection)
}

// Release frees the local worker pool. A caller-supplied executor is not
// released; its owner is responsible for it.
func (c *Coordinator) Release() {
	c.pool.Release()
}

func (c *Coordinator) failed(documentID, filename, reason string) core.ProcessingResult {
	c.logger.Warn("document ingestion failed",
		"document_id", documentID,
		"filename", filename,
		"reason", reason)
	return core.FailedResult(documentID, filename, reason)
}
