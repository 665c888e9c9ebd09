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


package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/indexit/ai"
	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/retrieval"
)

// NoInformationAnswer is returned verbatim when retrieval finds nothing
// relevant to the question.
const NoInformationAnswer = "No relevant information found to answer this question."

// Source is a citation for one chunk that contributed to an answer.
type Source struct {
	ID         string  `json:"id"`
	DocumentID string  `json:"document_id,omitempty"`
	Filename   string  `json:"filename,omitempty"`
	Score      float32 `json:"score"`
}

// Response is the outcome of one question.
type Response struct {
	Answer           string   `json:"answer"`
	Sources          []Source `json:"sources"`
	Confidence       float32  `json:"confidence"`
	ChunksUsed       int      `json:"chunks_used"`
	ProcessingTimeMS float64  `json:"processing_time_ms"`
}

// Engine answers questions by retrieval-augmented completion.
type Engine struct {
	retriever *retrieval.Retriever
	completer ai.Completer
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a query engine.
func NewEngine(retriever *retrieval.Retriever, completer ai.Completer, opts ...Option) (*Engine, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	e := &Engine{
		retriever: retriever,
		completer: completer,
		logger:    slog.Default().With("component", "query"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Ask retrieves context for the question and generates an answer.
// Retrieval options (top_k, filters, min_score) pass through unchanged.
//
// Confidence is the arithmetic mean of the retrieved chunks' similarity
// scores; an empty retrieval yields the fixed no-information answer with
// confidence 0.
func (e *Engine) Ask(ctx context.Context, question string, opts ...retrieval.SearchOption) (*Response, error) {
	start := time.Now()

	retrieved, err := e.retriever.Retrieve(ctx, question, opts...)
	if err != nil {
		return nil, err
	}

	if len(retrieved.Chunks) == 0 {
		e.logger.Debug("no relevant chunks for question", "question", question)
		return &Response{
			Answer:           NoInformationAnswer,
			Sources:          []Source{},
			Confidence:       0,
			ProcessingTimeMS: elapsedMS(start),
		}, nil
	}

	answer, err := e.completer.Complete(ctx, buildPrompt(question, retrieved.Chunks))
	if err != nil {
		e.logger.Error("error generating answer", "question", question, "err", err)
		return nil, err
	}

	response := &Response{
		Answer:           strings.TrimSpace(answer),
		Sources:          sources(retrieved.Chunks),
		Confidence:       meanScore(retrieved.Chunks),
		ChunksUsed:       len(retrieved.Chunks),
		ProcessingTimeMS: elapsedMS(start),
	}

	e.logger.Info("question answered",
		"question", question,
		"chunks_used", response.ChunksUsed,
		"confidence", response.Confidence)
	return response, nil
}

// buildPrompt concatenates the chunk contents, each tagged with its
// source id, followed by the question.
func buildPrompt(question string, chunks []core.SearchResult) string {
	var b strings.Builder
	b.WriteString("Answer the question using only the context below. " +
		"If the context does not contain the answer, say so.\n\nContext:\n")
	for _, chunk := range chunks {
		fmt.Fprintf(&b, "[source: %s]\n%s\n\n", chunk.ID, chunk.Content)
	}
	fmt.Fprintf(&b, "Question: %s\n\nAnswer:", question)
	return b.String()
}

func sources(chunks []core.SearchResult) []Source {
	out := make([]Source, len(chunks))
	for i, chunk := range chunks {
		source := Source{ID: chunk.ID, Score: chunk.Score}
		if v, ok := chunk.Metadata[core.MetaDocumentID]; ok {
			source.DocumentID, _ = v.Interface().(string)
		}
		if v, ok := chunk.Metadata[core.MetaFilename]; ok {
			source.Filename, _ = v.Interface().(string)
		}
		out[i] = source
	}
	return out
}

func meanScore(chunks []core.SearchResult) float32 {
	var sum float32
	for _, chunk := range chunks {
		sum += chunk.Score
	}
	return sum / float32(len(chunks))
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
