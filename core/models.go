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


package core

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique numeric identifier derived from content.
// It is used where a compact, deterministic handle is needed
// (graph node de-duplication, collection bookkeeping).
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ChunkID derives the stable identifier for a chunk from its document and
// position. Re-ingesting the same document produces identical chunk ids, so
// writes to the vector store upsert instead of duplicating.
func ChunkID(documentID string, index int) string {
	return documentID + ":" + strconv.Itoa(index)
}

// Standard metadata keys carried by every chunk.
const (
	MetaDocumentID = "document_id"
	MetaChunkIndex = "chunk_index"
	MetaFilename   = "filename"
	MetaFileType   = "file_type"
)

// Chunk is a bounded unit of document text stored and embedded independently.
// Content length is at most the configured chunk size, except when a single
// paragraph exceeds it, or for the final chunk of a document which may be
// shorter. Metadata always carries document_id, chunk_index, filename and
// file_type plus any caller-supplied fields.
type Chunk struct {
	ID       string
	Content  string
	Vector   []float32 // Embedding vector (populated by the ingestion coordinator)
	Metadata Metadata
}

// ProcessingResult describes the outcome of one document ingestion attempt.
// A failed result always carries a non-empty Error string; batch callers use
// it to continue past bad documents instead of aborting.
type ProcessingResult struct {
	Success          bool     `json:"success"`
	DocumentID       string   `json:"document_id"`
	Filename         string   `json:"filename"`
	ChunksCreated    int      `json:"chunks_created"`
	ProcessingTimeMS float64  `json:"processing_time_ms"`
	Error            string   `json:"error,omitempty"`
	Metadata         Metadata `json:"metadata,omitempty"`
}

// FailedResult builds a ProcessingResult for a document that could not be ingested.
func FailedResult(documentID, filename, reason string) ProcessingResult {
	return ProcessingResult{
		Success:    false,
		DocumentID: documentID,
		Filename:   filename,
		Error:      reason,
	}
}

// SearchResult is a single scored hit from the vector store.
// Score is a similarity in [0,1]; higher is more relevant.
type SearchResult struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Score    float32  `json:"score"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// RetrievalResult is the ordered, thresholded outcome of one retrieval call.
// Chunks are ordered by descending score, ties broken by store order.
type RetrievalResult struct {
	Chunks       []SearchResult `json:"chunks"`
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
	Filters      Filter         `json:"filters_applied,omitempty"`
}

// NodeType classifies a knowledge-graph node by its level in the tree.
type NodeType string

const (
	NodeRoot     NodeType = "root"
	NodeTheme    NodeType = "theme"
	NodeSubtopic NodeType = "subtopic"
	NodeConcept  NodeType = "concept"
	NodeDetail   NodeType = "detail"
)

// Level returns the tree level a node of this type occupies.
// Returns -1 for unknown types.
func (t NodeType) Level() int {
	switch t {
	case NodeRoot:
		return 0
	case NodeTheme:
		return 1
	case NodeSubtopic:
		return 2
	case NodeConcept:
		return 3
	case NodeDetail:
		return 4
	}
	return -1
}

// Node is a single entry in a knowledge graph.
// Level is always exactly one more than its parent's level.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     NodeType `json:"type"`
	Level    int      `json:"level"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Edge connects a knowledge-graph node to its parent.
// Every non-root node has exactly one incoming edge.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// GraphStatistics summarizes a generated knowledge graph.
type GraphStatistics struct {
	TotalNodes  int         `json:"total_nodes"`
	TotalEdges  int         `json:"total_edges"`
	MaxDepth    int         `json:"max_depth"`
	LeafCount   int         `json:"leaf_count"`
	LevelCounts map[int]int `json:"level_counts"`
}

// KnowledgeGraph is a bounded, leveled tree of keywords extracted from a
// corpus. It is request-scoped and never persisted.
type KnowledgeGraph struct {
	Nodes      []Node          `json:"nodes"`
	Edges      []Edge          `json:"edges"`
	Statistics GraphStatistics `json:"statistics"`
}
