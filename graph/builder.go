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


package graph

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/retrieval"
)

const (
	// DefaultMaxNodes caps the tree size when the caller does not choose
	// one.
	DefaultMaxNodes = 50

	// DefaultDepth generates the full tree: themes, subtopics, concepts
	// and details under the root.
	DefaultDepth = 4

	// corpusTopK is the breadth of the retrieval sweep that assembles
	// the corpus.
	corpusTopK = 100

	// corpusQuery is deliberately generic; the sweep wants a
	// representative sample, not a focused answer.
	corpusQuery = "overview of all topics and subjects in the knowledge base"

	maxThemes    = 8
	maxSubtopics = 4
	maxConcepts  = 3
	maxDetails   = 2

	rootLabel = "Knowledge Base"
)

// BuildOption adjusts a single Build call.
type BuildOption func(*buildParams)

type buildParams struct {
	maxNodes int
	depth    int
	filter   core.Filter
}

// WithMaxNodes caps the total node count, root included. Values below 1
// are ignored.
func WithMaxNodes(maxNodes int) BuildOption {
	return func(p *buildParams) {
		if maxNodes >= 1 {
			p.maxNodes = maxNodes
		}
	}
}

// WithDepth limits how many levels are generated below the root, from 1
// (themes only) to 4 (details). Out-of-range values are clamped.
func WithDepth(depth int) BuildOption {
	return func(p *buildParams) {
		if depth < 1 {
			depth = 1
		}
		if depth > 4 {
			depth = 4
		}
		p.depth = depth
	}
}

// WithFilter restricts the corpus sweep to chunks whose metadata
// matches, typically a session scope.
func WithFilter(filter core.Filter) BuildOption {
	return func(p *buildParams) {
		p.filter = filter
	}
}

// Builder generates knowledge graphs from the ingested corpus.
type Builder struct {
	retriever *retrieval.Retriever
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a graph builder.
func NewBuilder(retriever *retrieval.Retriever, opts ...Option) (*Builder, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	b := &Builder{
		retriever: retriever,
		logger:    slog.Default().With("component", "graph"),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Build retrieves a broad corpus sample and generates the keyword tree.
// An empty corpus yields a graph with only the root node.
func (b *Builder) Build(ctx context.Context, opts ...BuildOption) (*core.KnowledgeGraph, error) {
	params := buildParams{
		maxNodes: DefaultMaxNodes,
		depth:    DefaultDepth,
	}
	for _, opt := range opts {
		opt(&params)
	}

	result, err := b.retriever.Retrieve(ctx, corpusQuery,
		retrieval.WithTopK(corpusTopK),
		retrieval.WithMinScore(0),
		retrieval.WithFilter(params.filter))
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, chunk := range result.Chunks {
		for _, line := range strings.Split(chunk.Content, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	}

	g := newGeneration(params.maxNodes, params.depth)
	g.grow(lines)

	graph := g.finish()
	b.logger.Info("knowledge graph built",
		"corpus_chunks", len(result.Chunks),
		"nodes", graph.Statistics.TotalNodes,
		"edges", graph.Statistics.TotalEdges,
		"depth", graph.Statistics.MaxDepth)
	return graph, nil
}

// generation accumulates nodes and edges for one Build call, enforcing
// the node budget.
type generation struct {
	nodes    []core.Node
	edges    []core.Edge
	maxNodes int
	depth    int
}

func newGeneration(maxNodes, depth int) *generation {
	return &generation{maxNodes: maxNodes, depth: depth}
}

// add creates a node, linked to its parent unless it is the root.
// Returns false without creating anything once the budget is spent.
func (g *generation) add(parentID, label string, nodeType core.NodeType) (string, bool) {
	if len(g.nodes) >= g.maxNodes {
		return "", false
	}
	id := fmt.Sprintf("n%d", len(g.nodes))
	g.nodes = append(g.nodes, core.Node{
		ID:    id,
		Label: label,
		Type:  nodeType,
		Level: nodeType.Level(),
	})
	if parentID != "" {
		g.edges = append(g.edges, core.Edge{
			ID:     fmt.Sprintf("e%d", len(g.edges)),
			Source: parentID,
			Target: id,
		})
	}
	return id, true
}

// branch is a node awaiting children: its corpus subset and the
// ancestor terms its descendants must not repeat.
type branch struct {
	id      string
	lines   []string
	exclude map[string]bool
}

// grow generates the tree one level at a time: every theme exists before
// any subtopic, every subtopic before any concept, and so on. The level
// order matters because the node budget can run out mid-level; spending
// it breadth-first keeps the tree balanced instead of burying the whole
// budget under the first theme.
func (g *generation) grow(lines []string) {
	rootID, ok := g.add("", rootLabel, core.NodeRoot)
	if !ok {
		return
	}

	levels := []struct {
		nodeType core.NodeType
		limit    int
		rich     bool
	}{
		{core.NodeTheme, maxThemes, false},
		{core.NodeSubtopic, maxSubtopics, false},
		{core.NodeConcept, maxConcepts, false},
		{core.NodeDetail, maxDetails, true},
	}

	current := []branch{{id: rootID, lines: lines, exclude: map[string]bool{}}}
	for i, level := range levels {
		if i >= g.depth {
			break
		}
		deeper := i+1 < g.depth && i+1 < len(levels)

		var next []branch
		for _, parent := range current {
			var terms []string
			if level.rich {
				terms = detailKeywords(parent.lines, level.limit, parent.exclude)
			} else {
				terms = keywords(parent.lines, level.limit, parent.exclude)
			}
			for _, term := range terms {
				id, ok := g.add(parent.id, term, level.nodeType)
				if !ok {
					return
				}
				if !deeper {
					continue
				}
				exclude := make(map[string]bool, len(parent.exclude)+1)
				for k := range parent.exclude {
					exclude[k] = true
				}
				exclude[strings.ToLower(term)] = true
				next = append(next, branch{
					id:      id,
					lines:   matchingLines(parent.lines, term),
					exclude: exclude,
				})
			}
		}
		current = next
	}
}

// finish assembles the graph and its statistics.
func (g *generation) finish() *core.KnowledgeGraph {
	levelCounts := make(map[int]int)
	maxLevel := 0
	for _, node := range g.nodes {
		levelCounts[node.Level]++
		if node.Level > maxLevel {
			maxLevel = node.Level
		}
	}

	hasChildren := make(map[string]bool, len(g.nodes))
	for _, edge := range g.edges {
		hasChildren[edge.Source] = true
	}
	leaves := 0
	for _, node := range g.nodes {
		if !hasChildren[node.ID] {
			leaves++
		}
	}

	depth := 0
	if len(g.nodes) > 0 {
		depth = maxLevel + 1
	}

	nodes := g.nodes
	if nodes == nil {
		nodes = []core.Node{}
	}
	edges := g.edges
	if edges == nil {
		edges = []core.Edge{}
	}

	return &core.KnowledgeGraph{
		Nodes: nodes,
		Edges: edges,
		Statistics: core.GraphStatistics{
			TotalNodes:  len(nodes),
			TotalEdges:  len(edges),
			MaxDepth:    depth,
			LeafCount:   leaves,
			LevelCounts: levelCounts,
		},
	}
}
