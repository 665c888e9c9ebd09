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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/indexit"
	"github.com/poiesic/indexit/ai"
	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/graph"
	"github.com/poiesic/indexit/ingestion"
	"github.com/poiesic/indexit/retrieval"
)

func main() {
	// A missing .env file is fine; flags and environment still apply.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "indexit",
		Usage: "Document ingestion and retrieval engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "qdrant-url",
				Usage:   "Remote vector store URL (falls back to embedded store if unreachable)",
				EnvVars: []string{"INDEXIT_QDRANT_URL"},
			},
			&cli.StringFlag{
				Name:    "qdrant-api-key",
				Usage:   "Remote vector store API key",
				EnvVars: []string{"INDEXIT_QDRANT_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory for the embedded vector store",
				Value:   "indexit-data",
				EnvVars: []string{"INDEXIT_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:    "collection",
				Usage:   "Vector store collection name",
				Value:   "documents",
				EnvVars: []string{"INDEXIT_COLLECTION"},
			},
			&cli.StringFlag{
				Name:    "ai-host",
				Usage:   "OpenAI-compatible service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"INDEXIT_AI_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "embeddinggemma",
				EnvVars: []string{"INDEXIT_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "completion-model",
				Usage:   "Completion model name",
				Value:   "qwen2.5:3b",
				EnvVars: []string{"INDEXIT_COMPLETION_MODEL"},
			},
			&cli.IntFlag{
				Name:    "embedding-dimension",
				Usage:   "Embedding vector dimension",
				Value:   384,
				EnvVars: []string{"INDEXIT_EMBEDDING_DIMENSION"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest documents into the vector store",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Parallel ingestion workers",
						Value: ingestion.DefaultWorkers,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Find the chunks most relevant to a query",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks to return",
						Value: retrieval.DefaultTopK,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Similarity threshold in [0,1]",
						Value: retrieval.DefaultMinScore,
					},
					&cli.StringFlag{
						Name:  "document-id",
						Usage: "Restrict to one document",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Answer a question over the ingested corpus",
				ArgsUsage: "QUESTION",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of context chunks",
						Value: retrieval.DefaultTopK,
					},
					&cli.StringFlag{
						Name:  "document-id",
						Usage: "Restrict to one document",
					},
				},
			},
			{
				Name:   "graph",
				Usage:  "Build a knowledge graph over the ingested corpus",
				Action: graphCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-nodes",
						Usage: "Maximum number of graph nodes",
						Value: graph.DefaultMaxNodes,
					},
					&cli.IntFlag{
						Name:  "depth",
						Usage: "Tree depth below the root (1-4)",
						Value: graph.DefaultDepth,
					},
					&cli.StringFlag{
						Name:  "session-id",
						Usage: "Restrict the corpus to one session",
					},
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete all chunks of a document",
				ArgsUsage: "DOCUMENT_ID",
				Action:    deleteCommand,
			},
			{
				Name:   "clear",
				Usage:  "Delete the whole collection",
				Action: clearCommand,
			},
			{
				Name:   "count",
				Usage:  "Print the number of stored chunks",
				Action: countCommand,
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed every stored chunk with the current embedding model",
				Action: reindexCommand,
			},
		},
	}
}

// buildEngine assembles an engine from the global flags plus any
// command-specific options.
func buildEngine(ctx context.Context, c *cli.Context, extra ...indexit.EngineOption) (*indexit.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionModel(c.String("completion-model")),
		ai.WithEmbeddingDimension(c.Int("embedding-dimension")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []indexit.EngineOption{
		indexit.WithAIConfig(aiConfig),
		indexit.WithStoreConfig(indexit.StoreConfig{
			RemoteURL:    c.String("qdrant-url"),
			RemoteAPIKey: c.String("qdrant-api-key"),
			DataDir:      c.String("data-dir"),
		}),
		indexit.WithCollection(c.String("collection")),
	}
	opts = append(opts, extra...)
	return indexit.NewEngine(ctx, opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}
	ctx := context.Background()

	engine, err := buildEngine(ctx, c, indexit.WithWorkers(c.Int("workers")))
	if err != nil {
		return err
	}
	defer engine.Close()

	docs := make([]ingestion.Document, c.NArg())
	for i, path := range c.Args().Slice() {
		docs[i] = ingestion.Document{Path: path}
	}

	results := engine.IngestBatch(ctx, docs)

	failures := 0
	for _, result := range results {
		if !result.Success {
			failures++
		}
	}
	if err := printJSON(results); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d documents failed", failures, len(results))
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one query argument is required")
	}
	ctx := context.Background()

	engine, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := []retrieval.SearchOption{
		retrieval.WithTopK(c.Int("top-k")),
		retrieval.WithMinScore(float32(c.Float64("min-score"))),
	}
	if filter := documentFilter(c); filter != nil {
		opts = append(opts, retrieval.WithFilter(filter))
	}

	result, err := engine.Search(ctx, c.Args().First(), opts...)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func queryCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one question argument is required")
	}
	ctx := context.Background()

	engine, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := []retrieval.SearchOption{
		retrieval.WithTopK(c.Int("top-k")),
	}
	if filter := documentFilter(c); filter != nil {
		opts = append(opts, retrieval.WithFilter(filter))
	}

	response, err := engine.Ask(ctx, c.Args().First(), opts...)
	if err != nil {
		return err
	}
	return printJSON(response)
}

func graphCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := []graph.BuildOption{
		graph.WithMaxNodes(c.Int("max-nodes")),
		graph.WithDepth(c.Int("depth")),
	}
	if sessionID := c.String("session-id"); sessionID != "" {
		opts = append(opts, graph.WithFilter(core.Eq("session_id", core.String(sessionID))))
	}

	g, err := engine.BuildGraph(ctx, opts...)
	if err != nil {
		return err
	}
	return printJSON(g)
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one document id argument is required")
	}
	ctx := context.Background()

	engine, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.DeleteDocument(ctx, c.Args().First()); err != nil {
		return err
	}
	fmt.Printf("deleted document %s\n", c.Args().First())
	return nil
}

func clearCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Clear(ctx); err != nil {
		return err
	}
	fmt.Printf("cleared collection %s\n", c.String("collection"))
	return nil
}

func countCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	count, err := engine.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Println(count)
	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if _, err := engine.Reindex(ctx, os.Stderr); err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}
	return nil
}

func documentFilter(c *cli.Context) core.Filter {
	documentID := c.String("document-id")
	if documentID == "" {
		return nil
	}
	return core.Eq(core.MetaDocumentID, core.String(documentID))
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
