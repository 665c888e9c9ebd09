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


package indexit

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/indexit/vectorstore"
	"github.com/poiesic/indexit/vectorstore/badger"
	"github.com/poiesic/indexit/vectorstore/qdrant"
)

const (
	// DefaultProbeTimeout bounds the remote liveness probe so backend
	// selection never stalls startup.
	DefaultProbeTimeout = 3 * time.Second

	// DefaultQueryTimeout bounds calls against the remote backend.
	DefaultQueryTimeout = 30 * time.Second
)

// StoreConfig selects and configures a vector store backend.
type StoreConfig struct {
	// RemoteURL is the base URL of a Qdrant server. When empty the embedded
	// backend is used without probing.
	RemoteURL string

	// RemoteAPIKey is sent with every remote request when non-empty.
	RemoteAPIKey string

	// DataDir is the directory of the embedded index. Used when no remote
	// backend is configured or the probe fails.
	DataDir string

	// ProbeTimeout bounds the liveness probe. Default 3s.
	ProbeTimeout time.Duration

	// QueryTimeout bounds remote store calls. Default 30s.
	QueryTimeout time.Duration

	// Logger receives the backend selection decision.
	// Default is slog.Default().
	Logger *slog.Logger
}

// ConnectStore selects a backend and returns a bound Store.
//
// When a remote URL is configured, a single liveness probe with a bounded
// timeout decides the binding: success binds to the remote backend, any
// failure (connection refused, timeout, protocol error) falls back to the
// embedded backend and logs the decision. The binding holds for the life of
// the returned Store.
func ConnectStore(ctx context.Context, cfg StoreConfig) (vectorstore.Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout == 0 {
		probeTimeout = DefaultProbeTimeout
	}
	queryTimeout := cfg.QueryTimeout
	if queryTimeout == 0 {
		queryTimeout = DefaultQueryTimeout
	}

	if cfg.RemoteURL != "" {
		remote := qdrant.Config{
			URL:     cfg.RemoteURL,
			APIKey:  cfg.RemoteAPIKey,
			Timeout: queryTimeout,
		}
		err := qdrant.Probe(ctx, remote, probeTimeout)
		if err == nil {
			logger.Info("using remote vector store", "url", cfg.RemoteURL)
			return qdrant.NewStore(remote), nil
		}
		logger.Warn("remote vector store unreachable, falling back to embedded store",
			"url", cfg.RemoteURL, "data_dir", cfg.DataDir, "err", err)
	}

	store, err := badger.OpenStore(cfg.DataDir, cfg.DataDir == "")
	if err != nil {
		return nil, err
	}
	logger.Info("using embedded vector store", "data_dir", cfg.DataDir)
	return store, nil
}
