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


// Package ai provides abstractions for the AI services used by indexit.
//
// It defines interfaces for text embeddings and text completion so that the
// ingestion, retrieval and query packages depend on abstractions rather than
// concrete clients.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/hash: deterministic fallback embedder for degraded operation
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors (openai.NewProvider, hash.NewEmbedder) return interface
// types to enforce abstraction. Mock constructors return concrete types so
// tests can inject behavior and assert call counts.
//
// The Embedder and Completer instances are expensive to construct and are
// intended to be created once per process. The engine facade owns the single
// instances and hands them to each component; nothing in this package keeps
// hidden global state.
package ai
