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


// Package vectorstore defines the storage contract for embedded chunks.
//
// Two backends implement the same Store interface:
//
//   - vectorstore/qdrant: a remote vector-database service reached over HTTP
//   - vectorstore/badger: an embedded on-disk index with no network required
//
// Backend selection (a one-shot remote probe with embedded fallback) lives
// in the root package, which can depend on both implementations without a
// cycle; this package only carries the contract they share.
//
// Both backends share similarity-score semantics: scores are similarities in
// [0,1] where higher is more relevant, clamped at the store boundary.
package vectorstore
