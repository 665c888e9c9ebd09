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


// Package reindex re-embeds every chunk in a collection.
//
// After switching embedding models the stored vectors no longer match
// query vectors; the Reindexer scrolls the whole collection, regenerates
// embeddings batch by batch with retry, and upserts the chunks in place.
// Chunk ids and metadata are untouched so the operation is safe to
// re-run after an interruption.
package reindex
