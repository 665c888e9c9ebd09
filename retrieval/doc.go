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


// Package retrieval finds the stored chunks most relevant to a query.
//
// The retriever embeds the query once, over-fetches twice the requested
// result count from the vector store, drops candidates below the score
// threshold, deduplicates by chunk id, and returns the top results in
// descending score order. Over-fetching gives the threshold headroom:
// the store's ranking says nothing about how many candidates survive
// filtering, so asking for extra avoids starving the caller.
package retrieval
