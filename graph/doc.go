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


// Package graph builds a bounded keyword tree summarizing an ingested
// corpus.
//
// The builder retrieves a broad sample of chunks, then extracts keyword
// layers by word frequency: up to 8 themes from the whole corpus, up to
// 4 subtopics per theme from the lines mentioning that theme, up to 3
// concepts per subtopic, and up to 2 detail leaves per concept. Details
// use a richer extractor that also recognizes numbers, currency amounts,
// dates, capitalized phrases and acronyms.
//
// The node budget is a hard cap: the moment it is reached no further
// nodes are created, mid-level if necessary. Every non-root node is
// linked to its parent by exactly one edge, and a node's level is always
// its parent's level plus one.
package graph
