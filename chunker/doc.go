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


// Package chunker splits extracted document text into overlapping,
// size-bounded chunks that carry document-level metadata.
//
// Splitting is paragraph-aware: text is divided on blank lines and
// paragraphs are accumulated until the next one would push the buffer
// past the configured size. Each new buffer is seeded with the tail of
// the previous one so adjacent chunks share context.
package chunker
