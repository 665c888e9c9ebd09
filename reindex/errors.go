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


package reindex

import "errors"

var (
	// ErrStoreRequired indicates a nil vector store was passed to
	// NewReindexer.
	ErrStoreRequired = errors.New("vector store is required")

	// ErrEmbedderRequired indicates a nil embedder was passed to
	// NewReindexer.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidMaxAttempts indicates a retry budget of zero or less.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
