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


package ingestion

import "errors"

var (
	// ErrStoreRequired indicates a nil vector store was passed to
	// NewCoordinator.
	ErrStoreRequired = errors.New("vector store is required")

	// ErrEmbedderRequired indicates a nil embedder was passed to
	// NewCoordinator.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrExecutorUnavailable is returned by an Executor whose backend
	// cannot accept work. The coordinator reacts by running the task on
	// its local pool instead.
	ErrExecutorUnavailable = errors.New("executor unavailable")
)
