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


// Package ingestion turns documents into embedded chunks in the vector
// store.
//
// The Coordinator runs the single-document path: extract text, chunk it,
// embed the chunks, and upsert them in bounded write batches. Batches of
// documents run in parallel on an executor; the default is a bounded
// local worker pool, and a caller-supplied executor that turns out to be
// unavailable falls back to the pool without failing the batch.
//
// Failures stay per-document: an unsupported file type or an empty
// extraction produces a failed ProcessingResult, never an error, so a
// batch always reports one result per input.
package ingestion
