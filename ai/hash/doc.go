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


// Package hash provides a deterministic fallback embedder.
//
// The embedder derives a pseudo-embedding from a BLAKE2b hash of the input
// text, so identical text always produces identical vectors without any
// model being available. Vectors are L2-normalized and carry no semantic
// meaning: two different texts land at effectively random points in the
// space. The fallback exists for degraded operation and for tests; vectors
// from this embedder and from a real model should not be mixed in the same
// collection.
package hash
