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


// Package badger implements vectorstore.Store on an embedded BadgerDB index.
//
// Chunks are serialized with MUS and stored under per-collection key
// prefixes. Queries are brute-force cosine scans over the collection, which
// is adequate for the corpus sizes this store is meant for and keeps the
// backend free of network dependencies. Deleting the database directory
// resets all state, equivalent to dropping every collection.
package badger
