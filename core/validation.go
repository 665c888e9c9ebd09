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


package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Content must not be empty
//   - Metadata must carry document_id, chunk_index, filename and file_type
//
// NOT validated (populated later in the pipeline):
//   - Vector (can be empty until the embedding step runs)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkID)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	for _, key := range []string{MetaDocumentID, MetaChunkIndex, MetaFilename, MetaFileType} {
		if _, ok := chunk.Metadata[key]; !ok {
			return fmt.Errorf("%w: %w: %s", ErrInvalidChunk, ErrMissingMetadataKey, key)
		}
	}

	return nil
}

// ValidateNode validates a knowledge-graph node.
//
// Validation rules:
//   - Label must not be empty
//   - Type must be a known node type
//   - Level must match the level implied by the type
func ValidateNode(node *Node) error {
	if node == nil {
		return fmt.Errorf("%w: node is nil", ErrInvalidNode)
	}

	if node.Label == "" {
		return fmt.Errorf("%w: label cannot be empty", ErrInvalidNode)
	}

	level := node.Type.Level()
	if level < 0 {
		return fmt.Errorf("%w: unknown node type %q", ErrInvalidNode, node.Type)
	}
	if node.Level != level {
		return fmt.Errorf("%w: type %q requires level %d, got %d",
			ErrInvalidNode, node.Type, level, node.Level)
	}

	return nil
}
