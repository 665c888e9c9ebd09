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


package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/poiesic/indexit/core"
)

const (
	// DefaultChunkSize is the soft upper bound on chunk length in bytes.
	DefaultChunkSize = 1000

	// DefaultOverlap is how many trailing bytes of a chunk seed the next
	// one.
	DefaultOverlap = 200
)

// Option configures a Chunker.
type Option func(*Chunker)

// WithChunkSize sets the soft upper bound on chunk length. Values below 1
// are ignored.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap carried between adjacent chunks. Negative
// values are ignored.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// Chunker splits text into overlapping chunks.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New returns a Chunker with the given options applied over the defaults.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 2
	}
	return c
}

// Chunk splits text into ordered chunks for a document. Every chunk
// carries the caller's metadata plus the document id and its index within
// the document. The chunk size is a soft bound: a single paragraph longer
// than the configured size is emitted whole rather than split mid-thought.
func (c *Chunker) Chunk(text, documentID string, metadata core.Metadata) []core.Chunk {
	pieces := c.split(text)
	chunks := make([]core.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		meta := metadata.Clone()
		if meta == nil {
			meta = core.Metadata{}
		}
		meta[core.MetaDocumentID] = core.String(documentID)
		meta[core.MetaChunkIndex] = core.Int(int64(i))
		chunks = append(chunks, core.Chunk{
			ID:       core.ChunkID(documentID, i),
			Content:  piece,
			Metadata: meta,
		})
	}
	return chunks
}

// split produces the chunk contents without metadata.
func (c *Chunker) split(text string) []string {
	var out []string
	var buf string
	for _, para := range paragraphs(text) {
		candidate := para
		if buf != "" {
			candidate = buf + "\n\n" + para
		}
		if buf != "" && len(candidate) > c.chunkSize {
			out = append(out, buf)
			seed := tail(buf, c.overlap)
			if seed != "" {
				buf = seed + "\n\n" + para
			} else {
				buf = para
			}
			continue
		}
		buf = candidate
	}
	if buf != "" {
		out = append(out, buf)
	}
	return out
}

// paragraphs splits text on blank lines, trimming each paragraph and
// dropping empty ones.
func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	var lines []string
	flush := func() {
		if len(lines) == 0 {
			return
		}
		para := strings.TrimSpace(strings.Join(lines, "\n"))
		if para != "" {
			out = append(out, para)
		}
		lines = lines[:0]
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		lines = append(lines, line)
	}
	flush()
	return out
}

// tail returns the last n bytes of s, or empty when s is shorter than
// the requested overlap. The cut moves forward to the next rune boundary
// so a seed never starts inside a multi-byte character.
func tail(s string, n int) string {
	if n <= 0 || len(s) < n {
		return ""
	}
	cut := len(s) - n
	for cut < len(s) && !utf8.RuneStart(s[cut]) {
		cut++
	}
	return s[cut:]
}
