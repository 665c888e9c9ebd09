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

import (
	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types persisted by the embedded
// vector store. Kept in sync with the structs above by hand; all fields are
// serialized unconditionally in declaration order.

// VectorMUS serializes embedding vectors.
var VectorMUS = ord.NewSliceSer[float32](raw.Float32)

// ValueMUS serializes metadata values.
var ValueMUS = valueMUS{}

var _ mus.Serializer[Value] = ValueMUS

type valueMUS struct{}

func (s valueMUS) Marshal(v Value, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Kind), bs)
	n += ord.String.Marshal(v.Str, bs[n:])
	n += varint.Int64.Marshal(v.Int, bs[n:])
	n += raw.Float64.Marshal(v.Float, bs[n:])
	n += ord.Bool.Marshal(v.Bool, bs[n:])
	return n
}

func (s valueMUS) Unmarshal(bs []byte) (v Value, n int, err error) {
	kind, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Kind = Kind(kind)
	var n1 int
	v.Str, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Int, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Float, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Bool, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	return
}

func (s valueMUS) Size(v Value) (size int) {
	size = varint.Uint64.Size(uint64(v.Kind))
	size += ord.String.Size(v.Str)
	size += varint.Int64.Size(v.Int)
	size += raw.Float64.Size(v.Float)
	size += ord.Bool.Size(v.Bool)
	return size
}

func (s valueMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Uint64.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	return
}

// MetadataMUS serializes metadata maps.
var MetadataMUS = ord.NewMapSer[string, Value](ord.String, ValueMUS)

// ChunkMUS serializes stored chunks.
var ChunkMUS = chunkMUS{}

var _ mus.Serializer[Chunk] = ChunkMUS

type chunkMUS struct{}

func (s chunkMUS) Marshal(c Chunk, bs []byte) (n int) {
	n = ord.String.Marshal(c.ID, bs)
	n += ord.String.Marshal(c.Content, bs[n:])
	n += VectorMUS.Marshal(c.Vector, bs[n:])
	n += MetadataMUS.Marshal(c.Metadata, bs[n:])
	return n
}

func (s chunkMUS) Unmarshal(bs []byte) (c Chunk, n int, err error) {
	c.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	c.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Vector, n1, err = VectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var md map[string]Value
	md, n1, err = MetadataMUS.Unmarshal(bs[n:])
	n += n1
	c.Metadata = md
	return
}

func (s chunkMUS) Size(c Chunk) (size int) {
	size = ord.String.Size(c.ID)
	size += ord.String.Size(c.Content)
	size += VectorMUS.Size(c.Vector)
	size += MetadataMUS.Size(c.Metadata)
	return size
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = VectorMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = MetadataMUS.Skip(bs[n:])
	n += n1
	return
}
