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
	"encoding/json"
	"fmt"
	"maps"
)

// Kind identifies the type of a metadata value.
// The set is closed so that filter translation can be exhaustive.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt
	KindFloat
	KindBool
)

// Value is a schema-light metadata value holding exactly one of the
// supported kinds. The zero Value is invalid.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// String builds a string metadata value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Int builds an integer metadata value.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float builds a floating-point metadata value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Bool builds a boolean metadata value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Interface returns the value as a plain Go value for JSON payloads.
func (v Value) Interface() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	}
	return nil
}

// Equal reports whether two values are equal. Integer and float values are
// compared numerically across kinds, because JSON round-trips turn stored
// integers into floats.
func (v Value) Equal(o Value) bool {
	if v.isNumeric() && o.isNumeric() {
		return v.asFloat() == o.asFloat()
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindBool:
		return v.Bool == o.Bool
	}
	return false
}

func (v Value) isNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

func (v Value) asFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

// MarshalJSON emits the value as a native JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON scalar into a typed value.
// JSON numbers become KindFloat unless they are integral.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	value, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = value
	return nil
}

// ValueOf converts a plain Go value into a typed metadata value.
// Returns ErrUnsupportedValue for anything outside the closed kind set.
func ValueOf(raw any) (Value, error) {
	switch t := raw.(type) {
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		if t == float64(int64(t)) {
			return Int(int64(t)), nil
		}
		return Float(t), nil
	case float32:
		return Float(float64(t)), nil
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
}

// Metadata is a typed key-value map attached to chunks and graph nodes.
type Metadata map[string]Value

// Clone returns a shallow copy of the metadata map.
// Returns nil for nil metadata.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	maps.Copy(out, m)
	return out
}

// Interface converts the metadata to a plain map for JSON payloads.
func (m Metadata) Interface() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Interface()
	}
	return out
}

// MetadataOf converts a plain map into typed metadata.
// Returns an error if any value falls outside the supported kinds.
func MetadataOf(raw map[string]any) (Metadata, error) {
	md := make(Metadata, len(raw))
	for k, rv := range raw {
		v, err := ValueOf(rv)
		if err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", k, err)
		}
		md[k] = v
	}
	return md, nil
}

// Filter selects chunks by metadata. Each key maps to a list of acceptable
// values: a single-element list is an equality test, a longer list is an
// "any of" membership test. Keys combine with AND.
type Filter map[string][]Value

// Eq builds a single-key equality filter.
func Eq(key string, value Value) Filter {
	return Filter{key: []Value{value}}
}

// Matches reports whether the metadata satisfies every key of the filter.
// A nil or empty filter matches everything.
func (f Filter) Matches(md Metadata) bool {
	for key, accepted := range f {
		have, ok := md[key]
		if !ok {
			return false
		}
		hit := false
		for _, want := range accepted {
			if have.Equal(want) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// FilterOf converts a plain map into a typed filter. Scalar values become
// equality tests, lists become any-of membership tests.
func FilterOf(raw map[string]any) (Filter, error) {
	f := make(Filter, len(raw))
	for k, rv := range raw {
		switch list := rv.(type) {
		case []any:
			values := make([]Value, 0, len(list))
			for _, item := range list {
				v, err := ValueOf(item)
				if err != nil {
					return nil, fmt.Errorf("filter key %q: %w", k, err)
				}
				values = append(values, v)
			}
			f[k] = values
		default:
			v, err := ValueOf(rv)
			if err != nil {
				return nil, fmt.Errorf("filter key %q: %w", k, err)
			}
			f[k] = []Value{v}
		}
	}
	return f, nil
}
