package core

import (
	"encoding/json"
	"testing"
)

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "equal strings", a: String("x"), b: String("x"), want: true},
		{name: "different strings", a: String("x"), b: String("y"), want: false},
		{name: "equal ints", a: Int(3), b: Int(3), want: true},
		{name: "int vs equal float", a: Int(3), b: Float(3.0), want: true},
		{name: "int vs different float", a: Int(3), b: Float(3.5), want: false},
		{name: "equal bools", a: Bool(true), b: Bool(true), want: true},
		{name: "string vs int", a: String("3"), b: Int(3), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueOf_Unsupported(t *testing.T) {
	_, err := ValueOf([]string{"nested"})
	if err == nil {
		t.Fatalf("ValueOf() accepted an unsupported kind")
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	md := Metadata{
		"document_id": String("doc-1"),
		"chunk_index": Int(2),
		"score":       Float(0.75),
		"archived":    Bool(false),
	}

	data, err := json.Marshal(md)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var back Metadata
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	for key, want := range md {
		if got, ok := back[key]; !ok || !got.Equal(want) {
			t.Errorf("round trip lost %q: got %+v, want %+v", key, got, want)
		}
	}
}

func TestFilter_Matches(t *testing.T) {
	md := Metadata{
		"document_id": String("doc-1"),
		"chunk_index": Int(2),
		"session_id":  String("s-9"),
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "nil filter matches", filter: nil, want: true},
		{name: "equality hit", filter: Eq("document_id", String("doc-1")), want: true},
		{name: "equality miss", filter: Eq("document_id", String("doc-2")), want: false},
		{
			name:   "any-of hit",
			filter: Filter{"document_id": []Value{String("doc-2"), String("doc-1")}},
			want:   true,
		},
		{
			name:   "any-of miss",
			filter: Filter{"document_id": []Value{String("doc-2"), String("doc-3")}},
			want:   false,
		},
		{
			name: "keys combine with AND",
			filter: Filter{
				"document_id": []Value{String("doc-1")},
				"session_id":  []Value{String("s-0")},
			},
			want: false,
		},
		{name: "missing key", filter: Eq("absent", String("x")), want: false},
		{name: "numeric cross-kind", filter: Eq("chunk_index", Float(2)), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(md); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterOf(t *testing.T) {
	f, err := FilterOf(map[string]any{
		"document_id": "doc-1",
		"session_id":  []any{"a", "b"},
	})
	if err != nil {
		t.Fatalf("FilterOf() error: %v", err)
	}

	if len(f["document_id"]) != 1 {
		t.Errorf("scalar should become a single-element equality list")
	}
	if len(f["session_id"]) != 2 {
		t.Errorf("list should become an any-of list")
	}

	if _, err := FilterOf(map[string]any{"bad": map[string]any{}}); err == nil {
		t.Errorf("FilterOf() accepted an unsupported value kind")
	}
}
