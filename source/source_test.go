package source_test

import (
	"context"
	"testing"

	shaper "github.com/shaper-go/shaper"
	"github.com/shaper-go/shaper/dsl"
	"github.com/shaper-go/shaper/source"
)

func orderSchema() *dsl.ObjectSchema {
	return dsl.Object().
		Field("id", dsl.String().Min(1)).
		Field("qty", dsl.Number().Int().Min(1))
}

func TestParseJSON_EndToEnd(t *testing.T) {
	out, err := source.ParseJSON[map[string]any](context.Background(), orderSchema(), []byte(`{"id":"ord-1","qty":3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["id"] != "ord-1" || out["qty"] != 3.0 {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestParseJSON_ValidationIssuesCarryPaths(t *testing.T) {
	_, err := source.ParseJSON[map[string]any](context.Background(), orderSchema(), []byte(`{"id":"","qty":0}`))
	iss, ok := shaper.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected two issues, got %v", err)
	}
	if iss[0].Path.String() != "id" || iss[1].Path.String() != "qty" {
		t.Fatalf("unexpected paths: %v / %v", iss[0].Path, iss[1].Path)
	}
}

func TestDecodeJSON_NumbersKeepPrecision(t *testing.T) {
	v, err := source.DecodeJSON([]byte(`{"n": 9007199254740993}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	// the decoder keeps json.Number so the digits survive
	if got := m["n"].(interface{ String() string }).String(); got != "9007199254740993" {
		t.Fatalf("precision lost: %q", got)
	}
}

func TestDecodeJSON_MalformedInput(t *testing.T) {
	_, err := source.DecodeJSON([]byte(`{"broken`))
	iss, ok := shaper.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != shaper.CodeInvalidValue || !iss[0].Path.IsRoot() {
		t.Fatalf("expected single root invalid_value, got %v", err)
	}
	if iss[0].Params["format"] != "json" {
		t.Fatalf("expected format parameter, got %v", iss[0].Params)
	}
}

func TestParseYAML_EndToEnd(t *testing.T) {
	doc := []byte("id: ord-2\nqty: 5\n")
	out, err := source.ParseYAML[map[string]any](context.Background(), orderSchema(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["id"] != "ord-2" || out["qty"] != 5.0 {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestParseYAML_MalformedInput(t *testing.T) {
	_, err := source.DecodeYAML([]byte("a: [1, 2"))
	iss, ok := shaper.AsIssues(err)
	if !ok || iss[0].Code != shaper.CodeInvalidValue {
		t.Fatalf("expected invalid_value, got %v", err)
	}
}

func TestDecodeYAML_NestedMappings(t *testing.T) {
	v, err := source.DecodeYAML([]byte("outer:\n  inner: 1\nlist:\n  - a\n  - b\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected string-keyed mapping, got %T", v)
	}
	if _, ok := m["outer"].(map[string]any); !ok {
		t.Fatalf("expected nested mapping normalized, got %T", m["outer"])
	}
	if l, ok := m["list"].([]any); !ok || len(l) != 2 {
		t.Fatalf("expected sequence decoded, got %v", m["list"])
	}
}
