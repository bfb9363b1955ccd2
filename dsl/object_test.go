package dsl_test

import (
	"context"
	"testing"

	shaper "github.com/shaper-go/shaper"
	"github.com/shaper-go/shaper/dsl"
)

func userSchema() *dsl.ObjectSchema {
	return dsl.Object().
		Field("name", dsl.String().Min(1)).
		Field("age", dsl.Number().Int().Min(0))
}

func TestObject_AggregatesAllFieldIssues(t *testing.T) {
	_, err := userSchema().Parse(context.Background(), map[string]any{
		"name": 42,
		"age":  "old",
	})
	iss := issuesOf(t, err)
	if len(iss) != 2 {
		t.Fatalf("expected issues for both fields, got %v", iss)
	}
	// declaration order drives issue order
	if iss[0].Path.String() != "name" || iss[1].Path.String() != "age" {
		t.Fatalf("unexpected paths: %v / %v", iss[0].Path, iss[1].Path)
	}
}

func TestObject_MissingRequiredFieldIsInvalidType(t *testing.T) {
	_, err := userSchema().Parse(context.Background(), map[string]any{"name": "ann"})
	iss := issuesOf(t, err)
	if len(iss) != 1 || iss[0].Code != shaper.CodeInvalidType {
		t.Fatalf("expected invalid_type for the missing field, got %v", iss)
	}
	if iss[0].Path.String() != "age" || iss[0].Received != "missing" {
		t.Fatalf("unexpected diagnostics: %+v", iss[0])
	}
}

func TestObject_NonObjectShapeFailsAlone(t *testing.T) {
	_, err := userSchema().Parse(context.Background(), "not an object")
	iss := issuesOf(t, err)
	if len(iss) != 1 || iss[0].Code != shaper.CodeInvalidType || !iss[0].Path.IsRoot() {
		t.Fatalf("expected single root invalid_type, got %v", iss)
	}
}

func TestObject_StripIsDefault(t *testing.T) {
	out, err := userSchema().Parse(context.Background(), map[string]any{
		"name": "ann", "age": 30, "extra": true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := out["extra"]; present {
		t.Fatalf("expected undeclared key dropped, got %v", out)
	}
}

func TestObject_StrictReportsEachUnknownKey(t *testing.T) {
	_, err := userSchema().Strict().Parse(context.Background(), map[string]any{
		"name": 42, "age": 30, "b_extra": true, "a_extra": 1,
	})
	iss := issuesOf(t, err)
	if len(iss) != 3 {
		t.Fatalf("expected field issue plus one per unknown key, got %v", iss)
	}
	var unknown []string
	for _, it := range iss {
		if it.Code == shaper.CodeUnrecognizedKeys {
			unknown = append(unknown, it.Path.String())
		}
	}
	// unknown keys are reported in sorted order
	if len(unknown) != 2 || unknown[0] != "a_extra" || unknown[1] != "b_extra" {
		t.Fatalf("unexpected unknown-key issues: %v", unknown)
	}
}

func TestObject_PassthroughCopiesUnknownKeys(t *testing.T) {
	out, err := userSchema().Passthrough().Parse(context.Background(), map[string]any{
		"name": "ann", "age": 30, "extra": true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["extra"] != true {
		t.Fatalf("expected unknown key copied verbatim, got %v", out)
	}
}

func TestObject_CatchallValidatesUnknownValues(t *testing.T) {
	s := userSchema().Catchall(dsl.Number())
	out, err := s.Parse(context.Background(), map[string]any{
		"name": "ann", "age": 30, "score": 9.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["score"] != 9.5 {
		t.Fatalf("expected catchall output kept, got %v", out)
	}
	_, err = s.Parse(context.Background(), map[string]any{
		"name": "ann", "age": 30, "score": "high",
	})
	iss := issuesOf(t, err)
	if len(iss) != 1 || iss[0].Path.String() != "score" {
		t.Fatalf("expected catchall issue at the unknown key, got %v", iss)
	}
}

func TestObject_PartialToleratesAbsence(t *testing.T) {
	s := userSchema().Partial()
	out, err := s.Parse(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
	// present values are still validated
	if _, err := s.Parse(context.Background(), map[string]any{"age": "old"}); err == nil {
		t.Fatalf("expected present value to be validated")
	}
}

func TestObject_FieldRedeclareReplacesInPlace(t *testing.T) {
	s := userSchema().Field("name", dsl.Number())
	_, err := s.Parse(context.Background(), map[string]any{"name": "ann", "age": 1})
	iss := issuesOf(t, err)
	if len(iss) != 1 || iss[0].Path.String() != "name" {
		t.Fatalf("expected redeclared field schema enforced, got %v", iss)
	}
}

func TestObject_BuilderCopies(t *testing.T) {
	base := userSchema()
	_ = base.Strict()
	// the strict derivation must not leak into the base
	if _, err := base.Parse(context.Background(), map[string]any{
		"name": "ann", "age": 30, "extra": true,
	}); err != nil {
		t.Fatalf("base policy mutated by derived schema: %v", err)
	}
}

func TestObject_NestedPaths(t *testing.T) {
	s := dsl.Object().Field("user", userSchema())
	_, err := s.Parse(context.Background(), map[string]any{
		"user": map[string]any{"name": "", "age": -1},
	})
	iss := issuesOf(t, err)
	if len(iss) != 2 {
		t.Fatalf("expected both nested issues, got %v", iss)
	}
	if iss[0].Path.String() != "user.name" || iss[1].Path.String() != "user.age" {
		t.Fatalf("unexpected nested paths: %v / %v", iss[0].Path, iss[1].Path)
	}
}
