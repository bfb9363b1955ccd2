package dsl_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	shaper "github.com/shaper-go/shaper"
	"github.com/shaper-go/shaper/dsl"
)

func issuesOf(t *testing.T, err error) shaper.Issues {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	iss, ok := shaper.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %T: %v", err, err)
	}
	return iss
}

func TestString_TrimAndFoldBeforeChecks(t *testing.T) {
	s := dsl.String().Trim().Lower().Min(3)
	got, err := s.Parse(context.Background(), "  ABC  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc" {
		t.Fatalf("expected normalized output, got %q", got)
	}
	// the length check sees the trimmed rune count, not the raw one
	if _, err := s.Parse(context.Background(), "  ab  "); err == nil {
		t.Fatalf("expected too_small after trimming")
	}
}

func TestString_FailFastFirstViolationOnly(t *testing.T) {
	s := dsl.String().Min(10).StartsWith("x").Pattern(regexp.MustCompile(`^\d+$`))
	iss := issuesOf(t, func() error { _, err := s.Parse(context.Background(), "abc"); return err }())
	if len(iss) != 1 {
		t.Fatalf("expected exactly one issue, got %d: %v", len(iss), iss)
	}
	if iss[0].Code != shaper.CodeTooSmall {
		t.Fatalf("expected the cheapest check to fire first, got %q", iss[0].Code)
	}
}

func TestString_RuneLength(t *testing.T) {
	s := dsl.String().Length(3)
	if _, err := s.Parse(context.Background(), "日本語"); err != nil {
		t.Fatalf("expected rune-counted length to pass: %v", err)
	}
}

func TestString_PatternIssue(t *testing.T) {
	s := dsl.String().Pattern(regexp.MustCompile(`^[a-z]+$`))
	iss := issuesOf(t, func() error { _, err := s.Parse(context.Background(), "abc123"); return err }())
	if iss[0].Code != shaper.CodeInvalidString {
		t.Fatalf("expected invalid_string, got %q", iss[0].Code)
	}
}

func TestString_TypeMismatchDiagnostics(t *testing.T) {
	iss := issuesOf(t, func() error { _, err := dsl.String().Parse(context.Background(), 42); return err }())
	if iss[0].Code != shaper.CodeInvalidType || iss[0].Expected != "string" || iss[0].Received != "number" {
		t.Fatalf("unexpected diagnostics: %+v", iss[0])
	}
}

func TestNumber_RangeSingleIssue(t *testing.T) {
	s := dsl.Number().Min(0).Max(100)
	if got, err := s.Parse(context.Background(), 50); err != nil || got != 50 {
		t.Fatalf("expected 50, got %v err=%v", got, err)
	}
	iss := issuesOf(t, func() error { _, err := s.Parse(context.Background(), 101); return err }())
	if len(iss) != 1 || iss[0].Code != shaper.CodeTooBig || !iss[0].Path.IsRoot() {
		t.Fatalf("expected single too_big at root, got %v", iss)
	}
	iss = issuesOf(t, func() error { _, err := s.Parse(context.Background(), -1); return err }())
	if len(iss) != 1 || iss[0].Code != shaper.CodeTooSmall {
		t.Fatalf("expected single too_small, got %v", iss)
	}
}

func TestNumber_ExclusiveBounds(t *testing.T) {
	s := dsl.Number().GT(0).LT(1)
	if _, err := s.Parse(context.Background(), 0); err == nil {
		t.Fatalf("expected GT to reject the bound itself")
	}
	if _, err := s.Parse(context.Background(), 0.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNumber_IntRejectsFraction(t *testing.T) {
	iss := issuesOf(t, func() error { _, err := dsl.Number().Int().Parse(context.Background(), 1.5); return err }())
	if iss[0].Code != shaper.CodeInvalidType {
		t.Fatalf("expected invalid_type for fractional integer, got %q", iss[0].Code)
	}
}

func TestNumber_MultipleOfToleratesFloatDrift(t *testing.T) {
	s := dsl.Number().MultipleOf(0.1)
	if _, err := s.Parse(context.Background(), 0.3); err != nil {
		t.Fatalf("expected 0.3 to be a multiple of 0.1: %v", err)
	}
	iss := issuesOf(t, func() error { _, err := s.Parse(context.Background(), 0.35); return err }())
	if iss[0].Code != shaper.CodeNotMultipleOf {
		t.Fatalf("expected not_multiple_of, got %q", iss[0].Code)
	}
}

func TestNumber_WidensIntegerKinds(t *testing.T) {
	s := dsl.Number().Min(1)
	for _, v := range []any{int(3), int64(3), uint8(3), float32(3)} {
		if got, err := s.Parse(context.Background(), v); err != nil || got != 3 {
			t.Fatalf("expected %T(3) to widen, got %v err=%v", v, got, err)
		}
	}
}

func TestBool_StrictAndCoerced(t *testing.T) {
	if _, err := dsl.Bool().Parse(context.Background(), "true"); err == nil {
		t.Fatalf("expected strict bool to reject text")
	}
	got, err := dsl.Bool().Coerce().Parse(context.Background(), "")
	if err != nil || got != false {
		t.Fatalf("expected empty string to coerce false, got %v err=%v", got, err)
	}
	got, err = dsl.Bool().Coerce().Parse(context.Background(), 42)
	if err != nil || got != true {
		t.Fatalf("expected nonzero number to coerce true, got %v err=%v", got, err)
	}
}

func TestTime_CoerceRFC3339AndEpoch(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	got, err := dsl.Time().Coerce().Parse(context.Background(), "2024-05-01T12:00:00Z")
	if err != nil || !got.Equal(want) {
		t.Fatalf("expected %v, got %v err=%v", want, got, err)
	}
	got, err = dsl.Time().Coerce().Parse(context.Background(), float64(want.Unix()))
	if err != nil || !got.Equal(want) {
		t.Fatalf("expected epoch coercion to %v, got %v err=%v", want, got, err)
	}
}

func TestTime_MalformedTextIsInvalidDate(t *testing.T) {
	iss := issuesOf(t, func() error {
		_, err := dsl.Time().Coerce().Parse(context.Background(), "yesterday")
		return err
	}())
	if iss[0].Code != shaper.CodeInvalidDate {
		t.Fatalf("expected invalid_date, got %q", iss[0].Code)
	}
	// without coercion text is a plain type mismatch
	iss = issuesOf(t, func() error { _, err := dsl.Time().Parse(context.Background(), "yesterday"); return err }())
	if iss[0].Code != shaper.CodeInvalidType {
		t.Fatalf("expected invalid_type without coercion, got %q", iss[0].Code)
	}
}

func TestChainMethodsDoNotMutateReceiver(t *testing.T) {
	base := dsl.Number().Min(0)
	narrow := base.Max(10)
	if _, err := base.Parse(context.Background(), 50); err != nil {
		t.Fatalf("base schema must be unaffected by derived chain: %v", err)
	}
	if _, err := narrow.Parse(context.Background(), 50); err == nil {
		t.Fatalf("derived schema must carry the new bound")
	}
}

func TestReparseNormalizedOutputIsStable(t *testing.T) {
	s := dsl.String().Trim().Upper()
	first, err := s.Parse(context.Background(), "  go  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Parse(context.Background(), first)
	if err != nil || second != first {
		t.Fatalf("expected re-validation of normalized output to be stable, got %q err=%v", second, err)
	}
}
