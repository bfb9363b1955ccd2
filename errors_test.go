package shaper_test

import (
	"fmt"
	"strings"
	"testing"

	shaper "github.com/shaper-go/shaper"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := shaper.Issues{
		{Code: shaper.CodeTooSmall, Path: shaper.Path{}.Key("items").Index(2)},
		{Code: shaper.CodeInvalidType, Path: shaper.Path{}.Key("name")},
	}
	s := iss.Error()
	if !strings.Contains(s, "too_small at items.2") {
		t.Fatalf("expected path-qualified summary, got %q", s)
	}
	if !strings.Contains(s, "invalid_type at name") {
		t.Fatalf("expected second issue in summary, got %q", s)
	}
}

func TestIssues_ErrorSummaryTruncates(t *testing.T) {
	iss := shaper.Issues{
		{Code: shaper.CodeTooSmall},
		{Code: shaper.CodeTooBig},
		{Code: shaper.CodeInvalidType},
		{Code: shaper.CodeInvalidLength},
		{Code: shaper.CodeCustom},
	}
	s := iss.Error()
	if !strings.Contains(s, "(total 5)") {
		t.Fatalf("expected truncation note, got %q", s)
	}
	if strings.Contains(s, shaper.CodeInvalidLength) {
		t.Fatalf("expected only the first issues shown, got %q", s)
	}
}

func TestIssues_RootPathOmitted(t *testing.T) {
	iss := shaper.Issues{{Code: shaper.CodeInvalidUnion}}
	if s := iss.Error(); s != "invalid_union" {
		t.Fatalf("expected bare code at root, got %q", s)
	}
}

func TestAsIssues_Wrapped(t *testing.T) {
	base := shaper.Issues{{Code: shaper.CodeInvalidType}}
	wrapped := fmt.Errorf("while loading config: %w", base)
	got, ok := shaper.AsIssues(wrapped)
	if !ok || len(got) != 1 || got[0].Code != shaper.CodeInvalidType {
		t.Fatalf("expected wrapped Issues extracted, got ok=%v iss=%v", ok, got)
	}
}

func TestAsIssues_ForeignError(t *testing.T) {
	if _, ok := shaper.AsIssues(fmt.Errorf("disk on fire")); ok {
		t.Fatalf("expected foreign errors to not extract")
	}
	if _, ok := shaper.AsIssues(nil); ok {
		t.Fatalf("expected nil to not extract")
	}
}

func TestAppendIssues_InitializesNil(t *testing.T) {
	iss := shaper.AppendIssues(nil, shaper.Issue{Code: shaper.CodeCustom})
	if len(iss) != 1 {
		t.Fatalf("expected one issue, got %d", len(iss))
	}
}
