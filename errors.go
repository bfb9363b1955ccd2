package shaper

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType         = "invalid_type"
	CodeInvalidLength       = "invalid_length"
	CodeTooSmall            = "too_small"
	CodeTooBig              = "too_big"
	CodeInvalidString       = "invalid_string"
	CodeNotFinite           = "not_finite"
	CodeNotMultipleOf       = "not_multiple_of"
	CodeInvalidLiteral      = "invalid_literal"
	CodeInvalidEnumValue    = "invalid_enum_value"
	CodeInvalidUnion        = "invalid_union"
	CodeInvalidDiscriminant = "invalid_union_discriminator"
	CodeUnrecognizedKeys    = "unrecognized_keys"
	CodeInvalidSize         = "invalid_size"
	CodeInvalidDate         = "invalid_date"
	CodeInvalidValue        = "invalid_value"
	CodeCustom              = "custom"
)

// Issue represents a single validation failure. Issues are immutable and are
// created only at the failure site; composite schemas collect them upward
// without modification.
type Issue struct {
	Code    string // One of the codes listed above.
	Path    Path   // Segments from the root down to the failing value.
	Message string
	// Expected/Received carry optional type diagnostics (for example
	// "string" / "number") for invalid_type style failures.
	Expected string
	Received string
	// Params carries structured parameters (e.g., {"min":1, "max":10})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation failures that implements error.
// The order of entries matches the order in which fields and elements
// were visited.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Path.IsRoot() {
			b.WriteString(it.Code)
			continue
		}
		// e.g. too_small at items.2
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
// Non-validation faults (anything that is not Issues) report false and must
// be propagated unchanged by callers.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
