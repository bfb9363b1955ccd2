package dsl

import (
	"context"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	shaper "github.com/shaper-go/shaper"
)

// ---------------- String ----------------

// StringSchema validates one string value. Normalization (trim, case
// folding) runs before any check; checks run cheapest-first (exact length,
// min, max, prefix, suffix, contains, pattern) and stop at the first
// violation.
type StringSchema struct {
	coerce bool

	trim  bool
	lower bool
	upper bool

	exactLen *int
	minLen   *int
	maxLen   *int
	prefix   *string
	suffix   *string
	substr   *string
	pattern  *regexp.Regexp

	msg shaper.Customizer
}

// String returns a new string schema.
func String() *StringSchema { return &StringSchema{} }

// Coerce enables forced stringification of the input before validation.
func (s *StringSchema) Coerce() *StringSchema { c := *s; c.coerce = true; return &c }

// Trim strips leading/trailing whitespace before any check.
func (s *StringSchema) Trim() *StringSchema { c := *s; c.trim = true; return &c }

// Lower folds the value to lower case before any check.
func (s *StringSchema) Lower() *StringSchema { c := *s; c.lower = true; c.upper = false; return &c }

// Upper folds the value to upper case before any check.
func (s *StringSchema) Upper() *StringSchema { c := *s; c.upper = true; c.lower = false; return &c }

// Length requires the exact length n.
func (s *StringSchema) Length(n int) *StringSchema { c := *s; c.exactLen = &n; return &c }

// Min requires at least n characters.
func (s *StringSchema) Min(n int) *StringSchema { c := *s; c.minLen = &n; return &c }

// Max allows at most n characters.
func (s *StringSchema) Max(n int) *StringSchema { c := *s; c.maxLen = &n; return &c }

// StartsWith requires the given prefix.
func (s *StringSchema) StartsWith(p string) *StringSchema { c := *s; c.prefix = &p; return &c }

// EndsWith requires the given suffix.
func (s *StringSchema) EndsWith(p string) *StringSchema { c := *s; c.suffix = &p; return &c }

// Contains requires the given substring.
func (s *StringSchema) Contains(p string) *StringSchema { c := *s; c.substr = &p; return &c }

// Pattern requires the value to match re.
func (s *StringSchema) Pattern(re *regexp.Regexp) *StringSchema { c := *s; c.pattern = re; return &c }

// Message sets a fixed error message for issues originating at this node.
func (s *StringSchema) Message(text string) *StringSchema {
	c := *s
	c.msg = shaper.Fixed(text)
	return &c
}

// MessageFunc sets a computed error message for issues originating at this node.
func (s *StringSchema) MessageFunc(fn func(shaper.Issue) (string, bool)) *StringSchema {
	c := *s
	c.msg = shaper.Computed(fn)
	return &c
}

func (s *StringSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	if s.coerce {
		cv, ok := coerceToString(v)
		if !ok {
			return nil, singleIssue(typeIssue(pc, "string", v, s.msg))
		}
		v = cv
	}
	str, ok := v.(string)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "string", v, s.msg))
	}
	// normalization precedes every check
	if s.trim {
		str = strings.TrimSpace(str)
	}
	if s.lower {
		str = cases.Lower(language.Und).String(str)
	}
	if s.upper {
		str = cases.Upper(language.Und).String(str)
	}
	n := len([]rune(str))
	// fixed cheapest-first order, first violation only
	if s.exactLen != nil && n != *s.exactLen {
		return nil, singleIssue(newIssue(pc, shaper.CodeInvalidLength, s.msg, map[string]any{"length": *s.exactLen, "got": n}))
	}
	if s.minLen != nil && n < *s.minLen {
		return nil, singleIssue(newIssue(pc, shaper.CodeTooSmall, s.msg, map[string]any{"min": *s.minLen, "got": n}))
	}
	if s.maxLen != nil && n > *s.maxLen {
		return nil, singleIssue(newIssue(pc, shaper.CodeTooBig, s.msg, map[string]any{"max": *s.maxLen, "got": n}))
	}
	if s.prefix != nil && !strings.HasPrefix(str, *s.prefix) {
		return nil, singleIssue(newIssue(pc, shaper.CodeInvalidString, s.msg, map[string]any{"starts_with": *s.prefix}))
	}
	if s.suffix != nil && !strings.HasSuffix(str, *s.suffix) {
		return nil, singleIssue(newIssue(pc, shaper.CodeInvalidString, s.msg, map[string]any{"ends_with": *s.suffix}))
	}
	if s.substr != nil && !strings.Contains(str, *s.substr) {
		return nil, singleIssue(newIssue(pc, shaper.CodeInvalidString, s.msg, map[string]any{"contains": *s.substr}))
	}
	if s.pattern != nil && !s.pattern.MatchString(str) {
		return nil, singleIssue(newIssue(pc, shaper.CodeInvalidString, s.msg, map[string]any{"pattern": s.pattern.String()}))
	}
	return str, nil
}

// Any lowers the schema for composition.
func (s *StringSchema) Any() AnySchema { return AnySchema{check: s.check} }

// Parse implements shaper.Schema[string].
func (s *StringSchema) Parse(ctx context.Context, v any) (string, error) {
	out, err := s.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

var _ shaper.Schema[string] = (*StringSchema)(nil)

// ---------------- Number ----------------

// NumberSchema validates one numeric value in the float64 domain. Inputs may
// be any Go numeric kind or json.Number. Checks run in a fixed order
// (integer-only, finiteness, min, max, multiple-of) and stop at the first
// violation.
type NumberSchema struct {
	coerce bool

	integer    bool
	finite     bool
	min        *float64
	minExcl    bool
	max        *float64
	maxExcl    bool
	multipleOf *float64

	msg shaper.Customizer
}

// Number returns a new number schema.
func Number() *NumberSchema { return &NumberSchema{} }

// Coerce enables forced numeric parsing of the input before validation.
func (s *NumberSchema) Coerce() *NumberSchema { c := *s; c.coerce = true; return &c }

// Int restricts the value to integers.
func (s *NumberSchema) Int() *NumberSchema { c := *s; c.integer = true; return &c }

// Finite rejects NaN and ±Inf.
func (s *NumberSchema) Finite() *NumberSchema { c := *s; c.finite = true; return &c }

// Min sets the inclusive lower bound.
func (s *NumberSchema) Min(n float64) *NumberSchema {
	c := *s
	c.min = &n
	c.minExcl = false
	return &c
}

// Max sets the inclusive upper bound.
func (s *NumberSchema) Max(n float64) *NumberSchema {
	c := *s
	c.max = &n
	c.maxExcl = false
	return &c
}

// GT sets the exclusive lower bound.
func (s *NumberSchema) GT(n float64) *NumberSchema {
	c := *s
	c.min = &n
	c.minExcl = true
	return &c
}

// LT sets the exclusive upper bound.
func (s *NumberSchema) LT(n float64) *NumberSchema {
	c := *s
	c.max = &n
	c.maxExcl = true
	return &c
}

// MultipleOf requires the value to be an exact multiple of n.
func (s *NumberSchema) MultipleOf(n float64) *NumberSchema { c := *s; c.multipleOf = &n; return &c }

// Message sets a fixed error message for issues originating at this node.
func (s *NumberSchema) Message(text string) *NumberSchema {
	c := *s
	c.msg = shaper.Fixed(text)
	return &c
}

func (s *NumberSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	if s.coerce {
		cv, ok := coerceToNumber(v)
		if !ok {
			return nil, singleIssue(typeIssue(pc, "number", v, s.msg))
		}
		v = cv
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "number", v, s.msg))
	}
	if s.integer && (math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f) {
		is := newIssue(pc, shaper.CodeInvalidType, s.msg, map[string]any{"got": f})
		is.Expected = "integer"
		is.Received = "float"
		return nil, singleIssue(is)
	}
	if s.finite && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil, singleIssue(newIssue(pc, shaper.CodeNotFinite, s.msg, nil))
	}
	if s.min != nil {
		if s.minExcl && f <= *s.min || !s.minExcl && f < *s.min {
			return nil, singleIssue(newIssue(pc, shaper.CodeTooSmall, s.msg, map[string]any{"min": *s.min, "got": f}))
		}
	}
	if s.max != nil {
		if s.maxExcl && f >= *s.max || !s.maxExcl && f > *s.max {
			return nil, singleIssue(newIssue(pc, shaper.CodeTooBig, s.msg, map[string]any{"max": *s.max, "got": f}))
		}
	}
	if s.multipleOf != nil && !isMultipleOf(f, *s.multipleOf) {
		return nil, singleIssue(newIssue(pc, shaper.CodeNotMultipleOf, s.msg, map[string]any{"multiple_of": *s.multipleOf, "got": f}))
	}
	return f, nil
}

// Any lowers the schema for composition.
func (s *NumberSchema) Any() AnySchema { return AnySchema{check: s.check} }

// Parse implements shaper.Schema[float64].
func (s *NumberSchema) Parse(ctx context.Context, v any) (float64, error) {
	out, err := s.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return 0, err
	}
	return out.(float64), nil
}

var _ shaper.Schema[float64] = (*NumberSchema)(nil)

// toFloat widens every accepted numeric input representation to float64.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// isMultipleOf tolerates the float remainder drift of decimal steps.
func isMultipleOf(v, step float64) bool {
	if step == 0 {
		return false
	}
	r := math.Abs(math.Mod(v, step))
	const eps = 1e-9
	return r < eps || math.Abs(r-math.Abs(step)) < eps
}

// ---------------- Bool ----------------

// BoolSchema validates one boolean value.
type BoolSchema struct {
	coerce bool
	msg    shaper.Customizer
}

// Bool returns a new boolean schema.
func Bool() *BoolSchema { return &BoolSchema{} }

/// Coerce enables truthiness mapping of the input before validation: nil,
// false, zero numbers and the empty string map to false, everything else to
// true.
func (s *BoolSchema) Coerce() *BoolSchema { c := *s; c.coerce = true; return &c }

// Message sets a fixed error message for issues originating at this node.
func (s *BoolSchema) Message(text string) *BoolSchema {
	c := *s
	c.msg = shaper.Fixed(text)
	return &c
}

func (s *BoolSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	if s.coerce {
		if isMissing(v) {
			return nil, singleIssue(typeIssue(pc, "boolean", v, s.msg))
		}
		return truthiness(v), nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "boolean", v, s.msg))
	}
	return b, nil
}

// Any lowers the schema for composition.
func (s *BoolSchema) Any() AnySchema { return AnySchema{check: s.check} }

// Parse implements shaper.Schema[bool].
func (s *BoolSchema) Parse(ctx context.Context, v any) (bool, error) {
	out, err := s.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return false, err
	}
	return out.(bool), nil
}

var _ shaper.Schema[bool] = (*BoolSchema)(nil)

// ---------------- Time ----------------

// TimeSchema validates one time.Time value. With Coerce it additionally
// accepts RFC3339 text and numeric epoch seconds.
type TimeSchema struct {
	coerce bool
	msg    shaper.Customizer
}

// Time returns a new time schema.
func Time() *TimeSchema { return &TimeSchema{} }

// Coerce enables timestamp parsing from RFC3339 text or epoch numbers before
// validation.
func (s *TimeSchema) Coerce() *TimeSchema { c := *s; c.coerce = true; return &c }

// Message sets a fixed error message for issues originating at this node.
func (s *TimeSchema) Message(text string) *TimeSchema {
	c := *s
	c.msg = shaper.Fixed(text)
	return &c
}

func (s *TimeSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	if !s.coerce {
		return nil, singleIssue(typeIssue(pc, "date", v, s.msg))
	}
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return nil, singleIssue(newIssue(pc, shaper.CodeInvalidDate, s.msg, map[string]any{"got": t}))
		}
		return parsed, nil
	default:
		if f, ok := toFloat(v); ok {
			sec, frac := math.Modf(f)
			return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
		}
		return nil, singleIssue(typeIssue(pc, "date", v, s.msg))
	}
}

// Any lowers the schema for composition.
func (s *TimeSchema) Any() AnySchema { return AnySchema{check: s.check} }

// Parse implements shaper.Schema[time.Time].
func (s *TimeSchema) Parse(ctx context.Context, v any) (time.Time, error) {
	out, err := s.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return time.Time{}, err
	}
	return out.(time.Time), nil
}

var _ shaper.Schema[time.Time] = (*TimeSchema)(nil)

// ---------------- AnyValue ----------------

// AnyValueSchema accepts every present value unchanged. Absence is still an
// invalid_type; wrap with Optional for presence-tolerant fields.
type AnyValueSchema struct{}

// AnyValue returns a schema accepting any present value.
func AnyValue() *AnyValueSchema { return &AnyValueSchema{} }

func (s *AnyValueSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	if isMissing(v) {
		return nil, singleIssue(typeIssue(pc, "any", v, shaper.Customizer{}))
	}
	return v, nil
}

// Any lowers the schema for composition.
func (s *AnyValueSchema) Any() AnySchema { return AnySchema{check: s.check} }

// Parse implements shaper.Schema[any].
func (s *AnyValueSchema) Parse(ctx context.Context, v any) (any, error) {
	return s.check(ctx, shaper.NewContext(), v)
}

var _ shaper.Schema[any] = (*AnyValueSchema)(nil)
