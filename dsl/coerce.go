package dsl

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	shaper "github.com/shaper-go/shaper"
)

// coerceToString renders scalar inputs as their canonical text form. Only
// strings, booleans and numbers convert; everything else (including absence
// and null) stays unconvertible so the caller reports invalid_type.
func coerceToString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, _ := toFloat(t)
		return strconv.FormatFloat(f, 'g', -1, 64), true
	default:
		return "", false
	}
}

// coerceToNumber converts numeric text and booleans into the float64 domain.
// Numbers pass through the usual widening; true/false map to 1/0.
func coerceToNumber(v any) (float64, bool) {
	if f, ok := toFloat(v); ok {
		return f, true
	}
	switch t := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// truthiness maps any input to a boolean the way dynamic languages do: nil,
// false, zero numbers and the empty string are false, everything else true.
func truthiness(v any) bool {
	switch t := v.(type) {
	case nil, missing:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		if f, ok := toFloat(t); ok {
			return f != 0
		}
		return true
	}
}

// ---------------- StringBool ----------------

// StringBoolSchema maps a fixed vocabulary of textual tokens onto booleans.
// Matching is case-insensitive against configurable truthy/falsy sets.
type StringBoolSchema struct {
	truthy map[string]struct{}
	falsy  map[string]struct{}
	msg    shaper.Customizer
}

// StringBool returns a schema that accepts the usual flag spellings:
// true/1/yes/on/y/enabled and false/0/no/off/n/disabled.
func StringBool() *StringBoolSchema {
	return &StringBoolSchema{
		truthy: tokenSet("true", "1", "yes", "on", "y", "enabled"),
		falsy:  tokenSet("false", "0", "no", "off", "n", "disabled"),
	}
}

func tokenSet(tokens ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[strings.ToLower(t)] = struct{}{}
	}
	return m
}

// Truthy replaces the accepted true spellings.
func (s *StringBoolSchema) Truthy(tokens ...string) *StringBoolSchema {
	c := *s
	c.truthy = tokenSet(tokens...)
	return &c
}

// Falsy replaces the accepted false spellings.
func (s *StringBoolSchema) Falsy(tokens ...string) *StringBoolSchema {
	c := *s
	c.falsy = tokenSet(tokens...)
	return &c
}

// Message sets a fixed error message for issues originating at this node.
func (s *StringBoolSchema) Message(text string) *StringBoolSchema {
	c := *s
	c.msg = shaper.Fixed(text)
	return &c
}

func (s *StringBoolSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	str, ok := v.(string)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "string", v, s.msg))
	}
	tok := strings.ToLower(str)
	if _, ok := s.truthy[tok]; ok {
		return true, nil
	}
	if _, ok := s.falsy[tok]; ok {
		return false, nil
	}
	return nil, singleIssue(newIssue(pc, shaper.CodeInvalidValue, s.msg, map[string]any{"got": str}))
}

// Any lowers the schema for composition.
func (s *StringBoolSchema) Any() AnySchema { return AnySchema{check: s.check} }

// Parse implements shaper.Schema[bool].
func (s *StringBoolSchema) Parse(ctx context.Context, v any) (bool, error) {
	out, err := s.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return false, err
	}
	return out.(bool), nil
}

var _ shaper.Schema[bool] = (*StringBoolSchema)(nil)
