package dsl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	shaper "github.com/shaper-go/shaper"
	"github.com/shaper-go/shaper/i18n"
)

// checkFunc is the single internal validate operation every node routes
// through: value in, typed value or error out, path carried by pc.
type checkFunc func(ctx context.Context, pc *shaper.Context, v any) (any, error)

// missing is the absence marker an object passes to a field node when the
// input has no such key. Optional/Default wrappers consume it; base nodes
// report invalid_type with received "missing".
type missing struct{}

func isMissing(v any) bool {
	_, ok := v.(missing)
	return ok
}

// Node is anything that lowers to an untyped schema node. Every builder in
// this package implements it, as does AnySchema itself.
type Node interface {
	Any() AnySchema
}

// AnySchema is the untyped node used for composition: object fields, union
// members, tuple positions. It wraps the check function together with the
// metadata composite schemas need (literal discriminant values for O(1)
// union dispatch).
type AnySchema struct {
	check checkFunc
	// literals is non-empty when this node accepts exactly a fixed set of
	// literal values (Literal/Enum); discriminated unions index on it.
	literals []any
}

// Any returns the node itself.
func (a AnySchema) Any() AnySchema { return a }

// Parse implements shaper.Schema[any] so modifier chains remain usable as
// stand-alone schemas.
func (a AnySchema) Parse(ctx context.Context, v any) (any, error) {
	out, err := a.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return nil, err
	}
	if isMissing(out) {
		return nil, nil
	}
	return out, nil
}

var _ shaper.Schema[any] = AnySchema{}

// ---- issue construction helpers ----

// newIssue builds an issue at the current path with the default message for
// code, then applies the node's customizer.
func newIssue(pc *shaper.Context, code string, cz shaper.Customizer, params map[string]any) shaper.Issue {
	is := shaper.Issue{
		Code:    code,
		Path:    pc.Path(),
		Message: i18n.T(code, nil),
		Params:  params,
	}
	return cz.Apply(is)
}

// typeIssue builds the invalid_type issue with expected/received diagnostics.
func typeIssue(pc *shaper.Context, expected string, v any, cz shaper.Customizer) shaper.Issue {
	received := typeName(v)
	is := shaper.Issue{
		Code:     shaper.CodeInvalidType,
		Path:     pc.Path(),
		Message:  i18n.T(shaper.CodeInvalidType, map[string]string{"expected": expected, "received": received}),
		Expected: expected,
		Received: received,
	}
	return cz.Apply(is)
}

func singleIssue(is shaper.Issue) error { return shaper.Issues{is} }

// typeName classifies a runtime value for diagnostics.
func typeName(v any) string {
	switch v.(type) {
	case missing:
		return "missing"
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return "number"
	case map[string]any, map[any]any:
		return "object"
	case []any:
		return "array"
	case time.Time:
		return "date"
	default:
		return fmt.Sprintf("%T", v)
	}
}
