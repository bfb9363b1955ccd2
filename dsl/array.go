package dsl

import (
	"context"

	shaper "github.com/shaper-go/shaper"
)

// ArraySchema validates a homogeneous array. Size constraints are checked
// BEFORE iterating: a gross shape mismatch fails fast with zero element
// validations. Per-element issues are aggregated with index paths.
type ArraySchema struct {
	elem     AnySchema
	exactLen *int
	minLen   *int
	maxLen   *int
	msg      shaper.Customizer
}

// Array returns an array schema with the given element schema.
func Array(elem Node) *ArraySchema { return &ArraySchema{elem: elem.Any()} }

// Length requires exactly n elements.
func (a *ArraySchema) Length(n int) *ArraySchema { c := *a; c.exactLen = &n; return &c }

// Min requires at least n elements.
func (a *ArraySchema) Min(n int) *ArraySchema { c := *a; c.minLen = &n; return &c }

// Max allows at most n elements.
func (a *ArraySchema) Max(n int) *ArraySchema { c := *a; c.maxLen = &n; return &c }

// Message sets a fixed error message for issues originating at this node.
func (a *ArraySchema) Message(text string) *ArraySchema {
	c := *a
	c.msg = shaper.Fixed(text)
	return &c
}

func (a *ArraySchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	src, ok := v.([]any)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "array", v, a.msg))
	}
	n := len(src)
	if a.exactLen != nil && n != *a.exactLen {
		return nil, singleIssue(newIssue(pc, shaper.CodeInvalidLength, a.msg, map[string]any{"length": *a.exactLen, "got": n}))
	}
	if a.minLen != nil && n < *a.minLen {
		return nil, singleIssue(newIssue(pc, shaper.CodeTooSmall, a.msg, map[string]any{"min": *a.minLen, "got": n}))
	}
	if a.maxLen != nil && n > *a.maxLen {
		return nil, singleIssue(newIssue(pc, shaper.CodeTooBig, a.msg, map[string]any{"max": *a.maxLen, "got": n}))
	}
	out := make([]any, 0, n)
	var iss shaper.Issues
	for i := range src {
		res, err := a.elem.check(ctx, pc.Index(i), src[i])
		if err != nil {
			if child, ok := shaper.AsIssues(err); ok {
				iss = shaper.AppendIssues(iss, child...)
				continue
			}
			return nil, err
		}
		out = append(out, res)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Any lowers the schema for composition.
func (a *ArraySchema) Any() AnySchema { return AnySchema{check: a.check} }

// Parse implements shaper.Schema[[]any].
func (a *ArraySchema) Parse(ctx context.Context, v any) ([]any, error) {
	out, err := a.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return nil, err
	}
	return out.([]any), nil
}

var _ shaper.Schema[[]any] = (*ArraySchema)(nil)

// TupleSchema validates a fixed sequence of positional schemas, optionally
// followed by a rest schema for trailing positions. Arity is confirmed
// before any position is validated.
type TupleSchema struct {
	items []AnySchema
	rest  *AnySchema
	msg   shaper.Customizer
}

// Tuple returns a tuple schema over the given positional schemas.
func Tuple(items ...Node) *TupleSchema {
	t := &TupleSchema{items: make([]AnySchema, len(items))}
	for i, n := range items {
		t.items[i] = n.Any()
	}
	return t
}

func (t *TupleSchema) clone() *TupleSchema {
	c := *t
	c.items = make([]AnySchema, len(t.items))
	copy(c.items, t.items)
	return &c
}

// Rest applies n to every position beyond the fixed arity.
func (t *TupleSchema) Rest(n Node) *TupleSchema {
	c := t.clone()
	ad := n.Any()
	c.rest = &ad
	return c
}

// Message sets a fixed error message for issues originating at this node.
func (t *TupleSchema) Message(text string) *TupleSchema {
	c := t.clone()
	c.msg = shaper.Fixed(text)
	return c
}

func (t *TupleSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	src, ok := v.([]any)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "array", v, t.msg))
	}
	arity := len(t.items)
	n := len(src)
	// arity first: element validation starts only once the shape is confirmed
	if n < arity {
		return nil, singleIssue(newIssue(pc, shaper.CodeTooSmall, t.msg, map[string]any{"min": arity, "got": n}))
	}
	if t.rest == nil && n > arity {
		return nil, singleIssue(newIssue(pc, shaper.CodeTooBig, t.msg, map[string]any{"max": arity, "got": n}))
	}
	out := make([]any, 0, n)
	var iss shaper.Issues
	for i := 0; i < arity; i++ {
		res, err := t.items[i].check(ctx, pc.Index(i), src[i])
		if err != nil {
			if child, ok := shaper.AsIssues(err); ok {
				iss = shaper.AppendIssues(iss, child...)
				continue
			}
			return nil, err
		}
		out = append(out, res)
	}
	for i := arity; i < n; i++ {
		res, err := t.rest.check(ctx, pc.Index(i), src[i])
		if err != nil {
			if child, ok := shaper.AsIssues(err); ok {
				iss = shaper.AppendIssues(iss, child...)
				continue
			}
			return nil, err
		}
		out = append(out, res)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Any lowers the schema for composition.
func (t *TupleSchema) Any() AnySchema { return AnySchema{check: t.check} }

// Parse implements shaper.Schema[[]any].
func (t *TupleSchema) Parse(ctx context.Context, v any) ([]any, error) {
	out, err := t.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return nil, err
	}
	return out.([]any), nil
}

var _ shaper.Schema[[]any] = (*TupleSchema)(nil)
