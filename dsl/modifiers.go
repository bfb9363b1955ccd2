package dsl

import (
	"context"

	shaper "github.com/shaper-go/shaper"
	"github.com/shaper-go/shaper/i18n"
)

// Modifiers are wrapper nodes owning exactly one child. Each alters pre/post
// behavior while preserving the child's contract, and each is available both
// as a free function and as a chain method on AnySchema.

// Optional passes the absence marker through unchanged; the enclosing object
// then omits the field from its output. Present values delegate to the child.
func Optional(n Node) AnySchema {
	inner := n.Any()
	out := inner
	out.check = func(ctx context.Context, pc *shaper.Context, v any) (any, error) {
		if isMissing(v) {
			return missing{}, nil
		}
		return inner.check(ctx, pc, v)
	}
	return out
}

// Nullable passes null through unchanged; everything else delegates.
func Nullable(n Node) AnySchema {
	inner := n.Any()
	out := inner
	out.check = func(ctx context.Context, pc *shaper.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		return inner.check(ctx, pc, v)
	}
	return out
}

// Nullish passes both absence and null through unchanged.
func Nullish(n Node) AnySchema {
	inner := n.Any()
	out := inner
	out.check = func(ctx context.Context, pc *shaper.Context, v any) (any, error) {
		if isMissing(v) {
			return missing{}, nil
		}
		if v == nil {
			return nil, nil
		}
		return inner.check(ctx, pc, v)
	}
	return out
}

// Default substitutes d on absence WITHOUT invoking the child; d may be a
// `func() any` evaluated lazily per call. Explicit null is still validated
// by the child.
func Default(n Node, d any) AnySchema {
	inner := n.Any()
	out := inner
	out.check = func(ctx context.Context, pc *shaper.Context, v any) (any, error) {
		if isMissing(v) {
			return resolveThunk(d), nil
		}
		return inner.check(ctx, pc, v)
	}
	return out
}

// Catch runs the child and substitutes f on any failure; f may be a
// `func() any` evaluated lazily per call. It never raises.
func Catch(n Node, f any) AnySchema {
	inner := n.Any()
	out := inner
	out.check = func(ctx context.Context, pc *shaper.Context, v any) (any, error) {
		res, err := inner.check(ctx, pc, v)
		if err != nil {
			return resolveThunk(f), nil
		}
		return res, nil
	}
	return out
}

// Transform delegates to the child, then applies the pure mapping fn.
// Mapping failures propagate uncaught: the error is returned as-is, never
// converted into Issues.
func Transform(n Node, fn func(any) (any, error)) AnySchema {
	inner := n.Any()
	out := inner
	out.literals = nil
	out.check = func(ctx context.Context, pc *shaper.Context, v any) (any, error) {
		res, err := inner.check(ctx, pc, v)
		if err != nil {
			return nil, err
		}
		if isMissing(res) {
			return res, nil
		}
		return fn(res)
	}
	return out
}

// Refine delegates to the child, then raises one custom issue with msg at the
// current path when pred rejects the value.
func Refine(n Node, pred func(any) bool, msg string) AnySchema {
	inner := n.Any()
	out := inner
	out.check = func(ctx context.Context, pc *shaper.Context, v any) (any, error) {
		res, err := inner.check(ctx, pc, v)
		if err != nil {
			return nil, err
		}
		if isMissing(res) {
			return res, nil
		}
		if !pred(res) {
			text := msg
			if text == "" {
				text = i18n.T(shaper.CodeCustom, nil)
			}
			return nil, singleIssue(shaper.Issue{Code: shaper.CodeCustom, Path: pc.Path(), Message: text})
		}
		return res, nil
	}
	return out
}

// Pipe feeds a's output as b's input on the same context.
func Pipe(a, b Node) AnySchema {
	first := a.Any()
	second := b.Any()
	out := AnySchema{}
	out.check = func(ctx context.Context, pc *shaper.Context, v any) (any, error) {
		res, err := first.check(ctx, pc, v)
		if err != nil {
			return nil, err
		}
		if isMissing(res) {
			return res, nil
		}
		return second.check(ctx, pc, res)
	}
	return out
}

func resolveThunk(d any) any {
	if fn, ok := d.(func() any); ok {
		return fn()
	}
	return d
}

// ---- chain forms ----

// Optional marks the node as absence-tolerant.
func (a AnySchema) Optional() AnySchema { return Optional(a) }

// Nullable marks the node as null-tolerant.
func (a AnySchema) Nullable() AnySchema { return Nullable(a) }

// Nullish marks the node as absence- and null-tolerant.
func (a AnySchema) Nullish() AnySchema { return Nullish(a) }

// Default substitutes d on absence without invoking the node.
func (a AnySchema) Default(d any) AnySchema { return Default(a, d) }

// Catch substitutes f on any failure of this node.
func (a AnySchema) Catch(f any) AnySchema { return Catch(a, f) }

// Transform applies fn to this node's output.
func (a AnySchema) Transform(fn func(any) (any, error)) AnySchema { return Transform(a, fn) }

// Refine raises one custom issue with msg when pred rejects this node's output.
func (a AnySchema) Refine(pred func(any) bool, msg string) AnySchema { return Refine(a, pred, msg) }

// Pipe feeds this node's output into next.
func (a AnySchema) Pipe(next Node) AnySchema { return Pipe(a, next) }
