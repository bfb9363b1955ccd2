package dsl

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	shaper "github.com/shaper-go/shaper"
)

// RecordSchema validates objects with dynamic string keys. Key and value are
// validated independently per entry: a key failure does not block validating
// the paired value; both are attempted and their issues aggregated.
type RecordSchema struct {
	key AnySchema
	val AnySchema
	msg shaper.Customizer
}

// Record returns a record schema with the given key and value schemas.
func Record(key, val Node) *RecordSchema {
	return &RecordSchema{key: key.Any(), val: val.Any()}
}

// Message sets a fixed error message for issues originating at this node.
func (r *RecordSchema) Message(text string) *RecordSchema {
	c := *r
	c.msg = shaper.Fixed(text)
	return &c
}

func (r *RecordSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "object", v, r.msg))
	}
	// entries in key-sorted order for deterministic issue output
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]any, len(src))
	var iss shaper.Issues
	for _, k := range keys {
		child := pc.Key(k)
		outKey := k
		kres, kerr := r.key.check(ctx, child, k)
		if kerr != nil {
			if ki, ok := shaper.AsIssues(kerr); ok {
				iss = shaper.AppendIssues(iss, ki...)
			} else {
				return nil, kerr
			}
		} else if ks, ok := kres.(string); ok {
			outKey = ks
		}
		// the value is validated even when its key failed
		vres, verr := r.val.check(ctx, child, src[k])
		if verr != nil {
			if vi, ok := shaper.AsIssues(verr); ok {
				iss = shaper.AppendIssues(iss, vi...)
			} else {
				return nil, verr
			}
			continue
		}
		if kerr == nil && !isMissing(vres) {
			out[outKey] = vres
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Any lowers the schema for composition.
func (r *RecordSchema) Any() AnySchema { return AnySchema{check: r.check} }

// Parse implements shaper.Schema[map[string]any].
func (r *RecordSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	out, err := r.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

var _ shaper.Schema[map[string]any] = (*RecordSchema)(nil)

// MapSchema validates keyed collections with independently validated keys
// and values. It accepts map[string]any and map[any]any input (YAML decoding
// produces the latter). Size constraints are checked before entry iteration.
type MapSchema struct {
	key       AnySchema
	val       AnySchema
	exactSize *int
	minSize   *int
	maxSize   *int
	msg       shaper.Customizer
}

// MapOf returns a map schema with the given key and value schemas.
func MapOf(key, val Node) *MapSchema {
	return &MapSchema{key: key.Any(), val: val.Any()}
}

// Size requires exactly n entries.
func (m *MapSchema) Size(n int) *MapSchema { c := *m; c.exactSize = &n; return &c }

// Min requires at least n entries.
func (m *MapSchema) Min(n int) *MapSchema { c := *m; c.minSize = &n; return &c }

// Max allows at most n entries.
func (m *MapSchema) Max(n int) *MapSchema { c := *m; c.maxSize = &n; return &c }

// Message sets a fixed error message for issues originating at this node.
func (m *MapSchema) Message(text string) *MapSchema {
	c := *m
	c.msg = shaper.Fixed(text)
	return &c
}

func (m *MapSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	var entries map[any]any
	switch src := v.(type) {
	case map[any]any:
		entries = src
	case map[string]any:
		entries = make(map[any]any, len(src))
		for k, val := range src {
			entries[k] = val
		}
	default:
		return nil, singleIssue(typeIssue(pc, "object", v, m.msg))
	}
	n := len(entries)
	if m.exactSize != nil && n != *m.exactSize {
		return nil, singleIssue(newIssue(pc, shaper.CodeInvalidSize, m.msg, map[string]any{"size": *m.exactSize, "got": n}))
	}
	if m.minSize != nil && n < *m.minSize {
		return nil, singleIssue(newIssue(pc, shaper.CodeTooSmall, m.msg, map[string]any{"min": *m.minSize, "got": n}))
	}
	if m.maxSize != nil && n > *m.maxSize {
		return nil, singleIssue(newIssue(pc, shaper.CodeTooBig, m.msg, map[string]any{"max": *m.maxSize, "got": n}))
	}
	// entries in rendered-key order for deterministic issue output
	keys := make([]any, 0, n)
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j]) })
	out := make(map[any]any, n)
	var iss shaper.Issues
	for _, k := range keys {
		child := pc.Key(fmt.Sprint(k))
		outKey := k
		kres, kerr := m.key.check(ctx, child, k)
		if kerr != nil {
			if ki, ok := shaper.AsIssues(kerr); ok {
				iss = shaper.AppendIssues(iss, ki...)
			} else {
				return nil, kerr
			}
		} else {
			outKey = kres
		}
		vres, verr := m.val.check(ctx, child, entries[k])
		if verr != nil {
			if vi, ok := shaper.AsIssues(verr); ok {
				iss = shaper.AppendIssues(iss, vi...)
			} else {
				return nil, verr
			}
			continue
		}
		if kerr == nil {
			out[outKey] = vres
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Any lowers the schema for composition.
func (m *MapSchema) Any() AnySchema { return AnySchema{check: m.check} }

// Parse implements shaper.Schema[map[any]any].
func (m *MapSchema) Parse(ctx context.Context, v any) (map[any]any, error) {
	out, err := m.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return nil, err
	}
	return out.(map[any]any), nil
}

var _ shaper.Schema[map[any]any] = (*MapSchema)(nil)

// SetSchema validates an array as a mathematical set: size constraints are
// checked before membership iteration, members are validated individually,
// and the output is deduplicated preserving first occurrence.
type SetSchema struct {
	elem      AnySchema
	exactSize *int
	minSize   *int
	maxSize   *int
	msg       shaper.Customizer
}

// Set returns a set schema with the given member schema.
func Set(elem Node) *SetSchema { return &SetSchema{elem: elem.Any()} }

// Size requires exactly n members.
func (s *SetSchema) Size(n int) *SetSchema { c := *s; c.exactSize = &n; return &c }

// Min requires at least n members.
func (s *SetSchema) Min(n int) *SetSchema { c := *s; c.minSize = &n; return &c }

// Max allows at most n members.
func (s *SetSchema) Max(n int) *SetSchema { c := *s; c.maxSize = &n; return &c }

// Message sets a fixed error message for issues originating at this node.
func (s *SetSchema) Message(text string) *SetSchema {
	c := *s
	c.msg = shaper.Fixed(text)
	return &c
}

func (s *SetSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	src, ok := v.([]any)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "set", v, s.msg))
	}
	n := len(src)
	if s.exactSize != nil && n != *s.exactSize {
		return nil, singleIssue(newIssue(pc, shaper.CodeInvalidSize, s.msg, map[string]any{"size": *s.exactSize, "got": n}))
	}
	if s.minSize != nil && n < *s.minSize {
		return nil, singleIssue(newIssue(pc, shaper.CodeTooSmall, s.msg, map[string]any{"min": *s.minSize, "got": n}))
	}
	if s.maxSize != nil && n > *s.maxSize {
		return nil, singleIssue(newIssue(pc, shaper.CodeTooBig, s.msg, map[string]any{"max": *s.maxSize, "got": n}))
	}
	out := make([]any, 0, n)
	seen := make(map[any]struct{}, n)
	var iss shaper.Issues
	for i := range src {
		res, err := s.elem.check(ctx, pc.Index(i), src[i])
		if err != nil {
			if child, ok := shaper.AsIssues(err); ok {
				iss = shaper.AppendIssues(iss, child...)
				continue
			}
			return nil, err
		}
		// dedup comparable members only; composite members stay as-is
		if res != nil && reflect.TypeOf(res).Comparable() {
			if _, dup := seen[res]; dup {
				continue
			}
			seen[res] = struct{}{}
		}
		out = append(out, res)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Any lowers the schema for composition.
func (s *SetSchema) Any() AnySchema { return AnySchema{check: s.check} }

// Parse implements shaper.Schema[[]any].
func (s *SetSchema) Parse(ctx context.Context, v any) ([]any, error) {
	out, err := s.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return nil, err
	}
	return out.([]any), nil
}

var _ shaper.Schema[[]any] = (*SetSchema)(nil)
