package dsl

import (
	"context"
	"fmt"
	"reflect"

	shaper "github.com/shaper-go/shaper"
)

// ---------------- Literal / Enum ----------------

// LiteralSchema accepts exactly one value.
type LiteralSchema struct {
	value any
	msg   shaper.Customizer
}

// Literal returns a schema accepting exactly v. Numeric values compare in
// the float64 domain so JSON-decoded numbers match Go numeric literals.
func Literal(v any) *LiteralSchema { return &LiteralSchema{value: v} }

// Message sets a fixed error message for issues originating at this node.
func (l *LiteralSchema) Message(text string) *LiteralSchema {
	c := *l
	c.msg = shaper.Fixed(text)
	return &c
}

func (l *LiteralSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	if isMissing(v) {
		return nil, singleIssue(typeIssue(pc, typeName(l.value), v, l.msg))
	}
	if !isComparable(v) || discKey(v) != discKey(l.value) {
		return nil, singleIssue(newIssue(pc, shaper.CodeInvalidLiteral, l.msg, map[string]any{"expected": l.value, "got": v}))
	}
	return l.value, nil
}

// Any lowers the schema for composition, exposing the literal value for
// discriminated-union indexing.
func (l *LiteralSchema) Any() AnySchema {
	return AnySchema{check: l.check, literals: []any{l.value}}
}

// Parse implements shaper.Schema[any].
func (l *LiteralSchema) Parse(ctx context.Context, v any) (any, error) {
	return l.check(ctx, shaper.NewContext(), v)
}

var _ shaper.Schema[any] = (*LiteralSchema)(nil)

// EnumSchema accepts one of a fixed set of string values, tested against a
// precomputed membership set.
type EnumSchema struct {
	values []string
	set    map[string]struct{}
	msg    shaper.Customizer
}

// Enum returns a schema accepting any of the given values.
func Enum(values ...string) *EnumSchema {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return &EnumSchema{values: values, set: set}
}

// Message sets a fixed error message for issues originating at this node.
func (e *EnumSchema) Message(text string) *EnumSchema {
	c := *e
	c.msg = shaper.Fixed(text)
	return &c
}

func (e *EnumSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "string", v, e.msg))
	}
	if _, ok := e.set[s]; !ok {
		return nil, singleIssue(newIssue(pc, shaper.CodeInvalidEnumValue, e.msg, map[string]any{"options": e.values, "got": s}))
	}
	return s, nil
}

// Any lowers the schema for composition, exposing the member values for
// discriminated-union indexing.
func (e *EnumSchema) Any() AnySchema {
	lits := make([]any, len(e.values))
	for i, v := range e.values {
		lits[i] = v
	}
	return AnySchema{check: e.check, literals: lits}
}

// Parse implements shaper.Schema[string].
func (e *EnumSchema) Parse(ctx context.Context, v any) (string, error) {
	out, err := e.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

var _ shaper.Schema[string] = (*EnumSchema)(nil)

// ---------------- Union ----------------

// UnionSchema tries its alternatives in declared order; the first success
// wins. When every alternative fails, one synthetic invalid_union issue is
// raised; per-alternative diagnostics are intentionally discarded, a
// documented simplification of this dispatch.
type UnionSchema struct {
	alts []AnySchema
	msg  shaper.Customizer
}

// Union returns a union schema over the given alternatives.
func Union(alts ...Node) *UnionSchema {
	u := &UnionSchema{alts: make([]AnySchema, len(alts))}
	for i, n := range alts {
		u.alts[i] = n.Any()
	}
	return u
}

// Message sets a fixed error message for issues originating at this node.
func (u *UnionSchema) Message(text string) *UnionSchema {
	c := *u
	c.alts = make([]AnySchema, len(u.alts))
	copy(c.alts, u.alts)
	c.msg = shaper.Fixed(text)
	return &c
}

func (u *UnionSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	for _, alt := range u.alts {
		res, err := alt.check(ctx, pc, v)
		if err == nil {
			return res, nil
		}
		if _, ok := shaper.AsIssues(err); !ok {
			// non-validation fault, not part of dispatch
			return nil, err
		}
	}
	return nil, singleIssue(newIssue(pc, shaper.CodeInvalidUnion, u.msg, nil))
}

// Any lowers the schema for composition.
func (u *UnionSchema) Any() AnySchema { return AnySchema{check: u.check} }

// Parse implements shaper.Schema[any].
func (u *UnionSchema) Parse(ctx context.Context, v any) (any, error) {
	return u.check(ctx, shaper.NewContext(), v)
}

var _ shaper.Schema[any] = (*UnionSchema)(nil)

// ---------------- Discriminated union ----------------

// DiscriminatedUnionSchema dispatches on the literal value of one field. A
// lookup table built at construction selects the owning member in O(1); on
// no exact match every member is probed in declared order before raising
// invalid_union_discriminator.
type DiscriminatedUnionSchema struct {
	key     string
	members []*ObjectSchema
	index   map[any]int
	msg     shaper.Customizer
}

// DiscriminatedUnion returns a discriminated union keyed by key. Every
// member must declare key as a Literal or Enum field; only literal-valued
// discriminator fields are indexable; anything else panics at construction.
func DiscriminatedUnion(key string, members ...*ObjectSchema) *DiscriminatedUnionSchema {
	du := &DiscriminatedUnionSchema{key: key, members: members, index: map[any]int{}}
	for i, m := range members {
		lits := m.discriminantValues(key)
		if len(lits) == 0 {
			panic(fmt.Sprintf("dsl: discriminated union member %d has no literal values for field %q", i, key))
		}
		for _, lv := range lits {
			du.index[discKey(lv)] = i
		}
	}
	return du
}

// discriminantValues reports the literal values field name accepts, empty
// when the field is absent or not literal-valued.
func (o *ObjectSchema) discriminantValues(name string) []any {
	for _, f := range o.fields {
		if f.name == name {
			return f.node.literals
		}
	}
	return nil
}

// Message sets a fixed error message for issues originating at this node.
func (d *DiscriminatedUnionSchema) Message(text string) *DiscriminatedUnionSchema {
	c := *d
	c.msg = shaper.Fixed(text)
	return &c
}

func (d *DiscriminatedUnionSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "object", v, d.msg))
	}
	if dv := src[d.key]; isComparable(dv) {
		if i, ok := d.index[discKey(dv)]; ok {
			return d.members[i].check(ctx, pc, v)
		}
	}
	// no exact match: probe every member in declared order before giving up
	for _, m := range d.members {
		res, err := m.check(ctx, pc, v)
		if err == nil {
			return res, nil
		}
		if _, ok := shaper.AsIssues(err); !ok {
			return nil, err
		}
	}
	return nil, singleIssue(newIssue(pc.Key(d.key), shaper.CodeInvalidDiscriminant, d.msg, map[string]any{
		"discriminator": d.key,
		"got":           src[d.key],
	}))
}

// Any lowers the schema for composition.
func (d *DiscriminatedUnionSchema) Any() AnySchema { return AnySchema{check: d.check} }

// Parse implements shaper.Schema[map[string]any].
func (d *DiscriminatedUnionSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	out, err := d.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

var _ shaper.Schema[map[string]any] = (*DiscriminatedUnionSchema)(nil)

// discKey normalizes a discriminant value for table lookup: numeric inputs
// collapse into the float64 domain so JSON-decoded numbers hit Go numeric
// literals.
func discKey(v any) any {
	if f, ok := toFloat(v); ok {
		return f
	}
	return v
}

// isComparable guards map lookups and == against non-comparable dynamic values.
func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

// ---------------- Intersection ----------------

// IntersectionSchema validates the ORIGINAL input against both members
// independently (not threaded sequentially). Object-shaped outputs are
// shallow-merged with the right side winning per key; for anything else the
// original input is returned once both succeed.
type IntersectionSchema struct {
	left  AnySchema
	right AnySchema
}

// Intersection returns an intersection schema over a and b.
func Intersection(a, b Node) *IntersectionSchema {
	return &IntersectionSchema{left: a.Any(), right: b.Any()}
}

func (s *IntersectionSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	var iss shaper.Issues
	lres, lerr := s.left.check(ctx, pc, v)
	if lerr != nil {
		if li, ok := shaper.AsIssues(lerr); ok {
			iss = shaper.AppendIssues(iss, li...)
		} else {
			return nil, lerr
		}
	}
	rres, rerr := s.right.check(ctx, pc, v)
	if rerr != nil {
		if ri, ok := shaper.AsIssues(rerr); ok {
			iss = shaper.AppendIssues(iss, ri...)
		} else {
			return nil, rerr
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	lm, lok := lres.(map[string]any)
	rm, rok := rres.(map[string]any)
	if lok && rok {
		merged := make(map[string]any, len(lm)+len(rm))
		for k, mv := range lm {
			merged[k] = mv
		}
		for k, mv := range rm {
			merged[k] = mv
		}
		return merged, nil
	}
	return v, nil
}

// Any lowers the schema for composition.
func (s *IntersectionSchema) Any() AnySchema { return AnySchema{check: s.check} }

// Parse implements shaper.Schema[any].
func (s *IntersectionSchema) Parse(ctx context.Context, v any) (any, error) {
	return s.check(ctx, shaper.NewContext(), v)
}

var _ shaper.Schema[any] = (*IntersectionSchema)(nil)
