package dsl

import (
	"context"
	"sort"

	shaper "github.com/shaper-go/shaper"
)

type unknownPolicy int

const (
	unknownStrip unknownPolicy = iota // drop undeclared keys (default)
	unknownStrict
	unknownPassthrough
	unknownCatchall
)

type objectField struct {
	name string
	node AnySchema
}

// ObjectSchema validates map-shaped input against declared fields. Fields
// are visited in declaration order and all child issues are aggregated
// before raising; only a non-object top-level shape fails immediately with a
// single invalid_type.
type ObjectSchema struct {
	fields   []objectField
	policy   unknownPolicy
	catchall *AnySchema
	msg      shaper.Customizer
}

// Object returns a new object schema; undeclared keys are stripped by default.
func Object() *ObjectSchema { return &ObjectSchema{} }

func (o *ObjectSchema) clone() *ObjectSchema {
	c := *o
	c.fields = make([]objectField, len(o.fields))
	copy(c.fields, o.fields)
	return &c
}

// Field declares (or redeclares) a field. Declaration order is preserved and
// drives both validation order and issue order.
func (o *ObjectSchema) Field(name string, n Node) *ObjectSchema {
	c := o.clone()
	for i := range c.fields {
		if c.fields[i].name == name {
			c.fields[i].node = n.Any()
			return c
		}
	}
	c.fields = append(c.fields, objectField{name: name, node: n.Any()})
	return c
}

// Strip drops undeclared keys (the default policy).
func (o *ObjectSchema) Strip() *ObjectSchema {
	c := o.clone()
	c.policy = unknownStrip
	c.catchall = nil
	return c
}

// Strict raises one unrecognized_keys issue per undeclared key.
func (o *ObjectSchema) Strict() *ObjectSchema {
	c := o.clone()
	c.policy = unknownStrict
	c.catchall = nil
	return c
}

// Passthrough copies undeclared keys to the output verbatim.
func (o *ObjectSchema) Passthrough() *ObjectSchema {
	c := o.clone()
	c.policy = unknownPassthrough
	c.catchall = nil
	return c
}

// Catchall validates every undeclared value against n.
func (o *ObjectSchema) Catchall(n Node) *ObjectSchema {
	c := o.clone()
	c.policy = unknownCatchall
	ad := n.Any()
	c.catchall = &ad
	return c
}

// Partial makes every declared field absence-tolerant.
func (o *ObjectSchema) Partial() *ObjectSchema {
	c := o.clone()
	for i := range c.fields {
		c.fields[i].node = Optional(c.fields[i].node)
	}
	return c
}

// Required returns an equivalent schema. It does not undo Partial; the
// observed behavior of the original API is a no-op and is preserved here
// rather than reinterpreted.
func (o *ObjectSchema) Required() *ObjectSchema { return o.clone() }

// Message sets a fixed error message for issues originating at this node.
func (o *ObjectSchema) Message(text string) *ObjectSchema {
	c := o.clone()
	c.msg = shaper.Fixed(text)
	return c
}

func (o *ObjectSchema) check(ctx context.Context, pc *shaper.Context, v any) (any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, singleIssue(typeIssue(pc, "object", v, o.msg))
	}
	out := make(map[string]any, len(src))
	var iss shaper.Issues
	for _, f := range o.fields {
		val, exists := src[f.name]
		if !exists {
			val = missing{}
		}
		res, err := f.node.check(ctx, pc.Key(f.name), val)
		if err != nil {
			if child, ok := shaper.AsIssues(err); ok {
				iss = shaper.AppendIssues(iss, child...)
				continue
			}
			return nil, err
		}
		if isMissing(res) {
			continue
		}
		out[f.name] = res
	}
	// undeclared keys in sorted order for deterministic issue output
	extra := make([]string, 0)
	for k := range src {
		if !o.declared(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		switch o.policy {
		case unknownStrip:
			// drop
		case unknownStrict:
			iss = shaper.AppendIssues(iss, newIssue(pc.Key(k), shaper.CodeUnrecognizedKeys, o.msg, map[string]any{"key": k}))
		case unknownPassthrough:
			out[k] = src[k]
		case unknownCatchall:
			res, err := o.catchall.check(ctx, pc.Key(k), src[k])
			if err != nil {
				if child, ok := shaper.AsIssues(err); ok {
					iss = shaper.AppendIssues(iss, child...)
					continue
				}
				return nil, err
			}
			if !isMissing(res) {
				out[k] = res
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (o *ObjectSchema) declared(name string) bool {
	for i := range o.fields {
		if o.fields[i].name == name {
			return true
		}
	}
	return false
}

// Any lowers the schema for composition.
func (o *ObjectSchema) Any() AnySchema { return AnySchema{check: o.check} }

// Parse implements shaper.Schema[map[string]any].
func (o *ObjectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	out, err := o.check(ctx, shaper.NewContext(), v)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

var _ shaper.Schema[map[string]any] = (*ObjectSchema)(nil)
