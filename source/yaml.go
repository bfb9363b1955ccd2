package source

import (
	"context"

	"gopkg.in/yaml.v3"

	shaper "github.com/shaper-go/shaper"
)

// DecodeYAML decodes one YAML document into the dynamic representation.
// Mappings arrive as map[string]any, sequences as []any; scalars keep the
// types the YAML resolver gives them.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, decodeIssue("yaml", err)
	}
	return normalizeYAML(v), nil
}

// ParseYAML decodes data and validates it against s in one step.
func ParseYAML[T any](ctx context.Context, s shaper.Schema[T], data []byte) (T, error) {
	v, err := DecodeYAML(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Parse(ctx, v)
}

// normalizeYAML rewrites map[any]any mappings (which older YAML inputs can
// still produce for non-string keys) into map[string]any where every key is
// a string, recursing through containers.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		allStrings := true
		for k, val := range t {
			sk, ok := k.(string)
			if !ok {
				allStrings = false
				break
			}
			out[sk] = normalizeYAML(val)
		}
		if allStrings {
			return out
		}
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
