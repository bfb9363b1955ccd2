// Package source turns raw JSON or YAML documents into the dynamic value
// shapes the schema nodes validate, so callers can go from bytes to a typed
// result in one call.
package source

import (
	"bytes"
	"context"

	j "github.com/goccy/go-json"

	shaper "github.com/shaper-go/shaper"
)

// DecodeJSON decodes one JSON document into the dynamic representation
// (map[string]any, []any, json.Number, string, bool, nil). Numbers are kept
// as json.Number so integer precision survives until a schema narrows them.
// Malformed input surfaces as a single invalid_value issue at the root.
func DecodeJSON(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, decodeIssue("json", err)
	}
	return v, nil
}

// ParseJSON decodes data and validates it against s in one step.
func ParseJSON[T any](ctx context.Context, s shaper.Schema[T], data []byte) (T, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Parse(ctx, v)
}

func decodeIssue(format string, err error) error {
	return shaper.Issues{{
		Code:    shaper.CodeInvalidValue,
		Path:    shaper.Path{},
		Message: err.Error(),
		Params:  map[string]any{"format": format},
	}}
}
