package shaper

import "context"

// Schema is the contract every node implements: turn an unknown input into a
// typed output or report structured issues. Nodes are immutable after
// construction (every configuration method returns a new node), so a
// compiled tree is safely shared and invoked concurrently without locking.
type Schema[T any] interface {
	// Parse validates v and returns the (possibly normalized) value. On
	// validation failure the error is an Issues value; non-validation
	// faults (for example a transform function error) pass through
	// unchanged.
	Parse(ctx context.Context, v any) (T, error)
}

// Result is the tagged outcome of SafeParse.
type Result[T any] struct {
	OK     bool
	Value  T
	Issues Issues
}

// SafeParse parses v into T without ever panicking; validation failures are
// reported in the result, non-validation faults in err.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (Result[T], error) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		if iss, ok := AsIssues(err); ok {
			return Result[T]{OK: false, Issues: iss}, nil
		}
		return Result[T]{}, err
	}
	return Result[T]{OK: true, Value: val}, nil
}

// MustParse is the throwing entry point: it panics with the Issues value on
// validation failure.
func MustParse[T any](ctx context.Context, s Schema[T], v any) T {
	val, err := s.Parse(ctx, v)
	if err != nil {
		panic(err)
	}
	return val
}

// Is reports whether v conforms to the schema s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	_, err := s.Parse(ctx, v)
	return err == nil
}
