package shaper

// Package shaper validates and reshapes arbitrary runtime values against
// declarative, composable schemas, producing either a typed value or a
// structured, path-annotated issue report.
//
// Provided here:
//
// - The node contract Schema[T] with Parse/SafeParse/MustParse entry points
// - A stable error model via Issues (code, dotted path, message)
// - Path/Context plumbing threaded through recursive validation
// - A pretty printer rendering one line per issue
//
// Design policy:
// - Keep only public APIs in the root package; builders live under dsl/.
// - Schemas are immutable once constructed: every chainable configuration
//   method returns a new node, so a compiled tree is safely shared across
//   goroutines.
// - Input ingestion (JSON/YAML) lives under source/; default messages under
//   i18n/.
//
// Typical usage:
//
//	s := dsl.Object().
//		Field("name", dsl.String().Min(1)).
//		Field("age", dsl.Number().Min(0).Int())
//	v, err := s.Parse(ctx, input)
//	if iss, ok := shaper.AsIssues(err); ok {
//		fmt.Println(shaper.Format(iss))
//	}
