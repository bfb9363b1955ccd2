package shaper

// Context carries the path state threaded through recursive validation.
// Every descent into a child value constructs a new Context with one extra
// segment; a Context is never mutated in place, so concurrent validations
// over a shared schema tree cannot alias path state.
type Context struct {
	path   Path
	parent *Context
}

// NewContext returns a root context.
func NewContext() *Context { return &Context{} }

// Key descends into an object property.
func (c *Context) Key(k string) *Context {
	return &Context{path: c.path.Key(k), parent: c}
}

// Index descends into an array/tuple/set element.
func (c *Context) Index(i int) *Context {
	return &Context{path: c.path.Index(i), parent: c}
}

// Path returns the current path.
func (c *Context) Path() Path { return c.path }

// Parent returns the enclosing context, nil at the root. It exists for
// diagnostics only; validation logic never walks upward.
func (c *Context) Parent() *Context { return c.parent }
