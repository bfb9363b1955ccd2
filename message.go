package shaper

// Customizer overrides the message of issues originating at the node it is
// attached to. It is either a fixed text or a function computing an optional
// override from issue metadata; child issues are never rewritten.
type Customizer struct {
	text string
	fn   func(Issue) (string, bool)
}

// Fixed returns a customizer that always substitutes text.
func Fixed(text string) Customizer { return Customizer{text: text} }

// Computed returns a customizer that derives the message from the issue.
// The function returns false to keep the default message.
func Computed(fn func(Issue) (string, bool)) Customizer { return Customizer{fn: fn} }

// IsZero reports whether no customization is configured.
func (c Customizer) IsZero() bool { return c.text == "" && c.fn == nil }

// Apply returns the issue with the message override applied, if any.
func (c Customizer) Apply(is Issue) Issue {
	if c.text != "" {
		is.Message = c.text
		return is
	}
	if c.fn != nil {
		if msg, ok := c.fn(is); ok {
			is.Message = msg
		}
	}
	return is
}
