package shaper

import (
	"strings"

	"github.com/fatih/color"
)

var prettyMarker = color.New(color.FgRed, color.Bold)

// Format renders issues one line at a time: marker, dotted path (omitted at
// the root), message. The marker is colored when the terminal supports it;
// color.NoColor and NO_COLOR are honored by the color package.
func Format(iss Issues) string {
	b := &strings.Builder{}
	for i, it := range iss {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(prettyMarker.Sprint("✖"))
		b.WriteByte(' ')
		if !it.Path.IsRoot() {
			b.WriteString(it.Path.String())
			b.WriteString(": ")
		}
		b.WriteString(it.Message)
	}
	return b.String()
}
