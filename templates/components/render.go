package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Markup writes HTML to w and keeps the first write error, so components can
// emit many fragments and check the error once.
type Markup struct {
	w   io.Writer
	err error
}

// NewMarkup wraps w
func NewMarkup(w io.Writer) *Markup {
	return &Markup{w: w}
}

// Raw writes trusted markup as-is
func (m *Markup) Raw(parts ...string) {
	for _, p := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, p)
	}
}

// Text writes HTML-escaped text
func (m *Markup) Text(s string) {
	m.Raw(templ.EscapeString(s))
}

// Textf formats and escapes
func (m *Markup) Textf(format string, args ...interface{}) {
	m.Text(fmt.Sprintf(format, args...))
}

// Attr writes name="escaped value" preceded by a space
func (m *Markup) Attr(name, value string) {
	m.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// Render writes a nested component; nil components write nothing
func (m *Markup) Render(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

// Err returns the first error encountered
func (m *Markup) Err() error {
	return m.err
}

// Fragment renders children in order, skipping nil ones
func Fragment(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		for _, child := range children {
			m.Render(ctx, child)
		}
		return m.Err()
	})
}

// Text is an escaped text node
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}
