package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Markup sequences raw HTML, escaped text and child components onto a
// writer, keeping the first error.
type Markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

// NewMarkup wraps w for a single render pass.
func NewMarkup(ctx context.Context, w io.Writer) *Markup {
	return &Markup{ctx: ctx, w: w}
}

// Raw writes trusted HTML.
func (m *Markup) Raw(parts ...string) *Markup {
	for _, part := range parts {
		if m.err != nil {
			return m
		}
		_, m.err = io.WriteString(m.w, part)
	}
	return m
}

// Text writes an escaped value.
func (m *Markup) Text(value string) *Markup {
	return m.Raw(templ.EscapeString(value))
}

// Component renders a child component in place. Nil components are skipped.
func (m *Markup) Component(c templ.Component) *Markup {
	if m.err != nil || c == nil {
		return m
	}
	m.err = c.Render(m.ctx, m.w)
	return m
}

// Err reports the first failure.
func (m *Markup) Err() error {
	return m.err
}
