package components

import (
	"context"
	"io"

	"autocare_portal_go/services/i18n"

	"github.com/a-h/templ"
)

type csrfKey struct{}

// WithCSRFToken stores the request's CSRF token for forms rendered below ctx
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfKey{}, token)
}

// CSRFToken returns the token stored by WithCSRFToken
func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey{}).(string)
	return token
}

// CSRFInput is the hidden form field checked by the CSRF middleware
func CSRFInput() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		m.Raw(`<input type="hidden" name="_csrf"`)
		m.Attr("value", CSRFToken(ctx))
		m.Raw(`>`)
		return m.Err()
	})
}

// Field describes a labelled form input
type Field struct {
	Name        string
	Label       string // i18n key
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Min         string
	Max         string
}

// Input renders a labelled input
func Input(f Field) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if f.Type == "" {
			f.Type = "text"
		}
		m := NewMarkup(w)
		m.Raw(`<label class="block text-sm font-medium text-slate-700"`)
		m.Attr("for", f.Name)
		m.Raw(`>`)
		m.Text(i18n.T(ctx, f.Label))
		m.Raw(`</label><input class="mt-1 block w-full rounded-lg border border-slate-300 px-3 py-2 text-sm"`)
		m.Attr("id", f.Name)
		m.Attr("name", f.Name)
		m.Attr("type", f.Type)
		if f.Value != "" {
			m.Attr("value", f.Value)
		}
		if f.Placeholder != "" {
			m.Attr("placeholder", f.Placeholder)
		}
		if f.Min != "" {
			m.Attr("min", f.Min)
		}
		if f.Max != "" {
			m.Attr("max", f.Max)
		}
		if f.Required {
			m.Raw(` required`)
		}
		m.Raw(`>`)
		return m.Err()
	})
}

// Option is a select choice
type Option struct {
	Value string
	Label string
}

// Select renders a labelled select
func Select(name, label string, options []Option, selected string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		m.Raw(`<label class="block text-sm font-medium text-slate-700"`)
		m.Attr("for", name)
		m.Raw(`>`)
		m.Text(i18n.T(ctx, label))
		m.Raw(`</label><select class="mt-1 block w-full rounded-lg border border-slate-300 px-3 py-2 text-sm"`)
		m.Attr("id", name)
		m.Attr("name", name)
		m.Raw(` required>`)
		for _, o := range options {
			m.Raw(`<option`)
			m.Attr("value", o.Value)
			if o.Value == selected {
				m.Raw(` selected`)
			}
			m.Raw(`>`)
			m.Text(o.Label)
			m.Raw(`</option>`)
		}
		m.Raw(`</select>`)
		return m.Err()
	})
}

// Alert renders an inline message; kind is "error" or "success"
func Alert(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		class := "rounded-lg border border-red-200 bg-red-50 px-4 py-3 text-sm text-red-700"
		if kind == "success" {
			class = "rounded-lg border border-emerald-200 bg-emerald-50 px-4 py-3 text-sm text-emerald-700"
		}
		m := NewMarkup(w)
		m.Raw(`<div role="alert"`)
		m.Attr("class", class)
		m.Raw(`>`)
		m.Text(message)
		m.Raw(`</div>`)
		return m.Err()
	})
}

// EmptyState is the placeholder for empty lists; key is an i18n key
func EmptyState(key string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		m.Raw(`<p class="rounded-lg border border-dashed border-slate-300 p-6 text-center text-sm text-slate-500">`)
		m.Text(i18n.T(ctx, key))
		m.Raw(`</p>`)
		return m.Err()
	})
}
