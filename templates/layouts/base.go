package layouts

import (
	"context"
	"io"

	"autocare_portal_go/middleware"
	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"

	"github.com/a-h/templ"
)

// Base wraps body in the HTML document shared by every page
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		nonce := middleware.GetNonce(ctx)
		m := components.NewMarkup(w)
		m.Raw(`<!doctype html><html`)
		m.Attr("lang", i18n.GetLocale(ctx))
		m.Raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		if title != "" {
			m.Text(title + " | ")
		}
		m.Text(i18n.T(ctx, "app.name"))
		m.Raw(`</title><link rel="stylesheet"`)
		m.Attr("href", middleware.AssetURL("css/app.css"))
		m.Raw(`><script src="https://cdn.tailwindcss.com"`)
		m.Attr("nonce", nonce)
		m.Raw(`></script><script src="https://unpkg.com/htmx.org@2.0.4"`)
		m.Attr("nonce", nonce)
		m.Raw(`></script><script defer`)
		m.Attr("src", middleware.AssetURL("js/app.js"))
		m.Attr("nonce", nonce)
		m.Raw(`></script></head><body class="bg-slate-50 text-slate-900 antialiased"`)
		m.Attr("hx-headers", `{"`+middleware.CSRFHeaderName+`": "`+components.CSRFToken(ctx)+`"}`)
		m.Raw(`>`)
		m.Render(ctx, body)
		m.Raw(`</body></html>`)
		return m.Err()
	})
}
