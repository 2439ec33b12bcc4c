package pages

import (
	"context"
	"io"

	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"

	"github.com/a-h/templ"
)

func authCard(ctx context.Context, m *components.Markup, titleKey string, body func()) {
	m.Raw(`<div class="flex min-h-screen items-center justify-center px-4"><div class="w-full max-w-md rounded-2xl bg-white p-8 shadow">`)
	m.Raw(`<p class="text-sm font-semibold uppercase tracking-wide text-indigo-600">`)
	m.Text(i18n.T(ctx, "app.name"))
	m.Raw(`</p><h1 class="mt-1 mb-6 text-2xl font-semibold">`)
	m.Text(i18n.T(ctx, titleKey))
	m.Raw(`</h1>`)
	body()
	m.Raw(`</div></div>`)
}

// LoginPage renders the sign-in form
func LoginPage(v LoginView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		authCard(ctx, m, "auth.login", func() {
			m.Raw(`<form method="post" action="/login" class="space-y-4" id="login-form">`)
			m.Render(ctx, components.Alert("error", v.Error))
			m.Render(ctx, components.CSRFInput())
			m.Render(ctx, components.Input(components.Field{Name: "email", Label: "auth.email", Type: "email", Value: v.Email, Required: true}))
			m.Render(ctx, components.Input(components.Field{Name: "password", Label: "auth.password", Type: "password", Required: true}))
			m.Raw(`<button type="submit" class="w-full rounded-lg bg-indigo-600 py-2 text-sm font-medium text-white hover:bg-indigo-500">`)
			m.Text(i18n.T(ctx, "auth.login"))
			m.Raw(`</button></form><p class="mt-6 text-center text-sm text-slate-500">`)
			m.Text(i18n.T(ctx, "auth.no_account"))
			m.Raw(` <a href="/signup" class="font-medium text-indigo-600">`)
			m.Text(i18n.T(ctx, "auth.signup"))
			m.Raw(`</a></p>`)
		})
		return m.Err()
	})
}

// SignupPage renders the customer registration form
func SignupPage(v SignupView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		authCard(ctx, m, "auth.signup", func() {
			m.Raw(`<form method="post" action="/signup" class="space-y-4" id="signup-form">`)
			m.Render(ctx, components.Alert("error", v.Error))
			m.Render(ctx, components.CSRFInput())
			m.Render(ctx, components.Input(components.Field{Name: "name", Label: "auth.name", Value: v.Name, Required: true}))
			m.Render(ctx, components.Input(components.Field{Name: "email", Label: "auth.email", Type: "email", Value: v.Email, Required: true}))
			m.Render(ctx, components.Input(components.Field{Name: "phone", Label: "auth.phone", Type: "tel", Value: v.Phone}))
			m.Render(ctx, components.Input(components.Field{Name: "password", Label: "auth.password", Type: "password", Required: true}))
			m.Raw(`<button type="submit" class="w-full rounded-lg bg-indigo-600 py-2 text-sm font-medium text-white hover:bg-indigo-500">`)
			m.Text(i18n.T(ctx, "auth.signup"))
			m.Raw(`</button></form><p class="mt-6 text-center text-sm text-slate-500">`)
			m.Text(i18n.T(ctx, "auth.have_account"))
			m.Raw(` <a href="/login" class="font-medium text-indigo-600">`)
			m.Text(i18n.T(ctx, "auth.login"))
			m.Raw(`</a></p>`)
		})
		return m.Err()
	})
}

// ErrorPage renders a full-page error with a link back home
func ErrorPage(code int, message, homePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<div class="flex min-h-screen flex-col items-center justify-center gap-4 text-center"><p class="text-6xl font-bold text-slate-300">`)
		m.Textf("%d", code)
		m.Raw(`</p><h1 class="text-xl font-semibold">`)
		m.Text(message)
		m.Raw(`</h1><a class="text-sm font-medium text-indigo-600"`)
		m.Attr("href", homePath)
		m.Raw(`>`)
		m.Text(i18n.T(ctx, "errors.back"))
		m.Raw(`</a></div>`)
		return m.Err()
	})
}
