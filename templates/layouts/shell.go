package layouts

import (
	"context"
	"io"

	"autocare_portal_go/models"
	"autocare_portal_go/templates/components"

	"github.com/a-h/templ"
)

// EmployeeLayout places an injected sidebar in a fixed 16rem column and the
// page content in the remaining space. Content is written unmodified; nil
// content yields an empty content region.
func EmployeeLayout(sidebar, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<div class="flex min-h-screen" data-layout="employee">`)
		writeSidebar(ctx, m, sidebar)
		m.Raw(`<main data-region="content" class="flex-1 ml-64 min-h-screen p-8">`)
		m.Render(ctx, content)
		m.Raw(`</main></div>`)
		return m.Err()
	})
}

// CustomerLayout is the employee shell plus a sticky top bar with the user's profile card
func CustomerLayout(sidebar templ.Component, user *models.User, content templ.Component) templ.Component {
	return withTopBar("customer", sidebar, user, content)
}

// AdminLayout mirrors CustomerLayout for the admin area
func AdminLayout(sidebar templ.Component, user *models.User, content templ.Component) templ.Component {
	return withTopBar("admin", sidebar, user, content)
}

func withTopBar(kind string, sidebar templ.Component, user *models.User, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<div class="flex min-h-screen"`)
		m.Attr("data-layout", kind)
		m.Raw(`>`)
		writeSidebar(ctx, m, sidebar)
		m.Raw(`<div class="flex flex-1 flex-col ml-64">`)
		m.Raw(`<header data-region="topbar" class="sticky top-0 z-10 flex h-16 items-center justify-end border-b border-slate-200 bg-white/90 px-8 backdrop-blur">`)
		m.Render(ctx, components.ProfileCard(user))
		m.Raw(`</header><main data-region="content" class="flex-1 p-8">`)
		m.Render(ctx, content)
		m.Raw(`</main></div></div>`)
		return m.Err()
	})
}

func writeSidebar(ctx context.Context, m *components.Markup, sidebar templ.Component) {
	m.Raw(`<aside data-region="sidebar" class="fixed inset-y-0 left-0 w-64 overflow-y-auto">`)
	m.Render(ctx, sidebar)
	m.Raw(`</aside>`)
}
