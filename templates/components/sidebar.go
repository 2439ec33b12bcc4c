package components

import (
	"context"
	"io"
	"strings"

	"autocare_portal_go/services/i18n"

	"github.com/a-h/templ"
)

// NavItem is one sidebar link. Label is an i18n key.
type NavItem struct {
	Label string
	Href  string
	Icon  string
	Badge int64
}

// IsActive reports whether the item matches the current path or one of its children
func (n NavItem) IsActive(path string) bool {
	return path == n.Href || strings.HasPrefix(path, n.Href+"/")
}

// CustomerNav lists the customer area links
func CustomerNav() []NavItem {
	return []NavItem{
		{Label: "nav.dashboard", Href: "/customer/dashboard", Icon: "home"},
		{Label: "nav.vehicles", Href: "/customer/vehicles", Icon: "car"},
		{Label: "nav.my_appointments", Href: "/customer/my-appointments", Icon: "calendar"},
		{Label: "nav.my_projects", Href: "/customer/my-projects", Icon: "wrench"},
		{Label: "nav.notifications", Href: "/customer/notifications", Icon: "bell"},
	}
}

// EmployeeNav lists the employee area links
func EmployeeNav() []NavItem {
	return []NavItem{
		{Label: "nav.dashboard", Href: "/employee/dashboard", Icon: "home"},
		{Label: "nav.appointments", Href: "/employee/appointments", Icon: "calendar"},
		{Label: "nav.projects", Href: "/employee/projects", Icon: "wrench"},
		{Label: "nav.progress", Href: "/employee/progress", Icon: "chart"},
		{Label: "nav.notifications", Href: "/employee/notifications", Icon: "bell"},
	}
}

// AdminNav lists the admin area links
func AdminNav() []NavItem {
	return []NavItem{
		{Label: "nav.dashboard", Href: "/admin/dashboard", Icon: "home"},
		{Label: "nav.assignments", Href: "/admin/appointments", Icon: "calendar"},
		{Label: "nav.projects", Href: "/admin/projects", Icon: "wrench"},
		{Label: "nav.activity", Href: "/admin/activity", Icon: "list"},
	}
}

var navIcons = map[string]string{
	"list":     `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M9 6h11M9 12h11M9 18h11M4 6h.01M4 12h.01M4 18h.01"/>`,
	"home":     `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M3 12l9-9 9 9M5 10v10h14V10"/>`,
	"car":      `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M5 13l2-5h10l2 5M5 13h14v4H5zM7 17v2M17 17v2"/>`,
	"calendar": `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M8 7V3m8 4V3M4 11h16M5 5h14v16H5z"/>`,
	"wrench":   `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M14 7a4 4 0 015 5l-9 9-3-3 9-9a4 4 0 01-2-2z"/>`,
	"bell":     `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M15 17h5l-1.4-1.4A2 2 0 0118 14V11a6 6 0 10-12 0v3a2 2 0 01-.6 1.6L4 17h5m6 0a3 3 0 11-6 0"/>`,
	"chart":    `<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M4 19h16M7 16V9m5 7V5m5 11v-4"/>`,
}

// Sidebar renders the fixed navigation column content
func Sidebar(items []NavItem, activePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		m.Raw(`<div class="flex h-full flex-col bg-slate-900 text-slate-100">`)
		m.Raw(`<a href="/" class="flex items-center gap-2 px-6 py-5 text-lg font-semibold">`)
		m.Text(i18n.T(ctx, "app.name"))
		m.Raw(`</a><nav class="flex-1 space-y-1 px-3">`)
		for _, item := range items {
			class := "flex items-center gap-3 rounded-lg px-3 py-2 text-sm text-slate-300 hover:bg-slate-800 hover:text-white"
			current := ""
			if item.IsActive(activePath) {
				class = "flex items-center gap-3 rounded-lg px-3 py-2 text-sm bg-slate-800 text-white font-medium"
				current = ` aria-current="page"`
			}
			m.Raw(`<a`)
			m.Attr("href", item.Href)
			m.Attr("class", class)
			m.Raw(current, `>`)
			if icon, ok := navIcons[item.Icon]; ok {
				m.Raw(`<svg class="h-5 w-5 flex-shrink-0" fill="none" stroke="currentColor" viewBox="0 0 24 24">`, icon, `</svg>`)
			}
			m.Raw(`<span class="flex-1">`)
			m.Text(i18n.T(ctx, item.Label))
			m.Raw(`</span>`)
			if item.Badge > 0 {
				m.Raw(`<span class="rounded-full bg-red-500 px-2 text-xs text-white">`)
				m.Textf("%d", item.Badge)
				m.Raw(`</span>`)
			}
			m.Raw(`</a>`)
		}
		m.Raw(`</nav>`)
		m.Render(ctx, LogoutForm())
		m.Raw(`</div>`)
		return m.Err()
	})
}

// LogoutForm posts to /logout with the CSRF token carried by htmx headers
func LogoutForm() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		m.Raw(`<form method="post" action="/logout" class="border-t border-slate-800 p-3">`)
		m.Render(ctx, CSRFInput())
		m.Raw(`<button type="submit" class="w-full rounded-lg px-3 py-2 text-left text-sm text-slate-300 hover:bg-slate-800">`)
		m.Text(i18n.T(ctx, "nav.logout"))
		m.Raw(`</button></form>`)
		return m.Err()
	})
}
