package components

import (
	"context"
	"fmt"
	"io"

	"autocare_portal_go/models"
	"autocare_portal_go/services/i18n"

	"github.com/a-h/templ"
)

// StatCard shows one dashboard counter. label is an i18n key.
func StatCard(label string, value int64, href string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		tag := "div"
		if href != "" {
			tag = "a"
		}
		m.Raw(`<`, tag, ` class="block rounded-xl border border-slate-200 bg-white p-5 shadow-sm"`)
		if href != "" {
			m.Attr("href", href)
		}
		m.Raw(`><p class="text-sm text-slate-500">`)
		m.Text(i18n.T(ctx, label))
		m.Raw(`</p><p class="mt-2 text-3xl font-semibold text-slate-900"`)
		m.Attr("data-stat", label)
		m.Raw(`>`)
		m.Textf("%d", value)
		m.Raw(`</p></`, tag, `>`)
		return m.Err()
	})
}

// ProfileCard shows the signed-in user in the top bar
func ProfileCard(user *models.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if user == nil {
			return nil
		}
		m := NewMarkup(w)
		m.Raw(`<div class="flex items-center gap-3" data-component="profile-card">`)
		m.Raw(`<span class="flex h-9 w-9 items-center justify-center rounded-full bg-slate-800 text-sm font-semibold text-white">`)
		m.Text(user.Initials())
		m.Raw(`</span><div class="text-sm leading-tight"><p class="font-medium text-slate-900">`)
		m.Text(user.Name)
		m.Raw(`</p><p class="text-slate-500">`)
		m.Text(user.Email)
		m.Raw(`</p></div></div>`)
		return m.Err()
	})
}

var statusClasses = map[string]string{
	"PENDING":   "bg-amber-100 text-amber-800",
	"UPCOMING":  "bg-sky-100 text-sky-800",
	"ONGOING":   "bg-indigo-100 text-indigo-800",
	"COMPLETED": "bg-emerald-100 text-emerald-800",
	"CANCELLED": "bg-slate-200 text-slate-600",
}

// StatusBadge renders a translated appointment/project status
func StatusBadge(status string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class, ok := statusClasses[status]
		if !ok {
			class = "bg-slate-100 text-slate-700"
		}
		m := NewMarkup(w)
		m.Raw(`<span`)
		m.Attr("class", "inline-flex rounded-full px-2.5 py-0.5 text-xs font-medium "+class)
		m.Raw(`>`)
		m.Text(i18n.T(ctx, "status."+status))
		m.Raw(`</span>`)
		return m.Err()
	})
}

// ProgressBar renders a 0..100 bar; out of range values are clamped
func ProgressBar(percentage int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if percentage < 0 {
			percentage = 0
		}
		if percentage > 100 {
			percentage = 100
		}
		m := NewMarkup(w)
		m.Raw(`<div class="h-2 w-full rounded-full bg-slate-200" role="progressbar"`)
		m.Attr("aria-valuenow", fmt.Sprint(percentage))
		m.Raw(` aria-valuemin="0" aria-valuemax="100"><div class="h-2 rounded-full bg-indigo-600"`)
		m.Attr("style", fmt.Sprintf("width: %d%%", percentage))
		m.Raw(`></div></div>`)
		return m.Err()
	})
}
