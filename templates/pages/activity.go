package pages

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"autocare_portal_go/models"
	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"

	"github.com/a-h/templ"
)

var auditResources = []string{
	models.AuditResourceAppointment,
	models.AuditResourceProject,
	models.AuditResourceVehicle,
	models.AuditResourceUser,
}

// AdminActivityPage renders the audit trail with its filter form and pager
func AdminActivityPage(v AdminActivityView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.activity"))
		m.Raw(`</h1>`)

		m.Raw(`<form method="get" action="/admin/activity" class="mt-4 flex flex-wrap items-center gap-2 text-sm">`)
		filterSelect(ctx, m, "resource", v.Filters.ResourceType, auditResources)
		actions := make([]string, len(models.AuditActions))
		for i, a := range models.AuditActions {
			actions[i] = string(a)
		}
		filterSelect(ctx, m, "action", v.Filters.Action, actions)
		m.Raw(`<input type="search" name="q" class="rounded-lg border border-slate-300 px-3 py-2"`)
		m.Attr("value", v.Filters.SearchQuery)
		m.Attr("placeholder", i18n.T(ctx, "admin.activity_search"))
		m.Raw(`><button type="submit" class="rounded-lg bg-slate-900 px-4 py-2 font-medium text-white">`)
		m.Text(i18n.T(ctx, "admin.activity_filter"))
		m.Raw(`</button></form>`)

		if len(v.Logs) == 0 {
			m.Raw(`<div class="mt-6">`)
			m.Render(ctx, components.EmptyState("admin.activity_empty"))
			m.Raw(`</div>`)
			return m.Err()
		}

		m.Raw(`<div class="mt-6 overflow-x-auto rounded-xl border border-slate-200 bg-white"><table class="min-w-full text-sm" id="activity-log"><tbody>`)
		for _, entry := range v.Logs {
			m.Raw(`<tr class="border-b border-slate-100 align-top"`)
			m.Attr("id", "audit-"+entry.ID)
			m.Raw(`><td class="whitespace-nowrap px-4 py-3 text-slate-500">`)
			m.Text(entry.CreatedAt.Format("Jan 2 2006 15:04"))
			m.Raw(`</td><td class="px-4 py-3"><span class="font-medium">`)
			m.Text(entry.UserName)
			m.Raw(`</span> <span class="text-xs text-slate-400">`)
			m.Text(entry.UserRole)
			m.Raw(`</span></td><td class="px-4 py-3 font-mono text-xs">`)
			m.Text(string(entry.Action))
			m.Raw(`</td><td class="px-4 py-3">`)
			m.Text(entry.ResourceType)
			if entry.ResourceName != "" {
				m.Text(": " + entry.ResourceName)
			}
			if entry.Description != "" {
				m.Raw(`<p class="text-xs text-slate-500">`)
				m.Text(entry.Description)
				m.Raw(`</p>`)
			}
			for _, ch := range entry.Changes() {
				m.Raw(`<p class="text-xs text-slate-500">`)
				m.Textf("%s: %v → %v", ch.Field, displayValue(ch.Old), displayValue(ch.New))
				m.Raw(`</p>`)
			}
			m.Raw(`</td></tr>`)
		}
		m.Raw(`</tbody></table></div>`)

		pager(ctx, m, v)
		return m.Err()
	})
}

func filterSelect(ctx context.Context, m *components.Markup, name, current string, options []string) {
	m.Raw(`<select class="rounded-lg border border-slate-300 px-3 py-2"`)
	m.Attr("name", name)
	m.Raw(`><option value="">`)
	m.Text(i18n.T(ctx, "common.all"))
	m.Raw(`</option>`)
	for _, o := range options {
		m.Raw(`<option`)
		m.Attr("value", o)
		if o == current {
			m.Raw(` selected`)
		}
		m.Raw(`>`)
		m.Text(o)
		m.Raw(`</option>`)
	}
	m.Raw(`</select>`)
}

func pager(ctx context.Context, m *components.Markup, v AdminActivityView) {
	pages := v.PageCount()
	if pages <= 1 {
		return
	}
	m.Raw(`<nav class="mt-4 flex items-center justify-between text-sm"><span class="text-slate-500">`)
	m.Text(i18n.T(ctx, "admin.activity_page", map[string]interface{}{"page": v.Page, "pages": pages}))
	m.Raw(`</span><span class="flex gap-2">`)
	if v.Page > 1 {
		pagerLink(ctx, m, v, v.Page-1, "common.previous")
	}
	if v.Page < pages {
		pagerLink(ctx, m, v, v.Page+1, "common.next")
	}
	m.Raw(`</span></nav>`)
}

func pagerLink(ctx context.Context, m *components.Markup, v AdminActivityView, page int, labelKey string) {
	q := url.Values{}
	if v.Filters.ResourceType != "" {
		q.Set("resource", v.Filters.ResourceType)
	}
	if v.Filters.Action != "" {
		q.Set("action", v.Filters.Action)
	}
	if v.Filters.SearchQuery != "" {
		q.Set("q", v.Filters.SearchQuery)
	}
	q.Set("page", strconv.Itoa(page))

	m.Raw(`<a class="rounded-lg border border-slate-300 px-3 py-1"`)
	m.Attr("href", "/admin/activity?"+q.Encode())
	m.Raw(`>`)
	m.Text(i18n.T(ctx, labelKey))
	m.Raw(`</a>`)
}

func displayValue(v interface{}) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}
