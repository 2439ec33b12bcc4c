package pages

import (
	"context"
	"io"

	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"
	"autocare_portal_go/templates/partials"

	"github.com/a-h/templ"
)

// CustomerDashboard renders the customer landing page
func CustomerDashboard(v CustomerDashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">`)
		name := ""
		if v.User != nil {
			name = v.User.Name
		}
		m.Text(i18n.T(ctx, "dashboard.welcome", map[string]interface{}{"name": name}))
		m.Raw(`</h1><a href="/customer/dashboard/export" class="rounded-lg border border-slate-300 bg-white px-4 py-2 text-sm font-medium hover:bg-slate-50">`)
		m.Text(i18n.T(ctx, "dashboard.export"))
		m.Raw(`</a></div>`)

		m.Raw(`<div class="mt-6">`)
		if v.StatsError {
			m.Render(ctx, components.Alert("error", i18n.T(ctx, "dashboard.stats_unavailable")))
		}
		m.Raw(`</div>`)
		m.Render(ctx, CustomerStatsGrid(v))

		m.Raw(`<div class="mt-8 grid gap-6 lg:grid-cols-2"><section class="rounded-xl border border-slate-200 bg-white p-6"><h2 class="mb-4 font-semibold">`)
		m.Text(i18n.T(ctx, "dashboard.next_appointments"))
		m.Raw(`</h2>`)
		if len(v.Upcoming) == 0 {
			m.Render(ctx, components.EmptyState("dashboard.no_appointments"))
		}
		m.Raw(`<ul class="divide-y divide-slate-100">`)
		for _, a := range v.Upcoming {
			m.Raw(`<li class="flex items-center justify-between py-3"><div><p class="text-sm font-medium">`)
			m.Text(a.ServiceName)
			m.Raw(`</p><p class="text-xs text-slate-500">`)
			m.Text(partials.FormatDate(a.Date) + " · " + a.TimeRange())
			m.Raw(`</p></div>`)
			m.Render(ctx, components.StatusBadge(a.Status))
			m.Raw(`</li>`)
		}
		m.Raw(`</ul></section><section class="rounded-xl border border-slate-200 bg-white p-6"><h2 class="mb-4 font-semibold">`)
		m.Text(i18n.T(ctx, "nav.my_projects"))
		m.Raw(`</h2>`)
		if len(v.Projects) == 0 {
			m.Render(ctx, components.EmptyState("projects.empty"))
		}
		m.Raw(`<ul class="space-y-4">`)
		for _, p := range v.Projects {
			m.Raw(`<li><div class="mb-1 flex justify-between text-sm"><span class="font-medium">`)
			m.Text(p.Title)
			m.Raw(`</span><span class="text-slate-500">`)
			m.Textf("%d%%", p.ProgressPercentage)
			m.Raw(`</span></div>`)
			m.Render(ctx, components.ProgressBar(p.ProgressPercentage))
			m.Raw(`</li>`)
		}
		m.Raw(`</ul></section></div>`)

		if v.ChatEnabled {
			m.Render(ctx, partials.ChatPanel())
		}
		return m.Err()
	})
}

// CustomerStatsGrid renders the seven dashboard counters; the stats endpoint
// serves the same numbers as JSON.
func CustomerStatsGrid(v CustomerDashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := v.Stats
		m := components.NewMarkup(w)
		m.Raw(`<div id="customer-stats" class="mt-4 grid gap-4 sm:grid-cols-2 xl:grid-cols-4">`)
		m.Render(ctx, components.StatCard("dashboard.total_vehicles", s.TotalVehicles, "/customer/vehicles"))
		m.Render(ctx, components.StatCard("dashboard.upcoming_appointments", s.UpcomingAppointments, "/customer/my-appointments"))
		m.Render(ctx, components.StatCard("dashboard.ongoing_projects", s.OngoingProjects, "/customer/my-projects"))
		m.Render(ctx, components.StatCard("dashboard.completed_appointments", s.CompletedAppointments, ""))
		m.Render(ctx, components.StatCard("dashboard.completed_projects", s.CompletedProjects, ""))
		m.Render(ctx, components.StatCard("dashboard.total_appointments", s.TotalAppointments, ""))
		m.Render(ctx, components.StatCard("dashboard.total_projects", s.TotalProjects, ""))
		m.Raw(`</div>`)
		return m.Err()
	})
}
