package pages

import (
	"context"
	"io"

	"autocare_portal_go/models"
	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"
	"autocare_portal_go/templates/partials"

	"github.com/a-h/templ"
)

// EmployeeDashboard renders the employee landing page
func EmployeeDashboard(v EmployeeDashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := v.Stats
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		name := ""
		if v.User != nil {
			name = v.User.Name
		}
		m.Text(i18n.T(ctx, "dashboard.welcome", map[string]interface{}{"name": name}))
		m.Raw(`</h1><div class="mt-6 grid gap-4 sm:grid-cols-2 xl:grid-cols-3">`)
		m.Render(ctx, components.StatCard("dashboard.appointments_today", s.AppointmentsToday, "/employee/appointments"))
		m.Render(ctx, components.StatCard("dashboard.upcoming_appointments", s.UpcomingAppointments, "/employee/appointments"))
		m.Render(ctx, components.StatCard("dashboard.completed_appointments", s.CompletedAppointments, ""))
		m.Render(ctx, components.StatCard("dashboard.active_projects", s.ActiveProjects, "/employee/projects"))
		m.Render(ctx, components.StatCard("dashboard.completed_projects", s.CompletedProjects, ""))
		m.Render(ctx, components.StatCard("dashboard.updates_this_week", s.UpdatesThisWeek, "/employee/progress"))
		m.Raw(`</div><section class="mt-8"><h2 class="mb-4 font-semibold">`)
		m.Text(i18n.T(ctx, "dashboard.appointments_today"))
		m.Raw(`</h2>`)
		m.Render(ctx, partials.AppointmentTable(v.Today, partials.AppointmentActionsEmployee))
		m.Raw(`</section><section class="mt-8 space-y-4"><h2 class="font-semibold">`)
		m.Text(i18n.T(ctx, "dashboard.active_projects"))
		m.Raw(`</h2>`)
		if len(v.Projects) == 0 {
			m.Render(ctx, components.EmptyState("projects.empty"))
		}
		for _, p := range v.Projects {
			m.Render(ctx, partials.ProjectCard(p, partials.ProjectActionsEmployee))
		}
		m.Raw(`</section>`)
		return m.Err()
	})
}

// statusFilter renders links that filter a list by status
func statusFilter(ctx context.Context, m *components.Markup, base, current string, statuses ...string) {
	m.Raw(`<nav class="mt-4 flex gap-2 text-sm">`)
	all := append([]string{""}, statuses...)
	for _, s := range all {
		href, label := base, i18n.T(ctx, "common.all")
		if s != "" {
			href, label = base+"?status="+s, i18n.T(ctx, "status."+s)
		}
		class := "rounded-full border border-slate-300 px-3 py-1"
		if s == current {
			class = "rounded-full bg-slate-900 px-3 py-1 text-white"
		}
		m.Raw(`<a`)
		m.Attr("href", href)
		m.Attr("class", class)
		m.Raw(`>`)
		m.Text(label)
		m.Raw(`</a>`)
	}
	m.Raw(`</nav>`)
}

// EmployeeAppointmentsPage lists the employee's assigned appointments
func EmployeeAppointmentsPage(v EmployeeWorkView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.appointments"))
		m.Raw(`</h1>`)
		statusFilter(ctx, m, "/employee/appointments", v.Status, models.AppointmentStatusUpcoming, models.AppointmentStatusCompleted, models.AppointmentStatusCancelled)
		m.Raw(`<div class="mt-4">`)
		m.Render(ctx, components.Alert("error", v.Error))
		m.Raw(`</div><div class="mt-4">`)
		m.Render(ctx, partials.AppointmentTable(v.Appointments, partials.AppointmentActionsEmployee))
		m.Raw(`</div>`)
		return m.Err()
	})
}

// EmployeeProjectsPage lists the employee's assigned projects
func EmployeeProjectsPage(v EmployeeWorkView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.projects"))
		m.Raw(`</h1>`)
		statusFilter(ctx, m, "/employee/projects", v.Status, models.ProjectStatusOngoing, models.ProjectStatusCompleted, models.ProjectStatusCancelled)
		m.Raw(`<div class="mt-4">`)
		m.Render(ctx, components.Alert("error", v.Error))
		m.Raw(`</div><div class="mt-4 space-y-4">`)
		if len(v.Projects) == 0 {
			m.Render(ctx, components.EmptyState("projects.empty"))
		}
		for _, p := range v.Projects {
			m.Render(ctx, partials.ProjectCard(p, partials.ProjectActionsEmployee))
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}

// ProgressPage renders the update form for a selected appointment or project with its history
func ProgressPage(v ProgressView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.progress"))
		m.Raw(`</h1><div class="mt-6 grid gap-6 lg:grid-cols-3"><aside class="space-y-2 text-sm"><h2 class="font-semibold">`)
		m.Text(i18n.T(ctx, "progress.select"))
		m.Raw(`</h2>`)
		for _, a := range v.Appointments {
			progressTargetLink(m, "appointment", a.ID, a.ServiceName+" · "+partials.FormatDate(a.Date), v.Kind == "appointment" && v.TargetID == a.ID)
		}
		for _, p := range v.Projects {
			progressTargetLink(m, "project", p.ID, p.Title, v.Kind == "project" && v.TargetID == p.ID)
		}
		if len(v.Appointments) == 0 && len(v.Projects) == 0 {
			m.Render(ctx, components.EmptyState("progress.nothing_assigned"))
		}
		m.Raw(`</aside><div class="space-y-6 lg:col-span-2">`)
		if v.TargetID != "" {
			m.Render(ctx, ProgressForm(v))
			m.Raw(`<section><h2 class="mb-3 font-semibold">`)
			m.Text(i18n.T(ctx, "progress.history"))
			m.Raw(`</h2>`)
			m.Render(ctx, partials.ProgressHistory(v.History, v.Now))
			m.Raw(`</section>`)
		}
		m.Raw(`</div></div>`)
		return m.Err()
	})
}

func progressTargetLink(m *components.Markup, kind, id, label string, active bool) {
	class := "block rounded-lg px-3 py-2 hover:bg-slate-100"
	if active {
		class = "block rounded-lg bg-slate-900 px-3 py-2 text-white"
	}
	m.Raw(`<a`)
	m.Attr("href", "/employee/progress?kind="+kind+"&id="+id)
	m.Attr("class", class)
	m.Raw(`>`)
	m.Text(label)
	m.Raw(`</a>`)
}

// ProgressForm posts a new update; htmx swaps the whole panel on success
func ProgressForm(v ProgressView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<form method="post" class="space-y-3 rounded-xl border border-slate-200 bg-white p-6" id="progress-form"`)
		m.Attr("action", "/employee/progress/"+v.Kind+"/"+v.TargetID)
		m.Raw(`><div class="flex justify-between text-sm text-slate-500"><span>`)
		m.Textf("%s: %d%%", i18n.T(ctx, "progress.latest"), v.Latest)
		m.Raw(`</span><span>`)
		m.Textf("%s: %.1f%%", i18n.T(ctx, "progress.average"), v.Average)
		m.Raw(`</span></div>`)
		m.Render(ctx, components.ProgressBar(v.Latest))
		m.Render(ctx, components.Alert("error", v.Error))
		m.Render(ctx, components.CSRFInput())
		m.Render(ctx, components.Input(components.Field{Name: "stage", Label: "progress.stage", Required: true}))
		m.Render(ctx, components.Input(components.Field{Name: "percentage", Label: "progress.percentage", Type: "number", Min: "0", Max: "100", Required: true}))
		m.Render(ctx, components.Input(components.Field{Name: "remarks", Label: "progress.remarks"}))
		m.Raw(`<button type="submit" class="w-full rounded-lg bg-indigo-600 py-2 text-sm font-medium text-white">`)
		m.Text(i18n.T(ctx, "progress.submit"))
		m.Raw(`</button></form>`)
		return m.Err()
	})
}
