package partials

import (
	"context"
	"io"
	"time"

	"autocare_portal_go/models"
	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"

	"github.com/a-h/templ"
)

// Actions selects which row buttons a list shows
type Actions int

const (
	ActionsNone Actions = iota
	AppointmentActionsCustomer
	AppointmentActionsEmployee
	ProjectActionsCustomer
	ProjectActionsEmployee
)

// AppointmentTable lists appointments; rows are swapped individually by htmx
func AppointmentTable(appointments []models.Appointment, actions Actions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		if len(appointments) == 0 {
			m.Render(ctx, components.EmptyState("appointments.empty"))
			return m.Err()
		}
		m.Raw(`<div class="overflow-hidden rounded-xl border border-slate-200 bg-white"><table class="min-w-full divide-y divide-slate-200 text-sm"><thead class="bg-slate-50 text-left text-xs uppercase text-slate-500"><tr>`)
		for _, key := range []string{"appointments.service", "appointments.vehicle", "appointments.date", "appointments.employee", "appointments.status"} {
			m.Raw(`<th class="px-4 py-3">`)
			m.Text(i18n.T(ctx, key))
			m.Raw(`</th>`)
		}
		m.Raw(`<th class="px-4 py-3"></th></tr></thead><tbody class="divide-y divide-slate-100">`)
		for _, a := range appointments {
			m.Render(ctx, AppointmentRow(a, actions))
		}
		m.Raw(`</tbody></table></div>`)
		return m.Err()
	})
}

// AppointmentRow is one table row, also returned alone after an htmx action
func AppointmentRow(a models.Appointment, actions Actions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<tr`)
		m.Attr("id", "appointment-"+a.ID)
		m.Raw(`><td class="px-4 py-3 font-medium">`)
		m.Text(a.ServiceName)
		m.Raw(`</td><td class="px-4 py-3">`)
		if a.Vehicle.ID != "" {
			m.Text(a.Vehicle.Model + " " + a.Vehicle.LicensePlate)
		}
		m.Raw(`</td><td class="px-4 py-3">`)
		m.Text(FormatDate(a.Date))
		m.Raw(`<br><span class="text-xs text-slate-500">`)
		m.Text(a.TimeRange())
		m.Raw(`</span></td><td class="px-4 py-3">`)
		if a.Employee != nil {
			m.Text(a.Employee.Name)
		} else {
			m.Raw(`<span class="text-slate-400">`)
			m.Text(i18n.T(ctx, "appointments.unassigned"))
			m.Raw(`</span>`)
		}
		m.Raw(`</td><td class="px-4 py-3">`)
		m.Render(ctx, components.StatusBadge(a.Status))
		m.Raw(`</td><td class="px-4 py-3 text-right">`)
		switch actions {
		case AppointmentActionsCustomer:
			if a.CanTransitionTo(models.AppointmentStatusCancelled) {
				rowButton(ctx, m, "/customer/my-appointments/"+a.ID+"/cancel", "#appointment-"+a.ID, "appointments.cancel", "text-red-600")
			}
		case AppointmentActionsEmployee:
			if a.CanTransitionTo(models.AppointmentStatusCompleted) {
				m.Raw(`<a class="mr-3 text-indigo-600"`)
				m.Attr("href", "/employee/progress?kind=appointment&id="+a.ID)
				m.Raw(`>`)
				m.Text(i18n.T(ctx, "nav.progress"))
				m.Raw(`</a>`)
				rowButton(ctx, m, "/employee/appointments/"+a.ID+"/complete", "#appointment-"+a.ID, "appointments.complete", "text-emerald-600")
			}
		}
		m.Raw(`</td></tr>`)
		return m.Err()
	})
}

func rowButton(ctx context.Context, m *components.Markup, url, target, label, class string) {
	m.Raw(`<button type="button" hx-swap="outerHTML"`)
	m.Attr("class", "font-medium "+class)
	m.Attr("hx-post", url)
	m.Attr("hx-target", target)
	m.Raw(`>`)
	m.Text(i18n.T(ctx, label))
	m.Raw(`</button>`)
}

// ProjectCard shows a project's status, progress and actions
func ProjectCard(p models.Project, actions Actions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<article class="rounded-xl border border-slate-200 bg-white p-5"`)
		m.Attr("id", "project-"+p.ID)
		m.Raw(`><div class="flex items-start justify-between gap-4"><div><h3 class="font-semibold">`)
		m.Text(p.Title)
		m.Raw(`</h3><p class="text-sm text-slate-500">`)
		if p.Vehicle.ID != "" {
			m.Text(p.Vehicle.Model + " " + p.Vehicle.LicensePlate + " · ")
		}
		m.Text(i18n.T(ctx, "projects.estimated_cost") + ": " + ProjectCost(p))
		m.Raw(`</p></div>`)
		m.Render(ctx, components.StatusBadge(p.Status))
		m.Raw(`</div>`)
		if p.Description != "" {
			m.Raw(`<p class="mt-2 text-sm text-slate-700">`)
			m.Text(p.Description)
			m.Raw(`</p>`)
		}
		m.Raw(`<div class="mt-3">`)
		m.Render(ctx, components.ProgressBar(p.ProgressPercentage))
		m.Raw(`</div><div class="mt-3 flex gap-4 text-sm">`)
		switch actions {
		case ProjectActionsCustomer:
			if p.CanTransitionTo(models.ProjectStatusCancelled) {
				rowButton(ctx, m, "/customer/my-projects/"+p.ID+"/cancel", "#project-"+p.ID, "projects.cancel", "text-red-600")
			}
		case ProjectActionsEmployee:
			if p.Status == models.ProjectStatusOngoing {
				m.Raw(`<a class="font-medium text-indigo-600"`)
				m.Attr("href", "/employee/progress?kind=project&id="+p.ID)
				m.Raw(`>`)
				m.Text(i18n.T(ctx, "nav.progress"))
				m.Raw(`</a>`)
				rowButton(ctx, m, "/employee/projects/"+p.ID+"/complete", "#project-"+p.ID, "projects.complete", "text-emerald-600")
			}
			m.Raw(`<a class="font-medium text-slate-600"`)
			m.Attr("href", "/employee/projects/"+p.ID+"/report.pdf")
			m.Raw(`>`)
			m.Text(i18n.T(ctx, "projects.report"))
			m.Raw(`</a>`)
		}
		m.Raw(`</div></article>`)
		return m.Err()
	})
}

// ProjectCost formats the estimate for display
func ProjectCost(p models.Project) string {
	if p.EstimatedCost.IsZero() {
		return "-"
	}
	return p.EstimatedCost.StringFixed(2)
}

// NotificationList renders notifications, newest first
func NotificationList(notifications []models.Notification, now time.Time, basePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<ul id="notification-list" class="space-y-3">`)
		if len(notifications) == 0 {
			m.Raw(`<li>`)
			m.Render(ctx, components.EmptyState("notifications.empty"))
			m.Raw(`</li>`)
		}
		for _, n := range notifications {
			class := "rounded-xl border border-slate-200 bg-white p-4"
			if !n.IsRead() {
				class = "rounded-xl border border-indigo-200 bg-indigo-50 p-4"
			}
			m.Raw(`<li`)
			m.Attr("class", class)
			m.Attr("id", "notification-"+n.ID)
			m.Raw(`><div class="flex justify-between gap-4"><p class="font-medium">`)
			m.Text(n.Title)
			m.Raw(`</p><span class="text-xs text-slate-500">`)
			m.Text(RelativeTime(n.CreatedAt, now))
			m.Raw(`</span></div><p class="mt-1 text-sm text-slate-700">`)
			m.Text(n.Message)
			m.Raw(`</p><div class="mt-2 flex gap-4 text-sm">`)
			if n.LinkURL != "" {
				m.Raw(`<a class="text-indigo-600"`)
				m.Attr("href", n.LinkURL)
				m.Raw(`>`)
				m.Text(i18n.T(ctx, "notifications.open"))
				m.Raw(`</a>`)
			}
			if !n.IsRead() {
				m.Raw(`<button type="button" class="text-slate-600" hx-target="#notification-list" hx-swap="outerHTML"`)
				m.Attr("hx-post", basePath+"/"+n.ID+"/read")
				m.Raw(`>`)
				m.Text(i18n.T(ctx, "notifications.mark_read"))
				m.Raw(`</button>`)
			}
			m.Raw(`</div></li>`)
		}
		m.Raw(`</ul>`)
		return m.Err()
	})
}

// ProgressHistory renders a timeline of progress updates
func ProgressHistory(updates []models.ProgressUpdate, now time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<ol id="progress-history" class="space-y-3">`)
		if len(updates) == 0 {
			m.Raw(`<li>`)
			m.Render(ctx, components.EmptyState("progress.empty"))
			m.Raw(`</li>`)
		}
		for _, u := range updates {
			m.Raw(`<li class="rounded-lg border border-slate-200 bg-white p-4"><div class="flex justify-between text-sm"><span class="font-medium">`)
			m.Text(u.Stage)
			m.Raw(`</span><span class="text-slate-500">`)
			m.Textf("%d%% · %s", u.Percentage, RelativeTime(u.CreatedAt, now))
			m.Raw(`</span></div>`)
			if u.Remarks != "" {
				m.Raw(`<p class="mt-1 text-sm text-slate-700">`)
				m.Text(u.Remarks)
				m.Raw(`</p>`)
			}
			m.Raw(`</li>`)
		}
		m.Raw(`</ol>`)
		return m.Err()
	})
}
