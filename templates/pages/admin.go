package pages

import (
	"context"
	"fmt"
	"io"

	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"
	"autocare_portal_go/templates/partials"

	"github.com/a-h/templ"
)

// AdminDashboard renders the admin landing page
func AdminDashboard(v AdminDashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := v.Stats
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.dashboard"))
		m.Raw(`</h1><div class="mt-6 grid gap-4 sm:grid-cols-2 xl:grid-cols-3">`)
		m.Render(ctx, components.StatCard("dashboard.total_customers", s.TotalCustomers, ""))
		m.Render(ctx, components.StatCard("dashboard.total_employees", s.TotalEmployees, ""))
		m.Render(ctx, components.StatCard("dashboard.total_vehicles", s.TotalVehicles, ""))
		m.Render(ctx, components.StatCard("dashboard.pending_appointments", s.PendingAppointments, "/admin/appointments"))
		m.Render(ctx, components.StatCard("dashboard.pending_projects", s.PendingProjects, "/admin/projects"))
		m.Render(ctx, components.StatCard("dashboard.ongoing_projects", s.OngoingProjects, "/admin/projects?status=ONGOING"))
		m.Raw(`</div><section class="mt-8"><h2 class="mb-4 font-semibold">`)
		m.Text(i18n.T(ctx, "dashboard.pending_appointments"))
		m.Raw(`</h2>`)
		m.Render(ctx, partials.AppointmentTable(v.Pending, partials.ActionsNone))
		m.Raw(`</section>`)
		return m.Err()
	})
}

// AdminAppointmentsPage lists unassigned appointments with an assignment picker per row
func AdminAppointmentsPage(v AdminAppointmentsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.assignments"))
		m.Raw(`</h1><div class="mt-4" id="assign-errors">`)
		m.Render(ctx, components.Alert("error", v.Error))
		m.Raw(`</div><div class="mt-4 space-y-3">`)
		if len(v.Pending) == 0 {
			m.Render(ctx, components.EmptyState("appointments.empty"))
		}
		for _, a := range v.Pending {
			m.Render(ctx, PendingAppointmentCard(a, v.Availability[DateKey(a.Date)]))
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}

// PendingAppointmentCard shows one unassigned appointment with its employee picker
func PendingAppointmentCard(a models.Appointment, availability []services.EmployeeAvailability) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<article class="flex flex-wrap items-center justify-between gap-4 rounded-xl border border-slate-200 bg-white p-4"`)
		m.Attr("id", "pending-"+a.ID)
		m.Raw(`><div><p class="font-medium">`)
		m.Text(a.ServiceName)
		m.Raw(`</p><p class="text-sm text-slate-500">`)
		m.Text(partials.FormatDate(a.Date) + " · " + a.TimeRange())
		if a.Customer.Name != "" {
			m.Text(" · " + a.Customer.Name)
		}
		if a.Vehicle.ID != "" {
			m.Text(" · " + a.Vehicle.Model + " " + a.Vehicle.LicensePlate)
		}
		m.Raw(`</p></div><form class="flex items-center gap-2" hx-swap="outerHTML"`)
		m.Attr("hx-post", "/admin/appointments/"+a.ID+"/assign")
		m.Attr("hx-target", "#pending-"+a.ID)
		m.Raw(`>`)
		m.Render(ctx, components.CSRFInput())
		m.Raw(`<select name="employee_id" required class="rounded-lg border border-slate-300 px-3 py-2 text-sm"><option value="">`)
		m.Text(i18n.T(ctx, "admin.select_employee"))
		m.Raw(`</option>`)
		for _, ea := range availability {
			m.Raw(`<option`)
			m.Attr("value", ea.Employee.ID)
			if !ea.Available {
				m.Raw(` disabled`)
			}
			m.Raw(`>`)
			m.Text(fmt.Sprintf("%s (%d/%d)", ea.Employee.Name, ea.Appointments, services.MaxDailyAppointments))
			m.Raw(`</option>`)
		}
		m.Raw(`</select><button type="submit" class="rounded-lg bg-indigo-600 px-4 py-2 text-sm font-medium text-white">`)
		m.Text(i18n.T(ctx, "appointments.assign"))
		m.Raw(`</button></form></article>`)
		return m.Err()
	})
}

// AdminProjectsPage lists projects; pending ones get an assignment picker
func AdminProjectsPage(v AdminProjectsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.projects"))
		m.Raw(`</h1>`)
		statusFilter(ctx, m, "/admin/projects", v.Status, models.ProjectStatusPending, models.ProjectStatusOngoing, models.ProjectStatusCompleted, models.ProjectStatusCancelled)
		m.Raw(`<div class="mt-4" id="assign-errors">`)
		m.Render(ctx, components.Alert("error", v.Error))
		m.Raw(`</div><div class="mt-4 space-y-4">`)
		if len(v.Projects) == 0 {
			m.Render(ctx, components.EmptyState("projects.empty"))
		}
		for _, p := range v.Projects {
			m.Raw(`<div`)
			m.Attr("id", "admin-project-"+p.ID)
			m.Raw(`>`)
			m.Render(ctx, partials.ProjectCard(p, partials.ActionsNone))
			if p.Status == models.ProjectStatusPending {
				m.Raw(`<form class="mt-2 flex items-center gap-2" hx-swap="outerHTML"`)
				m.Attr("hx-post", "/admin/projects/"+p.ID+"/assign")
				m.Attr("hx-target", "#admin-project-"+p.ID)
				m.Raw(`>`)
				m.Render(ctx, components.CSRFInput())
				m.Raw(`<select name="employee_id" required class="rounded-lg border border-slate-300 px-3 py-2 text-sm"><option value="">`)
				m.Text(i18n.T(ctx, "admin.select_employee"))
				m.Raw(`</option>`)
				for _, e := range v.Employees {
					m.Raw(`<option`)
					m.Attr("value", e.ID)
					m.Raw(`>`)
					m.Text(e.Name)
					m.Raw(`</option>`)
				}
				m.Raw(`</select><button type="submit" class="rounded-lg bg-indigo-600 px-4 py-2 text-sm font-medium text-white">`)
				m.Text(i18n.T(ctx, "projects.assign"))
				m.Raw(`</button></form>`)
			}
			m.Raw(`</div>`)
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}
