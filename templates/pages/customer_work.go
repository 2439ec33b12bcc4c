package pages

import (
	"context"
	"io"

	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"
	"autocare_portal_go/templates/partials"

	"github.com/a-h/templ"
)

// CustomerAppointmentsPage lists the customer's appointments next to the booking form
func CustomerAppointmentsPage(v CustomerAppointmentsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.my_appointments"))
		m.Raw(`</h1><div class="mt-4">`)
		m.Render(ctx, components.Alert("error", v.Error))
		m.Raw(`</div><div class="mt-6 grid gap-6 lg:grid-cols-3"><div class="lg:col-span-2">`)
		m.Render(ctx, partials.AppointmentTable(v.Appointments, partials.AppointmentActionsCustomer))
		m.Raw(`</div>`)

		m.Raw(`<form method="post" action="/customer/my-appointments" class="space-y-3 rounded-xl border border-slate-200 bg-white p-6"><h2 class="font-semibold">`)
		m.Text(i18n.T(ctx, "appointments.book"))
		m.Raw(`</h2>`)
		m.Render(ctx, components.CSRFInput())
		if len(v.Vehicles) == 0 {
			m.Render(ctx, components.EmptyState("vehicles.empty"))
		} else {
			m.Render(ctx, components.Select("vehicle_id", "appointments.vehicle", vehicleOptions(v.Vehicles), ""))
			m.Render(ctx, components.Input(components.Field{Name: "service_name", Label: "appointments.service", Required: true}))
			m.Render(ctx, components.Input(components.Field{Name: "date", Label: "appointments.date", Type: "date", Required: true, Min: v.Today.Format("2006-01-02")}))
			m.Render(ctx, components.Input(components.Field{Name: "start_time", Label: "appointments.start_time", Type: "time", Required: true}))
			m.Render(ctx, components.Input(components.Field{Name: "end_time", Label: "appointments.end_time", Type: "time", Required: true}))
			m.Render(ctx, components.Input(components.Field{Name: "notes", Label: "appointments.notes"}))
			m.Raw(`<button type="submit" class="w-full rounded-lg bg-indigo-600 py-2 text-sm font-medium text-white">`)
			m.Text(i18n.T(ctx, "appointments.book"))
			m.Raw(`</button>`)
		}
		m.Raw(`</form></div>`)
		return m.Err()
	})
}

// CustomerProjectsPage lists projects with the request form
func CustomerProjectsPage(v CustomerProjectsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.my_projects"))
		m.Raw(`</h1><div class="mt-4">`)
		m.Render(ctx, components.Alert("error", v.Error))
		m.Raw(`</div><div class="mt-6 grid gap-6 lg:grid-cols-3"><div class="space-y-4 lg:col-span-2">`)
		if len(v.Projects) == 0 {
			m.Render(ctx, components.EmptyState("projects.empty"))
		}
		for _, p := range v.Projects {
			m.Render(ctx, partials.ProjectCard(p, partials.ProjectActionsCustomer))
		}
		m.Raw(`</div><form method="post" action="/customer/my-projects" class="space-y-3 rounded-xl border border-slate-200 bg-white p-6"><h2 class="font-semibold">`)
		m.Text(i18n.T(ctx, "projects.new"))
		m.Raw(`</h2>`)
		m.Render(ctx, components.CSRFInput())
		if len(v.Vehicles) == 0 {
			m.Render(ctx, components.EmptyState("vehicles.empty"))
		} else {
			m.Render(ctx, components.Select("vehicle_id", "appointments.vehicle", vehicleOptions(v.Vehicles), ""))
			m.Render(ctx, components.Input(components.Field{Name: "title", Label: "projects.title", Required: true}))
			m.Render(ctx, components.Input(components.Field{Name: "description", Label: "projects.description"}))
			m.Render(ctx, components.Input(components.Field{Name: "estimated_cost", Label: "projects.estimated_cost", Type: "number", Min: "0"}))
			m.Raw(`<button type="submit" class="w-full rounded-lg bg-indigo-600 py-2 text-sm font-medium text-white">`)
			m.Text(i18n.T(ctx, "projects.create"))
			m.Raw(`</button>`)
		}
		m.Raw(`</form></div>`)
		return m.Err()
	})
}

// NotificationsPage lists notifications with read controls
func NotificationsPage(v NotificationsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.notifications"))
		m.Raw(`</h1>`)
		if v.UnreadCount > 0 {
			m.Raw(`<button type="button" class="text-sm font-medium text-indigo-600" hx-target="#notification-list" hx-swap="outerHTML"`)
			m.Attr("hx-post", v.BasePath+"/read-all")
			m.Raw(`>`)
			m.Text(i18n.T(ctx, "notifications.mark_all_read"))
			m.Raw(`</button>`)
		}
		m.Raw(`</div><div class="mt-6">`)
		m.Render(ctx, partials.NotificationList(v.Notifications, v.Now, v.BasePath))
		m.Raw(`</div>`)
		return m.Err()
	})
}
