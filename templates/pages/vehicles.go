package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"autocare_portal_go/models"
	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"

	"github.com/a-h/templ"
)

// VehiclesPage lists the customer's vehicles with the registration form
func VehiclesPage(v VehiclesView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<h1 class="text-2xl font-semibold">`)
		m.Text(i18n.T(ctx, "nav.vehicles"))
		m.Raw(`</h1><div class="mt-4">`)
		m.Render(ctx, components.Alert("error", v.Error))
		m.Raw(`</div><div class="mt-6 grid gap-6 lg:grid-cols-3"><div class="space-y-4 lg:col-span-2" id="vehicle-list">`)
		if len(v.Vehicles) == 0 {
			m.Render(ctx, components.EmptyState("vehicles.empty"))
		}
		for _, vehicle := range v.Vehicles {
			m.Render(ctx, VehicleCard(vehicle, v.Now.Year()))
		}
		m.Raw(`</div><form method="post" action="/customer/vehicles" class="space-y-3 rounded-xl border border-slate-200 bg-white p-6"><h2 class="font-semibold">`)
		m.Text(i18n.T(ctx, "vehicles.add"))
		m.Raw(`</h2>`)
		m.Render(ctx, components.CSRFInput())
		renderVehicleFields(ctx, m, models.Vehicle{}, v.Now.Year())
		m.Raw(`<button type="submit" class="w-full rounded-lg bg-indigo-600 py-2 text-sm font-medium text-white">`)
		m.Text(i18n.T(ctx, "common.save"))
		m.Raw(`</button></form></div>`)
		return m.Err()
	})
}

func renderVehicleFields(ctx context.Context, m *components.Markup, v models.Vehicle, currentYear int) {
	year := ""
	if v.Year > 0 {
		year = strconv.Itoa(v.Year)
	}
	registered := ""
	if v.RegistrationDate != nil {
		registered = v.RegistrationDate.Format("2006-01-02")
	}
	m.Render(ctx, components.Input(components.Field{Name: "model", Label: "vehicles.model", Value: v.Model, Required: true}))
	m.Render(ctx, components.Input(components.Field{Name: "color", Label: "vehicles.color", Value: v.Color, Required: true}))
	m.Render(ctx, components.Input(components.Field{Name: "license_plate", Label: "vehicles.license_plate", Value: v.LicensePlate, Required: true}))
	m.Render(ctx, components.Input(components.Field{Name: "vin", Label: "vehicles.vin", Value: v.VIN}))
	m.Render(ctx, components.Input(components.Field{Name: "year", Label: "vehicles.year", Type: "number", Value: year, Required: true, Min: "1900", Max: strconv.Itoa(currentYear + 1)}))
	m.Render(ctx, components.Input(components.Field{Name: "registration_date", Label: "vehicles.registration_date", Type: "date", Value: registered}))
}

// VehicleCard renders one vehicle with its photo and actions
func VehicleCard(v models.Vehicle, currentYear int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		base := "/customer/vehicles/" + v.ID
		m := components.NewMarkup(w)
		m.Raw(`<article class="flex gap-4 rounded-xl border border-slate-200 bg-white p-4"`)
		m.Attr("id", "vehicle-"+v.ID)
		m.Raw(`>`)
		if v.HasImage() {
			m.Raw(`<img class="h-24 w-32 rounded-lg object-cover"`)
			m.Attr("src", v.ImageURL)
			m.Attr("alt", v.Model)
			m.Raw(`>`)
		} else {
			m.Raw(`<div class="flex h-24 w-32 items-center justify-center rounded-lg bg-slate-100 text-xs text-slate-400">`)
			m.Text(v.Model)
			m.Raw(`</div>`)
		}
		m.Raw(`<div class="flex-1"><h3 class="font-semibold">`)
		m.Text(v.DisplayName())
		m.Raw(`</h3><p class="text-sm text-slate-500">`)
		m.Text(v.Color)
		if v.VIN != "" {
			m.Text(" · VIN " + v.VIN)
		}
		m.Raw(`</p><div class="mt-3 flex flex-wrap items-center gap-3 text-sm">`)

		m.Raw(`<form method="post" enctype="multipart/form-data" class="flex items-center gap-2"`)
		m.Attr("action", base+"/image")
		m.Raw(`>`)
		m.Render(ctx, components.CSRFInput())
		m.Raw(`<input type="file" name="image" accept="image/jpeg,image/png,image/webp" required class="text-xs"><button type="submit" class="text-indigo-600">`)
		m.Text(i18n.T(ctx, "vehicles.upload_image"))
		m.Raw(`</button></form>`)

		m.Raw(`<button type="button" class="text-red-600" hx-swap="outerHTML"`)
		m.Attr("hx-post", base+"/delete")
		m.Attr("hx-target", "#vehicle-"+v.ID)
		m.Attr("hx-confirm", i18n.T(ctx, "vehicles.confirm_delete"))
		m.Raw(`>`)
		m.Text(i18n.T(ctx, "common.delete"))
		m.Raw(`</button></div>`)

		m.Raw(`<details class="mt-3"><summary class="cursor-pointer text-sm text-slate-600">`)
		m.Text(i18n.T(ctx, "vehicles.edit"))
		m.Raw(`</summary><form method="post" class="mt-3 grid gap-3 sm:grid-cols-2"`)
		m.Attr("action", base)
		m.Raw(`>`)
		m.Render(ctx, components.CSRFInput())
		renderVehicleFields(ctx, m, v, currentYear)
		m.Raw(`<button type="submit" class="rounded-lg bg-slate-800 py-2 text-sm text-white sm:col-span-2">`)
		m.Text(i18n.T(ctx, "common.save"))
		m.Raw(`</button></form></details></div></article>`)
		return m.Err()
	})
}

// vehicleOptions builds the select options used by booking and project forms
func vehicleOptions(vehicles []models.Vehicle) []components.Option {
	options := make([]components.Option, 0, len(vehicles))
	for _, v := range vehicles {
		options = append(options, components.Option{Value: v.ID, Label: fmt.Sprintf("%s %s", v.Model, v.LicensePlate)})
	}
	return options
}
