package handlers

import (
	"errors"
	"net/http"
	"strings"

	"autocare_portal_go/db"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/templates/pages"
	"autocare_portal_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// CustomerAppointmentsHandler lists the customer's appointments with the booking form
func CustomerAppointmentsHandler(c echo.Context) error {
	return renderCustomerAppointments(c, http.StatusOK, "")
}

func renderCustomerAppointments(c echo.Context, status int, errMsg string) error {
	user := currentUser(c)
	appointments, err := services.ListCustomerAppointments(db.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	vehicles, err := services.ListCustomerVehicles(db.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	view := pages.CustomerAppointmentsView{
		Appointments: appointments,
		Vehicles:     vehicles,
		Error:        errMsg,
		Today:        clock(),
	}
	return renderPageStatus(c, status, "nav.my_appointments", pages.CustomerAppointmentsPage(view))
}

// BookAppointmentHandler books a PENDING appointment for one of the customer's vehicles
func BookAppointmentHandler(c echo.Context) error {
	user := currentUser(c)

	date, err := services.ParseDate(c.FormValue("date"))
	if err != nil {
		return renderCustomerAppointments(c, http.StatusUnprocessableEntity, tr(c, "appointments.invalid_date"))
	}

	in := services.BookAppointmentInput{
		VehicleID:   c.FormValue("vehicle_id"),
		ServiceName: c.FormValue("service_name"),
		Date:        date,
		StartTime:   c.FormValue("start_time"),
		EndTime:     c.FormValue("end_time"),
		Notes:       c.FormValue("notes"),
	}
	if _, err := services.BookAppointment(db.DB, user.ID, in, clock()); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return renderCustomerAppointments(c, http.StatusUnprocessableEntity, inputMessage(c, err))
		case errors.Is(err, services.ErrNotFound):
			// someone else's vehicle id is reported like a bad form value
			return renderCustomerAppointments(c, http.StatusUnprocessableEntity, tr(c, "errors.invalid_input"))
		}
		return serviceError(c, err)
	}
	return redirect(c, "/customer/my-appointments")
}

// CancelAppointmentHandler cancels one of the customer's open appointments
func CancelAppointmentHandler(c echo.Context) error {
	user := currentUser(c)
	appt, err := services.CancelAppointment(db.DB, c.Param("id"), user.ID, clock())
	if err != nil {
		return serviceError(c, err)
	}
	audit(c, user, services.AuditEvent{
		Action:       models.AuditActionCancel,
		ResourceType: models.AuditResourceAppointment,
		ResourceID:   appt.ID,
		ResourceName: appt.ServiceName,
		NewValues:    map[string]string{"status": appt.Status},
	})

	cfg := getConfig(c)
	services.SendEmailAsync(cfg, services.BuildAppointmentStatusEmailFor(appt, cfg.AppURL))

	if isHTMX(c) {
		return render(c, http.StatusOK, partials.AppointmentRow(*appt, partials.AppointmentActionsCustomer))
	}
	return redirect(c, "/customer/my-appointments")
}

// appointmentStatusFilter keeps only known statuses from the query string
func appointmentStatusFilter(c echo.Context) string {
	status := strings.ToUpper(c.QueryParam("status"))
	if models.IsValidAppointmentStatus(status) {
		return status
	}
	return ""
}
