package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"autocare_portal_go/db"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// VehiclesHandler lists the customer's vehicles
func VehiclesHandler(c echo.Context) error {
	return renderVehicles(c, http.StatusOK, "")
}

func renderVehicles(c echo.Context, status int, errMsg string) error {
	user := currentUser(c)
	vehicles, err := services.ListCustomerVehicles(db.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	view := pages.VehiclesView{Vehicles: vehicles, Error: errMsg, Now: clock()}
	return renderPageStatus(c, status, "nav.vehicles", pages.VehiclesPage(view))
}

// parseVehicleForm reads the shared create/edit form
func parseVehicleForm(c echo.Context) (services.VehicleInput, error) {
	in := services.VehicleInput{
		Model:        c.FormValue("model"),
		Color:        c.FormValue("color"),
		VIN:          c.FormValue("vin"),
		LicensePlate: c.FormValue("license_plate"),
	}

	year, err := strconv.Atoi(strings.TrimSpace(c.FormValue("year")))
	if err != nil {
		return in, errors.New(tr(c, "vehicles.invalid_year"))
	}
	in.Year = year

	if raw := strings.TrimSpace(c.FormValue("registration_date")); raw != "" {
		date, err := services.ParseDate(raw)
		if err != nil {
			return in, errors.New(tr(c, "errors.invalid_input"))
		}
		in.RegistrationDate = &date
	}
	return in, nil
}

// CreateVehicleHandler registers a vehicle for the customer
func CreateVehicleHandler(c echo.Context) error {
	user := currentUser(c)
	in, err := parseVehicleForm(c)
	if err != nil {
		return renderVehicles(c, http.StatusUnprocessableEntity, err.Error())
	}

	if _, err := services.CreateVehicle(db.DB, user.ID, in); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return renderVehicles(c, http.StatusUnprocessableEntity, inputMessage(c, err))
		}
		return serviceError(c, err)
	}
	return redirect(c, "/customer/vehicles")
}

// UpdateVehicleHandler saves the edit form of one vehicle
func UpdateVehicleHandler(c echo.Context) error {
	user := currentUser(c)
	in, err := parseVehicleForm(c)
	if err != nil {
		return renderVehicles(c, http.StatusUnprocessableEntity, err.Error())
	}

	if _, err := services.UpdateVehicle(db.DB, user.ID, c.Param("id"), in); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return renderVehicles(c, http.StatusUnprocessableEntity, inputMessage(c, err))
		}
		return serviceError(c, err)
	}
	return redirect(c, "/customer/vehicles")
}

// DeleteVehicleHandler removes a vehicle. htmx callers get an empty body so the card disappears.
func DeleteVehicleHandler(c echo.Context) error {
	user := currentUser(c)
	err := services.DeleteVehicle(c.Request().Context(), db.DB, services.Storage, user.ID, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	audit(c, user, services.AuditEvent{
		Action:       models.AuditActionDelete,
		ResourceType: models.AuditResourceVehicle,
		ResourceID:   c.Param("id"),
	})
	if isHTMX(c) {
		return c.HTML(http.StatusOK, "")
	}
	return redirect(c, "/customer/vehicles")
}

// UploadVehicleImageHandler replaces the vehicle photo
func UploadVehicleImageHandler(c echo.Context) error {
	user := currentUser(c)
	file, err := c.FormFile("image")
	if err != nil {
		return renderVehicles(c, http.StatusUnprocessableEntity, tr(c, "vehicles.image_required"))
	}

	_, err = services.AttachVehicleImage(c.Request().Context(), db.DB, services.Storage, user.ID, c.Param("id"), file)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return renderVehicles(c, http.StatusUnprocessableEntity, inputMessage(c, err))
		}
		return serviceError(c, err)
	}
	return redirect(c, "/customer/vehicles")
}
