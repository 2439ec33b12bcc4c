package handlers

import (
	"autocare_portal_go/middleware"
	"autocare_portal_go/models"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts every page and API route. Server-wide middleware
// (config, CSRF, CSP, locale) is installed by the caller.
func RegisterRoutes(e *echo.Echo) {
	// Public routes
	e.GET("/", HomeHandler)
	e.GET("/login", LoginHandler)
	e.POST("/login", LoginPostHandler, middleware.LoginRateLimiter.Middleware())
	e.GET("/signup", SignupHandler)
	e.POST("/signup", SignupPostHandler, middleware.SignupRateLimiter.Middleware())

	// Session and user language are attached per area, so unknown public URLs stay 404
	authed := []echo.MiddlewareFunc{middleware.RequireAuth(), middleware.UserLocale()}
	e.POST("/logout", LogoutHandler, authed...)

	// Customer area
	customer := e.Group("/customer", authed...)
	customer.Use(middleware.RequireRole(models.RoleCustomer))
	{
		customer.GET("/dashboard", CustomerDashboardHandler)
		customer.GET("/dashboard/export", CustomerExportHandler)
		customer.POST("/chat", ChatHandler, middleware.ChatRateLimiter.Middleware())

		customer.GET("/vehicles", VehiclesHandler)
		customer.POST("/vehicles", CreateVehicleHandler)
		customer.POST("/vehicles/:id", UpdateVehicleHandler)
		customer.POST("/vehicles/:id/image", UploadVehicleImageHandler)
		customer.POST("/vehicles/:id/delete", DeleteVehicleHandler)

		customer.GET("/my-appointments", CustomerAppointmentsHandler)
		customer.POST("/my-appointments", BookAppointmentHandler)
		customer.POST("/my-appointments/:id/cancel", CancelAppointmentHandler)

		customer.GET("/my-projects", CustomerProjectsHandler)
		customer.POST("/my-projects", CreateProjectHandler)
		customer.POST("/my-projects/:id/cancel", CancelProjectHandler)

		customer.GET("/notifications", NotificationsHandler)
		customer.POST("/notifications/read-all", MarkAllNotificationsReadHandler)
		customer.POST("/notifications/:id/read", MarkNotificationReadHandler)
	}

	// Employee area
	employee := e.Group("/employee", authed...)
	employee.Use(middleware.RequireRole(models.RoleEmployee))
	{
		employee.GET("/dashboard", EmployeeDashboardHandler)
		employee.GET("/appointments", EmployeeAppointmentsHandler)
		employee.POST("/appointments/:id/complete", CompleteAppointmentHandler)
		employee.GET("/projects", EmployeeProjectsHandler)
		employee.POST("/projects/:id/complete", CompleteProjectHandler)
		employee.GET("/projects/:id/report.pdf", ProjectReportHandler)
		employee.GET("/progress", ProgressHandler)
		employee.POST("/progress/:kind/:id", ProgressPostHandler)

		employee.GET("/notifications", NotificationsHandler)
		employee.POST("/notifications/read-all", MarkAllNotificationsReadHandler)
		employee.POST("/notifications/:id/read", MarkNotificationReadHandler)
	}

	// Admin area
	admin := e.Group("/admin", authed...)
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", AdminDashboardHandler)
		admin.GET("/appointments", AdminAppointmentsHandler)
		admin.POST("/appointments/:id/assign", AssignAppointmentHandler)
		admin.GET("/projects", AdminProjectsHandler)
		admin.POST("/projects/:id/assign", AssignProjectHandler)
		admin.GET("/activity", AdminActivityHandler)
	}

	// JSON API
	api := e.Group("/api", authed...)
	api.Use(middleware.APIRateLimiter.Middleware())
	{
		api.GET("/customer/dashboard/stats", CustomerStatsAPIHandler, middleware.RequireRole(models.RoleCustomer))
		api.GET("/admin/availability", AvailabilityAPIHandler, middleware.RequireRole(models.RoleAdmin))
	}
}
