package handlers

import (
	"net/http"

	"autocare_portal_go/db"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/templates/components"
	"autocare_portal_go/templates/pages"
	"autocare_portal_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// notificationPageSize caps the notifications page
const notificationPageSize = 50

// customerNav is the customer sidebar with the unread notification badge
func customerNav(userID string) []components.NavItem {
	return withUnreadBadge(components.CustomerNav(), userID, customerNotificationsPath)
}

// employeeNav is the employee sidebar with the unread notification badge
func employeeNav(userID string) []components.NavItem {
	return withUnreadBadge(components.EmployeeNav(), userID, employeeNotificationsPath)
}

func withUnreadBadge(items []components.NavItem, userID, href string) []components.NavItem {
	count, err := services.NewNotificationService(db.DB).GetNotificationCount(userID)
	if err != nil {
		return items
	}
	for i := range items {
		if items[i].Href == href {
			items[i].Badge = count
		}
	}
	return items
}

const (
	customerNotificationsPath = "/customer/notifications"
	employeeNotificationsPath = "/employee/notifications"
)

// notificationsPath is the notification area of the current user's role
func notificationsPath(c echo.Context) string {
	if user := currentUser(c); user != nil && user.Role == models.RoleEmployee {
		return employeeNotificationsPath
	}
	return customerNotificationsPath
}

// NotificationsHandler renders the notification list
func NotificationsHandler(c echo.Context) error {
	user := currentUser(c)
	service := services.NewNotificationService(db.DB)

	notifications, err := service.ListNotifications(user.ID, notificationPageSize)
	if err != nil {
		return serviceError(c, err)
	}
	unread, err := service.GetNotificationCount(user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return renderPage(c, "nav.notifications", pages.NotificationsPage(pages.NotificationsView{
		Notifications: notifications,
		UnreadCount:   unread,
		Now:           clock(),
		BasePath:      notificationsPath(c),
	}))
}

// MarkNotificationReadHandler marks one notification read and returns the refreshed list
func MarkNotificationReadHandler(c echo.Context) error {
	user := currentUser(c)
	service := services.NewNotificationService(db.DB)
	if err := service.MarkAsRead(c.Param("id"), user.ID); err != nil {
		return serviceError(c, err)
	}
	return renderNotificationList(c, service, user.ID)
}

// MarkAllNotificationsReadHandler marks everything read and returns the refreshed list
func MarkAllNotificationsReadHandler(c echo.Context) error {
	user := currentUser(c)
	service := services.NewNotificationService(db.DB)
	if err := service.MarkAllAsRead(user.ID); err != nil {
		return serviceError(c, err)
	}
	return renderNotificationList(c, service, user.ID)
}

func renderNotificationList(c echo.Context, service *services.NotificationService, userID string) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, notificationsPath(c))
	}
	notifications, err := service.ListNotifications(userID, notificationPageSize)
	if err != nil {
		return serviceError(c, err)
	}
	return render(c, http.StatusOK, partials.NotificationList(notifications, clock(), notificationsPath(c)))
}
