package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// isHTMX reports whether the request was issued by htmx
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// redirect sends htmx requests an HX-Redirect header and everyone else a 303
func redirect(c echo.Context, path string) error {
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", path)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

// retarget points an htmx swap at another element, used to show errors
// somewhere other than the row that triggered the request
func retarget(c echo.Context, selector, swap string) {
	c.Response().Header().Set("HX-Retarget", selector)
	c.Response().Header().Set("HX-Reswap", swap)
}
