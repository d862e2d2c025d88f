// File: internal/handler/admin/dashboard.go
package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the administrator landing page.
func DashboardHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "admin_dashboard.html", nil)
	}
}

// ScannerHandler serves the camera scanner page.
func ScannerHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "admin_scanner.html", nil)
	}
}
