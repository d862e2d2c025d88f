// File: internal/handler/home.go
package handler

import (
	"net/http"

	"asistencia-qr/internal/middleware"

	"github.com/labstack/echo/v4"
)

// HomeHandler routes by role: anonymous visitors to the login form,
// administrators to their dashboard, members to their token page.
func HomeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := middleware.ClaimsFromCookie(c)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		if claims.IsAdmin {
			return c.Redirect(http.StatusSeeOther, "/admin")
		}
		return c.Redirect(http.StatusSeeOther, "/qrcode")
	}
}
