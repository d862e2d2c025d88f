// File: internal/handler/qr.go
package handler

import (
	"html/template"
	"net/http"
	"strings"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/dto"
	"asistencia-qr/internal/middleware"
	"asistencia-qr/internal/service"
	"asistencia-qr/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getUserByID   = store.GetUserByID
	qrCodeDataURI = service.QRCodeDataURI
)

// QRCodeHandler renders the logged-in member's token as a scannable image
// together with the literal check-in URL it encodes. Administrators have no
// token and are sent back to their dashboard.
func QRCodeHandler(db database.DB, baseURL string) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.SessionClaims(c)
		if claims == nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		if claims.IsAdmin {
			return c.Redirect(http.StatusSeeOther, "/")
		}

		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error interno del servidor."})
		}
		if user.Token == nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "El usuario no tiene un código asignado."})
		}

		checkinURL := strings.TrimRight(baseURL, "/") + "/checkin/" + user.Token.String()
		qr, err := qrCodeDataURI(checkinURL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error interno del servidor."})
		}

		return c.Render(http.StatusOK, "qr_viewer.html", echo.Map{
			// template.URL: html/template rejects data: URLs otherwise
			"QRBase64":   template.URL(qr),
			"CheckinURL": checkinURL,
		})
	}
}
