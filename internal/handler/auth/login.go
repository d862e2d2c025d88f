// File: internal/handler/auth/login.go
package auth

import (
	"net/http"
	"time"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/dto"
	"asistencia-qr/internal/service"
	"asistencia-qr/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getUserByUsername = store.GetUserByUsername
	comparePassword   = service.ComparePassword
	issueSessionToken = service.IssueSessionToken
)

func renderLogin(c echo.Context, status int, errMsg string) error {
	return c.Render(status, "login.html", echo.Map{"Error": errMsg})
}

// LoginPageHandler serves the login form.
func LoginPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return renderLogin(c, http.StatusOK, "")
	}
}

// LoginHandler authenticates the form credentials and starts a session. A
// failure re-renders the form inline; there is no redirect.
func LoginHandler(db database.DB, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginForm
		if err := c.Bind(&req); err != nil {
			return renderLogin(c, http.StatusBadRequest, "Solicitud inválida.")
		}
		if err := c.Validate(&req); err != nil {
			return renderLogin(c, http.StatusBadRequest, "Usuario y contraseña son requeridos.")
		}

		user, err := getUserByUsername(c.Request().Context(), db, req.Username)
		if err != nil {
			return renderLogin(c, http.StatusUnauthorized, "Nombre de usuario incorrecto.")
		}
		if err := comparePassword(user.PasswordHash, req.Password); err != nil {
			return renderLogin(c, http.StatusUnauthorized, "Contraseña incorrecta.")
		}

		token, err := issueSessionToken(*user, ttl)
		if err != nil {
			return renderLogin(c, http.StatusInternalServerError, "Error interno del servidor.")
		}

		c.SetCookie(&http.Cookie{
			Name:     service.SessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

// LogoutHandler clears the session cookie and returns to the root.
func LogoutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetCookie(&http.Cookie{
			Name:     service.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return c.Redirect(http.StatusSeeOther, "/")
	}
}
