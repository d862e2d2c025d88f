// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/dto"
	"asistencia-qr/internal/model"
	"asistencia-qr/internal/service"
	"asistencia-qr/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var (
	issueToken   = service.IssueToken
	hashPassword = service.HashPassword
	createUser   = store.CreateUser
)

func renderRegister(c echo.Context, status int, errMsg string, form dto.RegisterForm) error {
	// The submitted values ride along so the form is not wiped on error.
	return c.Render(status, "register.html", echo.Map{"Error": errMsg, "Form": form})
}

// registerErrorMessage translates a validation failure into the inline form
// message.
func registerErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "numeric":
			return "El número de teléfono debe contener solo dígitos."
		case "eqfield":
			return "Las contraseñas no coinciden. Por favor, repítela correctamente."
		}
	}
	return "Todos los campos excepto el número de teléfono son requeridos."
}

// RegisterPageHandler serves the registration form.
func RegisterPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return renderRegister(c, http.StatusOK, "", dto.RegisterForm{})
	}
}

// RegisterHandler creates a member account: validated form data, a freshly
// issued unique token and a bcrypt password hash, persisted in one insert.
// On success it redirects to the login form.
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterForm
		if err := c.Bind(&req); err != nil {
			return renderRegister(c, http.StatusBadRequest, "Solicitud inválida.", req)
		}
		if err := c.Validate(&req); err != nil {
			return renderRegister(c, http.StatusBadRequest, registerErrorMessage(err), req)
		}

		ctx := c.Request().Context()

		token, err := issueToken(ctx, db)
		if err != nil {
			if errors.Is(err, service.ErrTokenExhausted) {
				return renderRegister(c, http.StatusInternalServerError,
					"No se pudo generar un código único. Inténtalo de nuevo.", req)
			}
			log.Error().Err(err).Msg("register: token issuance failed")
			return renderRegister(c, http.StatusInternalServerError, "Ocurrió un error al registrar el usuario.", req)
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return renderRegister(c, http.StatusInternalServerError, "Ocurrió un error al registrar el usuario.", req)
		}

		user := &model.User{
			Username:         req.Username,
			PasswordHash:     hash,
			IsAdmin:          false,
			Token:            &token,
			FirstName:        req.FirstName,
			PaternalLastName: req.PaternalLastName,
			MaternalLastName: req.MaternalLastName,
			Gender:           req.Gender,
			PhoneNumber:      req.PhoneNumber,
		}
		if _, err := createUser(ctx, db, user); err != nil {
			if errors.Is(err, store.ErrUsernameTaken) {
				return renderRegister(c, http.StatusConflict,
					fmt.Sprintf("El usuario %s ya está registrado.", req.Username), req)
			}
			log.Error().Err(err).Msg("register: insert failed")
			return renderRegister(c, http.StatusInternalServerError, "Ocurrió un error al registrar el usuario.", req)
		}

		return c.Redirect(http.StatusSeeOther, "/login")
	}
}
