package middleware

import (
	"net/http"

	"asistencia-qr/internal/service"

	"github.com/labstack/echo/v4"
)

// ContextUserKey is where session claims live on the echo context.
const ContextUserKey = "user"

// ClaimsFromCookie reads and verifies the session cookie. It returns an error
// when the cookie is missing or the token does not verify.
func ClaimsFromCookie(c echo.Context) (*service.SessionClaims, error) {
	cookie, err := c.Cookie(service.SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	claims, err := service.VerifySessionToken(cookie.Value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
	}
	return claims, nil
}

// SessionClaims returns the claims stored by RequireSession, or nil.
func SessionClaims(c echo.Context) *service.SessionClaims {
	claims, _ := c.Get(ContextUserKey).(*service.SessionClaims)
	return claims
}

// RequireSession redirects anonymous requests to the login page. Verified
// claims are stored on the context for the handler.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := ClaimsFromCookie(c)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		c.Set(ContextUserKey, claims)
		return next(c)
	}
}

// RequireAdmin fails closed with 403 before any store access: anonymous
// requests and non-administrator sessions both get the same answer.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := ClaimsFromCookie(c)
		if err != nil || !claims.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Acceso denegado.")
		}
		c.Set(ContextUserKey, claims)
		return next(c)
	}
}

// SecurityHeaders sets the content-security policy the scanner page needs
// (inline scripts, the cdnjs copy of html5-qrcode, camera media) plus
// nosniff.
func SecurityHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Content-Security-Policy",
			"default-src 'self';"+
				"script-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com;"+
				"style-src 'self' 'unsafe-inline';"+
				"img-src 'self' data:;"+
				"connect-src 'self';"+
				"media-src 'self' blob:;")
		h.Set("X-Content-Type-Options", "nosniff")
		return next(c)
	}
}
