// File: internal/router/router.go
package router

import (
	"asistencia-qr/internal/cache"
	"asistencia-qr/internal/config"
	"asistencia-qr/internal/database"
	"asistencia-qr/internal/handler"
	"asistencia-qr/internal/handler/admin"
	"asistencia-qr/internal/handler/auth"
	"asistencia-qr/internal/handler/checkin"
	"asistencia-qr/internal/middleware"
	"asistencia-qr/internal/worker"

	"github.com/labstack/echo/v4"
)

// Setup registers every route of the application.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool, cfg *config.Config) {
	e.GET("/", handler.HomeHandler())

	e.GET("/login", auth.LoginPageHandler())
	e.POST("/login", auth.LoginHandler(db, cfg.SessionTTL))
	e.GET("/register", auth.RegisterPageHandler())
	e.POST("/register", auth.RegisterHandler(db))
	e.GET("/logout", auth.LogoutHandler())

	e.GET("/qrcode", handler.QRCodeHandler(db, cfg.BaseURL), middleware.RequireSession)
	e.GET("/checkin/:token", checkin.CheckinHandler(db, rdb, wp))

	adm := e.Group("/admin", middleware.RequireAdmin)
	adm.GET("", admin.DashboardHandler())
	adm.GET("/scanner", admin.ScannerHandler())
	adm.GET("/attendance", admin.AttendanceHandler(db))
	adm.GET("/attendance/individual", admin.IndividualReportHandler(db))
	adm.POST("/attendance/individual", admin.IndividualReportHandler(db))
	adm.GET("/attendance/export/:user_id/:year/:month", admin.ExportHandler(db))

	e.GET("/api/attendance/user/:user_id/:year/:month", admin.AttendanceAPIHandler(db, rdb), middleware.RequireAdmin)
}
