// File: internal/handler/checkin/checkin.go
package checkin

import (
	"context"
	"net/http"
	"time"

	"asistencia-qr/internal/cache"
	"asistencia-qr/internal/database"
	"asistencia-qr/internal/service"
	"asistencia-qr/internal/view"
	"asistencia-qr/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var recordCheckin = service.RecordCheckin

// CheckinHandler performs a scan: it records the attendance event (at most
// one per user per day) and renders the self-contained result page. After a
// successful registration the cached monthly report for that user goes stale,
// so invalidation is handed to the worker pool off the request path.
func CheckinHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		res := recordCheckin(c.Request().Context(), db, c.Param("token"))

		if res.Status == service.CheckinRegistered {
			userID := res.UserID
			now := time.Now()
			wp.Submit(func() {
				key := cache.ReportKey(userID, now.Year(), int(now.Month()))
				if err := rdb.Del(context.Background(), key).Err(); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("report cache invalidation failed")
				}
			})
		}

		return c.Render(http.StatusOK, "checkin_result.html", view.NewCheckinPage(res))
	}
}
