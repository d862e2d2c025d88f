// File: internal/handler/admin/api.go
package admin

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"asistencia-qr/internal/cache"
	"asistencia-qr/internal/database"
	"asistencia-qr/internal/dto"
	"asistencia-qr/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var (
	monthlyCheckins  = service.MonthlyCheckins
	systemActiveDays = service.SystemActiveDays
)

const reportCacheTTL = time.Minute

// AttendanceAPIHandler returns a member's month as JSON: attended days, the
// earliest check-in time per day and the system-active days. Payloads are
// cached briefly in Redis; check-ins invalidate the current month's entry.
// @Summary     Asistencia mensual de un usuario
// @Description Días asistidos, hora del primer registro por día y días activos del sistema
// @Tags        attendance
// @Produce     json
// @Param       user_id path int true "ID del usuario"
// @Param       year    path int true "Año"
// @Param       month   path int true "Mes (1-12)"
// @Success     200 {object} dto.AttendanceResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /api/attendance/user/{user_id}/{year}/{month} [get]
func AttendanceAPIHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err1 := strconv.Atoi(c.Param("user_id"))
		year, err2 := strconv.Atoi(c.Param("year"))
		month, err3 := strconv.Atoi(c.Param("month"))
		if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "Parámetros inválidos."})
		}

		ctx := c.Request().Context()
		key := cache.ReportKey(userID, year, month)
		if raw, err := rdb.Get(ctx, key).Result(); err == nil && raw != "" {
			return c.JSONBlob(http.StatusOK, []byte(raw))
		}

		attended, err := monthlyCheckins(ctx, db, userID, year, month)
		if err != nil {
			log.Error().Err(err).Int("user_id", userID).Msg("attendance api: report query failed")
			return c.JSON(http.StatusInternalServerError,
				dto.HTTPError{Message: "Error interno del servidor al obtener datos de asistencia."})
		}
		active, err := systemActiveDays(ctx, db, year, month)
		if err != nil {
			log.Error().Err(err).Msg("attendance api: active days query failed")
			return c.JSON(http.StatusInternalServerError,
				dto.HTTPError{Message: "Error interno del servidor al obtener datos de asistencia."})
		}

		resp := dto.AttendanceResponse{
			AttendedDays:     make([]string, 0, len(attended)),
			AttendedTimes:    make(map[string]string, len(attended)),
			SystemActiveDays: active,
		}
		for day, t := range attended {
			resp.AttendedDays = append(resp.AttendedDays, day)
			resp.AttendedTimes[day] = t.Format("15:04")
		}
		sort.Strings(resp.AttendedDays)

		payload, err := json.Marshal(resp)
		if err != nil {
			return c.JSON(http.StatusInternalServerError,
				dto.HTTPError{Message: "Error interno del servidor al obtener datos de asistencia."})
		}
		if err := rdb.Set(ctx, key, payload, reportCacheTTL).Err(); err != nil {
			// Cache failures degrade to uncached responses.
			log.Warn().Err(err).Str("key", key).Msg("attendance api: cache set failed")
		}
		return c.JSONBlob(http.StatusOK, payload)
	}
}
