// File: internal/handler/admin/export.go
package admin

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/dto"
	"asistencia-qr/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var (
	monthlyReport = service.MonthlyReport
	writeCSV      = service.WriteCSV
)

// ExportHandler serves a member's month as a CSV attachment: a metadata block
// (employee, month, own-attendance count, system-active-day count) followed
// by one classified row per calendar day.
// @Summary     Exportar asistencia mensual como CSV
// @Tags        attendance
// @Produce     text/csv
// @Param       user_id path int true "ID del usuario"
// @Param       year    path int true "Año"
// @Param       month   path int true "Mes (1-12)"
// @Success     200 {string} string "archivo CSV"
// @Failure     400 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /admin/attendance/export/{user_id}/{year}/{month} [get]
func ExportHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err1 := strconv.Atoi(c.Param("user_id"))
		year, err2 := strconv.Atoi(c.Param("year"))
		month, err3 := strconv.Atoi(c.Param("month"))
		if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "Parámetros inválidos."})
		}

		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "Usuario no encontrado."})
			}
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error interno del servidor al generar el CSV."})
		}

		report, err := monthlyReport(ctx, db, userID, year, month)
		if err != nil {
			log.Error().Err(err).Int("user_id", userID).Msg("export: report failed")
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error interno del servidor al generar el CSV."})
		}
		active, err := systemActiveDays(ctx, db, year, month)
		if err != nil {
			log.Error().Err(err).Msg("export: active days failed")
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error interno del servidor al generar el CSV."})
		}

		var buf bytes.Buffer
		if err := writeCSV(&buf, service.ReportName(user), year, month, report, len(active)); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error interno del servidor al generar el CSV."})
		}

		h := c.Response().Header()
		h.Set("Content-Disposition", "attachment; filename="+service.CSVFilename(userID, year, month))
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
	}
}
