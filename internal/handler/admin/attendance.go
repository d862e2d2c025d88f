// File: internal/handler/admin/attendance.go
package admin

import (
	"fmt"
	"net/http"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/dto"
	"asistencia-qr/internal/store"

	"github.com/labstack/echo/v4"
)

var listCheckinsWithUsers = store.ListCheckinsWithUsers

type attendanceRow struct {
	FullName string
	Time     string
	Phone    string
}

type attendanceDay struct {
	Date    string
	Entries []attendanceRow
}

// AttendanceHandler lists every check-in grouped by calendar day, newest day
// first.
func AttendanceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := listCheckinsWithUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error interno del servidor."})
		}

		// Entries arrive ordered by timestamp descending, so consecutive
		// rows with the same date form one group.
		var days []attendanceDay
		for _, e := range entries {
			date := e.CheckInTime.Format("2006-01-02")
			row := attendanceRow{
				FullName: fmt.Sprintf("%s %s, %s", e.PaternalLastName, e.MaternalLastName, e.FirstName),
				Time:     e.CheckInTime.Format("15:04:05"),
				Phone:    e.PhoneNumber,
			}
			if len(days) == 0 || days[len(days)-1].Date != date {
				days = append(days, attendanceDay{Date: date})
			}
			days[len(days)-1].Entries = append(days[len(days)-1].Entries, row)
		}

		return c.Render(http.StatusOK, "admin_attendance.html", echo.Map{"Days": days})
	}
}
