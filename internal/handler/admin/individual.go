// File: internal/handler/admin/individual.go
package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/dto"
	"asistencia-qr/internal/service"
	"asistencia-qr/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	searchUsers         = store.SearchUsers
	getUserByID         = store.GetUserByID
	countCheckinsByUser = store.CountCheckinsByUser
)

type searchResult struct {
	ID       int
	FullName string
	Phone    string
}

type selectedUser struct {
	ID       int
	FullName string
}

// IndividualReportHandler combines the member search (POST) with the selected
// member's calendar view (user_id query parameter): total historical
// check-ins plus the calendar the page fetches from the JSON API.
func IndividualReportHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		now := time.Now()
		data := echo.Map{
			"Results":    []searchResult(nil),
			"Selected":   (*selectedUser)(nil),
			"TotalCount": 0,
			"Year":       now.Year(),
			"Month":      int(now.Month()),
		}

		if c.Request().Method == http.MethodPost {
			var req dto.SearchForm
			if err := c.Bind(&req); err != nil {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "Solicitud inválida."})
			}
			users, err := searchUsers(ctx, db, req.SearchTerm)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error interno del servidor."})
			}
			results := make([]searchResult, 0, len(users))
			for i := range users {
				results = append(results, searchResult{
					ID:       users[i].ID,
					FullName: service.ReportName(&users[i]),
					Phone:    users[i].PhoneNumber,
				})
			}
			data["Results"] = results
		}

		if idParam := c.QueryParam("user_id"); idParam != "" {
			userID, err := strconv.Atoi(idParam)
			if err == nil {
				user, err := getUserByID(ctx, db, userID)
				switch {
				case errors.Is(err, pgx.ErrNoRows):
					// Unknown id: render the page without a calendar.
				case err != nil:
					return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error interno del servidor."})
				default:
					total, err := countCheckinsByUser(ctx, db, user.ID)
					if err != nil {
						return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error interno del servidor."})
					}
					data["Selected"] = &selectedUser{ID: user.ID, FullName: service.ReportName(user)}
					data["TotalCount"] = total
				}
			}
		}

		return c.Render(http.StatusOK, "admin_individual_report.html", data)
	}
}
