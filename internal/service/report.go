// File: internal/service/report.go
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/model"
	"asistencia-qr/internal/store"
)

// DayStatus classifies one calendar day of a user's month. The three values
// separate "did not attend an active session" from "there was no session",
// which a plain present/absent flag cannot express.
type DayStatus string

const (
	// DayAttended: the user checked in that day.
	DayAttended DayStatus = "ASISTIO"
	// DayAbsent: somebody checked in that day, the day is not in the
	// future, and the user did not.
	DayAbsent DayStatus = "NO_ASISTIO"
	// DayNoSession: nobody checked in that day, or the day is in the future.
	DayNoSession DayStatus = "NADIE_ASISTIO"
)

// DayReport is one day of the monthly calendar.
type DayReport struct {
	Day         int
	Date        time.Time
	Weekday     string
	CheckinTime string // HH:MM:SS of the earliest check-in, empty unless attended
	Status      DayStatus
}

// Weekday names with Monday as day 0, matching the exported report layout.
var weekdayNames = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

const dateKeyLayout = "2006-01-02"

func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

// earliestByDay keeps the first (earliest) timestamp per calendar day. Input
// must be sorted ascending, which ListCheckinTimes guarantees.
func earliestByDay(times []time.Time) map[string]time.Time {
	earliest := make(map[string]time.Time, len(times))
	for _, t := range times {
		key := t.Format(dateKeyLayout)
		if _, ok := earliest[key]; !ok {
			earliest[key] = t
		}
	}
	return earliest
}

// MonthlyCheckins returns the earliest check-in per calendar day for the user
// in the given month, keyed by ISO date.
func MonthlyCheckins(ctx context.Context, db database.DB, userID, year, month int) (map[string]time.Time, error) {
	start, end := monthRange(year, month)
	times, err := store.ListCheckinTimes(ctx, db, userID, start, end)
	if err != nil {
		return nil, err
	}
	return earliestByDay(times), nil
}

// SystemActiveDays returns the ISO dates in the month on which any user
// checked in, sorted ascending.
func SystemActiveDays(ctx context.Context, db database.DB, year, month int) ([]string, error) {
	start, end := monthRange(year, month)
	days, err := store.SystemActiveDaysBetween(ctx, db, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Format(dateKeyLayout))
	}
	sort.Strings(out)
	return out, nil
}

// MonthlyReport classifies every day of the month for the user. Precedence is
// strict: attended first, then absent, then no-session; exactly one status
// holds per day.
func MonthlyReport(ctx context.Context, db database.DB, userID, year, month int) ([]DayReport, error) {
	start, end := monthRange(year, month)

	times, err := store.ListCheckinTimes(ctx, db, userID, start, end)
	if err != nil {
		return nil, err
	}
	attended := earliestByDay(times)

	activeDays, err := store.SystemActiveDaysBetween(ctx, db, start, end)
	if err != nil {
		return nil, err
	}
	active := make(map[string]struct{}, len(activeDays))
	for _, d := range activeDays {
		active[d.Format(dateKeyLayout)] = struct{}{}
	}

	now := timeNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	// Day 0 of the next month is the last day of this one; immune to DST
	// shortening the month's wall-clock span.
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
	report := make([]DayReport, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		key := date.Format(dateKeyLayout)

		entry := DayReport{
			Day:     day,
			Date:    date,
			Weekday: weekdayNames[(int(date.Weekday())+6)%7],
		}

		_, isActive := active[key]
		switch {
		case attendedAt(attended, key, &entry):
			entry.Status = DayAttended
		case isActive && !date.After(today):
			entry.Status = DayAbsent
		default:
			entry.Status = DayNoSession
		}
		report = append(report, entry)
	}
	return report, nil
}

func attendedAt(attended map[string]time.Time, key string, entry *DayReport) bool {
	t, ok := attended[key]
	if !ok {
		return false
	}
	entry.CheckinTime = t.Format("15:04:05")
	return true
}

// ReportName formats a user for report headers and the grouped listing:
// "PATERNAL MATERNAL, FIRST".
func ReportName(u *model.User) string {
	return fmt.Sprintf("%s %s, %s", u.PaternalLastName, u.MaternalLastName, u.FirstName)
}

// CSVFilename is the fixed attachment name for an individual export.
func CSVFilename(userID, year, month int) string {
	return fmt.Sprintf("reporte_asistencia_%d_%d_%d_final.csv", userID, year, month)
}

// WriteCSV serializes a monthly report: a metadata block, a blank separator,
// a header row and one row per day.
func WriteCSV(w io.Writer, employee string, year, month int, days []DayReport, activeDayCount int) error {
	attendedCount := 0
	for _, d := range days {
		if d.Status == DayAttended {
			attendedCount++
		}
	}

	cw := csv.NewWriter(w)
	rows := [][]string{
		{"REPORTE DE ASISTENCIA INDIVIDUAL", "", "", "", ""},
		{"EMPLEADO:", employee, "MES:", fmt.Sprintf("%d/%d", month, year)},
		{"ASISTENCIAS PROPIAS:", strconv.Itoa(attendedCount)},
		{"DIAS ACTIVOS DEL SISTEMA:", strconv.Itoa(activeDayCount)},
		{},
		{"Dia", "Dia Semana", "Fecha (YYYY-MM-DD)", "Hora de Registro", "Estado de Asistencia"},
	}
	for _, d := range days {
		rows = append(rows, []string{
			strconv.Itoa(d.Day),
			d.Weekday,
			d.Date.Format(dateKeyLayout),
			d.CheckinTime,
			string(d.Status),
		})
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	return nil
}
