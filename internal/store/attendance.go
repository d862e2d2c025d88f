package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asistencia-qr/internal/database"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// InsertCheckin records a check-in for userID with the server clock. The
// unique index on (user_id, day) makes duplicate scans a no-op: the return
// value is false when today's row already existed, so two concurrent scans
// can never both register.
func InsertCheckin(ctx context.Context, db database.DB, userID int) (bool, error) {
	tag, err := db.Exec(ctx,
		`INSERT INTO attendance (user_id) VALUES ($1)
		 ON CONFLICT (user_id, ((check_in_time)::date)) DO NOTHING`,
		userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return false, nil
		}
		return false, fmt.Errorf("InsertCheckin: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// HasCheckinOn reports whether the user already has a check-in on the
// calendar day of the given time.
func HasCheckinOn(ctx context.Context, db database.DB, userID int, day time.Time) (bool, error) {
	row := db.QueryRow(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM attendance
		     WHERE user_id = $1 AND check_in_time::date = $2::date
		 )`,
		userID, day,
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("HasCheckinOn: %w", err)
	}
	return exists, nil
}

// ListCheckinTimes returns the user's check-in timestamps in [from, to),
// ordered ascending so the first entry per day is the earliest.
func ListCheckinTimes(ctx context.Context, db database.DB, userID int, from, to time.Time) ([]time.Time, error) {
	rows, err := db.Query(ctx,
		`SELECT check_in_time FROM attendance
		 WHERE user_id = $1 AND check_in_time >= $2 AND check_in_time < $3
		 ORDER BY check_in_time ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCheckinTimes: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("ListCheckinTimes: %w", err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCheckinTimes: %w", err)
	}
	return times, nil
}

// SystemActiveDaysBetween returns the distinct calendar days in [from, to) on
// which any user checked in.
func SystemActiveDaysBetween(ctx context.Context, db database.DB, from, to time.Time) ([]time.Time, error) {
	rows, err := db.Query(ctx,
		`SELECT DISTINCT check_in_time::date FROM attendance
		 WHERE check_in_time >= $1 AND check_in_time < $2`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("SystemActiveDaysBetween: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("SystemActiveDaysBetween: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SystemActiveDaysBetween: %w", err)
	}
	return days, nil
}

// CountCheckinsByUser returns the user's historical check-in total.
func CountCheckinsByUser(ctx context.Context, db database.DB, userID int) (int, error) {
	row := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance WHERE user_id = $1`,
		userID,
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("CountCheckinsByUser: %w", err)
	}
	return count, nil
}

// CheckinEntry is one row of the full attendance listing, joined with the
// owning user's name fields.
type CheckinEntry struct {
	FirstName        string
	PaternalLastName string
	MaternalLastName string
	PhoneNumber      string
	CheckInTime      time.Time
}

// ListCheckinsWithUsers returns every check-in joined with its user, newest
// first, for the grouped admin listing.
func ListCheckinsWithUsers(ctx context.Context, db database.DB) ([]CheckinEntry, error) {
	rows, err := db.Query(ctx,
		`SELECT COALESCE(u.first_name, ''), COALESCE(u.paternal_last_name, ''),
		        COALESCE(u.maternal_last_name, ''), COALESCE(u.phone_number, ''),
		        a.check_in_time
		 FROM attendance a
		 JOIN users u ON a.user_id = u.id
		 ORDER BY a.check_in_time DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCheckinsWithUsers: %w", err)
	}
	defer rows.Close()

	var entries []CheckinEntry
	for rows.Next() {
		var e CheckinEntry
		if err := rows.Scan(&e.FirstName, &e.PaternalLastName, &e.MaternalLastName, &e.PhoneNumber, &e.CheckInTime); err != nil {
			return nil, fmt.Errorf("ListCheckinsWithUsers: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCheckinsWithUsers: %w", err)
	}
	return entries, nil
}
