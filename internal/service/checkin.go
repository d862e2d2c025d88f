// File: internal/service/checkin.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/model"
	"asistencia-qr/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// CheckinStatus is the tagged outcome of a scan.
type CheckinStatus string

const (
	CheckinRegistered        CheckinStatus = "registered"
	CheckinAlreadyRegistered CheckinStatus = "already_registered"
	CheckinInvalid           CheckinStatus = "invalid"
	CheckinFailed            CheckinStatus = "failed"
)

// CheckinResult is what the presentation layer renders. UserID is zero unless
// the token resolved to a user.
type CheckinResult struct {
	Status      CheckinStatus
	UserID      int
	DisplayName string
	Message     string
}

// DisplayName joins the user's name parts with single spaces, skipping empty
// parts, and falls back to the login name when no part is set.
func DisplayName(u *model.User) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.PaternalLastName, u.MaternalLastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return u.Username
	}
	return strings.Join(parts, " ")
}

// RecordCheckin resolves a scanned token and records at most one attendance
// event for the owner on the current calendar day. An unknown token and an
// administrator's token produce the same Invalid result so tokens cannot be
// probed for role.
func RecordCheckin(ctx context.Context, db database.DB, token string) CheckinResult {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return CheckinResult{
			Status:  CheckinInvalid,
			Message: "Código QR inválido o el usuario es administrador.",
		}
	}

	user, err := store.GetUserByToken(ctx, db, parsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CheckinResult{
				Status:  CheckinInvalid,
				Message: "Código QR inválido o el usuario es administrador.",
			}
		}
		log.Error().Err(err).Msg("checkin: token lookup failed")
		return CheckinResult{
			Status:  CheckinFailed,
			Message: "Error al registrar asistencia.",
		}
	}

	name := DisplayName(user)

	exists, err := store.HasCheckinOn(ctx, db, user.ID, timeNow())
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("checkin: existence query failed")
		return CheckinResult{
			Status:      CheckinFailed,
			UserID:      user.ID,
			DisplayName: name,
			Message:     "Error al registrar asistencia.",
		}
	}
	if exists {
		return alreadyRegistered(user.ID, name)
	}

	inserted, err := store.InsertCheckin(ctx, db, user.ID)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("checkin: insert failed")
		return CheckinResult{
			Status:      CheckinFailed,
			UserID:      user.ID,
			DisplayName: name,
			Message:     "Error al registrar asistencia.",
		}
	}
	if !inserted {
		// Lost a race with a concurrent scan; the unique index kept the
		// at-most-once-per-day invariant.
		return alreadyRegistered(user.ID, name)
	}

	log.Info().Int("user_id", user.ID).Str("name", name).Msg("checkin registered")
	return CheckinResult{
		Status:      CheckinRegistered,
		UserID:      user.ID,
		DisplayName: name,
		Message:     fmt.Sprintf("¡Asistencia registrada con éxito para %s!", name),
	}
}

func alreadyRegistered(userID int, name string) CheckinResult {
	return CheckinResult{
		Status:      CheckinAlreadyRegistered,
		UserID:      userID,
		DisplayName: name,
		Message:     fmt.Sprintf("¡Atención %s! Ya registraste tu asistencia el día de hoy.", name),
	}
}
