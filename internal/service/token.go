// File: internal/service/token.go
package service

import (
	"context"
	"errors"
	"fmt"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/store"

	"github.com/google/uuid"
)

// ErrTokenExhausted means every generation attempt collided with an existing
// token. Callers surface it as a registration failure.
var ErrTokenExhausted = errors.New("could not generate a unique token")

const tokenMaxAttempts = 5

var newToken = uuid.New

// IssueToken generates a random token that no user holds yet, retrying a
// bounded number of times on collision. The caller persists it inside the
// same registration insert; nothing is written here.
func IssueToken(ctx context.Context, db database.DB) (uuid.UUID, error) {
	for attempt := 0; attempt < tokenMaxAttempts; attempt++ {
		token := newToken()
		exists, err := store.TokenExists(ctx, db, token)
		if err != nil {
			return uuid.Nil, fmt.Errorf("IssueToken: %w", err)
		}
		if !exists {
			return token, nil
		}
	}
	return uuid.Nil, ErrTokenExhausted
}
