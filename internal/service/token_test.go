package service

import (
	"context"
	"errors"
	"testing"

	"asistencia-qr/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueToken(t *testing.T) {
	t.Cleanup(restoreGlobals)

	fresh := uuid.New()
	taken := uuid.New()

	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			return boolRow{v: args[0].(uuid.UUID) == taken}
		},
	}

	queue := []uuid.UUID{taken, fresh}
	newToken = func() uuid.UUID {
		tok := queue[0]
		queue = queue[1:]
		return tok
	}
	tok, err := IssueToken(context.Background(), db)
	require.NoError(t, err)
	require.Equal(t, fresh, tok)

	newToken = func() uuid.UUID { return taken }
	_, err = IssueToken(context.Background(), db)
	require.ErrorIs(t, err, ErrTokenExhausted)

	db.QueryRowFn = func(_ context.Context, _ string, _ ...any) pgx.Row {
		return boolRow{err: errors.New("db down")}
	}
	_, err = IssueToken(context.Background(), db)
	require.Error(t, err)
}
