package admin

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestIndividualReportHandlerSearch(t *testing.T) {
	t.Cleanup(restoreStubs)
	h := IndividualReportHandler(&database.FakeDB{})

	// blank page on GET
	ctx, rec := newCtx(t, http.MethodGet, "/admin/attendance/individual", "")
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Reporte Individual de Asistencia")

	// POST runs the search and lists matches
	searchUsers = func(_ context.Context, _ database.DB, term string) ([]model.User, error) {
		require.Equal(t, "gar", term)
		return []model.User{
			{ID: 3, FirstName: "Maria", PaternalLastName: "Garcia", MaternalLastName: "Lopez", PhoneNumber: "5512345678"},
		}, nil
	}
	ctx, rec = newCtx(t, http.MethodPost, "/admin/attendance/individual", "search_term=gar")
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Garcia Lopez, Maria")
	require.Contains(t, rec.Body.String(), "5512345678")

	// search failure
	searchUsers = func(context.Context, database.DB, string) ([]model.User, error) {
		return nil, errors.New("db down")
	}
	ctx, rec = newCtx(t, http.MethodPost, "/admin/attendance/individual", "search_term=gar")
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIndividualReportHandlerSelection(t *testing.T) {
	t.Cleanup(restoreStubs)
	h := IndividualReportHandler(&database.FakeDB{})

	getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
		require.Equal(t, 3, id)
		return &model.User{ID: 3, FirstName: "Maria", PaternalLastName: "Garcia", MaternalLastName: "Lopez"}, nil
	}
	countCheckinsByUser = func(context.Context, database.DB, int) (int, error) {
		return 12, nil
	}
	ctx, rec := newCtx(t, http.MethodGet, "/admin/attendance/individual?user_id=3", "")
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Garcia Lopez, Maria")
	require.Contains(t, rec.Body.String(), "12")

	// unknown id renders the page without a calendar
	getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
		return nil, pgx.ErrNoRows
	}
	ctx, rec = newCtx(t, http.MethodGet, "/admin/attendance/individual?user_id=99", "")
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	// lookup failure
	getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
		return nil, errors.New("db down")
	}
	ctx, rec = newCtx(t, http.MethodGet, "/admin/attendance/individual?user_id=3", "")
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// non-numeric id is ignored
	ctx, rec = newCtx(t, http.MethodGet, "/admin/attendance/individual?user_id=abc", "")
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
}
