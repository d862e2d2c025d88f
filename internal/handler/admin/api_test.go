package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asistencia-qr/internal/cache"
	"asistencia-qr/internal/database"
	"asistencia-qr/internal/dto"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func apiCtx(t *testing.T, userID, year, month string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	ctx, rec := newCtx(t, http.MethodGet, "/api/attendance/user/"+userID+"/"+year+"/"+month, "")
	ctx.SetPath("/api/attendance/user/:user_id/:year/:month")
	ctx.SetParamNames("user_id", "year", "month")
	ctx.SetParamValues(userID, year, month)
	return ctx, rec
}

func TestAttendanceAPIHandlerParams(t *testing.T) {
	t.Cleanup(restoreStubs)
	h := AttendanceAPIHandler(&database.FakeDB{}, &cache.FakeCache{})

	for _, params := range [][3]string{
		{"abc", "2025", "3"},
		{"7", "abc", "3"},
		{"7", "2025", "abc"},
		{"7", "2025", "0"},
		{"7", "2025", "13"},
	} {
		ctx, rec := apiCtx(t, params[0], params[1], params[2])
		require.NoError(t, h(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Parámetros inválidos.")
	}
}

func TestAttendanceAPIHandlerCacheHit(t *testing.T) {
	t.Cleanup(restoreStubs)

	cached := `{"attended_days":["2025-03-05"],"attended_times":{"2025-03-05":"08:15"},"system_active_days":["2025-03-05"]}`
	rdb := &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			require.Equal(t, cache.ReportKey(7, 2025, 3), key)
			return redis.NewStringResult(cached, nil)
		},
	}

	// No store stubs installed: a cache hit must not reach the database.
	ctx, rec := apiCtx(t, "7", "2025", "3")
	require.NoError(t, AttendanceAPIHandler(&database.FakeDB{}, rdb)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, cached, rec.Body.String())
}

func TestAttendanceAPIHandlerCacheMiss(t *testing.T) {
	t.Cleanup(restoreStubs)

	monthlyCheckins = func(_ context.Context, _ database.DB, userID, year, month int) (map[string]time.Time, error) {
		require.Equal(t, 7, userID)
		require.Equal(t, 2025, year)
		require.Equal(t, 3, month)
		return map[string]time.Time{
			"2025-03-05": time.Date(2025, 3, 5, 8, 15, 0, 0, time.Local),
			"2025-03-03": time.Date(2025, 3, 3, 9, 0, 0, 0, time.Local),
		}, nil
	}
	systemActiveDays = func(context.Context, database.DB, int, int) ([]string, error) {
		return []string{"2025-03-03", "2025-03-05", "2025-03-06"}, nil
	}

	var setKey string
	var setPayload []byte
	rdb := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
			setKey = key
			setPayload = value.([]byte)
			require.Equal(t, time.Minute, ttl)
			return redis.NewStatusResult("OK", nil)
		},
	}

	ctx, rec := apiCtx(t, "7", "2025", "3")
	require.NoError(t, AttendanceAPIHandler(&database.FakeDB{}, rdb)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AttendanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []string{"2025-03-03", "2025-03-05"}, resp.AttendedDays)
	require.Equal(t, map[string]string{"2025-03-03": "09:00", "2025-03-05": "08:15"}, resp.AttendedTimes)
	require.Equal(t, []string{"2025-03-03", "2025-03-05", "2025-03-06"}, resp.SystemActiveDays)

	require.Equal(t, cache.ReportKey(7, 2025, 3), setKey)
	require.JSONEq(t, rec.Body.String(), string(setPayload))
}

func TestAttendanceAPIHandlerErrors(t *testing.T) {
	t.Cleanup(restoreStubs)

	rdb := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
	}

	monthlyCheckins = func(context.Context, database.DB, int, int, int) (map[string]time.Time, error) {
		return nil, errors.New("db down")
	}
	ctx, rec := apiCtx(t, "7", "2025", "3")
	require.NoError(t, AttendanceAPIHandler(&database.FakeDB{}, rdb)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Error interno del servidor al obtener datos de asistencia.")

	monthlyCheckins = func(context.Context, database.DB, int, int, int) (map[string]time.Time, error) {
		return map[string]time.Time{}, nil
	}
	systemActiveDays = func(context.Context, database.DB, int, int) ([]string, error) {
		return nil, errors.New("db down")
	}
	ctx, rec = apiCtx(t, "7", "2025", "3")
	require.NoError(t, AttendanceAPIHandler(&database.FakeDB{}, rdb)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAttendanceAPIHandlerCacheSetFailure(t *testing.T) {
	t.Cleanup(restoreStubs)

	monthlyCheckins = func(context.Context, database.DB, int, int, int) (map[string]time.Time, error) {
		return map[string]time.Time{}, nil
	}
	systemActiveDays = func(context.Context, database.DB, int, int) ([]string, error) {
		return []string{}, nil
	}
	rdb := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("redis down"))
		},
	}

	// A failed Set degrades to an uncached 200.
	ctx, rec := apiCtx(t, "7", "2025", "3")
	require.NoError(t, AttendanceAPIHandler(&database.FakeDB{}, rdb)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
}
