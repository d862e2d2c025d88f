package service

import (
	"os"
	"testing"
	"time"

	"asistencia-qr/internal/model"

	"github.com/stretchr/testify/require"
)

func TestIssueSessionToken(t *testing.T) {
	t.Cleanup(restoreGlobals)

	os.Unsetenv("SESSION_SECRET")
	_, err := IssueSessionToken(model.User{}, time.Minute)
	require.Error(t, err)

	os.Setenv("SESSION_SECRET", "s")
	tok, err := IssueSessionToken(model.User{ID: 5, Username: "admin", IsAdmin: true}, time.Minute)
	require.NoError(t, err)

	claims, err := VerifySessionToken(tok)
	require.NoError(t, err)
	require.Equal(t, 5, claims.UserID)
	require.Equal(t, "admin", claims.Username)
	require.True(t, claims.IsAdmin)
}

func TestVerifySessionToken(t *testing.T) {
	t.Cleanup(restoreGlobals)

	os.Unsetenv("SESSION_SECRET")
	_, err := VerifySessionToken("abc")
	require.Error(t, err)

	os.Setenv("SESSION_SECRET", "s")
	_, err = VerifySessionToken("not-a-jwt")
	require.Error(t, err)

	// Signed under a different secret.
	os.Setenv("SESSION_SECRET", "other")
	tok, err := IssueSessionToken(model.User{ID: 1}, time.Minute)
	require.NoError(t, err)
	os.Setenv("SESSION_SECRET", "s")
	_, err = VerifySessionToken(tok)
	require.Error(t, err)

	// Expired.
	timeNow = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err = IssueSessionToken(model.User{ID: 1}, time.Minute)
	require.NoError(t, err)
	restoreGlobals()
	_, err = VerifySessionToken(tok)
	require.Error(t, err)
}
