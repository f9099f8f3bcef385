package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arnavshah/staffing-api-go/pkg/database"
)

func newTestAuth() *Authenticator {
	a := New("jwt-secret", "master-secret")
	a.Cost = bcrypt.MinCost
	return a
}

func TestPasswordHash(t *testing.T) {
	a := newTestAuth()
	hash, err := a.HashPassword("hunter2")
	require.NoError(t, err)

	require.True(t, CheckPasswordHash("hunter2", hash))
	require.False(t, CheckPasswordHash("hunter3", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	a := newTestAuth()
	token, err := a.CreateToken("admin")
	require.NoError(t, err)

	claims, err := a.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)
	require.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenRejections(t *testing.T) {
	a := newTestAuth()
	token, err := a.CreateToken("admin")
	require.NoError(t, err)

	other := New("other-secret", "master-secret")
	_, err = other.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	expired := newTestAuth()
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	old, err := expired.CreateToken("admin")
	require.NoError(t, err)
	_, err = a.VerifyToken(old)
	require.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = a.VerifyToken(none)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAPIKeyRoundTrip(t *testing.T) {
	a := newTestAuth()
	key := a.GenerateAPIKey("acme.store")
	require.Len(t, key, len("acme.store")+1+64)

	name, err := a.VerifyAPIKey(key)
	require.NoError(t, err)
	require.Equal(t, "acme.store", name)
}

func TestAPIKeyRejections(t *testing.T) {
	a := newTestAuth()
	valid := a.GenerateAPIKey("acme")

	for _, key := range []string{"", "acme", "acme.", ".abc", "acme.deadbeef", "other" + valid[len("acme"):]} {
		_, err := a.VerifyAPIKey(key)
		require.ErrorIs(t, err, ErrInvalidKey, key)
	}

	_, err := New("jwt-secret", "rotated").VerifyAPIKey(valid)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestKeyPreview(t *testing.T) {
	require.Equal(t, "****", KeyPreview("short"))
	require.Equal(t, "acm...cdef", KeyPreview("acme.0123456789abcdef"))
}

func TestEnsureAdminExists(t *testing.T) {
	db, err := database.InitDB(database.Config{Path: filepath.Join(t.TempDir(), "auth.db")})
	require.NoError(t, err)
	a := newTestAuth()

	created, err := a.EnsureAdminExists(db, "root", "s3cret")
	require.NoError(t, err)
	require.True(t, created)

	created, err = a.EnsureAdminExists(db, "second", "other")
	require.NoError(t, err)
	require.False(t, created)

	var users []database.MasterUser
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	require.Equal(t, "root", users[0].Username)
	require.True(t, CheckPasswordHash("s3cret", users[0].PasswordHash))
}
