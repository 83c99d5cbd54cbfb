package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(testAuthConfig())
	token, err := svc.GenerateToken(&User{ID: "u-1", Name: "Dana"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.GetUserID())
	assert.Equal(t, "Dana", claims.Name)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService(testAuthConfig())
	token, err := svc.GenerateToken(&User{ID: "u-1"})
	require.NoError(t, err)

	other := testAuthConfig()
	other.JWTSecret = "different-secret"
	_, err = NewJWTService(other).ValidateToken(token)
	assert.ErrorContains(t, err, "invalid token signature")

	later := NewJWTService(testAuthConfig())
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.ValidateToken(token)
	assert.ErrorContains(t, err, "token expired")

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
	_, err = svc.ValidateToken("a.b")
	assert.ErrorContains(t, err, "malformed token")
}

func TestUserService(t *testing.T) {
	users := NewUserService(testAuthConfig().BcryptCost)
	u, err := users.Register("Dana", " Dana@Example.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", u.Email)

	_, err = users.Register("Again", "dana@example.com", "pw")
	var exists *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &exists)

	got, err := users.Login("DANA@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.Login("dana@example.com", "bad")
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}
