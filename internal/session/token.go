package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from a session token without the signing key.
type TokenInfo struct {
	UserID    string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken decodes JWT claims without verifying the signature. It is only
// used for display; sessions are never rejected based on it.
func InspectToken(token string) (*TokenInfo, error) {
	if token == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("token is not a JWT: %w", err)
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}

	for _, key := range []string{"user_id", "userId", "id"} {
		if v, ok := claims[key].(string); ok && v != "" {
			info.UserID = v
			break
		}
	}
	if info.UserID == "" {
		info.UserID = info.Subject
	}

	return info, nil
}

// Expired reports whether the token carries an expiry before now.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
