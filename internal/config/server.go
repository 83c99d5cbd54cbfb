package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// ServerAuthConfig holds token and password settings for the stub backend.
type ServerAuthConfig struct {
	JWTSecret          string
	JWTExpirationHours int
	BcryptCost         int

	// GeneratedSecret is true when JWT_SECRET was unset and a random secret was used.
	GeneratedSecret bool
}

// NewServerAuthConfig reads JWT_SECRET, JWT_EXPIRATION_HOURS (default: 24)
// and BCRYPT_COST (default: bcrypt.DefaultCost). A missing secret is replaced
// by a random one, so tokens do not survive a restart.
func NewServerAuthConfig() (*ServerAuthConfig, error) {
	cfg := &ServerAuthConfig{
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTExpirationHours: 24,
		BcryptCost:         bcrypt.DefaultCost,
	}

	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		cfg.JWTExpirationHours = hours
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
		}
		cfg.BcryptCost = cost
	}

	if cfg.JWTSecret == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		cfg.JWTSecret = hex.EncodeToString(secret)
		cfg.GeneratedSecret = true
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *ServerAuthConfig) normalize() error {
	if c.JWTExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.JWTExpirationHours)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be %d-14)", c.BcryptCost, bcrypt.MinCost)
	}
	return nil
}
