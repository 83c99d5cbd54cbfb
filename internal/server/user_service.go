package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is an account held by the stub backend.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// UserService keeps accounts in memory. Nothing survives a restart.
type UserService struct {
	bcryptCost int

	mu      sync.RWMutex
	byEmail map[string]*User
}

// NewUserService creates an empty user store hashing with the given bcrypt cost.
func NewUserService(bcryptCost int) *UserService {
	return &UserService{bcryptCost: bcryptCost, byEmail: make(map[string]*User)}
}

// Register creates a new user with password authentication
func (s *UserService) Register(name, email, password string) (*User, error) {
	key := normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[key]; exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        key,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.byEmail[key] = user
	return user, nil
}

// Login authenticates a user. Unknown emails and wrong passwords produce the
// same error.
func (s *UserService) Login(email, password string) (*User, error) {
	s.mu.RLock()
	user, ok := s.byEmail[normalizeEmail(email)]
	s.mu.RUnlock()

	if !ok {
		return nil, &ErrInvalidCredentials{}
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, &ErrInvalidCredentials{}
	}
	return user, nil
}

// Count returns the number of registered users.
func (s *UserService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
