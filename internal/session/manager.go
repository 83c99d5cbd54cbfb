package session

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/jonathan/hiring-assistant/internal/schemas"
	"github.com/jonathan/hiring-assistant/internal/types"
)

// StorageKey is the fixed key the session record is persisted under.
const StorageKey = "user"

// State is the authentication state that gates the workspace.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Session is the authenticated-user record.
type Session struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Manager owns the current Session and its persisted copy. It is the only
// component that mutates either.
type Manager struct {
	storage Storage
	verbose bool

	mu        sync.RWMutex
	current   *Session
	listeners []func(State)
}

// NewManager creates a Manager in the Unauthenticated state. Call Restore to
// pick up a previously persisted session.
func NewManager(storage Storage, verbose bool) *Manager {
	return &Manager{storage: storage, verbose: verbose}
}

// Restore loads the persisted session. An absent, unreadable or malformed
// record yields nil and leaves the manager Unauthenticated; none of these are
// reported as errors. The token is trusted without contacting the backend.
func (m *Manager) Restore() *Session {
	s := m.readPersisted()

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	if s != nil {
		m.notify(Authenticated)
		return copySession(s)
	}
	return nil
}

func (m *Manager) readPersisted() *Session {
	raw, ok, err := m.storage.GetItem(StorageKey)
	if err != nil {
		m.logf("discarding persisted session: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	if err := schemas.Validate(schemas.Session, []byte(raw)); err != nil {
		m.logf("discarding malformed persisted session: %v", err)
		return nil
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		m.logf("discarding malformed persisted session: %v", err)
		return nil
	}
	return &s
}

// Login records a new session in memory and in durable storage, replacing any
// previous one. The in-memory transition happens even if persisting fails; the
// persistence error is returned so the caller can warn.
func (m *Manager) Login(token string, user types.User) (*Session, error) {
	s := &Session{Name: user.Name, Token: token}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	m.notify(Authenticated)

	data, err := json.Marshal(s)
	if err != nil {
		return copySession(s), fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := m.storage.SetItem(StorageKey, string(data)); err != nil {
		return copySession(s), fmt.Errorf("failed to persist session: %w", err)
	}

	m.logf("logged in as %s", user.Name)
	return copySession(s), nil
}

// Logout clears the in-memory session and removes the persisted copy. It is
// local only; the token is not revoked on the backend.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	m.notify(Unauthenticated)

	if err := m.storage.RemoveItem(StorageKey); err != nil {
		return fmt.Errorf("failed to remove persisted session: %w", err)
	}
	m.logf("logged out")
	return nil
}

// Current returns a copy of the active session, or nil.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySession(m.current)
}

// Token returns the active token, or "" when Unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// State reports whether a session is active.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Unauthenticated
	}
	return Authenticated
}

// OnChange registers fn to be called after every transition.
func (m *Manager) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify(state State) {
	m.mu.RLock()
	listeners := slices.Clone(m.listeners)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func (m *Manager) logf(format string, args ...any) {
	if m.verbose {
		log.Printf("[SESSION] "+format, args...)
	}
}

func copySession(s *Session) *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
