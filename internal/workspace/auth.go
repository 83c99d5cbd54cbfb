package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/hiring-assistant/internal/api"
	"github.com/jonathan/hiring-assistant/internal/session"
	"github.com/jonathan/hiring-assistant/internal/types"
)

// RegisteredNotice is shown after a successful registration.
const RegisteredNotice = "Registration successful! Please login."

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not finished.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// ErrSessionNotSaved is returned by a login that authenticated the session
// but could not persist it. The session stays usable until the process exits.
var ErrSessionNotSaved = errors.New("logged in, but the session could not be saved")

// Mode selects which action the auth form submits.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// Credentials are the form fields. Name is only used when registering.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// AuthForm is the login/register form shown while unauthenticated.
type AuthForm struct {
	backend Backend
	session *session.Manager

	mu     sync.Mutex
	mode   Mode
	busy   bool
	err    string
	notice string
}

// NewAuthForm creates a form in login mode.
func NewAuthForm(backend Backend, mgr *session.Manager) *AuthForm {
	return &AuthForm{backend: backend, session: mgr}
}

// Mode returns the current form mode.
func (f *AuthForm) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// Toggle switches between login and register mode.
func (f *AuthForm) Toggle() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == ModeLogin {
		f.mode = ModeRegister
	} else {
		f.mode = ModeLogin
	}
}

// Busy reports whether a submission is in flight.
func (f *AuthForm) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Error returns the message from the last failed submission, or "".
func (f *AuthForm) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Notice returns the informational message from the last submission, or "".
func (f *AuthForm) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// Submit validates the credentials and sends them for the current mode.
// A successful login authenticates the session manager; a successful
// registration switches the form back to login mode without authenticating.
// Remote failures are reflected in Error and also returned.
func (f *AuthForm) Submit(ctx context.Context, creds Credentials) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	mode := f.mode
	f.busy = true
	f.err = ""
	f.notice = ""
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}()

	var err error
	if mode == ModeLogin {
		err = f.login(ctx, creds)
	} else {
		err = f.register(ctx, creds)
	}
	return err
}

func (f *AuthForm) login(ctx context.Context, creds Credentials) error {
	req := types.LoginRequest{Email: strings.TrimSpace(creds.Email), Password: creds.Password}
	if err := req.Validate(); err != nil {
		return f.fail(describeValidation(err), err)
	}

	resp, err := f.backend.Login(ctx, req)
	if err != nil {
		return f.fail(api.UserMessage(err), err)
	}

	if _, err := f.session.Login(resp.Token, resp.User()); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionNotSaved, err)
	}
	return nil
}

func (f *AuthForm) register(ctx context.Context, creds Credentials) error {
	req := types.RegisterRequest{
		Email:    strings.TrimSpace(creds.Email),
		Password: creds.Password,
		Name:     strings.TrimSpace(creds.Name),
	}
	if err := req.Validate(); err != nil {
		return f.fail(describeValidation(err), err)
	}

	if _, err := f.backend.Register(ctx, req); err != nil {
		return f.fail(api.UserMessage(err), err)
	}

	f.mu.Lock()
	f.mode = ModeLogin
	f.notice = RegisteredNotice
	f.mu.Unlock()
	return nil
}

func (f *AuthForm) fail(msg string, err error) error {
	f.mu.Lock()
	f.err = msg
	f.mu.Unlock()
	return err
}

// describeValidation turns validator errors into a single readable line.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email address", field))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(parts, "; ")
}
