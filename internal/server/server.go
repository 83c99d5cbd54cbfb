// Package server provides a local stand-in for the hiring-assistant backend.
package server

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonathan/hiring-assistant/internal/api"
	"github.com/jonathan/hiring-assistant/internal/config"
	"github.com/jonathan/hiring-assistant/internal/server/middleware"
	"github.com/jonathan/hiring-assistant/internal/types"
)

// DefaultMaxUploadBytes caps a single resume upload.
const DefaultMaxUploadBytes = 10 << 20

// Config holds server configuration
type Config struct {
	Auth *config.ServerAuthConfig

	// RequireAuth rejects skill and upload requests without a valid bearer token.
	RequireAuth bool

	MaxUploadBytes int64

	// LoginRateLimit is the number of login attempts allowed per client per
	// minute. Zero disables the limit.
	LoginRateLimit int

	Verbose   bool
	LogOutput io.Writer
}

// Server represents the HTTP server
type Server struct {
	app       *fiber.App
	users     *UserService
	jwt       *JWTService
	maxUpload int64
	verbose   bool
	log       *log.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Auth == nil {
		return nil, fmt.Errorf("server auth config is required")
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.LogOutput == nil {
		cfg.LogOutput = os.Stderr
	}

	s := &Server{
		users:     NewUserService(cfg.Auth.BcryptCost),
		jwt:       NewJWTService(cfg.Auth),
		maxUpload: cfg.MaxUploadBytes,
		verbose:   cfg.Verbose,
		log:       log.New(cfg.LogOutput, "", log.LstdFlags),
	}
	authHandler := NewAuthHandler(s.users, s.jwt)

	s.app = fiber.New(fiber.Config{
		AppName:               "Hiring Assistant Stub",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		BodyLimit:             int(cfg.MaxUploadBytes) + 1<<20,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	if cfg.Verbose {
		s.app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
			Output:     cfg.LogOutput,
		}))
	}

	s.app.Get("/health", s.handleHealth)

	s.app.Post(api.PathRegister, authHandler.Register)
	if cfg.LoginRateLimit > 0 {
		s.app.Post(api.PathLogin, limiter.New(limiter.Config{
			Max:        cfg.LoginRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(types.ErrorResponse{Message: "Too many login attempts, try again later"})
			},
		}), authHandler.Login)
	} else {
		s.app.Post(api.PathLogin, authHandler.Login)
	}

	protected := []fiber.Handler{}
	if cfg.RequireAuth {
		protected = append(protected, middleware.Auth[*Claims](s.jwt))
	}
	s.app.Post(api.PathExtractSkills, append(protected, s.handleExtractSkills)...)
	s.app.Post(api.PathUploadResume, append(protected, s.handleUpload)...)

	return s, nil
}

// App exposes the underlying fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Users returns the in-memory user store.
func (s *Server) Users() *UserService {
	return s.users
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logf("[SERVER] listening on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.logf("[SERVER] shutting down")
	return s.app.Shutdown()
}

func (s *Server) logf(format string, args ...any) {
	if s.verbose {
		s.log.Printf(format, args...)
	}
}
