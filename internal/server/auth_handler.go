package server

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jonathan/hiring-assistant/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req types.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return &ErrValidation{Message: "Invalid request body"}
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validator.Struct(req); err != nil {
		return extractValidationErrors(err)
	}

	user, err := h.userService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(types.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login handles user login requests.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return &ErrValidation{Message: "Invalid request body"}
	}
	if err := h.validator.Struct(req); err != nil {
		return extractValidationErrors(err)
	}

	user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	return c.JSON(types.LoginResponse{
		Token:  token,
		Name:   user.Name,
		UserID: user.ID,
	})
}

// extractValidationErrors reports the first failing field.
func extractValidationErrors(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		field := strings.ToLower(ve.Field())
		if ve.Tag() == "email" {
			return &ErrValidation{Field: field, Message: "must be a valid email address"}
		}
		return &ErrValidation{Field: field, Message: ve.Tag()}
	}
	return &ErrValidation{Message: "invalid request"}
}
