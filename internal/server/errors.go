package server

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jonathan/hiring-assistant/internal/types"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return "User already exists"
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "Invalid credentials"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrUnsupportedFile indicates an upload that is neither PDF nor DOCX.
type ErrUnsupportedFile struct {
	Extension string
}

func (e *ErrUnsupportedFile) Error() string {
	return fmt.Sprintf("Unsupported file format: %s", e.Extension)
}

// ErrUnreadableDocument indicates an upload whose text could not be extracted.
type ErrUnreadableDocument struct {
	Name  string
	Cause error
}

func (e *ErrUnreadableDocument) Error() string {
	return fmt.Sprintf("Error parsing file %s: %v", e.Name, e.Cause)
}

func (e *ErrUnreadableDocument) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, new(*ErrEmailAlreadyExists)),
		errors.As(err, new(*ErrValidation)),
		errors.As(err, new(*ErrUnsupportedFile)):
		return fiber.StatusBadRequest
	case errors.As(err, new(*ErrInvalidCredentials)):
		return fiber.StatusUnauthorized
	case errors.As(err, new(*ErrUnreadableDocument)):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// errorHandler renders every error as the {"message": ...} envelope the
// client expects.
func errorHandler(c *fiber.Ctx, err error) error {
	status := HTTPStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "Internal server error"
	}
	return c.Status(status).JSON(types.ErrorResponse{Message: msg})
}
