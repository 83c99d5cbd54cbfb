// Package types provides the wire types exchanged with the hiring-assistant backend.
package types

import (
	"github.com/go-playground/validator/v10"
)

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the request to create a new account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// RegisterResponse is returned by a successful registration. The backend may
// return an empty body, so every field is optional.
type RegisterResponse struct {
	Message string `json:"message,omitempty"`
	UserID  string `json:"userId,omitempty"`
}

// ErrorResponse is the error envelope used by every endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
}

// User is the identity returned alongside a token.
type User struct {
	ID   string
	Name string
}

// User returns the identity carried by the login response.
func (r *LoginResponse) User() User {
	return User{ID: r.UserID, Name: r.Name}
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
