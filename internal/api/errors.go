package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/signup-api/internal/domain"
	"github.com/phrazzld/signup-api/internal/service"
)

// User-visible messages
const (
	msgInvalidRequest    = "Invalid request format"
	msgDuplicateEmail    = "User with this email already exists"
	msgDuplicateUsername = "Username is already taken"
	msgSignupFailed      = "An error occurred while creating the user account"
	msgSignupSucceeded   = "User account created successfully"
	msgUnexpected        = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusConflict

	case errors.Is(err, service.ErrInvalidAPIKey),
		errors.Is(err, service.ErrExpiredAPIKey):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that never
// includes internal error text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return msgDuplicateEmail
	case errors.Is(err, service.ErrDuplicateUsername):
		return msgDuplicateUsername
	case errors.Is(err, service.ErrInvalidAPIKey):
		return "Invalid API key"
	case errors.Is(err, service.ErrExpiredAPIKey):
		return "API key has expired"
	case MapErrorToStatusCode(err) == http.StatusUnprocessableEntity:
		return SanitizeValidationError(err)
	default:
		return msgUnexpected
	}
}

// SanitizeValidationError turns a validator or domain validation error into
// a short message naming the field and the failed rule.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}

	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field, fieldErr.Message)
	}

	switch {
	case errors.Is(err, domain.ErrEmptyUsername):
		return "Invalid username: required field"
	case errors.Is(err, domain.ErrEmptyEmail):
		return "Invalid email: required field"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email: invalid email format"
	case errors.Is(err, domain.ErrPasswordTooShort):
		return "Invalid password: too short"
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
