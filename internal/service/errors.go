package service

import "errors"

// Service errors. Callers match them with errors.Is; the API layer is the
// only place that turns them into status codes and user-visible text.
var (
	// ErrDuplicateEmail indicates a user with the same (case-insensitive) email exists.
	// API layer maps this to HTTP 409 Conflict.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateUsername indicates a user with the same (case-insensitive) username exists.
	// API layer maps this to HTTP 409 Conflict.
	ErrDuplicateUsername = errors.New("username is already taken")

	// ErrPersistence indicates the store failed to read or write.
	// The wrapped error carries the cause; it is never shown to clients.
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidAPIKey indicates a presented API key matches no stored key.
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrExpiredAPIKey indicates a presented API key matched but is past its expiry.
	ErrExpiredAPIKey = errors.New("api key has expired")
)
