package auth

import "errors"

// Credential and API key errors
var (
	// ErrHashing indicates the password hashing primitive failed.
	ErrHashing = errors.New("failed to hash password")

	// ErrEmptyPassword indicates an empty password was passed to Hash.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordMismatch indicates a plaintext password does not match the stored hash.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrKeyGeneration indicates the random source failed while minting an API key.
	ErrKeyGeneration = errors.New("failed to generate api key")
)
