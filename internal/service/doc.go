// Package service contains the signup use cases. It coordinates the store
// interfaces (internal/store) and credential helpers (service/auth) and
// translates store errors into the application errors the API layer maps
// to responses.
//
// AccountService registers users and issues their first API key inside a
// single transaction. APIKeyService mints and verifies keys; the plaintext
// key leaves the service only after its hash has been stored.
//
// Services receive their dependencies through constructors and never depend
// on a concrete database implementation.
package service
