// Package domain contains the core business entities of the signup service:
// users, their password credential and the API keys issued to them.
// It is independent of any storage or delivery mechanism.
package domain
