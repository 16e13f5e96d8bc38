// Package api handles incoming HTTP requests: it decodes and validates
// payloads, calls the account service and writes enveloped JSON responses.
// It is the only layer that turns service errors into status codes and
// user-visible messages.
package api
