// Package middleware holds the HTTP middleware specific to this service.
package middleware
