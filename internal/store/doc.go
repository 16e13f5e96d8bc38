// Package store defines interfaces for data persistence operations.
// These interfaces keep the signup workflow independent of the concrete
// database, and provide the shared transaction helper and store errors.
package store
