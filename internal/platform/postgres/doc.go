// Package postgres implements the store interfaces on PostgreSQL and maps
// PostgreSQL error codes to store errors. The schema lives in the embedded
// migrations subpackage.
package postgres
