// Package repository defines error types that are reused across the
// persistence layer. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error strings. For example, ErrEmailExists
// signals that a registration collided with the unique index on email,
// while ErrNotFound indicates that no row matched the given selector.
package repository

import "errors"

// ErrEmailExists is returned when an insert violates the unique
// constraint on users.email. Handlers should translate this into an
// HTTP 409 response and must not reveal anything else about the
// existing account.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup or update matches no row.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
