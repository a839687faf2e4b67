// Package queue defines message payloads exchanged over the message broker.
package queue

// UserRegisteredEvent is published when a registration is successfully
// persisted. It contains enough information for downstream consumers to
// send a welcome message or feed analytics without querying the primary
// database. The password and its hash are never part of the payload.
type UserRegisteredEvent struct {
    UserID       uint64 `json:"user_id"`
    Name         string `json:"name"`
    Email        string `json:"email"`
    RegisteredAt string `json:"registered_at"`
}
