package store

import "errors"

// Store errors. Callers match them with errors.Is; the transport layer
// maps each one to a fixed HTTP status code.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when inserting a record whose natural
	// key (address or tx hash) already exists. Burns and transactions
	// are append-only; there are no updates.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIntegrity is returned when a burn would drive the total supply
	// negative. The snapshot is rejected, never clamped.
	ErrIntegrity = errors.New("integrity violation: supply would go negative")
)
