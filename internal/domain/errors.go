package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized signals that the engine connection was used before it was constructed.
	ErrNotInitialized = errors.New("engine connection not initialized")
	// ErrConnection signals a transport or authentication failure reaching the engine.
	ErrConnection = errors.New("engine connection error")
	// ErrInvalidArgument signals a disallowed request parameter combination.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound signals a missing document or index.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals an identifier collision or a concurrent modification.
	ErrConflict = errors.New("conflict")
	// ErrAlreadyExists signals an idempotent no-op (index already present).
	ErrAlreadyExists = errors.New("already exists")
	// ErrPartialFailure signals a bulk request with mixed per-item outcomes.
	ErrPartialFailure = errors.New("partial failure")
	// ErrEngineRejected signals any other structured rejection from the engine.
	ErrEngineRejected = errors.New("engine rejected request")
)

// RejectedError wraps ErrEngineRejected with the engine's raw reason.
type RejectedError struct {
	Type   string
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: %s", ErrEngineRejected.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrEngineRejected.Error(), e.Type, e.Reason)
}

func (e *RejectedError) Unwrap() error { return ErrEngineRejected }

// NewRejected creates an engine rejection error.
func NewRejected(errType, reason string) error {
	return &RejectedError{Type: errType, Reason: reason}
}
