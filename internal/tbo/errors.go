package tbo

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the store. Every failure returned by TBOService wraps
// exactly one of these; test with errors.Is.
var (
	ErrUninitialized        = errors.New("store not initialized")
	ErrNotFound             = errors.New("not found")
	ErrConstraintViolation  = errors.New("constraint violation")
	ErrInvalidOperation     = errors.New("invalid operation")
	ErrInvalidInput         = errors.New("invalid input")
	ErrStorageEngineFailure = errors.New("storage engine failure")
)

var kinds = []error{
	ErrUninitialized,
	ErrNotFound,
	ErrConstraintViolation,
	ErrInvalidOperation,
	ErrInvalidInput,
	ErrStorageEngineFailure,
}

// KindOf returns the error kind wrapped by err, or nil if err carries none.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// StorageFailure wraps an underlying engine error, keeping its message.
func StorageFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageEngineFailure, op, err)
}

// ensureKind guarantees err carries a kind. Errors that already have one pass
// through unchanged; anything else is treated as an engine failure.
func ensureKind(op string, err error) error {
	if err == nil || KindOf(err) != nil {
		return err
	}
	return StorageFailure(op, err)
}
