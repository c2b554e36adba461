package services

import (
	"errors"

	jobredis "job_order/internal/redis"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderNo     = errors.New("invalid order number")
	ErrInvalidPayload     = errors.New("invalid order data")
	ErrSaveLocked         = jobredis.ErrLocked
	ErrSaveInProgress     = errors.New("a save is already in progress")
	ErrValidationBypassed = errors.New("order reached persistence without passing validation")
	ErrPersistence        = errors.New("failed to save order")
	ErrNameRequired       = errors.New("name is required")

	errCacheDisabled = errors.New("cache disabled")
)

// PersistenceError wraps a storage failure. It matches ErrPersistence so
// callers can show one generic message and log the cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
