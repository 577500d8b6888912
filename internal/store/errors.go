package store

import (
	"errors"
	"fmt"
)

// Sentinels shared by every EmployeeStore implementation. Stores wrap them,
// so callers match with errors.Is.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("record already exists")
	ErrInvalidEntity = errors.New("record violates a column constraint")

	// ErrTransactionFailed covers begin and commit failures, not errors
	// returned by the transaction body.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrEmployeeNotFound = fmt.Errorf("%w: employee", ErrNotFound)
)

// IsNotFoundError reports whether err wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError records which store operation failed.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s store %s: %s", e.Entity, e.Operation, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err for the given entity and operation.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
