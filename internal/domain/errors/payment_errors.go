package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrPaymentNotFound indicates that no payment exists for the given id
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrAlreadyFinalized indicates that a guarded transition found the payment no longer PENDING
	ErrAlreadyFinalized = errors.New("payment is already finalized")

	// ErrPaymentConflict indicates that a payment with the same id already exists
	ErrPaymentConflict = errors.New("payment already exists")

	// ErrStatusMismatch is returned by conditional updates when the stored status
	// no longer matches the expected one
	ErrStatusMismatch = errors.New("payment status changed concurrently")

	// ErrIntentTooLarge indicates that an intent URI does not fit in a QR code
	ErrIntentTooLarge = errors.New("payment intent exceeds qr code capacity")
)

// ValidationError is returned when caller input violates a payment constraint
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// PersistenceError wraps a store failure with the operation that caused it
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("failed to %s", e.Op)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// NewPersistenceError creates a new PersistenceError
func NewPersistenceError(op string, cause error) *PersistenceError {
	return &PersistenceError{
		Op:    op,
		Cause: cause,
	}
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsPersistence reports whether err is or wraps a PersistenceError
func IsPersistence(err error) bool {
	var persistenceErr *PersistenceError
	return errors.As(err, &persistenceErr)
}
