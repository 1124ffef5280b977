package repository

import (
	"context"
	"time"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
)

// PaymentRepository defines the store contract for payment records
type PaymentRepository interface {
	// Create inserts a new payment. Returns errors.ErrPaymentConflict if the id is taken.
	Create(ctx context.Context, payment *entity.Payment) error

	// GetByID returns the payment, or nil without error when it does not exist
	GetByID(ctx context.Context, id string) (*entity.Payment, error)

	// UpdateStatus applies a partial status update and returns the stored record.
	// Returns nil without error when the payment does not exist, and
	// errors.ErrStatusMismatch when update.ExpectedStatus is set and no longer holds.
	UpdateStatus(ctx context.Context, id string, update entity.StatusUpdate) (*entity.Payment, error)

	// List returns payments newest first together with the total count
	List(ctx context.Context, limit, offset int) ([]*entity.Payment, int64, error)

	// FindPendingCreatedBefore returns PENDING payments created at or before threshold
	FindPendingCreatedBefore(ctx context.Context, threshold time.Time) ([]*entity.Payment, error)
}

// PaymentLogRepository defines the store contract for the append-only status history
type PaymentLogRepository interface {
	// Append stores a new log entry and fills its ID
	Append(ctx context.Context, log *entity.PaymentLog) error

	// ListByPaymentID returns the history of a payment newest first
	ListByPaymentID(ctx context.Context, paymentID string) ([]*entity.PaymentLog, error)
}
