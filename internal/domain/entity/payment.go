package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment request.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
	PaymentStatusExpired PaymentStatus = "EXPIRED"
)

var paymentStatuses = map[PaymentStatus]struct{}{
	PaymentStatusPending: {},
	PaymentStatusSuccess: {},
	PaymentStatusFailed:  {},
	PaymentStatusExpired: {},
}

// ParsePaymentStatus normalises s to upper case and reports whether it names
// one of the four known statuses.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	status := PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := paymentStatuses[status]
	return status, ok
}

// IsValid reports whether s is one of the four known statuses.
func (s PaymentStatus) IsValid() bool {
	_, ok := paymentStatuses[s]
	return ok
}

// IsTerminal reports whether no further lifecycle transition is expected.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed || s == PaymentStatusExpired
}

// IsFinalOutcome reports whether s is a settlement outcome (SUCCESS or FAILED),
// the only targets an external or simulated status update may request.
func (s PaymentStatus) IsFinalOutcome() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

func (s PaymentStatus) String() string {
	return string(s)
}

// Payment is one payment request and its current lifecycle state.
type Payment struct {
	ID             string
	TransactionRef string
	UPIID          string
	Amount         decimal.Decimal
	PayerName      string
	Note           string
	Status         PaymentStatus
	QRCodeDataURL  string
	UPIIntentURL   string
	Metadata       map[string]interface{}
	FailureReason  string
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// ExpiresAt is derived from CreatedAt by ExpiryPolicy and never stored.
	ExpiresAt time.Time
}

// PaymentLog is one immutable entry of a payment's status history.
type PaymentLog struct {
	ID        int64
	PaymentID string
	Status    PaymentStatus
	Message   string
	CreatedAt time.Time
}

// CreatePaymentInput carries the caller-supplied fields of a new payment.
type CreatePaymentInput struct {
	UPIID     string
	Amount    decimal.Decimal
	PayerName string
	Note      string
	Metadata  map[string]interface{}
}

// StatusUpdate is a partial update applied to a payment on a transition.
// When ExpectedStatus is set the update only applies if the stored status
// still equals it.
type StatusUpdate struct {
	Status         PaymentStatus
	ExpectedStatus PaymentStatus
	UpdatedAt      time.Time
	CompletedAt    *time.Time
	FailureReason  *string
}

// PaymentStatusEvent is published after every persisted transition.
type PaymentStatusEvent struct {
	PaymentID  string        `json:"paymentId"`
	Status     PaymentStatus `json:"status"`
	Message    string        `json:"message,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}
