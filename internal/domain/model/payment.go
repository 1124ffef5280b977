package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Default table names. Both can be overridden through configuration, so
// repositories always address them with db.Table.
const (
	PaymentsTable    = "payments"
	PaymentLogsTable = "payment_logs"
)

// Payment represents a stored payment request
type Payment struct {
	ID             string            `gorm:"primaryKey;size:36" json:"id"`
	TransactionRef string            `gorm:"column:transaction_ref;size:64;not null;uniqueIndex" json:"transaction_ref"`
	UPIID          string            `gorm:"column:upi_id;size:255;not null" json:"upi_id"`
	Amount         decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"amount"`
	PayerName      *string           `gorm:"column:payer_name;size:255" json:"payer_name,omitempty"`
	Note           *string           `gorm:"size:500" json:"note,omitempty"`
	Status         string            `gorm:"size:20;not null;default:'PENDING';index:idx_payments_status_created,priority:1" json:"status"`
	QRCodeDataURL  string            `gorm:"column:qr_code_data_url;type:text;not null" json:"qr_code_data_url"`
	Metadata       datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	FailureReason  *string           `gorm:"column:failure_reason" json:"failure_reason,omitempty"`
	CompletedAt    *time.Time        `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;index:idx_payments_status_created,priority:2" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null" json:"updated_at"`
}

// TableName specifies the default table name for GORM
func (Payment) TableName() string {
	return PaymentsTable
}

// PaymentLog represents one append-only status history row
type PaymentLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PaymentID string    `gorm:"column:payment_id;size:36;not null;index:idx_payment_logs_payment_created,priority:1" json:"payment_id"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	Message   *string   `gorm:"type:text" json:"message,omitempty"`
	CreatedAt time.Time `gorm:"not null;index:idx_payment_logs_payment_created,priority:2" json:"created_at"`
}

// TableName specifies the default table name for GORM
func (PaymentLog) TableName() string {
	return PaymentLogsTable
}
