package model

import (
	"strings"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
)

// MetadataIntentURLKey is the metadata key holding the intent URI.
const MetadataIntentURLKey = "upi_intent_url"

// FromPaymentEntity converts a domain payment to its stored form
func FromPaymentEntity(p *entity.Payment) *Payment {
	metadata := make(map[string]interface{}, len(p.Metadata)+1)
	for k, v := range p.Metadata {
		metadata[k] = v
	}
	if p.UPIIntentURL != "" {
		metadata[MetadataIntentURLKey] = p.UPIIntentURL
	}

	return &Payment{
		ID:             p.ID,
		TransactionRef: p.TransactionRef,
		UPIID:          p.UPIID,
		Amount:         p.Amount,
		PayerName:      optionalString(p.PayerName),
		Note:           optionalString(p.Note),
		Status:         string(p.Status),
		QRCodeDataURL:  p.QRCodeDataURL,
		Metadata:       metadata,
		FailureReason:  optionalString(p.FailureReason),
		CompletedAt:    p.CompletedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToEntity converts a stored payment to the domain form. ExpiresAt is left
// zero; callers apply their ExpiryPolicy.
func (m *Payment) ToEntity() *entity.Payment {
	metadata := make(map[string]interface{}, len(m.Metadata))
	for k, v := range m.Metadata {
		metadata[k] = v
	}

	intentURL, _ := metadata[MetadataIntentURLKey].(string)

	payment := &entity.Payment{
		ID:             m.ID,
		TransactionRef: m.TransactionRef,
		UPIID:          m.UPIID,
		Amount:         m.Amount,
		PayerName:      derefString(m.PayerName),
		Note:           derefString(m.Note),
		Status:         entity.PaymentStatus(m.Status),
		QRCodeDataURL:  m.QRCodeDataURL,
		UPIIntentURL:   intentURL,
		Metadata:       metadata,
		FailureReason:  derefString(m.FailureReason),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
	if m.CompletedAt != nil {
		completedAt := m.CompletedAt.UTC()
		payment.CompletedAt = &completedAt
	}
	return payment
}

// FromPaymentLogEntity converts a domain log entry to its stored form
func FromPaymentLogEntity(l *entity.PaymentLog) *PaymentLog {
	return &PaymentLog{
		ID:        l.ID,
		PaymentID: l.PaymentID,
		Status:    string(l.Status),
		Message:   optionalString(l.Message),
		CreatedAt: l.CreatedAt,
	}
}

// ToEntity converts a stored log entry to the domain form
func (m *PaymentLog) ToEntity() *entity.PaymentLog {
	return &entity.PaymentLog{
		ID:        m.ID,
		PaymentID: m.PaymentID,
		Status:    entity.PaymentStatus(m.Status),
		Message:   derefString(m.Message),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
