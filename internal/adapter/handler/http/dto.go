package http

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
)

// CreatePaymentRequest is the body of POST /api/payments. Amount accepts a
// JSON number or a numeric string.
type CreatePaymentRequest struct {
	UPIID     string                 `json:"upiId"`
	Amount    decimal.Decimal        `json:"amount"`
	PayerName string                 `json:"payerName"`
	Note      string                 `json:"note"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// SimulateStatusRequest is the body of POST /api/payments/:id/simulate-status
type SimulateStatusRequest struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StatusUpdateWebhookRequest is the body of POST /api/webhooks/status-update
type StatusUpdateWebhookRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// PaymentResponse is the client view of a payment
type PaymentResponse struct {
	ID             string                 `json:"id"`
	UPIID          string                 `json:"upiId"`
	Amount         float64                `json:"amount"`
	PayerName      string                 `json:"payerName,omitempty"`
	Note           string                 `json:"note,omitempty"`
	Status         entity.PaymentStatus   `json:"status"`
	QRCodeDataURL  string                 `json:"qrCodeDataUrl"`
	UPIIntentURL   string                 `json:"upiIntentUrl"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	TransactionRef string                 `json:"transactionRef"`
	FailureReason  string                 `json:"failureReason,omitempty"`
	CompletedAt    *time.Time             `json:"completedAt,omitempty"`
	ExpiresAt      time.Time              `json:"expiresAt"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// PaymentListResponse is one page of payments
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// PaymentStatusResponse is the body of GET /api/payments/:id/status
type PaymentStatusResponse struct {
	PaymentID string               `json:"paymentId"`
	Status    entity.PaymentStatus `json:"status"`
}

// PaymentLogResponse is one entry of a payment's history
type PaymentLogResponse struct {
	ID        string               `json:"id"`
	PaymentID string               `json:"paymentId"`
	Status    entity.PaymentStatus `json:"status"`
	Message   string               `json:"message,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

func toPaymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		UPIID:          p.UPIID,
		Amount:         p.Amount.InexactFloat64(),
		PayerName:      p.PayerName,
		Note:           p.Note,
		Status:         p.Status,
		QRCodeDataURL:  p.QRCodeDataURL,
		UPIIntentURL:   p.UPIIntentURL,
		Metadata:       p.Metadata,
		TransactionRef: p.TransactionRef,
		FailureReason:  p.FailureReason,
		CompletedAt:    p.CompletedAt,
		ExpiresAt:      p.ExpiresAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toPaymentListResponse(page *entity.PaymentPage) PaymentListResponse {
	payments := make([]PaymentResponse, 0, len(page.Payments))
	for _, p := range page.Payments {
		payments = append(payments, toPaymentResponse(p))
	}
	return PaymentListResponse{
		Payments: payments,
		Total:    page.Total,
		Page:     page.Page,
		Limit:    page.Limit,
	}
}

func toPaymentLogResponses(logs []*entity.PaymentLog) []PaymentLogResponse {
	out := make([]PaymentLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, PaymentLogResponse{
			ID:        strconv.FormatInt(l.ID, 10),
			PaymentID: l.PaymentID,
			Status:    l.Status,
			Message:   l.Message,
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}
