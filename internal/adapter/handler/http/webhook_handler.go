package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/usecase"
)

// WebhookHandler handles status callbacks. The callback source is trusted.
type WebhookHandler struct {
	lifecycle *usecase.PaymentLifecycleService
	logger    *zap.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(lifecycle *usecase.PaymentLifecycleService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// StatusUpdate handles POST /api/webhooks/status-update
func (h *WebhookHandler) StatusUpdate(c echo.Context) error {
	var req StatusUpdateWebhookRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, ok := entity.ParsePaymentStatus(req.Status)
	if !ok {
		return invalidArgument(msgInvalidStatus)
	}
	if !status.IsFinalOutcome() {
		return invalidArgument(msgWebhookStatus)
	}

	payment, err := h.lifecycle.UpdateStatus(c.Request().Context(), req.PaymentID, status, req.Message)
	if err != nil {
		return fail(c, h.logger, err, "Failed to process status webhook",
			zap.String("payment_id", req.PaymentID),
			zap.String("status", string(status)))
	}
	if payment == nil {
		return notFound()
	}

	h.logger.Info("Processed status webhook",
		zap.String("payment_id", req.PaymentID),
		zap.String("status", string(status)))

	return respond(c, http.StatusOK, toPaymentResponse(payment))
}
