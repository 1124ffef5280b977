package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/usecase"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	lifecycle       *usecase.PaymentLifecycleService
	query           *usecase.PaymentQueryService
	defaultPageSize int
	logger          *zap.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(
	lifecycle *usecase.PaymentLifecycleService,
	query *usecase.PaymentQueryService,
	defaultPageSize int,
	logger *zap.Logger,
) *PaymentHandler {
	if defaultPageSize < entity.MinPageSize || defaultPageSize > entity.MaxPageSize {
		defaultPageSize = entity.DefaultPageSize
	}
	return &PaymentHandler{
		lifecycle:       lifecycle,
		query:           query,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Debug("Invalid create payment body", zap.Error(err))
		return invalidArgument(msgInvalidBody)
	}

	payment, err := h.lifecycle.CreatePayment(c.Request().Context(), entity.CreatePaymentInput{
		UPIID:     req.UPIID,
		Amount:    req.Amount,
		PayerName: req.PayerName,
		Note:      req.Note,
		Metadata:  req.Metadata,
	})
	if err != nil {
		return fail(c, h.logger, err, "Failed to create payment")
	}

	return respond(c, http.StatusCreated, toPaymentResponse(payment))
}

// ListPayments handles GET /api/payments?page=&limit=
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	params := entity.PaginationParams{
		Page:  entity.DefaultPage,
		Limit: h.defaultPageSize,
	}

	if pageStr := c.QueryParam("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return invalidArgument("Page must be greater than 0")
		}
		params.Page = page
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return invalidArgument("Limit must be between 1 and 100")
		}
		params.Limit = limit
	}

	page, err := h.query.ListPayments(c.Request().Context(), params)
	if err != nil {
		return fail(c, h.logger, err, "Failed to list payments",
			zap.Int("page", params.Page),
			zap.Int("limit", params.Limit))
	}

	return respond(c, http.StatusOK, toPaymentListResponse(page))
}

// GetPayment handles GET /api/payments/:id
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id := c.Param("id")

	payment, err := h.lifecycle.GetPayment(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.logger, err, "Failed to get payment", zap.String("payment_id", id))
	}
	if payment == nil {
		return notFound()
	}

	return respond(c, http.StatusOK, toPaymentResponse(payment))
}

// GetPaymentStatus handles GET /api/payments/:id/status
func (h *PaymentHandler) GetPaymentStatus(c echo.Context) error {
	id := c.Param("id")

	status, found, err := h.lifecycle.GetStatus(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.logger, err, "Failed to get payment status", zap.String("payment_id", id))
	}
	if !found {
		return notFound()
	}

	return respond(c, http.StatusOK, PaymentStatusResponse{
		PaymentID: id,
		Status:    status,
	})
}

// GetPaymentLogs handles GET /api/payments/:id/logs
func (h *PaymentHandler) GetPaymentLogs(c echo.Context) error {
	id := c.Param("id")

	logs, err := h.query.ListLogs(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.logger, err, "Failed to get payment logs", zap.String("payment_id", id))
	}

	return respond(c, http.StatusOK, toPaymentLogResponses(logs))
}

// SimulateStatus handles POST /api/payments/:id/simulate-status
func (h *PaymentHandler) SimulateStatus(c echo.Context) error {
	id := c.Param("id")

	var req SimulateStatusRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(msgInvalidBody)
	}

	status, ok := entity.ParsePaymentStatus(req.Status)
	if !ok || !status.IsFinalOutcome() {
		return invalidArgument(msgSimulateStatus)
	}

	payment, err := h.lifecycle.SimulateTransition(c.Request().Context(), id, status, req.Message)
	if err != nil {
		return fail(c, h.logger, err, "Failed to simulate payment status",
			zap.String("payment_id", id),
			zap.String("status", string(status)))
	}

	h.logger.Info("Simulated payment status",
		zap.String("payment_id", id),
		zap.String("status", string(status)))

	return respond(c, http.StatusOK, toPaymentResponse(payment))
}
