package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	domainErrors "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/errors"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/repository"
)

// PaymentQueryService serves paginated and per-payment read views
type PaymentQueryService struct {
	paymentRepo repository.PaymentRepository
	logRepo     repository.PaymentLogRepository
	expiry      entity.ExpiryPolicy
	logger      *zap.Logger
}

// NewPaymentQueryService creates a new payment query service
func NewPaymentQueryService(
	paymentRepo repository.PaymentRepository,
	logRepo repository.PaymentLogRepository,
	expiry entity.ExpiryPolicy,
	logger *zap.Logger,
) *PaymentQueryService {
	return &PaymentQueryService{
		paymentRepo: paymentRepo,
		logRepo:     logRepo,
		expiry:      expiry,
		logger:      logger,
	}
}

// ListPayments returns one page of payments, newest first
func (s *PaymentQueryService) ListPayments(ctx context.Context, params entity.PaginationParams) (*entity.PaymentPage, error) {
	if params.Page < entity.DefaultPage {
		return nil, domainErrors.NewValidationError("page", "Page must be greater than 0")
	}
	if params.Limit < entity.MinPageSize || params.Limit > entity.MaxPageSize {
		return nil, domainErrors.NewValidationError("limit", "Limit must be between 1 and 100")
	}

	payments, total, err := s.paymentRepo.List(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		s.logger.Error("failed to list payments",
			zap.Int("page", params.Page),
			zap.Int("limit", params.Limit),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	for _, payment := range payments {
		s.expiry.Apply(payment)
	}

	return &entity.PaymentPage{
		Payments: payments,
		Total:    total,
		Page:     params.Page,
		Limit:    params.Limit,
	}, nil
}

// ListLogs returns the status history of a payment, newest first. Unknown
// payments yield an empty history.
func (s *PaymentQueryService) ListLogs(ctx context.Context, paymentID string) ([]*entity.PaymentLog, error) {
	logs, err := s.logRepo.ListByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment logs: %w", err)
	}
	if logs == nil {
		logs = []*entity.PaymentLog{}
	}
	return logs, nil
}
