package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	domainErrors "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/errors"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/model"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/repository"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/upi"
)

const (
	minUPIIDLength     = 3
	maxUPIIDLength     = 255
	maxPayerNameLength = 255
	maxNoteLength      = 500

	createdLogMessage = "Payment created"
	expiredLogMessage = "Payment expired"
)

// maxAmount is the largest amount the payments table can hold.
var maxAmount = decimal.RequireFromString("9999999999.99")

// LifecycleOption configures a PaymentLifecycleService
type LifecycleOption func(*PaymentLifecycleService)

// WithClock replaces the wall clock
func WithClock(now func() time.Time) LifecycleOption {
	return func(s *PaymentLifecycleService) {
		s.now = now
	}
}

// WithIDGenerator replaces the generator used for payment ids and transaction refs
func WithIDGenerator(newID func() string) LifecycleOption {
	return func(s *PaymentLifecycleService) {
		s.newID = newID
	}
}

// WithEventPublisher sets where status transitions are announced
func WithEventPublisher(publisher StatusEventPublisher) LifecycleOption {
	return func(s *PaymentLifecycleService) {
		s.events = publisher
	}
}

// PaymentLifecycleService owns every status transition of a payment
type PaymentLifecycleService struct {
	paymentRepo repository.PaymentRepository
	logRepo     repository.PaymentLogRepository
	qr          QRRenderer
	events      StatusEventPublisher
	expiry      entity.ExpiryPolicy
	now         func() time.Time
	newID       func() string
	logger      *zap.Logger
}

// NewPaymentLifecycleService creates a new payment lifecycle service
func NewPaymentLifecycleService(
	paymentRepo repository.PaymentRepository,
	logRepo repository.PaymentLogRepository,
	qr QRRenderer,
	expiry entity.ExpiryPolicy,
	logger *zap.Logger,
	opts ...LifecycleOption,
) *PaymentLifecycleService {
	s := &PaymentLifecycleService{
		paymentRepo: paymentRepo,
		logRepo:     logRepo,
		qr:          qr,
		events:      NopStatusEventPublisher{},
		expiry:      expiry,
		now: func() time.Time {
			return time.Now().UTC()
		},
		newID:  uuid.NewString,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExpiryPolicy returns the window used to derive deadlines
func (s *PaymentLifecycleService) ExpiryPolicy() entity.ExpiryPolicy {
	return s.expiry
}

// CreatePayment validates input and stores a new PENDING payment
func (s *PaymentLifecycleService) CreatePayment(ctx context.Context, input entity.CreatePaymentInput) (*entity.Payment, error) {
	upiID := strings.TrimSpace(input.UPIID)
	if utf8.RuneCountInString(upiID) < minUPIIDLength {
		return nil, domainErrors.NewValidationError("upiId", "UPI ID is required and must be at least 3 characters.")
	}
	if utf8.RuneCountInString(upiID) > maxUPIIDLength {
		return nil, domainErrors.NewValidationError("upiId", "UPI ID must be at most 255 characters.")
	}

	if !input.Amount.IsPositive() {
		return nil, domainErrors.NewValidationError("amount", "Amount must be a positive number.")
	}
	amount := input.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, domainErrors.NewValidationError("amount", "Amount must be at least 0.01.")
	}
	if amount.GreaterThan(maxAmount) {
		return nil, domainErrors.NewValidationError("amount", "Amount must not exceed 9999999999.99.")
	}

	payerName := strings.TrimSpace(input.PayerName)
	if utf8.RuneCountInString(payerName) > maxPayerNameLength {
		return nil, domainErrors.NewValidationError("payerName", "Payer name must be at most 255 characters.")
	}
	note := strings.TrimSpace(input.Note)
	if utf8.RuneCountInString(note) > maxNoteLength {
		return nil, domainErrors.NewValidationError("note", "Note must be at most 500 characters.")
	}

	paymentID := s.newID()
	transactionRef := s.newID()

	intentURL := upi.BuildIntentURL(upi.IntentParams{
		UPIID:          upiID,
		Amount:         amount,
		PayerName:      payerName,
		Note:           note,
		TransactionRef: transactionRef,
	})

	qrCodeDataURL, err := s.qr.RenderDataURL(intentURL)
	if errors.Is(err, domainErrors.ErrIntentTooLarge) {
		return nil, domainErrors.NewValidationError("note", "Payment details are too long to encode as a QR code.")
	}
	if err != nil {
		s.logger.Error("failed to render qr code",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}

	metadata := make(map[string]interface{}, len(input.Metadata)+1)
	for k, v := range input.Metadata {
		metadata[k] = v
	}
	metadata[model.MetadataIntentURLKey] = intentURL

	now := s.now()
	payment := &entity.Payment{
		ID:             paymentID,
		TransactionRef: transactionRef,
		UPIID:          upiID,
		Amount:         amount,
		PayerName:      payerName,
		Note:           note,
		Status:         entity.PaymentStatusPending,
		QRCodeDataURL:  qrCodeDataURL,
		UPIIntentURL:   intentURL,
		Metadata:       metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.logger.Info("payment created",
		zap.String("payment_id", payment.ID),
		zap.String("transaction_ref", transactionRef),
		zap.String("amount", amount.StringFixed(2)))

	s.recordTransition(ctx, payment.ID, entity.PaymentStatusPending, createdLogMessage, now)

	return s.expiry.Apply(payment), nil
}

// UpdateStatus force-applies a terminal status regardless of the current one.
// Returns nil without error when the payment does not exist.
func (s *PaymentLifecycleService) UpdateStatus(ctx context.Context, id string, status entity.PaymentStatus, message string) (*entity.Payment, error) {
	if !status.IsValid() {
		return nil, domainErrors.NewValidationError("status", "Invalid status")
	}
	if status == entity.PaymentStatusPending {
		return nil, domainErrors.NewValidationError("status", "Payments cannot return to PENDING.")
	}

	now := s.now()
	payment, err := s.paymentRepo.UpdateStatus(ctx, id, transitionUpdate(status, message, now))
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	if payment == nil {
		return nil, nil
	}

	if message == "" {
		message = fmt.Sprintf("Status updated to %s", status)
	}
	s.recordTransition(ctx, id, status, message, now)

	return s.expiry.Apply(payment), nil
}

// SimulateTransition moves a PENDING payment to SUCCESS or FAILED
func (s *PaymentLifecycleService) SimulateTransition(ctx context.Context, id string, status entity.PaymentStatus, message string) (*entity.Payment, error) {
	if !status.IsFinalOutcome() {
		return nil, domainErrors.NewValidationError("status", "Status must be SUCCESS or FAILED for simulation.")
	}

	current, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if current == nil {
		return nil, domainErrors.ErrPaymentNotFound
	}
	if current.Status != entity.PaymentStatusPending {
		return nil, domainErrors.ErrAlreadyFinalized
	}

	if message == "" {
		message = fmt.Sprintf("Simulated %s webhook", status)
	}

	now := s.now()
	update := transitionUpdate(status, message, now)
	update.ExpectedStatus = entity.PaymentStatusPending

	payment, err := s.paymentRepo.UpdateStatus(ctx, id, update)
	if errors.Is(err, domainErrors.ErrStatusMismatch) {
		return nil, domainErrors.ErrAlreadyFinalized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	if payment == nil {
		return nil, domainErrors.ErrPaymentNotFound
	}

	s.recordTransition(ctx, id, status, message, now)

	return s.expiry.Apply(payment), nil
}

// SweepExpired moves every PENDING payment created at least windowMinutes ago
// to EXPIRED and returns how many it moved. Failures are logged, never returned.
func (s *PaymentLifecycleService) SweepExpired(ctx context.Context, windowMinutes int) int {
	if windowMinutes <= 0 {
		s.logger.Warn("skipping expiry sweep with non-positive window",
			zap.Int("window_minutes", windowMinutes))
		return 0
	}

	now := s.now()
	threshold := entity.ExpiryPolicy{WindowMinutes: windowMinutes}.Threshold(now)

	candidates, err := s.paymentRepo.FindPendingCreatedBefore(ctx, threshold)
	if err != nil {
		s.logger.Error("failed to find expired payments",
			zap.Time("threshold", threshold),
			zap.Error(err))
		return 0
	}

	expired := 0
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}

		payment, err := s.paymentRepo.UpdateStatus(ctx, candidate.ID, entity.StatusUpdate{
			Status:         entity.PaymentStatusExpired,
			ExpectedStatus: entity.PaymentStatusPending,
			UpdatedAt:      now,
		})
		if errors.Is(err, domainErrors.ErrStatusMismatch) {
			// finalized after the scan
			continue
		}
		if err != nil {
			s.logger.Error("failed to expire payment",
				zap.String("payment_id", candidate.ID),
				zap.Error(err))
			continue
		}
		if payment == nil {
			continue
		}

		s.recordTransition(ctx, candidate.ID, entity.PaymentStatusExpired, expiredLogMessage, now)
		expired++
	}

	return expired
}

// GetPayment returns the payment, or nil without error when it does not exist
func (s *PaymentLifecycleService) GetPayment(ctx context.Context, id string) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return s.expiry.Apply(payment), nil
}

// GetStatus returns the current status and whether the payment exists
func (s *PaymentLifecycleService) GetStatus(ctx context.Context, id string) (entity.PaymentStatus, bool, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return "", false, fmt.Errorf("failed to get payment status: %w", err)
	}
	if payment == nil {
		return "", false, nil
	}
	return payment.Status, true, nil
}

// transitionUpdate builds the side fields of a move to status: settlement
// outcomes get a completion time, and FAILED keeps message as its reason.
func transitionUpdate(status entity.PaymentStatus, message string, now time.Time) entity.StatusUpdate {
	update := entity.StatusUpdate{
		Status:    status,
		UpdatedAt: now,
	}
	if status.IsFinalOutcome() {
		completedAt := now
		update.CompletedAt = &completedAt
	}
	if status == entity.PaymentStatusFailed && message != "" {
		reason := message
		update.FailureReason = &reason
	}
	return update
}

// recordTransition appends the history entry and announces the transition.
// Neither failure undoes the status change.
func (s *PaymentLifecycleService) recordTransition(ctx context.Context, paymentID string, status entity.PaymentStatus, message string, at time.Time) {
	entry := &entity.PaymentLog{
		PaymentID: paymentID,
		Status:    status,
		Message:   message,
		CreatedAt: at,
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append payment log",
			zap.String("payment_id", paymentID),
			zap.String("status", string(status)),
			zap.Error(err))
	}

	event := entity.PaymentStatusEvent{
		PaymentID:  paymentID,
		Status:     status,
		Message:    message,
		OccurredAt: at,
	}
	if err := s.events.PublishStatusChange(ctx, event); err != nil {
		s.logger.Warn("failed to publish payment status event",
			zap.String("payment_id", paymentID),
			zap.String("status", string(status)),
			zap.Error(err))
	}
}
