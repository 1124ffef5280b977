package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	domainErrors "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/errors"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/model"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/repository"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db     *gorm.DB
	table  string
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository bound to table.
// An empty table name selects model.PaymentsTable.
func NewPaymentRepository(db *gorm.DB, table string, logger *zap.Logger) repository.PaymentRepository {
	if table == "" {
		table = model.PaymentsTable
	}
	return &paymentRepository{
		db:     db,
		table:  table,
		logger: logger,
	}
}

func (r *paymentRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// Create inserts a new payment record
func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	record := model.FromPaymentEntity(payment)
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()

	if err := r.query(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainErrors.ErrPaymentConflict
		}
		r.logger.Error("failed to create payment",
			zap.String("payment_id", payment.ID),
			zap.Error(err))
		return domainErrors.NewPersistenceError("create payment", err)
	}

	return nil
}

// GetByID retrieves a payment by id
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	var record model.Payment
	err := r.query(ctx).Where("id = ?", id).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get payment",
			zap.String("payment_id", id),
			zap.Error(err))
		return nil, domainErrors.NewPersistenceError("get payment", err)
	}

	return record.ToEntity(), nil
}

// UpdateStatus applies a partial status update, optionally guarded by the current status
func (r *paymentRepository) UpdateStatus(ctx context.Context, id string, update entity.StatusUpdate) (*entity.Payment, error) {
	updates := map[string]interface{}{
		"status":     string(update.Status),
		"updated_at": update.UpdatedAt.UTC(),
	}
	if update.CompletedAt != nil {
		updates["completed_at"] = update.CompletedAt.UTC()
	}
	if update.FailureReason != nil {
		updates["failure_reason"] = *update.FailureReason
	}

	query := r.query(ctx).Where("id = ?", id)
	if update.ExpectedStatus != "" {
		query = query.Where("status = ?", string(update.ExpectedStatus))
	}

	result := query.Updates(updates)
	if result.Error != nil {
		r.logger.Error("failed to update payment status",
			zap.String("payment_id", id),
			zap.String("status", string(update.Status)),
			zap.Error(result.Error))
		return nil, domainErrors.NewPersistenceError("update payment status", result.Error)
	}

	payment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, nil
	}
	if result.RowsAffected == 0 && update.ExpectedStatus != "" {
		return payment, domainErrors.ErrStatusMismatch
	}

	return payment, nil
}

// List retrieves a page of payments ordered newest first
func (r *paymentRepository) List(ctx context.Context, limit, offset int) ([]*entity.Payment, int64, error) {
	var total int64
	if err := r.query(ctx).Count(&total).Error; err != nil {
		r.logger.Error("failed to count payments", zap.Error(err))
		return nil, 0, domainErrors.NewPersistenceError("count payments", err)
	}

	var records []model.Payment
	err := r.query(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		r.logger.Error("failed to list payments",
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Error(err))
		return nil, 0, domainErrors.NewPersistenceError("list payments", err)
	}

	payments := make([]*entity.Payment, 0, len(records))
	for i := range records {
		payments = append(payments, records[i].ToEntity())
	}

	return payments, total, nil
}

// FindPendingCreatedBefore retrieves PENDING payments created at or before threshold
func (r *paymentRepository) FindPendingCreatedBefore(ctx context.Context, threshold time.Time) ([]*entity.Payment, error) {
	var records []model.Payment
	err := r.query(ctx).
		Where("status = ?", string(entity.PaymentStatusPending)).
		Where("created_at <= ?", threshold.UTC()).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		r.logger.Error("failed to find expired pending payments",
			zap.Time("threshold", threshold),
			zap.Error(err))
		return nil, domainErrors.NewPersistenceError("find pending payments", err)
	}

	payments := make([]*entity.Payment, 0, len(records))
	for i := range records {
		payments = append(payments, records[i].ToEntity())
	}

	return payments, nil
}

