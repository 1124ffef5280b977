package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	domainErrors "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/errors"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/model"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/repository"
)

// paymentLogRepository implements the PaymentLogRepository interface.
// It only ever inserts and reads; log rows are never updated or deleted.
type paymentLogRepository struct {
	db     *gorm.DB
	table  string
	logger *zap.Logger
}

// NewPaymentLogRepository creates a new payment log repository bound to table.
// An empty table name selects model.PaymentLogsTable.
func NewPaymentLogRepository(db *gorm.DB, table string, logger *zap.Logger) repository.PaymentLogRepository {
	if table == "" {
		table = model.PaymentLogsTable
	}
	return &paymentLogRepository{
		db:     db,
		table:  table,
		logger: logger,
	}
}

// Append inserts a new log entry
func (r *paymentLogRepository) Append(ctx context.Context, log *entity.PaymentLog) error {
	record := model.FromPaymentLogEntity(log)
	record.ID = 0
	record.CreatedAt = record.CreatedAt.UTC()

	if err := r.db.WithContext(ctx).Table(r.table).Create(record).Error; err != nil {
		r.logger.Error("failed to append payment log",
			zap.String("payment_id", log.PaymentID),
			zap.String("status", string(log.Status)),
			zap.Error(err))
		return domainErrors.NewPersistenceError("append payment log", err)
	}

	log.ID = record.ID
	return nil
}

// ListByPaymentID retrieves the status history of a payment, newest first
func (r *paymentLogRepository) ListByPaymentID(ctx context.Context, paymentID string) ([]*entity.PaymentLog, error) {
	var records []model.PaymentLog
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("payment_id = ?", paymentID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error
	if err != nil {
		r.logger.Error("failed to list payment logs",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return nil, domainErrors.NewPersistenceError("list payment logs", err)
	}

	logs := make([]*entity.PaymentLog, 0, len(records))
	for i := range records {
		logs = append(logs, records[i].ToEntity())
	}

	return logs, nil
}
