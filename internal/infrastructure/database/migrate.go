package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/model"
)

// Tables names the two tables the service stores its data in
type Tables struct {
	Payments    string
	PaymentLogs string
}

func (t Tables) withDefaults() Tables {
	if t.Payments == "" {
		t.Payments = model.PaymentsTable
	}
	if t.PaymentLogs == "" {
		t.PaymentLogs = model.PaymentLogsTable
	}
	return t
}

// Migrate runs database migrations
func Migrate(db *gorm.DB, tables Tables, logger *zap.Logger) error {
	tables = tables.withDefaults()
	logger.Info("Running database migrations...",
		zap.String("payments_table", tables.Payments),
		zap.String("payment_logs_table", tables.PaymentLogs))

	if err := db.Table(tables.Payments).AutoMigrate(&model.Payment{}); err != nil {
		logger.Error("Failed to migrate payments table", zap.Error(err))
		return fmt.Errorf("failed to migrate %s: %w", tables.Payments, err)
	}

	if err := db.Table(tables.PaymentLogs).AutoMigrate(&model.PaymentLog{}); err != nil {
		logger.Error("Failed to migrate payment logs table", zap.Error(err))
		return fmt.Errorf("failed to migrate %s: %w", tables.PaymentLogs, err)
	}

	if err := createCustomIndexes(db, tables); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := createForeignKeys(db, tables); err != nil {
			logger.Error("Failed to create foreign keys", zap.Error(err))
			return err
		}
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes that GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB, tables Tables) error {
	// Expiry sweep only ever scans pending rows
	stmt := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_pending_created ON %s (created_at) WHERE status = 'PENDING'`,
		tables.Payments, tables.Payments)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create pending index: %w", err)
	}
	return nil
}

// createForeignKeys links log rows to their payment. Postgres only: sqlite
// cannot add constraints to an existing table.
func createForeignKeys(db *gorm.DB, tables Tables) error {
	constraint := fmt.Sprintf("fk_%s_payment", tables.PaymentLogs)

	var exists bool
	err := db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, constraint).Scan(&exists).Error
	if err != nil {
		return fmt.Errorf("failed to check constraint %s: %w", constraint, err)
	}
	if exists {
		return nil
	}

	stmt := fmt.Sprintf(`ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (payment_id) REFERENCES %s (id) ON DELETE CASCADE`,
		tables.PaymentLogs, constraint, tables.Payments)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create constraint %s: %w", constraint, err)
	}
	return nil
}
