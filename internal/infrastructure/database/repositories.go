package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/adapter/repository"
	domainRepo "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Payment    domainRepo.PaymentRepository
	PaymentLog domainRepo.PaymentLogRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, tables Tables, logger *zap.Logger) *Repositories {
	tables = tables.withDefaults()
	return &Repositories{
		Payment:    repository.NewPaymentRepository(db, tables.Payments, logger),
		PaymentLog: repository.NewPaymentLogRepository(db, tables.PaymentLogs, logger),
	}
}
