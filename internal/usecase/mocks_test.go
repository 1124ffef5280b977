package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id string, update entity.StatusUpdate) (*entity.Payment, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context, limit, offset int) ([]*entity.Payment, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) FindPendingCreatedBefore(ctx context.Context, threshold time.Time) ([]*entity.Payment, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Payment), args.Error(1)
}

// MockPaymentLogRepository is a mock implementation of PaymentLogRepository
type MockPaymentLogRepository struct {
	mock.Mock
}

func (m *MockPaymentLogRepository) Append(ctx context.Context, log *entity.PaymentLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockPaymentLogRepository) ListByPaymentID(ctx context.Context, paymentID string) ([]*entity.PaymentLog, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PaymentLog), args.Error(1)
}

// MockQRRenderer is a mock implementation of QRRenderer
type MockQRRenderer struct {
	mock.Mock
}

func (m *MockQRRenderer) RenderDataURL(content string) (string, error) {
	args := m.Called(content)
	return args.String(0), args.Error(1)
}

// MockStatusEventPublisher is a mock implementation of StatusEventPublisher
type MockStatusEventPublisher struct {
	mock.Mock
}

func (m *MockStatusEventPublisher) PublishStatusChange(ctx context.Context, event entity.PaymentStatusEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
