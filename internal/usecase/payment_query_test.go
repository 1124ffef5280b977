package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	domainErrors "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/errors"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/usecase"
)

func TestPaymentQueryService_ListPayments(t *testing.T) {
	ctx := context.Background()

	t.Run("passes offset and echoes page", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		service := usecase.NewPaymentQueryService(payments, new(MockPaymentLogRepository), entity.NewExpiryPolicy(20), zap.NewNop())

		items := []*entity.Payment{pendingPayment("p-6"), pendingPayment("p-7")}
		payments.On("List", ctx, 5, 5).Return(items, int64(12), nil).Once()

		page, err := service.ListPayments(ctx, entity.PaginationParams{Page: 2, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(12), page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 5, page.Limit)
		require.Len(t, page.Payments, 2)
		assert.Equal(t, items[0].CreatedAt.Add(20*time.Minute), page.Payments[0].ExpiresAt)
		payments.AssertExpectations(t)
	})

	t.Run("rejects out of range parameters", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		service := usecase.NewPaymentQueryService(payments, new(MockPaymentLogRepository), entity.NewExpiryPolicy(15), zap.NewNop())

		for _, params := range []entity.PaginationParams{
			{Page: 0, Limit: 5},
			{Page: 1, Limit: 0},
			{Page: 1, Limit: 101},
		} {
			_, err := service.ListPayments(ctx, params)
			assert.True(t, domainErrors.IsValidation(err), "params %+v", params)
		}
		payments.AssertNumberOfCalls(t, "List", 0)
	})

	t.Run("store failure", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		service := usecase.NewPaymentQueryService(payments, new(MockPaymentLogRepository), entity.NewExpiryPolicy(15), zap.NewNop())
		payments.On("List", ctx, 5, 0).Return(nil, int64(0), errors.New("timeout")).Once()

		_, err := service.ListPayments(ctx, entity.PaginationParams{Page: 1, Limit: 5})
		assert.Error(t, err)
	})
}

func TestPaymentQueryService_ListLogs(t *testing.T) {
	ctx := context.Background()
	logs := new(MockPaymentLogRepository)
	service := usecase.NewPaymentQueryService(new(MockPaymentRepository), logs, entity.NewExpiryPolicy(15), zap.NewNop())

	history := []*entity.PaymentLog{
		{ID: 2, PaymentID: "p-1", Status: entity.PaymentStatusSuccess},
		{ID: 1, PaymentID: "p-1", Status: entity.PaymentStatusPending, Message: "Payment created"},
	}
	logs.On("ListByPaymentID", ctx, "p-1").Return(history, nil).Once()
	logs.On("ListByPaymentID", ctx, "missing").Return(nil, nil).Once()

	got, err := service.ListLogs(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, history, got)

	empty, err := service.ListLogs(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
	logs.AssertExpectations(t)
}
