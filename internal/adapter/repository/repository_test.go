package repository_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/config"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	domainErrors "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/errors"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/database"
)

var dbCounter int64

func newTestRepositories(t *testing.T, tables database.Tables) (*database.Repositories, *gorm.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, atomic.AddInt64(&dbCounter, 1)),
	}

	db, err := database.NewConnection(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close(db, zap.NewNop())
	})

	require.NoError(t, database.Migrate(db, tables, zap.NewNop()))
	return database.NewRepositories(db, tables, zap.NewNop()), db
}

func newPayment(id string, createdAt time.Time) *entity.Payment {
	return &entity.Payment{
		ID:             id,
		TransactionRef: "TR-" + id,
		UPIID:          "shop@upi",
		Amount:         decimal.RequireFromString("125.50"),
		PayerName:      "Asha",
		Note:           "order",
		Status:         entity.PaymentStatusPending,
		QRCodeDataURL:  "data:image/png;base64,AAAA",
		UPIIntentURL:   "upi://pay?pa=shop%40upi&am=125.50&cu=INR&tn=order&tr=TR-" + id,
		Metadata:       map[string]interface{}{"order_id": "42"},
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

func TestPaymentRepository_CreateAndGet(t *testing.T) {
	repos, _ := newTestRepositories(t, database.Tables{})
	ctx := context.Background()
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	payment := newPayment("p-1", createdAt)
	require.NoError(t, repos.Payment.Create(ctx, payment))

	got, err := repos.Payment.GetByID(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "p-1", got.ID)
	assert.Equal(t, "TR-p-1", got.TransactionRef)
	assert.Equal(t, "shop@upi", got.UPIID)
	assert.True(t, decimal.RequireFromString("125.50").Equal(got.Amount))
	assert.Equal(t, "Asha", got.PayerName)
	assert.Equal(t, "order", got.Note)
	assert.Equal(t, entity.PaymentStatusPending, got.Status)
	assert.Equal(t, payment.UPIIntentURL, got.UPIIntentURL)
	assert.Equal(t, "42", got.Metadata["order_id"])
	assert.Equal(t, payment.UPIIntentURL, got.Metadata["upi_intent_url"])
	assert.True(t, createdAt.Equal(got.CreatedAt))
	assert.Nil(t, got.CompletedAt)
}

func TestPaymentRepository_GetMissing(t *testing.T) {
	repos, _ := newTestRepositories(t, database.Tables{})

	got, err := repos.Payment.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestPaymentRepository_CreateConflict(t *testing.T) {
	repos, _ := newTestRepositories(t, database.Tables{})
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repos.Payment.Create(ctx, newPayment("dup", now)))

	duplicate := newPayment("dup", now)
	duplicate.TransactionRef = "TR-other"
	err := repos.Payment.Create(ctx, duplicate)
	assert.ErrorIs(t, err, domainErrors.ErrPaymentConflict)
}

func TestPaymentRepository_UpdateStatus(t *testing.T) {
	repos, _ := newTestRepositories(t, database.Tables{})
	ctx := context.Background()
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Payment.Create(ctx, newPayment("p-1", createdAt)))

	completedAt := createdAt.Add(time.Minute)
	reason := "insufficient funds"
	updated, err := repos.Payment.UpdateStatus(ctx, "p-1", entity.StatusUpdate{
		Status:        entity.PaymentStatusFailed,
		UpdatedAt:     completedAt,
		CompletedAt:   &completedAt,
		FailureReason: &reason,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, entity.PaymentStatusFailed, updated.Status)
	assert.Equal(t, reason, updated.FailureReason)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, completedAt.Equal(*updated.CompletedAt))
	assert.True(t, completedAt.Equal(updated.UpdatedAt))
	assert.True(t, createdAt.Equal(updated.CreatedAt))
}

func TestPaymentRepository_UpdateStatusMissing(t *testing.T) {
	repos, _ := newTestRepositories(t, database.Tables{})

	updated, err := repos.Payment.UpdateStatus(context.Background(), "missing", entity.StatusUpdate{
		Status:    entity.PaymentStatusSuccess,
		UpdatedAt: time.Now().UTC(),
	})
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestPaymentRepository_ConditionalUpdate(t *testing.T) {
	repos, _ := newTestRepositories(t, database.Tables{})
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, repos.Payment.Create(ctx, newPayment("p-1", now)))

	first, err := repos.Payment.UpdateStatus(ctx, "p-1", entity.StatusUpdate{
		Status:         entity.PaymentStatusSuccess,
		ExpectedStatus: entity.PaymentStatusPending,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, first.Status)

	second, err := repos.Payment.UpdateStatus(ctx, "p-1", entity.StatusUpdate{
		Status:         entity.PaymentStatusExpired,
		ExpectedStatus: entity.PaymentStatusPending,
		UpdatedAt:      now,
	})
	assert.ErrorIs(t, err, domainErrors.ErrStatusMismatch)
	require.NotNil(t, second)
	assert.Equal(t, entity.PaymentStatusSuccess, second.Status)
}

func TestPaymentRepository_ListPagination(t *testing.T) {
	repos, _ := newTestRepositories(t, database.Tables{})
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 1; i <= 12; i++ {
		require.NoError(t, repos.Payment.Create(ctx, newPayment(fmt.Sprintf("p-%02d", i), base.Add(time.Duration(i)*time.Minute))))
	}

	payments, total, err := repos.Payment.List(ctx, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, payments, 5)

	// newest first: p-12 .. p-01, so the second page holds p-07 .. p-03
	want := []string{"p-07", "p-06", "p-05", "p-04", "p-03"}
	for i, payment := range payments {
		assert.Equal(t, want[i], payment.ID)
	}
}

func TestPaymentRepository_FindPendingCreatedBefore(t *testing.T) {
	repos, _ := newTestRepositories(t, database.Tables{})
	ctx := context.Background()
	threshold := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repos.Payment.Create(ctx, newPayment("old", threshold.Add(-time.Hour))))
	require.NoError(t, repos.Payment.Create(ctx, newPayment("edge", threshold)))
	require.NoError(t, repos.Payment.Create(ctx, newPayment("fresh", threshold.Add(time.Minute))))

	settled := newPayment("settled", threshold.Add(-time.Hour))
	settled.Status = entity.PaymentStatusSuccess
	require.NoError(t, repos.Payment.Create(ctx, settled))

	payments, err := repos.Payment.FindPendingCreatedBefore(ctx, threshold)
	require.NoError(t, err)

	ids := make([]string, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"old", "edge"}, ids)
}

func TestPaymentLogRepository_AppendAndList(t *testing.T) {
	repos, _ := newTestRepositories(t, database.Tables{})
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Payment.Create(ctx, newPayment("p-1", base)))

	created := &entity.PaymentLog{PaymentID: "p-1", Status: entity.PaymentStatusPending, Message: "Payment created", CreatedAt: base}
	require.NoError(t, repos.PaymentLog.Append(ctx, created))
	assert.NotZero(t, created.ID)

	settled := &entity.PaymentLog{PaymentID: "p-1", Status: entity.PaymentStatusSuccess, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, repos.PaymentLog.Append(ctx, settled))

	logs, err := repos.PaymentLog.ListByPaymentID(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.PaymentStatusSuccess, logs[0].Status)
	assert.Equal(t, "", logs[0].Message)
	assert.Equal(t, entity.PaymentStatusPending, logs[1].Status)
	assert.Equal(t, "Payment created", logs[1].Message)

	empty, err := repos.PaymentLog.ListByPaymentID(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepositories_CustomTableNames(t *testing.T) {
	tables := database.Tables{Payments: "upi_payments", PaymentLogs: "upi_payment_logs"}
	repos, db := newTestRepositories(t, tables)
	ctx := context.Background()

	require.NoError(t, repos.Payment.Create(ctx, newPayment("p-1", time.Now().UTC())))
	require.NoError(t, repos.PaymentLog.Append(ctx, &entity.PaymentLog{
		PaymentID: "p-1",
		Status:    entity.PaymentStatusPending,
		CreatedAt: time.Now().UTC(),
	}))

	assert.True(t, db.Migrator().HasTable("upi_payments"))
	assert.True(t, db.Migrator().HasTable("upi_payment_logs"))
	assert.False(t, db.Migrator().HasTable("payments"))

	var count int64
	require.NoError(t, db.Table("upi_payment_logs").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
