package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/config"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/database"
	httpserver "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/http"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/qrcode"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/usecase"
)

var dbCounter int64

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type paymentBody struct {
	ID             string  `json:"id"`
	UPIID          string  `json:"upiId"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	QRCodeDataURL  string  `json:"qrCodeDataUrl"`
	UPIIntentURL   string  `json:"upiIntentUrl"`
	TransactionRef string  `json:"transactionRef"`
	FailureReason  string  `json:"failureReason"`
	ExpiresAt      string  `json:"expiresAt"`
}

func testConfig() *config.Config {
	return &config.Config{
		Payment: config.PaymentConfig{
			ExpiryMinutes:       15,
			ExpiryCheckInterval: 5 * time.Minute,
			DefaultPageSize:     5,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{
			Window:     15 * time.Minute,
			GeneralMax: 1000,
			CreateMax:  1000,
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httpserver.Server {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewConnection(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, atomic.AddInt64(&dbCounter, 1)),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close(db, zap.NewNop())
	})
	require.NoError(t, database.Migrate(db, database.Tables{}, zap.NewNop()))

	repos := database.NewRepositories(db, database.Tables{}, zap.NewNop())
	policy := entity.NewExpiryPolicy(cfg.Payment.ExpiryMinutes)

	return httpserver.NewServer(cfg, httpserver.Dependencies{
		Lifecycle: usecase.NewPaymentLifecycleService(repos.Payment, repos.PaymentLog, qrcode.NewRenderer(), policy, zap.NewNop()),
		Query:     usecase.NewPaymentQueryService(repos.Payment, repos.PaymentLog, policy, zap.NewNop()),
		StartedAt: time.Now().Add(-time.Minute),
	}, zap.NewNop())
}

func do(t *testing.T, s *httpserver.Server, method, path, body string) (int, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func createPayment(t *testing.T, s *httpserver.Server) paymentBody {
	t.Helper()

	code, env := do(t, s, http.MethodPost, "/api/payments", `{"upiId":"shop@upi","amount":"150.50","note":"order 42"}`)
	require.Equal(t, http.StatusCreated, code, env.Error)

	var p paymentBody
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestCreatePayment(t *testing.T) {
	s := newTestServer(t, testConfig())

	p := createPayment(t, s)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "shop@upi", p.UPIID)
	assert.Equal(t, 150.5, p.Amount)
	assert.Equal(t, "PENDING", p.Status)
	assert.True(t, strings.HasPrefix(p.QRCodeDataURL, "data:image/png;base64,"))
	assert.Contains(t, p.UPIIntentURL, "am=150.50")
	assert.Contains(t, p.UPIIntentURL, "tr="+p.TransactionRef)
	assert.NotEmpty(t, p.ExpiresAt)
}

func TestCreatePayment_Validation(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"short upi id", `{"upiId":"ab","amount":10}`, "UPI ID is required and must be at least 3 characters."},
		{"zero amount", `{"upiId":"shop@upi","amount":0}`, "Amount must be a positive number."},
		{"negative amount", `{"upiId":"shop@upi","amount":-5}`, "Amount must be a positive number."},
		{"malformed body", `{"upiId":`, "Invalid request body"},
		{"amount rounds to zero", `{"upiId":"shop@upi","amount":0.004}`, "Amount must be at least 0.01."},
		{"upi id too long", fmt.Sprintf(`{"upiId":%q,"amount":10}`, strings.Repeat("u", 256)),
			"UPI ID must be at most 255 characters."},
		{"payer name too long", fmt.Sprintf(`{"upiId":"shop@upi","amount":10,"payerName":%q}`, strings.Repeat("p", 256)),
			"Payer name must be at most 255 characters."},
		{"note too long", fmt.Sprintf(`{"upiId":"shop@upi","amount":"10","note":%q}`, strings.Repeat("n", 2500)),
			"Note must be at most 500 characters."},
		{"intent exceeds qr capacity", fmt.Sprintf(`{"upiId":"shop@upi","amount":10,"note":%q}`, strings.Repeat("€", 500)),
			"Payment details are too long to encode as a QR code."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, s, http.MethodPost, "/api/payments", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.want, env.Error)
		})
	}
}

func TestGetPayment(t *testing.T) {
	s := newTestServer(t, testConfig())
	p := createPayment(t, s)

	code, env := do(t, s, http.MethodGet, "/api/payments/"+p.ID, "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, env = do(t, s, http.MethodGet, "/api/payments/"+p.ID+"/status", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, fmt.Sprintf(`{"paymentId":%q,"status":"PENDING"}`, p.ID), string(env.Data))

	code, env = do(t, s, http.MethodGet, "/api/payments/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Payment not found", env.Error)

	code, env = do(t, s, http.MethodGet, "/api/payments/missing/status", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Payment not found", env.Error)
}

func TestListPayments(t *testing.T) {
	s := newTestServer(t, testConfig())
	for i := 0; i < 7; i++ {
		createPayment(t, s)
	}

	code, env := do(t, s, http.MethodGet, "/api/payments", "")
	require.Equal(t, http.StatusOK, code)

	var page struct {
		Payments []paymentBody `json:"payments"`
		Total    int64         `json:"total"`
		Page     int           `json:"page"`
		Limit    int           `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Payments, 5)
	assert.Equal(t, int64(7), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Limit)

	code, env = do(t, s, http.MethodGet, "/api/payments?page=2&limit=5", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Payments, 2)

	code, env = do(t, s, http.MethodGet, "/api/payments?page=0", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Page must be greater than 0", env.Error)

	code, env = do(t, s, http.MethodGet, "/api/payments?limit=101", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Limit must be between 1 and 100", env.Error)
}

func TestSimulateStatus(t *testing.T) {
	s := newTestServer(t, testConfig())
	p := createPayment(t, s)
	path := "/api/payments/" + p.ID + "/simulate-status"

	code, env := do(t, s, http.MethodPost, path, `{"status":"PENDING"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Status must be SUCCESS or FAILED for simulation.", env.Error)

	code, env = do(t, s, http.MethodPost, path, `{"status":"failed"}`)
	require.Equal(t, http.StatusOK, code, env.Error)
	var updated paymentBody
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "FAILED", updated.Status)
	assert.Equal(t, "Simulated FAILED webhook", updated.FailureReason)

	code, env = do(t, s, http.MethodPost, path, `{"status":"SUCCESS"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Payment is already finalized.", env.Error)

	code, env = do(t, s, http.MethodPost, "/api/payments/missing/simulate-status", `{"status":"SUCCESS"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Payment not found", env.Error)
}

func TestPaymentLogs(t *testing.T) {
	s := newTestServer(t, testConfig())
	p := createPayment(t, s)

	code, _ := do(t, s, http.MethodPost, "/api/payments/"+p.ID+"/simulate-status", `{"status":"SUCCESS"}`)
	require.Equal(t, http.StatusOK, code)

	code, env := do(t, s, http.MethodGet, "/api/payments/"+p.ID+"/logs", "")
	require.Equal(t, http.StatusOK, code)
	var logs []struct {
		ID      string `json:"id"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &logs))
	require.Len(t, logs, 2)
	assert.Equal(t, "SUCCESS", logs[0].Status)
	assert.Equal(t, "Simulated SUCCESS webhook", logs[0].Message)
	assert.Equal(t, "PENDING", logs[1].Status)
	assert.Equal(t, "Payment created", logs[1].Message)

	code, env = do(t, s, http.MethodGet, "/api/payments/missing/logs", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestStatusWebhook(t *testing.T) {
	s := newTestServer(t, testConfig())
	p := createPayment(t, s)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"missing payment id", `{"status":"SUCCESS"}`, http.StatusBadRequest, "paymentId is required"},
		{"unknown status", fmt.Sprintf(`{"paymentId":%q,"status":"DONE"}`, p.ID), http.StatusBadRequest, "Invalid status"},
		{"missing status", fmt.Sprintf(`{"paymentId":%q}`, p.ID), http.StatusBadRequest, "Invalid status"},
		{"non final status", fmt.Sprintf(`{"paymentId":%q,"status":"EXPIRED"}`, p.ID), http.StatusBadRequest, "Webhook can only mark payments as SUCCESS or FAILED"},
		{"unknown payment", `{"paymentId":"missing","status":"SUCCESS"}`, http.StatusNotFound, "Payment not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, s, http.MethodPost, "/api/webhooks/status-update", tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantErr, env.Error)
		})
	}

	code, env := do(t, s, http.MethodPost, "/api/webhooks/status-update",
		fmt.Sprintf(`{"paymentId":%q,"status":"SUCCESS","message":"bank ok"}`, p.ID))
	require.Equal(t, http.StatusOK, code, env.Error)
	var updated paymentBody
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "SUCCESS", updated.Status)

	// a trusted callback may overwrite a finalized payment
	code, env = do(t, s, http.MethodPost, "/api/webhooks/status-update",
		fmt.Sprintf(`{"paymentId":%q,"status":"FAILED","message":"reversed"}`, p.ID))
	require.Equal(t, http.StatusOK, code, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "FAILED", updated.Status)
	assert.Equal(t, "reversed", updated.FailureReason)
}

func TestRouteNotFound(t *testing.T) {
	s := newTestServer(t, testConfig())

	code, env := do(t, s, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Error)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    string  `json:"status"`
		Timestamp string  `json:"timestamp"`
		Uptime    float64 `json:"uptime"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	_, err := time.Parse(time.RFC3339Nano, body.Timestamp)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, body.Uptime, 60.0)
}

func TestCreateRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.CreateMax = 2
	s := newTestServer(t, cfg)

	createPayment(t, s)
	createPayment(t, s)

	code, env := do(t, s, http.MethodPost, "/api/payments", `{"upiId":"shop@upi","amount":1}`)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "Too many payment requests, please try again later.", env.Error)

	code, _ = do(t, s, http.MethodGet, "/api/payments", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/payments", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/payments", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
