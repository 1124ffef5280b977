package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	handler "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/adapter/handler/http"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/config"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/ratelimit"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/usecase"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/pkg/logger"
)

const (
	generalLimitMessage = "Too many requests from this IP, please try again later."
	createLimitMessage  = "Too many payment requests, please try again later."

	serverTimeout   = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	bodyLimit       = "1M"
)

// Dependencies are the services exposed over HTTP
type Dependencies struct {
	Lifecycle *usecase.PaymentLifecycleService
	Query     *usecase.PaymentQueryService
	// Redis backs the rate limiters when set so limits hold across instances.
	Redis     redis.UniversalClient
	StartedAt time.Time
}

// Server HTTP 서버 구조체
type Server struct {
	router  *echo.Echo
	server  *http.Server
	logger  *zap.Logger
	address string
}

// NewServer builds the echo router with middleware and every route registered
func NewServer(cfg *config.Config, deps Dependencies, zapLogger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logger.WithEchoLogger(e, zapLogger)
	e.Validator = handler.NewRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(logger.NewEchoRequestLogger(zapLogger))

	address := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)

	s := &Server{
		router: e,
		server: &http.Server{
			Addr:         address,
			ReadTimeout:  serverTimeout,
			WriteTimeout: serverTimeout,
			IdleTimeout:  serverTimeout,
		},
		logger:  zapLogger,
		address: address,
	}
	s.registerRoutes(cfg, deps)
	return s
}

func (s *Server) registerRoutes(cfg *config.Config, deps Dependencies) {
	startedAt := deps.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	healthHandler := handler.NewHealthHandler(startedAt)
	paymentHandler := handler.NewPaymentHandler(deps.Lifecycle, deps.Query, cfg.Payment.DefaultPageSize, s.logger)
	webhookHandler := handler.NewWebhookHandler(deps.Lifecycle, s.logger)

	general := ratelimit.Limit{
		Name:    "general",
		Max:     cfg.RateLimit.GeneralMax,
		Window:  cfg.RateLimit.Window,
		Message: generalLimitMessage,
	}
	create := ratelimit.Limit{
		Name:    "create",
		Max:     cfg.RateLimit.CreateMax,
		Window:  cfg.RateLimit.Window,
		Message: createLimitMessage,
	}
	generalLimiter := ratelimit.Middleware(ratelimit.NewStore(deps.Redis, general, s.logger), general, s.logger)
	createLimiter := ratelimit.Middleware(ratelimit.NewStore(deps.Redis, create, s.logger), create, s.logger)

	// 헬스 체크
	s.router.GET("/health", healthHandler.Health)

	api := s.router.Group("/api", generalLimiter)

	payments := api.Group("/payments")
	payments.POST("", paymentHandler.CreatePayment, createLimiter)
	payments.GET("", paymentHandler.ListPayments)
	payments.GET("/:id", paymentHandler.GetPayment)
	payments.GET("/:id/status", paymentHandler.GetPaymentStatus)
	payments.GET("/:id/logs", paymentHandler.GetPaymentLogs)
	payments.POST("/:id/simulate-status", paymentHandler.SimulateStatus)

	api.POST("/webhooks/status-update", webhookHandler.StatusUpdate)
}

// Router Echo 인스턴스 반환
func (s *Server) Router() *echo.Echo {
	return s.router
}

// Start HTTP 서버 시작
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("address", s.address))

	s.server.Handler = s.router
	if err := s.router.StartServer(s.server); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop HTTP 서버 종료
func (s *Server) Stop() error {
	s.logger.Info("HTTP server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.router.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}
