package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/adapter/messaging"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/config"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/database"
	grpcServer "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/grpc"
	httpServer "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/http"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/qrcode"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/redis"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/scheduler"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/usecase"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/pkg/logger"
	pkgmessaging "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/pkg/messaging"
)

func main() {
	startedAt := time.Now()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		FilePath:    cfg.Log.FilePath,
		Development: cfg.Log.Development,
		ServiceName: cfg.Service.Name,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting UPI payment service",
		zap.String("service", cfg.Service.Name),
		zap.String("environment", cfg.Service.Environment),
		zap.String("version", cfg.Service.Version))

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	tables := database.Tables{
		Payments:    cfg.Database.PaymentsTable,
		PaymentLogs: cfg.Database.PaymentLogsTable,
	}

	// Run database migrations
	if err := database.Migrate(db, tables, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, tables, zapLogger)

	// Redis is optional; it carries status events and shared rate limit counters
	var redisClient *goredis.Client
	events := usecase.StatusEventPublisher(usecase.NopStatusEventPublisher{})
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(&cfg.Redis, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		events = messaging.NewStatusEventPublisher(
			pkgmessaging.NewRedisPublisher(redisClient),
			cfg.Redis.EventsChannel,
			zapLogger,
		)
	}

	policy := entity.NewExpiryPolicy(cfg.Payment.ExpiryMinutes)
	lifecycle := usecase.NewPaymentLifecycleService(
		repos.Payment,
		repos.PaymentLog,
		qrcode.NewRenderer(),
		policy,
		zapLogger,
		usecase.WithEventPublisher(events),
	)
	query := usecase.NewPaymentQueryService(repos.Payment, repos.PaymentLog, policy, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryScheduler := scheduler.NewExpiryScheduler(lifecycle, policy, cfg.Payment.ExpiryCheckInterval, zapLogger)
	expiryScheduler.Start(ctx)

	deps := httpServer.Dependencies{
		Lifecycle: lifecycle,
		Query:     query,
		StartedAt: startedAt,
	}
	if redisClient != nil {
		deps.Redis = redisClient
	}
	httpSrv := httpServer.NewServer(cfg, deps, zapLogger)

	var grpcSrv *grpcServer.Server
	if cfg.Server.GRPC.Enabled {
		grpcSrv = grpcServer.NewServer(cfg.Server.GRPC, zapLogger)
		go func() {
			if err := grpcSrv.Start(); err != nil {
				zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
			}
		}()
	}

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	zapLogger.Info("Shutting down servers...", zap.String("signal", sig.String()))

	expiryScheduler.Stop()

	if err := httpSrv.Stop(); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}
	if grpcSrv != nil {
		grpcSrv.Stop()
	}

	zapLogger.Info("Servers shut down successfully")
}
