package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/config"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/infrastructure/database"
)

type report struct {
	Driver      string                 `yaml:"driver"`
	GeneratedAt time.Time              `yaml:"generated_at"`
	Tables      []database.TableReport `yaml:"tables"`
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// production logs go to stderr, stdout carries only the report
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, logger); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tables, err := database.InspectTables(ctx, db, database.Tables{
		Payments:    cfg.Database.PaymentsTable,
		PaymentLogs: cfg.Database.PaymentLogsTable,
	})
	if err != nil {
		logger.Fatal("Failed to inspect tables", zap.Error(err))
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(report{
		Driver:      cfg.Database.Driver,
		GeneratedAt: time.Now().UTC(),
		Tables:      tables,
	}); err != nil {
		logger.Fatal("Failed to write report", zap.Error(err))
	}
	if err := enc.Close(); err != nil {
		logger.Fatal("Failed to write report", zap.Error(err))
	}
}
