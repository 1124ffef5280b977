package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/pkg/config"
)

// ServiceName selects configs/{env}/upi.yaml and the UPI_ env prefix.
const ServiceName = "upi"

type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Payment   PaymentConfig   `yaml:"payment"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
}

// Defaults returns the value of every key when neither the config file nor
// the environment sets it.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":        "upi-payment",
		"service.environment": "dev",
		"service.version":     "0.1.0",

		"server.http.host":    "0.0.0.0",
		"server.http.port":    3002,
		"server.grpc.enabled": true,
		"server.grpc.host":    "0.0.0.0",
		"server.grpc.port":    9092,

		"database.driver":             DriverPostgres,
		"database.host":               "localhost",
		"database.port":               5432,
		"database.name":               "upi_payments",
		"database.user":               "postgres",
		"database.password":           "",
		"database.sslmode":            "disable",
		"database.path":               "upi.db",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "5m",
		"database.conn_max_idle_time": "1m",
		"database.payments_table":     "payments",
		"database.payment_logs_table": "payment_logs",

		"payment.expiry_minutes":        15,
		"payment.expiry_check_interval": "5m",
		"payment.default_page_size":     5,

		"cors.allowed_origins": []string{"http://localhost:3000", "http://localhost:5173"},

		"rate_limit.window":      "15m",
		"rate_limit.general_max": 100,
		"rate_limit.create_max":  20,

		"redis.enabled":        false,
		"redis.host":           "localhost",
		"redis.port":           6379,
		"redis.password":       "",
		"redis.db":             0,
		"redis.events_channel": "payment.status",

		"log.level":       "info",
		"log.format":      "json",
		"log.output":      "stdout",
		"log.file_path":   "",
		"log.development": false,
	}
}

// LoadConfig reads the service configuration from file, env and defaults.
func LoadConfig() (*Config, error) {
	src, err := pkgconfig.Load(ServiceName, pkgconfig.WithDefaults(Defaults()))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := FromSource(src)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromSource builds the typed configuration from a key/value source.
func FromSource(src pkgconfig.Config) *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        src.GetString("service.name"),
			Environment: src.GetString("service.environment"),
			Version:     src.GetString("service.version"),
		},
		Server: ServerConfig{
			HTTP: HTTPConfig{
				Host: src.GetString("server.http.host"),
				Port: src.GetInt("server.http.port"),
			},
			GRPC: GRPCConfig{
				Enabled: src.GetBool("server.grpc.enabled"),
				Host:    src.GetString("server.grpc.host"),
				Port:    src.GetInt("server.grpc.port"),
			},
		},
		Database: DatabaseConfig{
			Driver:           src.GetString("database.driver"),
			Host:             src.GetString("database.host"),
			Port:             src.GetInt("database.port"),
			Name:             src.GetString("database.name"),
			User:             src.GetString("database.user"),
			Password:         src.GetString("database.password"),
			SSLMode:          src.GetString("database.sslmode"),
			Path:             src.GetString("database.path"),
			MaxOpenConns:     src.GetInt("database.max_open_conns"),
			MaxIdleConns:     src.GetInt("database.max_idle_conns"),
			ConnMaxLifetime:  src.GetDuration("database.conn_max_lifetime"),
			ConnMaxIdleTime:  src.GetDuration("database.conn_max_idle_time"),
			PaymentsTable:    src.GetString("database.payments_table"),
			PaymentLogsTable: src.GetString("database.payment_logs_table"),
		},
		Payment: PaymentConfig{
			ExpiryMinutes:       src.GetInt("payment.expiry_minutes"),
			ExpiryCheckInterval: src.GetDuration("payment.expiry_check_interval"),
			DefaultPageSize:     src.GetInt("payment.default_page_size"),
		},
		CORS: CORSConfig{
			AllowedOrigins: src.GetStringSlice("cors.allowed_origins"),
		},
		RateLimit: RateLimitConfig{
			Window:     src.GetDuration("rate_limit.window"),
			GeneralMax: src.GetInt("rate_limit.general_max"),
			CreateMax:  src.GetInt("rate_limit.create_max"),
		},
		Redis: RedisConfig{
			Enabled:       src.GetBool("redis.enabled"),
			Host:          src.GetString("redis.host"),
			Port:          src.GetInt("redis.port"),
			Password:      src.GetString("redis.password"),
			DB:            src.GetInt("redis.db"),
			EventsChannel: src.GetString("redis.events_channel"),
		},
		Log: LogConfig{
			Level:       src.GetString("log.level"),
			Format:      src.GetString("log.format"),
			Output:      src.GetString("log.output"),
			FilePath:    src.GetString("log.file_path"),
			Development: src.GetBool("log.development"),
		},
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Payment.ExpiryMinutes <= 0 {
		return fmt.Errorf("payment.expiry_minutes must be positive, got %d", c.Payment.ExpiryMinutes)
	}
	if c.Payment.ExpiryCheckInterval <= 0 {
		return fmt.Errorf("payment.expiry_check_interval must be positive, got %s", c.Payment.ExpiryCheckInterval)
	}
	if c.Payment.DefaultPageSize < 1 || c.Payment.DefaultPageSize > 100 {
		return fmt.Errorf("payment.default_page_size must be within [1,100], got %d", c.Payment.DefaultPageSize)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive, got %s", c.RateLimit.Window)
	}
	return nil
}

// ExpiryWindow returns the payment window as a duration.
func (c *PaymentConfig) ExpiryWindow() time.Duration {
	return time.Duration(c.ExpiryMinutes) * time.Minute
}
