package config

import "time"

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// PaymentConfig holds the payment lifecycle settings
type PaymentConfig struct {
	ExpiryMinutes       int           `yaml:"expiry_minutes"`
	ExpiryCheckInterval time.Duration `yaml:"expiry_check_interval"`
	DefaultPageSize     int           `yaml:"default_page_size"`
}

type RedisConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Password      string `yaml:"password"`
	DB            int    `yaml:"db"`
	EventsChannel string `yaml:"events_channel"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	FilePath    string `yaml:"file_path"`
	Development bool   `yaml:"development"`
}
