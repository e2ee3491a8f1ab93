package config

import (
	"errors"
	"os"
	"strings"
)

// Config is the process-wide configuration, read once at startup and
// never mutated afterwards.
type Config struct {
	// VNPAY merchant credentials and endpoints.
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string

	// Base URL the customer is redirected back to after settlement.
	FrontendURL string

	// Redis connection.
	RedisAddr     string
	RedisPassword string

	// Optional endpoint that receives settlement notices.
	NotifyURL    string
	NotifySecret string
}

// Load reads configuration from the environment and validates the
// required values.
func Load() (*Config, error) {
	cfg := &Config{
		TmnCode:       strings.TrimSpace(os.Getenv("VNP_TMN_CODE")),
		HashSecret:    strings.TrimSpace(os.Getenv("VNP_HASH_SECRET")),
		PayURL:        strings.TrimSpace(os.Getenv("VNP_URL")),
		ReturnURL:     strings.TrimSpace(os.Getenv("VNP_RETURN_URL")),
		FrontendURL:   strings.TrimSuffix(strings.TrimSpace(os.Getenv("FRONTEND_URL")), "/"),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		NotifyURL:     strings.TrimSpace(os.Getenv("PAYMENT_NOTIFY_URL")),
		NotifySecret:  os.Getenv("PAYMENT_NOTIFY_SECRET"),
	}

	if cfg.TmnCode == "" || cfg.HashSecret == "" {
		return nil, errors.New("VNP_TMN_CODE and VNP_HASH_SECRET must be set")
	}
	if cfg.PayURL == "" || cfg.ReturnURL == "" {
		return nil, errors.New("VNP_URL and VNP_RETURN_URL must be set")
	}
	if cfg.FrontendURL == "" {
		return nil, errors.New("FRONTEND_URL must be set")
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}

	return cfg, nil
}
