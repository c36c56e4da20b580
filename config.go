package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all environment variables for the storefront.
type Config struct {
	Port         string
	RedisURL     string
	DatabaseURL  string
	KafkaBrokers []string
	OrderTopic   string

	GeminiAPIKey  string
	GeminiBaseURL string

	StripeSecretKey     string
	StripeWebhookSecret string

	AdminPasskey string

	// CODSettleDelay mimics the settle latency of a cash-on-delivery
	// confirmation; SimulateDelay paces the fallback settlement used when
	// the payment gateway is unreachable.
	CODSettleDelay time.Duration
	SimulateDelay  time.Duration
}

// LoadConfig loads environment variables into a Config struct and validates
// them. Payment and AI keys are optional: the services degrade to their
// fallback paths when the keys are absent.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		KafkaBrokers:        strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		OrderTopic:          getEnv("ORDER_TOPIC", "orders"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:       getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AdminPasskey:        os.Getenv("ADMIN_PASSKEY"),
		CODSettleDelay:      getDurationEnv("COD_SETTLE_DELAY", 2*time.Second),
		SimulateDelay:       getDurationEnv("SIMULATE_SETTLE_DELAY", 2*time.Second),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AdminPasskey == "" {
		return nil, fmt.Errorf("ADMIN_PASSKEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
