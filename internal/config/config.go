// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     int    `env:"PORT, default=8080"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Empty disables authentication; intended for local runs only.
	APIKey string `env:"API_KEY"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`

	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW, default=1m"`
	RateLimitBudget int           `env:"RATE_LIMIT_BUDGET, default=5"`

	// Empty RedisAddr selects the in-process queue and tracker.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB, default=0"`
	RedisStream   string `env:"REDIS_STREAM, default=triage_jobs"`
	RedisDLQ      string `env:"REDIS_DLQ_STREAM"`
	RedisGroup    string `env:"REDIS_GROUP, default=triage_workers"`

	// Empty DatabaseURL selects the in-memory ticket store.
	DatabaseURL string `env:"DATABASE_URL"`

	BaseLanguage string `env:"BASE_LANGUAGE, default=en"`
	TopK         int    `env:"TOP_K, default=3"`

	MaxRetries   int           `env:"MAX_RETRIES, default=3"`
	RetryBackoff time.Duration `env:"RETRY_BACKOFF, default=60s"`
	ResultTTL    time.Duration `env:"RESULT_TTL, default=24h"`

	// Remote model endpoints; empty falls back to the embedded models.
	ClassifierURL string `env:"CLASSIFIER_URL"`
	TranslatorURL string `env:"TRANSLATOR_URL"`
	DetectorURL   string `env:"DETECTOR_URL"`

	// Completion events are only published when brokers are set.
	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaTopic   string   `env:"KAFKA_TOPIC, default=ticket-completions"`

	// WorkerEnabled runs the pipeline inside the API process, for
	// single-binary deployments.
	WorkerEnabled bool   `env:"WORKER_ENABLED, default=false"`
	WorkerCount   int    `env:"WORKER_COUNT, default=2"`
	WorkerName    string `env:"WORKER_NAME, default=worker-1"`
}

func Load(ctx context.Context) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.RateLimitBudget < 1 {
		return Config{}, fmt.Errorf("RATE_LIMIT_BUDGET must be at least 1, got %d", cfg.RateLimitBudget)
	}
	if cfg.MaxRetries < 1 {
		return Config{}, fmt.Errorf("MAX_RETRIES must be at least 1, got %d", cfg.MaxRetries)
	}
	if cfg.WorkerCount < 1 {
		return Config{}, fmt.Errorf("WORKER_COUNT must be at least 1, got %d", cfg.WorkerCount)
	}
	return cfg, nil
}
