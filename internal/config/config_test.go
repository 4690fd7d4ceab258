package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "en", cfg.BaseLanguage)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 60*time.Second, cfg.RetryBackoff)
	assert.Equal(t, 24*time.Hour, cfg.ResultTTL)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.RateLimitBudget)
	assert.False(t, cfg.WorkerEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BASE_LANGUAGE", "tr")
	t.Setenv("RETRY_BACKOFF", "30s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("WORKER_ENABLED", "true")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "tr", cfg.BaseLanguage)
	assert.Equal(t, 30*time.Second, cfg.RetryBackoff)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.WorkerEnabled)
}

func TestLoadRejectsBadBounds(t *testing.T) {
	t.Setenv("MAX_RETRIES", "0")
	_, err := Load(context.Background())
	assert.Error(t, err)
}
