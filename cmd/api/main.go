package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartsupport/triage-backend/internal/config"
	"github.com/smartsupport/triage-backend/internal/events"
	httpserver "github.com/smartsupport/triage-backend/internal/http"
	"github.com/smartsupport/triage-backend/internal/http/handlers"
	"github.com/smartsupport/triage-backend/internal/nlp"
	"github.com/smartsupport/triage-backend/internal/policy"
	"github.com/smartsupport/triage-backend/internal/queue"
	"github.com/smartsupport/triage-backend/internal/repository"
	"github.com/smartsupport/triage-backend/internal/respond"
	"github.com/smartsupport/triage-backend/internal/service"
	"github.com/smartsupport/triage-backend/internal/tracker"
	"github.com/smartsupport/triage-backend/internal/worker"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)

	checks := make(map[string]handlers.Pinger)

	tickets, ticketsCloser := setupRepository(ctx, cfg, logger, checks)
	defer ticketsCloser()

	producer, consumer, queueCloser := setupQueue(ctx, cfg, logger, checks)
	defer queueCloser()

	statusTracker, trackerCloser := setupTracker(cfg, logger)
	defer trackerCloser()

	publisher := setupPublisher(cfg, logger)
	defer publisher.Close()

	redactor := policy.NewRegexRedactor()
	ticketsService := service.NewTicketsService(redactor, producer, statusTracker, tickets, logger)

	handler := httpserver.NewRouter(httpserver.RouterDependencies{
		Tickets:         handlers.NewTicketsHandler(ticketsService, logger),
		Health:          handlers.NewHealthHandler(version, checks),
		Logger:          logger,
		APIKey:          cfg.APIKey,
		CORSOrigins:     cfg.CORSAllowedOrigins,
		RateLimitWindow: cfg.RateLimitWindow,
		RateLimitBudget: cfg.RateLimitBudget,
	})

	if cfg.WorkerEnabled {
		models := nlp.NewManager(nlp.ManagerConfig{
			ClassifierURL: cfg.ClassifierURL,
			TranslatorURL: cfg.TranslatorURL,
			DetectorURL:   cfg.DetectorURL,
		})
		pipeline := worker.NewPipeline(
			worker.PipelineConfig{BaseLanguage: cfg.BaseLanguage, TopK: cfg.TopK},
			redactor, models, models, models,
			respond.NewResolver(), tickets, logger,
		)
		processor := worker.NewProcessor(
			worker.ProcessorConfig{MaxRetries: cfg.MaxRetries, Backoff: cfg.RetryBackoff},
			pipeline, statusTracker, producer, consumer, publisher, logger,
		)
		go func() {
			if err := processor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("embedded worker stopped")
			}
		}()
		logger.Info().Msg("embedded worker started")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.Port).Msg("api listening")
		errChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(parsed).With().Timestamp().Str("service", "triage-api").Logger()
}

func setupRepository(
	ctx context.Context,
	cfg config.Config,
	logger zerolog.Logger,
	checks map[string]handlers.Pinger,
) (repository.TicketsRepository, func()) {
	if cfg.DatabaseURL == "" {
		logger.Info().Msg("DATABASE_URL not configured, using in-memory ticket store")
		return repository.NewMemoryTicketsRepository(), func() {}
	}

	pgRepo, err := repository.NewPostgresTicketsRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("postgres unavailable, falling back to in-memory ticket store")
		return repository.NewMemoryTicketsRepository(), func() {}
	}
	logger.Info().Msg("postgres ticket store initialized")
	checks["postgres"] = pgRepo
	return pgRepo, func() {
		pgRepo.Close()
	}
}

func setupQueue(
	ctx context.Context,
	cfg config.Config,
	logger zerolog.Logger,
	checks map[string]handlers.Pinger,
) (queue.Producer, queue.Consumer, func()) {
	if cfg.RedisAddr == "" {
		logger.Info().Msg("REDIS_ADDR not configured, using in-process queue")
		local := queue.NewLocalQueue(512, logger)
		return local, local, func() {}
	}

	streams, err := queue.NewStreamsQueue(ctx, queue.StreamsConfig{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		Stream:    cfg.RedisStream,
		DLQStream: cfg.RedisDLQ,
		Group:     cfg.RedisGroup,
		Consumer:  cfg.WorkerName,
	}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("redis unavailable, falling back to in-process queue")
		local := queue.NewLocalQueue(512, logger)
		return local, local, func() {}
	}
	logger.Info().Msg("redis streams queue initialized")
	checks["redis"] = streams
	return streams, streams, func() {
		_ = streams.Close()
	}
}

func setupTracker(cfg config.Config, logger zerolog.Logger) (tracker.StatusTracker, func()) {
	if cfg.RedisAddr == "" {
		logger.Info().Msg("REDIS_ADDR not configured, using in-memory status tracker")
		return tracker.NewMemoryTracker(), func() {}
	}
	redisTracker := tracker.NewRedisTracker(tracker.RedisConfig{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		ResultTTL: cfg.ResultTTL,
	})
	return redisTracker, func() {
		_ = redisTracker.Close()
	}
}

func setupPublisher(cfg config.Config, logger zerolog.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NoopPublisher{}
	}
	logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka completion events enabled")
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
}
