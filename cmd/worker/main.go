package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/smartsupport/triage-backend/internal/config"
	"github.com/smartsupport/triage-backend/internal/events"
	"github.com/smartsupport/triage-backend/internal/nlp"
	"github.com/smartsupport/triage-backend/internal/policy"
	"github.com/smartsupport/triage-backend/internal/queue"
	"github.com/smartsupport/triage-backend/internal/repository"
	"github.com/smartsupport/triage-backend/internal/respond"
	"github.com/smartsupport/triage-backend/internal/tracker"
	"github.com/smartsupport/triage-backend/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)

	if cfg.RedisAddr == "" {
		logger.Fatal().Msg("REDIS_ADDR is required: a standalone worker needs the shared broker")
	}

	tickets, ticketsCloser := setupRepository(ctx, cfg, logger)
	defer ticketsCloser()

	statusTracker := tracker.NewRedisTracker(tracker.RedisConfig{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		ResultTTL: cfg.ResultTTL,
	})
	defer statusTracker.Close()
	if err := statusTracker.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("redis unreachable")
	}

	publisher := setupPublisher(cfg, logger)
	defer publisher.Close()

	models := nlp.NewManager(nlp.ManagerConfig{
		ClassifierURL: cfg.ClassifierURL,
		TranslatorURL: cfg.TranslatorURL,
		DetectorURL:   cfg.DetectorURL,
	})
	models.Warm()

	pipeline := worker.NewPipeline(
		worker.PipelineConfig{BaseLanguage: cfg.BaseLanguage, TopK: cfg.TopK},
		policy.NewRegexRedactor(), models, models, models,
		respond.NewResolver(), tickets, logger,
	)

	// Each worker gets its own consumer name so the broker can tell their
	// pending entries apart.
	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.WorkerCount; i++ {
		consumerName := fmt.Sprintf("%s-%d", cfg.WorkerName, i)
		workerLogger := logger.With().Str("consumer", consumerName).Logger()

		streams, err := queue.NewStreamsQueue(ctx, queue.StreamsConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			Stream:    cfg.RedisStream,
			DLQStream: cfg.RedisDLQ,
			Group:     cfg.RedisGroup,
			Consumer:  consumerName,
		}, workerLogger)
		if err != nil {
			logger.Fatal().Err(err).Str("consumer", consumerName).Msg("queue setup failed")
		}
		defer streams.Close()

		processor := worker.NewProcessor(
			worker.ProcessorConfig{MaxRetries: cfg.MaxRetries, Backoff: cfg.RetryBackoff},
			pipeline, statusTracker, streams, streams, publisher, workerLogger,
		)
		group.Go(func() error {
			workerLogger.Info().Msg("worker started")
			return processor.Run(groupCtx)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("worker pool stopped")
		os.Exit(1)
	}
	logger.Info().Msg("worker pool drained")
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(parsed).With().Timestamp().Str("service", "triage-worker").Logger()
}

func setupRepository(ctx context.Context, cfg config.Config, logger zerolog.Logger) (repository.TicketsRepository, func()) {
	if cfg.DatabaseURL == "" {
		logger.Warn().Msg("DATABASE_URL not configured, classified tickets will not be persisted durably")
		return repository.NewMemoryTicketsRepository(), func() {}
	}
	pgRepo, err := repository.NewPostgresTicketsRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres setup failed")
	}
	return pgRepo, func() { pgRepo.Close() }
}

func setupPublisher(cfg config.Config, logger zerolog.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NoopPublisher{}
	}
	logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka completion events enabled")
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
}
