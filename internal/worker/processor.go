package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartsupport/triage-backend/internal/domain"
	"github.com/smartsupport/triage-backend/internal/events"
	"github.com/smartsupport/triage-backend/internal/queue"
	"github.com/smartsupport/triage-backend/internal/tracker"
)

// ProcessorConfig bounds the retry policy. MaxRetries counts total
// attempts, not re-deliveries: a job is tried at most MaxRetries times.
type ProcessorConfig struct {
	MaxRetries int
	Backoff    time.Duration
}

func (c ProcessorConfig) normalized() ProcessorConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.Backoff <= 0 {
		c.Backoff = 60 * time.Second
	}
	return c
}

// Processor consumes queued jobs, drives the status state machine, and
// applies the retry policy around the pipeline.
type Processor struct {
	cfg       ProcessorConfig
	pipeline  *Pipeline
	tracker   tracker.StatusTracker
	producer  queue.Producer
	consumer  queue.Consumer
	publisher events.Publisher
	logger    zerolog.Logger
}

func NewProcessor(
	cfg ProcessorConfig,
	pipeline *Pipeline,
	statusTracker tracker.StatusTracker,
	producer queue.Producer,
	consumer queue.Consumer,
	publisher events.Publisher,
	logger zerolog.Logger,
) *Processor {
	return &Processor{
		cfg:       cfg.normalized(),
		pipeline:  pipeline,
		tracker:   statusTracker,
		producer:  producer,
		consumer:  consumer,
		publisher: publisher,
		logger:    logger,
	}
}

// Run blocks consuming jobs until ctx is cancelled.
func (p *Processor) Run(ctx context.Context) error {
	return p.consumer.Consume(ctx, p.Handle)
}

// Handle processes one delivery. A nil return acknowledges the message;
// errors leave it pending for broker redelivery.
func (p *Processor) Handle(ctx context.Context, message domain.QueueMessage) error {
	attempt := message.Attempt + 1
	logger := p.logger.With().Str("job_id", message.JobID).Int("attempt", attempt).Logger()

	snapshot, err := p.tracker.Get(ctx, message.JobID)
	if errors.Is(err, tracker.ErrNotFound) {
		// Expired or never tracked; nothing to update, drop it.
		logger.Warn().Msg("dropping message for unknown job")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load job snapshot: %w", err)
	}
	if snapshot.Status.Terminal() {
		// Revoked while queued, or a duplicate delivery after completion.
		logger.Info().Str("status", string(snapshot.Status)).Msg("skipping terminal job")
		return nil
	}
	if attempt < snapshot.Attempts {
		// A later attempt has already run; this is a stale duplicate of an
		// older delivery.
		logger.Info().Int("current_attempt", snapshot.Attempts).Msg("skipping stale delivery")
		return nil
	}

	// A STARTED snapshot here means the previous owner crashed before
	// finishing; MarkStarted re-enters the attempt.
	if err := p.tracker.MarkStarted(ctx, message.JobID, attempt); err != nil {
		if errors.Is(err, tracker.ErrConflict) {
			// Lost a race with the revoke endpoint.
			logger.Info().Msg("job no longer runnable, skipping")
			return nil
		}
		return fmt.Errorf("mark started: %w", err)
	}

	result, runErr := p.pipeline.Run(ctx, message.JobID, message.Text)
	if runErr == nil {
		if err := p.tracker.MarkSucceeded(ctx, message.JobID, result); err != nil {
			logger.Error().Err(err).Msg("recording success failed")
		}
		p.publishCompletion(ctx, events.CompletionEvent{
			JobID:       message.JobID,
			Status:      domain.JobStatusSuccess,
			Intent:      result.Intent,
			Confidence:  result.Confidence,
			Language:    result.Language,
			Attempts:    attempt,
			CompletedAt: time.Now(),
		})
		logger.Info().Str("intent", result.Intent).Float64("confidence", result.Confidence).Msg("job completed")
		return nil
	}

	if attempt >= p.cfg.MaxRetries {
		if err := p.tracker.MarkFailed(ctx, message.JobID, runErr.Error()); err != nil {
			logger.Error().Err(err).Msg("recording failure failed")
		}
		p.publishCompletion(ctx, events.CompletionEvent{
			JobID:       message.JobID,
			Status:      domain.JobStatusFailure,
			Attempts:    attempt,
			Error:       runErr.Error(),
			CompletedAt: time.Now(),
		})
		logger.Error().Err(runErr).Msg("job failed, retries exhausted")
		return nil
	}

	if err := p.tracker.MarkRetrying(ctx, message.JobID, runErr.Error()); err != nil {
		logger.Error().Err(err).Msg("recording retry failed")
	}
	retryMessage := message
	retryMessage.Attempt = attempt
	if err := p.producer.EnqueueAfter(ctx, retryMessage, p.cfg.Backoff); err != nil {
		// Leave the original delivery pending; redelivery will pick the
		// attempt back up from RETRY.
		return fmt.Errorf("schedule retry: %w", err)
	}
	logger.Warn().Err(runErr).Dur("backoff", p.cfg.Backoff).Msg("job scheduled for retry")
	return nil
}

func (p *Processor) publishCompletion(ctx context.Context, event events.CompletionEvent) {
	if err := p.publisher.PublishCompletion(ctx, event); err != nil {
		p.logger.Error().Err(err).Str("job_id", event.JobID).Msg("publishing completion event failed")
	}
}
