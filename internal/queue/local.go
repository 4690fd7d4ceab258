package queue

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartsupport/triage-backend/internal/domain"
)

// LocalQueue is the in-process fallback used when no broker is configured.
// Delivery is not durable across restarts; it exists for development and
// tests.
type LocalQueue struct {
	messages chan domain.QueueMessage
	logger   zerolog.Logger
}

func NewLocalQueue(capacity int, logger zerolog.Logger) *LocalQueue {
	if capacity <= 0 {
		capacity = 256
	}
	return &LocalQueue{
		messages: make(chan domain.QueueMessage, capacity),
		logger:   logger,
	}
}

func (q *LocalQueue) Enqueue(_ context.Context, message domain.QueueMessage) error {
	select {
	case q.messages <- message:
		return nil
	default:
		return errors.New("local queue is full")
	}
}

func (q *LocalQueue) EnqueueAfter(ctx context.Context, message domain.QueueMessage, delay time.Duration) error {
	if delay <= 0 {
		return q.Enqueue(ctx, message)
	}
	time.AfterFunc(delay, func() {
		select {
		case q.messages <- message:
		default:
			q.logger.Error().Str("job_id", message.JobID).Msg("local queue full, dropping delayed message")
		}
	})
	return nil
}

func (q *LocalQueue) Consume(ctx context.Context, handler func(context.Context, domain.QueueMessage) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case message := <-q.messages:
			if err := handler(ctx, message); err != nil {
				q.logger.Warn().Err(err).Str("job_id", message.JobID).Msg("handler failed, requeueing")
				// Best-effort redelivery mirrors the broker's pending
				// entry semantics.
				_ = q.EnqueueAfter(ctx, message, time.Second)
			}
		}
	}
}
