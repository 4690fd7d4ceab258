package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/smartsupport/triage-backend/internal/domain"
)

// CompletionEvent is emitted once per job reaching a terminal state, for
// downstream consumers (analytics, alerting) that should not poll the API.
type CompletionEvent struct {
	JobID       string           `json:"job_id"`
	Status      domain.JobStatus `json:"status"`
	Intent      string           `json:"intent,omitempty"`
	Confidence  float64          `json:"confidence,omitempty"`
	Language    string           `json:"language,omitempty"`
	Attempts    int              `json:"attempts"`
	Error       string           `json:"error,omitempty"`
	CompletedAt time.Time        `json:"completed_at"`
}

type Publisher interface {
	PublishCompletion(ctx context.Context, event CompletionEvent) error
	Close() error
}

// KafkaPublisher writes completion events keyed by job id, so per-job
// ordering survives partitioning.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		logger: logger,
	}
}

func (p *KafkaPublisher) PublishCompletion(ctx context.Context, event CompletionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode completion event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.JobID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write completion event: %w", err)
	}
	p.logger.Debug().Str("job_id", event.JobID).Str("status", string(event.Status)).Msg("completion event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishCompletion(context.Context, CompletionEvent) error { return nil }
func (NoopPublisher) Close() error                                            { return nil }
