package queue

import (
	"context"
	"time"

	"github.com/smartsupport/triage-backend/internal/domain"
)

// Producer sends job messages to a queue backend. EnqueueAfter defers
// delivery, which is how retry backoff is implemented.
type Producer interface {
	Enqueue(ctx context.Context, message domain.QueueMessage) error
	EnqueueAfter(ctx context.Context, message domain.QueueMessage, delay time.Duration) error
}

// Consumer delivers job messages to a handler. A nil handler return
// acknowledges the message; an error leaves it pending for redelivery, so a
// worker crash mid-job results in at-least-once processing.
type Consumer interface {
	Consume(ctx context.Context, handler func(context.Context, domain.QueueMessage) error) error
}
