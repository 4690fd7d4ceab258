package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsupport/triage-backend/internal/domain"
)

func TestLocalQueueDeliversInOrder(t *testing.T) {
	q := NewLocalQueue(8, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, q.Enqueue(ctx, domain.QueueMessage{JobID: "a"}))
	require.NoError(t, q.Enqueue(ctx, domain.QueueMessage{JobID: "b"}))

	received := make(chan string, 2)
	go func() {
		_ = q.Consume(ctx, func(_ context.Context, m domain.QueueMessage) error {
			received <- m.JobID
			return nil
		})
	}()

	assert.Equal(t, "a", <-received)
	assert.Equal(t, "b", <-received)
}

func TestLocalQueueEnqueueAfterDelaysDelivery(t *testing.T) {
	q := NewLocalQueue(8, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	require.NoError(t, q.EnqueueAfter(ctx, domain.QueueMessage{JobID: "delayed"}, 50*time.Millisecond))

	received := make(chan time.Time, 1)
	go func() {
		_ = q.Consume(ctx, func(context.Context, domain.QueueMessage) error {
			received <- time.Now()
			return nil
		})
	}()

	select {
	case at := <-received:
		assert.GreaterOrEqual(t, at.Sub(start), 50*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("delayed message never delivered")
	}
}

func TestLocalQueueRejectsWhenFull(t *testing.T) {
	q := NewLocalQueue(1, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, domain.QueueMessage{JobID: "a"}))
	assert.Error(t, q.Enqueue(ctx, domain.QueueMessage{JobID: "b"}))
}

func TestLocalQueueRedeliversOnHandlerError(t *testing.T) {
	q := NewLocalQueue(8, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, q.Enqueue(ctx, domain.QueueMessage{JobID: "flaky"}))

	attempts := make(chan int, 4)
	count := 0
	go func() {
		_ = q.Consume(ctx, func(context.Context, domain.QueueMessage) error {
			count++
			attempts <- count
			if count == 1 {
				return assert.AnError
			}
			return nil
		})
	}()

	assert.Equal(t, 1, <-attempts)
	select {
	case n := <-attempts:
		assert.Equal(t, 2, n)
	case <-time.After(3 * time.Second):
		t.Fatal("message was not redelivered after handler error")
	}
}
