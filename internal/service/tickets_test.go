package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsupport/triage-backend/internal/domain"
	"github.com/smartsupport/triage-backend/internal/policy"
	"github.com/smartsupport/triage-backend/internal/repository"
	"github.com/smartsupport/triage-backend/internal/tracker"
)

type stubProducer struct {
	mu       sync.Mutex
	messages []domain.QueueMessage
	fail     bool
}

func (p *stubProducer) Enqueue(_ context.Context, m domain.QueueMessage) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, m)
	return nil
}

func (p *stubProducer) EnqueueAfter(ctx context.Context, m domain.QueueMessage, _ time.Duration) error {
	return p.Enqueue(ctx, m)
}

func newService(producer *stubProducer, statusTracker tracker.StatusTracker) *TicketsService {
	return NewTicketsService(
		policy.NewRegexRedactor(),
		producer,
		statusTracker,
		repository.NewMemoryTicketsRepository(),
		zerolog.Nop(),
	)
}

func TestSubmitRegistersAndEnqueues(t *testing.T) {
	ctx := context.Background()
	producer := &stubProducer{}
	statusTracker := tracker.NewMemoryTracker()
	svc := newService(producer, statusTracker)

	jobID, err := svc.Submit(ctx, "my card was stolen, reach me at jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	snapshot, err := svc.Status(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, snapshot.Status)

	require.Len(t, producer.messages, 1)
	assert.Equal(t, jobID, producer.messages[0].JobID)
	assert.NotContains(t, producer.messages[0].Text, "jane@example.com",
		"raw PII must never reach the broker")
	assert.Contains(t, producer.messages[0].Text, "<EMAIL_ADDRESS>")
}

func TestSubmitCompensatesWhenEnqueueFails(t *testing.T) {
	ctx := context.Background()
	producer := &stubProducer{fail: true}
	statusTracker := tracker.NewMemoryTracker()
	svc := newService(producer, statusTracker)

	_, err := svc.Submit(ctx, "hello")
	require.Error(t, err)

	// The registered job must not linger as PENDING forever.
	active, err := statusTracker.ActiveCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, active)
}

func TestRevokePassesThroughTrackerErrors(t *testing.T) {
	ctx := context.Background()
	producer := &stubProducer{}
	statusTracker := tracker.NewMemoryTracker()
	svc := newService(producer, statusTracker)

	assert.ErrorIs(t, svc.Revoke(ctx, "missing"), tracker.ErrNotFound)

	jobID, err := svc.Submit(ctx, "hello")
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, jobID))
	assert.ErrorIs(t, svc.Revoke(ctx, jobID), tracker.ErrConflict)
}

func TestHistoryLimitDefaultsAndCaps(t *testing.T) {
	ctx := context.Background()
	producer := &stubProducer{}
	statusTracker := tracker.NewMemoryTracker()
	tickets := repository.NewMemoryTicketsRepository()
	svc := NewTicketsService(policy.NewRegexRedactor(), producer, statusTracker, tickets, zerolog.Nop())

	for i := 0; i < 150; i++ {
		require.NoError(t, tickets.Insert(ctx, domain.TicketRecord{ID: "t", CreatedAt: time.Now()}))
	}

	records, err := svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 10)

	records, err = svc.History(ctx, 500)
	require.NoError(t, err)
	assert.Len(t, records, 100)
}

func TestStatsIncludesActiveTasks(t *testing.T) {
	ctx := context.Background()
	producer := &stubProducer{}
	statusTracker := tracker.NewMemoryTracker()
	svc := newService(producer, statusTracker)

	_, err := svc.Submit(ctx, "first")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "second")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ActiveTasks)
	assert.Zero(t, stats.TotalTickets)
}
