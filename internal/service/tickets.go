package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartsupport/triage-backend/internal/domain"
	"github.com/smartsupport/triage-backend/internal/policy"
	"github.com/smartsupport/triage-backend/internal/queue"
	"github.com/smartsupport/triage-backend/internal/repository"
	"github.com/smartsupport/triage-backend/internal/tracker"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// TicketsService is the gateway between the HTTP surface and the async
// pipeline. Submission redacts before anything leaves the process, so raw
// PII never reaches the broker or the tracker.
type TicketsService struct {
	redactor policy.Redactor
	producer queue.Producer
	tracker  tracker.StatusTracker
	tickets  repository.TicketsRepository
	logger   zerolog.Logger
	newID    func() string
}

func NewTicketsService(
	redactor policy.Redactor,
	producer queue.Producer,
	statusTracker tracker.StatusTracker,
	tickets repository.TicketsRepository,
	logger zerolog.Logger,
) *TicketsService {
	return &TicketsService{
		redactor: redactor,
		producer: producer,
		tracker:  statusTracker,
		tickets:  tickets,
		logger:   logger,
		newID:    func() string { return uuid.NewString() },
	}
}

// Submit admits one ticket: redact, register as PENDING, enqueue. The job id
// is returned immediately; classification happens in a worker.
func (s *TicketsService) Submit(ctx context.Context, text string) (string, error) {
	jobID := s.newID()
	redacted := s.redactor.Redact(text)

	if err := s.tracker.Create(ctx, jobID); err != nil {
		return "", fmt.Errorf("register job: %w", err)
	}

	message := domain.QueueMessage{
		JobID:       jobID,
		Text:        redacted,
		RequestedAt: time.Now(),
	}
	if err := s.producer.Enqueue(ctx, message); err != nil {
		// The job was registered but will never run. Revoke it so pollers
		// see a terminal state rather than a PENDING that never moves.
		if revokeErr := s.tracker.Revoke(ctx, jobID); revokeErr != nil {
			s.logger.Error().Err(revokeErr).Str("job_id", jobID).Msg("compensating revoke failed")
		}
		return "", fmt.Errorf("enqueue job: %w", err)
	}

	s.logger.Info().Str("job_id", jobID).Msg("ticket accepted")
	return jobID, nil
}

// Status returns the tracker snapshot for one job.
func (s *TicketsService) Status(ctx context.Context, jobID string) (domain.JobSnapshot, error) {
	return s.tracker.Get(ctx, jobID)
}

// Revoke cancels a job that has not finished. tracker.ErrConflict means the
// job already reached a terminal state.
func (s *TicketsService) Revoke(ctx context.Context, jobID string) error {
	if err := s.tracker.Revoke(ctx, jobID); err != nil {
		return err
	}
	s.logger.Info().Str("job_id", jobID).Msg("job revoked")
	return nil
}

// History returns the newest persisted classifications. A non-positive limit
// falls back to the default; oversized limits are capped.
func (s *TicketsService) History(ctx context.Context, limit int) ([]domain.TicketRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.tickets.History(ctx, limit)
}

// Stats merges the persisted totals with the tracker's in-flight count.
func (s *TicketsService) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := s.tickets.Stats(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	active, err := s.tracker.ActiveCount(ctx)
	if err != nil {
		// Stats are advisory; a tracker hiccup should not fail the call.
		s.logger.Warn().Err(err).Msg("active task count unavailable")
	} else {
		stats.ActiveTasks = active
	}
	return stats, nil
}
