package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/smartsupport/triage-backend/internal/domain"
)

// MemoryTracker keeps snapshots in process memory. It backs tests and
// single-node deployments that run without Redis.
type MemoryTracker struct {
	mu   sync.RWMutex
	jobs map[string]domain.JobSnapshot
	now  func() time.Time
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{
		jobs: make(map[string]domain.JobSnapshot),
		now:  time.Now,
	}
}

func (t *MemoryTracker) Create(_ context.Context, jobID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.jobs[jobID] = domain.JobSnapshot{
		JobID:     jobID,
		Status:    domain.JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (t *MemoryTracker) MarkStarted(_ context.Context, jobID string, attempt int) error {
	return t.mutate(jobID, func(snapshot *domain.JobSnapshot) error {
		if err := advance(snapshot, domain.JobStatusStarted, t.now()); err != nil {
			return err
		}
		snapshot.Attempts = attempt
		snapshot.Error = nil
		return nil
	})
}

func (t *MemoryTracker) MarkRetrying(_ context.Context, jobID string, reason string) error {
	return t.mutate(jobID, func(snapshot *domain.JobSnapshot) error {
		if err := advance(snapshot, domain.JobStatusRetry, t.now()); err != nil {
			return err
		}
		snapshot.Error = &reason
		return nil
	})
}

func (t *MemoryTracker) MarkFailed(_ context.Context, jobID string, reason string) error {
	return t.mutate(jobID, func(snapshot *domain.JobSnapshot) error {
		if err := advance(snapshot, domain.JobStatusFailure, t.now()); err != nil {
			return err
		}
		snapshot.Error = &reason
		return nil
	})
}

func (t *MemoryTracker) MarkSucceeded(_ context.Context, jobID string, result domain.ClassificationResult) error {
	return t.mutate(jobID, func(snapshot *domain.JobSnapshot) error {
		if err := advance(snapshot, domain.JobStatusSuccess, t.now()); err != nil {
			return err
		}
		snapshot.Result = &result
		snapshot.Error = nil
		return nil
	})
}

func (t *MemoryTracker) Revoke(_ context.Context, jobID string) error {
	return t.mutate(jobID, func(snapshot *domain.JobSnapshot) error {
		return advance(snapshot, domain.JobStatusRevoked, t.now())
	})
}

func (t *MemoryTracker) Get(_ context.Context, jobID string) (domain.JobSnapshot, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snapshot, ok := t.jobs[jobID]
	if !ok {
		return domain.JobSnapshot{}, ErrNotFound
	}
	return snapshot, nil
}

func (t *MemoryTracker) ActiveCount(_ context.Context) (int64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var active int64
	for _, snapshot := range t.jobs {
		if !snapshot.Status.Terminal() {
			active++
		}
	}
	return active, nil
}

func (t *MemoryTracker) mutate(jobID string, apply func(*domain.JobSnapshot) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	snapshot, ok := t.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	if err := apply(&snapshot); err != nil {
		return err
	}
	t.jobs[jobID] = snapshot
	return nil
}
