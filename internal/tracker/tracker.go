package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartsupport/triage-backend/internal/domain"
)

var (
	// ErrNotFound means no snapshot exists for the job id.
	ErrNotFound = errors.New("job not found")
	// ErrConflict means the requested transition is illegal from the
	// job's current status.
	ErrConflict = errors.New("illegal status transition")
)

// StatusTracker owns the lifecycle snapshot of every job. All mutations go
// through the transition rules on domain.JobStatus; an illegal step returns
// ErrConflict and leaves the snapshot untouched.
type StatusTracker interface {
	Create(ctx context.Context, jobID string) error
	MarkStarted(ctx context.Context, jobID string, attempt int) error
	MarkRetrying(ctx context.Context, jobID string, reason string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
	MarkSucceeded(ctx context.Context, jobID string, result domain.ClassificationResult) error
	Revoke(ctx context.Context, jobID string) error
	Get(ctx context.Context, jobID string) (domain.JobSnapshot, error)
	ActiveCount(ctx context.Context) (int64, error)
}

// advance applies one legal transition to the snapshot in place.
func advance(snapshot *domain.JobSnapshot, next domain.JobStatus, now time.Time) error {
	if !snapshot.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrConflict, snapshot.Status, next)
	}
	snapshot.Status = next
	snapshot.UpdatedAt = now
	return nil
}
