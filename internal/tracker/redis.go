package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartsupport/triage-backend/internal/domain"
)

const (
	jobKeyPrefix = "triage:job:"
	activeSetKey = "triage:jobs:active"
)

// RedisConfig configures the shared snapshot store. ResultTTL bounds how
// long a finished job stays queryable.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	ResultTTL time.Duration
}

func (c RedisConfig) normalized() RedisConfig {
	if c.ResultTTL <= 0 {
		c.ResultTTL = 24 * time.Hour
	}
	return c
}

// RedisTracker stores one JSON snapshot per job, expiring with the result
// TTL. Non-terminal job ids are mirrored into a set so the stats endpoint
// can count in-flight work without scanning the keyspace.
type RedisTracker struct {
	client    *redis.Client
	resultTTL time.Duration
	now       func() time.Time
}

func NewRedisTracker(cfg RedisConfig) *RedisTracker {
	cfg = cfg.normalized()
	return &RedisTracker{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		resultTTL: cfg.ResultTTL,
		now:       time.Now,
	}
}

// NewRedisTrackerWithClient reuses an existing connection, typically the
// one already opened for the queue.
func NewRedisTrackerWithClient(client *redis.Client, resultTTL time.Duration) *RedisTracker {
	if resultTTL <= 0 {
		resultTTL = 24 * time.Hour
	}
	return &RedisTracker{client: client, resultTTL: resultTTL, now: time.Now}
}

func (t *RedisTracker) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}

func (t *RedisTracker) Close() error {
	return t.client.Close()
}

func (t *RedisTracker) Create(ctx context.Context, jobID string) error {
	now := t.now()
	snapshot := domain.JobSnapshot{
		JobID:     jobID,
		Status:    domain.JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	pipe := t.client.TxPipeline()
	pipe.Set(ctx, jobKeyPrefix+jobID, payload, t.resultTTL)
	pipe.SAdd(ctx, activeSetKey, jobID)
	_, err = pipe.Exec(ctx)
	return err
}

func (t *RedisTracker) MarkStarted(ctx context.Context, jobID string, attempt int) error {
	return t.mutate(ctx, jobID, func(snapshot *domain.JobSnapshot) error {
		if err := advance(snapshot, domain.JobStatusStarted, t.now()); err != nil {
			return err
		}
		snapshot.Attempts = attempt
		snapshot.Error = nil
		return nil
	})
}

func (t *RedisTracker) MarkRetrying(ctx context.Context, jobID string, reason string) error {
	return t.mutate(ctx, jobID, func(snapshot *domain.JobSnapshot) error {
		if err := advance(snapshot, domain.JobStatusRetry, t.now()); err != nil {
			return err
		}
		snapshot.Error = &reason
		return nil
	})
}

func (t *RedisTracker) MarkFailed(ctx context.Context, jobID string, reason string) error {
	return t.mutate(ctx, jobID, func(snapshot *domain.JobSnapshot) error {
		if err := advance(snapshot, domain.JobStatusFailure, t.now()); err != nil {
			return err
		}
		snapshot.Error = &reason
		return nil
	})
}

func (t *RedisTracker) MarkSucceeded(ctx context.Context, jobID string, result domain.ClassificationResult) error {
	return t.mutate(ctx, jobID, func(snapshot *domain.JobSnapshot) error {
		if err := advance(snapshot, domain.JobStatusSuccess, t.now()); err != nil {
			return err
		}
		snapshot.Result = &result
		snapshot.Error = nil
		return nil
	})
}

func (t *RedisTracker) Revoke(ctx context.Context, jobID string) error {
	return t.mutate(ctx, jobID, func(snapshot *domain.JobSnapshot) error {
		return advance(snapshot, domain.JobStatusRevoked, t.now())
	})
}

func (t *RedisTracker) Get(ctx context.Context, jobID string) (domain.JobSnapshot, error) {
	payload, err := t.client.Get(ctx, jobKeyPrefix+jobID).Bytes()
	if errors.Is(err, redis.Nil) {
		// The snapshot expired with the result TTL; drop the stale
		// active-set member it may have left behind.
		t.client.SRem(ctx, activeSetKey, jobID)
		return domain.JobSnapshot{}, ErrNotFound
	}
	if err != nil {
		return domain.JobSnapshot{}, err
	}
	var snapshot domain.JobSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.JobSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}

// ActiveCount reconciles the active set against the snapshot keys: a job
// whose snapshot expired with the result TTL no longer counts, and its
// leftover member is removed so the set cannot grow without bound.
func (t *RedisTracker) ActiveCount(ctx context.Context) (int64, error) {
	members, err := t.client.SMembers(ctx, activeSetKey).Result()
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}

	pipe := t.client.Pipeline()
	checks := make([]*redis.IntCmd, len(members))
	for i, jobID := range members {
		checks[i] = pipe.Exists(ctx, jobKeyPrefix+jobID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	var live int64
	var expired []interface{}
	for i, check := range checks {
		if check.Val() > 0 {
			live++
		} else {
			expired = append(expired, members[i])
		}
	}
	if len(expired) > 0 {
		t.client.SRem(ctx, activeSetKey, expired...)
	}
	return live, nil
}

// mutate runs one guarded transition under WATCH so concurrent writers
// (worker and revoke endpoint) cannot interleave updates.
func (t *RedisTracker) mutate(ctx context.Context, jobID string, apply func(*domain.JobSnapshot) error) error {
	key := jobKeyPrefix + jobID
	return t.client.Watch(ctx, func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			t.client.SRem(ctx, activeSetKey, jobID)
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var snapshot domain.JobSnapshot
		if err := json.Unmarshal(payload, &snapshot); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		if err := apply(&snapshot); err != nil {
			return err
		}
		updated, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, t.resultTTL)
			if snapshot.Status.Terminal() {
				pipe.SRem(ctx, activeSetKey, jobID)
			}
			return nil
		})
		return err
	}, key)
}
