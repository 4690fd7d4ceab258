package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smartsupport/triage-backend/internal/domain"
)

type StreamsConfig struct {
	Addr              string
	Password          string
	DB                int
	Stream            string
	DLQStream         string
	Group             string
	Consumer          string
	VisibilityTimeout time.Duration
}

// StreamsQueue implements Producer+Consumer on Redis Streams with a consumer
// group. Entries are acknowledged only after the handler returns nil, and
// entries pending longer than the visibility timeout are reclaimed, so a
// crashed worker's job is redelivered. Deferred messages wait in a sorted
// set until a mover goroutine promotes them into the stream.
type StreamsQueue struct {
	client            *redis.Client
	stream            string
	dlqStream         string
	scheduledSet      string
	group             string
	consumer          string
	visibilityTimeout time.Duration
	logger            zerolog.Logger

	moverOnce sync.Once
}

func NewStreamsQueue(ctx context.Context, cfg StreamsConfig, logger zerolog.Logger) (*StreamsQueue, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	if cfg.Stream == "" {
		cfg.Stream = "triage_jobs"
	}
	if cfg.DLQStream == "" {
		cfg.DLQStream = cfg.Stream + "_dlq"
	}
	if cfg.Group == "" {
		cfg.Group = "triage_workers"
	}
	if cfg.Consumer == "" {
		cfg.Consumer = "worker-1"
	}
	if cfg.VisibilityTimeout <= 0 {
		cfg.VisibilityTimeout = 5 * time.Minute
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	queue := &StreamsQueue{
		client:            client,
		stream:            cfg.Stream,
		dlqStream:         cfg.DLQStream,
		scheduledSet:      cfg.Stream + "_scheduled",
		group:             cfg.Group,
		consumer:          cfg.Consumer,
		visibilityTimeout: cfg.VisibilityTimeout,
		logger:            logger,
	}
	if err := queue.ensureGroup(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return queue, nil
}

func (q *StreamsQueue) Close() error {
	return q.client.Close()
}

func (q *StreamsQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

func (q *StreamsQueue) Enqueue(ctx context.Context, message domain.QueueMessage) error {
	_, err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: messageValues(message),
	}).Result()
	if err != nil {
		return fmt.Errorf("enqueue to stream: %w", err)
	}
	return nil
}

// EnqueueAfter parks the message in the scheduled set; the mover promotes it
// into the stream once the delay has elapsed.
func (q *StreamsQueue) EnqueueAfter(ctx context.Context, message domain.QueueMessage, delay time.Duration) error {
	if delay <= 0 {
		return q.Enqueue(ctx, message)
	}

	member, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal scheduled message: %w", err)
	}
	readyAt := time.Now().Add(delay)
	err = q.client.ZAdd(ctx, q.scheduledSet, redis.Z{
		Score:  float64(readyAt.UnixMilli()),
		Member: string(member),
	}).Err()
	if err != nil {
		return fmt.Errorf("schedule message: %w", err)
	}
	return nil
}

func (q *StreamsQueue) Consume(ctx context.Context, handler func(context.Context, domain.QueueMessage) error) error {
	if err := q.ensureGroup(ctx); err != nil {
		return err
	}
	q.moverOnce.Do(func() {
		go q.moverLoop(ctx)
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		q.claimStale(ctx, handler)

		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    q.group,
			Consumer: q.consumer,
			Streams:  []string{q.stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("xreadgroup: %w", err)
		}

		for _, stream := range streams {
			for _, item := range stream.Messages {
				q.dispatch(ctx, item, handler)
			}
		}
	}
}

func (q *StreamsQueue) dispatch(ctx context.Context, item redis.XMessage, handler func(context.Context, domain.QueueMessage) error) {
	message, parseErr := parseStreamMessage(item)
	if parseErr != nil {
		// Unparseable entries would poison the group forever; park them.
		_ = q.sendToDLQ(ctx, item, parseErr.Error())
		_ = q.ackAndDelete(ctx, item.ID)
		return
	}

	if err := handler(ctx, message); err != nil {
		// Left pending on purpose: the stale-claim pass redelivers it
		// after the visibility timeout.
		q.logger.Warn().Err(err).Str("job_id", message.JobID).Msg("handler failed, leaving entry pending")
		return
	}
	_ = q.ackAndDelete(ctx, item.ID)
}

// claimStale takes over entries another consumer dequeued but never
// acknowledged within the visibility timeout.
func (q *StreamsQueue) claimStale(ctx context.Context, handler func(context.Context, domain.QueueMessage) error) {
	claimed, _, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   q.stream,
		Group:    q.group,
		Consumer: q.consumer,
		MinIdle:  q.visibilityTimeout,
		Start:    "0-0",
		Count:    10,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		if !errors.Is(err, context.Canceled) {
			q.logger.Warn().Err(err).Msg("xautoclaim failed")
		}
		return
	}
	for _, item := range claimed {
		q.dispatch(ctx, item, handler)
	}
}

// moverLoop promotes due scheduled messages into the stream. Multiple movers
// may run across processes; ZRem arbitrates so each message is promoted once.
func (q *StreamsQueue) moverLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			q.promoteDue(ctx)
		}
	}
}

func (q *StreamsQueue) promoteDue(ctx context.Context) {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	members, err := q.client.ZRangeByScore(ctx, q.scheduledSet, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   now,
		Count: 100,
	}).Result()
	if err != nil || len(members) == 0 {
		return
	}

	for _, member := range members {
		removed, err := q.client.ZRem(ctx, q.scheduledSet, member).Result()
		if err != nil || removed == 0 {
			continue
		}
		var message domain.QueueMessage
		if err := json.Unmarshal([]byte(member), &message); err != nil {
			q.logger.Error().Err(err).Msg("dropping malformed scheduled message")
			continue
		}
		if err := q.Enqueue(ctx, message); err != nil {
			q.logger.Error().Err(err).Str("job_id", message.JobID).Msg("failed to promote scheduled message")
		}
	}
}

func (q *StreamsQueue) ensureGroup(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, q.stream, q.group, "$").Err()
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "BUSYGROUP") {
		return nil
	}
	return fmt.Errorf("ensure stream group: %w", err)
}

func (q *StreamsQueue) ackAndDelete(ctx context.Context, streamID string) error {
	if err := q.client.XAck(ctx, q.stream, q.group, streamID).Err(); err != nil {
		return fmt.Errorf("xack: %w", err)
	}
	if err := q.client.XDel(ctx, q.stream, streamID).Err(); err != nil {
		return fmt.Errorf("xdel: %w", err)
	}
	return nil
}

func (q *StreamsQueue) sendToDLQ(ctx context.Context, item redis.XMessage, errorMessage string) error {
	values := map[string]any{
		"stream_id": item.ID,
		"error":     errorMessage,
		"moved_at":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	for key, value := range item.Values {
		values["orig_"+key] = value
	}
	if _, err := q.client.XAdd(ctx, &redis.XAddArgs{Stream: q.dlqStream, Values: values}).Result(); err != nil {
		return fmt.Errorf("send to dlq: %w", err)
	}
	return nil
}

func messageValues(message domain.QueueMessage) map[string]any {
	return map[string]any{
		"job_id":       message.JobID,
		"text":         message.Text,
		"attempt":      message.Attempt,
		"requested_at": message.RequestedAt.Format(time.RFC3339Nano),
	}
}

func parseStreamMessage(item redis.XMessage) (domain.QueueMessage, error) {
	getString := func(key string) (string, error) {
		value, ok := item.Values[key]
		if !ok {
			return "", fmt.Errorf("missing field %s", key)
		}
		switch casted := value.(type) {
		case string:
			return casted, nil
		case []byte:
			return string(casted), nil
		default:
			return fmt.Sprintf("%v", casted), nil
		}
	}

	jobID, err := getString("job_id")
	if err != nil {
		return domain.QueueMessage{}, err
	}
	text, err := getString("text")
	if err != nil {
		return domain.QueueMessage{}, err
	}
	attemptString, err := getString("attempt")
	if err != nil {
		return domain.QueueMessage{}, err
	}
	attempt, err := strconv.Atoi(attemptString)
	if err != nil {
		return domain.QueueMessage{}, fmt.Errorf("invalid attempt: %w", err)
	}
	requestedAtString, err := getString("requested_at")
	if err != nil {
		return domain.QueueMessage{}, err
	}
	requestedAt, err := time.Parse(time.RFC3339Nano, requestedAtString)
	if err != nil {
		return domain.QueueMessage{}, fmt.Errorf("invalid requested_at: %w", err)
	}

	return domain.QueueMessage{
		JobID:       jobID,
		Text:        text,
		Attempt:     attempt,
		RequestedAt: requestedAt,
	}, nil
}
