// Package redis provides a Redis Streams-backed driven.JobQueue.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cam-barts/rs-document/internal/core/domain"
	"github.com/cam-barts/rs-document/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

const (
	jobStream = "rs-document:jobs"
	jobGroup  = "rs-document:workers"

	jobKeyPrefix = "rs-document:job:"

	consumerPrefix = "worker-"

	// claimTimeout bounds how long a job can sit unacknowledged before
	// another consumer is allowed to claim it as abandoned.
	claimTimeout = 5 * time.Minute
)

// Verify interface compliance
var _ driven.JobQueue = (*Queue)(nil)

// Queue implements driven.JobQueue using Redis Streams: a consumer group
// gives at-least-once delivery with per-consumer claim tracking, so a
// worker that dies mid-job does not silently drop it.
type Queue struct {
	client       *redis.Client
	consumerName string
}

// NewQueue creates a Redis-backed job queue. consumerName should be unique
// per worker process (hostname + PID is a reasonable choice); an empty
// value generates one from the current time.
func NewQueue(client *redis.Client, consumerName string) (*Queue, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if consumerName == "" {
		consumerName = fmt.Sprintf("%s%d", consumerPrefix, time.Now().UnixNano())
	}

	q := &Queue{client: client, consumerName: consumerName}

	ctx := context.Background()
	if err := q.client.XGroupCreateMkStream(ctx, jobStream, jobGroup, "0").Err(); err != nil && !isGroupExistsError(err) {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return q, nil
}

// Enqueue adds a job to the stream and stores its full record as JSON
// under a key derived from the job ID, so Dequeue can hydrate a BatchJob from the stream
// message's job_id field alone.
func (q *Queue) Enqueue(ctx context.Context, job *domain.BatchJob) error {
	if job == nil {
		return errors.New("job is required")
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	pipe := q.client.Pipeline()
	pipe.Set(ctx, jobKeyPrefix+job.ID, data, 24*time.Hour)
	pipe.XAdd(ctx, &redis.XAddArgs{
		Stream: jobStream,
		Values: map[string]interface{}{"job_id": job.ID},
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// EnqueueBatch adds multiple jobs atomically via a single pipeline.
func (q *Queue) EnqueueBatch(ctx context.Context, jobs []*domain.BatchJob) error {
	if len(jobs) == 0 {
		return nil
	}

	pipe := q.client.TxPipeline()
	for _, job := range jobs {
		if job == nil {
			continue
		}
		data, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("failed to marshal job %s: %w", job.ID, err)
		}
		pipe.Set(ctx, jobKeyPrefix+job.ID, data, 24*time.Hour)
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: jobStream,
			Values: map[string]interface{}{"job_id": job.ID},
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue batch: %w", err)
	}
	return nil
}

// Dequeue retrieves the next available job, preferring to reclaim any job
// abandoned by a dead consumer before reading a fresh one from the stream.
// It blocks until a job is available or ctx is cancelled.
func (q *Queue) Dequeue(ctx context.Context) (*domain.BatchJob, error) {
	if job, err := q.claimAbandonedJob(ctx); err == nil && job != nil {
		return job, nil
	}

	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    jobGroup,
		Consumer: q.consumerName,
		Streams:  []string{jobStream, ">"},
		Count:    1,
		Block:    0,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, nil
	}

	msg := streams[0].Messages[0]
	jobID, ok := msg.Values["job_id"].(string)
	if !ok {
		q.client.XAck(ctx, jobStream, jobGroup, msg.ID)
		return nil, nil
	}

	job, err := q.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job data: %w", err)
	}
	if job == nil {
		q.client.XAck(ctx, jobStream, jobGroup, msg.ID)
		return nil, nil
	}

	job.MarkProcessing()
	q.persistJob(ctx, job, msg.ID)

	return job, nil
}

// Ack acknowledges successful completion of a job and removes it from the
// stream and pending-entries list.
func (q *Queue) Ack(ctx context.Context, jobID string) error {
	msgID, err := q.client.Get(ctx, jobKeyPrefix+jobID+":msg").Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to get message id: %w", err)
	}

	pipe := q.client.Pipeline()
	if msgID != "" {
		pipe.XAck(ctx, jobStream, jobGroup, msgID)
		pipe.XDel(ctx, jobStream, msgID)
	}

	if job, err := q.GetJob(ctx, jobID); err == nil && job != nil {
		job.MarkCompleted()
		data, _ := json.Marshal(job)
		pipe.Set(ctx, jobKeyPrefix+jobID, data, 24*time.Hour)
	}
	pipe.Del(ctx, jobKeyPrefix+jobID+":msg")

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to ack job: %w", err)
	}
	return nil
}

// Nack indicates job processing failed: the job is re-enqueued if it still
// has retry attempts, otherwise marked failed.
func (q *Queue) Nack(ctx context.Context, jobID string, reason string) error {
	job, err := q.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return fmt.Errorf("job %s not found: %w", jobID, domain.ErrNotFound)
	}

	msgID, _ := q.client.Get(ctx, jobKeyPrefix+jobID+":msg").Result()

	pipe := q.client.Pipeline()
	if msgID != "" {
		pipe.XAck(ctx, jobStream, jobGroup, msgID)
		pipe.XDel(ctx, jobStream, msgID)
	}

	if job.CanRetry() {
		job.Retry(reason)
		data, _ := json.Marshal(job)
		pipe.Set(ctx, jobKeyPrefix+jobID, data, 24*time.Hour)
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: jobStream,
			Values: map[string]interface{}{"job_id": job.ID},
		})
	} else {
		job.MarkFailed(reason)
		data, _ := json.Marshal(job)
		pipe.Set(ctx, jobKeyPrefix+jobID, data, 24*time.Hour)
	}
	pipe.Del(ctx, jobKeyPrefix+jobID+":msg")

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to nack job: %w", err)
	}
	return nil
}

// GetJob retrieves a job record by ID.
func (q *Queue) GetJob(ctx context.Context, jobID string) (*domain.BatchJob, error) {
	data, err := q.client.Get(ctx, jobKeyPrefix+jobID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	var job domain.BatchJob
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// Ping checks if the Redis backend is reachable.
func (q *Queue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Close is a no-op: the redis.Client is shared and owned by the caller.
func (q *Queue) Close() error {
	return nil
}

func (q *Queue) persistJob(ctx context.Context, job *domain.BatchJob, msgID string) {
	data, _ := json.Marshal(job)
	q.client.Set(ctx, jobKeyPrefix+job.ID, data, 24*time.Hour)
	q.client.Set(ctx, jobKeyPrefix+job.ID+":msg", msgID, 24*time.Hour)
}

// claimAbandonedJob reclaims a pending message that has been idle past
// claimTimeout, meaning the consumer that read it died before ack/nack.
func (q *Queue) claimAbandonedJob(ctx context.Context) (*domain.BatchJob, error) {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: jobStream,
		Group:  jobGroup,
		Start:  "-",
		End:    "+",
		Count:  10,
		Idle:   claimTimeout,
	}).Result()
	if err != nil {
		return nil, err
	}

	for _, p := range pending {
		claimed, err := q.client.XClaim(ctx, &redis.XClaimArgs{
			Stream:   jobStream,
			Group:    jobGroup,
			Consumer: q.consumerName,
			MinIdle:  claimTimeout,
			Messages: []string{p.ID},
		}).Result()
		if err != nil || len(claimed) == 0 {
			continue
		}

		msg := claimed[0]
		jobID, ok := msg.Values["job_id"].(string)
		if !ok {
			q.client.XAck(ctx, jobStream, jobGroup, msg.ID)
			q.client.XDel(ctx, jobStream, msg.ID)
			continue
		}

		job, err := q.GetJob(ctx, jobID)
		if err != nil || job == nil {
			q.client.XAck(ctx, jobStream, jobGroup, msg.ID)
			q.client.XDel(ctx, jobStream, msg.ID)
			continue
		}

		job.MarkProcessing()
		q.persistJob(ctx, job, msg.ID)
		return job, nil
	}

	return nil, nil
}

func isGroupExistsError(err error) bool {
	return err != nil && err.Error() == "BUSYGROUP Consumer Group name already exists"
}
