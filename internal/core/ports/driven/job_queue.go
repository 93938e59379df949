package driven

import (
	"context"

	"github.com/cam-barts/rs-document/internal/core/domain"
)

// JobQueue handles distributed BatchJob queuing for the worker run mode.
// The Redis Streams implementation is preferred; it is the only one wired
// in this repository.
type JobQueue interface {
	// Enqueue adds a job to the queue for processing.
	Enqueue(ctx context.Context, job *domain.BatchJob) error

	// EnqueueBatch adds multiple jobs atomically.
	EnqueueBatch(ctx context.Context, jobs []*domain.BatchJob) error

	// Dequeue retrieves the next available job, blocking until one is
	// available or ctx is cancelled.
	Dequeue(ctx context.Context) (*domain.BatchJob, error)

	// Ack acknowledges successful completion of a job.
	Ack(ctx context.Context, jobID string) error

	// Nack indicates job processing failed; the job is retried if it has
	// attempts remaining, otherwise marked failed.
	Nack(ctx context.Context, jobID string, reason string) error

	// GetJob retrieves a job by ID, for status inspection.
	GetJob(ctx context.Context, jobID string) (*domain.BatchJob, error)

	// Ping checks if the queue backend is healthy.
	Ping(ctx context.Context) error

	// Close releases resources held by the queue.
	Close() error
}
