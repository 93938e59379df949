package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/cam-barts/rs-document/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

func setupTestQueue(t *testing.T, consumer string) (*Queue, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	q, err := NewQueue(client, consumer)
	if err != nil {
		t.Fatalf("failed to create queue: %v", err)
	}

	return q, func() {
		client.Close()
		mr.Close()
	}
}

func TestQueue_EnqueueDequeueAck(t *testing.T) {
	q, cleanup := setupTestQueue(t, "worker-1")
	defer cleanup()
	ctx := context.Background()

	job := domain.NewBatchJob("job-1", []string{"doc-1", "doc-2"}, 500)
	if err := q.Enqueue(ctx, job); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	got, err := q.Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a job, got nil")
	}
	if got.ID != "job-1" {
		t.Errorf("expected job-1, got %s", got.ID)
	}
	if got.Status != domain.JobStatusProcessing {
		t.Errorf("expected processing status after dequeue, got %s", got.Status)
	}

	if err := q.Ack(ctx, got.ID); err != nil {
		t.Fatalf("ack failed: %v", err)
	}

	stored, err := q.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("get job failed: %v", err)
	}
	if stored.Status != domain.JobStatusCompleted {
		t.Errorf("expected completed status, got %s", stored.Status)
	}
}

func TestQueue_NackFailsWhenRetriesExhausted(t *testing.T) {
	q, cleanup := setupTestQueue(t, "worker-1")
	defer cleanup()
	ctx := context.Background()

	job := domain.NewBatchJob("job-2", []string{"doc-1"}, 500)
	job.MaxAttempts = 1
	if err := q.Enqueue(ctx, job); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	got, err := q.Dequeue(ctx)
	if err != nil || got == nil {
		t.Fatalf("dequeue failed: %v", err)
	}

	if err := q.Nack(ctx, got.ID, "processing failed"); err != nil {
		t.Fatalf("nack failed: %v", err)
	}

	stored, err := q.GetJob(ctx, "job-2")
	if err != nil {
		t.Fatalf("get job failed: %v", err)
	}
	if stored.Status != domain.JobStatusFailed {
		t.Errorf("expected failed status after exhausting retries, got %s", stored.Status)
	}
	if stored.Error != "processing failed" {
		t.Errorf("expected failure reason preserved, got %q", stored.Error)
	}
}

func TestQueue_EnqueueBatch(t *testing.T) {
	q, cleanup := setupTestQueue(t, "worker-1")
	defer cleanup()
	ctx := context.Background()

	jobs := []*domain.BatchJob{
		domain.NewBatchJob("job-a", []string{"doc-1"}, 500),
		domain.NewBatchJob("job-b", []string{"doc-2"}, 500),
	}
	if err := q.EnqueueBatch(ctx, jobs); err != nil {
		t.Fatalf("enqueue batch failed: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < len(jobs); i++ {
		got, err := q.Dequeue(ctx)
		if err != nil || got == nil {
			t.Fatalf("dequeue %d failed: %v", i, err)
		}
		seen[got.ID] = true
	}
	if !seen["job-a"] || !seen["job-b"] {
		t.Errorf("expected both jobs to be dequeued, got %v", seen)
	}
}

func TestQueue_Ping(t *testing.T) {
	q, cleanup := setupTestQueue(t, "worker-1")
	defer cleanup()

	if err := q.Ping(context.Background()); err != nil {
		t.Errorf("expected healthy ping, got %v", err)
	}
}
