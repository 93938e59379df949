// Package worker implements the engine's `worker` run mode: a pool of
// goroutines that pull BatchJobs from a distributed queue, resolve their
// document IDs, clean-and-split them, and persist the resulting chunks.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cam-barts/rs-document/internal/core/domain"
	"github.com/cam-barts/rs-document/internal/core/ports/driven"
	"github.com/cam-barts/rs-document/internal/core/ports/driving"
)

// Worker processes BatchJobs from the job queue.
type Worker struct {
	jobQueue      driven.JobQueue
	documentStore driven.DocumentStore
	chunkStore    driven.ChunkStore
	docService    driving.DocumentService
	logger        *slog.Logger

	concurrency    int
	dequeueTimeout int // seconds

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the worker.
type Config struct {
	JobQueue       driven.JobQueue
	DocumentStore  driven.DocumentStore
	ChunkStore     driven.ChunkStore
	DocService     driving.DocumentService
	Logger         *slog.Logger
	Concurrency    int // number of concurrent job processors
	DequeueTimeout int // seconds to wait for a job before checking for stop
}

// NewWorker creates a new job worker.
func NewWorker(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	dequeueTimeout := cfg.DequeueTimeout
	if dequeueTimeout <= 0 {
		dequeueTimeout = 5
	}

	return &Worker{
		jobQueue:       cfg.JobQueue,
		documentStore:  cfg.DocumentStore,
		chunkStore:     cfg.ChunkStore,
		docService:     cfg.DocService,
		logger:         logger,
		concurrency:    concurrency,
		dequeueTimeout: dequeueTimeout,
	}
}

// Start begins the worker loop. It runs until Stop is called or ctx is
// cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("worker starting",
		"concurrency", w.concurrency,
		"dequeue_timeout", w.dequeueTimeout,
	)

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			w.processLoop(ctx, workerID)
		}(i)
	}

	go func() {
		wg.Wait()
		close(w.doneCh)
	}()

	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	<-w.doneCh
}

// processLoop is the main loop for a worker goroutine.
func (w *Worker) processLoop(ctx context.Context, workerID int) {
	logger := w.logger.With("worker_id", workerID)
	logger.Info("worker goroutine started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker context cancelled")
			return
		case <-w.stopCh:
			logger.Info("worker stop signal received")
			return
		default:
		}

		dequeueCtx, cancel := context.WithTimeout(ctx, time.Duration(w.dequeueTimeout)*time.Second)
		job, err := w.jobQueue.Dequeue(dequeueCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			logger.Error("failed to dequeue job", "error", err)
			time.Sleep(time.Second) // back off on error
			continue
		}

		if job == nil {
			continue
		}

		w.processJob(ctx, job, logger)
	}
}

// processJob resolves a BatchJob's documents, cleans and splits them, and
// persists the resulting chunks, one document at a time in job order.
func (w *Worker) processJob(ctx context.Context, job *domain.BatchJob, logger *slog.Logger) {
	logger = logger.With("job_id", job.ID, "document_count", len(job.DocumentIDs))
	logger.Info("processing job")

	start := time.Now()
	if err := w.handleBatchJob(ctx, job); err != nil {
		logger.Error("job failed", "duration", time.Since(start), "error", err)
		if nackErr := w.jobQueue.Nack(ctx, job.ID, err.Error()); nackErr != nil {
			logger.Error("failed to nack job", "nack_error", nackErr)
		}
		return
	}

	logger.Info("job completed", "duration", time.Since(start))
	if ackErr := w.jobQueue.Ack(ctx, job.ID); ackErr != nil {
		logger.Error("failed to ack job", "ack_error", ackErr)
	}
}

func (w *Worker) handleBatchJob(ctx context.Context, job *domain.BatchJob) error {
	docs, err := w.documentStore.LoadBatch(ctx, job.DocumentIDs)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	results, err := w.docService.CleanAndSplit(ctx, docs, job.ChunkSize)
	if err != nil {
		return fmt.Errorf("clean and split: %w", err)
	}

	for i, chunks := range results {
		if err := w.chunkStore.SaveBatch(ctx, job.DocumentIDs[i], chunks); err != nil {
			return fmt.Errorf("save chunks for document %s: %w", job.DocumentIDs[i], err)
		}
	}
	return nil
}

// Health reports the worker's running state and job queue reachability.
type Health struct {
	Running     bool   `json:"running"`
	QueueHealth bool   `json:"queue_health"`
	Error       string `json:"error,omitempty"`
}

// Health returns the health status of the worker.
func (w *Worker) Health(ctx context.Context) Health {
	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()

	health := Health{Running: running}

	if err := w.jobQueue.Ping(ctx); err != nil {
		health.QueueHealth = false
		health.Error = err.Error()
	} else {
		health.QueueHealth = true
	}

	return health
}
