package domain

import "time"

// JobStatus tracks a BatchJob through the queue's lifecycle.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// BatchJob references a batch of documents (by ID, resolved against a
// DocumentStore) and the chunk size the worker run mode should clean and
// split them with. It is the unit of work carried by the job queue.
type BatchJob struct {
	ID          string
	DocumentIDs []string
	ChunkSize   int
	Status      JobStatus
	Attempts    int
	MaxAttempts int
	Error       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBatchJob constructs a pending BatchJob with a default retry budget.
func NewBatchJob(id string, documentIDs []string, chunkSize int) *BatchJob {
	now := time.Now()
	return &BatchJob{
		ID:          id,
		DocumentIDs: documentIDs,
		ChunkSize:   chunkSize,
		Status:      JobStatusPending,
		MaxAttempts: 3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MarkProcessing records that a worker has claimed the job.
func (j *BatchJob) MarkProcessing() {
	j.Status = JobStatusProcessing
	j.Attempts++
	j.UpdatedAt = time.Now()
}

// MarkCompleted records successful processing.
func (j *BatchJob) MarkCompleted() {
	j.Status = JobStatusCompleted
	j.Error = ""
	j.UpdatedAt = time.Now()
}

// MarkFailed records terminal failure (retries exhausted).
func (j *BatchJob) MarkFailed(reason string) {
	j.Status = JobStatusFailed
	j.Error = reason
	j.UpdatedAt = time.Now()
}

// CanRetry reports whether the job has attempts remaining.
func (j *BatchJob) CanRetry() bool {
	return j.Attempts < j.MaxAttempts
}

// Retry resets the job to pending with a recorded failure reason.
func (j *BatchJob) Retry(reason string) {
	j.Status = JobStatusPending
	j.Error = reason
	j.UpdatedAt = time.Now()
}
