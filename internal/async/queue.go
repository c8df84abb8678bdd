package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hireai/resume-intake/internal/repository"
)

// Job is one pipeline run request.
type Job struct {
	UploadID    uuid.UUID
	FilePath    string
	SubmittedAt time.Time
}

// Queue accepts jobs for background processing.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
}

// Runner is the work a queue drains; satisfied by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, uploadID uuid.UUID, filePath string) (*repository.CandidateRecord, error)
}

// ProcessorQueue fans jobs out to a fixed worker pool, each worker running
// the pipeline under a per-job timeout.
type ProcessorQueue struct {
	run     Runner
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithRunTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewProcessorQueue(run Runner, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	q := &ProcessorQueue{
		run:     run,
		logger:  logger,
		workers: 4,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					waitMs := int64(0)
					if !job.SubmittedAt.IsZero() {
						waitMs = time.Since(job.SubmittedAt).Milliseconds()
					}
					start := time.Now()
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					_, err := q.run.Run(ctx, job.UploadID, job.FilePath)
					cancel()

					if err != nil {
						q.logger.Error("processing failed",
							"worker_id", workerID, "upload_id", job.UploadID,
							"queue_wait_ms", waitMs, "elapsed_ms", time.Since(start).Milliseconds(),
							"error", err)
					} else {
						q.logger.Info("processed upload successfully",
							"worker_id", workerID, "upload_id", job.UploadID,
							"queue_wait_ms", waitMs, "elapsed_ms", time.Since(start).Milliseconds())
					}
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ProcessorQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "upload_id", job.UploadID)
		return nil
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now().UTC()
	}
	select {
	case q.ch <- job:
		q.logger.Info("queued upload for processing", "upload_id", job.UploadID)
	default:
		q.logger.Warn("queue full, applying backpressure", "upload_id", job.UploadID)
		q.ch <- job
	}
	return nil
}

func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
