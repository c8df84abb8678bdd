package async

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hireai/resume-intake/internal/repository"
)

type countingRunner struct {
	mu   sync.Mutex
	runs []uuid.UUID
}

func (r *countingRunner) Run(_ context.Context, uploadID uuid.UUID, _ string) (*repository.CandidateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, uploadID)
	return nil, nil
}

func (r *countingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

func TestQueueDrainsAllJobsOnShutdown(t *testing.T) {
	runner := &countingRunner{}
	q := NewProcessorQueue(runner, slog.New(slog.NewTextHandler(io.Discard, nil)), WithWorkers(3), WithQueueSize(32))

	const n = 20
	for i := 0; i < n; i++ {
		if err := q.Enqueue(context.Background(), Job{UploadID: uuid.New()}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	if got := runner.count(); got != n {
		t.Fatalf("ran %d jobs, want %d", got, n)
	}
}

func TestQueueRejectsEnqueueAfterShutdown(t *testing.T) {
	runner := &countingRunner{}
	q := NewProcessorQueue(runner, slog.New(slog.NewTextHandler(io.Discard, nil)), WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q.Shutdown(ctx)

	if err := q.Enqueue(context.Background(), Job{UploadID: uuid.New()}); err != nil {
		t.Fatalf("enqueue after shutdown must be a no-op, got %v", err)
	}
	if got := runner.count(); got != 0 {
		t.Fatalf("ran %d jobs after shutdown, want 0", got)
	}
}
