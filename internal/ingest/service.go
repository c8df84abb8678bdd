package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/hireai/resume-intake/constants"
	"github.com/hireai/resume-intake/internal/async"
	"github.com/hireai/resume-intake/internal/repository"
)

// Service accepts resume files discovered on disk: it copies each file into
// the storage bucket under the owning user, creates the pending upload
// record, and enqueues the pipeline run.
type Service struct {
	uploads   repository.UploadRepository
	queue     async.Queue
	bucketDir string
	userID    uuid.UUID
	log       *slog.Logger
}

func NewService(uploads repository.UploadRepository, queue async.Queue, bucketDir string, userID uuid.UUID, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{uploads: uploads, queue: queue, bucketDir: bucketDir, userID: userID, log: log}
}

// Register accepts one file and returns the created upload's ID.
func (s *Service) Register(ctx context.Context, path string) (uuid.UUID, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return uuid.Nil, fmt.Errorf("abs path: %w", err)
	}

	ext := constants.NormalizeExt(filepath.Ext(abs))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return uuid.Nil, fmt.Errorf("unsupported or missing extension %q", ext)
	}

	uploadID := uuid.New()
	base := filepath.Base(abs)
	rel := filepath.Join(s.userID.String(), uploadID.String()+"_"+base)

	size, err := s.copyIntoBucket(abs, rel)
	if err != nil {
		return uuid.Nil, err
	}

	rec := &repository.UploadRecord{
		ID:            uploadID,
		UserID:        s.userID,
		Filename:      base,
		StoragePath:   rel,
		FileSize:      size,
		ContentType:   constants.ContentTypeForExt(ext),
		ParsingStatus: constants.StatusPending,
	}
	if err := s.uploads.Create(ctx, rec); err != nil {
		return uuid.Nil, err
	}

	if err := s.queue.Enqueue(ctx, async.Job{UploadID: uploadID, FilePath: rel}); err != nil {
		return uuid.Nil, err
	}
	s.log.Info("upload registered", "upload_id", uploadID, "source", abs)
	return uploadID, nil
}

// Consume drains watcher events until the channel closes.
func (s *Service) Consume(ctx context.Context, paths <-chan string) {
	for p := range paths {
		if _, err := s.Register(ctx, p); err != nil {
			s.log.Error("registration failed", "path", p, "error", err)
		}
	}
}

func (s *Service) copyIntoBucket(src, rel string) (int64, error) {
	dst := filepath.Join(s.bucketDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("create bucket dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("create bucket file: %w", err)
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("copy into bucket: %w", err)
	}
	return n, nil
}
