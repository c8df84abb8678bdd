package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hireai/resume-intake/constants"
	"github.com/hireai/resume-intake/internal/common"
)

// UploadRecord is one submitted document. Created at upload acceptance;
// parsing_status is mutated only by the ingestion pipeline.
type UploadRecord struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Filename      string
	StoragePath   string
	FileSize      int64
	ContentType   string
	ParsingStatus constants.ParsingStatus
	CreatedAt     time.Time
}

type UploadRepository interface {
	Create(ctx context.Context, rec *UploadRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*UploadRecord, error)
	SetParsingStatus(ctx context.Context, id uuid.UUID, status constants.ParsingStatus) error
}

type uploadRepo struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewUploadRepository(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) (UploadRepository, error) {
	if log == nil {
		log = slog.Default()
	}
	r := &uploadRepo{pool: pool, log: log}
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *uploadRepo) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS resumes (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	filename TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	file_size BIGINT NOT NULL,
	content_type TEXT NOT NULL,
	parsing_status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS resumes_user_idx ON resumes (user_id, created_at);
`)
	return err
}

func (r *uploadRepo) Create(ctx context.Context, rec *UploadRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.ParsingStatus == "" {
		rec.ParsingStatus = constants.StatusPending
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO resumes (id, user_id, filename, storage_path, file_size, content_type, parsing_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, rec.ID, rec.UserID, rec.Filename, rec.StoragePath, rec.FileSize, rec.ContentType, string(rec.ParsingStatus), rec.CreatedAt)
	if err != nil {
		r.log.Error("upload create failed", "upload_id", rec.ID, "error", err)
		return common.NewAppError(common.CodePersistence, "insert upload record", err)
	}
	r.log.Info("upload record created", "upload_id", rec.ID, "user_id", rec.UserID, "filename", rec.Filename)
	return nil
}

func (r *uploadRepo) GetByID(ctx context.Context, id uuid.UUID) (*UploadRecord, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, filename, storage_path, file_size, content_type, parsing_status, created_at
FROM resumes WHERE id = $1
`, id)
	var rec UploadRecord
	var status string
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Filename, &rec.StoragePath, &rec.FileSize, &rec.ContentType, &status, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewAppError(common.CodePersistence, "upload not found", common.ErrNotFound)
		}
		return nil, common.NewAppError(common.CodePersistence, "load upload record", err)
	}
	rec.ParsingStatus = constants.ParsingStatus(status)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

func (r *uploadRepo) SetParsingStatus(ctx context.Context, id uuid.UUID, status constants.ParsingStatus) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE resumes SET parsing_status = $2 WHERE id = $1
`, id, string(status))
	if err != nil {
		r.log.Error("parsing_status update failed", "upload_id", id, "status", status, "error", err)
		return common.NewAppError(common.CodePersistence, "update parsing_status", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewAppError(common.CodePersistence, "upload not found for status update", common.ErrNotFound)
	}
	r.log.Info("parsing_status updated", "upload_id", id, "status", status)
	return nil
}
