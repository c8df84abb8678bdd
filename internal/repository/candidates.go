package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hireai/resume-intake/internal/common"
	"github.com/hireai/resume-intake/internal/llm"
)

// CandidateRecord holds the structured fields extracted from one upload.
// ExtractionNote is non-null only when the heuristic fallback produced the
// fields; RawTextContent is the normalized text the extraction ran on.
type CandidateRecord struct {
	ID             uuid.UUID
	ResumeID       uuid.UUID
	UserID         uuid.UUID
	Fields         llm.CandidateFields
	RawTextContent string
	ExtractionNote *string
	CreatedAt      time.Time
}

type CandidateRepository interface {
	// Insert persists a record, rejecting a second record for the same upload.
	Insert(ctx context.Context, rec *CandidateRecord) error
	ExistsForUpload(ctx context.Context, resumeID uuid.UUID) (bool, error)
	GetByUploadID(ctx context.Context, resumeID, userID uuid.UUID) (*CandidateRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*CandidateRecord, error)
}

type candidateRepo struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCandidateRepository(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) (CandidateRepository, error) {
	if log == nil {
		log = slog.Default()
	}
	r := &candidateRepo{pool: pool, log: log}
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *candidateRepo) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS parsed_resume_details (
	id UUID PRIMARY KEY,
	resume_id UUID NOT NULL UNIQUE,
	user_id UUID NOT NULL,
	full_name TEXT,
	email TEXT,
	phone TEXT,
	location TEXT,
	summary TEXT,
	skills_json JSONB NOT NULL DEFAULT '[]',
	experience_json JSONB NOT NULL DEFAULT '[]',
	education_json JSONB NOT NULL DEFAULT '[]',
	raw_text_content TEXT NOT NULL DEFAULT '',
	extraction_note TEXT,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS parsed_resume_details_user_idx ON parsed_resume_details (user_id, created_at);
`)
	return err
}

func (r *candidateRepo) Insert(ctx context.Context, rec *CandidateRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	skills, err := json.Marshal(nonNilSkills(rec.Fields.Skills))
	if err != nil {
		return common.NewAppError(common.CodePersistence, "encode skills", err)
	}
	experience, err := json.Marshal(nonNilExperience(rec.Fields.Experience))
	if err != nil {
		return common.NewAppError(common.CodePersistence, "encode experience", err)
	}
	education, err := json.Marshal(nonNilEducation(rec.Fields.Education))
	if err != nil {
		return common.NewAppError(common.CodePersistence, "encode education", err)
	}

	tag, err := r.pool.Exec(ctx, `
INSERT INTO parsed_resume_details
	(id, resume_id, user_id, full_name, email, phone, location, summary,
	 skills_json, experience_json, education_json, raw_text_content, extraction_note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (resume_id) DO NOTHING
`, rec.ID, rec.ResumeID, rec.UserID,
		rec.Fields.FullName, rec.Fields.Email, rec.Fields.Phone, rec.Fields.Location, rec.Fields.Summary,
		skills, experience, education, rec.RawTextContent, rec.ExtractionNote, rec.CreatedAt)
	if err != nil {
		r.log.Error("candidate insert failed", "resume_id", rec.ResumeID, "error", err)
		return common.NewAppError(common.CodePersistence, "insert candidate record", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewAppError(common.CodeAlreadyParsed, "candidate record already exists for upload", nil)
	}
	r.log.Info("candidate record created", "resume_id", rec.ResumeID, "candidate_id", rec.ID)
	return nil
}

func (r *candidateRepo) ExistsForUpload(ctx context.Context, resumeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM parsed_resume_details WHERE resume_id = $1)
`, resumeID).Scan(&exists)
	if err != nil {
		return false, common.NewAppError(common.CodePersistence, "check candidate existence", err)
	}
	return exists, nil
}

const candidateColumns = `
id, resume_id, user_id, full_name, email, phone, location, summary,
skills_json, experience_json, education_json, raw_text_content, extraction_note, created_at`

func (r *candidateRepo) GetByUploadID(ctx context.Context, resumeID, userID uuid.UUID) (*CandidateRecord, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+candidateColumns+`
FROM parsed_resume_details WHERE resume_id = $1 AND user_id = $2
`, resumeID, userID)
	rec, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewAppError(common.CodePersistence, "candidate record not found", common.ErrNotFound)
		}
		return nil, common.NewAppError(common.CodePersistence, "load candidate record", err)
	}
	return rec, nil
}

func (r *candidateRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*CandidateRecord, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+candidateColumns+`
FROM parsed_resume_details WHERE user_id = $1
ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, common.NewAppError(common.CodePersistence, "list candidate records", err)
	}
	defer rows.Close()

	var out []*CandidateRecord
	for rows.Next() {
		rec, err := scanCandidate(rows)
		if err != nil {
			return nil, common.NewAppError(common.CodePersistence, "scan candidate record", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError(common.CodePersistence, "iterate candidate records", err)
	}
	return out, nil
}

func scanCandidate(row pgx.Row) (*CandidateRecord, error) {
	var rec CandidateRecord
	var skills, experience, education []byte
	err := row.Scan(&rec.ID, &rec.ResumeID, &rec.UserID,
		&rec.Fields.FullName, &rec.Fields.Email, &rec.Fields.Phone, &rec.Fields.Location, &rec.Fields.Summary,
		&skills, &experience, &education, &rec.RawTextContent, &rec.ExtractionNote, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(skills, &rec.Fields.Skills); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(experience, &rec.Fields.Experience); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(education, &rec.Fields.Education); err != nil {
		return nil, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

func nonNilSkills(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilExperience(s []llm.ExperienceEntry) []llm.ExperienceEntry {
	if s == nil {
		return []llm.ExperienceEntry{}
	}
	return s
}

func nonNilEducation(s []llm.EducationEntry) []llm.EducationEntry {
	if s == nil {
		return []llm.EducationEntry{}
	}
	return s
}
