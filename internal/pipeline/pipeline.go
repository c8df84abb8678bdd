package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hireai/resume-intake/constants"
	"github.com/hireai/resume-intake/internal/common"
	"github.com/hireai/resume-intake/internal/extract"
	"github.com/hireai/resume-intake/internal/heuristic"
	"github.com/hireai/resume-intake/internal/llm"
	"github.com/hireai/resume-intake/internal/repository"
	"github.com/hireai/resume-intake/internal/storage"
	"github.com/hireai/resume-intake/internal/textnorm"
)

// Config holds the pipeline tunables.
type Config struct {
	MaxTextLen       int
	MinTextLen       int
	TruncateLookback int
}

// Pipeline runs one upload through extraction, normalization, structured
// field extraction and persistence, maintaining the upload's parsing_status
// through every outcome.
type Pipeline struct {
	cfg        Config
	log        *slog.Logger
	uploads    repository.UploadRepository
	candidates repository.CandidateRepository
	store      storage.Storage
	text       extract.TextExtractor
	fields     llm.FieldExtractor
	fallback   *heuristic.Extractor
}

func New(cfg Config, log *slog.Logger, uploads repository.UploadRepository, candidates repository.CandidateRepository, store storage.Storage, text extract.TextExtractor, fields llm.FieldExtractor, fallback *heuristic.Extractor) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if fallback == nil {
		fallback = heuristic.NewExtractor()
	}
	return &Pipeline{
		cfg:        cfg,
		log:        log,
		uploads:    uploads,
		candidates: candidates,
		store:      store,
		text:       text,
		fields:     fields,
		fallback:   fallback,
	}
}

// Run processes one upload end to end. filePath overrides the upload record's
// storage path when non-empty (the trigger may name a fresher copy). The
// returned record is non-nil only when the run ends in completed.
func (p *Pipeline) Run(ctx context.Context, uploadID uuid.UUID, filePath string) (*repository.CandidateRecord, error) {
	reqID := uuid.NewString()
	start := time.Now()
	log := p.log.With("req_id", reqID, "upload_id", uploadID)
	log.Info("pipeline.run.start", "file_path", filePath)

	upload, err := p.uploads.GetByID(ctx, uploadID)
	if err != nil {
		log.Error("pipeline.run.load_failed", "error", err)
		return nil, err
	}
	if filePath == "" {
		filePath = upload.StoragePath
	}

	// Re-triggering a parsed upload is rejected before any status mutation.
	exists, err := p.candidates.ExistsForUpload(ctx, uploadID)
	if err != nil {
		log.Error("pipeline.run.precheck_failed", "error", err)
		return nil, err
	}
	if exists {
		log.Warn("pipeline.run.already_parsed")
		return nil, common.NewAppError(common.CodeAlreadyParsed, "upload already has extracted fields", nil)
	}

	if err := p.uploads.SetParsingStatus(ctx, uploadID, constants.StatusProcessing); err != nil {
		log.Error("pipeline.run.status_failed", "status", constants.StatusProcessing, "error", err)
		return nil, err
	}

	format := constants.MapExtToFormat(filepath.Ext(filePath))
	if format == "" {
		err := common.NewAppError(common.CodeUnsupportedFormat, fmt.Sprintf("unsupported file extension %q", filepath.Ext(filePath)), nil)
		p.fail(ctx, log, uploadID, constants.StatusFailedException, err)
		return nil, err
	}

	data, err := p.store.Download(ctx, filePath)
	if err != nil {
		err = common.NewAppError(common.CodeServiceError, "download upload bytes", err)
		p.fail(ctx, log, uploadID, constants.StatusFailedException, err)
		return nil, err
	}

	res := p.text.Extract(data, format)
	text := textnorm.NormalizeLookback(res.Text, p.cfg.MaxTextLen, p.cfg.TruncateLookback)
	log.Info("pipeline.run.text_extracted", "method", res.Method, "raw_len", len(res.Text), "text_len", len(text))

	if len(text) < p.cfg.MinTextLen {
		err := common.NewAppError(common.CodeInsufficientText,
			fmt.Sprintf("extracted %d chars, need at least %d", len(text), p.cfg.MinTextLen), nil)
		p.fail(ctx, log, uploadID, constants.StatusFailedNoText, err)
		return nil, err
	}

	var note *string
	fields, _, err := p.fields.ExtractFields(ctx, llm.ExtractRequest{Text: text, FilenameHint: upload.Filename})
	if err != nil {
		if !common.IsExtractionFailure(err) {
			p.fail(ctx, log, uploadID, constants.StatusFailedException, err)
			return nil, err
		}
		log.Warn("pipeline.run.fallback", "cause", common.CodeOf(err), "error", err)
		fields = p.fallback.Extract(text)
		n := fmt.Sprintf("primary extraction failed (%s); heuristic fallback used", common.CodeOf(err))
		note = &n
	}

	rec := &repository.CandidateRecord{
		ResumeID:       uploadID,
		UserID:         upload.UserID,
		Fields:         fields,
		RawTextContent: text,
		ExtractionNote: note,
	}
	if err := p.candidates.Insert(ctx, rec); err != nil {
		p.fail(ctx, log, uploadID, constants.StatusFailed, err)
		return nil, err
	}

	if err := p.uploads.SetParsingStatus(ctx, uploadID, constants.StatusCompleted); err != nil {
		log.Error("pipeline.run.status_failed", "status", constants.StatusCompleted, "error", err)
		return nil, err
	}

	log.Info("pipeline.run.ok", "fallback_used", note != nil, "elapsed_ms", time.Since(start).Milliseconds())
	return rec, nil
}

// fail records the terminal status for a failed run. The status write is
// best-effort: the run's own error is what propagates.
func (p *Pipeline) fail(ctx context.Context, log *slog.Logger, uploadID uuid.UUID, status constants.ParsingStatus, cause error) {
	log.Error("pipeline.run.failed", "status", status, "error", cause)
	if err := p.uploads.SetParsingStatus(ctx, uploadID, status); err != nil {
		log.Error("pipeline.run.status_failed", "status", status, "error", err)
	}
}
