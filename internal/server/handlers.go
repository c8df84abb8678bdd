package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hireai/resume-intake/internal/common"
	"github.com/hireai/resume-intake/internal/export"
	"github.com/hireai/resume-intake/internal/llm"
	"github.com/hireai/resume-intake/internal/pipeline"
	"github.com/hireai/resume-intake/internal/repository"
	"github.com/hireai/resume-intake/internal/screening"
)

type handlers struct {
	pipe       *pipeline.Pipeline
	candidates repository.CandidateRepository
	exporter   *export.Service
	log        *slog.Logger
}

type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorResponse{Code: code, Message: message})
}

// statusForCode maps the pipeline's error taxonomy onto HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case common.CodeAlreadyParsed:
		return http.StatusConflict
	case common.CodeUnsupportedFormat, common.CodeInsufficientText:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type parseRequest struct {
	UploadID string `json:"upload_id"`
	FilePath string `json:"file_path"`
}

type candidateResponse struct {
	ID             uuid.UUID           `json:"id"`
	ResumeID       uuid.UUID           `json:"resume_id"`
	Fields         llm.CandidateFields `json:"fields"`
	ExtractionNote *string             `json:"extraction_note"`
	CreatedAt      string              `json:"created_at"`
}

func toCandidateResponse(rec *repository.CandidateRecord) candidateResponse {
	return candidateResponse{
		ID:             rec.ID,
		ResumeID:       rec.ResumeID,
		Fields:         rec.Fields,
		ExtractionNote: rec.ExtractionNote,
		CreatedAt:      rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// parse runs the pipeline synchronously for one upload.
func (h *handlers) parse(c *fiber.Ctx) error {
	var req parseRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "", "invalid request body")
	}
	uploadID, err := uuid.Parse(req.UploadID)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "", "upload_id must be a UUID")
	}

	rec, err := h.pipe.Run(c.Context(), uploadID, req.FilePath)
	if err != nil {
		code := common.CodeOf(err)
		h.log.Error("parse request failed", "upload_id", uploadID, "code", code, "error", err)
		return jsonError(c, statusForCode(code), code, err.Error())
	}
	return c.JSON(toCandidateResponse(rec))
}

// candidate returns the extracted fields for one upload, scoped to its owner.
func (h *handlers) candidate(c *fiber.Ctx) error {
	uploadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "", "upload id must be a UUID")
	}
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "", "user_id must be a UUID")
	}

	rec, err := h.candidates.GetByUploadID(c.Context(), uploadID, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "", "no extracted fields for upload")
		}
		return jsonError(c, http.StatusInternalServerError, common.CodeOf(err), err.Error())
	}
	return c.JSON(toCandidateResponse(rec))
}

// questions templates a screening question set from the upload's extracted
// fields.
func (h *handlers) questions(c *fiber.Ctx) error {
	uploadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "", "upload id must be a UUID")
	}
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "", "user_id must be a UUID")
	}

	rec, err := h.candidates.GetByUploadID(c.Context(), uploadID, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "", "no extracted fields for upload")
		}
		return jsonError(c, http.StatusInternalServerError, common.CodeOf(err), err.Error())
	}
	return c.JSON(fiber.Map{"questions": screening.BuildQuestions(rec.Fields)})
}

func (h *handlers) exportXLSX(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "", "user_id must be a UUID")
	}

	data, err := h.exporter.ExportCandidatesXLSX(c.Context(), userID)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "", err.Error())
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="candidates.xlsx"`)
	return c.Send(data)
}
