package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/hireai/resume-intake/internal/llm"
	"github.com/hireai/resume-intake/internal/repository"
)

// Service is a tiny façade over the candidate repository that produces XLSX
// bytes for exports.
type Service struct {
	candidates repository.CandidateRepository
	logger     *slog.Logger
}

func NewService(candidates repository.CandidateRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{candidates: candidates, logger: logger}
}

// ExportCandidatesXLSX returns an XLSX workbook (as bytes) with one row per
// parsed resume belonging to the user.
func (s *Service) ExportCandidatesXLSX(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	start := time.Now()

	recs, err := s.candidates.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Candidates"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Full Name",
		"Email",
		"Phone",
		"Location",
		"Top Skills",
		"Latest Title",
		"Education",
		"Extraction Note",
		"Parsed At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, deref(r.Fields.FullName))
		write(2, deref(r.Fields.Email))
		write(3, deref(r.Fields.Phone))
		write(4, deref(r.Fields.Location))
		write(5, topSkills(r.Fields.Skills, 8))
		write(6, latestTitle(r.Fields.Experience))
		write(7, latestDegree(r.Fields.Education))
		write(8, truncate(deref(r.ExtractionNote), 140))
		write(9, r.CreatedAt.Format("2006-01-02"))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 30)
	_ = f.SetColWidth(sheet, "C", "D", 18)
	_ = f.SetColWidth(sheet, "E", "E", 48)
	_ = f.SetColWidth(sheet, "F", "G", 30)
	_ = f.SetColWidth(sheet, "H", "H", 40)
	_ = f.SetColWidth(sheet, "I", "I", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"user_id", userID.String(),
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func topSkills(skills []string, n int) string {
	if len(skills) > n {
		skills = skills[:n]
	}
	return strings.Join(skills, ", ")
}

func latestTitle(exp []llm.ExperienceEntry) string {
	if len(exp) == 0 {
		return ""
	}
	return deref(exp[0].Title)
}

func latestDegree(edu []llm.EducationEntry) string {
	if len(edu) == 0 {
		return ""
	}
	return deref(edu[0].Degree)
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
