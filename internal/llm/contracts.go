package llm

import "context"

// ExperienceEntry is one position in a candidate's work history.
type ExperienceEntry struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Duration    *string `json:"duration"`
	Description *string `json:"description"`
}

// EducationEntry is one qualification in a candidate's education history.
type EducationEntry struct {
	Degree      *string `json:"degree"`
	Institution *string `json:"institution"`
	Year        *string `json:"year"`
}

// CandidateFields is the normalized shape we want from the extraction service.
// Missing values are explicit: null for scalars, empty array for lists —
// never an empty string standing in for "unknown".
type CandidateFields struct {
	FullName   *string           `json:"full_name"`
	Email      *string           `json:"email"`
	Phone      *string           `json:"phone"`
	Location   *string           `json:"location"`
	Summary    *string           `json:"summary"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
}

type ExtractRequest struct {
	Text         string // normalized resume text
	FilenameHint string
}

// FieldExtractor is the interface the pipeline depends on. Errors carry a
// typed code (SERVICE_ERROR, SCHEMA_PARSE_ERROR) so the orchestrator can
// decide the fallback branch without exception-style control flow; the raw
// response body is returned for diagnostics when available.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (CandidateFields, []byte, error)
}
