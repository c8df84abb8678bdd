package constants

// ParsingStatus is the canonical status for rows in resumes.parsing_status.
type ParsingStatus string

// Stable values (store these exact strings in DB).
const (
	StatusPending         ParsingStatus = "pending"          // upload accepted, pipeline not started
	StatusProcessing      ParsingStatus = "processing"       // pipeline in progress
	StatusCompleted       ParsingStatus = "completed"        // candidate record persisted (primary or fallback)
	StatusFailed          ParsingStatus = "failed"           // terminal failure during persistence
	StatusFailedNoText    ParsingStatus = "failed_no_text"   // too little text to attempt extraction
	StatusFailedException ParsingStatus = "failed_exception" // unexpected error outside extraction failure modes
)

// Terminal reports whether no further automatic transition is allowed.
func (s ParsingStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusFailedNoText, StatusFailedException:
		return true
	}
	return false
}
