package extract

import (
	"github.com/hireai/resume-intake/constants"
)

// Extractor implements TextExtractor with per-format heuristics. It is pure
// and synchronous: no I/O, no failures, possibly-empty output.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

func (e *Extractor) Extract(data []byte, format string) Result {
	switch format {
	case constants.TXT:
		return Result{Text: string(data), Method: "plaintext"}
	case constants.PDF:
		return Result{Text: extractPDFText(data), Method: "pdf-scan"}
	case constants.DOCX:
		if text := extractDOCXText(data); text != "" {
			return Result{Text: text, Method: "docx-xml"}
		}
		// not a readable zip container; fall through to the binary scan
		return Result{Text: extractBinaryText(data), Method: "binary-scan"}
	default:
		// DOC and anything unrecognized
		return Result{Text: extractBinaryText(data), Method: "binary-scan"}
	}
}
