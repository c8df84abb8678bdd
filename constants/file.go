package constants

import "strings"

// FileTypes holds the allowed container formats for uploaded resumes.
var FileTypes = []string{"PDF", "DOCX", "DOC", "TXT"}

// Container format identifiers used by the text extractor.
const (
	PDF  = "PDF"
	DOCX = "DOCX"
	DOC  = "DOC"
	TXT  = "TXT"
)

// AllowedExtensions holds the default allowed file extensions for resume ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"doc":  {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to its container format,
// or "" when the extension is not supported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	case "doc":
		return DOC
	case "txt", "text":
		return TXT
	}
	return ""
}

// ContentTypeForExt returns the declared MIME type for a supported extension.
func ContentTypeForExt(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return "application/pdf"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "doc":
		return "application/msword"
	case "txt", "text":
		return "text/plain"
	}
	return "application/octet-stream"
}
