package extract

// TextExtractor is Stage 1: upload bytes -> best-effort plain text.
// Implementations never fail; an unreadable document yields empty text
// and the orchestrator decides whether the result is usable.
type TextExtractor interface {
	Extract(data []byte, format string) Result
}

type Result struct {
	Text   string
	Method string // "pdf-scan" | "docx-xml" | "binary-scan" | "plaintext"
}
