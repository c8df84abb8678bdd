package llm

import (
	"encoding/json"
	"strings"
)

// BuildSystemPrompt composes the fixed system instruction: the exact output
// schema and the null/empty-array-for-missing, no-extra-prose contract.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a resume parser. Extract structured information from the resume text and return ONLY a JSON object matching the provided JSON Schema.",
		"Every key must be present.",
		"Use null for any scalar field you cannot find and an empty array for any list you cannot find. Never use an empty string to mean unknown.",
		"Do not invent information that is not in the text.",
		"Return only valid JSON, no additional text.",
		"JSON Schema:\n" + mustJSON(BuildCandidateJSONSchema()),
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the normalized resume text with a filename hint.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if f := strings.TrimSpace(req.FilenameHint); f != "" {
		b.WriteString("Filename: ")
		b.WriteString(f)
		b.WriteString("\n\n")
	}
	b.WriteString("Parse this resume text: ")
	b.WriteString(req.Text)
	return b.String()
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
