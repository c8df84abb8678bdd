package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when no {...} span in the content parses as JSON.
var ErrNoJSONObject = errors.New("no parseable JSON object in content")

// RecoverJSONObject pulls a JSON object out of model output that may be
// wrapped in prose or markdown fences despite the "no extra text" instruction.
// Policy: trim, strip a leading/trailing code fence, then take the span from
// the first '{' to the last '}' and require it to parse.
func RecoverJSONObject(content string) ([]byte, error) {
	s := strings.TrimSpace(content)
	s = stripFence(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, ErrNoJSONObject
	}
	candidate := []byte(s[start : end+1])

	var probe map[string]any
	if err := json.Unmarshal(candidate, &probe); err != nil {
		return nil, ErrNoJSONObject
	}
	return candidate, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
