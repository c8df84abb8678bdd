package extract

import "strings"

// minBinaryRun is the shortest printable run kept when scanning opaque binaries.
const minBinaryRun = 4

// extractBinaryText is the crude last-resort strategy for legacy DOC files and
// unrecognized binaries: keep printable runs of a minimum length that carry at
// least one letter or digit. Complex files yield mostly noise or nothing.
func extractBinaryText(data []byte) string {
	var parts []string
	var run []byte
	flush := func() {
		s := strings.TrimSpace(string(run))
		run = run[:0]
		if len(s) >= minBinaryRun && hasAlnum(s) {
			parts = append(parts, s)
		}
	}
	for _, b := range data {
		if (b >= 32 && b < 127) || b == '\n' {
			run = append(run, b)
		} else {
			flush()
		}
	}
	flush()
	return strings.Join(parts, " ")
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return true
		}
	}
	return false
}
