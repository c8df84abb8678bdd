package extract

import (
	"bytes"
	"strings"
)

// extractPDFText scans raw PDF bytes for readable text without interpreting
// the document structure. Two signals are combined: literal string operands
// written between '(' and ')' in content streams, and printable-ASCII runs
// inside stream...endstream blocks. Compressed content streams yield little
// or nothing; that is a documented limitation of this strategy, not an error.
func extractPDFText(data []byte) string {
	parts := scanLiteralStrings(data)
	parts = append(parts, scanStreamRuns(data, minStreamRun)...)
	return strings.Join(parts, " ")
}

const (
	minStreamRun  = 6 // shortest printable run kept from a stream block
	minLiteralRun = 2 // shortest literal string operand kept
)

// scanLiteralStrings recovers the text of every (...) literal, honoring
// backslash escapes and nested parentheses. Runs with no alphabetic
// character are dropped as binary noise.
func scanLiteralStrings(data []byte) []string {
	var out []string
	var cur []byte
	depth := 0
	esc := false

	flush := func() {
		s := strings.TrimSpace(string(cur))
		cur = cur[:0]
		if len(s) >= minLiteralRun && hasAlpha(s) {
			out = append(out, s)
		}
	}

	for i := 0; i < len(data); i++ {
		b := data[i]
		if depth == 0 {
			if b == '(' {
				depth = 1
			}
			continue
		}
		if esc {
			esc = false
			switch b {
			case 'n':
				cur = append(cur, '\n')
			case 'r', 't':
				cur = append(cur, ' ')
			case '(', ')', '\\':
				cur = append(cur, b)
			default:
				if b >= '0' && b <= '7' {
					// octal escape, up to three digits
					v := int(b - '0')
					for n := 0; n < 2 && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '7'; n++ {
						i++
						v = v*8 + int(data[i]-'0')
					}
					if v >= 32 && v < 127 {
						cur = append(cur, byte(v))
					}
				}
			}
			continue
		}
		switch b {
		case '\\':
			esc = true
		case '(':
			depth++
			cur = append(cur, b)
		case ')':
			depth--
			if depth == 0 {
				flush()
			} else {
				cur = append(cur, b)
			}
		default:
			if b >= 32 && b < 127 {
				cur = append(cur, b)
			}
		}
	}
	// unterminated literal at EOF: keep what was recovered
	if depth > 0 {
		flush()
	}
	return out
}

// scanStreamRuns pulls printable-ASCII runs out of stream...endstream blocks.
// Uncompressed content streams leak fragments of text this way; compressed
// ones contribute nothing.
func scanStreamRuns(data []byte, minRun int) []string {
	var out []string
	rest := data
	for {
		start := bytes.Index(rest, []byte("stream"))
		if start < 0 {
			break
		}
		rest = rest[start+len("stream"):]
		end := bytes.Index(rest, []byte("endstream"))
		if end < 0 {
			break
		}
		block := rest[:end]
		rest = rest[end+len("endstream"):]

		var run []byte
		flush := func() {
			s := strings.TrimSpace(string(run))
			run = run[:0]
			if len(s) >= minRun && hasAlpha(s) {
				out = append(out, s)
			}
		}
		for _, b := range block {
			if b >= 32 && b < 127 && b != '(' && b != ')' && b != '<' && b != '>' {
				run = append(run, b)
			} else {
				flush()
			}
		}
		flush()
	}
	return out
}

func hasAlpha(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
