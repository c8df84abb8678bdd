package textnorm

import (
	"strings"
	"unicode"
)

// DefaultLookback is how far back Normalize searches for a space before
// hard-truncating mid-word.
const DefaultLookback = 64

// allowedPunct is the punctuation kept by the scrubbing pass. Everything
// outside letters, digits, whitespace and this set is dropped to keep
// binary noise and control sequences away from the extraction service.
const allowedPunct = "@.,-()/:;'&+#!?%_*"

// Normalize cleans extracted text and bounds it to maxLen bytes.
// Horizontal whitespace runs collapse to single spaces; line structure is
// preserved (the fallback extractor keys off lines and paragraphs), with
// blank-line runs collapsed to one. maxLen <= 0 means unbounded.
// Normalize is idempotent: Normalize(Normalize(s, n), n) == Normalize(s, n).
func Normalize(s string, maxLen int) string {
	return NormalizeLookback(s, maxLen, DefaultLookback)
}

// NormalizeLookback is Normalize with an explicit truncation lookback window.
func NormalizeLookback(s string, maxLen, lookback int) string {
	s = scrub(s)
	return Truncate(s, maxLen, lookback)
}

// Truncate bounds s to maxLen bytes, cutting at the nearest preceding space
// within the lookback window, or mid-word when no such boundary exists.
func Truncate(s string, maxLen, lookback int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	cut := s[:maxLen]
	if lookback > 0 {
		if idx := strings.LastIndexAny(cut, " \n"); idx >= 0 && maxLen-idx <= lookback {
			cut = cut[:idx]
		}
	}
	return strings.TrimRight(cut, " \n")
}

func scrub(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space, newlines := false, 0
	wrote := false

	writeSep := func() {
		if !wrote {
			space, newlines = false, 0
			return
		}
		if newlines >= 2 {
			b.WriteString("\n\n")
		} else if newlines == 1 {
			b.WriteByte('\n')
		} else if space {
			b.WriteByte(' ')
		}
		space, newlines = false, 0
	}

	for _, r := range s {
		switch {
		case r == '\n':
			if newlines < 2 {
				newlines++
			}
		case unicode.IsSpace(r):
			space = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(allowedPunct, r):
			writeSep()
			b.WriteRune(r)
			wrote = true
		}
		// everything else is dropped
	}
	return b.String()
}
