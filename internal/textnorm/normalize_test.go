package textnorm

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short text verbatim", "Jane Doe, Engineer", 100, "Jane Doe, Engineer"},
		{"unbounded when maxLen zero", strings.Repeat("a", 50), 0, strings.Repeat("a", 50)},
		{"tabs collapse to single space", "a\t\tb", 100, "a b"},
		{"space runs collapse", "a   b    c", 100, "a b c"},
		{"control bytes dropped without separator", "a\x00b", 100, "ab"},
		{"disallowed punctuation dropped", "a[b]c", 100, "abc"},
		{"allowed punctuation kept", "jane.doe@example.com (555) 123-4567", 100, "jane.doe@example.com (555) 123-4567"},
		{"newlines preserved", "line one\nline two", 100, "line one\nline two"},
		{"blank line runs collapse to one", "a\n\n\n\nb", 100, "a\n\nb"},
		{"leading and trailing whitespace dropped", "  \n a \n ", 100, "a"},
		{"truncate at word boundary", "abcdef ghij", 9, "abcdef"},
		{"truncate exact fit untouched", "abcdef", 6, "abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in, tt.maxLen)
			if got != tt.want {
				t.Fatalf("Normalize(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestNormalizeBound(t *testing.T) {
	in := strings.Repeat("word ", 100)
	for _, maxLen := range []int{10, 25, 63, 64, 200} {
		got := Normalize(in, maxLen)
		if len(got) > maxLen {
			t.Fatalf("len(Normalize(_, %d)) = %d, exceeds bound", maxLen, len(got))
		}
	}
}

func TestTruncateHardCut(t *testing.T) {
	// No space inside the lookback window: cut mid-word at the limit.
	in := strings.Repeat("a", 200)
	got := Truncate(in, 50, 64)
	if got != strings.Repeat("a", 50) {
		t.Fatalf("got %q, want hard cut at 50 bytes", got)
	}
}

func TestTruncateLookbackWindow(t *testing.T) {
	// Space exists but outside the window: hard cut wins.
	in := "ab " + strings.Repeat("c", 200)
	got := Truncate(in, 100, 10)
	if len(got) != 100 {
		t.Fatalf("len = %d, want 100 (space outside lookback)", len(got))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Jane\tDoe\n\n\n  Engineer \x00\x01 at [Acme]",
		strings.Repeat("skill ", 40),
		"",
		"   \n\t  ",
	}
	for _, in := range inputs {
		once := Normalize(in, 80)
		twice := Normalize(once, 80)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
