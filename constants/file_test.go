package constants

import "testing"

func TestMapExtToFormat(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".pdf", PDF},
		{"PDF", PDF},
		{".DocX", DOCX},
		{"doc", DOC},
		{".txt", TXT},
		{"text", TXT},
		{".png", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MapExtToFormat(tt.ext); got != tt.want {
			t.Errorf("MapExtToFormat(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestParsingStatusTerminal(t *testing.T) {
	terminal := []ParsingStatus{StatusCompleted, StatusFailed, StatusFailedNoText, StatusFailedException}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%q should be terminal", s)
		}
	}
	for _, s := range []ParsingStatus{StatusPending, StatusProcessing} {
		if s.Terminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
}
