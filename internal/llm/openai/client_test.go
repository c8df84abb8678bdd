package openai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hireai/resume-intake/internal/common"
	"github.com/hireai/resume-intake/internal/llm"
)

func chatResponse(t *testing.T, content string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return b
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const conformant = `{"full_name":"Jane Doe","email":"jane@example.com","phone":null,"location":null,` +
	`"summary":null,"skills":["Python"],"experience":[],"education":[]}`

func TestExtractFieldsOK(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write(chatResponse(t, conformant))
	})

	out, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{Text: "resume text", FilenameHint: "resume.pdf"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out.FullName == nil || *out.FullName != "Jane Doe" {
		t.Fatalf("full_name = %v, want Jane Doe", out.FullName)
	}
	if len(out.Skills) != 1 || out.Skills[0] != "Python" {
		t.Fatalf("skills = %v, want [Python]", out.Skills)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q, want bearer key", gotAuth)
	}
	if gotBody["temperature"] != float64(0) {
		t.Fatalf("temperature = %v, want 0", gotBody["temperature"])
	}
	rf, _ := gotBody["response_format"].(map[string]any)
	if rf["type"] != "json_object" {
		t.Fatalf("response_format = %v, want json_object", gotBody["response_format"])
	}
}

func TestExtractFieldsRecoversFencedContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(chatResponse(t, "Sure! Here you go:\n```json\n"+conformant+"\n```"))
	})
	out, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{Text: "resume text"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out.Email == nil || *out.Email != "jane@example.com" {
		t.Fatalf("email = %v, want recovered from fenced content", out.Email)
	}
}

func TestExtractFieldsLenientSanitize(t *testing.T) {
	// Missing keys and a bare string under skills: strict validation fails,
	// the lenient pass must repair it.
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(chatResponse(t, `{"full_name":"Jane Doe","skills":"Python"}`))
	})
	out, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{Text: "resume text"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out.FullName == nil || *out.FullName != "Jane Doe" {
		t.Fatalf("full_name = %v, want Jane Doe", out.FullName)
	}
	if len(out.Skills) != 1 || out.Skills[0] != "Python" {
		t.Fatalf("skills = %v, want wrapped [Python]", out.Skills)
	}
	if out.Phone != nil || len(out.Experience) != 0 {
		t.Fatal("missing keys must become null / empty")
	}
}

func TestExtractFieldsErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantCode string
	}{
		{
			"upstream 500",
			func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			common.CodeServiceError,
		},
		{
			"no choices",
			func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{"choices":[]}`)) },
			common.CodeServiceError,
		},
		{
			"non-json body",
			func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("<html>gateway error</html>")) },
			common.CodeServiceError,
		},
		{
			"prose content",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"I cannot parse this resume"}}]}`))
			},
			common.CodeSchemaParse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{Text: "resume text"})
			if common.CodeOf(err) != tt.wantCode {
				t.Fatalf("err = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}
