package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/hireai/resume-intake/internal/common"
)

func TestRecoverJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare object", `{"full_name":"Jane"}`, `{"full_name":"Jane"}`, false},
		{"surrounded by prose", `Here is the result: {"a":1} hope that helps!`, `{"a":1}`, false},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`, false},
		{"fence without language tag", "```\n{\"a\":1}\n```", `{"a":1}`, false},
		{"nested braces", `note {"a":{"b":2}} end`, `{"a":{"b":2}}`, false},
		{"no braces", "sorry, I cannot parse this resume", "", true},
		{"braces around invalid json", "{not json at all}", "", true},
		{"empty content", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RecoverJSONObject(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrNoJSONObject) {
					t.Fatalf("err = %v, want ErrNoJSONObject", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSanitizeFieldsFillsMissingKeys(t *testing.T) {
	out, touched, err := SanitizeFields([]byte(`{"full_name":"Jane Doe"}`))
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if len(touched) == 0 {
		t.Fatal("expected missing keys to be reported as touched")
	}
	if err := ValidateCandidateJSON(out); err != nil {
		t.Fatalf("sanitized document should validate: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["full_name"] != "Jane Doe" {
		t.Fatalf("full_name = %v, want kept", m["full_name"])
	}
	if m["email"] != nil {
		t.Fatalf("email = %v, want null", m["email"])
	}
	if skills, ok := m["skills"].([]any); !ok || len(skills) != 0 {
		t.Fatalf("skills = %v, want empty array", m["skills"])
	}
}

func TestSanitizeFieldsCoercions(t *testing.T) {
	in := `{
		"full_name": "  Jane Doe ",
		"email": "",
		"phone": "null",
		"location": 42,
		"summary": null,
		"skills": "Python",
		"experience": [{"title":"Engineer","company":"","extra":"x"}, "bogus"],
		"education": "none",
		"confidence": 0.9
	}`
	out, touched, err := SanitizeFields([]byte(in))
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if err := ValidateCandidateJSON(out); err != nil {
		t.Fatalf("sanitized document should validate: %v", err)
	}

	var got CandidateFields
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.FullName == nil || *got.FullName != "Jane Doe" {
		t.Fatalf("full_name = %v, want trimmed Jane Doe", got.FullName)
	}
	if got.Email != nil || got.Phone != nil || got.Location != nil {
		t.Fatal("empty/invalid scalars should become null")
	}
	if len(got.Skills) != 1 || got.Skills[0] != "Python" {
		t.Fatalf("skills = %v, want bare string wrapped", got.Skills)
	}
	if len(got.Experience) != 1 {
		t.Fatalf("experience = %v, want one coerced entry", got.Experience)
	}
	if got.Experience[0].Title == nil || *got.Experience[0].Title != "Engineer" {
		t.Fatalf("title = %v, want Engineer", got.Experience[0].Title)
	}
	if got.Experience[0].Company != nil {
		t.Fatal("empty company should become null")
	}
	if len(got.Education) != 0 {
		t.Fatalf("education = %v, want empty array", got.Education)
	}

	hasTouched := func(key string) bool {
		for _, k := range touched {
			if k == key {
				return true
			}
		}
		return false
	}
	for _, key := range []string{"email", "skills", "confidence"} {
		if !hasTouched(key) {
			t.Fatalf("touched = %v, want %q reported", touched, key)
		}
	}
}

func TestValidateStrictRejectsShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		ok   bool
	}{
		{"conformant all null", `{"full_name":null,"email":null,"phone":null,"location":null,"summary":null,"skills":[],"experience":[],"education":[]}`, true},
		{"missing key", `{"full_name":null,"email":null,"phone":null,"location":null,"summary":null,"skills":[],"experience":[]}`, false},
		{"skills as string", `{"full_name":null,"email":null,"phone":null,"location":null,"summary":null,"skills":"Python","experience":[],"education":[]}`, false},
		{"unknown key", `{"full_name":null,"email":null,"phone":null,"location":null,"summary":null,"skills":[],"experience":[],"education":[],"age":30}`, false},
		{"not json", `not even json`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCandidateJSON([]byte(tt.doc))
			if tt.ok && err != nil {
				t.Fatalf("want valid, got %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("want validation failure, got nil")
				}
				if common.CodeOf(err) != common.CodeSchemaParse {
					t.Fatalf("err code = %q, want SCHEMA_PARSE_ERROR", common.CodeOf(err))
				}
			}
		})
	}
}
