package heuristic

import (
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
jane.doe@example.com
(555) 123-4567
San Francisco, CA
Summary
Experienced software engineer with a passion for data platforms.
Skills
Python, SQL, Docker
Experience
Software Engineer at Acme 2019 - 2023
Education
Bachelor of Science in Computer Science 2019`

func TestExtractSampleResume(t *testing.T) {
	fields := NewExtractor().Extract(sampleResume)

	if fields.FullName == nil || *fields.FullName != "Jane Doe" {
		t.Fatalf("full_name = %v, want Jane Doe", fields.FullName)
	}
	if fields.Email == nil || *fields.Email != "jane.doe@example.com" {
		t.Fatalf("email = %v, want jane.doe@example.com", fields.Email)
	}
	if fields.Phone == nil || !strings.Contains(*fields.Phone, "555") {
		t.Fatalf("phone = %v, want the sample number", fields.Phone)
	}
	if fields.Location == nil || *fields.Location != "San Francisco, CA" {
		t.Fatalf("location = %v, want San Francisco, CA", fields.Location)
	}
	if fields.Summary == nil || !strings.Contains(*fields.Summary, "Experienced software engineer") {
		t.Fatalf("summary = %v, want the summary section text", fields.Summary)
	}

	wantSkills := map[string]bool{"Python": false, "Sql": false, "Docker": false}
	for _, s := range fields.Skills {
		if _, ok := wantSkills[s]; ok {
			wantSkills[s] = true
		}
	}
	for s, found := range wantSkills {
		if !found {
			t.Fatalf("skills = %v, missing %q", fields.Skills, s)
		}
	}

	if len(fields.Experience) != 1 {
		t.Fatalf("experience = %v, want one entry", fields.Experience)
	}
	exp := fields.Experience[0]
	if exp.Title == nil || !strings.Contains(*exp.Title, "Software Engineer") {
		t.Fatalf("title = %v, want the role line", exp.Title)
	}
	if exp.Duration == nil || *exp.Duration != "2019 - 2023" {
		t.Fatalf("duration = %v, want 2019 - 2023", exp.Duration)
	}
	if exp.Company == nil || *exp.Company != NotSpecified {
		t.Fatalf("company = %v, want %q", exp.Company, NotSpecified)
	}

	if len(fields.Education) != 1 {
		t.Fatalf("education = %v, want one entry", fields.Education)
	}
	edu := fields.Education[0]
	if edu.Degree == nil || !strings.Contains(*edu.Degree, "Bachelor of Science") {
		t.Fatalf("degree = %v, want the degree line", edu.Degree)
	}
	if edu.Year == nil || *edu.Year != "2019" {
		t.Fatalf("year = %v, want 2019", edu.Year)
	}
}

// Minimal plain-text resume with an inline skills heading: contact fields
// must land and vocabulary matches must come out case-normalized.
func TestExtractInlineSkillsHeading(t *testing.T) {
	text := "John Smith\njohn@example.com\n555-123-4567\nNew York, NY\nSkills: Python, SQL"
	fields := NewExtractor().Extract(text)

	if fields.FullName == nil || *fields.FullName != "John Smith" {
		t.Fatalf("full_name = %v, want John Smith", fields.FullName)
	}
	if fields.Email == nil || *fields.Email != "john@example.com" {
		t.Fatalf("email = %v, want john@example.com", fields.Email)
	}
	if fields.Phone == nil || *fields.Phone != "555-123-4567" {
		t.Fatalf("phone = %v, want 555-123-4567", fields.Phone)
	}
	if fields.Location == nil || *fields.Location != "New York, NY" {
		t.Fatalf("location = %v, want New York, NY", fields.Location)
	}
	want := map[string]bool{"Python": false, "Sql": false}
	for _, s := range fields.Skills {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for s, found := range want {
		if !found {
			t.Fatalf("skills = %v, missing %q", fields.Skills, s)
		}
	}
}

// Every input must produce a well-formed result: nulls and empty slices,
// never an error or panic.
func TestExtractTotality(t *testing.T) {
	inputs := []string{
		"",
		"   \n\n  ",
		"no structure at all just words",
		strings.Repeat("x", 10000),
		"Skills\nExperience\nEducation",
	}
	for _, in := range inputs {
		fields := NewExtractor().Extract(in)
		if fields.Skills == nil || fields.Experience == nil || fields.Education == nil {
			t.Fatalf("nil slice in result for input %q", in)
		}
	}
}

func TestExtractEmptyInputAllNull(t *testing.T) {
	fields := NewExtractor().Extract("")
	if fields.FullName != nil || fields.Email != nil || fields.Phone != nil ||
		fields.Location != nil || fields.Summary != nil {
		t.Fatal("empty input must yield all-null scalars")
	}
	if len(fields.Skills)+len(fields.Experience)+len(fields.Education) != 0 {
		t.Fatal("empty input must yield empty lists")
	}
}

func TestSkillsWordBoundaries(t *testing.T) {
	fields := NewExtractor().Extract("I write Java and Go code daily")
	has := func(s string) bool {
		for _, v := range fields.Skills {
			if v == s {
				return true
			}
		}
		return false
	}
	if !has("Java") || !has("Go") {
		t.Fatalf("skills = %v, want Java and Go", fields.Skills)
	}
	if has("Javascript") || has("R") {
		t.Fatalf("skills = %v, substring matches must not leak", fields.Skills)
	}
}

func TestMaxSkillsCap(t *testing.T) {
	e := NewExtractor()
	e.MaxSkills = 3
	fields := e.Extract("python java javascript typescript golang rust sql docker")
	if len(fields.Skills) != 3 {
		t.Fatalf("skills = %v, want capped at 3", fields.Skills)
	}
}
