package heuristic

import (
	"regexp"
	"strings"

	"github.com/hireai/resume-intake/internal/llm"
)

var (
	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	rePhone = regexp.MustCompile(`(?:\+?\d{1,3}[ .-]?)?\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4}`)
	reLoc   = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*, ?(?:[A-Z]{2}\b|[A-Z][a-z]+(?: [A-Z][a-z]+)*)`)
	reName  = regexp.MustCompile(`^[A-Z][A-Za-z.'-]*(?: [A-Z][A-Za-z.'-]*){1,3}$`)
	reYear  = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// NotSpecified marks "section found, sub-field not parseable" — distinct from
// null, which means the section itself was not found.
const NotSpecified = "Not specified"

const (
	nameScanLines = 8
	maxEntries    = 10
)

// Extractor derives a minimal candidate record from normalized text by
// pattern matching. It trades precision for guaranteed non-failure: every
// field may come back null/empty and no input causes an error.
type Extractor struct {
	MaxSkills     int
	SummaryMaxLen int
}

func NewExtractor() *Extractor {
	return &Extractor{MaxSkills: 25, SummaryMaxLen: 400}
}

func (e *Extractor) Extract(text string) llm.CandidateFields {
	fields := llm.CandidateFields{
		Skills:     []string{},
		Experience: []llm.ExperienceEntry{},
		Education:  []llm.EducationEntry{},
	}
	if strings.TrimSpace(text) == "" {
		return fields
	}

	lines := nonEmptyLines(text)
	fields.FullName = findName(lines)
	fields.Email = firstMatch(reEmail, text)
	fields.Phone = firstMatch(rePhone, text)
	fields.Location = firstMatch(reLoc, text)
	fields.Summary = e.findSummary(lines)
	fields.Skills = e.findSkills(text, lines)
	fields.Experience = findExperience(lines)
	fields.Education = findEducation(lines)
	return fields
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func firstMatch(re *regexp.Regexp, text string) *string {
	if m := re.FindString(text); m != "" {
		return &m
	}
	return nil
}

// findName returns the first early line shaped like "Capitalized Word(s)"
// that is not a document-type label.
func findName(lines []string) *string {
	for i, l := range lines {
		if i >= nameScanLines {
			break
		}
		if len(l) < 4 || len(l) > 60 {
			continue
		}
		low := strings.ToLower(l)
		if strings.Contains(low, "resume") || strings.Contains(low, "curriculum") || low == "cv" {
			continue
		}
		if reName.MatchString(l) {
			return &l
		}
	}
	return nil
}

// isHeading reports whether a line is a section heading for one of keys.
// A heading is the bare key ("Experience"), a short qualified form ending in
// the key ("Technical Skills"), or the key with inline content after a
// colon or dash ("Skills: Python, SQL"). A sentence that merely starts with
// the key ("Experienced engineer...") does not count.
func isHeading(line string, keys []string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	low := strings.ToLower(trimmed)
	for _, k := range keys {
		if strings.HasPrefix(low, k) {
			rest := strings.TrimSpace(trimmed[len(k):])
			if rest == "" {
				return "", true
			}
			if strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "-") {
				return strings.TrimSpace(strings.TrimLeft(rest, ":- ")), true
			}
		}
		if strings.HasSuffix(low, k) && len(low) <= len(k)+12 {
			return "", true
		}
	}
	return "", false
}

func anyHeading(line string) bool {
	for _, keys := range [][]string{summaryKeys, skillsKeys, experienceKeys, educationKeys} {
		if _, ok := isHeading(line, keys); ok {
			return true
		}
	}
	return false
}

// sectionLines returns inline heading content plus the lines that follow a
// heading for keys, up to the next recognized heading.
func sectionLines(lines []string, keys []string) []string {
	for i, l := range lines {
		rest, ok := isHeading(l, keys)
		if !ok {
			continue
		}
		var out []string
		if rest != "" {
			out = append(out, rest)
		}
		for _, next := range lines[i+1:] {
			if anyHeading(next) {
				break
			}
			out = append(out, next)
		}
		return out
	}
	return nil
}

func (e *Extractor) findSummary(lines []string) *string {
	sec := sectionLines(lines, summaryKeys)
	if len(sec) == 0 {
		return nil
	}
	s := strings.TrimSpace(strings.Join(sec, " "))
	if s == "" {
		return nil
	}
	if len(s) > e.SummaryMaxLen {
		s = strings.TrimSpace(s[:e.SummaryMaxLen])
	}
	return &s
}

func (e *Extractor) findSkills(text string, lines []string) []string {
	hay := text
	if sec := sectionLines(lines, skillsKeys); len(sec) > 0 {
		hay = strings.Join(sec, "\n")
	}
	low := " " + strings.ToLower(hay) + " "

	out := []string{}
	for _, skill := range skillVocab {
		if len(out) >= e.MaxSkills {
			break
		}
		if containsWord(low, skill) {
			out = append(out, titleCase(skill))
		}
	}
	return out
}

// containsWord matches a lowercase token as whole words, tolerating the
// punctuation in entries like "c++" and "ci/cd".
func containsWord(haystack, token string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], token)
		if i < 0 {
			return false
		}
		i += idx
		before := byte(' ')
		if i > 0 {
			before = haystack[i-1]
		}
		after := byte(' ')
		if i+len(token) < len(haystack) {
			after = haystack[i+len(token)]
		}
		if !isWordByte(before) && !isWordByte(after) {
			return true
		}
		idx = i + len(token)
		if idx >= len(haystack) {
			return false
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func findExperience(lines []string) []llm.ExperienceEntry {
	out := []llm.ExperienceEntry{}
	for _, l := range sectionLines(lines, experienceKeys) {
		if len(out) >= maxEntries {
			break
		}
		low := strings.ToLower(l)
		for _, k := range roleKeys {
			if strings.Contains(low, k) {
				out = append(out, llm.ExperienceEntry{
					Title:       ptr(clip(l, 100)),
					Company:     ptr(NotSpecified),
					Duration:    ptr(durationOf(l)),
					Description: ptr(NotSpecified),
				})
				break
			}
		}
	}
	return out
}

func findEducation(lines []string) []llm.EducationEntry {
	out := []llm.EducationEntry{}
	for _, l := range sectionLines(lines, educationKeys) {
		if len(out) >= maxEntries {
			break
		}
		low := strings.ToLower(l)
		for _, k := range degreeKeys {
			if strings.Contains(low, k) {
				year := NotSpecified
				if y := reYear.FindString(l); y != "" {
					year = y
				}
				out = append(out, llm.EducationEntry{
					Degree:      ptr(clip(l, 100)),
					Institution: ptr(NotSpecified),
					Year:        ptr(year),
				})
				break
			}
		}
	}
	return out
}

func durationOf(line string) string {
	years := reYear.FindAllString(line, 2)
	if len(years) == 2 {
		return years[0] + " - " + years[1]
	}
	return NotSpecified
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}

func ptr(s string) *string { return &s }
