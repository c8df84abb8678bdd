package screening

import (
	"fmt"
	"strings"

	"github.com/hireai/resume-intake/internal/llm"
)

const maxSkillsInQuestion = 3

// BuildQuestions templates a screening question set from a candidate's
// extracted fields. Pure string work: missing fields fall back to generic
// phrasing rather than dropping the question.
func BuildQuestions(fields llm.CandidateFields) []string {
	skills := "technical skills"
	if len(fields.Skills) > 0 {
		top := fields.Skills
		if len(top) > maxSkillsInQuestion {
			top = top[:maxSkillsInQuestion]
		}
		skills = strings.Join(top, ", ")
	}

	role := "your background"
	if len(fields.Experience) > 0 && fields.Experience[0].Title != nil && *fields.Experience[0].Title != "" {
		role = *fields.Experience[0].Title
	}

	return []string{
		fmt.Sprintf("What specific experience do you have with %s?", skills),
		fmt.Sprintf("Can you describe a challenging project you worked on as a %s?", role),
		fmt.Sprintf("How do you approach problem-solving when working with %s?", skills),
		"What interests you most about this role and our company?",
		"How do you stay updated with the latest trends in your field?",
		"Can you walk me through your experience with team collaboration?",
		"What are your salary expectations for this position?",
		"When would you be available to start if selected?",
	}
}
