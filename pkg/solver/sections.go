package solver

import (
	"regexp"
	"strings"

	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
)

// sectionHeadingPattern matches the heading lines the instructions ask the
// model for, in their common spellings: "## Solution", "Solution:",
// "**Practice Questions**" and so on.
var sectionHeadingPattern = regexp.MustCompile(`(?i)^\s*(?:#{1,3}\s*)?\*{0,2}(solution|explanation|practice\s+questions?)\*{0,2}\s*:?\s*$`)

// SplitSections recovers the structured answer fields from free-running model
// text. Text before the first recognized heading, or the whole text when no
// heading is found, lands in the free-form Response field.
func SplitSections(text string) domain.Answer {
	var answer domain.Answer
	current := ""
	var buf []string

	flush := func() {
		body := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = nil
		if body == "" {
			return
		}
		switch current {
		case "solution":
			answer.Solution = body
		case "explanation":
			answer.Explanation = body
		case "practice questions":
			answer.PracticeQuestions = body
		default:
			answer.Response = body
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if m := sectionHeadingPattern.FindStringSubmatch(line); m != nil {
			flush()
			current = normalizeHeading(m[1])
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return answer
}

func normalizeHeading(heading string) string {
	heading = strings.ToLower(strings.Join(strings.Fields(heading), " "))
	if heading == "practice question" {
		heading = "practice questions"
	}
	return heading
}
