package domain

// Answer is a structured solver response. Every field is independently
// optional; an answer with no fields set is valid but empty.
type Answer struct {
	Solution          string `json:"solution,omitempty"`
	Explanation       string `json:"explanation,omitempty"`
	PracticeQuestions string `json:"practice_questions,omitempty"`
	Response          string `json:"response,omitempty"`
	ImageURL          string `json:"image_url,omitempty"`
}

const (
	SectionSolution          = "solution"
	SectionExplanation       = "explanation"
	SectionPracticeQuestions = "practice_questions"
	SectionResponse          = "response"
)

// Sections returns the present fields as named markdown sections, in display
// order. The free-form Response field is included only when set.
func (a Answer) Sections() []Section {
	var sections []Section
	if a.Solution != "" {
		sections = append(sections, Section{Name: SectionSolution, Markdown: a.Solution})
	}
	if a.Explanation != "" {
		sections = append(sections, Section{Name: SectionExplanation, Markdown: a.Explanation})
	}
	if a.PracticeQuestions != "" {
		sections = append(sections, Section{Name: SectionPracticeQuestions, Markdown: a.PracticeQuestions})
	}
	if a.Response != "" {
		sections = append(sections, Section{Name: SectionResponse, Markdown: a.Response})
	}
	return sections
}

func (a Answer) Empty() bool {
	return len(a.Sections()) == 0 && a.ImageURL == ""
}

// Section is one named block of raw markdown within an assistant answer.
type Section struct {
	Name     string
	Markdown string
}
