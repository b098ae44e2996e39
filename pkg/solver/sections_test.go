package solver

import (
	"context"
	"testing"

	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
)

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected domain.Answer
	}{
		{
			"markdown headings",
			"## Solution\nstep one\nstep two\n\n## Explanation\nbecause\n\n## Practice Questions\n- q1\n- q2",
			domain.Answer{
				Solution:          "step one\nstep two",
				Explanation:       "because",
				PracticeQuestions: "- q1\n- q2",
			},
		},
		{
			"colon headings",
			"Solution:\nx=1\nExplanation:\nsimple\nPractice Questions:\nq1",
			domain.Answer{Solution: "x=1", Explanation: "simple", PracticeQuestions: "q1"},
		},
		{
			"bold headings",
			"**Solution**\nx=2\n**Practice Question**\nq",
			domain.Answer{Solution: "x=2", PracticeQuestions: "q"},
		},
		{
			"no headings falls back to response",
			"just a wall of text\nwith two lines",
			domain.Answer{Response: "just a wall of text\nwith two lines"},
		},
		{
			"preamble lands in response",
			"Sure, here you go.\n## Solution\nx=3",
			domain.Answer{Response: "Sure, here you go.", Solution: "x=3"},
		},
		{
			"empty text",
			"",
			domain.Answer{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := SplitSections(test.text); got != test.expected {
				t.Errorf("SplitSections(%q) = %+v, want %+v", test.text, got, test.expected)
			}
		})
	}
}

func TestMockSolver(t *testing.T) {
	m := NewMockSolver()
	ctx := context.Background()

	if _, err := m.Solve(ctx, domain.Problem{}); err == nil {
		t.Error("expected error for empty problem")
	}

	_, err := m.Solve(ctx, domain.Problem{Text: "please error out"})
	var appErr domain.AppError
	if !asAppError(err, &appErr) || appErr.Message != "Mock Error" {
		t.Errorf("expected mock error, got %v", err)
	}

	answer, err := m.Solve(ctx, domain.Problem{Text: "solve the quadratic equation"})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if answer.Solution == "" || answer.Explanation == "" || answer.PracticeQuestions == "" {
		t.Errorf("expected all sections populated, got %+v", answer)
	}
}

func asAppError(err error, target *domain.AppError) bool {
	appErr, ok := err.(domain.AppError)
	if ok {
		*target = appErr
	}
	return ok
}
