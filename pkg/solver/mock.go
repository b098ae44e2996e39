package solver

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
)

// MockSolver returns canned answers without calling any backend. Used for
// demos and tests (MOCK_MODE); keyword routing picks a roughly matching
// subject for text problems.
type MockSolver struct{}

func NewMockSolver() *MockSolver { return &MockSolver{} }

func (m *MockSolver) Ping(ctx context.Context) error { return nil }

func (m *MockSolver) Solve(ctx context.Context, problem domain.Problem) (domain.Answer, error) {
	if problem.Empty() {
		return domain.Answer{}, domain.AppError{
			Message: domain.ErrMsgNoInput,
			Details: "Please provide either text or image input",
		}
	}

	lower := strings.ToLower(problem.Text)

	// simulated failure path for testing error surfacing
	if strings.Contains(lower, "error") {
		return domain.Answer{}, domain.AppError{
			Message: "Mock Error",
			Details: "This is a simulated error response for testing",
		}
	}

	match := func(keywords ...string) bool {
		return lo.SomeBy(keywords, func(k string) bool { return strings.Contains(lower, k) })
	}

	switch {
	case match("solve", "equation", "x", "quadratic"):
		return domain.Answer{
			Solution: "1. Identify the coefficients in the standard form `ax^2 + bx + c = 0`\n" +
				"2. Use the quadratic formula `x = (-b ± √(b^2 - 4ac)) / 2a`\n" +
				"3. Calculate the discriminant `b^2 - 4ac`\n" +
				"4. Find both roots",
			Explanation: "The quadratic formula finds the solutions to any quadratic equation. " +
				"The **discriminant** tells how many real solutions exist.",
			PracticeQuestions: "- Solve for x: 3x^2 - 6x + 2 = 0\n- Solve for x: x^2 + 4x - 12 = 0",
		}, nil
	case match("force", "velocity", "physics", "newton"):
		return domain.Answer{
			Solution: "1. Identify the given quantities\n" +
				"2. Pick the relevant formula\n" +
				"3. Substitute the known values\n" +
				"4. Solve for the unknown and check units",
			Explanation: "Newton's second law, `F = ma`, relates the net force on an object " +
				"to its mass and acceleration.",
			PracticeQuestions: "- A 2kg object experiences a net force of 10N. What is its acceleration?\n" +
				"- How much force accelerates a 1500kg car from 0 to 27 m/s in 10 seconds?",
		}, nil
	case match("chemistry", "molecule", "reaction", "acid"):
		return domain.Answer{
			Solution: "1. Balance the chemical equation\n" +
				"2. Identify reactants and products\n" +
				"3. Calculate molar masses\n" +
				"4. Apply stoichiometry",
			Explanation: "Chemical reactions conserve mass, which is why equations must balance.",
			PracticeQuestions: "- Balance: H2 + O2 -> H2O\n" +
				"- How many grams of water form from 4g of hydrogen with excess oxygen?",
		}, nil
	case problem.Text == "":
		return domain.Answer{
			Solution: "1. Analyze the problem shown in the image\n" +
				"2. Apply the appropriate formula or theorem\n" +
				"3. Solve step by step\n" +
				"4. Double-check the result",
			Explanation:       "Isolate the variable by applying the same operation to both sides.",
			PracticeQuestions: "- Try a similar problem with different values\n- Solve it using an alternative method",
		}, nil
	default:
		return domain.Answer{
			Solution: "1. Understand what the problem is asking\n" +
				"2. Identify the key information and variables\n" +
				"3. Select the appropriate approach\n" +
				"4. Solve methodically and verify",
			Explanation:       "Breaking the problem into manageable steps makes it tractable.",
			PracticeQuestions: "- Can you solve a variation with slightly different values?\n- Try the same concept in a different context.",
		}, nil
	}
}
