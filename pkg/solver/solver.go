package solver

import (
	"context"

	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
)

// Solver answers student problems. Implementations wrap a concrete LLM
// backend; a backend-reported error payload is returned as domain.AppError,
// anything else is a transport failure.
type Solver interface {
	Solve(ctx context.Context, problem domain.Problem) (domain.Answer, error)
	// Ping checks backend connectivity. Used for the non-blocking startup
	// probe only; a failure is a warning, not fatal.
	Ping(ctx context.Context) error
}

// Instructions is appended to every problem so the model structures its
// answer into the sections the transcript renders.
const Instructions = `Please provide the following for the STEM problem:
1. A step-by-step solution.
2. A simple explanation of the main concepts.
3. Two similar practice questions.

Structure your response clearly with headings for Solution, Explanation, and Practice Questions.`
