package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThisisBizness/Study-Buddy/pkg/logger"
	"github.com/ThisisBizness/Study-Buddy/pkg/solver"
)

// solverProbe checks backend connectivity once, at startup. A failure is a
// warning only; the service keeps running.
type solverProbe struct {
	solver solver.Solver
}

func NewSolverProbe(s solver.Solver) (*solverProbe, error) {
	return &solverProbe{solver: s}, nil
}

func (p *solverProbe) Name() string { return "solver_probe" }

func (p *solverProbe) Start(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := p.solver.Ping(probeCtx); err != nil {
		slog.Warn("solver backend unreachable at startup", logger.Err(err))
		return nil
	}
	slog.Info("solver backend reachable")
	return nil
}
