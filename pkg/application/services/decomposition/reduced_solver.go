package decomposition

import (
	"context"

	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/errors"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/infrastructure/backend"
)

// ReducedSolver runs the LP backend over the reduced model and turns the
// raw variable vector back into an edge-keyed core solution.
type ReducedSolver struct {
	backend backend.Solver
	epsilon float64
}

// NewReducedSolver creates a reduced solver. epsilon is the magnitude
// below which a flow is treated as solver noise and dropped.
func NewReducedSolver(solver backend.Solver, epsilon float64) *ReducedSolver {
	return &ReducedSolver{backend: solver, epsilon: epsilon}
}

// Solve invokes the backend, optionally warm-started from the previous
// full solution. A non-optimal termination is a SolveError carrying the
// backend's status; no partial solution is returned.
func (s *ReducedSolver) Solve(ctx context.Context, model *ReducedModel, warmStart entities.Solution) (entities.Solution, error) {
	model.SetWarmStart(warmStart)

	result, err := s.backend.Solve(ctx, model.Problem())
	if err != nil {
		return nil, errors.Solve("reduced LP terminated non-optimally", string(result.Status), err)
	}

	solution := model.DecodeFlows(result.X)
	for edge, flow := range solution {
		if flow < s.epsilon && flow > -s.epsilon {
			delete(solution, edge)
		}
	}
	return solution, nil
}
