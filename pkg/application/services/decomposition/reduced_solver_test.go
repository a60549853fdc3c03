package decomposition

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testnets "github.com/systemiqofficial/steel-iq-sub003/pkg/application/services/testing"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/errors"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/infrastructure/backend"
)

// stubBackend replays canned variable vectors, one per call, and records
// the problems it was handed.
type stubBackend struct {
	vectors  [][]float64
	failWith *backend.Result
	calls    int
	problems []backend.Problem
}

func (s *stubBackend) Solve(_ context.Context, problem backend.Problem) (backend.Result, error) {
	s.problems = append(s.problems, problem)
	if s.failWith != nil {
		return *s.failWith, fmt.Errorf("backend terminated: %s", s.failWith.Status)
	}
	idx := s.calls
	if idx >= len(s.vectors) {
		idx = len(s.vectors) - 1
	}
	s.calls++
	return backend.Result{Status: backend.StatusOptimal, X: s.vectors[idx]}, nil
}

func TestReducedSolver_FiltersNoise(t *testing.T) {
	model := testnets.BuildLinearChain(50)
	reduced, core := buildReduced(t, model)

	stub := &stubBackend{vectors: [][]float64{{0.6, 45, 1e-9, 0}}}
	solution, err := NewReducedSolver(stub, 1e-6).Solve(context.Background(), reduced, nil)
	require.NoError(t, err)

	assert.Equal(t, 45.0, solution.Flow(core.MajorRoutes[0]))
	assert.False(t, solution.Contains(core.MajorRoutes[1]), "sub-epsilon flow must be dropped")
}

func TestReducedSolver_NonOptimalIsSolveError(t *testing.T) {
	model := testnets.BuildLinearChain(50)
	reduced, _ := buildReduced(t, model)

	stub := &stubBackend{failWith: &backend.Result{Status: backend.StatusInfeasible}}
	_, err := NewReducedSolver(stub, 1e-6).Solve(context.Background(), reduced, nil)
	require.Error(t, err)

	var domainErr *errors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, errors.TypeSolve, domainErr.Type)
	assert.Equal(t, string(backend.StatusInfeasible), domainErr.Status())
}

func TestReducedSolver_PassesWarmStartHints(t *testing.T) {
	model := testnets.BuildLinearChain(50)
	reduced, core := buildReduced(t, model)

	warm := entities.NewSolution(2)
	warm.Set(core.MajorRoutes[0], 40)

	stub := &stubBackend{vectors: [][]float64{{0.5, 40, 44, 6}}}
	_, err := NewReducedSolver(stub, 1e-6).Solve(context.Background(), reduced, warm)
	require.NoError(t, err)

	require.Len(t, stub.problems, 1)
	require.NotNil(t, stub.problems[0].Initial)
	assert.Equal(t, 40.0, stub.problems[0].Initial[1])
}
