package decomposition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
)

func edge(from, to string) entities.EdgeKey {
	return entities.EdgeKey{From: from, To: to, Commodity: "crude steel"}
}

func TestMaxRelativeChange(t *testing.T) {
	testCases := []struct {
		name     string
		previous entities.Solution
		current  entities.Solution
		expected float64
	}{
		{
			name:     "identical solutions",
			previous: entities.Solution{edge("a", "b"): 10},
			current:  entities.Solution{edge("a", "b"): 10},
			expected: 0,
		},
		{
			name:     "both zero",
			previous: entities.Solution{edge("a", "b"): 0},
			current:  entities.Solution{edge("a", "b"): 0},
			expected: 0,
		},
		{
			name:     "flow appears from zero",
			previous: entities.Solution{},
			current:  entities.Solution{edge("a", "b"): 5},
			expected: 1.0,
		},
		{
			name:     "relative change against previous",
			previous: entities.Solution{edge("a", "b"): 100},
			current:  entities.Solution{edge("a", "b"): 95},
			expected: 0.05,
		},
		{
			name: "max norm picks worst edge",
			previous: entities.Solution{
				edge("a", "b"): 100,
				edge("b", "c"): 10,
			},
			current: entities.Solution{
				edge("a", "b"): 101,
				edge("b", "c"): 15,
			},
			expected: 0.5,
		},
		{
			name:     "flow disappearing counts against previous",
			previous: entities.Solution{edge("a", "b"): 40},
			current:  entities.Solution{},
			expected: 1.0,
		},
	}

	checker := NewConvergenceChecker(0.01)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, checker.MaxRelativeChange(tc.previous, tc.current), 1e-12)
		})
	}
}

func TestConverged(t *testing.T) {
	checker := NewConvergenceChecker(0.01)

	prev := entities.Solution{edge("a", "b"): 100}
	within := entities.Solution{edge("a", "b"): 100.5}
	outside := entities.Solution{edge("a", "b"): 102}

	assert.True(t, checker.Converged(prev, within))
	assert.False(t, checker.Converged(prev, outside))
}
