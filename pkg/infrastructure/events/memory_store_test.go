package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryStore()

	store.Append(New(TypeSolveStarted, "solve-1", map[string]interface{}{"core_variables": 3}))
	store.Append(New(TypeIterationCompleted, "solve-1", map[string]interface{}{"iteration": 1}))
	store.Append(New(TypeSolveStarted, "solve-2", nil))

	events := store.Events("solve-1")
	require.Len(t, events, 2)
	assert.Equal(t, TypeSolveStarted, events[0].Type)
	assert.Equal(t, 1, events[0].Version)
	assert.Equal(t, TypeIterationCompleted, events[1].Type)
	assert.Equal(t, 2, events[1].Version)

	assert.Len(t, store.Events("solve-2"), 1)
	assert.Empty(t, store.Events("missing"))
}
