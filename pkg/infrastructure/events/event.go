// Package events records the lifecycle of decomposition solves so callers
// can audit a run after the fact. Wiring a store is optional; the solver
// skips recording entirely when none is injected.
package events

import (
	"time"
)

// Type names a solve lifecycle event
type Type string

const (
	TypeSolveStarted        Type = "solve_started"
	TypeIterationCompleted  Type = "iteration_completed"
	TypeConverged           Type = "converged"
	TypeDiverged            Type = "diverged"
	TypeIterationLimit      Type = "iteration_limit"
	TypeValidationCompleted Type = "validation_completed"
)

// Event is one recorded occurrence within a solve stream
type Event struct {
	Type    Type
	Stream  string
	At      time.Time
	Fields  map[string]interface{}
	Version int
}

// New creates an event stamped with the current time
func New(eventType Type, stream string, fields map[string]interface{}) Event {
	return Event{
		Type:   eventType,
		Stream: stream,
		At:     time.Now(),
		Fields: fields,
	}
}

// Store persists solve lifecycle events per stream
type Store interface {
	Append(event Event)
	Events(stream string) []Event
}
