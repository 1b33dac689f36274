// Defines the Request struct that models a single client request in the
// simulation. Tracks issue time, chosen switch and station, service
// timestamps, and the final outcome.

package sim

import (
	"fmt"
)

// RequestOutcome represents the terminal state of a request.
type RequestOutcome string

const (
	OutcomePending   RequestOutcome = "pending"
	OutcomeSucceeded RequestOutcome = "succeeded"
	OutcomeLost      RequestOutcome = "lost"
)

// DefaultPriorityKey is assigned to every request the generators issue.
// Priority switches grant the numerically smallest key first, so with a
// uniform key the Priority discipline degenerates to arrival order. The
// key is exported so callers driving a Switch directly can differentiate.
const DefaultPriorityKey = 0.0

// Request models a single request's lifecycle in the simulation.
// It is created when a generator fires and discarded once its outcome is
// settled; only the recorded metrics survive it.
type Request struct {
	ID        string // Unique identifier, "<generator>-<iteration>"
	Generator string // Name of the issuing generator
	Switch    string // Name of the chosen switch
	Station   string // Name of the chosen station

	Priority float64 // Priority key; smaller is granted first on Priority switches

	IssuedAt     int64 // Tick when the generator issued the request
	ServiceStart int64 // Tick when service began (successful requests only)
	ServiceEnd   int64 // Tick when service completed (successful requests only)

	Outcome RequestOutcome
}

// Latency returns the service duration in ticks. Zero until the request
// has completed service.
func (req *Request) Latency() int64 {
	return req.ServiceEnd - req.ServiceStart
}

// Delay returns the end-to-end duration from issue to completion in ticks.
func (req *Request) Delay() int64 {
	return req.ServiceEnd - req.IssuedAt
}

// String returns a human-readable representation of a Request.
func (req Request) String() string {
	return fmt.Sprintf("Request: (ID: %s, Outcome: %s, Switch: %s, Station: %s, IssuedAt: %d)",
		req.ID, req.Outcome, req.Switch, req.Station, req.IssuedAt)
}
