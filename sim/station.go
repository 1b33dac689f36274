// Implements the Station, the stateless service entity behind the
// switches. A station may serve any number of requests concurrently; each
// draw is an independent uniform service duration.

package sim

import "math/rand"

// Station serves requests for a random duration. It holds no capacity
// state, so it is reentrant: overlapping requests simply overlap in
// virtual time. Station processing never fails in this model.
type Station struct {
	Name string

	rng    *rand.Rand // shared service-time stream
	lo, hi int64      // service-time range in ticks
}

// NewStation creates a station drawing service times from [lo, hi) ticks.
func NewStation(name string, rng *rand.Rand, lo, hi int64) *Station {
	return &Station{Name: name, rng: rng, lo: lo, hi: hi}
}

// HandleRequest draws a service duration and schedules the completion.
// done resumes the caller at the completion tick, after the simulator's
// CompletionSink has observed the event.
func (st *Station) HandleRequest(s *Simulator, req *Request, done GrantFunc) {
	d := uniformTicks(st.rng, st.lo, st.hi)
	s.Schedule(&serviceDoneEvent{
		time:    s.Clock + d,
		station: st,
		req:     req,
		done:    done,
	})
}
