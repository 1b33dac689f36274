// Implements the Generator, the client process that issues a bounded
// sequence of requests through randomly chosen switches and stations.
// The simpy-style "wait, then resume" flow becomes explicit continuations
// registered with the event queue.

package sim

import (
	"fmt"
	"math/rand"
)

// Generator issues RequestsPerGenerator requests, waiting a uniform
// think-time before each one. It persists for the whole run and counts
// its successful requests.
type Generator struct {
	Name      string
	Quota     int
	Successes int

	issued   int
	rng      *rand.Rand
	switches []*Switch
	stations []*Station

	thinkLo, thinkHi int64
	lossProbability  float64
	metrics          *Metrics
}

// Start schedules the generator's first think-time. Called once by
// Simulator.Run.
func (g *Generator) Start(s *Simulator) {
	g.scheduleThink(s)
}

// Issued returns how many requests the generator has fired so far.
func (g *Generator) Issued() int { return g.issued }

// scheduleThink registers the next think-done continuation, or does
// nothing once the quota is exhausted.
func (g *Generator) scheduleThink(s *Simulator) {
	if g.issued >= g.Quota {
		return
	}
	d := uniformTicks(g.rng, g.thinkLo, g.thinkHi)
	s.Schedule(&thinkDoneEvent{time: s.Clock + d, gen: g})
}

// onThinkDone issues the next request: choose a switch and a station
// uniformly at random, then ask the switch for a slot. The generator
// suspends here if the switch is contended.
func (g *Generator) onThinkDone(s *Simulator, now int64) {
	g.issued++
	sw := g.switches[g.rng.Intn(len(g.switches))]
	st := g.stations[g.rng.Intn(len(g.stations))]

	req := &Request{
		ID:        fmt.Sprintf("%s-%d", g.Name, g.issued),
		Generator: g.Name,
		Switch:    sw.Name(),
		Station:   st.Name,
		Priority:  DefaultPriorityKey,
		IssuedAt:  now,
		Outcome:   OutcomePending,
	}

	sw.Acquire(s, req, func(s *Simulator, granted int64) {
		g.onGranted(s, granted, req, sw, st)
	})
}

// onGranted runs once the switch slot is owned. The loss check happens
// here, after the grant and before any station contact: a lost request
// releases its slot immediately and never reaches a station. A surviving
// request holds the slot for the entire service duration, so the switch
// gates access to the station rather than merely buffering arrival.
func (g *Generator) onGranted(s *Simulator, now int64, req *Request, sw *Switch, st *Station) {
	if g.rng.Float64() < g.lossProbability {
		req.Outcome = OutcomeLost
		g.metrics.RecordLoss(sw.Kind())
		sw.Release(s)
		g.scheduleThink(s)
		return
	}

	req.ServiceStart = now
	st.HandleRequest(s, req, func(s *Simulator, end int64) {
		req.ServiceEnd = end
		req.Outcome = OutcomeSucceeded
		g.Successes++
		g.metrics.RecordService(sw.Kind(), req.Latency(), req.Delay())
		sw.Release(s)
		g.scheduleThink(s)
	})
}
