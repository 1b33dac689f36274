package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in ticks) and an Execute method that
// advances simulation state when invoked.
type Event interface {
	Timestamp() int64
	Execute(*Simulator)
}

// thinkDoneEvent fires when a generator's think-time elapses: the
// generator issues its next request.
type thinkDoneEvent struct {
	time int64
	gen  *Generator
}

func (e *thinkDoneEvent) Timestamp() int64 {
	return e.time
}

func (e *thinkDoneEvent) Execute(s *Simulator) {
	logrus.Debugf("<< think done: %s at %d ticks", e.gen.Name, e.time)
	e.gen.onThinkDone(s, e.time)
}

// slotGrantedEvent hands a freed switch slot to the waiter the discipline
// selected. Going through the event queue keeps equal-time grants in
// scheduling order.
type slotGrantedEvent struct {
	time    int64
	sw      *Switch
	grantee waiter
}

func (e *slotGrantedEvent) Timestamp() int64 {
	return e.time
}

func (e *slotGrantedEvent) Execute(s *Simulator) {
	logrus.Debugf("<< slot granted: %s on %s at %d ticks", e.grantee.req.ID, e.sw.name, e.time)
	e.grantee.grant(s, e.time)
}

// serviceDoneEvent fires when a station finishes serving a request. It
// emits the completion observability event before resuming the caller.
type serviceDoneEvent struct {
	time    int64
	station *Station
	req     *Request
	done    GrantFunc
}

func (e *serviceDoneEvent) Timestamp() int64 {
	return e.time
}

func (e *serviceDoneEvent) Execute(s *Simulator) {
	s.CompletionSink(e.req.Generator, e.station.Name, e.time)
	e.done(s, e.time)
}
