// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// TicksPerTimeUnit is the clock resolution: one model time unit is one
// million ticks, so uniform draws over fractional ranges stay integral.
const TicksPerTimeUnit = 1e6

// queuedEvent pairs an event with its scheduling sequence number so that
// events scheduled for the same tick pop in scheduling order.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp,
// ties broken by scheduling order for deterministic replay.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].ev.Timestamp() != eq[j].ev.Timestamp() {
		return eq[i].ev.Timestamp() < eq[j].ev.Timestamp()
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// CompletionSink observes every completed service: the issuing generator,
// the serving station, and the completion tick. The engine never formats
// this itself; the surrounding program owns presentation.
type CompletionSink func(generator, station string, completedAt int64)

// Simulator is the core object that holds virtual time, the system
// topology, and the event loop. All generators, switches, and stations
// are logical processes multiplexed onto this one clock; concurrency is
// interleaving of scheduled continuations, never parallel execution.
type Simulator struct {
	Clock int64 // current virtual time in ticks

	Generators []*Generator
	Switches   []*Switch
	Stations   []*Station
	Metrics    *Metrics
	Config     Config

	// CompletionSink receives one event per completed service. Defaults
	// to a logrus line; replace before Run for custom observability.
	CompletionSink CompletionSink

	eventQueue EventQueue
	seq        uint64
	started    bool
	rng        *PartitionedRNG
}

// NewSimulator validates the configuration and builds the complete
// bipartite topology: every generator can reach every switch, every
// switch every station.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		Config:     cfg,
		Metrics:    NewMetrics(),
		eventQueue: make(EventQueue, 0),
		rng:        NewPartitionedRNG(cfg.Seed),
	}
	s.CompletionSink = func(generator, station string, completedAt int64) {
		logrus.Infof("%s received response from %s at %.2f", generator, station, TicksToTimeUnits(completedAt))
	}

	serviceLo, serviceHi := cfg.ServiceTime.ticks()
	serviceRNG := s.rng.ForSubsystem(SubsystemService)
	for i := 0; i < cfg.Stations; i++ {
		s.Stations = append(s.Stations, NewStation(fmt.Sprintf("station%d", i+1), serviceRNG, serviceLo, serviceHi))
	}

	for i := 0; i < cfg.FIFOSwitches; i++ {
		sw, err := NewSwitch(fmt.Sprintf("fifo-switch%d", i+1), DisciplineFIFO, cfg.SwitchCapacity, s.Metrics)
		if err != nil {
			return nil, err
		}
		s.Switches = append(s.Switches, sw)
	}
	for i := 0; i < cfg.PrioritySwitches; i++ {
		sw, err := NewSwitch(fmt.Sprintf("priority-switch%d", i+1), DisciplinePriority, cfg.SwitchCapacity, s.Metrics)
		if err != nil {
			return nil, err
		}
		s.Switches = append(s.Switches, sw)
	}

	thinkLo, thinkHi := cfg.ThinkTime.ticks()
	for i := 0; i < cfg.Generators; i++ {
		s.Generators = append(s.Generators, &Generator{
			Name:            fmt.Sprintf("client%d", i+1),
			Quota:           cfg.RequestsPerGenerator,
			rng:             s.rng.ForSubsystem(SubsystemGenerator(i + 1)),
			switches:        s.Switches,
			stations:        s.Stations,
			thinkLo:         thinkLo,
			thinkHi:         thinkHi,
			lossProbability: cfg.LossProbability,
			metrics:         s.Metrics,
		})
	}

	return s, nil
}

// Schedule pushes an event into the simulator's event queue. The event's
// timestamp must not precede the current clock.
func (s *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < s.Clock {
		panic(fmt.Sprintf("Schedule: event time %d precedes clock %d", ev.Timestamp(), s.Clock))
	}
	heap.Push(&s.eventQueue, queuedEvent{ev: ev, seq: s.seq})
	s.seq++
}

// Pending returns the number of scheduled events not yet executed.
func (s *Simulator) Pending() int {
	return len(s.eventQueue)
}

// Run starts every generator and drives the event loop until no events
// remain. Time advances only to event timestamps; no real time passes.
func (s *Simulator) Run() {
	if !s.started {
		s.started = true
		for _, g := range s.Generators {
			g.Start(s)
		}
	}
	for len(s.eventQueue) > 0 {
		// get the next event to be simulated
		qe := heap.Pop(&s.eventQueue).(queuedEvent)
		// advance the clock
		s.Clock = qe.ev.Timestamp()
		logrus.Debugf("[tick %07d] Executing %T", s.Clock, qe.ev)
		// process the event
		qe.ev.Execute(s)
	}
	logrus.Infof("[tick %07d] Simulation ended", s.Clock)
}

// Summarize derives the end-of-run statistics from the collector and the
// generators' success counters. Call after Run returns.
func (s *Simulator) Summarize() Summary {
	total := 0
	for _, g := range s.Generators {
		total += g.Successes
	}
	return s.Metrics.Summarize(total, s.Clock)
}
