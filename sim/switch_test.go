package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHarness builds a simulator with no generators so tests can drive
// switches and stations by hand and pump the event loop with Run.
func newHarness(t *testing.T, fifo, priority, capacity int) *Simulator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Generators = 0
	cfg.FIFOSwitches = fifo
	cfg.PrioritySwitches = priority
	cfg.SwitchCapacity = capacity
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	return s
}

func TestSwitch_AcquireGrantsImmediatelyWhenFree(t *testing.T) {
	// GIVEN a capacity-1 switch with no holders
	s := newHarness(t, 1, 0, 1)
	sw := s.Switches[0]

	// WHEN a request acquires
	granted := false
	sw.Acquire(s, &Request{ID: "A"}, func(_ *Simulator, now int64) {
		granted = true
		assert.Equal(t, int64(0), now)
	})

	// THEN the grant runs synchronously and a slot is held
	assert.True(t, granted)
	assert.Equal(t, 1, sw.Held())
	assert.Equal(t, 0, sw.QueueLen())
}

func TestSwitch_HeldNeverExceedsCapacity(t *testing.T) {
	// GIVEN a capacity-2 switch with three acquirers
	s := newHarness(t, 1, 0, 2)
	sw := s.Switches[0]

	grants := 0
	for _, id := range []string{"A", "B", "C"} {
		sw.Acquire(s, &Request{ID: id}, func(_ *Simulator, _ int64) { grants++ })
		assert.LessOrEqual(t, sw.Held(), 2, "held slots must never exceed capacity")
	}

	// THEN only two grants happened and one request waits
	assert.Equal(t, 2, grants)
	assert.Equal(t, 2, sw.Held())
	assert.Equal(t, 1, sw.QueueLen())

	// WHEN a slot is released and the handover event runs
	sw.Release(s)
	s.Run()

	// THEN the waiter got the slot and held count stayed within capacity
	assert.Equal(t, 3, grants)
	assert.Equal(t, 2, sw.Held())
	assert.Equal(t, 0, sw.QueueLen())
}

func TestSwitch_FIFO_GrantsInArrivalOrder(t *testing.T) {
	// GIVEN a contended capacity-1 FIFO switch with waiters B, C, D
	s := newHarness(t, 1, 0, 1)
	sw := s.Switches[0]

	var order []string
	grant := func(id string) GrantFunc {
		return func(_ *Simulator, _ int64) { order = append(order, id) }
	}
	sw.Acquire(s, &Request{ID: "A"}, grant("A"))
	sw.Acquire(s, &Request{ID: "B"}, grant("B"))
	sw.Acquire(s, &Request{ID: "C"}, grant("C"))
	sw.Acquire(s, &Request{ID: "D"}, grant("D"))

	// WHEN the slot is released three times
	for i := 0; i < 3; i++ {
		sw.Release(s)
		s.Run()
	}

	// THEN waiters were granted in strict arrival order
	assert.Equal(t, []string{"A", "B", "C", "D"}, order)
}

func TestSwitch_Priority_UniformKeysMatchFIFOOrder(t *testing.T) {
	// GIVEN a contended Priority switch whose waiters all carry the
	// default priority key (the stock deployment)
	s := newHarness(t, 0, 1, 1)
	sw := s.Switches[0]

	var order []string
	grant := func(id string) GrantFunc {
		return func(_ *Simulator, _ int64) { order = append(order, id) }
	}
	for _, id := range []string{"A", "B", "C", "D"} {
		sw.Acquire(s, &Request{ID: id, Priority: DefaultPriorityKey}, grant(id))
	}

	for i := 0; i < 3; i++ {
		sw.Release(s)
		s.Run()
	}

	// THEN the degenerate Priority discipline reproduces FIFO order
	assert.Equal(t, []string{"A", "B", "C", "D"}, order)
}

func TestSwitch_Priority_SmallestKeyFirstTiesByArrival(t *testing.T) {
	// GIVEN waiters B(5), C(1), D(5) behind holder A
	s := newHarness(t, 0, 1, 1)
	sw := s.Switches[0]

	var order []string
	grant := func(id string) GrantFunc {
		return func(_ *Simulator, _ int64) { order = append(order, id) }
	}
	sw.Acquire(s, &Request{ID: "A", Priority: 0}, grant("A"))
	sw.Acquire(s, &Request{ID: "B", Priority: 5}, grant("B"))
	sw.Acquire(s, &Request{ID: "C", Priority: 1}, grant("C"))
	sw.Acquire(s, &Request{ID: "D", Priority: 5}, grant("D"))

	for i := 0; i < 3; i++ {
		sw.Release(s)
		s.Run()
	}

	// THEN the smallest key goes first and equal keys keep arrival order
	assert.Equal(t, []string{"A", "C", "B", "D"}, order)
}

func TestSwitch_AcquireRecordsCongestionSample(t *testing.T) {
	// GIVEN a capacity-1 switch
	s := newHarness(t, 1, 0, 1)
	sw := s.Switches[0]

	// WHEN three requests arrive
	noop := func(_ *Simulator, _ int64) {}
	sw.Acquire(s, &Request{ID: "A"}, noop)
	sw.Acquire(s, &Request{ID: "B"}, noop)
	sw.Acquire(s, &Request{ID: "C"}, noop)

	// THEN each arrival sampled the congestion it found, before waiting
	samples := s.Metrics.SwitchSamples[sw.Name()]
	require.Len(t, samples, 3)
	assert.Equal(t, SwitchSample{QueueLength: 0, Busy: 0}, samples[0])
	assert.Equal(t, SwitchSample{QueueLength: 0, Busy: 1}, samples[1])
	assert.Equal(t, SwitchSample{QueueLength: 1, Busy: 1}, samples[2])
}

func TestSwitch_ReleaseWithoutHold_Panics(t *testing.T) {
	s := newHarness(t, 1, 0, 1)
	sw := s.Switches[0]

	assert.Panics(t, func() { sw.Release(s) })
}

func TestNewSwitch_RejectsZeroCapacity(t *testing.T) {
	_, err := NewSwitch("sw", DisciplineFIFO, 0, NewMetrics())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
