// Implements the Switch, the bounded-capacity contention point between
// generators and stations. Arrivals that find every slot held wait in an
// internal collection ordered by the switch's discipline.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// GrantFunc is the continuation invoked when an Acquire is granted a slot.
// It runs on the event loop with the grant tick.
type GrantFunc func(s *Simulator, now int64)

// waiter is a pending Acquire: the request asking for a slot and the
// continuation to resume once the slot is granted.
type waiter struct {
	req   *Request
	grant GrantFunc
}

// Switch models a bounded-capacity packet queue. Capacity is fixed at
// construction; the stock deployment uses capacity 1, which makes each
// switch a strict mutual-exclusion gate in front of the stations.
//
// Invariants: held never exceeds capacity, and waiters holds exactly the
// requests that have asked for a slot and not yet received one. Only the
// owning switch mutates its waiter collection.
type Switch struct {
	name       string
	kind       DisciplineKind
	discipline discipline
	capacity   int
	held       int
	waiters    []waiter
	metrics    *Metrics
}

// NewSwitch creates a switch with the given discipline and capacity.
func NewSwitch(name string, kind DisciplineKind, capacity int, m *Metrics) (*Switch, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: switch %s capacity must be >= 1, got %d", ErrInvalidConfig, name, capacity)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: switch %s requires a metrics collector", ErrInvalidConfig, name)
	}
	return &Switch{
		name:       name,
		kind:       kind,
		discipline: newDiscipline(kind),
		capacity:   capacity,
		metrics:    m,
	}, nil
}

// Name returns the switch name used as the metrics key.
func (sw *Switch) Name() string { return sw.name }

// Kind returns the switch's discipline kind.
func (sw *Switch) Kind() DisciplineKind { return sw.kind }

// Held returns the number of currently-held slots.
func (sw *Switch) Held() int { return sw.held }

// QueueLen returns the current number of waiting requests.
func (sw *Switch) QueueLen() int { return len(sw.waiters) }

// Acquire asks for a slot on behalf of req. The congestion sample (current
// waiting-collection size and busy slots) is recorded before any waiting,
// capturing the state the request arrives to. If a slot is free the grant
// continuation runs immediately at the current tick; otherwise the request
// joins the waiting collection and resumes when Release hands it the slot.
func (sw *Switch) Acquire(s *Simulator, req *Request, grant GrantFunc) {
	sw.metrics.RecordSwitchSample(sw.name, len(sw.waiters), sw.held)

	if sw.held < sw.capacity {
		sw.held++
		grant(s, s.Clock)
		return
	}

	logrus.Debugf("<< %s waiting on %s (queue length %d)", req.ID, sw.name, len(sw.waiters))
	sw.waiters = append(sw.waiters, waiter{req: req, grant: grant})
}

// Release frees one slot. If requests are waiting, the slot transfers
// directly to the waiter the discipline selects; the handover goes through
// the event queue so equal-time grants resume in scheduling order. The
// held count only drops when nobody is waiting, which keeps the capacity
// invariant visible at every tick.
func (sw *Switch) Release(s *Simulator) {
	if sw.held <= 0 {
		panic(fmt.Sprintf("Release on switch %s with no held slots", sw.name))
	}
	if len(sw.waiters) == 0 {
		sw.held--
		return
	}

	i := sw.discipline.selectNext(sw.waiters)
	next := sw.waiters[i]
	sw.waiters = append(sw.waiters[:i], sw.waiters[i+1:]...)
	s.Schedule(&slotGrantedEvent{time: s.Clock, sw: sw, grantee: next})
}
