package sim

import "fmt"

// DisciplineKind names a dequeue discipline.
type DisciplineKind string

const (
	DisciplineFIFO     DisciplineKind = "FIFO"
	DisciplinePriority DisciplineKind = "Priority"
)

// Disciplines lists every kind in reporting order.
var Disciplines = []DisciplineKind{DisciplineFIFO, DisciplinePriority}

// discipline selects which waiter a freed slot goes to.
// Implementations MUST NOT modify the slice — only the returned index is used.
type discipline interface {
	selectNext(waiters []waiter) int
}

// fifoDiscipline grants slots in strict arrival order.
type fifoDiscipline struct{}

func (fifoDiscipline) selectNext(_ []waiter) int {
	return 0
}

// priorityDiscipline grants the waiter with the numerically smallest
// priority key, ties broken by arrival order. Waiters are appended in
// arrival order, so a strict less-than scan keeps the earliest arrival
// among equal keys.
type priorityDiscipline struct{}

func (priorityDiscipline) selectNext(waiters []waiter) int {
	best := 0
	for i := 1; i < len(waiters); i++ {
		if waiters[i].req.Priority < waiters[best].req.Priority {
			best = i
		}
	}
	return best
}

// newDiscipline creates the strategy for a DisciplineKind.
// Panics on unrecognized kinds; Config.Validate never lets one through.
func newDiscipline(kind DisciplineKind) discipline {
	switch kind {
	case DisciplineFIFO:
		return fifoDiscipline{}
	case DisciplinePriority:
		return priorityDiscipline{}
	default:
		panic(fmt.Sprintf("unknown discipline %q", kind))
	}
}
