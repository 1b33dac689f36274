// Tracks simulation-wide performance metrics: per-discipline loss and
// latency/delay samples, global samples, and per-switch congestion.
// Mutated only by generators and switches during the run; read-only once
// Run returns.

package sim

import (
	"gonum.org/v1/gonum/stat"
)

// SwitchSample captures a switch's congestion at a request arrival:
// how many requests were waiting and how many slots were busy.
type SwitchSample struct {
	QueueLength int
	Busy        int
}

// Metrics aggregates statistics about the simulation for final reporting.
// One instance is created at simulation start and passed by reference to
// every generator and switch that records into it.
type Metrics struct {
	LossByDiscipline      map[DisciplineKind]int
	LatenciesByDiscipline map[DisciplineKind][]int64 // ticks
	DelaysByDiscipline    map[DisciplineKind][]int64 // ticks

	OverallLatencies []int64 // ticks, all disciplines
	OverallDelays    []int64 // ticks, all disciplines

	SwitchSamples map[string][]SwitchSample // switch name -> arrival-time samples
}

// NewMetrics creates an empty collector with every map initialized.
func NewMetrics() *Metrics {
	return &Metrics{
		LossByDiscipline:      make(map[DisciplineKind]int),
		LatenciesByDiscipline: make(map[DisciplineKind][]int64),
		DelaysByDiscipline:    make(map[DisciplineKind][]int64),
		SwitchSamples:         make(map[string][]SwitchSample),
	}
}

// RecordLoss increments the loss counter for a discipline.
func (m *Metrics) RecordLoss(kind DisciplineKind) {
	m.LossByDiscipline[kind]++
}

// RecordService appends a completed request's latency and delay (ticks)
// to both the global and the discipline-keyed sequences.
func (m *Metrics) RecordService(kind DisciplineKind, latency, delay int64) {
	m.LatenciesByDiscipline[kind] = append(m.LatenciesByDiscipline[kind], latency)
	m.DelaysByDiscipline[kind] = append(m.DelaysByDiscipline[kind], delay)
	m.OverallLatencies = append(m.OverallLatencies, latency)
	m.OverallDelays = append(m.OverallDelays, delay)
}

// RecordSwitchSample appends a congestion sample for the named switch.
func (m *Metrics) RecordSwitchSample(name string, queueLength, busy int) {
	m.SwitchSamples[name] = append(m.SwitchSamples[name], SwitchSample{
		QueueLength: queueLength,
		Busy:        busy,
	})
}

// Summary holds the scalar statistics derived after the run ends.
// Durations are in model time units, throughput in successes per time unit.
type Summary struct {
	Throughput     float64
	TotalSuccesses int
	FinalClock     int64 // ticks

	LossByDiscipline        map[DisciplineKind]int
	MeanLatencyByDiscipline map[DisciplineKind]float64
	MeanDelayByDiscipline   map[DisciplineKind]float64
	MeanLatencyOverall      float64
	MeanDelayOverall        float64
}

// Summarize derives the end-of-run statistics. Empty sample sequences
// yield a mean of 0; a clock that never moved yields throughput 0.
func (m *Metrics) Summarize(totalSuccesses int, finalClock int64) Summary {
	s := Summary{
		TotalSuccesses:          totalSuccesses,
		FinalClock:              finalClock,
		LossByDiscipline:        make(map[DisciplineKind]int),
		MeanLatencyByDiscipline: make(map[DisciplineKind]float64),
		MeanDelayByDiscipline:   make(map[DisciplineKind]float64),
	}
	for _, kind := range Disciplines {
		s.LossByDiscipline[kind] = m.LossByDiscipline[kind]
		s.MeanLatencyByDiscipline[kind] = meanTimeUnits(m.LatenciesByDiscipline[kind])
		s.MeanDelayByDiscipline[kind] = meanTimeUnits(m.DelaysByDiscipline[kind])
	}
	s.MeanLatencyOverall = meanTimeUnits(m.OverallLatencies)
	s.MeanDelayOverall = meanTimeUnits(m.OverallDelays)
	if finalClock > 0 {
		s.Throughput = float64(totalSuccesses) / TicksToTimeUnits(finalClock)
	}
	return s
}

// TicksToTimeUnits converts a tick count to model time units.
func TicksToTimeUnits(ticks int64) float64 {
	return float64(ticks) / TicksPerTimeUnit
}

// TimeUnitSamples converts a tick sequence to time units for consumers
// like histogram rendering.
func TimeUnitSamples(ticks []int64) []float64 {
	out := make([]float64, len(ticks))
	for i, t := range ticks {
		out[i] = TicksToTimeUnits(t)
	}
	return out
}

// meanTimeUnits computes the mean of a tick sequence in time units,
// 0 for an empty sequence.
func meanTimeUnits(ticks []int64) float64 {
	if len(ticks) == 0 {
		return 0
	}
	return stat.Mean(TimeUnitSamples(ticks), nil)
}
