package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_SummarizeEmpty(t *testing.T) {
	// GIVEN a collector that recorded nothing
	m := NewMetrics()

	// WHEN it is summarized with a zero clock
	s := m.Summarize(0, 0)

	// THEN every mean is 0 and throughput avoids dividing by zero
	assert.Equal(t, 0.0, s.Throughput)
	for _, kind := range Disciplines {
		assert.Equal(t, 0.0, s.MeanLatencyByDiscipline[kind])
		assert.Equal(t, 0.0, s.MeanDelayByDiscipline[kind])
		assert.Equal(t, 0, s.LossByDiscipline[kind])
	}
	assert.Equal(t, 0.0, s.MeanLatencyOverall)
	assert.Equal(t, 0.0, s.MeanDelayOverall)
}

func TestMetrics_RecordServiceAppendsGlobalAndKeyed(t *testing.T) {
	m := NewMetrics()

	m.RecordService(DisciplineFIFO, 1000000, 1200000)
	m.RecordService(DisciplinePriority, 500000, 700000)

	assert.Equal(t, []int64{1000000, 500000}, m.OverallLatencies)
	assert.Equal(t, []int64{1200000, 700000}, m.OverallDelays)
	assert.Equal(t, []int64{1000000}, m.LatenciesByDiscipline[DisciplineFIFO])
	assert.Equal(t, []int64{500000}, m.LatenciesByDiscipline[DisciplinePriority])
	assert.Equal(t, []int64{700000}, m.DelaysByDiscipline[DisciplinePriority])
}

func TestMetrics_SummarizeMeansInTimeUnits(t *testing.T) {
	// GIVEN two FIFO latencies of 1.0 and 2.0 time units
	m := NewMetrics()
	m.RecordService(DisciplineFIFO, 1000000, 1000000)
	m.RecordService(DisciplineFIFO, 2000000, 2000000)

	// WHEN summarized at clock 4.0 with 2 successes
	s := m.Summarize(2, 4000000)

	// THEN means and throughput come out in time units
	assert.InDelta(t, 1.5, s.MeanLatencyByDiscipline[DisciplineFIFO], 1e-9)
	assert.InDelta(t, 1.5, s.MeanLatencyOverall, 1e-9)
	assert.InDelta(t, 0.5, s.Throughput, 1e-9)
}

func TestMetrics_RecordLossCounts(t *testing.T) {
	m := NewMetrics()

	m.RecordLoss(DisciplineFIFO)
	m.RecordLoss(DisciplineFIFO)
	m.RecordLoss(DisciplinePriority)

	assert.Equal(t, 2, m.LossByDiscipline[DisciplineFIFO])
	assert.Equal(t, 1, m.LossByDiscipline[DisciplinePriority])
}

func TestTimeUnitConversions(t *testing.T) {
	assert.Equal(t, 1.5, TicksToTimeUnits(1500000))
	assert.Equal(t, []float64{0.5, 1.0}, TimeUnitSamples([]int64{500000, 1000000}))
}
