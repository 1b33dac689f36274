package report

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/qnet-sim/qnet-sim/sim"
)

const (
	chartWidth  = 60
	defaultBins = 20
)

// Generator generates ASCII charts from a finished run's metrics.
type Generator struct {
	width int
	bins  int
}

// NewGenerator creates a chart generator with the default dimensions.
func NewGenerator() *Generator {
	return &Generator{width: chartWidth, bins: defaultBins}
}

// Histogram renders a horizontal ASCII histogram of the samples, one row
// per bin. Samples are in model time units.
func (g *Generator) Histogram(title string, samples []float64) string {
	var sb strings.Builder
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", g.width) + "\n")

	if len(samples) == 0 {
		sb.WriteString("No data to display\n")
		return sb.String()
	}

	lo, hi := samples[0], samples[0]
	for _, v := range samples {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		// All samples identical; one bar.
		fmt.Fprintf(&sb, "[%6.2f, %6.2f] %s %d\n", lo, hi, strings.Repeat("#", g.width), len(samples))
		return sb.String()
	}

	dividers := make([]float64, g.bins+1)
	step := (hi - lo) / float64(g.bins)
	for i := range dividers {
		dividers[i] = lo + float64(i)*step
	}
	// stat.Histogram requires every sample strictly below the last divider.
	dividers[g.bins] = hi + step*1e-9

	counts := stat.Histogram(nil, dividers, sorted(samples), nil)

	maxCount := 0.0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	for i, c := range counts {
		bar := int(c / maxCount * float64(g.width-20))
		fmt.Fprintf(&sb, "[%6.2f, %6.2f) %s %d\n", dividers[i], dividers[i+1], strings.Repeat("#", bar), int(c))
	}
	return sb.String()
}

// LossBars renders the per-discipline loss counts as a bar chart.
func (g *Generator) LossBars(loss map[sim.DisciplineKind]int) string {
	var sb strings.Builder
	sb.WriteString("Data Loss by Queue Type\n")
	sb.WriteString(strings.Repeat("=", g.width) + "\n")

	maxLoss := 0
	for _, kind := range sim.Disciplines {
		if loss[kind] > maxLoss {
			maxLoss = loss[kind]
		}
	}
	for _, kind := range sim.Disciplines {
		bar := 0
		if maxLoss > 0 {
			bar = loss[kind] * (g.width - 20) / maxLoss
		}
		fmt.Fprintf(&sb, "%-9s %s %d\n", kind, strings.Repeat("#", bar), loss[kind])
	}
	return sb.String()
}

// Charts renders the full panel set the way the original reporting did:
// loss bars, overall latency/delay histograms, and per-discipline
// latency/delay histograms.
func (g *Generator) Charts(m *sim.Metrics, s sim.Summary) string {
	var sb strings.Builder

	sb.WriteString(g.LossBars(s.LossByDiscipline))
	sb.WriteString("\n")
	sb.WriteString(g.Histogram("Overall Latency Histogram (time units)", sim.TimeUnitSamples(m.OverallLatencies)))
	sb.WriteString("\n")
	sb.WriteString(g.Histogram("Overall Delay Histogram (time units)", sim.TimeUnitSamples(m.OverallDelays)))
	for _, kind := range sim.Disciplines {
		sb.WriteString("\n")
		sb.WriteString(g.Histogram(fmt.Sprintf("%s Latency Histogram (time units)", kind),
			sim.TimeUnitSamples(m.LatenciesByDiscipline[kind])))
		sb.WriteString("\n")
		sb.WriteString(g.Histogram(fmt.Sprintf("%s Delay Histogram (time units)", kind),
			sim.TimeUnitSamples(m.DelaysByDiscipline[kind])))
	}
	return sb.String()
}

// sorted returns an ascending copy; stat.Histogram expects sorted input.
func sorted(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	sort.Float64s(out)
	return out
}
