// Package report renders a finished simulation for the console: the
// scalar summary, ASCII histograms of the recorded samples, and the
// bipartite topology. It only reads the core's outputs.
package report

import (
	"fmt"
	"strings"

	"github.com/qnet-sim/qnet-sim/sim"
)

// FormatSummary renders the scalar end-of-run statistics.
func FormatSummary(s sim.Summary) string {
	var sb strings.Builder

	sb.WriteString("=== Simulation Summary ===\n")
	fmt.Fprintf(&sb, "Throughput           : %.2f requests/time unit\n", s.Throughput)
	fmt.Fprintf(&sb, "Successful Requests  : %d\n", s.TotalSuccesses)
	fmt.Fprintf(&sb, "Final Clock          : %.2f time units\n", sim.TicksToTimeUnits(s.FinalClock))
	for _, kind := range sim.Disciplines {
		fmt.Fprintf(&sb, "%s Data Loss       : %d\n", pad(string(kind)), s.LossByDiscipline[kind])
	}
	for _, kind := range sim.Disciplines {
		fmt.Fprintf(&sb, "Average Latency (%s) : %.2f time units\n", pad(string(kind)), s.MeanLatencyByDiscipline[kind])
	}
	for _, kind := range sim.Disciplines {
		fmt.Fprintf(&sb, "Average Delay (%s)   : %.2f time units\n", pad(string(kind)), s.MeanDelayByDiscipline[kind])
	}
	fmt.Fprintf(&sb, "Average Latency (all) : %.2f time units\n", s.MeanLatencyOverall)
	fmt.Fprintf(&sb, "Average Delay (all)   : %.2f time units\n", s.MeanDelayOverall)

	return sb.String()
}

func pad(s string) string {
	const width = 8
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
