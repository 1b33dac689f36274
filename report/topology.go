package report

import (
	"fmt"
	"strings"

	"github.com/qnet-sim/qnet-sim/sim"
)

// Topology renders the network as text: three layers with complete
// bipartite connectivity between adjacent layers (every generator reaches
// every switch, every switch every station).
func Topology(s *sim.Simulator) string {
	var sb strings.Builder

	sb.WriteString("Network Topology\n")
	sb.WriteString(strings.Repeat("=", chartWidth) + "\n")

	sb.WriteString("Clients  : ")
	for i, g := range s.Generators {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.Name)
	}
	sb.WriteString("\n")

	sb.WriteString("Switches : ")
	for i, sw := range s.Switches {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s (%s)", sw.Name(), sw.Kind())
	}
	sb.WriteString("\n")

	sb.WriteString("Stations : ")
	for i, st := range s.Stations {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(st.Name)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Edges    : %d client->switch, %d switch->station (complete bipartite)\n",
		len(s.Generators)*len(s.Switches), len(s.Switches)*len(s.Stations))

	return sb.String()
}
