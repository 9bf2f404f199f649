package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xzh19980906/BBTF/sim"
)

// edgesCmd prints the reference pipeline's declared signal edges as
// Graphviz DOT for external visualization tooling. The edge list describes
// what connects to what by name; it is advisory, not an execution schedule.
var edgesCmd = &cobra.Command{
	Use:   "edges",
	Short: "Print the pipeline's signal edges as Graphviz DOT",
	Run: func(cmd *cobra.Command, args []string) {
		pipeline, err := sim.NewERmTIPipeline(sim.DefaultParameters(), 1.0, 10.0)
		if err != nil {
			logrus.Fatalf("Unable to build pipeline: %v", err)
		}
		fmt.Print(DOT(pipeline.Edges()))
	},
}

// DOT renders edge triples as a directed multigraph, one edge per declared
// input/output pairing, labeled with the stage name.
func DOT(edges []sim.Edge) string {
	var b strings.Builder
	b.WriteString("digraph pipeline {\n")
	b.WriteString("  rankdir=LR;\n")
	for _, e := range edges {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.Input, e.Output, e.Stage)
	}
	b.WriteString("}\n")
	return b.String()
}
