package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/xzh19980906/BBTF/sim"
)

// paramsCmd prints the default parameter set as YAML, so the output can be
// edited and fed back through --params.
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the default parameter set",
	Run: func(cmd *cobra.Command, args []string) {
		all := sim.DefaultParameters().All()
		names := make([]string, 0, len(all))
		for name := range all {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s: %g\n", name, all[name])
		}
	},
}
