package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ailang-dev/ailang/codegen"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the available target languages",
		Args:  cobra.NoArgs,
		RunE:  runTargets,
	}
	rootCmd.AddCommand(cmd)
}

func runTargets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TARGET\tEXTENSION\tRUNNER")
	for _, entry := range codegen.DefaultRegistry().Targets() {
		fmt.Fprintf(w, "%v\t.%v\t%v\n", entry.Target, entry.Ext, entry.Runner)
	}
	return w.Flush()
}
