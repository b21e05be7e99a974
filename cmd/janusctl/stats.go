package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/janus/layout/walker"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <layout>",
		Short: "Show node counts and address coverage",
		Long: `The stats command counts the nodes of the layout and reports how much
of the file resolves to a leaf (an element or a command without elements).

Example:
  janusctl stats layout.yaml
  janusctl stats layout.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	_, f, err := loadLayout(args[0])
	if err != nil {
		return err
	}

	st, err := walker.Count(f)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{
			"size":          f.Size(),
			"slices":        st.Slices,
			"empty_slices":  st.EmptySlices,
			"commands":      st.Commands,
			"leaf_commands": st.LeafCommands,
			"elements":      st.Elements,
			"max_elements":  st.MaxElements,
			"covered_bytes": st.CoveredBytes,
			"coverage":      st.Coverage(f.Size()),
		})
	}

	printInfo("Size:          %d bytes\n", f.Size())
	printInfo("Slices:        %d (%d empty)\n", st.Slices, st.EmptySlices)
	printInfo("Commands:      %d (%d leaf)\n", st.Commands, st.LeafCommands)
	printInfo("Elements:      %d (max %d per command)\n", st.Elements, st.MaxElements)
	printInfo("Covered:       %d bytes (%.1f%%)\n", st.CoveredBytes, st.Coverage(f.Size())*100)
	return nil
}
