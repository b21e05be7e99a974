package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/janus/layout/printer"
)

var (
	treeDepth    int
	treeRelative bool
	treeCompact  bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth below the file (0 = unlimited)")
	cmd.Flags().BoolVar(&treeRelative, "relative", false, "Show relative offsets and sizes")
	cmd.Flags().BoolVar(&treeCompact, "compact", false, "Compact output")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <layout>",
		Short: "Display the slice/command/element hierarchy",
		Long: `The tree command prints every node of the layout in address order.

Example:
  janusctl tree layout.yaml
  janusctl tree layout.yaml --depth 2 --relative
  janusctl tree layout.toml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	_, f, err := loadLayout(args[0])
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.MaxDepth = treeDepth
	opts.ShowRelative = treeRelative
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	if treeCompact {
		opts.IndentSize = 1
	}
	return printer.New(f, os.Stdout, opts).PrintTree()
}
