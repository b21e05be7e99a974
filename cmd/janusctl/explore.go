package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/janus/cmd/janusctl/explorer"
	"github.com/joshuapare/janus/cmd/janusctl/logger"
	"github.com/joshuapare/janus/internal/mmfile"
)

func init() {
	rootCmd.AddCommand(newExploreCmd())
}

func newExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore <layout> [binary]",
		Short: "Browse the layout interactively",
		Long: `The explore command opens a terminal UI showing the layout as a
collapsible tree. Press ':' to jump to the node containing an address. When
a binary file is given, the selected node's bytes are shown as a hex dump.

Example:
  janusctl explore layout.yaml
  janusctl explore layout.yaml firmware.bin`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(args)
		},
	}
	return cmd
}

func runExplore(args []string) error {
	desc, f, err := loadLayout(args[0])
	if err != nil {
		return err
	}

	opts := explorer.Options{Title: args[0], Names: desc.Names}
	if len(args) > 1 {
		m, err := mmfile.Open(args[1])
		if err != nil {
			return fmt.Errorf("failed to open binary: %w", err)
		}
		defer m.Close()
		opts.Data = m.Bytes()
		logger.L.Debug("mapped binary", "path", args[1], "size", m.Len())
	}

	model, err := explorer.New(f, opts)
	if err != nil {
		return err
	}
	return explorer.Run(model)
}
