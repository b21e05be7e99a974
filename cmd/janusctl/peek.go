package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/janus/cmd/janusctl/logger"
	"github.com/joshuapare/janus/internal/hexdump"
	"github.com/joshuapare/janus/internal/mmfile"
)

var peekMaxBytes int

func init() {
	cmd := newPeekCmd()
	cmd.Flags().IntVar(&peekMaxBytes, "max-bytes", 256, "Maximum bytes to dump (0 = no limit)")
	rootCmd.AddCommand(cmd)
}

func newPeekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peek <layout> <binary> <addr>",
		Short: "Dump the bytes of the node containing an address",
		Long: `The peek command resolves an address against the layout, then dumps
the bytes of the resolved element (or leaf command) from the binary file the
layout describes.

Example:
  janusctl peek layout.yaml firmware.bin 0x47382
  janusctl peek layout.yaml firmware.bin 0x100 --max-bytes 0`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeek(args)
		},
	}
	return cmd
}

func runPeek(args []string) error {
	desc, f, err := loadLayout(args[0])
	if err != nil {
		return err
	}
	addr, err := parseAddr(args[2])
	if err != nil {
		return err
	}

	c, err := f.FindAddress(addr)
	if err != nil {
		return err
	}
	r, err := f.RangeAt(c)
	if err != nil {
		return err
	}

	m, err := mmfile.Open(args[1])
	if err != nil {
		return fmt.Errorf("failed to open binary: %w", err)
	}
	defer m.Close()
	if m.Len() != f.Size() {
		logger.L.Warn("binary size differs from layout size",
			"binary", m.Len(), "layout", f.Size())
	}

	data, err := m.Span(r.Start, r.End)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{
			"address": addr,
			"coords":  c.String(),
			"names":   desc.Names(c),
			"start":   r.Start,
			"end":     r.End,
			"hex":     hex.EncodeToString(data),
			"text":    hexdump.Text(data),
		})
	}

	printInfo("0x%X: %v %v\n", addr, c, r)
	if quiet {
		return nil
	}
	return hexdump.Write(os.Stdout, data, r.Start, hexdump.Options{MaxBytes: peekMaxBytes})
}
