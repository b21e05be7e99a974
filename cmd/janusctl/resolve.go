package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/janus/cmd/janusctl/logger"
	"github.com/joshuapare/janus/layout/printer"
)

var resolveNames bool

func init() {
	cmd := newResolveCmd()
	cmd.Flags().BoolVar(&resolveNames, "names", false, "Show node names from the layout description")
	rootCmd.AddCommand(cmd)
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <layout> <addr>...",
		Short: "Find the node containing each address",
		Long: `The resolve command performs a reverse lookup for each address and
prints the slice/command/element path of the node that contains it.

Addresses may be decimal or prefixed hex (0x), octal (0o) or binary (0b).
The command fails if any address does not resolve.

Example:
  janusctl resolve layout.yaml 0x47382
  janusctl resolve layout.yaml 25 35 75 --names
  janusctl resolve layout.toml 0x100 --json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args)
		},
	}
	return cmd
}

// resolveResult is the JSON form of one lookup.
type resolveResult struct {
	Address uint64   `json:"address"`
	Slice   *int     `json:"slice,omitempty"`
	Command *int     `json:"command,omitempty"`
	Element *int     `json:"element,omitempty"`
	Start   *uint64  `json:"start,omitempty"`
	End     *uint64  `json:"end,omitempty"`
	Names   []string `json:"names,omitempty"`
	Error   string   `json:"error,omitempty"`
	Kind    string   `json:"kind,omitempty"`
}

func runResolve(args []string) error {
	desc, f, err := loadLayout(args[0])
	if err != nil {
		return err
	}

	addrs := make([]uint64, 0, len(args)-1)
	for _, s := range args[1:] {
		addr, err := parseAddr(s)
		if err != nil {
			return err
		}
		addrs = append(addrs, addr)
	}

	var out io.Writer = os.Stdout
	if quiet {
		out = io.Discard
	}
	p := printer.New(f, out, printer.DefaultOptions())

	var (
		failed  int
		results []resolveResult
	)
	for _, addr := range addrs {
		l := p.Resolve(addr)
		if l.Err != nil {
			failed++
			logger.L.Debug("lookup failed", "addr", addr, "kind", printer.ErrorKind(l.Err))
		}

		if jsonOut {
			results = append(results, toResolveResult(l, desc.Names(l.Coords)))
			continue
		}
		if err := p.PrintLookup(addr); err != nil {
			return err
		}
		if resolveNames && l.Err == nil {
			fmt.Fprintf(out, "  names: %s\n", strings.Join(desc.Names(l.Coords), "/"))
		}
	}

	if jsonOut {
		if err := printJSON(results); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d addresses did not resolve", failed, len(addrs))
	}
	return nil
}

func toResolveResult(l printer.Lookup, names []string) resolveResult {
	r := resolveResult{Address: l.Addr}
	if l.Err != nil {
		r.Error = l.Err.Error()
		r.Kind = printer.ErrorKind(l.Err)
		return r
	}
	s, c := l.Coords.Slice, l.Coords.Command
	start, end := l.Range.Start, l.Range.End
	r.Slice, r.Command, r.Start, r.End = &s, &c, &start, &end
	if l.Coords.HasElement() {
		e := l.Coords.Element
		r.Element = &e
	}
	if resolveNames {
		r.Names = names
	}
	return r
}
