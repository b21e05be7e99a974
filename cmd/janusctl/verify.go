package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/janus/layout/verify"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <layout>",
		Short: "Check the layout for structural problems",
		Long: `The verify command checks every node of the layout up front:
non-empty ranges, sorted and disjoint siblings, containment in the parent,
recorded indices, sizes and relative offsets, and that slices tile the file.

All problems are reported; the command fails if there is at least one.

Example:
  janusctl verify layout.yaml
  janusctl verify layout.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

type verifyIssue struct {
	Type    string         `json:"type"`
	Path    string         `json:"path,omitempty"`
	Offset  uint64         `json:"offset"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func runVerify(args []string) error {
	_, f, err := loadLayout(args[0])
	if err != nil {
		return err
	}

	issues := verify.Collect(f)

	if jsonOut {
		out := struct {
			Valid  bool          `json:"valid"`
			Issues []verifyIssue `json:"issues"`
		}{Valid: len(issues) == 0, Issues: []verifyIssue{}}
		for _, verr := range issues {
			out.Issues = append(out.Issues, verifyIssue{
				Type:    verr.Type,
				Path:    verr.Path,
				Offset:  verr.Offset,
				Message: verr.Message,
				Details: verr.Details,
			})
		}
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		for _, verr := range issues {
			printInfo("%v\n", verr)
		}
		if len(issues) == 0 {
			printInfo("✓ %s is valid\n", args[0])
		}
	}

	if len(issues) > 0 {
		return fmt.Errorf("%d problem(s) found", len(issues))
	}
	return nil
}
