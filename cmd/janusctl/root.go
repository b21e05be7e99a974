package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/janus/cmd/janusctl/logger"
	"github.com/joshuapare/janus/internal/layoutfile"
	"github.com/joshuapare/janus/layout"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logFile string

	// closeLog is set by logger.Init and called by run once the command
	// finishes, whether or not it failed.
	closeLog = noClose
)

func noClose() error { return nil }

var rootCmd = &cobra.Command{
	Use:   "janusctl",
	Short: "Resolve byte offsets against a hierarchical file layout",
	Long: `janusctl loads a layout description (YAML or TOML) that partitions a
binary file into slices, commands and elements, and answers questions about
it: which node contains an offset, what the hierarchy looks like, whether it
is well formed, and what bytes sit behind an address.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closeFn, err := logger.Init(logger.Options{Verbose: verbose, LogFile: logFile})
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		closeLog = closeFn
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append JSON logs to this file")
}

func execute() {
	if err := run(os.Args[1:]); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// run executes the command line and then closes the log file. Cobra skips
// post-run hooks when a command fails, so the close happens here.
func run(args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	closeFn := closeLog
	closeLog = noClose
	if cerr := closeFn(); cerr != nil && err == nil {
		err = fmt.Errorf("close log: %w", cerr)
	}
	return err
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// parseAddr accepts decimal, 0x-hex, 0o-octal and 0b-binary offsets.
func parseAddr(s string) (uint64, error) {
	addr, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return addr, nil
}

// loadLayout reads a layout description and builds the file it describes.
func loadLayout(path string) (*layoutfile.Description, *layout.File, error) {
	logger.L.Debug("loading layout", "path", path)

	desc, err := layoutfile.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load layout: %w", err)
	}
	f, err := desc.Build(layout.BuilderOptions{Logger: logger.L})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build layout: %w", err)
	}
	return desc, f, nil
}
