package printer

import (
	"io"

	"github.com/joshuapare/janus/layout"
)

const (
	DefaultIndentSize = 2
	DefaultMaxDepth   = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs an indented, human-readable tree.
	FormatText Format = "text"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth limits how many levels below the file are printed
	// (0 = unlimited, 1 = slices only, 2 = slices and commands).
	// Default: 0
	MaxDepth int

	// ShowRelative includes each node's relative offset and size.
	// Default: false
	ShowRelative bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		IndentSize: DefaultIndentSize,
		MaxDepth:   DefaultMaxDepth,
	}
}

// Printer handles formatted output of a layout and of lookups against it.
type Printer struct {
	opts   Options
	writer io.Writer
	file   *layout.File
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New(f, os.Stdout, printer.DefaultOptions())
//	p.PrintTree()
//	p.PrintLookup(0x47382)
func New(f *layout.File, w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Printer{file: f, writer: w, opts: opts}
}

// PrintTree prints the whole hierarchy.
func (p *Printer) PrintTree() error {
	if p.opts.Format == FormatJSON {
		return p.printTreeJSON()
	}
	return p.printTreeText()
}

// Lookup is the outcome of resolving one address.
type Lookup struct {
	Addr   uint64
	Coords layout.Coordinates
	Range  layout.Range
	Err    error
}

// Resolve looks addr up in the printer's file and records the outcome.
func (p *Printer) Resolve(addr uint64) Lookup {
	c, err := p.file.FindAddress(addr)
	if err != nil {
		return Lookup{Addr: addr, Err: err}
	}
	r, err := p.file.RangeAt(c)
	return Lookup{Addr: addr, Coords: c, Range: r, Err: err}
}

// PrintLookup resolves addr and prints the result. A failed lookup is
// printed, not returned; the returned error only reports write failures.
func (p *Printer) PrintLookup(addr uint64) error {
	l := p.Resolve(addr)
	if p.opts.Format == FormatJSON {
		return p.printLookupJSON(l)
	}
	return p.printLookupText(l)
}
