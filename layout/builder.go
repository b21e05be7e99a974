package layout

import (
	"fmt"
	"io"
	"log/slog"
)

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	// Logger receives a debug summary when Build completes. Default: discard.
	Logger *slog.Logger
}

// Builder assembles a File and hands it out frozen. It derives each node's
// relative offset, size and index from the order of the calls, so callers
// only supply absolute ranges.
//
// The first error is sticky: later calls are no-ops and Build returns it.
// Ordering and containment are not validated here; use package verify.
//
// Example:
//
//	b := layout.NewBuilder(100, layout.BuilderOptions{})
//	s := b.Slice(0, 50)
//	s.Command(0, 30).Element(0, 10).Element(10, 30)
//	s.Command(30, 50)
//	b.Slice(50, 100)
//	f, err := b.Build()
type Builder struct {
	total  uint64
	slices []*SliceBuilder
	logger *slog.Logger
	err    error
	built  bool
}

// NewBuilder returns a Builder for a file covering [0, total).
func NewBuilder(total uint64, opts BuilderOptions) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{total: total, logger: logger}
}

// SliceBuilder adds commands to one slice.
type SliceBuilder struct {
	b        *Builder
	slice    Slice
	commands []*CommandBuilder
}

// CommandBuilder adds elements to one command.
type CommandBuilder struct {
	b   *Builder
	cmd Command
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) usable() bool {
	if b.built {
		b.fail(ErrFrozen)
	}
	return b.err == nil
}

// Slice appends a slice covering [start, end).
func (b *Builder) Slice(start, end uint64) *SliceBuilder {
	sb := &SliceBuilder{b: b}
	if !b.usable() {
		return sb
	}
	if end < start {
		b.fail(fmt.Errorf("slice %d [0x%X,0x%X): %w", len(b.slices), start, end, ErrInvalidRange))
		return sb
	}
	sb.slice.Populate(start, end, start, end-start, len(b.slices))
	b.slices = append(b.slices, sb)
	return sb
}

// Command appends a command covering [start, end) to the slice.
func (sb *SliceBuilder) Command(start, end uint64) *CommandBuilder {
	b := sb.b
	cb := &CommandBuilder{b: b}
	if !b.usable() {
		return cb
	}
	idx := len(sb.commands)
	if end < start || start < sb.slice.rng.Start {
		b.fail(fmt.Errorf("slice %d command %d [0x%X,0x%X): %w",
			sb.slice.index, idx, start, end, ErrInvalidRange))
		return cb
	}
	cb.cmd.Populate(start, end, start-sb.slice.rng.Start, end-start, idx)
	sb.commands = append(sb.commands, cb)
	return cb
}

// Element appends an element covering [start, end) to the command and
// returns the command builder for chaining.
func (cb *CommandBuilder) Element(start, end uint64) *CommandBuilder {
	b := cb.b
	if !b.usable() {
		return cb
	}
	idx := len(cb.cmd.elements)
	if end < start || start < cb.cmd.rng.Start {
		b.fail(fmt.Errorf("command %d element %d [0x%X,0x%X): %w",
			cb.cmd.index, idx, start, end, ErrInvalidRange))
		return cb
	}
	var e Element
	e.Populate(start, end, start-cb.cmd.rng.Start, end-start, idx)
	cb.cmd.AddElement(e)
	return cb
}

// Build returns the assembled, frozen file. The builder cannot be used
// afterwards.
func (b *Builder) Build() (*File, error) {
	if !b.usable() {
		return nil, b.err
	}
	b.built = true

	f := NewFile(b.total)
	var commands, elements int
	for _, sb := range b.slices {
		s := sb.slice
		s.commands = make([]Command, 0, len(sb.commands))
		for _, cb := range sb.commands {
			s.AddCommand(cb.cmd)
			elements += len(cb.cmd.elements)
		}
		commands += len(sb.commands)
		f.slices = append(f.slices, s)
	}
	f.Freeze()

	b.logger.Debug("layout built",
		"size", b.total,
		"slices", len(f.slices),
		"commands", commands,
		"elements", elements,
	)
	return f, nil
}
