package printer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/janus/layout"
	"github.com/joshuapare/janus/layout/walker"
)

func (p *Printer) printTreeText() error {
	return walker.Walk(p.file, func(n walker.Node) error {
		depth := int(n.Level)
		if p.opts.MaxDepth > 0 && depth > p.opts.MaxDepth {
			return walker.SkipChildren
		}
		if _, err := fmt.Fprintf(p.writer, "%s%s\n", strings.Repeat(" ", depth*p.opts.IndentSize), p.nodeLine(n)); err != nil {
			return err
		}
		if p.opts.MaxDepth > 0 && depth == p.opts.MaxDepth {
			return walker.SkipChildren
		}
		return nil
	})
}

func (p *Printer) nodeLine(n walker.Node) string {
	var b strings.Builder
	switch n.Level {
	case walker.LevelFile:
		fmt.Fprintf(&b, "file %v size=%d slices=%d", n.Range, n.Size, n.Children)
		return b.String()
	case walker.LevelSlice:
		fmt.Fprintf(&b, "slice %d %v commands=%d", n.Path.Slice, n.Range, n.Children)
	case walker.LevelCommand:
		fmt.Fprintf(&b, "command %d %v", n.Path.Command, n.Range)
		if n.Children > 0 {
			fmt.Fprintf(&b, " elements=%d", n.Children)
		} else {
			b.WriteString(" leaf")
		}
	case walker.LevelElement:
		fmt.Fprintf(&b, "element %d %v", n.Path.Element, n.Range)
	}
	if p.opts.ShowRelative {
		fmt.Fprintf(&b, " rel=0x%X size=%d", n.RelativeOffset, n.Size)
	}
	return b.String()
}

func (p *Printer) printLookupText(l Lookup) error {
	if l.Err != nil {
		_, err := fmt.Fprintf(p.writer, "0x%X: error: %v\n", l.Addr, l.Err)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "0x%X: %v %v\n", l.Addr, l.Coords, l.Range)
	return err
}

// ErrorKind names the sentinel behind a lookup error for structured output,
// e.g. "not_found". It returns "unknown" for errors not raised by a lookup.
func ErrorKind(err error) string {
	for _, k := range []struct {
		sentinel error
		name     string
	}{
		{layout.ErrAddressOutsideScope, "address_outside_scope"},
		{layout.ErrInconsistentStructure, "inconsistent_structure"},
		{layout.ErrInconsistentSearch, "inconsistent_search"},
		{layout.ErrNotFound, "not_found"},
		{layout.ErrSliceIsBroken, "slice_is_broken"},
		{layout.ErrCommandIsBroken, "command_is_broken"},
	} {
		if errors.Is(err, k.sentinel) {
			return k.name
		}
	}
	return "unknown"
}
