package printer

import (
	"encoding/json"
	"errors"

	"github.com/joshuapare/janus/layout"
	"github.com/joshuapare/janus/layout/walker"
)

// jsonNode is one node of the tree in JSON format.
type jsonNode struct {
	Level          string      `json:"level"`
	Index          int         `json:"index"`
	Start          uint64      `json:"start"`
	End            uint64      `json:"end"`
	RelativeOffset *uint64     `json:"relative_offset,omitempty"`
	Size           *uint64     `json:"size,omitempty"`
	Children       []*jsonNode `json:"children,omitempty"`
}

// jsonLookup is the JSON form of a Lookup. ErrorRange is the range an
// out-of-scope or inconsistent-structure address was checked against.
type jsonLookup struct {
	Address    uint64   `json:"address"`
	Slice      *int     `json:"slice,omitempty"`
	Command    *int     `json:"command,omitempty"`
	Element    *int     `json:"element,omitempty"`
	Start      *uint64  `json:"start,omitempty"`
	End        *uint64  `json:"end,omitempty"`
	Error      string   `json:"error,omitempty"`
	Kind       string   `json:"kind,omitempty"`
	ErrorRange []uint64 `json:"error_range,omitempty"`
}

func (p *Printer) printTreeJSON() error {
	var (
		root  *jsonNode
		stack []*jsonNode
	)
	err := walker.Walk(p.file, func(n walker.Node) error {
		depth := int(n.Level)
		if p.opts.MaxDepth > 0 && depth > p.opts.MaxDepth {
			return walker.SkipChildren
		}
		node := &jsonNode{
			Level: n.Level.String(),
			Index: n.Index,
			Start: n.Range.Start,
			End:   n.Range.End,
		}
		if p.opts.ShowRelative && n.Level != walker.LevelFile {
			rel, size := n.RelativeOffset, n.Size
			node.RelativeOffset, node.Size = &rel, &size
		}
		stack = stack[:min(len(stack), depth)]
		if len(stack) == 0 {
			root = node
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
		return nil
	})
	if err != nil {
		return err
	}
	return p.encode(root)
}

func (p *Printer) printLookupJSON(l Lookup) error {
	out := jsonLookup{Address: l.Addr}
	if l.Err != nil {
		out.Error = l.Err.Error()
		out.Kind = ErrorKind(l.Err)
		var addrErr *layout.AddressError
		if errors.As(l.Err, &addrErr) && !errors.Is(l.Err, layout.ErrNotFound) {
			out.ErrorRange = []uint64{addrErr.Range.Start, addrErr.Range.End}
		}
		return p.encode(out)
	}
	s, c := l.Coords.Slice, l.Coords.Command
	start, end := l.Range.Start, l.Range.End
	out.Slice, out.Command = &s, &c
	out.Start, out.End = &start, &end
	if l.Coords.HasElement() {
		e := l.Coords.Element
		out.Element = &e
	}
	return p.encode(out)
}

func (p *Printer) encode(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
