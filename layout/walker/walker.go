package walker

import (
	"errors"

	"github.com/joshuapare/janus/layout"
)

// Level identifies the depth of a node.
type Level int

const (
	LevelFile Level = iota
	LevelSlice
	LevelCommand
	LevelElement
)

func (l Level) String() string {
	switch l {
	case LevelFile:
		return "file"
	case LevelSlice:
		return "slice"
	case LevelCommand:
		return "command"
	case LevelElement:
		return "element"
	default:
		return "unknown"
	}
}

// Unset marks Path fields below the node's level.
const Unset = -1

// Node describes one visited node.
type Node struct {
	Level Level
	// Path holds the positions leading to this node. Fields below Level are
	// Unset, except Element, which is layout.NoElement.
	Path           layout.Coordinates
	Range          layout.Range
	RelativeOffset uint64
	Size           uint64
	// Index is the index recorded on the node, which may differ from its
	// position in a malformed file.
	Index int
	// Children is the number of direct children.
	Children int
}

// IsLeaf reports whether the node terminates a lookup: an element, or a
// command with no elements.
func (n Node) IsLeaf() bool {
	return n.Level == LevelElement || (n.Level == LevelCommand && n.Children == 0)
}

// VisitFunc is called once per node.
type VisitFunc func(n Node) error

// SkipChildren may be returned by a VisitFunc to skip the node's children.
var SkipChildren = errors.New("walker: skip children")

// Walk visits every node of f in depth-first, address order.
func Walk(f *layout.File, fn VisitFunc) error {
	root := Node{
		Level:    LevelFile,
		Path:     layout.Coordinates{Slice: Unset, Command: Unset, Element: layout.NoElement},
		Range:    f.Range(),
		Size:     f.Size(),
		Children: f.NumSlices(),
	}
	if err := fn(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	for si := 0; si < f.NumSlices(); si++ {
		if err := walkSlice(f.Slice(si), si, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkSlice(s layout.Slice, si int, fn VisitFunc) error {
	n := Node{
		Level:          LevelSlice,
		Path:           layout.Coordinates{Slice: si, Command: Unset, Element: layout.NoElement},
		Range:          s.Range(),
		RelativeOffset: s.RelativeOffset(),
		Size:           s.Size(),
		Index:          s.Index(),
		Children:       s.NumCommands(),
	}
	if err := fn(n); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	for ci := 0; ci < s.NumCommands(); ci++ {
		if err := walkCommand(s.Command(ci), si, ci, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkCommand(c layout.Command, si, ci int, fn VisitFunc) error {
	n := Node{
		Level:          LevelCommand,
		Path:           layout.Coordinates{Slice: si, Command: ci, Element: layout.NoElement},
		Range:          c.Range(),
		RelativeOffset: c.RelativeOffset(),
		Size:           c.Size(),
		Index:          c.Index(),
		Children:       c.NumElements(),
	}
	if err := fn(n); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	for ei := 0; ei < c.NumElements(); ei++ {
		e := c.Element(ei)
		err := fn(Node{
			Level:          LevelElement,
			Path:           layout.Coordinates{Slice: si, Command: ci, Element: ei},
			Range:          e.Range(),
			RelativeOffset: e.RelativeOffset(),
			Size:           e.Size(),
			Index:          e.Index(),
		})
		if err != nil && !errors.Is(err, SkipChildren) {
			return err
		}
	}
	return nil
}
