package layout

import "fmt"

// NoElement is the Coordinates.Element value of a lookup that stopped at a
// leaf Command.
const NoElement = -1

// Coordinates is the index path produced by a successful reverse lookup.
// Each field is a position in the parent's child sequence, so the path can be
// fed straight back into File.Slice, Slice.Command and Command.Element.
//
// The zero value is the path slice 0, command 0, element 0. A failed lookup
// returns every field set to -1 instead, which names no node.
type Coordinates struct {
	Slice   int
	Command int
	Element int
}

// noCoordinates is returned alongside lookup errors.
var noCoordinates = Coordinates{Slice: -1, Command: -1, Element: NoElement}

// HasElement reports whether the path ends at an Element rather than a leaf
// Command.
func (c Coordinates) HasElement() bool {
	return c.Element != NoElement
}

func (c Coordinates) String() string {
	if !c.HasElement() {
		return fmt.Sprintf("slice=%d command=%d element=-", c.Slice, c.Command)
	}
	return fmt.Sprintf("slice=%d command=%d element=%d", c.Slice, c.Command, c.Element)
}
