// Package layout indexes a byte-addressable space that has been partitioned
// into a fixed hierarchy of nested, non-overlapping ranges.
//
// # Overview
//
// The hierarchy has four levels, leaves last:
//
//	File     [0, size)             root, holds Slices
//	Slice    [start, end)          holds Commands
//	Command  [start, end)          holds Elements, or is itself a leaf
//	Element  [start, end)          leaf record
//
// Every range is half-open: an address equal to End belongs to the next
// sibling. At each level children are sorted by start, disjoint, and
// contained in their parent. Gaps between children are allowed.
//
// The same in-memory tree serves two access patterns with no auxiliary index:
//
//   - Direct access: f.Slice(i).Command(j).Element(k), O(1) per level.
//   - Reverse lookup: f.FindAddress(addr) returns the Coordinates of the
//     deepest node containing addr, O(log S + log C + log E).
//
// # Quick Start
//
//	b := layout.NewBuilder(100, layout.BuilderOptions{})
//	s := b.Slice(0, 50)
//	s.Command(0, 30).Element(0, 10).Element(10, 30)
//	s.Command(30, 50)
//	b.Slice(50, 100)
//	f, err := b.Build()
//	if err != nil {
//	    return err
//	}
//
//	c, err := f.FindAddress(25)
//	// c == Coordinates{Slice: 0, Command: 0, Element: 1}
//	e := f.Slice(c.Slice).Command(c.Command).Element(c.Element)
//
// Callers that already track indices and relative offsets can populate nodes
// directly instead:
//
//	var e layout.Element
//	e.Populate(150, 180, 50, 30, 0)
//	var c layout.Command
//	c.Populate(100, 200, 100, 100, 0)
//	c.AddElement(e)
//
// # Errors
//
// Lookups report failures through the sentinels in errors.go, carried by
// *AddressError or *BrokenError where an address or range applies:
//
//	ErrAddressOutsideScope    address outside the queried node
//	ErrInconsistentStructure  address in the file but in no slice
//	ErrNotFound               address in a gap between commands or elements,
//	                          or in a slice with no commands
//	ErrInconsistentSearch     children unsorted or overlapping
//	ErrSliceIsBroken          slice range empty/inverted or child escapes it
//	ErrCommandIsBroken        command range empty/inverted, or an element is
//	                          inverted or escapes it
//
// A slice or command with an inverted range reports the same broken error
// whether it is queried directly or reached from its parent.
//
// Errors are created where the anomaly is found and returned unchanged by the
// levels above, so errors.Is and errors.As work on the result of
// File.FindAddress. Gaps are treated differently by level: slices are
// expected to tile the file, so a top-level gap is a structural error, while
// gaps inside a slice or command are an ordinary miss.
//
// # Concurrency
//
// Nothing here is synchronized. A File is safe for concurrent FindAddress
// calls once construction has finished and the *File has been published to
// the readers (Builder.Build returns a frozen File for this purpose).
// Mutation concurrent with lookups is not supported.
package layout
