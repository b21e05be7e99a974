package layout

// Element is a leaf record. It has no children.
//
// Populate mutates and takes a pointer; the accessors take a value so that a
// []Element can be searched without taking addresses.
type Element struct {
	rng       Range
	relOffset uint64
	size      uint64
	index     int
}

// Populate sets the element's absolute range [start, end), its offset within
// the parent command, its size and its index in the parent.
func (e *Element) Populate(start, end, relOffset, size uint64, index int) {
	e.rng = Range{Start: start, End: end}
	e.relOffset = relOffset
	e.size = size
	e.index = index
}

// Range returns the element's absolute range.
func (e Element) Range() Range { return e.rng }

// Contains reports whether addr is inside the element's range.
func (e Element) Contains(addr uint64) bool { return e.rng.Contains(addr) }

// RelativeOffset returns the offset of Range().Start within the parent command.
func (e Element) RelativeOffset() uint64 { return e.relOffset }

// RelativeRange returns the element's range expressed relative to its parent.
func (e Element) RelativeRange() Range {
	return Range{Start: e.relOffset, End: e.relOffset + e.size}
}

// Size returns the recorded size.
func (e Element) Size() uint64 { return e.size }

// Index returns the element's recorded position in its parent.
func (e Element) Index() int { return e.index }
