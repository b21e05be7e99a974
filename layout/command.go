package layout

import "errors"

// Command holds an ordered sequence of Elements. A Command without elements
// is itself the resolved unit for any address in its range.
//
// Like Element, only the mutators (Populate, AddElement) take a pointer.
type Command struct {
	rng       Range
	relOffset uint64
	size      uint64
	index     int
	elements  []Element
}

// Populate sets the command's absolute range [start, end), its offset within
// the parent slice, its size and its index in the parent.
func (c *Command) Populate(start, end, relOffset, size uint64, index int) {
	c.rng = Range{Start: start, End: end}
	c.relOffset = relOffset
	c.size = size
	c.index = index
}

// AddElement appends e to the command. Elements must be added in ascending,
// non-overlapping order; this is not checked here.
func (c *Command) AddElement(e Element) {
	c.elements = append(c.elements, e)
}

// Range returns the command's absolute range.
func (c Command) Range() Range { return c.rng }

// Contains reports whether addr is inside the command's range.
func (c Command) Contains(addr uint64) bool { return c.rng.Contains(addr) }

// RelativeOffset returns the offset of Range().Start within the parent slice.
func (c Command) RelativeOffset() uint64 { return c.relOffset }

// RelativeRange returns the command's range expressed relative to its parent.
func (c Command) RelativeRange() Range {
	return Range{Start: c.relOffset, End: c.relOffset + c.size}
}

// Size returns the recorded size.
func (c Command) Size() uint64 { return c.size }

// Index returns the command's recorded position in its parent.
func (c Command) Index() int { return c.index }

// NumElements returns the number of elements.
func (c Command) NumElements() int { return len(c.elements) }

// IsLeaf reports whether the command has no elements.
func (c Command) IsLeaf() bool { return len(c.elements) == 0 }

// Element returns the i'th element. It panics if i is out of range.
func (c Command) Element(i int) Element { return c.elements[i] }

// FindAddress returns the position of the element containing addr, or
// NoElement when the command is a leaf.
//
// Errors:
//   - *BrokenError (ErrCommandIsBroken): the command's range is empty or
//     inverted, or an element on the search path is inverted or escapes it.
//     Elements have no error kind of their own, so the command reports them.
//   - *AddressError (ErrAddressOutsideScope): addr is outside the command.
//   - *AddressError (ErrNotFound): addr falls between two elements.
//   - ErrInconsistentSearch: elements are unsorted or overlapping.
func (c Command) FindAddress(addr uint64) (int, error) {
	if c.rng.IsEmpty() {
		return NoElement, c.broken()
	}
	if !c.rng.Contains(addr) {
		return NoElement, outsideScope(addr, c.rng)
	}
	if len(c.elements) == 0 {
		return NoElement, nil
	}

	pos, err := search(c.elements, addr)
	if errors.Is(err, errGap) {
		return NoElement, notFound(addr)
	}
	if errors.Is(err, errBrokenChild) {
		return NoElement, c.broken()
	}
	if err != nil {
		return NoElement, err
	}
	if !c.rng.Covers(c.elements[pos].rng) {
		return NoElement, c.broken()
	}
	return pos, nil
}

func (c Command) broken() error {
	return &BrokenError{Kind: ErrCommandIsBroken, Index: c.index, Range: c.rng}
}
