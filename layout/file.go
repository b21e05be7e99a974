package layout

import (
	"errors"
	"fmt"
)

// File is the root of the hierarchy. It covers [0, size) and holds an ordered
// sequence of Slices that are expected to tile it.
type File struct {
	total  Range
	slices []Slice
	frozen bool
}

// NewFile returns an empty file covering [0, size).
func NewFile(size uint64) *File {
	return &File{total: Range{Start: 0, End: size}}
}

// AddSlice appends s to the file. Slices must be added in ascending,
// non-overlapping order; this is not checked here.
func (f *File) AddSlice(s Slice) error {
	if f.frozen {
		return ErrFrozen
	}
	f.slices = append(f.slices, s)
	return nil
}

// Freeze marks the file as complete. AddSlice fails afterwards.
func (f *File) Freeze() { f.frozen = true }

// Frozen reports whether Freeze has been called.
func (f *File) Frozen() bool { return f.frozen }

// Range returns [0, size).
func (f *File) Range() Range { return f.total }

// Contains reports whether addr < size.
func (f *File) Contains(addr uint64) bool { return f.total.Contains(addr) }

// Size returns the total addressable size.
func (f *File) Size() uint64 { return f.total.End }

// NumSlices returns the number of slices.
func (f *File) NumSlices() int { return len(f.slices) }

// Slice returns the i'th slice. It panics if i is out of range.
func (f *File) Slice(i int) Slice { return f.slices[i] }

// FindAddress returns the index path of the deepest node containing addr.
//
// An address outside [0, size) yields ErrAddressOutsideScope. An address
// inside the file that no slice covers yields ErrInconsistentStructure, since
// slices are expected to tile the file. A slice with an inverted range on the
// search path yields that slice's ErrSliceIsBroken. Errors raised below the
// file level are returned unchanged. On error every field of the returned
// Coordinates is -1, so they name no node.
func (f *File) FindAddress(addr uint64) (Coordinates, error) {
	if !f.total.Contains(addr) {
		return noCoordinates, outsideScope(addr, f.total)
	}

	pos, err := search(f.slices, addr)
	if errors.Is(err, errGap) {
		return noCoordinates, inconsistentStructure(addr, f.total)
	}
	if errors.Is(err, errBrokenChild) {
		return noCoordinates, f.slices[pos].broken()
	}
	if err != nil {
		return noCoordinates, err
	}
	s := f.slices[pos]
	if !f.total.Covers(s.rng) {
		return noCoordinates, s.broken()
	}

	c, err := s.FindAddress(addr)
	if err != nil {
		return noCoordinates, err
	}
	c.Slice = pos
	return c, nil
}

// RangeAt returns the absolute range of the node named by c: an element when
// c.HasElement(), otherwise a command.
func (f *File) RangeAt(c Coordinates) (Range, error) {
	if c.Slice < 0 || c.Slice >= len(f.slices) {
		return Range{}, fmt.Errorf("slice %d: %w", c.Slice, ErrNoSuchNode)
	}
	s := f.slices[c.Slice]
	if c.Command < 0 || c.Command >= len(s.commands) {
		return Range{}, fmt.Errorf("slice %d command %d: %w", c.Slice, c.Command, ErrNoSuchNode)
	}
	cmd := s.commands[c.Command]
	if !c.HasElement() {
		return cmd.rng, nil
	}
	if c.Element < 0 || c.Element >= len(cmd.elements) {
		return Range{}, fmt.Errorf("%v: %w", c, ErrNoSuchNode)
	}
	return cmd.elements[c.Element].rng, nil
}
