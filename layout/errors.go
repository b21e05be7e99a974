package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrAddressOutsideScope indicates the address is outside the range of the
	// node being queried.
	ErrAddressOutsideScope = errors.New("layout: address outside current scope")
	// ErrInconsistentStructure indicates the address is inside the file but no
	// slice covers it. Slices are expected to tile the file.
	ErrInconsistentStructure = errors.New("layout: inconsistent structure")
	// ErrInconsistentSearch indicates children were found unsorted or
	// overlapping while searching.
	ErrInconsistentSearch = errors.New("layout: inconsistent search")
	// ErrNotFound indicates the address falls in a gap between siblings.
	ErrNotFound = errors.New("layout: not found")
	// ErrSliceIsBroken indicates a slice's own range or child set is malformed.
	ErrSliceIsBroken = errors.New("layout: slice is broken")
	// ErrCommandIsBroken indicates a command's own range or child set is malformed.
	ErrCommandIsBroken = errors.New("layout: command is broken")

	// ErrFrozen indicates a mutation was attempted on a built file.
	ErrFrozen = errors.New("layout: structure is frozen")
	// ErrInvalidRange indicates a range with End < Start was handed to a builder.
	ErrInvalidRange = errors.New("layout: invalid range")
	// ErrNoSuchNode indicates coordinates that do not name a node of the file.
	ErrNoSuchNode = errors.New("layout: no such node")
)

// AddressError reports a failed lookup together with the offending address
// and, where one applies, the range it was checked against.
//
// Kind is ErrAddressOutsideScope, ErrInconsistentStructure or ErrNotFound.
type AddressError struct {
	Kind  error
	Addr  uint64
	Range Range
}

func (e *AddressError) Error() string {
	if errors.Is(e.Kind, ErrNotFound) {
		return fmt.Sprintf("%v: 0x%X", e.Kind, e.Addr)
	}
	return fmt.Sprintf("%v: 0x%X not in %v", e.Kind, e.Addr, e.Range)
}

func (e *AddressError) Unwrap() error { return e.Kind }

// BrokenError reports a slice or command whose own range or children are
// malformed. Index is the node's recorded index.
type BrokenError struct {
	Kind  error
	Index int
	Range Range
}

func (e *BrokenError) Error() string {
	return fmt.Sprintf("%v: index %d range %v", e.Kind, e.Index, e.Range)
}

func (e *BrokenError) Unwrap() error { return e.Kind }

func outsideScope(addr uint64, r Range) error {
	return &AddressError{Kind: ErrAddressOutsideScope, Addr: addr, Range: r}
}

func notFound(addr uint64) error {
	return &AddressError{Kind: ErrNotFound, Addr: addr}
}

func inconsistentStructure(addr uint64, r Range) error {
	return &AddressError{Kind: ErrInconsistentStructure, Addr: addr, Range: r}
}
