package layout

import "fmt"

// Range is a half-open interval [Start, End) of absolute byte offsets.
//
// An address equal to End belongs to the next range, never this one.
type Range struct {
	Start uint64
	End   uint64
}

// NewRange returns the range [start, end).
func NewRange(start, end uint64) Range {
	return Range{Start: start, End: end}
}

// Contains reports whether Start <= addr < End.
func (r Range) Contains(addr uint64) bool {
	return r.Start <= addr && addr < r.End
}

// Size returns End-Start, or 0 for an inverted range.
func (r Range) Size() uint64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsValid reports whether the range is not inverted.
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// IsEmpty reports whether the range holds no address.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Covers reports whether other lies entirely inside r.
func (r Range) Covers(other Range) bool {
	return other.IsValid() && r.Start <= other.Start && other.End <= r.End
}

// Overlaps reports whether r and other share at least one address.
func (r Range) Overlaps(other Range) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.Start < other.End && other.Start < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[0x%X,0x%X)", r.Start, r.End)
}
