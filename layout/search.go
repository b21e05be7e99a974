package layout

import "errors"

// Locatable is the capability shared by every level of the hierarchy: a node
// knows its own absolute range and whether an address falls inside it.
//
// Resolution below a node is level specific; see Command.FindAddress,
// Slice.FindAddress and File.FindAddress.
type Locatable interface {
	Range() Range
	Contains(addr uint64) bool
}

var (
	_ Locatable = Element{}
	_ Locatable = Command{}
	_ Locatable = Slice{}
	_ Locatable = (*File)(nil)
)

var (
	// errGap is returned by search when addr lies between two children. Each
	// level maps it to its own policy.
	errGap = errors.New("layout: gap")
	// errBrokenChild is returned with the position of a visited child whose own
	// range is inverted. The caller reports that child as broken.
	errBrokenChild = errors.New("layout: broken child")
)

// search returns the position of the child whose range contains addr.
//
// Children must be sorted by start and disjoint. Every visited child is checked
// against both neighbours, so unsorted or overlapping children on the search
// path yield ErrInconsistentSearch instead of a wrong answer. A visited child
// with an inverted range yields its position and errBrokenChild.
func search[T Locatable](children []T, addr uint64) (int, error) {
	lo, hi := 0, len(children)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		r := children[mid].Range()
		if !r.IsValid() {
			return mid, errBrokenChild
		}
		if mid > 0 && children[mid-1].Range().End > r.Start {
			return -1, ErrInconsistentSearch
		}
		if mid+1 < len(children) && r.End > children[mid+1].Range().Start {
			return -1, ErrInconsistentSearch
		}
		switch {
		case addr < r.Start:
			hi = mid
		case addr >= r.End:
			lo = mid + 1
		default:
			return mid, nil
		}
	}
	return -1, errGap
}
