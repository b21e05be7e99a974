// Package verify checks the structural invariants of a layout.File eagerly.
//
// # Overview
//
// package layout only notices a malformed structure when a lookup happens to
// walk through the bad spot. The checks here inspect every node up front and
// are meant for callers that build a File from untrusted input, and for
// tests.
//
// Validation categories:
//   - Ranges: every node has a non-empty, non-inverted range
//   - Ordering: siblings are sorted by start and disjoint
//   - Containment: every child lies inside its parent
//   - Indices: the index recorded on a node equals its position
//   - Sizes: recorded size and relative offset agree with the absolute ranges
//   - Tiling: slices cover [0, size) with no gaps
//
// # Quick Start
//
//	if err := verify.AllInvariants(f); err != nil {
//	    fmt.Printf("Validation failed: %v\n", err)
//	}
//
// Collect gathers every problem instead of stopping at the first:
//
//	for _, verr := range verify.Collect(f) {
//	    fmt.Printf("%s %s: %s\n", verr.Type, verr.Path, verr.Message)
//	}
//
// # ValidationError
//
// All checks return *ValidationError on failure:
//
//	type ValidationError struct {
//	    Type    string         // check that failed, e.g. "Ordering"
//	    Path    string         // node, e.g. "slice 0/command 3"
//	    Message string         // human-readable description
//	    Offset  uint64         // absolute address where the problem starts
//	    Details map[string]any // additional context
//	}
//
// Tiling is part of AllInvariants because File.FindAddress treats a gap
// between slices as a structural error. Gaps between commands or elements are
// legal and are not reported.
package verify
