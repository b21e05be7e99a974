package verify

import (
	"fmt"

	"github.com/joshuapare/janus/layout"
	"github.com/joshuapare/janus/layout/walker"
)

// ValidationError describes a violated invariant.
type ValidationError struct {
	Type    string
	Path    string
	Message string
	Offset  uint64
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s at %s (offset 0x%X): %s", e.Type, e.Path, e.Offset, e.Message)
}

// Check is a single validation pass.
type Check func(f *layout.File) []*ValidationError

// Checks lists the passes run by AllInvariants and Collect, in order.
var Checks = []struct {
	Name  string
	Check Check
}{
	{"Ranges", checkRanges},
	{"Ordering", checkOrdering},
	{"Containment", checkContainment},
	{"Indices", checkIndices},
	{"Sizes", checkSizes},
	{"Tiling", checkTiling},
}

// AllInvariants runs every check and returns the first error found, or nil.
func AllInvariants(f *layout.File) error {
	for _, c := range Checks {
		if errs := c.Check(f); len(errs) > 0 {
			return errs[0]
		}
	}
	return nil
}

// Collect runs every check and returns all errors found.
func Collect(f *layout.File) []*ValidationError {
	var out []*ValidationError
	for _, c := range Checks {
		out = append(out, c.Check(f)...)
	}
	return out
}

// Ranges reports nodes whose range is empty or inverted.
func Ranges(f *layout.File) error { return first(checkRanges(f)) }

// Ordering reports siblings that are unsorted or overlap.
func Ordering(f *layout.File) error { return first(checkOrdering(f)) }

// Containment reports children that escape their parent.
func Containment(f *layout.File) error { return first(checkContainment(f)) }

// Indices reports nodes whose recorded index differs from their position.
func Indices(f *layout.File) error { return first(checkIndices(f)) }

// Sizes reports nodes whose recorded size or relative offset disagrees with
// their absolute range.
func Sizes(f *layout.File) error { return first(checkSizes(f)) }

// Tiling reports gaps between slices and at either end of the file.
func Tiling(f *layout.File) error { return first(checkTiling(f)) }

func first(errs []*ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// pathOf renders a node position for error messages.
func pathOf(n walker.Node) string {
	switch n.Level {
	case walker.LevelSlice:
		return fmt.Sprintf("slice %d", n.Path.Slice)
	case walker.LevelCommand:
		return fmt.Sprintf("slice %d/command %d", n.Path.Slice, n.Path.Command)
	case walker.LevelElement:
		return fmt.Sprintf("slice %d/command %d/element %d", n.Path.Slice, n.Path.Command, n.Path.Element)
	default:
		return ""
	}
}

// family groups a parent with its children so that sibling checks can run on
// a flat list.
type family struct {
	parent   walker.Node
	children []walker.Node
}

// families returns every node that has children, with its children, in walk
// order. The walk cannot fail because the visitor never returns an error.
func families(f *layout.File) []*family {
	var (
		out   []*family
		stack []*family
	)
	_ = walker.Walk(f, func(n walker.Node) error {
		for len(stack) > 0 && stack[len(stack)-1].parent.Level >= n.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.children = append(top.children, n)
		}
		if n.Level != walker.LevelElement {
			fam := &family{parent: n}
			out = append(out, fam)
			stack = append(stack, fam)
		}
		return nil
	})
	return out
}

func checkRanges(f *layout.File) []*ValidationError {
	var out []*ValidationError
	_ = walker.Walk(f, func(n walker.Node) error {
		if n.Level == walker.LevelFile || !n.Range.IsEmpty() {
			return nil
		}
		msg := fmt.Sprintf("empty range %v", n.Range)
		if !n.Range.IsValid() {
			msg = fmt.Sprintf("inverted range %v", n.Range)
		}
		out = append(out, &ValidationError{
			Type:    "Ranges",
			Path:    pathOf(n),
			Message: msg,
			Offset:  n.Range.Start,
			Details: map[string]any{"start": n.Range.Start, "end": n.Range.End},
		})
		return nil
	})
	return out
}

func checkOrdering(f *layout.File) []*ValidationError {
	var out []*ValidationError
	for _, fam := range families(f) {
		for i := 1; i < len(fam.children); i++ {
			prev, cur := fam.children[i-1], fam.children[i]
			switch {
			case cur.Range.Start < prev.Range.Start:
				out = append(out, &ValidationError{
					Type:    "Ordering",
					Path:    pathOf(cur),
					Message: fmt.Sprintf("starts before previous sibling: %v < %v", cur.Range, prev.Range),
					Offset:  cur.Range.Start,
				})
			case prev.Range.End > cur.Range.Start:
				out = append(out, &ValidationError{
					Type:    "Ordering",
					Path:    pathOf(cur),
					Message: fmt.Sprintf("overlaps previous sibling: %v and %v", prev.Range, cur.Range),
					Offset:  cur.Range.Start,
					Details: map[string]any{"overlap": prev.Range.End - cur.Range.Start},
				})
			}
		}
	}
	return out
}

func checkContainment(f *layout.File) []*ValidationError {
	var out []*ValidationError
	for _, fam := range families(f) {
		for _, child := range fam.children {
			if fam.parent.Range.Covers(child.Range) || !child.Range.IsValid() {
				continue
			}
			out = append(out, &ValidationError{
				Type:    "Containment",
				Path:    pathOf(child),
				Message: fmt.Sprintf("%v escapes parent %v", child.Range, fam.parent.Range),
				Offset:  child.Range.Start,
				Details: map[string]any{"parent": fam.parent.Range.String(), "child": child.Range.String()},
			})
		}
	}
	return out
}

func checkIndices(f *layout.File) []*ValidationError {
	var out []*ValidationError
	_ = walker.Walk(f, func(n walker.Node) error {
		var pos int
		switch n.Level {
		case walker.LevelSlice:
			pos = n.Path.Slice
		case walker.LevelCommand:
			pos = n.Path.Command
		case walker.LevelElement:
			pos = n.Path.Element
		default:
			return nil
		}
		if n.Index != pos {
			out = append(out, &ValidationError{
				Type:    "Indices",
				Path:    pathOf(n),
				Message: fmt.Sprintf("recorded index %d, position %d", n.Index, pos),
				Offset:  n.Range.Start,
				Details: map[string]any{"recorded": n.Index, "position": pos},
			})
		}
		return nil
	})
	return out
}

func checkSizes(f *layout.File) []*ValidationError {
	var out []*ValidationError
	for _, fam := range families(f) {
		for _, child := range fam.children {
			if !child.Range.IsValid() {
				continue
			}
			if child.Size != child.Range.Size() {
				out = append(out, &ValidationError{
					Type:    "Sizes",
					Path:    pathOf(child),
					Message: fmt.Sprintf("recorded size %d, range %v spans %d", child.Size, child.Range, child.Range.Size()),
					Offset:  child.Range.Start,
					Details: map[string]any{"recorded": child.Size, "actual": child.Range.Size()},
				})
			}
			if child.Range.Start < fam.parent.Range.Start {
				continue // reported by Containment
			}
			if want := child.Range.Start - fam.parent.Range.Start; child.RelativeOffset != want {
				out = append(out, &ValidationError{
					Type:    "Sizes",
					Path:    pathOf(child),
					Message: fmt.Sprintf("relative offset 0x%X, expected 0x%X", child.RelativeOffset, want),
					Offset:  child.Range.Start,
					Details: map[string]any{"recorded": child.RelativeOffset, "expected": want},
				})
			}
		}
	}
	return out
}

func checkTiling(f *layout.File) []*ValidationError {
	var out []*ValidationError
	next := uint64(0)
	for i := 0; i < f.NumSlices(); i++ {
		r := f.Slice(i).Range()
		if r.Start > next {
			out = append(out, &ValidationError{
				Type:    "Tiling",
				Path:    fmt.Sprintf("slice %d", i),
				Message: fmt.Sprintf("gap [0x%X,0x%X) before slice", next, r.Start),
				Offset:  next,
				Details: map[string]any{"gap": r.Start - next},
			})
		}
		next = max(next, r.End)
	}
	if next < f.Size() {
		out = append(out, &ValidationError{
			Type:    "Tiling",
			Message: fmt.Sprintf("gap [0x%X,0x%X) at end of file", next, f.Size()),
			Offset:  next,
			Details: map[string]any{"gap": f.Size() - next},
		})
	}
	return out
}
