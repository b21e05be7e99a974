package walker

import "github.com/joshuapare/janus/layout"

// Stats summarizes the nodes of a file.
type Stats struct {
	Slices       int
	Commands     int
	LeafCommands int
	Elements     int

	// EmptySlices counts slices without commands. Addresses inside them
	// always resolve to ErrNotFound.
	EmptySlices int

	// CoveredBytes is the number of addresses that resolve to a leaf, summed
	// over element and leaf command ranges.
	CoveredBytes uint64
	// MaxElements is the largest element count of a single command.
	MaxElements int
}

// Coverage returns CoveredBytes as a fraction of size, or 0 for an empty file.
func (s Stats) Coverage(size uint64) float64 {
	if size == 0 {
		return 0
	}
	return float64(s.CoveredBytes) / float64(size)
}

// Count walks f and returns its statistics.
//
// Example:
//
//	stats, err := walker.Count(f)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Elements: %d\n", stats.Elements)
func Count(f *layout.File) (Stats, error) {
	var st Stats
	err := Walk(f, func(n Node) error {
		switch n.Level {
		case LevelSlice:
			st.Slices++
			if n.Children == 0 {
				st.EmptySlices++
			}
		case LevelCommand:
			st.Commands++
			if n.Children == 0 {
				st.LeafCommands++
				st.CoveredBytes += n.Range.Size()
			}
			st.MaxElements = max(st.MaxElements, n.Children)
		case LevelElement:
			st.Elements++
			st.CoveredBytes += n.Range.Size()
		}
		return nil
	})
	return st, err
}
