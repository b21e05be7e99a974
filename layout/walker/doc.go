// Package walker traverses a layout.File depth first.
//
// Walk visits the file, then each slice, each of its commands, and each
// element of a command, in ascending address order. The visit callback may
// return SkipChildren to prune the subtree below the current node, or any
// other error to stop the walk.
//
//	err := walker.Walk(f, func(n walker.Node) error {
//	    fmt.Printf("%s %v %v\n", n.Level, n.Path, n.Range)
//	    return nil
//	})
//
// Count summarizes a file in one pass:
//
//	stats, err := walker.Count(f)
//	fmt.Printf("%d elements, %d/%d bytes covered\n",
//	    stats.Elements, stats.CoveredBytes, f.Size())
package walker
