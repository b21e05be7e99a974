package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// scenarioFile builds:
//
//	file [0,100)
//	  slice 0 [0,50)
//	    command 0 [0,30): element 0 [0,10), element 1 [10,30)
//	    command 1 [30,50): no elements
//	  slice 1 [50,100): no commands
func scenarioFile(t testing.TB) *File {
	t.Helper()
	b := NewBuilder(100, BuilderOptions{})
	s := b.Slice(0, 50)
	s.Command(0, 30).Element(0, 10).Element(10, 30)
	s.Command(30, 50)
	b.Slice(50, 100)
	f, err := b.Build()
	require.NoError(t, err)
	return f
}

// tiledFile returns a random file in which slices tile the file, commands
// tile their slice and elements, when present, tile their command.
func tiledFile(t testing.TB, rnd *rand.Rand) *File {
	t.Helper()

	// sizes[s][c] lists element sizes; a single negative entry marks a leaf
	// command of that (negated) size.
	nSlices := 1 + rnd.Intn(4)
	sizes := make([][][]int, nSlices)
	total := 0
	for s := range sizes {
		nCommands := 1 + rnd.Intn(6)
		sizes[s] = make([][]int, nCommands)
		for c := range sizes[s] {
			nElems := rnd.Intn(5)
			if nElems == 0 {
				sz := 1 + rnd.Intn(32)
				sizes[s][c] = []int{-sz}
				total += sz
				continue
			}
			for ei := 0; ei < nElems; ei++ {
				sz := 1 + rnd.Intn(16)
				sizes[s][c] = append(sizes[s][c], sz)
				total += sz
			}
		}
	}

	b := NewBuilder(uint64(total), BuilderOptions{})
	off := uint64(0)
	for _, cmds := range sizes {
		sliceStart := off
		type span struct {
			start, end uint64
			elems      [][2]uint64
		}
		var spans []span
		for _, elems := range cmds {
			sp := span{start: off}
			if len(elems) == 1 && elems[0] < 0 {
				off += uint64(-elems[0])
			} else {
				for _, sz := range elems {
					sp.elems = append(sp.elems, [2]uint64{off, off + uint64(sz)})
					off += uint64(sz)
				}
			}
			sp.end = off
			spans = append(spans, sp)
		}
		sb := b.Slice(sliceStart, off)
		for _, sp := range spans {
			cb := sb.Command(sp.start, sp.end)
			for _, e := range sp.elems {
				cb.Element(e[0], e[1])
			}
		}
	}
	f, err := b.Build()
	require.NoError(t, err)
	return f
}
