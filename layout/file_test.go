package layout

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_FindAddress_Scenario(t *testing.T) {
	f := scenarioFile(t)

	c, err := f.FindAddress(25)
	require.NoError(t, err)
	require.Equal(t, Coordinates{Slice: 0, Command: 0, Element: 1}, c)

	c, err = f.FindAddress(35)
	require.NoError(t, err)
	require.Equal(t, Coordinates{Slice: 0, Command: 1, Element: NoElement}, c)
	require.False(t, c.HasElement())

	_, err = f.FindAddress(75)
	require.ErrorIs(t, err, ErrNotFound)
	var addrErr *AddressError
	require.ErrorAs(t, err, &addrErr)
	require.Equal(t, uint64(75), addrErr.Addr)

	_, err = f.FindAddress(150)
	require.ErrorIs(t, err, ErrAddressOutsideScope)
	require.ErrorAs(t, err, &addrErr)
	require.Equal(t, uint64(150), addrErr.Addr)
	require.Equal(t, NewRange(0, 100), addrErr.Range)
}

func TestFile_FindAddress_Boundaries(t *testing.T) {
	f := scenarioFile(t)

	tests := []struct {
		addr uint64
		want Coordinates
	}{
		{0, Coordinates{0, 0, 0}},
		{9, Coordinates{0, 0, 0}},
		{10, Coordinates{0, 0, 1}},
		{29, Coordinates{0, 0, 1}},
		{30, Coordinates{0, 1, NoElement}},
		{49, Coordinates{0, 1, NoElement}},
	}
	for _, tt := range tests {
		got, err := f.FindAddress(tt.addr)
		require.NoError(t, err, "addr %d", tt.addr)
		assert.Equal(t, tt.want, got, "addr %d", tt.addr)
	}

	// 50 starts slice 1, which has no commands.
	_, err := f.FindAddress(50)
	require.ErrorIs(t, err, ErrNotFound)

	// total size is the first address outside the file.
	_, err = f.FindAddress(100)
	require.ErrorIs(t, err, ErrAddressOutsideScope)
}

func TestFile_FindAddress_ManualConstruction(t *testing.T) {
	f := NewFile(100)

	var s0 Slice
	s0.Populate(0, 50, 0, 50, 0)
	var c0 Command
	c0.Populate(0, 30, 0, 30, 0)
	var e0, e1 Element
	e0.Populate(0, 10, 0, 10, 0)
	e1.Populate(10, 30, 10, 20, 1)
	c0.AddElement(e0)
	c0.AddElement(e1)
	var c1 Command
	c1.Populate(30, 50, 30, 20, 1)
	s0.AddCommand(c0)
	s0.AddCommand(c1)
	require.NoError(t, f.AddSlice(s0))

	var s1 Slice
	s1.Populate(50, 100, 50, 50, 1)
	require.NoError(t, f.AddSlice(s1))

	built := scenarioFile(t)
	for addr := uint64(0); addr < 110; addr++ {
		want, wantErr := built.FindAddress(addr)
		got, gotErr := f.FindAddress(addr)
		require.Equal(t, wantErr, gotErr, "addr %d", addr)
		require.Equal(t, want, got, "addr %d", addr)
	}
}

func TestFile_FindAddress_TopLevelGap(t *testing.T) {
	b := NewBuilder(100, BuilderOptions{})
	b.Slice(0, 40).Command(0, 40)
	b.Slice(60, 100).Command(60, 100)
	f, err := b.Build()
	require.NoError(t, err)

	_, err = f.FindAddress(50)
	require.ErrorIs(t, err, ErrInconsistentStructure)
	var addrErr *AddressError
	require.ErrorAs(t, err, &addrErr)
	require.Equal(t, uint64(50), addrErr.Addr)
	require.Equal(t, NewRange(0, 100), addrErr.Range)

	c, err := f.FindAddress(60)
	require.NoError(t, err)
	require.Equal(t, Coordinates{1, 0, NoElement}, c)
}

func TestFile_FindAddress_NoSlices(t *testing.T) {
	f := NewFile(10)
	_, err := f.FindAddress(3)
	require.ErrorIs(t, err, ErrInconsistentStructure)

	empty := NewFile(0)
	_, err = empty.FindAddress(0)
	require.ErrorIs(t, err, ErrAddressOutsideScope)
}

func TestFile_FindAddress_SliceEscapesFile(t *testing.T) {
	f := NewFile(100)
	var s Slice
	s.Populate(50, 150, 50, 100, 0)
	require.NoError(t, f.AddSlice(s))

	_, err := f.FindAddress(75)
	require.ErrorIs(t, err, ErrSliceIsBroken)
	var broken *BrokenError
	require.ErrorAs(t, err, &broken)
	require.Equal(t, 0, broken.Index)
	require.Equal(t, NewRange(50, 150), broken.Range)
}

func TestFile_FindAddress_PropagatesUnchanged(t *testing.T) {
	// Element 0 escapes its command; the command reports it and the slice and
	// file must hand the same error back.
	var e Element
	e.Populate(20, 40, 20, 20, 0)
	var c Command
	c.Populate(0, 30, 0, 30, 0)
	c.AddElement(e)
	var s Slice
	s.Populate(0, 50, 0, 50, 0)
	s.AddCommand(c)
	f := NewFile(50)
	require.NoError(t, f.AddSlice(s))

	_, cmdErr := c.FindAddress(25)
	_, fileErr := f.FindAddress(25)
	require.ErrorIs(t, fileErr, ErrCommandIsBroken)
	require.Equal(t, cmdErr, fileErr)

	var broken *BrokenError
	require.ErrorAs(t, fileErr, &broken)
	require.Equal(t, NewRange(0, 30), broken.Range)
}

func TestFile_FindAddress_RoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		f := tiledFile(t, rand.New(rand.NewSource(seed)))
		for addr := uint64(0); addr < f.Size(); addr++ {
			c, err := f.FindAddress(addr)
			require.NoError(t, err, "seed %d addr %d", seed, addr)

			r, err := f.RangeAt(c)
			require.NoError(t, err)
			require.True(t, r.Contains(addr), "seed %d addr %d coords %v range %v", seed, addr, c, r)

			cmd := f.Slice(c.Slice).Command(c.Command)
			if c.HasElement() {
				require.True(t, cmd.Element(c.Element).Contains(addr))
				require.Equal(t, c.Element, cmd.Element(c.Element).Index())
			} else {
				require.True(t, cmd.IsLeaf())
				require.True(t, cmd.Contains(addr))
			}
		}
		_, err := f.FindAddress(f.Size())
		require.ErrorIs(t, err, ErrAddressOutsideScope)
	}
}

func TestFile_FindAddress_Idempotent(t *testing.T) {
	f := tiledFile(t, rand.New(rand.NewSource(7)))
	for addr := uint64(0); addr <= f.Size(); addr++ {
		c1, err1 := f.FindAddress(addr)
		c2, err2 := f.FindAddress(addr)
		require.Equal(t, c1, c2)
		require.Equal(t, err1, err2)
	}
}

func TestFile_FindAddress_ConcurrentReaders(t *testing.T) {
	f := tiledFile(t, rand.New(rand.NewSource(42)))

	want := make([]Coordinates, f.Size())
	for addr := range want {
		c, err := f.FindAddress(uint64(addr))
		require.NoError(t, err)
		want[addr] = c
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for addr := range want {
				c, err := f.FindAddress(uint64(addr))
				if err != nil {
					errs <- err
					return
				}
				if c != want[addr] {
					errs <- errors.New("coordinates changed under concurrent lookup")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestFile_RangeAt(t *testing.T) {
	f := scenarioFile(t)

	r, err := f.RangeAt(Coordinates{0, 0, 1})
	require.NoError(t, err)
	require.Equal(t, NewRange(10, 30), r)

	r, err = f.RangeAt(Coordinates{0, 1, NoElement})
	require.NoError(t, err)
	require.Equal(t, NewRange(30, 50), r)

	for _, c := range []Coordinates{{2, 0, 0}, {1, 0, NoElement}, {0, 5, 0}, {0, 1, 0}, {-1, 0, 0}} {
		_, err := f.RangeAt(c)
		require.ErrorIs(t, err, ErrNoSuchNode, "coords %v", c)
	}
}

func TestFile_AddSliceAfterFreeze(t *testing.T) {
	f := scenarioFile(t)
	require.True(t, f.Frozen())
	require.ErrorIs(t, f.AddSlice(Slice{}), ErrFrozen)
	require.Equal(t, 2, f.NumSlices())
}

func TestFile_FindAddress_InvertedSlice(t *testing.T) {
	f := NewFile(100)
	var first, inverted, last Slice
	first.Populate(0, 30, 0, 30, 0)
	first.AddCommand(mkCommand(0, 30))
	inverted.Populate(60, 30, 60, 0, 1)
	last.Populate(60, 100, 60, 40, 2)
	last.AddCommand(mkCommand(60, 100))
	for _, s := range []Slice{first, inverted, last} {
		require.NoError(t, f.AddSlice(s))
	}

	_, viaFile := f.FindAddress(70)
	require.ErrorIs(t, viaFile, ErrSliceIsBroken)
	var broken *BrokenError
	require.ErrorAs(t, viaFile, &broken)
	require.Equal(t, 1, broken.Index)

	_, direct := f.Slice(1).FindAddress(45)
	require.Equal(t, direct, viaFile)
}

func TestFile_FindAddress_ErrorCoordinates(t *testing.T) {
	f := scenarioFile(t)
	for _, addr := range []uint64{75, 150} {
		c, err := f.FindAddress(addr)
		require.Error(t, err)
		require.Equal(t, Coordinates{Slice: -1, Command: -1, Element: NoElement}, c)
		require.False(t, c.HasElement())

		_, err = f.RangeAt(c)
		require.ErrorIs(t, err, ErrNoSuchNode)
	}

	c, err := f.Slice(1).FindAddress(75)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, -1, c.Slice)
}
