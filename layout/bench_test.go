package layout

import (
	"math/rand"
	"testing"
)

func benchFile(b *testing.B, slices, commands, elements int) *File {
	b.Helper()
	const elemSize = 16
	total := uint64(slices * commands * elements * elemSize)
	bld := NewBuilder(total, BuilderOptions{})
	off := uint64(0)
	for si := 0; si < slices; si++ {
		sb := bld.Slice(off, off+uint64(commands*elements*elemSize))
		for ci := 0; ci < commands; ci++ {
			cb := sb.Command(off, off+uint64(elements*elemSize))
			for ei := 0; ei < elements; ei++ {
				cb.Element(off, off+elemSize)
				off += elemSize
			}
		}
	}
	f, err := bld.Build()
	if err != nil {
		b.Fatalf("Build: %v", err)
	}
	return f
}

func BenchmarkFindAddress(b *testing.B) {
	f := benchFile(b, 3, 1024, 64)
	rnd := rand.New(rand.NewSource(1))
	addrs := make([]uint64, 4096)
	for i := range addrs {
		addrs[i] = uint64(rnd.Int63n(int64(f.Size())))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.FindAddress(addrs[i%len(addrs)]); err != nil {
			b.Fatal(err)
		}
	}
}
