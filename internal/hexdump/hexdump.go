// Package hexdump renders byte spans in the classic offset/hex/text layout.
// The text column decodes bytes as Windows-1252, which is how most legacy
// binary formats store their short strings.
package hexdump

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DefaultWidth is the number of bytes per line when Options.Width is unset.
const DefaultWidth = 16

// Options controls dump layout.
type Options struct {
	// Width is the number of bytes per line. Default: 16
	Width int
	// MaxBytes truncates the dump (0 = no limit).
	MaxBytes int
}

// Write dumps data to w. Offsets are printed relative to base, so callers
// can pass the absolute address of data[0].
func Write(w io.Writer, data []byte, base uint64, opts Options) error {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	shown := data
	if opts.MaxBytes > 0 && len(shown) > opts.MaxBytes {
		shown = shown[:opts.MaxBytes]
	}

	bw := bufio.NewWriter(w)
	for off := 0; off < len(shown); off += width {
		line := shown[off:min(off+width, len(shown))]
		fmt.Fprintf(bw, "%08X ", base+uint64(off))
		for i := 0; i < width; i++ {
			if i%8 == 0 {
				bw.WriteByte(' ')
			}
			if i < len(line) {
				fmt.Fprintf(bw, "%02x ", line[i])
			} else {
				bw.WriteString("   ")
			}
		}
		bw.WriteString(" |")
		bw.WriteString(Text(line))
		bw.WriteString("|\n")
	}
	if len(shown) < len(data) {
		fmt.Fprintf(bw, "... %d more bytes\n", len(data)-len(shown))
	}
	return bw.Flush()
}

// Text decodes b as Windows-1252, replacing unprintable characters with '.'.
func Text(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		r := charmap.Windows1252.DecodeByte(c)
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			r = '.'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
