package hexdump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite_FullAndPartialLines(t *testing.T) {
	data := []byte("ABCDEFGHIJKLMNOPQR")
	var out bytes.Buffer
	require.NoError(t, Write(&out, data, 0x10, Options{}))

	want := "00000010  41 42 43 44 45 46 47 48  49 4a 4b 4c 4d 4e 4f 50  |ABCDEFGHIJKLMNOP|\n" +
		"00000020  51 52                                             |QR|\n"
	require.Equal(t, want, out.String())
}

func TestWrite_Truncated(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 40)
	var out bytes.Buffer
	require.NoError(t, Write(&out, data, 0, Options{Width: 8, MaxBytes: 16}))

	want := "00000000  00 00 00 00 00 00 00 00  |........|\n" +
		"00000008  00 00 00 00 00 00 00 00  |........|\n" +
		"... 24 more bytes\n"
	require.Equal(t, want, out.String())
}

func TestWrite_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Write(&out, nil, 0, Options{}))
	require.Empty(t, out.String())
}

func TestText_Windows1252(t *testing.T) {
	require.Equal(t, "café", Text([]byte{'c', 'a', 'f', 0xE9}))
	require.Equal(t, "€.", Text([]byte{0x80, 0x0A}))
	require.Equal(t, "a b", Text([]byte("a b")))
}

func TestWrite_DefaultWidth(t *testing.T) {
	data := make([]byte, DefaultWidth+1)
	var out bytes.Buffer
	require.NoError(t, Write(&out, data, 0, Options{}))
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[1], "00000010 "), lines[1])
}
