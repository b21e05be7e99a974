// Package buf holds bounds helpers for uint64 address spans.
package buf

// Span returns b[start:end] if start <= end <= len(b).
func Span(b []byte, start, end uint64) ([]byte, bool) {
	if start > end || end > uint64(len(b)) {
		return nil, false
	}
	return b[start:end], true
}
