// Package mmfile provides read-only access to the bytes of the file being
// indexed, memory-mapped where the platform allows it.
package mmfile

import (
	"errors"
	"fmt"

	"github.com/joshuapare/janus/internal/buf"
)

// ErrOutOfBounds indicates a requested span extends past the mapped data.
var ErrOutOfBounds = errors.New("mmfile: span out of bounds")

// Mapping is a read-only view of a file's contents. Bytes returned by its
// methods are invalid after Close.
type Mapping struct {
	path  string
	data  []byte
	unmap func([]byte) error
}

// Path returns the path the mapping was opened from.
func (m *Mapping) Path() string { return m.path }

// Bytes returns the whole mapping.
func (m *Mapping) Bytes() []byte { return m.data }

// Len returns the mapped size in bytes.
func (m *Mapping) Len() uint64 { return uint64(len(m.data)) }

// Span returns the bytes in [start, end).
func (m *Mapping) Span(start, end uint64) ([]byte, error) {
	b, ok := buf.Span(m.data, start, end)
	if !ok {
		return nil, fmt.Errorf("[0x%X,0x%X) of %d bytes: %w", start, end, len(m.data), ErrOutOfBounds)
	}
	return b, nil
}

// Close releases the mapping. Calling Close more than once is a no-op.
func (m *Mapping) Close() error {
	if m.data == nil || m.unmap == nil {
		m.data = nil
		return nil
	}
	data := m.data
	m.data = nil
	return m.unmap(data)
}
