// Package wire provides big-endian binary encoding and decoding utilities
// for the sampling-index cache format.
//
// The cache format stores multi-byte values in big-endian byte order. This
// package provides bounds-checked readers and writers for the primitive
// types used in cache files.
package wire

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrShortBuffer is returned when a read or write operation cannot
	// complete because there isn't enough space in the buffer.
	ErrShortBuffer = errors.New("wire: buffer too short")
)

// ByteOrder is the byte order used by cache files.
var ByteOrder = binary.BigEndian

// Reader provides big-endian binary reading from a byte slice. It maintains
// a read position and provides bounds checking on all operations.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader from a byte slice.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.pos >= len(r.data) {
		return 0, ErrShortBuffer
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, ErrShortBuffer
	}
	v := ByteOrder.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// Writer provides big-endian binary writing into a preallocated byte slice.
// It maintains a write position and provides bounds checking on all
// operations.
type Writer struct {
	data []byte
	pos  int
}

// NewWriter creates a Writer over a buffer of the given size.
func NewWriter(size int) *Writer {
	return &Writer{data: make([]byte, size)}
}

// Bytes returns the written portion of the buffer.
func (w *Writer) Bytes() []byte {
	return w.data[:w.pos]
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) error {
	if w.pos >= len(w.data) {
		return ErrShortBuffer
	}
	w.data[w.pos] = v
	w.pos++
	return nil
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	if w.pos+2 > len(w.data) {
		return ErrShortBuffer
	}
	ByteOrder.PutUint16(w.data[w.pos:], v)
	w.pos += 2
	return nil
}
