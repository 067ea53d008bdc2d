package rom

import (
	"trackerimport/internal/importerr"
)

// Origin selects the reference point for Buffer.Seek.
type Origin int

const (
	// Begin seeks relative to the start of the buffer.
	Begin Origin = iota
	// Current seeks relative to the current cursor position.
	Current
	// End seeks relative to the end of the buffer.
	End
)

// Buffer is a position-carrying view over a byte slice, supporting
// little- and big-endian reads/writes of 8- and 16-bit values. It is the
// binary-buffer helper spec §4.9 describes. The table writers and the
// FamiTracker binary mutator do not use it; they encode with
// encoding/binary directly.
type Buffer struct {
	data []byte
	pos  int
}

// NewBuffer wraps data (not copied) in a Buffer positioned at offset 0.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the length of the underlying buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the underlying byte slice.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Pos returns the current cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// Seek moves the cursor to offset relative to origin and returns the new
// absolute position. A resulting negative position is a RangeError.
func (b *Buffer) Seek(offset int, origin Origin) (int, error) {
	var base int
	switch origin {
	case Begin:
		base = 0
	case Current:
		base = b.pos
	case End:
		base = len(b.data)
	default:
		return 0, importerr.Newf(importerr.RangeError, "seek: unknown origin %d", origin)
	}
	pos := base + offset
	if pos < 0 {
		return 0, importerr.Newf(importerr.RangeError, "seek: resulting position %d is negative", pos)
	}
	b.pos = pos
	return pos, nil
}

// At returns the byte at absolute index i without moving the cursor.
func (b *Buffer) At(i int) (byte, error) {
	if i < 0 || i >= len(b.data) {
		return 0, importerr.Newf(importerr.RangeError, "index %d out of range (len %d)", i, len(b.data))
	}
	return b.data[i], nil
}

// SetAt writes v at absolute index i without moving the cursor.
func (b *Buffer) SetAt(i int, v byte) error {
	if i < 0 || i >= len(b.data) {
		return importerr.Newf(importerr.RangeError, "index %d out of range (len %d)", i, len(b.data))
	}
	b.data[i] = v
	return nil
}

func (b *Buffer) requireReadable(n int) error {
	if b.pos < 0 || b.pos+n > len(b.data) {
		return importerr.Newf(importerr.EndOfStream, "read of %d byte(s) at %d exceeds buffer length %d", n, b.pos, len(b.data))
	}
	return nil
}

func (b *Buffer) requireWritable(n int) error {
	if b.pos < 0 || b.pos+n > len(b.data) {
		return importerr.Newf(importerr.Overflow, "write of %d byte(s) at %d exceeds buffer length %d", n, b.pos, len(b.data))
	}
	return nil
}

// ReadU8 reads one byte and advances the cursor.
func (b *Buffer) ReadU8() (uint8, error) {
	if err := b.requireReadable(1); err != nil {
		return 0, err
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

// PeekU8 reads one byte without advancing the cursor (the "enumeration
// variant" of ReadU8, for read-only sequential scans).
func (b *Buffer) PeekU8() (uint8, error) {
	if err := b.requireReadable(1); err != nil {
		return 0, err
	}
	return b.data[b.pos], nil
}

// ReadI8 reads one signed byte and advances the cursor.
func (b *Buffer) ReadI8() (int8, error) {
	v, err := b.ReadU8()
	return int8(v), err
}

// WriteU8 writes one byte and advances the cursor.
func (b *Buffer) WriteU8(v uint8) error {
	if err := b.requireWritable(1); err != nil {
		return err
	}
	b.data[b.pos] = v
	b.pos++
	return nil
}

// WriteI8 writes one signed byte and advances the cursor.
func (b *Buffer) WriteI8(v int8) error {
	return b.WriteU8(uint8(v))
}

// ReadU16LE reads a little-endian 16-bit value and advances the cursor.
func (b *Buffer) ReadU16LE() (uint16, error) {
	if err := b.requireReadable(2); err != nil {
		return 0, err
	}
	v := uint16(b.data[b.pos]) | uint16(b.data[b.pos+1])<<8
	b.pos += 2
	return v, nil
}

// PeekU16LE reads a little-endian 16-bit value without advancing the
// cursor.
func (b *Buffer) PeekU16LE() (uint16, error) {
	if err := b.requireReadable(2); err != nil {
		return 0, err
	}
	return uint16(b.data[b.pos]) | uint16(b.data[b.pos+1])<<8, nil
}

// ReadU16BE reads a big-endian 16-bit value and advances the cursor.
func (b *Buffer) ReadU16BE() (uint16, error) {
	if err := b.requireReadable(2); err != nil {
		return 0, err
	}
	v := uint16(b.data[b.pos])<<8 | uint16(b.data[b.pos+1])
	b.pos += 2
	return v, nil
}

// ReadI16LE reads a little-endian signed 16-bit value and advances the
// cursor.
func (b *Buffer) ReadI16LE() (int16, error) {
	v, err := b.ReadU16LE()
	return int16(v), err
}

// ReadI16BE reads a big-endian signed 16-bit value and advances the
// cursor.
func (b *Buffer) ReadI16BE() (int16, error) {
	v, err := b.ReadU16BE()
	return int16(v), err
}

// WriteU16LE writes a little-endian 16-bit value and advances the cursor.
func (b *Buffer) WriteU16LE(v uint16) error {
	if err := b.requireWritable(2); err != nil {
		return err
	}
	b.data[b.pos] = byte(v)
	b.data[b.pos+1] = byte(v >> 8)
	b.pos += 2
	return nil
}

// WriteU16BE writes a big-endian 16-bit value and advances the cursor.
func (b *Buffer) WriteU16BE(v uint16) error {
	if err := b.requireWritable(2); err != nil {
		return err
	}
	b.data[b.pos] = byte(v >> 8)
	b.data[b.pos+1] = byte(v)
	b.pos += 2
	return nil
}

// WriteI16LE writes a little-endian signed 16-bit value and advances the
// cursor.
func (b *Buffer) WriteI16LE(v int16) error {
	return b.WriteU16LE(uint16(v))
}

// WriteI16BE writes a big-endian signed 16-bit value and advances the
// cursor.
func (b *Buffer) WriteI16BE(v int16) error {
	return b.WriteU16BE(uint16(v))
}
