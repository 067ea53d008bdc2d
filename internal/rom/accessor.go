// Package rom defines the ROM Access contract the import core patches
// against, and a little-endian cursor helper (Buffer).
package rom

import (
	"trackerimport/internal/importerr"
)

// HeaderOffset is the fixed header size preceding bank 0 in a raw ROM
// file; every bank write is adjusted by this amount (spec §4.8, §6).
const HeaderOffset = 16

// Accessor is the ROM Access contract: a minimal read/write surface the
// core patches against. Implementations decide how bytes reach the
// underlying medium (file, in-memory buffer, network, ...).
type Accessor interface {
	// ROM returns a snapshot of the ROM reflecting every prior write.
	// Implementations that cannot provide readback return an
	// importerr.RomUnsupported error.
	ROM() ([]byte, error)

	// WriteByte writes a single byte at offset. comment is an advisory
	// debug annotation and may be ignored by the implementation.
	WriteByte(offset int, b byte, comment string) error

	// WriteBlock writes data starting at offset; offset+len(data) must
	// not exceed the ROM size. comment is an advisory debug annotation.
	WriteBlock(offset int, data []byte, comment string) error
}

// MemAccessor is an in-memory Accessor. It backs tests and the CLI, which
// loads a whole ROM file into memory before patching it.
type MemAccessor struct {
	data        []byte
	unsupported bool

	// Comments records every comment passed to WriteByte/WriteBlock, in
	// order, for test assertions.
	Comments []string
}

// NewMemAccessor copies data into a new MemAccessor with readback
// enabled.
func NewMemAccessor(data []byte) *MemAccessor {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &MemAccessor{data: cp}
}

// NewUnsupportedMemAccessor builds a size-byte MemAccessor whose ROM
// method always fails, simulating an Accessor that cannot snapshot its
// backing medium.
func NewUnsupportedMemAccessor(size int) *MemAccessor {
	return &MemAccessor{data: make([]byte, size), unsupported: true}
}

// ROM implements Accessor.
func (m *MemAccessor) ROM() ([]byte, error) {
	if m.unsupported {
		return nil, importerr.New(importerr.RomUnsupported, "rom: readback unsupported")
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

// WriteByte implements Accessor.
func (m *MemAccessor) WriteByte(offset int, b byte, comment string) error {
	if offset < 0 || offset >= len(m.data) {
		return importerr.Newf(importerr.Overflow, "write_byte offset %d out of range (size %d)", offset, len(m.data))
	}
	m.data[offset] = b
	m.Comments = append(m.Comments, comment)
	return nil
}

// WriteBlock implements Accessor.
func (m *MemAccessor) WriteBlock(offset int, data []byte, comment string) error {
	if offset < 0 || offset+len(data) > len(m.data) {
		return importerr.Newf(importerr.Overflow, "write_block [%d:%d) out of range (size %d)", offset, offset+len(data), len(m.data))
	}
	copy(m.data[offset:offset+len(data)], data)
	m.Comments = append(m.Comments, comment)
	return nil
}
