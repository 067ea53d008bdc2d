// Package catalog holds the song/module data model: the immutable
// Module and Song value objects, and the library JSON schema they are
// built from (spec §3, §6).
package catalog

import (
	"sync/atomic"

	"trackerimport/internal/caseless"
)

// ModuleID is a dense identity handle assigned at construction. Two
// Modules built from byte-identical RawBytes still get distinct IDs, so
// maps/sets keyed on ModuleID respect object identity rather than
// structural equality (spec §9).
type ModuleID uint64

var nextModuleID uint64

func newModuleID() ModuleID {
	return ModuleID(atomic.AddUint64(&nextModuleID, 1))
}

// Module is an immutable, self-contained block of music data consumed by
// one engine, possibly containing multiple songs.
type Module struct {
	id ModuleID

	// Engine is a case-insensitive label, e.g. "ft".
	Engine string
	Title  string

	// BaseAddress is where RawBytes expect to be loaded.
	BaseAddress uint16

	// RawBytes is the module's on-disk bytes, never mutated after
	// construction; Module.Image returns copies to callers.
	RawBytes []byte
}

// NewModule builds a Module, copying rawBytes so later mutation of the
// caller's slice cannot reach into the Module.
func NewModule(engine, title string, baseAddress uint16, rawBytes []byte) *Module {
	raw := make([]byte, len(rawBytes))
	copy(raw, rawBytes)
	return &Module{
		id:          newModuleID(),
		Engine:      engine,
		Title:       title,
		BaseAddress: baseAddress,
		RawBytes:    raw,
	}
}

// ID returns the Module's identity handle.
func (m *Module) ID() ModuleID {
	return m.id
}

// Size returns the number of bytes the module occupies.
func (m *Module) Size() int {
	return len(m.RawBytes)
}

// EngineEquals reports whether the module's engine label matches other,
// case-insensitively.
func (m *Module) EngineEquals(other string) bool {
	return caseless.Equal(m.Engine, other)
}

// Image returns a defensive copy of the module's raw bytes, for callers
// that need to mutate a working copy (e.g. the rebase transform).
func (m *Module) Image() []byte {
	out := make([]byte, len(m.RawBytes))
	copy(out, m.RawBytes)
	return out
}
