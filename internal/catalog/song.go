package catalog

import (
	"sync/atomic"

	"trackerimport/internal/caseless"
)

// SongID is a dense identity handle, parallel to ModuleID (spec §9).
type SongID uint64

var nextSongID uint64

func newSongID() SongID {
	return SongID(atomic.AddUint64(&nextSongID, 1))
}

// Song is an immutable per-import-run value. A nil Module means the song
// is builtin: the ROM already contains it (spec §3).
type Song struct {
	id SongID

	// Number is the song's index within its Module, 0 if the module has
	// only one song.
	Number int

	// Module is a non-owning reference; nil means builtin.
	Module *Module

	Enabled              bool
	StreamingSafe        bool
	PrimarySquareChannel int
	Uses                 caseless.Set
	Title                string
	Author               string
}

// NewSong constructs a Song with a fresh identity.
func NewSong(number int, module *Module, enabled, streamingSafe bool, primarySquareChannel int, uses caseless.Set, title, author string) *Song {
	return &Song{
		id:                   newSongID(),
		Number:               number,
		Module:               module,
		Enabled:              enabled,
		StreamingSafe:        streamingSafe,
		PrimarySquareChannel: primarySquareChannel,
		Uses:                 uses,
		Title:                title,
		Author:               author,
	}
}

// ID returns the Song's identity handle.
func (s *Song) ID() SongID {
	return s.id
}

// IsBuiltin reports whether the song has no associated Module, i.e. it
// already exists in the ROM.
func (s *Song) IsBuiltin() bool {
	return s.Module == nil
}
