package importer

import (
	"sort"

	"trackerimport/internal/catalog"
)

// ImportedModuleInfo is the variant/trait spec.md §9 calls for: one
// engine-specific implementation per Module, with a single required
// operation (GetData) and one overridable operation (GetSongMapEntry).
// New engines add a new concrete type plus a case in
// config.NewModuleInfoFactory, the switch that selects a variant by
// engine name.
type ImportedModuleInfo interface {
	Module() *catalog.Module
	Songs() []*catalog.Song
	AddSong(s *catalog.Song)

	Bank() int
	Address() int
	SetPlacement(bank, address int)

	SongIndices() map[int]int
	SetSongIndex(slot, moduleSongNumber int)

	// GetData returns the relocated, channel-swapped binary image ready
	// to be copied into a bank's staging buffer (spec.md §4.5).
	GetData(address uint16, primarySquareChannel int) ([]byte, error)

	// GetSongMapEntry returns the (bank_byte, song_byte) pair written
	// into the primary song map for the given primary slot (spec.md
	// §4.5, §4.6).
	GetSongMapEntry(primarySlot int) (bankByte, songByte byte)
}

// baseModuleInfo carries the bookkeeping shared by every engine variant:
// the Module it wraps, the Songs drawn from it, and where the packer
// ultimately placed it. Bank and Address are -1 until SetPlacement runs.
type baseModuleInfo struct {
	module      *catalog.Module
	songs       map[catalog.SongID]*catalog.Song
	bank        int
	address     int
	songIndices map[int]int
}

func newBaseModuleInfo(m *catalog.Module) baseModuleInfo {
	return baseModuleInfo{
		module:      m,
		songs:       make(map[catalog.SongID]*catalog.Song),
		bank:        -1,
		address:     -1,
		songIndices: make(map[int]int),
	}
}

func (b *baseModuleInfo) Module() *catalog.Module { return b.module }

func (b *baseModuleInfo) AddSong(s *catalog.Song) { b.songs[s.ID()] = s }

// Songs returns the imported Songs in a stable order (ascending Song
// number), for deterministic channel-swap iteration in GetData.
func (b *baseModuleInfo) Songs() []*catalog.Song {
	out := make([]*catalog.Song, 0, len(b.songs))
	for _, s := range b.songs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (b *baseModuleInfo) Bank() int    { return b.bank }
func (b *baseModuleInfo) Address() int { return b.address }

func (b *baseModuleInfo) SetPlacement(bank, address int) {
	b.bank = bank
	b.address = address
}

func (b *baseModuleInfo) SongIndices() map[int]int { return b.songIndices }

func (b *baseModuleInfo) SetSongIndex(slot, moduleSongNumber int) {
	b.songIndices[slot] = moduleSongNumber
}

// ModuleInfoFactory builds the engine-specific ImportedModuleInfo for a
// Module. The Importer holds one factory per engine, selected by the
// Module's (case-folded) Engine label.
type ModuleInfoFactory func(*catalog.Module) ImportedModuleInfo

// CreateImportedModuleInfos walks songMap and groups Songs by Module
// identity (spec.md §4.3). newInfo constructs a fresh ImportedModuleInfo
// the first time a given Module is encountered.
func CreateImportedModuleInfos(songMap map[int]*catalog.Song, newInfo ModuleInfoFactory) map[catalog.ModuleID]ImportedModuleInfo {
	infos := make(map[catalog.ModuleID]ImportedModuleInfo)

	slots := make([]int, 0, len(songMap))
	for slot := range songMap {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	for _, slot := range slots {
		song := songMap[slot]
		if song == nil || song.Module == nil {
			continue
		}

		info, ok := infos[song.Module.ID()]
		if !ok {
			info = newInfo(song.Module)
			infos[song.Module.ID()] = info
		}
		info.AddSong(song)
		info.SetSongIndex(slot, song.Number)
	}

	return infos
}
