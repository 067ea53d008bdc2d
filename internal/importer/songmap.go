// Package importer implements the packing and relocation core: it walks
// a caller-built song map, groups Songs by Module identity, packs each
// engine's modules into free bank space, and writes the resulting ROM
// tables through the rom.Accessor contract (spec.md §4).
package importer

import (
	"sort"

	"trackerimport/internal/catalog"
	"trackerimport/internal/importerr"
)

// SongIndexMap is the result of CreateSongIndexMap: where every Song
// ultimately lives (its assigned primary slot) and the primary-slot
// table that will be written to ROM.
type SongIndexMap struct {
	// SongIndices maps every Song (primary or secondary) to the primary
	// slot it was assigned, keyed by identity rather than value.
	SongIndices map[catalog.SongID]int

	// SongMap is the primary-slot table: slot -> Song, nil meaning
	// explicitly empty. It starts as a copy of primarySongs and gains
	// one entry per Module-backed secondary-only Song.
	SongMap map[int]*catalog.Song
}

// SecondaryMap is one named secondary map's raw slot assignments, used
// only to discover Songs that need a primary slot allocated — the byte
// layout itself is handled later by WriteSecondaryMap.
type SecondaryMap struct {
	Name    string
	Entries map[int]*catalog.Song
}

// CreateSongIndexMap assigns every Song a primary-slot index (spec.md
// §4.2). primarySongs is the caller's fixed slot -> Song? assignment;
// freeSlots is the pool of primary slots available for secondary-only,
// Module-backed Songs, consumed in descending numeric order.
//
// Builtin Songs are not checked against their original ROM slot: the
// caller must place a builtin Song only in the slot it already occupies,
// since WritePrimarySongMap copies whatever the ROM holds at the slot it
// is given.
func CreateSongIndexMap(primarySongs map[int]*catalog.Song, secondaryMaps []SecondaryMap, freeSlots []int) (*SongIndexMap, error) {
	songIndices := make(map[catalog.SongID]int, len(primarySongs))
	songMap := make(map[int]*catalog.Song, len(primarySongs))
	taken := make(map[int]bool, len(primarySongs))

	for slot, song := range primarySongs {
		songMap[slot] = song
		if song != nil {
			songIndices[song.ID()] = slot
			taken[slot] = true
		}
	}

	pool := make([]int, 0, len(freeSlots))
	for _, s := range freeSlots {
		if !taken[s] {
			pool = append(pool, s)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(pool)))
	nextFree := 0

	for _, sm := range secondaryMaps {
		slots := make([]int, 0, len(sm.Entries))
		for slot := range sm.Entries {
			slots = append(slots, slot)
		}
		sort.Ints(slots)

		for _, slot := range slots {
			song := sm.Entries[slot]
			if song == nil {
				continue
			}
			if _, already := songIndices[song.ID()]; already {
				continue
			}

			if song.Module == nil {
				songIndices[song.ID()] = song.Number
				continue
			}

			if nextFree >= len(pool) {
				return nil, importerr.Newf(importerr.OutOfSlots,
					"no free primary slot for module-backed song %q in secondary map %q", song.Title, sm.Name)
			}
			assigned := pool[nextFree]
			nextFree++
			songIndices[song.ID()] = assigned
			songMap[assigned] = song
		}
	}

	return &SongIndexMap{SongIndices: songIndices, SongMap: songMap}, nil
}
