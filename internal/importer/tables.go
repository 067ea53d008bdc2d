package importer

import (
	"encoding/binary"
	"fmt"
	"sort"

	"trackerimport/internal/catalog"
	"trackerimport/internal/importerr"
	"trackerimport/internal/rom"
)

// SongMapInfo describes one named secondary map's ROM layout (spec.md
// §4.7).
type SongMapInfo struct {
	Name       string
	Offset     int
	Length     int
	EmptyIndex byte
}

// TableLayout is the system-wide (not per-engine) placement of the song
// map tables: one ROM carries one primary song map and one module
// address table regardless of how many engines share it (spec.md §6).
type TableLayout struct {
	NumSongs             int
	SongMapOffset        int
	SongModAddrTblOffset int
	SecondaryMaps        []SongMapInfo
}

// WritePrimarySongMap writes the primary song map at tables.SongMapOffset
// and the parallel module-address table at tables.SongModAddrTblOffset
// (spec.md §4.6). songMap holds every primary slot's assignment (nil
// meaning explicitly empty); moduleInfos resolves a Module-backed Song's
// placement (each slot's own song index is already recorded on its
// ImportedModuleInfo via SetSongIndex, so GetSongMapEntry needs no
// separate lookup table here). acc must support readback if any slot
// holds a builtin Song.
func WritePrimarySongMap(acc rom.Accessor, tables *TableLayout, songMap map[int]*catalog.Song, moduleInfos map[catalog.ModuleID]ImportedModuleInfo) error {
	addrTable := make([]byte, tables.NumSongs*2)

	for slot := 0; slot < tables.NumSongs; slot++ {
		song := songMap[slot]

		var bankByte, songByte byte
		var moduleAddr uint16

		switch {
		case song == nil:
			bankByte, songByte = 0, 0xFF
			moduleAddr = 0

		case song.IsBuiltin():
			original, err := acc.ROM()
			if err != nil {
				return importerr.Wrap(importerr.RomUnsupported, fmt.Sprintf("builtin song at primary slot %d requires ROM readback", slot), err)
			}
			off := tables.SongMapOffset + slot*2
			bankByte, songByte = original[off], original[off+1]
			moduleAddr = 0

		default:
			info, ok := moduleInfos[song.Module.ID()]
			if !ok {
				return importerr.Newf(importerr.RangeError, "primary slot %d: no ImportedModuleInfo for module %q", slot, song.Module.Title)
			}
			bankByte, songByte = info.GetSongMapEntry(slot)
			moduleAddr = uint16(info.Address())
		}

		if err := acc.WriteByte(tables.SongMapOffset+slot*2, bankByte, fmt.Sprintf("song map slot %d: bank byte", slot)); err != nil {
			return err
		}
		if err := acc.WriteByte(tables.SongMapOffset+slot*2+1, songByte, fmt.Sprintf("song map slot %d: song byte", slot)); err != nil {
			return err
		}

		binary.LittleEndian.PutUint16(addrTable[slot*2:slot*2+2], moduleAddr)
	}

	return acc.WriteBlock(tables.SongModAddrTblOffset, addrTable, "module address table")
}

// WriteSecondaryMap writes one named secondary map: each slot_in_map
// byte is the song's primary slot from songIndices, or info.EmptyIndex
// if the slot is empty or its song never received a primary slot
// (spec.md §4.7).
func WriteSecondaryMap(acc rom.Accessor, info SongMapInfo, entries map[int]*catalog.Song, songIndices map[catalog.SongID]int) error {
	buf := make([]byte, info.Length)
	for i := range buf {
		buf[i] = info.EmptyIndex
	}

	slots := make([]int, 0, len(entries))
	for slot := range entries {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	for _, slot := range slots {
		if slot < 0 || slot >= info.Length {
			return importerr.Newf(importerr.RangeError, "secondary map %q: slot %d out of bounds [0,%d)", info.Name, slot, info.Length)
		}
		song := entries[slot]
		if song == nil {
			buf[slot] = info.EmptyIndex
			continue
		}
		primarySlot, ok := songIndices[song.ID()]
		if !ok {
			buf[slot] = info.EmptyIndex
			continue
		}
		buf[slot] = byte(primarySlot)
	}

	return acc.WriteBlock(info.Offset, buf, fmt.Sprintf("secondary map %q", info.Name))
}
