package importer

import (
	"sort"

	"trackerimport/internal/banklayout"
	"trackerimport/internal/caseless"
	"trackerimport/internal/catalog"
	"trackerimport/internal/importerr"
	"trackerimport/internal/importlog"
	"trackerimport/internal/rom"
)

// Importer ties the song index map, per-engine packers, and table
// writers into one import run (spec.md §2). One Importer handles one
// ROM: it owns the system-wide TableLayout and one EngineProfile per
// engine present in the library being imported.
type Importer struct {
	Tables   TableLayout
	Profiles map[string]*EngineProfile

	packer *Packer
	log    importlog.Stack
}

// New builds an Importer with the given table layout and no engine
// profiles; call AddProfile for each engine the library may reference.
func New(tables TableLayout) *Importer {
	return &Importer{Tables: tables, Profiles: make(map[string]*EngineProfile)}
}

// AddProfile registers profile, keyed by its (case-folded) engine name.
func (im *Importer) AddProfile(profile *EngineProfile) {
	im.Profiles[caseless.Normalize(profile.Name)] = profile
}

// PushSink installs sink as the new top of the log sink stack.
func (im *Importer) PushSink(sink importlog.Sink) { im.log.Push(sink) }

// PopSink removes the top of the log sink stack.
func (im *Importer) PopSink() { im.log.Pop() }

// Request bundles one import run's caller-supplied inputs: the explicit
// primary-slot assignment, any named secondary maps to resolve alongside
// it, the pool of primary slots available for secondary-only songs, the
// pool of ROM banks not yet claimed by any engine, and the target
// primary square channel every placed module is normalized to.
type Request struct {
	PrimarySongs         map[int]*catalog.Song
	SecondaryMaps        []SecondaryMap
	FreeSlots            []int
	FreeBanks            []int
	PrimarySquareChannel int
}

// Import runs one full import: builds the song index map, groups Songs
// by Module per engine, packs each engine's modules into free bank
// space, writes the primary and secondary song maps, and finalizes every
// touched bank (spec.md §4.2-§4.8). acc receives every write; on error
// the caller must discard whatever acc has already received (spec.md
// §7 — there is no partial-commit recovery). On success it returns every
// Module's final placement, keyed by Module identity, for callers that
// want a placement report (internal/report).
func (im *Importer) Import(acc rom.Accessor, req Request) (map[catalog.ModuleID]ImportedModuleInfo, error) {
	idx, err := CreateSongIndexMap(req.PrimarySongs, req.SecondaryMaps, req.FreeSlots)
	if err != nil {
		return nil, err
	}

	byEngine := im.groupSongMapByEngine(idx.SongMap)

	im.packer = NewPacker(req.FreeBanks)
	allModuleInfos := make(map[catalog.ModuleID]ImportedModuleInfo)

	engines := make([]string, 0, len(byEngine))
	for engine := range byEngine {
		engines = append(engines, engine)
	}
	sort.Strings(engines)

	for _, engine := range engines {
		profile, ok := im.Profiles[engine]
		if !ok {
			return nil, importerr.Newf(importerr.InvalidLayout, "no engine profile registered for %q", engine)
		}

		moduleInfos := CreateImportedModuleInfos(byEngine[engine], profile.NewModuleInfo)
		infos := make([]ImportedModuleInfo, 0, len(moduleInfos))
		for id, info := range moduleInfos {
			infos = append(infos, info)
			allModuleInfos[id] = info
		}

		var freeRngs []banklayout.BankRange
		if err := im.packer.ImportEngineModules(profile, infos, &freeRngs, req.PrimarySquareChannel, &im.log); err != nil {
			return nil, err
		}
	}

	if err := WritePrimarySongMap(acc, &im.Tables, idx.SongMap, allModuleInfos); err != nil {
		return nil, err
	}
	im.log.Log(importlog.LevelInfo, "wrote primary song map at 0x%04X", im.Tables.SongMapOffset)

	for _, sm := range req.SecondaryMaps {
		info, ok := im.findSecondaryMapInfo(sm.Name)
		if !ok {
			return nil, importerr.Newf(importerr.InvalidLayout, "no SongMapInfo registered for secondary map %q", sm.Name)
		}
		if err := WriteSecondaryMap(acc, info, sm.Entries, idx.SongIndices); err != nil {
			return nil, err
		}
		im.log.Log(importlog.LevelInfo, "wrote secondary map %q at 0x%04X", sm.Name, info.Offset)
	}

	for _, engine := range engines {
		profile := im.Profiles[engine]
		if err := FinalizeBanks(acc, profile.Layout, im.packer.Banks); err != nil {
			return nil, err
		}
	}

	return allModuleInfos, nil
}

func (im *Importer) findSecondaryMapInfo(name string) (SongMapInfo, bool) {
	for _, info := range im.Tables.SecondaryMaps {
		if caseless.Equal(info.Name, name) {
			return info, true
		}
	}
	return SongMapInfo{}, false
}

// groupSongMapByEngine partitions songMap's Module-backed entries by
// their Module's (case-folded) engine label, preserving slot -> Song
// pairs so CreateImportedModuleInfos can still walk them in slot order.
func (im *Importer) groupSongMapByEngine(songMap map[int]*catalog.Song) map[string]map[int]*catalog.Song {
	out := make(map[string]map[int]*catalog.Song)
	for slot, song := range songMap {
		if song == nil || song.Module == nil {
			continue
		}
		engine := caseless.Normalize(song.Module.Engine)
		if out[engine] == nil {
			out[engine] = make(map[int]*catalog.Song)
		}
		out[engine][slot] = song
	}
	return out
}
