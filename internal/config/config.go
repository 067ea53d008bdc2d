// Package config loads the TOML profile describing one ROM's song-map
// table layout and per-engine bank geometry (SPEC_FULL's Ambient Stack:
// Configuration). The teacher carries no general config loader of its
// own — only a devkit JSON prefs file — so this is new, built the way
// ROM-hacking tool configs in this genre are usually expressed: TOML
// key/value plus arrays-of-tables for the repeating engine/secondary-map
// sections.
package config

import (
	"github.com/BurntSushi/toml"

	"trackerimport/internal/banklayout"
	"trackerimport/internal/importer"
)

// ByteRange is a TOML-friendly [start, end) pair, mirroring
// banklayout.Range.
type ByteRange struct {
	Start int `toml:"start"`
	End   int `toml:"end"`
}

// SecondaryMapConfig is one named secondary map's ROM layout.
type SecondaryMapConfig struct {
	Name       string `toml:"name"`
	Offset     int    `toml:"offset"`
	Length     int    `toml:"length"`
	EmptyIndex int    `toml:"empty_index"`
}

// EngineConfig is one engine's bank geometry and, for engines that need
// it, engine-specific tuning (FamiTracker's declared channel count).
type EngineConfig struct {
	Name         string      `toml:"name"`
	BankBaseAddr int         `toml:"bank_base_addr"`
	BankSize     int         `toml:"bank_size"`
	FreeRanges   []ByteRange `toml:"free_ranges"`
	SourceBank   *int        `toml:"source_bank"`

	// ChannelCount is the FamiTracker declared channel count passed to
	// ftbinary.New; unused by engines other than "ft".
	ChannelCount int `toml:"channel_count"`

	MinKeepableRemainder int `toml:"min_keepable_remainder"`
}

// Profile is the full decoded profiles.toml document: the system-wide
// song-map table layout plus every engine this ROM may reference.
type Profile struct {
	NumSongs             int                  `toml:"num_songs"`
	SongMapOffset        int                  `toml:"song_map_offset"`
	SongModAddrTblOffset int                  `toml:"song_mod_addr_tbl_offset"`
	SecondaryMaps        []SecondaryMapConfig `toml:"secondary_maps"`
	Engines              []EngineConfig       `toml:"engines"`
}

// Load decodes a profiles.toml document.
func Load(data []byte) (*Profile, error) {
	var p Profile
	if _, err := toml.Decode(string(data), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// NewModuleInfoFactory resolves the ModuleInfoFactory for one engine
// config. "ft" is the only engine this importer's closed variant set
// supports (spec.md §9 "prefer a closed set of variants"); new engines
// gain a new case here and a new ImportedModuleInfo type in
// internal/importer.
func NewModuleInfoFactory(engine EngineConfig) (importer.ModuleInfoFactory, error) {
	switch engine.Name {
	case "ft":
		return importer.NewFtModuleInfo(engine.ChannelCount), nil
	default:
		return nil, &UnknownEngineError{Engine: engine.Name}
	}
}

// UnknownEngineError reports a profiles.toml engine entry this build has
// no ImportedModuleInfo variant for.
type UnknownEngineError struct {
	Engine string
}

func (e *UnknownEngineError) Error() string {
	return "config: no ImportedModuleInfo variant registered for engine " + e.Engine
}

// BuildImporter turns a decoded Profile into a ready-to-use
// *importer.Importer, with one EngineProfile registered per configured
// engine.
func (p *Profile) BuildImporter() (*importer.Importer, error) {
	tables := importer.TableLayout{
		NumSongs:             p.NumSongs,
		SongMapOffset:        p.SongMapOffset,
		SongModAddrTblOffset: p.SongModAddrTblOffset,
	}
	for _, sm := range p.SecondaryMaps {
		tables.SecondaryMaps = append(tables.SecondaryMaps, importer.SongMapInfo{
			Name:       sm.Name,
			Offset:     sm.Offset,
			Length:     sm.Length,
			EmptyIndex: byte(sm.EmptyIndex),
		})
	}

	im := importer.New(tables)

	for _, ec := range p.Engines {
		free := make([]banklayout.Range, len(ec.FreeRanges))
		for i, fr := range ec.FreeRanges {
			free[i] = banklayout.Range{Start: fr.Start, End: fr.End}
		}

		hasSourceBank := ec.SourceBank != nil
		sourceBank := 0
		if hasSourceBank {
			sourceBank = *ec.SourceBank
		}

		layout, err := banklayout.New(ec.BankBaseAddr, ec.BankSize, free, sourceBank, hasSourceBank)
		if err != nil {
			return nil, err
		}

		factory, err := NewModuleInfoFactory(ec)
		if err != nil {
			return nil, err
		}

		im.AddProfile(&importer.EngineProfile{
			Name:                 ec.Name,
			Layout:               layout,
			NewModuleInfo:        factory,
			MinKeepableRemainder: ec.MinKeepableRemainder,
		})
	}

	return im, nil
}
