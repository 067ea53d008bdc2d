package catalog

import (
	"bytes"
	"encoding/json"

	"trackerimport/internal/caseless"
	"trackerimport/internal/importerr"
)

// Library is the JSON root (spec §6): a flat list of standalone files
// plus named groups of files that share defaults.
type Library struct {
	Single []FileInfo  `json:"single"`
	Groups []GroupInfo `json:"groups"`
}

// GroupInfo groups FileInfos under shared defaults.
type GroupInfo struct {
	Title             string   `json:"title"`
	Enabled           *bool    `json:"enabled,omitempty"`
	StreamingSafe     *bool    `json:"streaming_safe,omitempty"`
	PrimarySquareChan *int     `json:"primary_square_chan,omitempty"`
	Uses              []string `json:"uses,omitempty"`
	Items             []FileInfo `json:"items"`
}

// FileInfo describes one module file: its payload and, for multi-song
// modules, the songs within it.
type FileInfo struct {
	Title             string     `json:"title"`
	Author            string     `json:"author,omitempty"`
	Enabled           *bool      `json:"enabled,omitempty"`
	StreamingSafe     *bool      `json:"streaming_safe,omitempty"`
	PrimarySquareChan *int       `json:"primary_square_chan,omitempty"`
	Uses              []string   `json:"uses,omitempty"`
	StartAddr         *HexUint16 `json:"start_addr,omitempty"`
	Data              string     `json:"data"`
	Songs             []SongInfo `json:"songs,omitempty"`
}

// SongInfo describes one song within a multi-song FileInfo.
type SongInfo struct {
	Number            int      `json:"number"`
	Title             string   `json:"title,omitempty"`
	Author            string   `json:"author,omitempty"`
	Enabled           *bool    `json:"enabled,omitempty"`
	StreamingSafe     *bool    `json:"streaming_safe,omitempty"`
	PrimarySquareChan *int     `json:"primary_square_chan,omitempty"`
	Uses              []string `json:"uses,omitempty"`
}

// BuildOptions controls how a Library JSON document is turned into a
// Catalog.
type BuildOptions struct {
	// Engine is assigned to every Module built from this library. The
	// JSON schema (spec §6) carries no per-file engine field, so the
	// caller supplies it for the whole library — in practice one
	// library document per target engine.
	Engine string

	// StrictUnknownFields rejects documents with fields not named in
	// the schema (spec §6's "caller may opt to reject (strict) or
	// ignore").
	StrictUnknownFields bool
}

// Catalog is the flattened result of loading a Library: every Module and
// every Song it describes.
type Catalog struct {
	Modules []*Module
	Songs   []*Song
}

// Load deserializes a library JSON document into a Catalog.
func Load(data []byte, opts BuildOptions) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if opts.StrictUnknownFields {
		dec.DisallowUnknownFields()
	}

	var lib Library
	if err := dec.Decode(&lib); err != nil {
		return nil, importerr.Wrap(importerr.MalformedLibrary, "library JSON decode failed", err)
	}

	cat := &Catalog{}
	for _, fi := range lib.Single {
		if err := buildFile(cat, fi, opts.Engine, nil); err != nil {
			return nil, err
		}
	}
	for gi := range lib.Groups {
		g := &lib.Groups[gi]
		for _, fi := range g.Items {
			if err := buildFile(cat, fi, opts.Engine, g); err != nil {
				return nil, err
			}
		}
	}
	return cat, nil
}

func buildFile(cat *Catalog, fi FileInfo, engine string, group *GroupInfo) error {
	raw, err := decodePayload(fi.Data)
	if err != nil {
		return err
	}

	var startAddr uint16
	if fi.StartAddr != nil {
		startAddr = uint16(*fi.StartAddr)
	}

	module := NewModule(engine, fi.Title, startAddr, raw)
	cat.Modules = append(cat.Modules, module)

	var groupEnabled, groupStreamingSafe *bool
	var groupPrimaryInt *int
	var groupUses []string
	if group != nil {
		groupEnabled = group.Enabled
		groupStreamingSafe = group.StreamingSafe
		groupPrimaryInt = group.PrimarySquareChan
		groupUses = group.Uses
	}

	if len(fi.Songs) == 0 {
		song := NewSong(
			0,
			module,
			resolveBool(nil, fi.Enabled, groupEnabled, true),
			resolveBool(nil, fi.StreamingSafe, groupStreamingSafe, false),
			resolveInt(nil, fi.PrimarySquareChan, groupPrimaryInt, 0),
			resolveUses(nil, fi.Uses, groupUses),
			fi.Title,
			fi.Author,
		)
		cat.Songs = append(cat.Songs, song)
		return nil
	}

	for _, si := range fi.Songs {
		song := NewSong(
			si.Number,
			module,
			resolveBool(si.Enabled, fi.Enabled, groupEnabled, true),
			resolveBool(si.StreamingSafe, fi.StreamingSafe, groupStreamingSafe, false),
			resolveInt(si.PrimarySquareChan, fi.PrimarySquareChan, groupPrimaryInt, 0),
			resolveUses(si.Uses, fi.Uses, groupUses),
			resolveString(si.Title, fi.Title, ""),
			resolveString(si.Author, fi.Author, ""),
		)
		cat.Songs = append(cat.Songs, song)
	}
	return nil
}

func resolveBool(song, file, group *bool, def bool) bool {
	if song != nil {
		return *song
	}
	if file != nil {
		return *file
	}
	if group != nil {
		return *group
	}
	return def
}

func resolveInt(song, file, group *int, def int) int {
	if song != nil {
		return *song
	}
	if file != nil {
		return *file
	}
	if group != nil {
		return *group
	}
	return def
}

func resolveString(song, file, def string) string {
	if song != "" {
		return song
	}
	if file != "" {
		return file
	}
	return def
}

func resolveUses(song, file, group []string) caseless.Set {
	if len(song) > 0 {
		return caseless.NewSet(song...)
	}
	if len(file) > 0 {
		return caseless.NewSet(file...)
	}
	if len(group) > 0 {
		return caseless.NewSet(group...)
	}
	return caseless.Set{}
}
