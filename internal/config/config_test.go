package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleTOML = `
num_songs = 8
song_map_offset = 0x0000
song_mod_addr_tbl_offset = 0x0010

[[secondary_maps]]
name = "boss"
offset = 0x5000
length = 4
empty_index = 0xFF

[[engines]]
name = "ft"
bank_base_addr = 0x8000
bank_size = 0x2000
channel_count = 5
[[engines.free_ranges]]
start = 0
end = 0x2000
`

func TestLoadDecodesProfile(t *testing.T) {
	p, err := Load([]byte(sampleTOML))
	require.NoError(t, err)
	require.Equal(t, 8, p.NumSongs)
	require.Len(t, p.SecondaryMaps, 1)
	require.Equal(t, "boss", p.SecondaryMaps[0].Name)
	require.Len(t, p.Engines, 1)
	require.Equal(t, "ft", p.Engines[0].Name)
	require.Len(t, p.Engines[0].FreeRanges, 1)
}

func TestBuildImporterRegistersFtProfile(t *testing.T) {
	p, err := Load([]byte(sampleTOML))
	require.NoError(t, err)

	im, err := p.BuildImporter()
	require.NoError(t, err)
	require.Contains(t, im.Profiles, "ft")
}

func TestNewModuleInfoFactoryRejectsUnknownEngine(t *testing.T) {
	_, err := NewModuleInfoFactory(EngineConfig{Name: "bogus"})
	require.Error(t, err)
}
