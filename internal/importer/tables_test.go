package importer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trackerimport/internal/caseless"
	"trackerimport/internal/catalog"
	"trackerimport/internal/rom"
)

// TestWritePrimarySongMapEmptySlot is scenario 1 from spec.md §8.
func TestWritePrimarySongMapEmptySlot(t *testing.T) {
	tables := &TableLayout{NumSongs: 1, SongMapOffset: 0x100, SongModAddrTblOffset: 0x200}
	acc := rom.NewMemAccessor(make([]byte, 0x300))

	err := WritePrimarySongMap(acc, tables, map[int]*catalog.Song{0: nil}, nil)
	require.NoError(t, err)

	out, err := acc.ROM()
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xFF}, out[0x100:0x102])
	require.Equal(t, []byte{0x00, 0x00}, out[0x200:0x202])
}

// TestWritePrimarySongMapModuleBackedEntry is scenario 2's table-writing
// half: a module placed at bank 0, address 0x9F00 fills slot 7 with
// (0xFF, song_byte) and module address 0x9F00 little-endian.
func TestWritePrimarySongMapModuleBackedEntry(t *testing.T) {
	tables := &TableLayout{NumSongs: 8, SongMapOffset: 0x000, SongModAddrTblOffset: 0x100}
	acc := rom.NewMemAccessor(make([]byte, 0x200))

	module := catalog.NewModule("ft", "m", 0x8001, make([]byte, 0x100))
	info := NewFtModuleInfo(5)(module).(*FtModuleInfo)
	info.SetPlacement(0, 0x9F00)
	info.SetSongIndex(7, 0)

	song := catalog.NewSong(0, module, true, false, 0, caseless.Set{}, "S", "")
	songMap := map[int]*catalog.Song{7: song}
	moduleInfos := map[catalog.ModuleID]ImportedModuleInfo{module.ID(): info}

	require.NoError(t, WritePrimarySongMap(acc, tables, songMap, moduleInfos))

	out, err := acc.ROM()
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0x00}, out[0x000+7*2:0x000+7*2+2])
	require.Equal(t, []byte{0x00, 0x9F}, out[0x100+7*2:0x100+7*2+2])
}

func TestWritePrimarySongMapBuiltinPreservesOriginalBytes(t *testing.T) {
	tables := &TableLayout{NumSongs: 2, SongMapOffset: 0x000, SongModAddrTblOffset: 0x100}
	seed := make([]byte, 0x200)
	seed[2] = 0x05
	seed[3] = 0x09
	acc := rom.NewMemAccessor(seed)

	builtin := catalog.NewSong(1, nil, true, false, 0, caseless.Set{}, "Builtin", "")
	songMap := map[int]*catalog.Song{1: builtin}

	require.NoError(t, WritePrimarySongMap(acc, tables, songMap, nil))

	out, err := acc.ROM()
	require.NoError(t, err)
	require.Equal(t, []byte{0x05, 0x09}, out[2:4])
}

func TestWritePrimarySongMapBuiltinFailsWithoutReadback(t *testing.T) {
	tables := &TableLayout{NumSongs: 2, SongMapOffset: 0x000, SongModAddrTblOffset: 0x100}
	acc := rom.NewUnsupportedMemAccessor(0x200)

	builtin := catalog.NewSong(1, nil, true, false, 0, caseless.Set{}, "Builtin", "")
	songMap := map[int]*catalog.Song{1: builtin}

	err := WritePrimarySongMap(acc, tables, songMap, nil)
	require.Error(t, err)
}

// TestWriteSecondaryMap is scenario 5 from spec.md §8.
func TestWriteSecondaryMap(t *testing.T) {
	module := catalog.NewModule("ft", "m", 0, []byte{1})
	songA := catalog.NewSong(0, module, true, false, 0, caseless.Set{}, "A", "")
	songB := catalog.NewSong(0, module, true, false, 0, caseless.Set{}, "B", "")

	info := SongMapInfo{Name: "boss", Offset: 0x5000, Length: 4, EmptyIndex: 0xFF}
	entries := map[int]*catalog.Song{0: songA, 1: nil, 2: songB, 3: songA}
	songIndices := map[catalog.SongID]int{songA.ID(): 3, songB.ID(): 5}

	acc := rom.NewMemAccessor(make([]byte, 0x5010))
	require.NoError(t, WriteSecondaryMap(acc, info, entries, songIndices))

	out, err := acc.ROM()
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 0xFF, 0x05, 0x03}, out[0x5000:0x5004])
}
