package importer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trackerimport/internal/caseless"
	"trackerimport/internal/catalog"
)

func TestCreateSongIndexMapExplicitPrimarySlot(t *testing.T) {
	song := catalog.NewSong(0, catalog.NewModule("ft", "m", 0, []byte{1}), true, false, 0, caseless.Set{}, "A", "")

	idx, err := CreateSongIndexMap(map[int]*catalog.Song{7: song}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 7, idx.SongIndices[song.ID()])
	require.Same(t, song, idx.SongMap[7])
}

func TestCreateSongIndexMapAllocatesFromPoolDescending(t *testing.T) {
	module := catalog.NewModule("ft", "m", 0, []byte{1})
	a := catalog.NewSong(0, module, true, false, 0, caseless.Set{}, "A", "")
	b := catalog.NewSong(1, module, true, false, 0, caseless.Set{}, "B", "")

	secondary := []SecondaryMap{{Name: "boss", Entries: map[int]*catalog.Song{0: a, 1: b}}}
	idx, err := CreateSongIndexMap(nil, secondary, []int{3, 5, 9})
	require.NoError(t, err)

	// descending order: a (discovered first, slot_in_map 0) gets the
	// largest free slot, b gets the next largest.
	require.Equal(t, 9, idx.SongIndices[a.ID()])
	require.Equal(t, 5, idx.SongIndices[b.ID()])
	require.Same(t, a, idx.SongMap[9])
	require.Same(t, b, idx.SongMap[5])
}

func TestCreateSongIndexMapBuiltinSecondaryUsesSongNumber(t *testing.T) {
	builtin := catalog.NewSong(4, nil, true, false, 0, caseless.Set{}, "Builtin", "")

	secondary := []SecondaryMap{{Name: "jingles", Entries: map[int]*catalog.Song{0: builtin}}}
	idx, err := CreateSongIndexMap(nil, secondary, []int{0, 1})
	require.NoError(t, err)

	require.Equal(t, 4, idx.SongIndices[builtin.ID()])
	_, inSongMap := idx.SongMap[4]
	require.False(t, inSongMap)
}

func TestCreateSongIndexMapOutOfSlotsFails(t *testing.T) {
	module := catalog.NewModule("ft", "m", 0, []byte{1})
	a := catalog.NewSong(0, module, true, false, 0, caseless.Set{}, "A", "")
	b := catalog.NewSong(1, module, true, false, 0, caseless.Set{}, "B", "")

	secondary := []SecondaryMap{{Name: "boss", Entries: map[int]*catalog.Song{0: a, 1: b}}}
	_, err := CreateSongIndexMap(nil, secondary, []int{3})
	require.Error(t, err)
}

func TestCreateSongIndexMapKeepsPrimarySlotForSongAlsoInSecondary(t *testing.T) {
	module := catalog.NewModule("ft", "m", 0, []byte{1})
	a := catalog.NewSong(0, module, true, false, 0, caseless.Set{}, "A", "")

	primary := map[int]*catalog.Song{5: a}
	secondary := []SecondaryMap{{Name: "boss", Entries: map[int]*catalog.Song{0: a}}}

	idx, err := CreateSongIndexMap(primary, secondary, []int{5, 9})
	require.NoError(t, err)
	require.Equal(t, 5, idx.SongIndices[a.ID()])
}
