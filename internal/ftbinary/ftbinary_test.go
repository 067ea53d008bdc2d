package ftbinary

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeRaw(songCount int, pointers []uint16, flags []byte) []byte {
	data := make([]byte, headerSize+songCount*entrySize)
	binary.LittleEndian.PutUint16(data[0:2], uint16(songCount))
	for i := 0; i < songCount; i++ {
		off := headerSize + i*entrySize
		binary.LittleEndian.PutUint16(data[off:off+2], pointers[i])
		data[off+2] = flags[i]
	}
	return data
}

func TestRebaseShiftsPointersByDelta(t *testing.T) {
	raw := makeRaw(2, []uint16{0x8010, 0x8020}, []byte{0, 1})
	bin, err := New(raw, 0x8000, 5)
	require.NoError(t, err)

	require.NoError(t, bin.Rebase(0x9F00))

	off0 := headerSize
	off1 := headerSize + entrySize
	require.Equal(t, uint16(0x9F10), binary.LittleEndian.Uint16(bin.Bytes()[off0:off0+2]))
	require.Equal(t, uint16(0x9F20), binary.LittleEndian.Uint16(bin.Bytes()[off1:off1+2]))
}

func TestSwapSquareChannelsFlipsFlag(t *testing.T) {
	raw := makeRaw(1, []uint16{0x8010}, []byte{0})
	bin, err := New(raw, 0x8000, 5)
	require.NoError(t, err)

	require.NoError(t, bin.SwapSquareChannels(0))
	require.Equal(t, byte(1), bin.Bytes()[headerSize+2])

	require.NoError(t, bin.SwapSquareChannels(0))
	require.Equal(t, byte(0), bin.Bytes()[headerSize+2])
}

func TestRebaseToSameAddressIsNoOpLengthPreserving(t *testing.T) {
	raw := makeRaw(1, []uint16{0x8010}, []byte{0})
	original := append([]byte(nil), raw...)
	bin, err := New(raw, 0x8000, 5)
	require.NoError(t, err)

	require.NoError(t, bin.Rebase(0x8000))
	require.Equal(t, original, bin.Bytes())
	require.Len(t, bin.Bytes(), len(original))
}

func TestSwapSquareChannelsOutOfRangeSongNumber(t *testing.T) {
	raw := makeRaw(1, []uint16{0x8010}, []byte{0})
	bin, err := New(raw, 0x8000, 5)
	require.NoError(t, err)
	require.Error(t, bin.SwapSquareChannels(5))
}
