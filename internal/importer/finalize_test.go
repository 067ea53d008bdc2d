package importer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trackerimport/internal/banklayout"
	"trackerimport/internal/rom"
)

// TestFinalizeBanksPreservesNonFreeBytes is scenario 6 from spec.md §8.
func TestFinalizeBanksPreservesNonFreeBytes(t *testing.T) {
	const bankSize = 0x2000
	layout, err := banklayout.New(0x8000, bankSize, []banklayout.Range{{Start: 0x100, End: 0x1000}}, 0, true)
	require.NoError(t, err)

	original := make([]byte, rom.HeaderOffset+bankSize)
	for i := range original {
		original[i] = byte(i)
	}
	acc := rom.NewMemAccessor(original)

	bank := banklayout.NewData(layout)
	// stage a placed module inside the free range; the rest starts zeroed.
	for i := 0x100; i < 0x300; i++ {
		bank.Bytes[i] = 0xAA
	}

	banks := map[int]*banklayout.Data{0: bank}
	require.NoError(t, FinalizeBanks(acc, layout, banks))

	out, err := acc.ROM()
	require.NoError(t, err)

	bankBase := rom.HeaderOffset
	require.Equal(t, original[bankBase:bankBase+0x100], out[bankBase:bankBase+0x100])
	require.Equal(t, original[bankBase+0x1000:bankBase+bankSize], out[bankBase+0x1000:bankBase+bankSize])

	for i := 0x100; i < 0x300; i++ {
		require.Equal(t, byte(0xAA), out[bankBase+i])
	}
}

func TestFinalizeBanksSkipsCopyWithoutSourceBank(t *testing.T) {
	layout, err := banklayout.New(0, 0x100, nil, 0, false)
	require.NoError(t, err)

	acc := rom.NewUnsupportedMemAccessor(rom.HeaderOffset + 0x100)
	bank := banklayout.NewData(layout)
	banks := map[int]*banklayout.Data{0: bank}

	require.NoError(t, FinalizeBanks(acc, layout, banks))
}
