package importer

import (
	"trackerimport/internal/catalog"
	"trackerimport/internal/ftbinary"
	"trackerimport/internal/importerr"
)

// FtModuleInfo is the ImportedModuleInfo variant for the "ft" (FamiTracker)
// engine (spec.md §4.5).
type FtModuleInfo struct {
	baseModuleInfo
	ChannelCount int
}

// NewFtModuleInfo is a ModuleInfoFactory for the "ft" engine.
func NewFtModuleInfo(channelCount int) ModuleInfoFactory {
	return func(m *catalog.Module) ImportedModuleInfo {
		return &FtModuleInfo{baseModuleInfo: newBaseModuleInfo(m), ChannelCount: channelCount}
	}
}

// GetData copies the module's raw bytes, flips the channel order for any
// imported Song that disagrees with primarySquareChannel, rebases if the
// assigned address differs from the module's declared base, and returns
// the mutated image. The Module's own RawBytes are never touched —
// Module.Image returns a defensive copy (spec.md §4.5, scenario 4).
func (f *FtModuleInfo) GetData(address uint16, primarySquareChannel int) ([]byte, error) {
	bin, err := ftbinary.New(f.Module().Image(), f.Module().BaseAddress, f.ChannelCount)
	if err != nil {
		return nil, err
	}

	for _, song := range f.Songs() {
		if song.PrimarySquareChannel != primarySquareChannel {
			if err := bin.SwapSquareChannels(song.Number); err != nil {
				return nil, err
			}
		}
	}

	if address != f.Module().BaseAddress {
		if err := bin.Rebase(address); err != nil {
			return nil, err
		}
	}

	data := bin.Bytes()
	if len(data) != f.Module().Size() {
		return nil, importerr.Newf(importerr.RangeError, "ft get_data returned %d bytes, want %d", len(data), f.Module().Size())
	}
	return data, nil
}

// GetSongMapEntry XORs the assigned bank with 0xFF, the form the Fami
// engine's driver expects (spec.md §4.5).
func (f *FtModuleInfo) GetSongMapEntry(primarySlot int) (byte, byte) {
	bankByte := byte(f.Bank()) ^ 0xFF
	songByte := byte(f.SongIndices()[primarySlot])
	return bankByte, songByte
}
