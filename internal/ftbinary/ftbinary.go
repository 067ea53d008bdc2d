// Package ftbinary provides the FamiTracker-shaped binary mutator the
// core calls through two operations: Rebase and SwapSquareChannels
// (spec §1, §4.5). The on-disk FamiTracker module format itself is an
// external collaborator's concern; this package models just enough of a
// position-dependent pointer table to make rebase and channel-swap
// observable and testable, the way spec's test_rebase expects.
package ftbinary

import (
	"encoding/binary"

	"trackerimport/internal/importerr"
)

// headerSize is the 2-byte song-count header.
const headerSize = 2

// entrySize is the per-song pointer-table entry: a 2-byte absolute
// pointer (shifts with rebase) plus a 1-byte channel-order flag.
const entrySize = 3

// FtmBinary is the contract the import core calls: rebase internal
// pointers to a new load address, and swap which square channel carries
// the melody for one song.
type FtmBinary interface {
	Rebase(newAddress uint16) error
	SwapSquareChannels(songNumber int) error
	Bytes() []byte
}

// FamiTracker is the concrete FtmBinary used by the "ft" engine.
type FamiTracker struct {
	data         []byte
	anchor       uint16
	channelCount int
	songCount    int
}

// New wraps raw (not copied — callers pass a working copy they own) as a
// FamiTracker binary anchored at anchor with the given declared channel
// count.
func New(raw []byte, anchor uint16, channelCount int) (*FamiTracker, error) {
	if len(raw) < headerSize {
		return nil, importerr.Newf(importerr.RangeError, "ftm binary too small for header: %d byte(s)", len(raw))
	}
	songCount := int(binary.LittleEndian.Uint16(raw[0:2]))
	if headerSize+songCount*entrySize > len(raw) {
		return nil, importerr.Newf(importerr.RangeError, "ftm binary too small for %d song pointer entries", songCount)
	}
	return &FamiTracker{data: raw, anchor: anchor, channelCount: channelCount, songCount: songCount}, nil
}

func (f *FamiTracker) entryOffset(songNumber int) (int, error) {
	if songNumber < 0 || songNumber >= f.songCount {
		return 0, importerr.Newf(importerr.RangeError, "song number %d out of range (have %d song(s))", songNumber, f.songCount)
	}
	return headerSize + songNumber*entrySize, nil
}

// SwapSquareChannels flips the channel-order flag for songNumber,
// exchanging which of the two square-wave channels carries the melody.
func (f *FamiTracker) SwapSquareChannels(songNumber int) error {
	off, err := f.entryOffset(songNumber)
	if err != nil {
		return err
	}
	f.data[off+2] ^= 1
	return nil
}

// Rebase shifts every song's internal pattern pointer by the delta
// between the binary's current anchor and newAddress, then updates the
// anchor.
func (f *FamiTracker) Rebase(newAddress uint16) error {
	delta := int32(newAddress) - int32(f.anchor)
	for song := 0; song < f.songCount; song++ {
		off, err := f.entryOffset(song)
		if err != nil {
			return err
		}
		ptr := int32(binary.LittleEndian.Uint16(f.data[off : off+2]))
		binary.LittleEndian.PutUint16(f.data[off:off+2], uint16(ptr+delta))
	}
	f.anchor = newAddress
	return nil
}

// Bytes returns the (mutated in place) underlying buffer.
func (f *FamiTracker) Bytes() []byte {
	return f.data
}
