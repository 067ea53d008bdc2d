package importer

import (
	"sort"

	"trackerimport/internal/banklayout"
	"trackerimport/internal/importerr"
	"trackerimport/internal/importlog"
)

// defaultMinKeepableRemainder is the tunable floor below which a
// leftover range is discarded rather than re-queued (spec.md §4.4).
const defaultMinKeepableRemainder = 64

// EngineProfile is the per-engine configuration the packer needs: where
// that engine's modules may live, and how to build its ImportedModuleInfo
// variant. The song map tables themselves (NumSongs, offsets, secondary
// maps) are system-wide rather than per-engine — see TableLayout.
type EngineProfile struct {
	Name   string
	Layout *banklayout.BankLayout

	NewModuleInfo ModuleInfoFactory

	// MinKeepableRemainder overrides defaultMinKeepableRemainder when
	// positive; zero or negative values use the default.
	MinKeepableRemainder int
}

func (p *EngineProfile) minKeepableRemainder() int {
	if p.MinKeepableRemainder > 0 {
		return p.MinKeepableRemainder
	}
	return defaultMinKeepableRemainder
}

// Packer holds the state shared across every engine's packing run within
// one import: the pool of banks no engine has claimed yet, and the
// growing table of staged bank buffers every engine writes into.
type Packer struct {
	FreeBanks []int
	Banks     map[int]*banklayout.Data
}

// NewPacker builds a Packer with freeBanks as its initial bank pool.
func NewPacker(freeBanks []int) *Packer {
	banks := make([]int, len(freeBanks))
	copy(banks, freeBanks)
	return &Packer{FreeBanks: banks, Banks: make(map[int]*banklayout.Data)}
}

// ImportEngineModules is the packer (spec.md §4.4, "the hardest
// algorithm in the repository"): it places every info into free space
// drawn first from freeRngs, then from p.FreeBanks, largest module
// first, at the high end of each working range. freeRngs is mutated in
// place — callers reuse it across repeated calls for the same engine.
func (p *Packer) ImportEngineModules(profile *EngineProfile, infos []ImportedModuleInfo, freeRngs *[]banklayout.BankRange, primarySquareChannel int, log *importlog.Stack) error {
	minKeep := profile.minKeepableRemainder()

	unplaced := make([]ImportedModuleInfo, len(infos))
	copy(unplaced, infos)
	sort.SliceStable(unplaced, func(i, j int) bool {
		return unplaced[i].Module().Size() > unplaced[j].Module().Size()
	})

	var newFreeRngs []banklayout.BankRange

	for len(unplaced) > 0 && (len(*freeRngs) > 0 || len(p.FreeBanks) > 0) {
		rng := p.nextWorkingRange(profile, freeRngs)

		bytesLeft := rng.Len()
		baseAddr := profile.Layout.BankBaseAddr + rng.Start

		bank, ok := p.Banks[rng.BankIndex]
		if !ok {
			bank = banklayout.NewData(profile.Layout)
			p.Banks[rng.BankIndex] = bank
		}

		for {
			idx := findFirstFit(unplaced, bytesLeft)
			if idx < 0 {
				break
			}

			info := unplaced[idx]
			size := info.Module().Size()
			rngOffs := bytesLeft - size
			address := baseAddr + rngOffs

			data, err := info.GetData(uint16(address), primarySquareChannel)
			if err != nil {
				return err
			}
			if len(data) != size {
				return importerr.Newf(importerr.RangeError, "get_data returned %d byte(s), want %d", len(data), size)
			}

			copy(bank.Bytes[rng.Start+rngOffs:rng.Start+rngOffs+size], data)
			info.SetPlacement(rng.BankIndex, address)
			if log != nil {
				log.Log(importlog.LevelInfo, "placed module %q into bank %d at 0x%04X (%d byte(s))", info.Module().Title, rng.BankIndex, address, size)
			}

			unplaced = append(unplaced[:idx], unplaced[idx+1:]...)
			bytesLeft = rngOffs
		}

		if bytesLeft >= minKeep {
			newFreeRngs = append(newFreeRngs, banklayout.BankRange{
				BankIndex: rng.BankIndex,
				Start:     rng.Start,
				End:       rng.Start + bytesLeft,
			})
		}
	}

	if len(unplaced) > 0 {
		return importerr.Newf(importerr.RomFull, "%d module(s) of %d could not be placed for engine %q", len(unplaced), len(infos), profile.Name)
	}

	*freeRngs = append(*freeRngs, newFreeRngs...)
	return nil
}

// nextWorkingRange dequeues a BankRange from freeRngs, pulling a fresh
// bank from the shared pool (and enqueueing its whole layout of free
// ranges) when freeRngs is empty. Callers only reach this with at least
// one of freeRngs/p.FreeBanks non-empty.
func (p *Packer) nextWorkingRange(profile *EngineProfile, freeRngs *[]banklayout.BankRange) banklayout.BankRange {
	if len(*freeRngs) == 0 {
		bank := p.FreeBanks[0]
		p.FreeBanks = p.FreeBanks[1:]
		for _, fr := range profile.Layout.FreeRanges {
			*freeRngs = append(*freeRngs, banklayout.BankRange{BankIndex: bank, Start: fr.Start, End: fr.End})
		}
	}

	rng := (*freeRngs)[0]
	*freeRngs = (*freeRngs)[1:]
	return rng
}

// findFirstFit is a partition_point over the size-descending unplaced
// list: the first index whose module size fits within bytesLeft. Since
// sort.SliceStable preserves original relative order among equal sizes,
// the leftmost index satisfying "size <= bytesLeft" is already the
// earliest entry of that size — no separate walk-back is needed (spec.md
// §4.4, §9 "generic placement binary search").
func findFirstFit(sorted []ImportedModuleInfo, bytesLeft int) int {
	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Module().Size() <= bytesLeft
	})
	if idx >= len(sorted) {
		return -1
	}
	return idx
}
