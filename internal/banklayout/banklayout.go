// Package banklayout describes a ROM bank's geometry: its size, the
// logical address it loads at, and which byte ranges inside it are free
// for new data versus must be preserved byte-for-byte.
package banklayout

import (
	"sort"

	"trackerimport/internal/importerr"
)

// Range is a half-open byte interval [Start, End) within a bank.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

// BankLayout is an immutable description of one engine's bank geometry
// (spec §3, §4.1).
type BankLayout struct {
	BankBaseAddr int
	BankSize     int
	FreeRanges   []Range
	SourceBank   int // only meaningful when HasSourceBank is true
	HasSourceBank bool
	CopyRanges   []Range
}

// New constructs a BankLayout, normalizing and validating freeRanges.
// If freeRanges is empty, the whole bank is treated as one free range and
// CopyRanges is left empty regardless of hasSourceBank.
func New(bankBaseAddr, bankSize int, freeRanges []Range, sourceBank int, hasSourceBank bool) (*BankLayout, error) {
	if bankSize <= 0 {
		return nil, importerr.Newf(importerr.InvalidLayout, "bank size must be positive, got %d", bankSize)
	}

	ranges := make([]Range, len(freeRanges))
	copy(ranges, freeRanges)

	if len(ranges) == 0 {
		return &BankLayout{
			BankBaseAddr: bankBaseAddr,
			BankSize:     bankSize,
			FreeRanges:   []Range{{Start: 0, End: bankSize}},
			SourceBank:   sourceBank,
			HasSourceBank: hasSourceBank,
			CopyRanges:   nil,
		}, nil
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	for i, r := range ranges {
		if r.Start < 0 || r.End > bankSize {
			return nil, importerr.Newf(importerr.InvalidLayout, "free range [%d,%d) out of bounds for bank size %d", r.Start, r.End, bankSize)
		}
		if r.Start >= r.End {
			return nil, importerr.Newf(importerr.InvalidLayout, "free range [%d,%d) is inverted or empty", r.Start, r.End)
		}
		if i > 0 && r.Start < ranges[i-1].End {
			return nil, importerr.Newf(importerr.InvalidLayout, "free range [%d,%d) overlaps preceding range ending at %d", r.Start, r.End, ranges[i-1].End)
		}
	}

	layout := &BankLayout{
		BankBaseAddr: bankBaseAddr,
		BankSize:     bankSize,
		FreeRanges:   ranges,
		SourceBank:   sourceBank,
		HasSourceBank: hasSourceBank,
	}
	if hasSourceBank {
		layout.CopyRanges = complement(ranges, bankSize)
	}
	return layout, nil
}

// complement returns the gaps between sorted, non-overlapping ranges
// within [0, size).
func complement(sorted []Range, size int) []Range {
	var out []Range
	cursor := 0
	for _, r := range sorted {
		if r.Start > cursor {
			out = append(out, Range{Start: cursor, End: r.Start})
		}
		cursor = r.End
	}
	if cursor < size {
		out = append(out, Range{Start: cursor, End: size})
	}
	return out
}

// BankRange is a free subrange tagged with the bank it belongs to.
type BankRange struct {
	BankIndex int
	Start     int
	End       int
}

func (r BankRange) Len() int {
	return r.End - r.Start
}

// Data is a mutable per-bank staging buffer produced during import.
type Data struct {
	Layout *BankLayout
	Bytes  []byte
}

// NewData allocates an all-zero staging buffer sized to layout.BankSize.
func NewData(layout *BankLayout) *Data {
	return &Data{Layout: layout, Bytes: make([]byte, layout.BankSize)}
}
