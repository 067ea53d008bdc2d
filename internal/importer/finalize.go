package importer

import (
	"fmt"
	"sort"

	"trackerimport/internal/banklayout"
	"trackerimport/internal/importerr"
	"trackerimport/internal/rom"
)

// FinalizeBanks copies each source_bank layout's copy_ranges from the
// original ROM into its staged buffer, then writes every staged bank
// through the Accessor at bank_index*bank_size + rom.HeaderOffset
// (spec.md §4.8). It must run after the packer and the table writers so
// the staged buffers are complete before patching back preserved bytes.
func FinalizeBanks(acc rom.Accessor, layout *banklayout.BankLayout, banks map[int]*banklayout.Data) error {
	var original []byte
	if layout.HasSourceBank {
		snapshot, err := acc.ROM()
		if err != nil {
			return importerr.Wrap(importerr.RomUnsupported, "bank finalization requires ROM readback for a source_bank layout", err)
		}
		original = snapshot
	}

	indices := make([]int, 0, len(banks))
	for idx := range banks {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, bankIndex := range indices {
		bank := banks[bankIndex]

		if layout.HasSourceBank {
			srcBase := layout.SourceBank*layout.BankSize + rom.HeaderOffset
			for _, cr := range layout.CopyRanges {
				copy(bank.Bytes[cr.Start:cr.End], original[srcBase+cr.Start:srcBase+cr.End])
			}
		}

		offset := bankIndex*layout.BankSize + rom.HeaderOffset
		if err := acc.WriteBlock(offset, bank.Bytes, fmt.Sprintf("bank %d", bankIndex)); err != nil {
			return err
		}
	}

	return nil
}
