// Command songimporter patches a compiled music library into a ROM
// image: it loads a library JSON document and a profiles.toml engine
// configuration, runs the import core, and writes the patched ROM (and
// optionally a YAML placement report) back to disk.
package main

import (
	"flag"
	"fmt"
	"os"

	"trackerimport/internal/catalog"
	"trackerimport/internal/config"
	"trackerimport/internal/importer"
	"trackerimport/internal/importlog"
	"trackerimport/internal/report"
	"trackerimport/internal/rom"
)

func logToStderr(level importlog.Level, message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", level, message)
}

func main() {
	var (
		romPath     = flag.String("rom", "", "path to the input ROM image")
		libraryPath = flag.String("library", "", "path to the library JSON document")
		profilePath = flag.String("profiles", "", "path to the profiles.toml engine configuration")
		outPath     = flag.String("out", "", "path to write the patched ROM")
		reportPath  = flag.String("report", "", "optional path to write a YAML placement report")
		engine      = flag.String("engine", "ft", "engine label assigned to every module in the library")
		primaryChan = flag.Int("primary-square-chan", 0, "target primary square channel for this ROM")
	)
	flag.Parse()

	if *romPath == "" || *libraryPath == "" || *profilePath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: songimporter -rom in.rom -library lib.json -profiles profiles.toml -out out.rom")
		os.Exit(2)
	}

	if err := run(*romPath, *libraryPath, *profilePath, *outPath, *reportPath, *engine, *primaryChan); err != nil {
		fmt.Fprintln(os.Stderr, "songimporter:", err)
		os.Exit(1)
	}
}

func run(romPath, libraryPath, profilePath, outPath, reportPath, engine string, primaryChan int) error {
	romBytes, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	libraryData, err := os.ReadFile(libraryPath)
	if err != nil {
		return fmt.Errorf("reading library: %w", err)
	}

	profileData, err := os.ReadFile(profilePath)
	if err != nil {
		return fmt.Errorf("reading profiles: %w", err)
	}

	cat, err := catalog.Load(libraryData, catalog.BuildOptions{Engine: engine})
	if err != nil {
		return fmt.Errorf("loading library: %w", err)
	}

	profile, err := config.Load(profileData)
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}

	im, err := profile.BuildImporter()
	if err != nil {
		return fmt.Errorf("building importer: %w", err)
	}
	im.PushSink(logToStderr)

	acc := rom.NewMemAccessor(romBytes)

	primarySongs := make(map[int]*catalog.Song, len(cat.Songs))
	for i, song := range cat.Songs {
		primarySongs[i] = song
	}

	moduleInfos, err := im.Import(acc, importer.Request{
		PrimarySongs:         primarySongs,
		FreeBanks:            defaultFreeBankRange(profile),
		PrimarySquareChannel: primaryChan,
	})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	patched, err := acc.ROM()
	if err != nil {
		return fmt.Errorf("reading patched rom: %w", err)
	}
	if err := os.WriteFile(outPath, patched, 0o644); err != nil {
		return fmt.Errorf("writing rom: %w", err)
	}

	if reportPath != "" {
		rep := report.Build(moduleInfos)
		data, err := rep.Marshal()
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		if err := os.WriteFile(reportPath, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	return nil
}

// defaultFreeBankRange offers one bank per configured engine, indexed
// from 0. Profiles needing more than one bank per engine, or a
// different bank numbering, should compute their own free-bank list
// instead of relying on this default.
func defaultFreeBankRange(profile *config.Profile) []int {
	banks := make([]int, len(profile.Engines))
	for i := range banks {
		banks[i] = i
	}
	return banks
}
