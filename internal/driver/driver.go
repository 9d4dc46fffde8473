// Package driver orchestrates the per-file assembly pipeline: resolve
// the ".as" source, expand macros, write the expanded ".am" intermediate,
// run the two passes against it, and emit output files when the file
// assembled cleanly.
//
// Grounded in original_source/src/main.c's per-argument loop
// (ProduceFilePath builds both the ".as" and ".am" paths; PreprocessFile
// writes the ".am" file; AssembleFile then reads the ".am" path, not the
// ".as" one) and in the teacher's cmd/cli/cmd/x86_64/assemble_file.go,
// which wires the same resolve-load-track-process shape around
// lineMap.Track. This package replaces the x86_64 command's placeholder
// pipeline body with the full macro-expand -> write .am -> first-pass ->
// second-pass -> emit sequence.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CorpsSansOrganes/casm/internal/debugcontext"
	"github.com/CorpsSansOrganes/casm/internal/emit"
	"github.com/CorpsSansOrganes/casm/internal/lineMap"
	"github.com/CorpsSansOrganes/casm/internal/macroexpand"
	"github.com/CorpsSansOrganes/casm/internal/passes"
)

// Report describes the outcome of assembling a single input file.
type Report struct {
	BaseName string
	Context  *debugcontext.DebugContext
	Errors   int
	Emitted  bool
}

// Success reports whether the file produced output, per spec.md §4.7:
// a nonzero total error count suppresses output file creation.
func (r Report) Success() bool { return r.Errors == 0 }

// AssembleFile runs the full pipeline for one input, named by baseName
// without an extension (the ".as" and ".am" suffixes are appended here,
// mirroring main.c's two ProduceFilePath calls). The expanded source is
// written to "<baseName>.am" before either pass runs, and the two passes
// report diagnostics against that path, exactly as main.c's AssembleFile
// is handed assembler_input_path rather than the original ".as" path.
// dir is the directory baseName is resolved against; pass "" to resolve
// relative to the current working directory.
func AssembleFile(dir, baseName string, verbose bool) (Report, error) {
	sourcePath := filepath.Join(dir, baseName+".as")
	amPath := filepath.Join(dir, baseName+".am")

	tracker, err := lineMap.Track(sourcePath)
	if err != nil {
		return Report{}, fmt.Errorf("driver: failed to load %s: %w", sourcePath, err)
	}

	ctx := debugcontext.NewDebugContext(sourcePath)
	ctx.SetPhase("pre-processing/macros")

	expanded, err := macroexpand.Expand(tracker.Source())
	if err != nil {
		ctx.Error(ctx.Loc(1, 0), err.Error())
		return Report{BaseName: baseName, Context: ctx, Errors: 1}, nil
	}

	amContent := strings.Join(expanded.Lines, "\n") + "\n"
	if err := os.WriteFile(amPath, []byte(amContent), 0o644); err != nil {
		return Report{}, fmt.Errorf("driver: failed to write %s: %w", amPath, err)
	}

	if err := tracker.Snapshot(strings.Join(expanded.Lines, "\n"), expanded.Origins); err != nil {
		return Report{}, fmt.Errorf("driver: failed to snapshot expanded source: %w", err)
	}

	ctx.SetPhase("first-pass")
	tables := passes.NewTables()
	errorCount := passes.FirstPass(expanded.Lines, tables, expanded.MacroNames, amPath, ctx, verbose)

	ctx.SetPhase("second-pass")
	errorCount += passes.SecondPass(expanded.Lines, tables, amPath, ctx, verbose)

	report := Report{BaseName: baseName, Context: ctx, Errors: errorCount}
	if errorCount != 0 {
		return report, nil
	}

	ctx.SetPhase("emit")
	outBase := filepath.Join(dir, baseName)
	if err := emit.WriteObjectFile(outBase, tables); err != nil {
		return Report{}, fmt.Errorf("driver: failed to write object file: %w", err)
	}
	if _, err := emit.WriteEntriesFile(outBase, tables.Symbols); err != nil {
		return Report{}, fmt.Errorf("driver: failed to write entries file: %w", err)
	}
	if _, err := emit.WriteExternFile(outBase, tables.Externs); err != nil {
		return Report{}, fmt.Errorf("driver: failed to write extern file: %w", err)
	}

	report.Emitted = true
	return report, nil
}
