package cmd

import (
	"os"
	"path/filepath"

	"github.com/CorpsSansOrganes/casm/internal/diagreport"
	"github.com/CorpsSansOrganes/casm/internal/driver"
	"github.com/spf13/cobra"
)

var verbose bool

var assembleCmd = &cobra.Command{
	Use:   "assemble <base-name>...",
	Short: "Assemble one or more .as source files.",
	Long: `Assemble resolves each argument to "<base-name>.as" in the current
working directory, runs the macro preprocessor and both assembly passes,
and writes "<base-name>.ob"/".ent"/".ext" on success. A file that fails
is skipped; the process exit code is the number of files that failed.
Recorded diagnostics are printed to stderr; the syntax checker records
its per-line errors only when --verbose is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAssemble,
}

func init() {
	assembleCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostics even for lines the quiet predicates would normally suppress")
}

// runAssemble drives the per-file pipeline for each CLI argument,
// mirroring original_source/src/main.c's "for each input file, run the
// assembler" loop. It returns a non-nil error only when the working
// directory cannot be determined — a failed file is reported via
// diagreport and counted into exitCode — so cobra never prints its own
// usage-style error for an assembly failure.
func runAssemble(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	failures := 0
	for _, arg := range args {
		baseName := filepath.Base(arg)
		report, err := driver.AssembleFile(dir, baseName, verbose)
		if err != nil {
			cmd.PrintErrln("casm:", err)
			failures++
			continue
		}

		diagreport.Write(cmd.ErrOrStderr(), report.Context)
		if !report.Success() {
			failures++
		}
	}

	exitCode = failures
	return nil
}
