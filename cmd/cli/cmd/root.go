package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "casm",
	Short: "casm is a two-pass assembler for a 15-bit word instruction set.",
	Long: `casm assembles one or more ".as" source files into ".ob"/".ent"/".ext"
output files, following the same preprocess-then-assemble pipeline as the
original C implementation this tool was distilled from.`,
}

// exitCode is set by whichever subcommand ran and surfaced by Execute.
// original_source/src/main.c returns the count of failed input files as
// the process exit code; assembleCmd reproduces that convention here.
var exitCode int

// Execute runs the root command and returns the process exit code: 1 on
// a CLI usage error, otherwise the number of input files that failed to
// assemble (0 if all succeeded).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return exitCode
}

func init() {
	rootCmd.AddCommand(assembleCmd)
}
