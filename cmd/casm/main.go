// Command casm is the CLI entry point for the assembler.
package main

import (
	"os"

	"github.com/CorpsSansOrganes/casm/cmd/cli/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
