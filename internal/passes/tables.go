// Package passes implements the first and second pass of the assembler
// (spec.md §4.5, §4.6), grounded in original_source/src/assembler.c's
// HandleInstructionStatement / HandleStringOrData / main-loop structure,
// reworked from the C file's strtok-and-free bookkeeping into typed
// Go values built on internal/lineparse, internal/syntax,
// internal/asmlang, internal/symtab and internal/encoder.
package passes

import (
	"github.com/CorpsSansOrganes/casm/internal/symtab"
	"github.com/CorpsSansOrganes/casm/internal/word"
)

// ExternOccurrence records one use of an extern symbol in the code
// table: the symbol referenced and the load address of the word that
// needs patching by the linker/loader this output format targets.
type ExternOccurrence struct {
	Name    string
	Address uint16
}

// Tables holds the per-file mutable state shared by both passes: the
// code and data word tables, the symbol table, and the external
// reference occurrences recorded by the second pass. A Tables value
// belongs to exactly one input file and is discarded at end of file
// (spec.md §5: "no cross-file state").
type Tables struct {
	Code    []word.Word
	Data    []word.Word
	Symbols *symtab.Table
	Externs []ExternOccurrence
}

// NewTables returns an empty Tables ready for a fresh file.
func NewTables() *Tables {
	return &Tables{Symbols: symtab.New()}
}
