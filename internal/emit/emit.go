// Package emit writes the three assembler output files — .ob, .ent, and
// .ext — from a finished Tables. Grounded in
// original_source/src/generate_output_files.c (WriteHeader,
// GenerateOBJFile, GenerateEntriesFile, GenerateExternFile), reworked
// from malloc'd path-splicing and vector_t iteration into
// strings.Builder and os.WriteFile.
package emit

import (
	"fmt"
	"os"
	"strings"

	"github.com/CorpsSansOrganes/casm/internal/passes"
	"github.com/CorpsSansOrganes/casm/internal/symtab"
	"github.com/CorpsSansOrganes/casm/internal/word"
)

// baseLoadAddress is where the first code word is loaded, per spec.md §6.
const baseLoadAddress = 100

// WriteObjectFile writes <basePath>.ob: a header line "<IC> <DC>"
// followed by one "<address> <octal word>" line per code word and then
// per data word, addresses continuing from baseLoadAddress.
func WriteObjectFile(basePath string, tables *passes.Tables) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d\n", len(tables.Code), len(tables.Data))

	address := baseLoadAddress
	for _, w := range tables.Code {
		fmt.Fprintf(&b, "%04d %05o\n", address, w&word.Mask)
		address++
	}
	for _, w := range tables.Data {
		fmt.Fprintf(&b, "%04d %05o\n", address, w&word.Mask)
		address++
	}

	return os.WriteFile(basePath+".ob", []byte(b.String()), 0o644)
}

// WriteEntriesFile writes <basePath>.ent, one "<name> <address>" line
// per Entry symbol in symbol-table insertion order. It writes nothing
// and returns (false, nil) when no Entry symbols exist — spec.md §6's
// "created only if at least one Entry symbol exists".
func WriteEntriesFile(basePath string, table *symtab.Table) (bool, error) {
	entries := table.Entries()
	if len(entries) == 0 {
		return false, nil
	}

	var b strings.Builder
	for _, sym := range entries {
		fmt.Fprintf(&b, "%s %d\n", sym.Name, sym.Address)
	}

	if err := os.WriteFile(basePath+".ent", []byte(b.String()), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// WriteExternFile writes <basePath>.ext, one "<name> <address>" line per
// (symbol, occurrence) pair, pairs grouped by symbol in the order each
// symbol was first referenced. It writes nothing and returns (false,
// nil) when no external reference occurred.
func WriteExternFile(basePath string, occurrences []passes.ExternOccurrence) (bool, error) {
	if len(occurrences) == 0 {
		return false, nil
	}

	order := make([]string, 0)
	grouped := make(map[string][]uint16)
	for _, occ := range occurrences {
		if _, seen := grouped[occ.Name]; !seen {
			order = append(order, occ.Name)
		}
		grouped[occ.Name] = append(grouped[occ.Name], occ.Address)
	}

	var b strings.Builder
	for _, name := range order {
		for _, addr := range grouped[name] {
			fmt.Fprintf(&b, "%s %04d\n", name, addr)
		}
	}

	if err := os.WriteFile(basePath+".ext", []byte(b.String()), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
