package passes

import (
	"github.com/CorpsSansOrganes/casm/internal/asmlang"
	"github.com/CorpsSansOrganes/casm/internal/debugcontext"
	"github.com/CorpsSansOrganes/casm/internal/encoder"
	"github.com/CorpsSansOrganes/casm/internal/lineparse"
	"github.com/CorpsSansOrganes/casm/internal/symtab"
	"github.com/CorpsSansOrganes/casm/internal/syntax"
	"github.com/CorpsSansOrganes/casm/internal/word"
)

// SecondPass re-reads the same lines with a fresh running IC, promotes
// .entry parameters, and resolves Direct operands against the symbol
// table built by FirstPass, patching tables.Code in place and recording
// extern occurrences. It returns the number of errors found.
func SecondPass(lines []string, tables *Tables, fileName string, ctx *debugcontext.DebugContext, verbose bool) int {
	errorCount := 0
	ic := 0

	for i, raw := range lines {
		lineNumber := i + 1
		cfg := syntax.Config{FileName: fileName, LineNumber: lineNumber, Verbose: verbose, Context: ctx}

		parsed, err := lineparse.Parse(raw)
		if err != nil || parsed.Kind == lineparse.StatementEmpty {
			continue
		}

		switch parsed.Kind {
		case lineparse.StatementDirective:
			if parsed.Mnemonic == ".entry" {
				errorCount += handleEntrySecondPass(parsed.RawOperands, tables.Symbols, cfg)
			}
		case lineparse.StatementInstruction:
			advance, errs := resolveInstruction(parsed, tables, ic, cfg)
			errorCount += errs
			ic += advance
		}
	}

	return errorCount
}

func handleEntrySecondPass(raw string, table *symtab.Table, cfg syntax.Config) int {
	errors := 0
	for _, name := range splitCommaList(raw) {
		err := table.PromoteToEntry(name)
		if err == nil {
			continue
		}
		switch err.(type) {
		case *symtab.ErrUndefined:
			syntax.SymbolWasntDefined(name, table, cfg)
		case *symtab.ErrEntryExternConflict:
			syntax.EntryExternConflict(name, table, cfg)
		}
		errors++
	}
	return errors
}

// resolveInstruction re-derives the operand layout for one instruction
// line, patches Direct operand words against the symbol table, and
// returns how far ic should advance together with the error count.
func resolveInstruction(parsed lineparse.Line, tables *Tables, ic int, cfg syntax.Config) (int, int) {
	instr, ok := asmlang.LookupInstruction(parsed.Mnemonic)
	if !ok {
		return 0, 0
	}
	operands := asmlang.AssignRoles(parsed.Operands)
	if len(operands) != instr.OperandCount() {
		return 0, 0
	}

	var source, dest *asmlang.Operand
	switch len(operands) {
	case 1:
		dest = &operands[0]
	case 2:
		source = &operands[0]
		dest = &operands[1]
	}

	advance := 1 // instruction word
	errors := 0

	resolveOne := func(op *asmlang.Operand) {
		if op == nil || op.Mode != asmlang.Direct {
			return
		}
		index := ic + advance
		sym, found := tables.Symbols.Find(op.Lexeme)
		if !found {
			syntax.SymbolWasntDefined(op.Lexeme, tables.Symbols, cfg)
			errors++
			return
		}
		if sym.Kind == symtab.Extern {
			tables.Externs = append(tables.Externs, ExternOccurrence{Name: sym.Name, Address: uint16(index + 100)})
			tables.Code[index] = encoder.DirectWord(0, word.External)
			return
		}
		tables.Code[index] = encoder.DirectWord(sym.Address, word.Relocatable)
	}

	switch {
	case source != nil && dest != nil && encoder.SharesRegisterWord(source, dest):
		advance++
	case source != nil && dest != nil:
		resolveOne(source)
		advance++
		resolveOne(dest)
		advance++
	case dest != nil:
		resolveOne(dest)
		advance++
	}

	return advance, errors
}
