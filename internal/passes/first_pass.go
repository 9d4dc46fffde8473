package passes

import (
	"strconv"
	"strings"

	"github.com/CorpsSansOrganes/casm/internal/asmlang"
	"github.com/CorpsSansOrganes/casm/internal/debugcontext"
	"github.com/CorpsSansOrganes/casm/internal/encoder"
	"github.com/CorpsSansOrganes/casm/internal/lineparse"
	"github.com/CorpsSansOrganes/casm/internal/symtab"
	"github.com/CorpsSansOrganes/casm/internal/syntax"
)

// FirstPass walks lines in order, building the code table, the data
// table, and the symbol table, and reports the total number of syntax
// errors encountered. macroNames is the set of names already claimed by
// a macro definition, consulted by the "symbol used as a macro" check.
//
// Per spec.md §4.5, relocate-data-symbols runs once at end of file,
// after every line has been processed.
func FirstPass(lines []string, tables *Tables, macroNames map[string]struct{}, fileName string, ctx *debugcontext.DebugContext, verbose bool) int {
	errorCount := 0
	report := func(lineNumber int) syntax.Config {
		return syntax.Config{FileName: fileName, LineNumber: lineNumber, Verbose: verbose, Context: ctx}
	}

	for i, raw := range lines {
		lineNumber := i + 1
		cfg := report(lineNumber)

		parsed, err := lineparse.Parse(raw)
		if err != nil {
			errorCount++
			cfg.Report(err.Error())
			continue
		}
		if parsed.Kind == lineparse.StatementEmpty {
			continue
		}

		label, labelValid := "", false
		if parsed.Label != "" {
			label, labelValid = validateLabel(parsed.Label, tables.Symbols, macroNames, cfg, &errorCount)
		}

		switch parsed.Kind {
		case lineparse.StatementDirective:
			errorCount += handleDirective(parsed, label, labelValid, tables, macroNames, cfg)
		case lineparse.StatementInstruction:
			errorCount += handleInstruction(parsed, label, labelValid, tables, cfg)
		}
	}

	tables.Symbols.RelocateDataSymbols(len(tables.Code))
	return errorCount
}

// validateLabel runs the symbol-name predicates against a pending label
// and returns the label text and whether it is safe to insert. Errors
// increment *errorCount but never abort the line.
func validateLabel(label string, table *symtab.Table, macroNames map[string]struct{}, cfg syntax.Config, errorCount *int) (string, bool) {
	valid := true
	if syntax.SymbolPrefixIllegal(label, cfg) {
		*errorCount++
		valid = false
	}
	if syntax.SymbolIsIllegal(label, cfg) {
		*errorCount++
		valid = false
	}
	if syntax.SymbolExceedsCharacterLimit(label, cfg) {
		*errorCount++
		valid = false
	}
	if syntax.ReservedName(label, cfg) {
		*errorCount++
		valid = false
	}
	if syntax.SymbolUsedAsMacro(label, macroNames, cfg) {
		*errorCount++
		valid = false
	}
	if syntax.SymbolDefinedMoreThanOnce(label, table, cfg) {
		*errorCount++
		valid = false
	}
	return label, valid
}

// handleDirective dispatches a directive statement and returns the
// number of new errors it produced.
func handleDirective(parsed lineparse.Line, label string, labelValid bool, tables *Tables, macroNames map[string]struct{}, cfg syntax.Config) int {
	switch parsed.Mnemonic {
	case ".data":
		return handleData(parsed.RawOperands, label, labelValid, tables, cfg)
	case ".string":
		return handleString(parsed.RawOperands, label, labelValid, tables, cfg)
	case ".extern":
		return handleExtern(parsed.RawOperands, label != "", tables, macroNames, cfg)
	case ".entry":
		return handleEntryFirstPass(parsed.RawOperands, label != "", cfg)
	default:
		cfg.Report("unknown directive " + parsed.Mnemonic)
		return 1
	}
}

func handleData(raw string, label string, labelValid bool, tables *Tables, cfg syntax.Config) int {
	errors := 0
	if syntax.CommaPlacement(raw, cfg) {
		errors++
		return errors
	}

	tokens := splitCommaList(raw)
	values := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		if syntax.DataParameter(tok, cfg) {
			errors++
			continue
		}
		v, _ := strconv.Atoi(tok)
		values = append(values, v)
	}
	if errors > 0 {
		return errors
	}

	if label != "" && labelValid {
		_ = tables.Symbols.Insert(label, uint16(len(tables.Data)), symtab.Data)
	}
	tables.Data = append(tables.Data, encoder.DataWords(values)...)
	return errors
}

func handleString(raw string, label string, labelValid bool, tables *Tables, cfg syntax.Config) int {
	if syntax.StringParameter(raw, cfg) {
		return 1
	}

	trimmed := strings.TrimRight(raw, " \t")
	interior := trimmed[1 : len(trimmed)-1]

	if label != "" && labelValid {
		_ = tables.Symbols.Insert(label, uint16(len(tables.Data)), symtab.Data)
	}
	tables.Data = append(tables.Data, encoder.StringWords(interior)...)
	return 0
}

func handleExtern(raw string, hadLabel bool, tables *Tables, macroNames map[string]struct{}, cfg syntax.Config) int {
	if hadLabel {
		warnIgnoredLabel(cfg, ".extern")
	}

	errors := 0
	if syntax.CommaPlacement(raw, cfg) {
		return 1
	}

	for _, name := range splitCommaList(raw) {
		if syntax.SymbolPrefixIllegal(name, cfg) || syntax.SymbolIsIllegal(name, cfg) ||
			syntax.SymbolExceedsCharacterLimit(name, cfg) || syntax.ReservedName(name, cfg) ||
			syntax.SymbolUsedAsMacro(name, macroNames, cfg) {
			errors++
			continue
		}
		if err := tables.Symbols.InsertExtern(name); err != nil {
			cfg.Report(err.Error())
			errors++
		}
	}
	return errors
}

func handleEntryFirstPass(raw string, hadLabel bool, cfg syntax.Config) int {
	if hadLabel {
		warnIgnoredLabel(cfg, ".entry")
	}
	if syntax.CommaPlacement(raw, cfg) {
		return 1
	}
	return 0
}

// warnIgnoredLabel records the "label before .extern/.entry is ignored"
// warning when the context is wired up for diagnostics.
func warnIgnoredLabel(cfg syntax.Config, directive string) {
	if cfg.Context == nil {
		return
	}
	cfg.Context.Warning(cfg.Context.LocIn(cfg.FileName, cfg.LineNumber, 0), "label before "+directive+" is ignored")
}

func handleInstruction(parsed lineparse.Line, label string, labelValid bool, tables *Tables, cfg syntax.Config) int {
	errors := 0

	instr, ok := asmlang.LookupInstruction(parsed.Mnemonic)
	if !ok {
		syntax.UnknownInstruction(parsed.Mnemonic, cfg)
		return 1
	}

	operands := asmlang.AssignRoles(parsed.Operands)
	if syntax.WrongOperandCount(instr, len(operands), cfg) {
		return 1
	}

	for i := range operands {
		op := &operands[i]
		if syntax.InvalidOperand(op.Lexeme, op.Mode, cfg) {
			errors++
			continue
		}
		if syntax.IllegalAddressingMode(instr, op.Role, op.Mode, cfg) {
			errors++
			continue
		}
		if op.Mode == asmlang.Immediate {
			value, _ := asmlang.ImmediateValue(op.Lexeme)
			if syntax.ImmediateOutOfRange(value, cfg) {
				errors++
			}
		}
	}
	if errors > 0 {
		return errors
	}

	if label != "" && labelValid {
		_ = tables.Symbols.Insert(label, uint16(100+len(tables.Code)), symtab.Code)
	}

	var source, dest *asmlang.Operand
	switch len(operands) {
	case 1:
		dest = &operands[0]
	case 2:
		source = &operands[0]
		dest = &operands[1]
	}

	tables.Code = append(tables.Code, encoder.InstructionWord(instr, source, dest))

	switch {
	case source != nil && dest != nil && encoder.SharesRegisterWord(source, dest):
		tables.Code = append(tables.Code, encoder.RegisterPairWord(*source, *dest))
	case source != nil && dest != nil:
		tables.Code = append(tables.Code, encoder.OperandWord(*source), encoder.OperandWord(*dest))
	case dest != nil:
		tables.Code = append(tables.Code, encoder.OperandWord(*dest))
	}

	return 0
}

// splitCommaList splits a comma-separated parameter list into trimmed,
// non-empty tokens; CommaPlacement must be checked separately before
// calling this.
func splitCommaList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return fields
}
