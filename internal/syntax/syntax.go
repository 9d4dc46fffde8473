// Package syntax implements the syntax-checking predicates shared by the
// first and second pass (spec.md §4.2). Each predicate reports whether an
// error occurred and, when Config.Verbose is set, records a one-line
// diagnostic into the supplied debugcontext.DebugContext.
//
// Grounded in original_source/src/syntax_errors.c and
// include/syntax_errors.h, which expose the same predicate set against a
// syntax_check_info_t{line_number, verbose, file_name} parameter — here
// Config plays that role and the diagnostic sink is a
// *debugcontext.DebugContext rather than a printf call.
package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CorpsSansOrganes/casm/internal/asmlang"
	"github.com/CorpsSansOrganes/casm/internal/debugcontext"
	"github.com/CorpsSansOrganes/casm/internal/symtab"
)

// Config carries the location context a predicate needs to produce a
// diagnostic, mirroring the original's syntax_check_info_t.
type Config struct {
	FileName   string
	LineNumber int
	Verbose    bool
	Context    *debugcontext.DebugContext
}

func (c Config) report(message string) {
	if !c.Verbose || c.Context == nil {
		return
	}
	c.Context.Error(c.Context.LocIn(c.FileName, c.LineNumber, 0), message)
}

// Report records a diagnostic outside of the fixed predicate set — used
// by callers for errors a predicate doesn't cover (e.g. lexer failures,
// an unrecognized directive name).
func (c Config) Report(message string) {
	c.report(message)
}

// ExtraneousCharacters reports whether any non-whitespace remains in
// trailing, the text following the last token a construct expected to
// consume.
func ExtraneousCharacters(trailing string, cfg Config) bool {
	if strings.TrimSpace(trailing) == "" {
		return false
	}
	cfg.report(fmt.Sprintf("extraneous characters after statement: %q", strings.TrimSpace(trailing)))
	return true
}

// ReservedName reports whether name collides with an instruction
// mnemonic, a directive, or a register name.
func ReservedName(name string, cfg Config) bool {
	if !asmlang.IsReservedName(name) {
		return false
	}
	cfg.report(fmt.Sprintf("%q is a reserved name", name))
	return true
}

// UnknownInstruction reports whether mnemonic is absent from the 16-entry
// instruction table.
func UnknownInstruction(mnemonic string, cfg Config) bool {
	if _, ok := asmlang.LookupInstruction(mnemonic); ok {
		return false
	}
	cfg.report(fmt.Sprintf("unknown instruction %q", mnemonic))
	return true
}

// WrongOperandCount reports whether the supplied operand count differs
// from the instruction descriptor's expected count.
func WrongOperandCount(instr asmlang.Instruction, operandCount int, cfg Config) bool {
	if operandCount == instr.OperandCount() {
		return false
	}
	cfg.report(fmt.Sprintf("%q expects %d operand(s), got %d", instr.Mnemonic, instr.OperandCount(), operandCount))
	return true
}

// InvalidOperand reports whether mode is Invalid.
func InvalidOperand(lexeme string, mode asmlang.AddressingMode, cfg Config) bool {
	if mode != asmlang.Invalid {
		return false
	}
	cfg.report(fmt.Sprintf("%q is not a valid operand", lexeme))
	return true
}

// IllegalAddressingMode reports whether mode is not legal for role on
// instr.
func IllegalAddressingMode(instr asmlang.Instruction, role asmlang.Role, mode asmlang.AddressingMode, cfg Config) bool {
	if instr.AllowsMode(role, mode) {
		return false
	}
	cfg.report(fmt.Sprintf("addressing mode %s is illegal for %q", mode, instr.Mnemonic))
	return true
}

// ImmediateOutOfRange reports whether value falls outside [-2048, 2047],
// the range an immediate operand's 12-bit signed field can hold.
func ImmediateOutOfRange(value int, cfg Config) bool {
	if value >= -2048 && value <= 2047 {
		return false
	}
	cfg.report(fmt.Sprintf("immediate value %d is out of range [-2048, 2047]", value))
	return true
}

// SymbolPrefixIllegal reports whether name's first character is not
// alphabetic.
func SymbolPrefixIllegal(name string, cfg Config) bool {
	if name != "" && isAlpha(name[0]) {
		return false
	}
	cfg.report(fmt.Sprintf("symbol %q must begin with an alphabetic character", name))
	return true
}

// SymbolIsIllegal reports whether name contains a non-alphanumeric
// character anywhere after its (already-validated) first character.
func SymbolIsIllegal(name string, cfg Config) bool {
	for i := 1; i < len(name); i++ {
		if !isAlphaNumeric(name[i]) {
			cfg.report(fmt.Sprintf("symbol %q contains an illegal character", name))
			return true
		}
	}
	return false
}

// SymbolExceedsCharacterLimit reports whether name is longer than
// asmlang.MaxSymbolLength.
func SymbolExceedsCharacterLimit(name string, cfg Config) bool {
	if len(name) <= asmlang.MaxSymbolLength {
		return false
	}
	cfg.report(fmt.Sprintf("symbol %q exceeds the %d character limit", name, asmlang.MaxSymbolLength))
	return true
}

// SymbolUsedAsMacro reports whether name is already a defined macro.
func SymbolUsedAsMacro(name string, macroNames map[string]struct{}, cfg Config) bool {
	if _, ok := macroNames[name]; !ok {
		return false
	}
	cfg.report(fmt.Sprintf("symbol %q is already used as a macro name", name))
	return true
}

// SymbolDefinedMoreThanOnce reports whether name already exists in table,
// regardless of kind.
func SymbolDefinedMoreThanOnce(name string, table *symtab.Table, cfg Config) bool {
	if _, ok := table.Find(name); !ok {
		return false
	}
	cfg.report(fmt.Sprintf("symbol %q is already defined", name))
	return true
}

// SymbolWasntDefined reports whether name, a direct-mode operand
// reference, is absent from table.
func SymbolWasntDefined(name string, table *symtab.Table, cfg Config) bool {
	if _, ok := table.Find(name); ok {
		return false
	}
	cfg.report(fmt.Sprintf("symbol %q was never defined", name))
	return true
}

// EntryExternConflict reports whether name is already recorded as Extern
// — the ".entry foo" when foo is already ".extern"ed case.
func EntryExternConflict(name string, table *symtab.Table, cfg Config) bool {
	sym, ok := table.Find(name)
	if !ok || sym.Kind != symtab.Extern {
		return false
	}
	cfg.report(fmt.Sprintf("symbol %q cannot be declared entry; it is already extern", name))
	return true
}

// CommaPlacement reports leading, trailing, doubled, or missing commas in
// a comma-separated parameter list (used by .data, .extern, .entry). raw
// is the unsplit text of the list.
func CommaPlacement(raw string, cfg Config) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, ",") {
		cfg.report("leading comma in parameter list")
		return true
	}
	if strings.HasSuffix(trimmed, ",") {
		cfg.report("trailing comma in parameter list")
		return true
	}

	items := tokenizeCommaList(trimmed)
	expectValue := true
	for _, item := range items {
		if item == "," {
			if expectValue {
				cfg.report("doubled or misplaced comma in parameter list")
				return true
			}
			expectValue = true
			continue
		}
		if !expectValue {
			cfg.report(fmt.Sprintf("missing comma before %q", item))
			return true
		}
		expectValue = false
	}
	return false
}

// tokenizeCommaList splits s into a sequence of value tokens and literal
// "," separators, so CommaPlacement can validate their alternation.
func tokenizeCommaList(s string) []string {
	var items []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			items = append(items, current.String())
			current.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == ',':
			flush()
			items = append(items, ",")
		case r == ' ' || r == '\t':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return items
}

// DataParameter reports whether token is not a well-formed signed integer
// in [-16384, 16384], the legal range for a .data value.
func DataParameter(token string, cfg Config) bool {
	value, err := strconv.Atoi(token)
	if err != nil {
		cfg.report(fmt.Sprintf(".data value %q is not an integer", token))
		return true
	}
	if value < -16384 || value > 16384 {
		cfg.report(fmt.Sprintf(".data value %d is out of range [-16384, 16384]", value))
		return true
	}
	return false
}

// StringParameter reports whether raw is not a well-formed .string
// literal: must begin and end with '"', every interior character must be
// printable and not a '"', and only trailing whitespace is tolerated after
// the closing quote.
func StringParameter(raw string, cfg Config) bool {
	trimmedTrailing := strings.TrimRight(raw, " \t")
	if len(trimmedTrailing) < 2 || trimmedTrailing[0] != '"' || trimmedTrailing[len(trimmedTrailing)-1] != '"' {
		cfg.report(fmt.Sprintf(".string parameter %q must be wrapped in double quotes", raw))
		return true
	}
	interior := trimmedTrailing[1 : len(trimmedTrailing)-1]
	for i := 0; i < len(interior); i++ {
		if interior[i] < 0x20 || interior[i] > 0x7e {
			cfg.report(".string parameter contains a non-printable character")
			return true
		}
		if interior[i] == '"' {
			cfg.report(".string parameter contains an interior double quote")
			return true
		}
	}
	return false
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
