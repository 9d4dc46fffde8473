package asmlang

// MaxSymbolLength is the longest legal symbol name, per spec.md §3.
const MaxSymbolLength = 31

// Directives lists every directive name recognized by the language,
// lowercase only — an uppercase form is a reported error (spec.md §6).
var Directives = []string{".data", ".string", ".entry", ".extern"}

// Registers lists the eight legal register names (spec.md §6).
var Registers = []string{"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7"}

// IsDirective reports whether name is one of the four directive names.
func IsDirective(name string) bool {
	for _, d := range Directives {
		if d == name {
			return true
		}
	}
	return false
}

// IsRegisterName reports whether name is one of the eight register names.
func IsRegisterName(name string) bool {
	for _, r := range Registers {
		if r == name {
			return true
		}
	}
	return false
}

// IsReservedName reports whether name collides with an instruction
// mnemonic, a directive (with or without its leading dot), or a register
// name — the "reserved name" rule of spec.md §4.2.
func IsReservedName(name string) bool {
	if _, ok := LookupInstruction(name); ok {
		return true
	}
	if IsRegisterName(name) {
		return true
	}
	if IsDirective(name) {
		return true
	}
	if len(name) > 0 && name[0] == '.' {
		return false
	}
	for _, d := range Directives {
		if d[1:] == name {
			return true
		}
	}
	return false
}

// IsLegalSymbolName reports whether name satisfies spec.md §3's grammar:
// 1..31 characters, first character ASCII alphabetic, remainder ASCII
// alphanumeric. It does not check reservation or duplication — those are
// separate syntax-checker predicates.
func IsLegalSymbolName(name string) bool {
	if len(name) < 1 || len(name) > MaxSymbolLength {
		return false
	}
	if !isAlpha(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isAlphaNumeric(name[i]) {
			return false
		}
	}
	return true
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
