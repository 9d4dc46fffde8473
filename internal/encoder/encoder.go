// Package encoder turns a decoded instruction statement or a directive's
// parameter list into memory words, following the bit layout of spec.md
// §4.4. It is grounded in original_source/src/generate_opcode.c
// (InstructionStatementToMachinecode, OperandToOpcode, UnifyRegisterOpcode,
// DataDirectiveToMachinecode, StringDirectiveToMachinecode), reworked from
// bitmap_t/strtok manipulation into typed word.Word values.
package encoder

import (
	"github.com/CorpsSansOrganes/casm/internal/asmlang"
	"github.com/CorpsSansOrganes/casm/internal/word"
)

// instructionModeBit is the one-hot index within a 4-bit nibble for an
// addressing mode, matching spec.md §4.4's Immediate=0, Direct=1,
// IndirectReg=2, DirectReg=3 ordering.
func instructionModeBit(mode asmlang.AddressingMode) uint {
	switch mode {
	case asmlang.Immediate:
		return 0
	case asmlang.Direct:
		return 1
	case asmlang.IndirectRegister:
		return 2
	case asmlang.DirectRegister:
		return 3
	default:
		return 0
	}
}

// InstructionWord builds the first word of an instruction statement: the
// opcode in bits 14..11, a one-hot source-mode nibble in bits 10..7 (zero
// when no source operand), a one-hot destination-mode nibble in bits
// 6..3, and ARE = Absolute.
func InstructionWord(instr asmlang.Instruction, source, dest *asmlang.Operand) word.Word {
	var w word.Word
	w |= word.Word(instr.Opcode) << 11

	if source != nil {
		w |= word.Word(1) << (7 + instructionModeBit(source.Mode))
	}
	if dest != nil {
		w |= word.Word(1) << (3 + instructionModeBit(dest.Mode))
	}

	return word.WithARE(w&word.Mask, word.Absolute)
}

// SharesRegisterWord reports whether source and dest both use a
// register-kind addressing mode, and therefore collapse into a single
// operand word (spec.md §4.4).
func SharesRegisterWord(source, dest *asmlang.Operand) bool {
	return source != nil && dest != nil && source.Mode.IsRegisterKind() && dest.Mode.IsRegisterKind()
}

// RegisterPairWord encodes two register-kind operands into the single
// shared word: source register number in bits 8..6, destination register
// number in bits 5..3, ARE = Absolute.
func RegisterPairWord(source, dest asmlang.Operand) word.Word {
	var w word.Word
	if n, ok := asmlang.RegisterNumber(source.Lexeme); ok {
		w |= word.Word(n) << 6
	}
	if n, ok := asmlang.RegisterNumber(dest.Lexeme); ok {
		w |= word.Word(n) << 3
	}
	return word.WithARE(w, word.Absolute)
}

// RegisterWord encodes a single register-kind operand: the register
// number occupies bits 8..6 for a Source role, bits 5..3 for a
// Destination role, ARE = Absolute.
func RegisterWord(op asmlang.Operand) word.Word {
	n, _ := asmlang.RegisterNumber(op.Lexeme)
	var w word.Word
	if op.Role == asmlang.Source {
		w = word.Word(n) << 6
	} else {
		w = word.Word(n) << 3
	}
	return word.WithARE(w, word.Absolute)
}

// ImmediateWord encodes an immediate operand: its signed value occupies
// bits 14..3 (12-bit two's complement), ARE = Absolute.
func ImmediateWord(value int) word.Word {
	return word.WithARE(word.SignedField(value, 12)<<3, word.Absolute)
}

// DirectPlaceholder is the zero word emitted for a Direct operand during
// the first pass, before the referent's address is known.
func DirectPlaceholder() word.Word {
	return 0
}

// DirectWord patches a Direct operand's word once its address and ARE
// are known in the second pass: the address occupies bits 14..3, and are
// is Relocatable for a Regular/Entry symbol or External for an extern.
func DirectWord(address uint16, are word.ARE) word.Word {
	return word.WithARE(word.Word(address)<<3, are)
}

// OperandWord computes the word for a single operand that is not part of
// a shared register pair: Immediate and register-kind operands resolve
// immediately, Direct resolves to a placeholder pending the second pass.
func OperandWord(op asmlang.Operand) word.Word {
	switch op.Mode {
	case asmlang.Immediate:
		value, err := asmlang.ImmediateValue(op.Lexeme)
		if err != nil {
			return 0
		}
		return ImmediateWord(value)
	case asmlang.DirectRegister, asmlang.IndirectRegister:
		return RegisterWord(op)
	case asmlang.Direct:
		return DirectPlaceholder()
	default:
		return 0
	}
}

// DataWords encodes a .data directive's already-parsed integer values,
// each truncated two's-complement to 15 bits, in order.
func DataWords(values []int) []word.Word {
	words := make([]word.Word, len(values))
	for i, v := range values {
		words[i] = word.New(v)
	}
	return words
}

// StringWords encodes a .string directive's interior characters (the
// text between the outer quotes, already stripped by the caller) as one
// word per character's ASCII value, followed by a trailing zero
// terminator word.
func StringWords(interior string) []word.Word {
	words := make([]word.Word, 0, len(interior)+1)
	for i := 0; i < len(interior); i++ {
		words = append(words, word.New(int(interior[i])))
	}
	words = append(words, 0)
	return words
}
