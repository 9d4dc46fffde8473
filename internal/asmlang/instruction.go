package asmlang

// Instruction is one entry of the fixed 16-mnemonic table (spec.md §3,
// §6). The addressing-mode legality is expressed as explicit booleans per
// (role, mode) pair, per the REDESIGN note in spec.md §9 ("tagged
// variants replace the C bitmap-encoded instruction descriptor").
type Instruction struct {
	Mnemonic    string
	Opcode      int
	TakesSource bool
	TakesDest   bool

	// SourceModes / DestModes record which addressing modes are legal
	// for that role, indexed by AddressingMode (Immediate, Direct,
	// IndirectRegister, DirectRegister).
	SourceModes [4]bool
	DestModes   [4]bool
}

// OperandCount is the number of operands this instruction's descriptor
// expects: TakesSource + TakesDest.
func (instr Instruction) OperandCount() int {
	n := 0
	if instr.TakesSource {
		n++
	}
	if instr.TakesDest {
		n++
	}
	return n
}

// AllowsMode reports whether mode is legal for the given role.
func (instr Instruction) AllowsMode(role Role, mode AddressingMode) bool {
	if mode < Immediate || mode > DirectRegister {
		return false
	}
	if role == Source {
		return instr.SourceModes[mode]
	}
	return instr.DestModes[mode]
}

func modes(imm, dir, indReg, dirReg bool) [4]bool {
	return [4]bool{Immediate: imm, Direct: dir, IndirectRegister: indReg, DirectRegister: dirReg}
}

// instructionTable is the process-wide, immutable 16-entry table (spec.md
// §5: "immutable, process-wide constants"). Opcodes and addressing-mode
// legality are taken verbatim from spec.md §6.
var instructionTable = []Instruction{
	{Mnemonic: "mov", Opcode: 0, TakesSource: true, TakesDest: true,
		SourceModes: modes(true, true, true, true), DestModes: modes(false, true, true, true)},
	{Mnemonic: "cmp", Opcode: 1, TakesSource: true, TakesDest: true,
		SourceModes: modes(true, true, true, true), DestModes: modes(true, true, true, true)},
	{Mnemonic: "add", Opcode: 2, TakesSource: true, TakesDest: true,
		SourceModes: modes(true, true, true, true), DestModes: modes(false, true, true, true)},
	{Mnemonic: "sub", Opcode: 3, TakesSource: true, TakesDest: true,
		SourceModes: modes(true, true, true, true), DestModes: modes(false, true, true, true)},
	{Mnemonic: "lea", Opcode: 4, TakesSource: true, TakesDest: true,
		SourceModes: modes(false, true, false, false), DestModes: modes(false, true, true, true)},
	{Mnemonic: "clr", Opcode: 5, TakesSource: false, TakesDest: true,
		DestModes: modes(false, true, true, true)},
	{Mnemonic: "not", Opcode: 6, TakesSource: false, TakesDest: true,
		DestModes: modes(false, true, true, true)},
	{Mnemonic: "inc", Opcode: 7, TakesSource: false, TakesDest: true,
		DestModes: modes(false, true, true, true)},
	{Mnemonic: "dec", Opcode: 8, TakesSource: false, TakesDest: true,
		DestModes: modes(false, true, true, true)},
	{Mnemonic: "jmp", Opcode: 9, TakesSource: false, TakesDest: true,
		DestModes: modes(false, true, true, false)},
	{Mnemonic: "bne", Opcode: 10, TakesSource: false, TakesDest: true,
		DestModes: modes(false, true, true, false)},
	{Mnemonic: "red", Opcode: 11, TakesSource: false, TakesDest: true,
		DestModes: modes(false, true, true, true)},
	{Mnemonic: "prn", Opcode: 12, TakesSource: false, TakesDest: true,
		DestModes: modes(true, true, true, true)},
	{Mnemonic: "jsr", Opcode: 13, TakesSource: false, TakesDest: true,
		DestModes: modes(false, true, true, false)},
	{Mnemonic: "rts", Opcode: 14, TakesSource: false, TakesDest: false},
	{Mnemonic: "stop", Opcode: 15, TakesSource: false, TakesDest: false},
}

var instructionByMnemonic = func() map[string]Instruction {
	m := make(map[string]Instruction, len(instructionTable))
	for _, instr := range instructionTable {
		m[instr.Mnemonic] = instr
	}
	return m
}()

// LookupInstruction returns the descriptor for mnemonic and true, or a
// zero Instruction and false when mnemonic is not one of the 16 entries.
func LookupInstruction(mnemonic string) (Instruction, bool) {
	instr, ok := instructionByMnemonic[mnemonic]
	return instr, ok
}
