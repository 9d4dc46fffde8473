package passes

import (
	"testing"

	"github.com/CorpsSansOrganes/casm/internal/symtab"
	"github.com/CorpsSansOrganes/casm/internal/word"
)

func runBothPasses(t *testing.T, lines []string) (*Tables, int) {
	t.Helper()
	tables := NewTables()
	errs := FirstPass(lines, tables, map[string]struct{}{}, "prog.as", nil, false)
	errs += SecondPass(lines, tables, "prog.as", nil, false)
	return tables, errs
}

func TestStopProducesSingleWord(t *testing.T) {
	tables, errs := runBothPasses(t, []string{"stop"})
	if errs != 0 {
		t.Fatalf("unexpected errors: %d", errs)
	}
	if len(tables.Code) != 1 {
		t.Fatalf("expected 1 code word, got %d", len(tables.Code))
	}
	want := word.Word(15<<11) | word.Word(word.Absolute)
	if tables.Code[0] != want {
		t.Errorf("stop word = %015b, want %015b", tables.Code[0], want)
	}
}

func TestRegisterCollapse(t *testing.T) {
	tables, errs := runBothPasses(t, []string{"mov r3, r4", "stop"})
	if errs != 0 {
		t.Fatalf("unexpected errors: %d", errs)
	}
	// mov word + one shared register word, then stop word.
	if len(tables.Code) != 3 {
		t.Fatalf("expected 3 code words, got %d", len(tables.Code))
	}
}

func TestDataSymbolRelocation(t *testing.T) {
	lines := []string{
		"mov r1, r2",
		"NUMS: .data 1, 2, 3",
	}
	tables, errs := runBothPasses(t, lines)
	if errs != 0 {
		t.Fatalf("unexpected errors: %d", errs)
	}
	sym, ok := tables.Symbols.Find("NUMS")
	if !ok {
		t.Fatal("expected NUMS to be defined")
	}
	// mov r1, r2: both operands are DirectRegister, so they collapse into
	// one shared word -> 2 code words. DC starts at 0 for NUMS.
	wantAddress := uint16(100 + len(tables.Code))
	if sym.Address != wantAddress {
		t.Errorf("NUMS address = %d, want %d", sym.Address, wantAddress)
	}
	if sym.Area != symtab.Data {
		t.Errorf("NUMS area = %v, want Data", sym.Area)
	}
}

func TestExternUsageRecorded(t *testing.T) {
	lines := []string{
		".extern FOO",
		"jmp FOO",
	}
	tables, errs := runBothPasses(t, lines)
	if errs != 0 {
		t.Fatalf("unexpected errors: %d", errs)
	}
	if len(tables.Externs) != 1 {
		t.Fatalf("expected 1 extern occurrence, got %d", len(tables.Externs))
	}
	if tables.Externs[0].Name != "FOO" {
		t.Errorf("extern name = %q, want FOO", tables.Externs[0].Name)
	}
	if tables.Externs[0].Address != 101 {
		t.Errorf("extern address = %d, want 101", tables.Externs[0].Address)
	}
}

func TestEntryPromotion(t *testing.T) {
	lines := []string{
		"LOOP: inc r1",
		".entry LOOP",
	}
	tables, errs := runBothPasses(t, lines)
	if errs != 0 {
		t.Fatalf("unexpected errors: %d", errs)
	}
	sym, ok := tables.Symbols.Find("LOOP")
	if !ok || sym.Kind != symtab.Entry {
		t.Fatalf("expected LOOP to be promoted to Entry, got %+v (ok=%v)", sym, ok)
	}
}

func TestEntryExternConflictReported(t *testing.T) {
	lines := []string{
		".extern FOO",
		".entry FOO",
	}
	_, errs := runBothPasses(t, lines)
	if errs == 0 {
		t.Fatal("expected an error for entry/extern conflict")
	}
}

func TestUndefinedEntryReported(t *testing.T) {
	lines := []string{".entry MISSING"}
	_, errs := runBothPasses(t, lines)
	if errs == 0 {
		t.Fatal("expected an error for promoting an undefined symbol")
	}
}

func TestDuplicateSymbolReported(t *testing.T) {
	lines := []string{
		"A: inc r1",
		"A: dec r2",
	}
	_, errs := runBothPasses(t, lines)
	if errs == 0 {
		t.Fatal("expected an error for a duplicate label")
	}
}

func TestWrongOperandCountReported(t *testing.T) {
	lines := []string{"mov r1"}
	_, errs := runBothPasses(t, lines)
	if errs == 0 {
		t.Fatal("expected an error for the wrong operand count")
	}
}

func TestImmediateOutOfRangeReported(t *testing.T) {
	lines := []string{"prn #5000"}
	_, errs := runBothPasses(t, lines)
	if errs == 0 {
		t.Fatal("expected an error for an out-of-range immediate")
	}
}
