package encoder

import (
	"testing"

	"github.com/CorpsSansOrganes/casm/internal/asmlang"
	"github.com/CorpsSansOrganes/casm/internal/word"
)

func TestInstructionWordStop(t *testing.T) {
	stop, _ := asmlang.LookupInstruction("stop")
	got := InstructionWord(stop, nil, nil)
	want := word.Word(15<<11) | word.Word(word.Absolute)
	if got != want {
		t.Errorf("stop instruction word = %015b, want %015b", got, want)
	}
}

func TestInstructionWordMovRegisterRegister(t *testing.T) {
	mov, _ := asmlang.LookupInstruction("mov")
	src := asmlang.NewOperand("r3", asmlang.Source)
	dst := asmlang.NewOperand("r4", asmlang.Destination)

	got := InstructionWord(mov, &src, &dst)

	wantOpcode := word.Word(0) << 11
	wantSrcNibble := word.Word(1) << (7 + 3) // DirectRegister == index 3
	wantDstNibble := word.Word(1) << (3 + 3)
	want := word.WithARE(wantOpcode|wantSrcNibble|wantDstNibble, word.Absolute)

	if got != want {
		t.Errorf("mov r3,r4 instruction word = %015b, want %015b", got, want)
	}
}

func TestSharesRegisterWord(t *testing.T) {
	src := asmlang.NewOperand("r1", asmlang.Source)
	dst := asmlang.NewOperand("*r2", asmlang.Destination)
	if !SharesRegisterWord(&src, &dst) {
		t.Error("two register-kind operands should share a word")
	}

	direct := asmlang.NewOperand("COUNTER", asmlang.Destination)
	if SharesRegisterWord(&src, &direct) {
		t.Error("a direct operand should not share a register word")
	}
}

func TestRegisterPairWord(t *testing.T) {
	src := asmlang.NewOperand("r3", asmlang.Source)
	dst := asmlang.NewOperand("r4", asmlang.Destination)

	got := RegisterPairWord(src, dst)
	want := word.WithARE(word.Word(3<<6|4<<3), word.Absolute)
	if got != want {
		t.Errorf("register pair word = %015b, want %015b", got, want)
	}
}

func TestImmediateWord(t *testing.T) {
	got := ImmediateWord(-5)
	if word.ARE(got&0b111) != word.Absolute {
		t.Error("immediate word must carry ARE=Absolute")
	}

	field := int(got >> 3) // 12-bit two's complement field
	if field >= 2048 {
		field -= 4096
	}
	if field != -5 {
		t.Errorf("decoded immediate = %d, want -5", field)
	}
}

func TestDirectWord(t *testing.T) {
	got := DirectWord(105, word.Relocatable)
	if word.ARE(got&0b111) != word.Relocatable {
		t.Error("expected ARE=Relocatable")
	}
	if got>>3 != 105 {
		t.Errorf("address field = %d, want 105", got>>3)
	}
}

func TestDataWords(t *testing.T) {
	got := DataWords([]int{1, -2, 3})
	want := []word.Word{word.New(1), word.New(-2), word.New(3)}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DataWords[%d] = %015b, want %015b", i, got[i], want[i])
		}
	}
}

func TestStringWords(t *testing.T) {
	got := StringWords("ab")
	if len(got) != 3 {
		t.Fatalf("expected 3 words (2 chars + terminator), got %d", len(got))
	}
	if got[0] != word.Word('a') || got[1] != word.Word('b') || got[2] != 0 {
		t.Errorf("StringWords(\"ab\") = %v", got)
	}
}
