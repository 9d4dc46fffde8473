package lineparse

import (
	"errors"
	"strings"
	"testing"
)

func TestParseInstruction(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		wantKind StatementKind
		wantMnem string
		wantOps  []string
		wantLbl  string
	}{
		{"no label", "mov r1, r2", StatementInstruction, "mov", []string{"r1", "r2"}, ""},
		{"with label", "LOOP: add r1, r2", StatementInstruction, "add", []string{"r1", "r2"}, "LOOP"},
		{"no operands", "stop", StatementInstruction, "stop", nil, ""},
		{"tab delimited", "mov\tr1,r2", StatementInstruction, "mov", []string{"r1", "r2"}, ""},
		{"immediate operand", "cmp #-5, r3", StatementInstruction, "cmp", []string{"#-5", "r3"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Kind != tc.wantKind {
				t.Errorf("Kind = %v, want %v", got.Kind, tc.wantKind)
			}
			if got.Mnemonic != tc.wantMnem {
				t.Errorf("Mnemonic = %q, want %q", got.Mnemonic, tc.wantMnem)
			}
			if got.Label != tc.wantLbl {
				t.Errorf("Label = %q, want %q", got.Label, tc.wantLbl)
			}
			if !equalSlices(got.Operands, tc.wantOps) {
				t.Errorf("Operands = %v, want %v", got.Operands, tc.wantOps)
			}
		})
	}
}

func TestParseDirective(t *testing.T) {
	got, err := Parse("NUMS: .data 1, -2, 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != StatementDirective {
		t.Fatalf("Kind = %v, want directive", got.Kind)
	}
	if got.Mnemonic != ".data" {
		t.Errorf("Mnemonic = %q, want .data", got.Mnemonic)
	}
	if got.RawOperands != "1, -2, 3" {
		t.Errorf("RawOperands = %q, want %q", got.RawOperands, "1, -2, 3")
	}
	if got.Operands != nil {
		t.Errorf("expected nil Operands for a directive, got %v", got.Operands)
	}
}

func TestParseEmptyAndComment(t *testing.T) {
	for _, line := range []string{"", "   ", "; a full line comment", "   ; indented comment"} {
		got, err := Parse(line)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", line, err)
		}
		if got.Kind != StatementEmpty {
			t.Errorf("Kind = %v, want empty for %q", got.Kind, line)
		}
	}
}

func TestParseColonSyntaxError(t *testing.T) {
	_, err := Parse("LOOP:add r1, r2")
	var colonErr *ColonSyntaxError
	if !errors.As(err, &colonErr) {
		t.Fatalf("expected *ColonSyntaxError, got %v", err)
	}
}

func TestParseLexErrorOnLongLine(t *testing.T) {
	long := strings.Repeat("a", MaxLineLength)
	_, err := Parse(long)
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexError, got %v", err)
	}
}

func TestParseLabelOnlyLine(t *testing.T) {
	got, err := Parse("DONE:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Label != "DONE" {
		t.Errorf("Label = %q, want DONE", got.Label)
	}
	if got.Kind != StatementEmpty {
		t.Errorf("Kind = %v, want empty", got.Kind)
	}
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
