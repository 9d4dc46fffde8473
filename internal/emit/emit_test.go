package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CorpsSansOrganes/casm/internal/passes"
	"github.com/CorpsSansOrganes/casm/internal/symtab"
	"github.com/CorpsSansOrganes/casm/internal/word"
)

func TestWriteObjectFile(t *testing.T) {
	tables := passes.NewTables()
	tables.Code = []word.Word{word.Word(15 << 11 | 0b100)}
	tables.Data = []word.Word{word.New(5)}

	base := filepath.Join(t.TempDir(), "prog")
	if err := WriteObjectFile(base, tables); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(base + ".ob")
	if err != nil {
		t.Fatalf("unexpected error reading .ob: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if lines[0] != "1 1" {
		t.Errorf("header = %q, want %q", lines[0], "1 1")
	}
	if !strings.HasPrefix(lines[1], "0100 ") {
		t.Errorf("first code line = %q, want address 0100", lines[1])
	}
	if !strings.HasPrefix(lines[2], "0101 ") {
		t.Errorf("first data line = %q, want address 0101", lines[2])
	}
}

func TestWriteEntriesFileSkipsWhenEmpty(t *testing.T) {
	table := symtab.New()
	base := filepath.Join(t.TempDir(), "prog")

	wrote, err := WriteEntriesFile(base, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wrote {
		t.Error("expected no .ent file when there are no entry symbols")
	}
	if _, err := os.Stat(base + ".ent"); !os.IsNotExist(err) {
		t.Error("expected .ent file to not exist")
	}
}

func TestWriteEntriesFile(t *testing.T) {
	table := symtab.New()
	_ = table.Insert("LOOP", 100, symtab.Code)
	_ = table.PromoteToEntry("LOOP")

	base := filepath.Join(t.TempDir(), "prog")
	wrote, err := WriteEntriesFile(base, table)
	if err != nil || !wrote {
		t.Fatalf("wrote=%v err=%v", wrote, err)
	}

	content, _ := os.ReadFile(base + ".ent")
	if strings.TrimSpace(string(content)) != "LOOP 100" {
		t.Errorf(".ent content = %q, want %q", content, "LOOP 100")
	}
}

func TestWriteExternFileGroupsBySymbol(t *testing.T) {
	occurrences := []passes.ExternOccurrence{
		{Name: "FOO", Address: 101},
		{Name: "BAR", Address: 103},
		{Name: "FOO", Address: 105},
	}
	base := filepath.Join(t.TempDir(), "prog")

	wrote, err := WriteExternFile(base, occurrences)
	if err != nil || !wrote {
		t.Fatalf("wrote=%v err=%v", wrote, err)
	}

	content, _ := os.ReadFile(base + ".ext")
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	want := []string{"FOO 0101", "FOO 0105", "BAR 0103"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
