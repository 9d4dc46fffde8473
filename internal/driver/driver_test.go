package driver

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name+".as")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
}

func TestAssembleFileSuccessEmitsObjectFile(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "prog", "MAIN: mov r1, r2\nstop\n")

	report, err := AssembleFile(dir, "prog", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Success() || !report.Emitted {
		t.Fatalf("expected success with output, got %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dir, "prog.ob")); err != nil {
		t.Errorf("expected prog.ob to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "prog.am")); err != nil {
		t.Errorf("expected prog.am (the preprocessor's output) to exist: %v", err)
	}
}

func TestAssembleFileErrorsSuppressOutput(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad", "mov r1\n")

	report, err := AssembleFile(dir, "bad", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Success() || report.Emitted {
		t.Fatalf("expected failure with no output, got %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.ob")); !os.IsNotExist(err) {
		t.Errorf("expected bad.ob to not exist")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.am")); err != nil {
		t.Errorf("expected bad.am to exist even though assembly failed: %v", err)
	}
}

func TestAssembleFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, err := AssembleFile(dir, "missing", false); err == nil {
		t.Fatal("expected an error for a missing source file")
	}
}

func TestAssembleFileWithMacro(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "withmacro", "mcro m\ninc r1\nendmcro\nm\nstop\n")

	report, err := AssembleFile(dir, "withmacro", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Success() {
		t.Fatalf("expected success, got %+v", report)
	}
}

func TestAssembleFileExternEntryConflictReported(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "conflict", ".extern FOO\n.entry FOO\nstop\n")

	report, err := AssembleFile(dir, "conflict", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Success() {
		t.Fatal("expected the entry/extern conflict to be reported as an error")
	}
	if len(report.Context.Errors()) == 0 {
		t.Fatal("expected at least one recorded diagnostic entry")
	}
}
