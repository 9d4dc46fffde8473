package lineMap

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempSource(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.as")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp source: %v", err)
	}
	return path
}

func TestTrack(t *testing.T) {
	t.Run("loads file and records initial snapshot", func(t *testing.T) {
		path := writeTempSource(t, "mov r1, r2\nstop\n")

		tr, err := Track(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tr.FilePath() != path {
			t.Errorf("expected FilePath %q, got %q", path, tr.FilePath())
		}
		if tr.Source() != "mov r1, r2\nstop\n" {
			t.Errorf("unexpected source: %q", tr.Source())
		}
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		if _, err := Track(filepath.Join(t.TempDir(), "missing.as")); err == nil {
			t.Fatal("expected an error for a nonexistent file")
		}
	})

	t.Run("rejects a non-.as extension", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "prog.txt")
		if err := os.WriteFile(path, []byte("stop"), 0o644); err != nil {
			t.Fatalf("failed to write temp file: %v", err)
		}
		if _, err := Track(path); err == nil {
			t.Fatal("expected an error for a non-.as file")
		}
	})
}

func TestTrackerSnapshotAndOrigin(t *testing.T) {
	path := writeTempSource(t, "mcro m\ninc r2\nendmcro\nmov r1, r2\n")

	tr, err := Track(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Simulate macro expansion: "mcro m / inc r2 / endmcro" (lines 1-3) is
	// replaced by its body "inc r2" (one line); line 4 is untouched.
	expanded := "inc r2\nmov r1, r2\n"
	if err := tr.Snapshot(expanded, []int{originUnknown, 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := tr.Origin(1); got != originUnknown {
		t.Errorf("expected expanded macro line to be untraceable, got %d", got)
	}
	if got := tr.Origin(2); got != 4 {
		t.Errorf("expected line 2 to trace back to line 4, got %d", got)
	}
	if got := tr.Lines(); len(got) != 2 {
		t.Errorf("expected 2 lines, got %d", len(got))
	}
}

func TestTrackerHistory(t *testing.T) {
	path := writeTempSource(t, "a\nb\n")

	tr, err := Track(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tr.Snapshot("a\nc\n", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history := tr.History(1)
	if len(history) == 0 {
		t.Fatal("expected at least one recorded change for line 1")
	}
}
