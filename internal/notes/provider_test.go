package notes_test

import (
	"os"
	"path/filepath"
	"testing"

	"slipway/internal/notes"
	"slipway/internal/testsupport"
)

func TestLoadMissingFileYieldsNoLines(t *testing.T) {
	provider := notes.NewProvider(filepath.Join(t.TempDir(), "release_notes.txt"))

	lines, err := provider.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %v", lines)
	}
}

func TestLoadReturnsOrderedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "release_notes.txt")
	testsupport.WriteFile(t, path, "fixed login bug\r\nnew dashboard\n\n")

	lines, err := notes.NewProvider(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lines) != 2 || lines[0] != "fixed login bug" || lines[1] != "new dashboard" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestClearEmptiesButKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "release_notes.txt")
	testsupport.WriteFile(t, path, "something shipped\n")

	provider := notes.NewProvider(path)
	if err := provider.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("notes file should still exist: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty file, got %q", data)
	}
}

func TestClearMissingFileIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "release_notes.txt")
	if err := notes.NewProvider(path).Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("clear must not create the notes file")
	}
}
