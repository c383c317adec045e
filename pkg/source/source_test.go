package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileOpenerReadsContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.charly")
	if err := os.WriteFile(path, []byte("1 + 1"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	src, err := FileOpener{}.Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Path != path || string(src.Contents) != "1 + 1" {
		t.Fatalf("unexpected source %#v", src)
	}
}

func TestFileOpenerMissingFile(t *testing.T) {
	_, err := FileOpener{}.Open(filepath.Join(t.TempDir(), "missing.charly"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
