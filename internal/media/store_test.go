package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilename(t *testing.T) {
	if got := Filename(42); got != "42.jpg" {
		t.Fatalf("Filename(42) = %q, want 42.jpg", got)
	}
}

func TestStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	name, err := s.Save(7, strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name != "7.jpg" {
		t.Fatalf("Save name = %q, want 7.jpg", name)
	}

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("stored bytes = %q", data)
	}

	if err := s.Remove(name); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Fatal("file must be gone after Remove")
	}

	// Removing again, or removing nothing, is not an error.
	if err := s.Remove(name); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if err := s.Remove(""); err != nil {
		t.Fatalf("empty Remove: %v", err)
	}
}

func TestNewStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "photos")
	if _, err := NewStore(dir); err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("media root missing: %v", err)
	}

	if _, err := NewStore(""); err == nil {
		t.Fatal("empty dir must be rejected")
	}
}
