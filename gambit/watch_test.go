package gambit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsArchetypeFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"defs/berserker.yaml", true},
		{"defs/warden.yml", true},
		{"defs/BERSERKER.YAML", true},
		{"defs/notes.txt", false},
		{"defs/berserker.yaml.swp", false},
		{"defs", false},
	}
	for _, tc := range cases {
		if got := isArchetypeFile(tc.path); got != tc.want {
			t.Errorf("isArchetypeFile(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestWatcherReportsArchetypeWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// The text file must be filtered; only the yaml write may surface.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o644); err != nil {
		t.Fatalf("write notes.txt: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "brawler.yaml"), []byte("archetype: brawler"), 0o644); err != nil {
		t.Fatalf("write brawler.yaml: %v", err)
	}

	select {
	case path := <-w.Events:
		if filepath.Base(path) != "brawler.yaml" {
			t.Errorf("event for %q, want brawler.yaml", path)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the yaml write")
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events should be closed after Close")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher("/nonexistent/defs"); err == nil {
		t.Error("NewWatcher accepted a missing directory")
	}
}

func TestNewReloaderMissingDir(t *testing.T) {
	if _, err := NewReloader(NewRegistry(), "/nonexistent/defs"); err == nil {
		t.Error("NewReloader accepted a missing directory")
	}
}
