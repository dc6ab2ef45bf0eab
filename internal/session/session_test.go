package session

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(m.Stop)
	return m
}

func TestFileStateRoundTrip(t *testing.T) {
	m := newTestManager(t)

	want := FileState{CursorX: 3, CursorY: 12, ScrollY: 8}
	m.SetFileState("/tmp/notes.org", want)

	got, ok := m.FileState("/tmp/notes.org")
	if !ok {
		t.Fatal("file state not found")
	}
	if got != want {
		t.Fatalf("state = %+v, want %+v", got, want)
	}
	if m.ActiveFile() != "/tmp/notes.org" {
		t.Fatalf("active file = %q", m.ActiveFile())
	}

	if _, ok := m.FileState("/tmp/other.org"); ok {
		t.Fatal("state for unknown file")
	}
}

func TestPersistsAcrossManagers(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.SetFileState("/tmp/a.md", FileState{CursorY: 7})
	m.Stop()

	if _, err := os.Stat(filepath.Join(stateHome, "orged", "session.json")); err != nil {
		t.Fatalf("session file not written: %v", err)
	}

	m2, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager (reload): %v", err)
	}
	defer m2.Stop()

	got, ok := m2.FileState("/tmp/a.md")
	if !ok || got.CursorY != 7 {
		t.Fatalf("reloaded state = %+v ok=%v", got, ok)
	}
	if m2.ActiveFile() != "/tmp/a.md" {
		t.Fatalf("reloaded active file = %q", m2.ActiveFile())
	}
}

func TestSaveSkipsWhenClean(t *testing.T) {
	m := newTestManager(t)

	if err := m.Save(); err != nil {
		t.Fatalf("clean Save: %v", err)
	}
	if err := m.ForceSave(); err != nil {
		t.Fatalf("ForceSave: %v", err)
	}
}
