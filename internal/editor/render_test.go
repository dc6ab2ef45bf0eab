package editor

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func TestRenderClusterPerCell(t *testing.T) {
	e := newTestEditor("éx")
	e.cursor.X = 1

	s := newSimScreen(t, 20, 5)
	e.Render(s)

	cells, _, _ := s.GetContents()
	first := cells[0]
	if len(first.Runes) != 2 || first.Runes[0] != 'e' || first.Runes[1] != '́' {
		t.Fatalf("cell 0 runes = %q, want e with combining acute", first.Runes)
	}
	second := cells[1]
	if len(second.Runes) == 0 || second.Runes[0] != 'x' {
		t.Fatalf("cell 1 runes = %q, want x", second.Runes)
	}

	cx, cy, visible := s.GetCursor()
	if !visible || cx != 1 || cy != 0 {
		t.Fatalf("cursor = (%d,%d) visible=%v, want (1,0) visible", cx, cy, visible)
	}
}

func TestRenderSelectionAlignsWithClusters(t *testing.T) {
	e := newTestEditor("éxy")
	typeKeys(e, "lv")

	s := newSimScreen(t, 20, 5)
	e.Render(s)

	cells, _, _ := s.GetContents()
	if cells[0].Style == e.styleSelection {
		t.Fatal("cell 0 selected, selection starts at column 1")
	}
	if cells[1].Style != e.styleSelection {
		t.Fatal("cell 1 not selected")
	}
	if cells[2].Style == e.styleSelection {
		t.Fatal("cell 2 selected, selection ends at column 1")
	}
}

func TestRenderCommandLinePlacement(t *testing.T) {
	e := newTestEditor("abc")
	typeKeys(e, ":w")

	s := newSimScreen(t, 20, 5)
	e.Render(s)

	cells, w, h := s.GetContents()
	cmdCell := cells[(h-1)*w]
	if len(cmdCell.Runes) == 0 || cmdCell.Runes[0] != ':' {
		t.Fatalf("command line first rune = %q, want ':'", cmdCell.Runes)
	}

	cx, cy, _ := s.GetCursor()
	if cy != h-1 || cx != len(e.cmd)+1 {
		t.Fatalf("cursor = (%d,%d), want (%d,%d)", cx, cy, len(e.cmd)+1, h-1)
	}
}
