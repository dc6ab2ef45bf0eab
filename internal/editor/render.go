package editor

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/kobzarvs/orged/internal/document"
	"github.com/kobzarvs/orged/internal/highlight"
)

const welcomeMessage = "orged -- modal org editor"

// Render paints the visible window, the status bar, and the message bar.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	statusY := h - 2
	messageY := h - 1
	viewHeight := h - 2
	if viewHeight < 0 {
		viewHeight = 0
	}
	e.viewWidth = w
	e.viewHeight = viewHeight
	e.scrollIntoView()

	e.doc.Highlight(e.searchWord, e.offset.Y+viewHeight)

	s.SetStyle(e.styleMain)
	s.Clear()

	selStart, selEnd := e.selection()
	selecting := e.mode == ModeVisual || e.mode == ModeVisualLine

	for y := 0; y < viewHeight; y++ {
		rowIdx := e.offset.Y + y
		row := e.doc.Row(rowIdx)
		if row == nil {
			if e.doc.IsEmpty() && !e.hideWelcome && y == viewHeight/3 {
				e.drawWelcome(s, w, y)
			} else {
				s.SetContent(0, y, '~', nil, e.styleMain)
			}
			continue
		}
		x := 0
		col := e.offset.X
		for _, run := range row.Render(e.offset.X, e.offset.X+w) {
			style := e.categoryStyle(run.Category)
			rest := run.Text
			state := -1
			// One cell per grapheme cluster: combining marks ride along
			// with the cluster's first rune.
			for len(rest) > 0 {
				var cl string
				cl, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
				rs := []rune(cl)
				st := style
				if selecting && e.inSelection(selStart, selEnd, col, rowIdx) {
					st = e.styleSelection
				}
				s.SetContent(x, y, rs[0], rs[1:], st)
				x++
				col++
			}
		}
	}

	if statusY >= 0 {
		e.drawStatusBar(s, w, statusY)
	}
	if messageY >= 0 {
		e.drawMessageBar(s, w, messageY)
	}

	cx := e.cursor.X - e.offset.X
	cy := e.cursor.Y - e.offset.Y
	if e.mode == ModeCommand {
		cx = len(e.cmd) + 1
		cy = messageY
	}
	if cx >= 0 && cy >= 0 && cx < w && cy < h {
		s.ShowCursor(cx, cy)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (e *Editor) categoryStyle(cat highlight.Category) tcell.Style {
	if st, ok := e.styles[cat]; ok {
		return st
	}
	return e.styleMain
}

// inSelection reports whether a cell lies inside the active visual span.
func (e *Editor) inSelection(start, end document.Position, col, row int) bool {
	if e.mode == ModeVisualLine {
		return row >= start.Y && row <= end.Y
	}
	if row < start.Y || row > end.Y {
		return false
	}
	if row == start.Y && col < start.X {
		return false
	}
	if row == end.Y && col > end.X {
		return false
	}
	return true
}

func (e *Editor) scrollIntoView() {
	if e.cursor.Y < e.offset.Y {
		e.offset.Y = e.cursor.Y
	}
	if e.viewHeight > 0 && e.cursor.Y >= e.offset.Y+e.viewHeight {
		e.offset.Y = e.cursor.Y - e.viewHeight + 1
	}
	if e.cursor.X < e.offset.X {
		e.offset.X = e.cursor.X
	}
	if e.viewWidth > 0 && e.cursor.X >= e.offset.X+e.viewWidth {
		e.offset.X = e.cursor.X - e.viewWidth + 1
	}
}

func (e *Editor) drawWelcome(s tcell.Screen, w, y int) {
	msg := welcomeMessage
	if len(msg) > w {
		msg = msg[:w]
	}
	pad := (w - len(msg)) / 2
	x := 0
	if pad > 0 {
		s.SetContent(0, y, '~', nil, e.styleMain)
		x = pad
	}
	for _, r := range msg {
		s.SetContent(x, y, r, nil, e.styleMain)
		x++
	}
}

func (e *Editor) drawStatusBar(s tcell.Screen, w, y int) {
	name := e.doc.FileName
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if e.doc.IsDirty() {
		modified = " (modified)"
	}
	branch := ""
	if e.gitBranch != "" {
		branch = " git:" + e.gitBranch
	}
	left := fmt.Sprintf(" %s - %d lines%s%s", name, e.doc.Len(), modified, branch)
	right := fmt.Sprintf("%s | %s | %d/%d ",
		e.mode, e.doc.FileType().Name, e.cursor.Y+1, e.doc.Len())

	drawBar(s, w, y, left, right, e.styleStatus)
}

func (e *Editor) drawMessageBar(s tcell.Screen, w, y int) {
	msg := ""
	switch {
	case e.mode == ModeCommand:
		msg = ":" + string(e.cmd)
	case time.Since(e.statusTime) < messageTimeout:
		msg = e.statusMessage
	}
	drawBar(s, w, y, msg, "", e.styleMessage)
}

func drawBar(s tcell.Screen, w, y int, left, right string, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
	x := 0
	for _, r := range left {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	rr := []rune(right)
	if start := w - len(rr); start > x {
		for i, r := range rr {
			s.SetContent(start+i, y, r, nil, style)
		}
	}
}
