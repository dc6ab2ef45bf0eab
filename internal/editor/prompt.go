package editor

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/orged/internal/document"
)

// promptCallback observes every keystroke of an in-progress prompt and
// may move the cursor or adjust session state.
type promptCallback func(e *Editor, ev *tcell.EventKey, input string)

// prompt runs a blocking mini event loop on the message line. It returns
// the entered text, with ok == false when the prompt was cancelled.
func (e *Editor) prompt(label string, cb promptCallback) (string, bool) {
	if e.pollEvent == nil {
		return "", false
	}
	var input []rune
	for {
		e.setStatus(label + string(input))
		e.render()
		ev, ok := e.pollEvent().(*tcell.EventKey)
		if !ok {
			continue
		}
		switch ev.Key() {
		case tcell.KeyEnter:
			e.setStatus("")
			return string(input), true
		case tcell.KeyEscape, tcell.KeyCtrlC:
			e.setStatus("")
			return "", false
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case tcell.KeyRune:
			if r := ev.Rune(); unicode.IsPrint(r) {
				input = append(input, r)
			}
		}
		if cb != nil {
			cb(e, ev, string(input))
		}
	}
}

func (e *Editor) render() {
	if e.screen != nil {
		e.Render(e.screen)
	}
}

// search runs the incremental search prompt. Every keystroke jumps to the
// nearest match; arrows pick the direction; Esc restores the original
// cursor.
func (e *Editor) search() {
	e.state.Clear()
	oldCursor := e.cursor
	oldOffset := e.offset
	direction := document.Forward

	query, ok := e.prompt("Search (ESC to cancel, arrows to navigate): ",
		func(ed *Editor, ev *tcell.EventKey, input string) {
			moved := false
			switch ev.Key() {
			case tcell.KeyRight, tcell.KeyDown:
				direction = document.Forward
				ed.moveCursorKey(tcell.KeyRight, 1)
				moved = true
			case tcell.KeyLeft, tcell.KeyUp:
				direction = document.Backward
			default:
				direction = document.Forward
			}
			if input != "" {
				if pos, found := ed.findWithWrap(input, ed.cursor, direction); found {
					ed.cursor = pos
				} else if moved {
					ed.moveCursorKey(tcell.KeyLeft, 1)
				}
			}
			ed.searchWord = input
		})

	if !ok || query == "" {
		e.cursor = oldCursor
		e.offset = oldOffset
	} else {
		e.lastSearch = query
	}
	e.searchWord = ""
}

// repeatSearch implements n and N using the last accepted query.
func (e *Editor) repeatSearch(dir document.SearchDirection) {
	e.state.TakeCount()
	if e.lastSearch == "" {
		e.setStatus("No previous search")
		return
	}
	from := e.cursor
	if dir == document.Forward {
		from = e.nextPosition(from)
	}
	pos, found := e.findWithWrap(e.lastSearch, from, dir)
	if !found {
		e.setStatusf("Pattern not found: %s", e.lastSearch)
		return
	}
	e.cursor = pos
}

// findWithWrap searches from pos and retries once from the document
// start or end, reporting the wrap in the status line.
func (e *Editor) findWithWrap(query string, pos document.Position, dir document.SearchDirection) (document.Position, bool) {
	if found, ok := e.doc.Find(query, pos, dir); ok {
		return found, true
	}
	var retry document.Position
	if dir == document.Forward {
		retry = document.Position{}
	} else {
		y := e.doc.Len() - 1
		if y < 0 {
			return document.Position{}, false
		}
		retry = document.Position{X: e.rowLen(y), Y: y}
	}
	if found, ok := e.doc.Find(query, retry, dir); ok {
		e.setStatus("Search wrapped around")
		return found, true
	}
	return document.Position{}, false
}

// nextPosition steps one grapheme forward, crossing row boundaries.
func (e *Editor) nextPosition(p document.Position) document.Position {
	if p.X < e.rowLen(p.Y) {
		return document.Position{X: p.X + 1, Y: p.Y}
	}
	if p.Y+1 < e.doc.Len() {
		return document.Position{X: 0, Y: p.Y + 1}
	}
	return p
}

// openPrompt asks for a path and replaces the current document,
// confirming first when there are unsaved changes.
func (e *Editor) openPrompt() {
	if e.doc.IsDirty() {
		answer, ok := e.prompt("Discard unsaved changes? (y/n): ", nil)
		if !ok || answer != "y" {
			e.setStatus("Open aborted.")
			return
		}
	}
	path, ok := e.prompt("Open file: ", nil)
	if !ok || path == "" {
		e.setStatus("Open aborted.")
		return
	}
	if err := e.OpenFile(path); err != nil {
		e.setStatusf("ERR: could not open %s", path)
	}
}
