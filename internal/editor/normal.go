package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/orged/internal/document"
)

func (e *Editor) handleNormal(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return e.quitGuard()
	case tcell.KeyCtrlS:
		e.save("")
	case tcell.KeyCtrlF:
		e.search()
	case tcell.KeyCtrlO:
		e.openPrompt()
	case tcell.KeyEscape:
		e.state.Clear()
		e.setStatus("")
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown,
		tcell.KeyHome, tcell.KeyEnd, tcell.KeyPgUp, tcell.KeyPgDn:
		if e.state.Operator() != OpNone {
			e.abortOperator()
			return false
		}
		e.moveCursorKey(ev.Key(), e.state.TakeCount())
	case tcell.KeyRune:
		return e.handleNormalRune(ev.Rune())
	}
	return false
}

func (e *Editor) handleNormalRune(r rune) bool {
	if e.state.Operator() != OpNone {
		e.resolveOperator(r)
		return false
	}
	if r >= '0' && r <= '9' {
		if e.state.PushDigit(int(r - '0')) {
			return false
		}
		// A bare zero is the line-start motion.
		e.cursor.X = 0
		return false
	}
	if op := operatorForRune(r); op != OpNone {
		e.state.SetOperator(op)
		return false
	}

	switch r {
	case 'h':
		e.moveCursorKey(tcell.KeyLeft, e.state.TakeCount())
	case 'l':
		e.moveCursorKey(tcell.KeyRight, e.state.TakeCount())
	case 'j':
		e.moveCursorKey(tcell.KeyDown, e.state.TakeCount())
	case 'k':
		e.moveCursorKey(tcell.KeyUp, e.state.TakeCount())
	case '$':
		e.state.TakeCount()
		e.cursor.X = e.rowLen(e.cursor.Y)
	case 'w':
		for n := e.state.TakeCount(); n > 0; n-- {
			e.cursor = e.nextWordStart(e.cursor)
		}
	case 'b':
		for n := e.state.TakeCount(); n > 0; n-- {
			e.cursor = e.prevWordStart(e.cursor)
		}
	case 'G':
		e.gotoLine(e.doc.Len())
	case 'g':
		e.gotoLine(1)
	case 'x':
		for n := e.state.TakeCount(); n > 0; n-- {
			e.deleteUnderCursor()
		}
	case 'i':
		e.mode = ModeInsert
		e.state.Clear()
	case 'a':
		e.mode = ModeInsert
		e.state.Clear()
		if e.cursor.X < e.rowLen(e.cursor.Y) {
			e.cursor.X++
		}
	case 'A':
		e.mode = ModeInsert
		e.state.Clear()
		e.cursor.X = e.rowLen(e.cursor.Y)
	case 'I':
		e.mode = ModeInsert
		e.state.Clear()
		e.cursor.X = e.firstNonBlank(e.cursor.Y)
	case 'o':
		e.openLineBelow()
	case 'O':
		e.openLineAbove()
	case 'p':
		e.paste(false)
	case 'P':
		e.paste(true)
	case 'v':
		e.mode = ModeVisual
		e.state.SetAnchor(e.cursor)
	case 'V':
		e.mode = ModeVisualLine
		e.state.SetAnchor(e.cursor)
	case ':':
		e.mode = ModeCommand
		e.cmd = e.cmd[:0]
		e.state.Clear()
	case '/':
		e.search()
	case 'n':
		e.repeatSearch(document.Forward)
	case 'N':
		e.repeatSearch(document.Backward)
	}
	e.clampCursor()
	return false
}

func operatorForRune(r rune) Operator {
	switch r {
	case 'd':
		return OpDelete
	case 'y':
		return OpYank
	case '>':
		return OpIndent
	case '<':
		return OpOutdent
	case '=':
		return OpFormat
	default:
		return OpNone
	}
}

// resolveOperator completes or aborts an operator-pending command with
// the next key.
func (e *Editor) resolveOperator(r rune) {
	op := e.state.Operator()

	// The repeated operator key acts on whole lines.
	if operatorForRune(r) == op {
		n := e.state.TakeCount()
		e.state.ClearOperator()
		e.runLinewise(op, e.cursor.Y, n)
		return
	}

	if op == OpDelete || op == OpYank {
		switch r {
		case 'j', 'k':
			n := e.state.TakeCount()
			e.state.ClearOperator()
			start := e.cursor.Y
			if r == 'k' {
				start -= n
				if start < 0 {
					n += start
					start = 0
				}
			}
			e.runLinewise(op, start, n+1)
			return
		case '$':
			e.state.TakeCount()
			e.state.ClearOperator()
			e.runToLineEnd(op)
			return
		case '0':
			if !e.state.HasCount() {
				e.state.TakeCount()
				e.state.ClearOperator()
				e.runToLineStart(op)
				return
			}
			e.state.PushDigit(0)
			return
		case 'w':
			n := e.state.TakeCount()
			e.state.ClearOperator()
			e.runToWord(op, n)
			return
		}
		if r >= '0' && r <= '9' {
			e.state.PushDigit(int(r - '0'))
			return
		}
	}

	e.abortOperator()
}

func (e *Editor) abortOperator() {
	op := e.state.Operator()
	e.state.Clear()
	e.setStatusf("Invalid motion after %q", op.String())
}

// runLinewise applies an operator to n whole rows starting at row start.
func (e *Editor) runLinewise(op Operator, start, n int) {
	if n < 1 || start >= e.doc.Len() {
		return
	}
	switch op {
	case OpDelete:
		removed := e.doc.DeleteLines(start, n)
		if len(removed) > 0 {
			e.yank = removed
			e.yankLinewise = true
			e.setStatusf("%d fewer lines", len(removed))
		}
		e.cursor.Y = start
	case OpYank:
		end := start + n
		if end > e.doc.Len() {
			end = e.doc.Len()
		}
		lines := make([]string, 0, end-start)
		for y := start; y < end; y++ {
			lines = append(lines, e.doc.Row(y).String())
		}
		e.yank = lines
		e.yankLinewise = true
		e.setStatusf("%d lines yanked", len(lines))
	case OpIndent:
		e.doc.IndentLines(start, n)
	case OpOutdent:
		e.doc.UnindentLines(start, n)
	case OpFormat:
		e.doc.TrimTrailingLines(start, n)
	}
	e.clampCursor()
}

func (e *Editor) runToLineEnd(op Operator) {
	end := e.rowLen(e.cursor.Y)
	if e.cursor.X >= end {
		return
	}
	span := document.Position{X: end - 1, Y: e.cursor.Y}
	if op == OpYank {
		e.yank = e.doc.TextRange(e.cursor, span)
		e.yankLinewise = false
		return
	}
	e.yank = e.doc.DeleteRange(e.cursor, span)
	e.yankLinewise = false
	e.clampCursor()
}

func (e *Editor) runToLineStart(op Operator) {
	if e.cursor.X == 0 {
		return
	}
	start := document.Position{X: 0, Y: e.cursor.Y}
	end := document.Position{X: e.cursor.X - 1, Y: e.cursor.Y}
	if op == OpYank {
		e.yank = e.doc.TextRange(start, end)
		e.yankLinewise = false
		return
	}
	e.yank = e.doc.DeleteRange(start, end)
	e.yankLinewise = false
	e.cursor.X = 0
}

func (e *Editor) runToWord(op Operator, n int) {
	target := e.cursor
	for ; n > 0; n-- {
		target = e.nextWordStart(target)
	}
	if target == e.cursor {
		return
	}
	end := e.prevPosition(target)
	if op == OpYank {
		e.yank = e.doc.TextRange(e.cursor, end)
		e.yankLinewise = false
		return
	}
	e.yank = e.doc.DeleteRange(e.cursor, end)
	e.yankLinewise = false
	e.clampCursor()
}

func (e *Editor) handleVisual(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		e.enterNormal()
		return false
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown,
		tcell.KeyHome, tcell.KeyEnd, tcell.KeyPgUp, tcell.KeyPgDn:
		e.moveCursorKey(ev.Key(), 1)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch r := ev.Rune(); r {
	case 'h':
		e.moveCursorKey(tcell.KeyLeft, 1)
	case 'l':
		e.moveCursorKey(tcell.KeyRight, 1)
	case 'j':
		e.moveCursorKey(tcell.KeyDown, 1)
	case 'k':
		e.moveCursorKey(tcell.KeyUp, 1)
	case '0':
		e.cursor.X = 0
	case '$':
		e.cursor.X = e.rowLen(e.cursor.Y)
	case 'w':
		e.cursor = e.nextWordStart(e.cursor)
	case 'b':
		e.cursor = e.prevWordStart(e.cursor)
	case 'd', 'x':
		e.deleteSelection()
	case 'y':
		e.yankSelection()
	case '>':
		start, end := e.selectedRows()
		e.doc.IndentLines(start, end-start+1)
		e.enterNormal()
	case '<':
		start, end := e.selectedRows()
		e.doc.UnindentLines(start, end-start+1)
		e.enterNormal()
	case '=':
		start, end := e.selectedRows()
		e.doc.TrimTrailingLines(start, end-start+1)
		e.enterNormal()
	case 'v':
		if e.mode == ModeVisual {
			e.enterNormal()
		} else {
			e.mode = ModeVisual
		}
	case 'V':
		if e.mode == ModeVisualLine {
			e.enterNormal()
		} else {
			e.mode = ModeVisualLine
		}
	}
	e.clampCursor()
	return false
}

// selection returns the anchor and cursor in document order.
func (e *Editor) selection() (document.Position, document.Position) {
	anchor, ok := e.state.Anchor()
	if !ok {
		return e.cursor, e.cursor
	}
	if anchor.Y > e.cursor.Y || (anchor.Y == e.cursor.Y && anchor.X > e.cursor.X) {
		return e.cursor, anchor
	}
	return anchor, e.cursor
}

func (e *Editor) selectedRows() (int, int) {
	start, end := e.selection()
	return start.Y, end.Y
}

func (e *Editor) deleteSelection() {
	start, end := e.selection()
	if e.mode == ModeVisualLine {
		removed := e.doc.DeleteLines(start.Y, end.Y-start.Y+1)
		if len(removed) > 0 {
			e.yank = removed
			e.yankLinewise = true
		}
		e.cursor = document.Position{X: 0, Y: start.Y}
	} else {
		e.yank = e.doc.DeleteRange(start, end)
		e.yankLinewise = false
		e.cursor = start
	}
	e.enterNormal()
	e.clampCursor()
}

func (e *Editor) yankSelection() {
	start, end := e.selection()
	if e.mode == ModeVisualLine {
		lines := make([]string, 0, end.Y-start.Y+1)
		for y := start.Y; y <= end.Y && y < e.doc.Len(); y++ {
			lines = append(lines, e.doc.Row(y).String())
		}
		e.yank = lines
		e.yankLinewise = true
		e.setStatusf("%d lines yanked", len(lines))
	} else {
		e.yank = e.doc.TextRange(start, end)
		e.yankLinewise = false
	}
	e.cursor = start
	e.enterNormal()
}

func (e *Editor) paste(before bool) {
	e.state.TakeCount()
	if len(e.yank) == 0 {
		e.setStatus("Nothing to paste")
		return
	}
	if e.yankLinewise {
		at := e.cursor.Y + 1
		if before {
			at = e.cursor.Y
		}
		e.doc.InsertLines(at, e.yank)
		e.cursor = document.Position{X: 0, Y: at}
		return
	}
	pos := e.cursor
	if !before && pos.X < e.rowLen(pos.Y) {
		pos.X++
	}
	for i, line := range e.yank {
		if i > 0 {
			e.doc.Insert(pos, '\n')
			pos = document.Position{X: 0, Y: pos.Y + 1}
		}
		for _, r := range line {
			e.doc.Insert(pos, r)
			pos.X++
		}
	}
	e.cursor = pos
	e.clampCursor()
}

func (e *Editor) deleteUnderCursor() {
	row := e.doc.Row(e.cursor.Y)
	if row == nil || e.cursor.X >= row.Len() {
		return
	}
	e.doc.Delete(e.cursor)
}

func (e *Editor) openLineBelow() {
	e.state.Clear()
	e.cursor.X = e.rowLen(e.cursor.Y)
	e.doc.Insert(e.cursor, '\n')
	e.cursor = document.Position{X: 0, Y: e.cursor.Y + 1}
	e.mode = ModeInsert
}

func (e *Editor) openLineAbove() {
	e.state.Clear()
	e.cursor.X = 0
	e.doc.Insert(e.cursor, '\n')
	e.cursor = document.Position{X: 0, Y: e.cursor.Y}
	e.mode = ModeInsert
}

// gotoLine implements G and g: with a count it is an absolute line
// number, without one it jumps to the given default line.
func (e *Editor) gotoLine(defaultLine int) {
	line := defaultLine
	if e.state.HasCount() {
		line = e.state.TakeCount()
	} else {
		e.state.TakeCount()
	}
	if line < 1 {
		line = 1
	}
	if line > e.doc.Len() {
		line = e.doc.Len()
	}
	if line > 0 {
		e.cursor.Y = line - 1
	}
	e.cursor.X = 0
	e.clampCursor()
}

func (e *Editor) moveCursorKey(key tcell.Key, n int) {
	for ; n > 0; n-- {
		switch key {
		case tcell.KeyLeft:
			if e.cursor.X > 0 {
				e.cursor.X--
			} else if e.cursor.Y > 0 {
				e.cursor.Y--
				e.cursor.X = e.rowLen(e.cursor.Y)
			}
		case tcell.KeyRight:
			if e.cursor.X < e.rowLen(e.cursor.Y) {
				e.cursor.X++
			} else if e.cursor.Y+1 < e.doc.Len() {
				e.cursor.Y++
				e.cursor.X = 0
			}
		case tcell.KeyUp:
			if e.cursor.Y > 0 {
				e.cursor.Y--
			}
		case tcell.KeyDown:
			if e.cursor.Y+1 < e.doc.Len() {
				e.cursor.Y++
			}
		case tcell.KeyHome:
			e.cursor.X = 0
		case tcell.KeyEnd:
			e.cursor.X = e.rowLen(e.cursor.Y)
		case tcell.KeyPgUp:
			e.cursor.Y -= e.pageSize()
			if e.cursor.Y < 0 {
				e.cursor.Y = 0
			}
		case tcell.KeyPgDn:
			e.cursor.Y += e.pageSize()
			if e.cursor.Y >= e.doc.Len() {
				e.cursor.Y = e.doc.Len() - 1
			}
		}
	}
	e.clampCursor()
}

func (e *Editor) pageSize() int {
	if e.viewHeight > 0 {
		return e.viewHeight
	}
	return 20
}

func (e *Editor) rowLen(y int) int {
	row := e.doc.Row(y)
	if row == nil {
		return 0
	}
	return row.Len()
}

func (e *Editor) firstNonBlank(y int) int {
	row := e.doc.Row(y)
	if row == nil {
		return 0
	}
	for i, cl := range row.Clusters() {
		if cl != " " && cl != "\t" {
			return i
		}
	}
	return 0
}

func (e *Editor) clampCursor() {
	if e.cursor.Y < 0 {
		e.cursor.Y = 0
	}
	if e.cursor.Y > e.doc.Len() {
		e.cursor.Y = e.doc.Len()
	}
	if e.cursor.X < 0 {
		e.cursor.X = 0
	}
	if max := e.rowLen(e.cursor.Y); e.cursor.X > max {
		e.cursor.X = max
	}
}

// prevPosition steps one grapheme back, crossing row boundaries.
func (e *Editor) prevPosition(p document.Position) document.Position {
	if p.X > 0 {
		return document.Position{X: p.X - 1, Y: p.Y}
	}
	if p.Y > 0 {
		return document.Position{X: e.rowLen(p.Y - 1), Y: p.Y - 1}
	}
	return p
}

func (e *Editor) nextWordStart(p document.Position) document.Position {
	row := e.doc.Row(p.Y)
	if row == nil {
		return p
	}
	cl := row.Clusters()
	x := p.X
	// Skip the rest of the current word, then any whitespace.
	for x < len(cl) && !isWordSep(cl[x]) {
		x++
	}
	for x < len(cl) && isWordSep(cl[x]) {
		x++
	}
	if x < len(cl) {
		return document.Position{X: x, Y: p.Y}
	}
	if p.Y+1 < e.doc.Len() {
		next := document.Position{X: 0, Y: p.Y + 1}
		if r := e.doc.Row(next.Y); r != nil && r.Len() > 0 && isWordSep(r.Clusters()[0]) {
			return e.nextWordStart(next)
		}
		return next
	}
	return document.Position{X: len(cl), Y: p.Y}
}

func (e *Editor) prevWordStart(p document.Position) document.Position {
	x, y := p.X, p.Y
	if x == 0 {
		if y == 0 {
			return p
		}
		y--
		x = e.rowLen(y)
	}
	row := e.doc.Row(y)
	if row == nil {
		return p
	}
	cl := row.Clusters()
	x--
	if x < 0 {
		return document.Position{X: 0, Y: y}
	}
	for x > 0 && isWordSep(cl[x]) {
		x--
	}
	for x > 0 && !isWordSep(cl[x-1]) {
		x--
	}
	return document.Position{X: x, Y: y}
}

func isWordSep(cl string) bool {
	return cl == " " || cl == "\t"
}
