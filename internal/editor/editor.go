package editor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/orged/internal/config"
	"github.com/kobzarvs/orged/internal/document"
	"github.com/kobzarvs/orged/internal/highlight"
	"github.com/kobzarvs/orged/internal/logger"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeVisualLine
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "V-LINE"
	case ModeCommand:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

const messageTimeout = 5 * time.Second

// Editor is the single editing session: one document, one cursor, one
// modal command state.
type Editor struct {
	doc    *document.Document
	cursor document.Position
	offset document.Position
	mode   Mode
	state  CommandState

	cmd           []rune
	statusMessage string
	statusTime    time.Time

	searchWord string
	lastSearch string

	yank         []string
	yankLinewise bool

	quitTimes    int
	maxQuitTimes int
	tabWidth     int
	hideWelcome  bool
	gitBranch    string

	viewWidth  int
	viewHeight int

	screen    tcell.Screen
	pollEvent func() tcell.Event

	styleMain      tcell.Style
	styleStatus    tcell.Style
	styleMessage   tcell.Style
	styleSelection tcell.Style
	styles         map[highlight.Category]tcell.Style
}

func New(cfg config.Config) *Editor {
	tabWidth := cfg.Editor.TabWidth
	if tabWidth < 1 {
		tabWidth = 1
	}
	quitTimes := cfg.Editor.QuitTimes
	if quitTimes < 1 {
		quitTimes = 1
	}
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorGray)
	messageFg := parseColor(cfg.Theme.MessageForeground, mainFg)
	messageBg := parseColor(cfg.Theme.MessageBackground, mainBg)
	selectionFg := parseColor(cfg.Theme.SelectionForeground, mainFg)
	selectionBg := parseColor(cfg.Theme.SelectionBackground, mainBg)

	fg := func(hex string) tcell.Style {
		return tcell.StyleDefault.Foreground(parseColor(hex, mainFg)).Background(mainBg)
	}
	styles := map[highlight.Category]tcell.Style{
		highlight.None:             tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		highlight.Number:           fg(cfg.Theme.Number),
		highlight.String:           fg(cfg.Theme.String),
		highlight.Character:        fg(cfg.Theme.Character),
		highlight.Comment:          fg(cfg.Theme.Comment),
		highlight.MultilineComment: fg(cfg.Theme.MultilineComment),
		highlight.PrimaryKeyword:   fg(cfg.Theme.PrimaryKeyword),
		highlight.SecondaryKeyword: fg(cfg.Theme.SecondaryKeyword),
		highlight.Headline:         fg(cfg.Theme.Headline),
		highlight.TodoKeyword:      fg(cfg.Theme.TodoKeyword),
		highlight.DoneKeyword:      fg(cfg.Theme.DoneKeyword),
		highlight.Tag:              fg(cfg.Theme.Tag),
		highlight.ListMarker:       fg(cfg.Theme.ListMarker),
		highlight.Bold:             fg(cfg.Theme.Bold).Bold(true),
		highlight.Italic:           fg(cfg.Theme.Italic).Italic(true),
		highlight.Underline:        fg(cfg.Theme.Underline).Underline(true),
		highlight.Link:             fg(cfg.Theme.Link).Underline(true),
		highlight.CodeBlock:        fg(cfg.Theme.CodeBlock),
	}
	styles[highlight.Match] = tcell.StyleDefault.
		Foreground(parseColor(cfg.Theme.MatchForeground, tcell.ColorBlack)).
		Background(parseColor(cfg.Theme.MatchBackground, tcell.ColorYellow))

	return &Editor{
		doc:          document.New(),
		mode:         ModeNormal,
		tabWidth:     tabWidth,
		quitTimes:    quitTimes,
		maxQuitTimes: quitTimes,
		hideWelcome:  cfg.Editor.HideWelcome,
		styleMain:    tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleStatus:  tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleMessage: tcell.StyleDefault.Foreground(messageFg).Background(messageBg),
		styleSelection: tcell.StyleDefault.
			Foreground(selectionFg).Background(selectionBg),
		styles: styles,
	}
}

// SetEventSource wires the terminal screen into the session. Blocking
// prompts use it to run their own event loops.
func (e *Editor) SetEventSource(s tcell.Screen) {
	e.screen = s
	if s != nil {
		e.pollEvent = s.PollEvent
	}
}

func (e *Editor) SetGitBranch(branch string) { e.gitBranch = branch }

func (e *Editor) Document() *document.Document { return e.doc }

func (e *Editor) Cursor() document.Position { return e.cursor }

func (e *Editor) Offset() document.Position { return e.offset }

func (e *Editor) Mode() Mode { return e.mode }

func (e *Editor) State() *CommandState { return &e.state }

func (e *Editor) StatusMessage() string { return e.statusMessage }

// OpenFile replaces the session's document. A missing or unreadable file
// leaves the current document in place and reports the failure.
func (e *Editor) OpenFile(path string) error {
	doc, err := document.Open(path)
	if err != nil {
		logger.Error("open failed", "path", path, "error", err)
		return err
	}
	e.doc = doc
	e.cursor = document.Position{}
	e.offset = document.Position{}
	e.mode = ModeNormal
	e.state.Clear()
	e.searchWord = ""
	e.quitTimes = e.maxQuitTimes
	logger.Info("opened file", "path", path, "rows", doc.Len())
	return nil
}

// RestorePosition places the cursor and scroll offset, clamping both to
// the current document. Used when reopening a file from a saved session.
func (e *Editor) RestorePosition(cursor, offset document.Position) {
	e.cursor = cursor
	e.clampCursor()
	if offset.Y < 0 {
		offset.Y = 0
	}
	if offset.Y > e.cursor.Y {
		offset.Y = e.cursor.Y
	}
	if offset.X < 0 {
		offset.X = 0
	}
	e.offset = offset
}

func (e *Editor) setStatus(msg string) {
	e.statusMessage = msg
	e.statusTime = time.Now()
}

func (e *Editor) setStatusf(format string, args ...interface{}) {
	e.setStatus(fmt.Sprintf(format, args...))
}

// HandleKey routes one keystroke by mode and reports whether the session
// should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyCtrlQ && e.quitTimes < e.maxQuitTimes {
		e.quitTimes = e.maxQuitTimes
		e.setStatus("")
	}
	switch e.mode {
	case ModeInsert:
		return e.handleInsert(ev)
	case ModeCommand:
		return e.handleCommand(ev)
	case ModeVisual, ModeVisualLine:
		return e.handleVisual(ev)
	default:
		return e.handleNormal(ev)
	}
}

func (e *Editor) handleInsert(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.enterNormal()
		if e.cursor.X > 0 {
			e.cursor.X--
		}
	case tcell.KeyEnter:
		e.doc.Insert(e.cursor, '\n')
		e.cursor = document.Position{X: 0, Y: e.cursor.Y + 1}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.backspace()
	case tcell.KeyDelete:
		e.doc.Delete(e.cursor)
	case tcell.KeyTab:
		e.doc.Insert(e.cursor, '\t')
		e.cursor.X++
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown,
		tcell.KeyHome, tcell.KeyEnd, tcell.KeyPgUp, tcell.KeyPgDn:
		e.moveCursorKey(ev.Key(), 1)
	case tcell.KeyRune:
		e.doc.Insert(e.cursor, ev.Rune())
		e.cursor.X++
	}
	return false
}

func (e *Editor) backspace() {
	if e.cursor.X == 0 && e.cursor.Y == 0 {
		return
	}
	if e.cursor.X > 0 {
		e.cursor.X--
		e.doc.Delete(e.cursor)
		return
	}
	prev := e.doc.Row(e.cursor.Y - 1)
	x := 0
	if prev != nil {
		x = prev.Len()
	}
	e.cursor = document.Position{X: x, Y: e.cursor.Y - 1}
	e.doc.Delete(e.cursor)
}

func (e *Editor) handleCommand(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		e.enterNormal()
		e.cmd = e.cmd[:0]
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(string(e.cmd))
		e.enterNormal()
		e.cmd = e.cmd[:0]
		return e.execCommand(cmd)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.cmd) > 0 {
			e.cmd = e.cmd[:len(e.cmd)-1]
		} else {
			e.enterNormal()
		}
	case tcell.KeyCtrlU:
		e.cmd = e.cmd[:0]
	case tcell.KeyRune:
		e.cmd = append(e.cmd, ev.Rune())
	}
	return false
}

func (e *Editor) execCommand(cmd string) bool {
	if cmd == "" {
		return false
	}
	fields := strings.Fields(cmd)
	name := fields[0]
	args := fields[1:]

	switch name {
	case "w":
		path := ""
		if len(args) > 0 {
			path = strings.Join(args, " ")
		}
		e.save(path)
		return false
	case "q":
		if e.doc.IsDirty() {
			e.setStatus("unsaved changes (use :q!)")
			return false
		}
		return true
	case "q!":
		return true
	case "wq", "x":
		path := ""
		if len(args) > 0 {
			path = strings.Join(args, " ")
		}
		if !e.save(path) {
			return false
		}
		return true
	default:
		e.setStatus("unknown command: " + name)
		return false
	}
}

// save writes the document, prompting for a name when it has none, and
// reports success.
func (e *Editor) save(path string) bool {
	if path != "" {
		if err := e.doc.SaveAs(path); err != nil {
			logger.Error("save failed", "path", path, "error", err)
			e.setStatus(err.Error())
			return false
		}
		e.setStatusf("%q written", path)
		return true
	}
	if e.doc.FileName == "" {
		name, ok := e.prompt("Save as: ", nil)
		if !ok || name == "" {
			e.setStatus("Save aborted.")
			return false
		}
		path = name
		if err := e.doc.SaveAs(path); err != nil {
			logger.Error("save failed", "path", path, "error", err)
			e.setStatus(err.Error())
			return false
		}
		e.setStatusf("%q written", path)
		return true
	}
	if err := e.doc.Save(); err != nil {
		logger.Error("save failed", "path", e.doc.FileName, "error", err)
		e.setStatus(err.Error())
		return false
	}
	e.setStatus("File saved successfully.")
	return true
}

// quitGuard implements the repeated Ctrl-Q confirmation on a dirty
// buffer.
func (e *Editor) quitGuard() bool {
	if e.doc.IsDirty() && e.quitTimes > 0 {
		e.setStatusf("WARNING! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimes)
		e.quitTimes--
		return false
	}
	return true
}

func (e *Editor) enterNormal() {
	e.mode = ModeNormal
	e.state.Clear()
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	if c, ok := tcell.ColorNames[strings.ToLower(name)]; ok {
		return c
	}
	return fallback
}
