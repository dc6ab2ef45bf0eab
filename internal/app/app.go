// Package app is the top-level runtime: it owns the terminal screen,
// the event loop, and the wiring between editor, session, and git state.
package app

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/orged/internal/config"
	"github.com/kobzarvs/orged/internal/document"
	"github.com/kobzarvs/orged/internal/editor"
	"github.com/kobzarvs/orged/internal/gitinfo"
	"github.com/kobzarvs/orged/internal/highlight"
	"github.com/kobzarvs/orged/internal/logger"
	"github.com/kobzarvs/orged/internal/session"
	"github.com/kobzarvs/orged/internal/treesitter"
)

const gitRefreshInterval = 2 * time.Second

type App struct {
	args  []string
	debug bool
}

func New(args []string, debug bool) *App {
	return &App{args: args, debug: debug}
}

func (a *App) Run() error {
	runtime.LockOSThread()

	if err := logger.Init(a.debug); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	highlight.SetMarkdownProvider(treesitter.Shared())

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ed := editor.New(cfg)
	ed.SetEventSource(s)

	sm, err := session.NewManager()
	if err != nil {
		logger.Warn("session disabled", "error", err)
		sm = nil
	} else {
		defer sm.Stop()
	}

	gitPath := ""
	if len(a.args) > 0 {
		path := a.args[0]
		if err := ed.OpenFile(path); err != nil {
			return err
		}
		gitPath = path
		a.restorePosition(ed, sm, path)
	}
	if gitPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			gitPath = cwd
		}
	}
	ed.SetGitBranch(gitinfo.Branch(gitPath))

	lastGitCheck := time.Now()
	ed.Render(s)
	for {
		switch ev := s.PollEvent().(type) {
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				a.savePosition(ed, sm)
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		}
		if gitPath != "" && time.Since(lastGitCheck) > gitRefreshInterval {
			lastGitCheck = time.Now()
			ed.SetGitBranch(gitinfo.Branch(gitPath))
		}
		ed.Render(s)
	}
}

func (a *App) restorePosition(ed *editor.Editor, sm *session.Manager, path string) {
	if sm == nil {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	if state, ok := sm.FileState(abs); ok {
		ed.RestorePosition(
			document.Position{X: state.CursorX, Y: state.CursorY},
			document.Position{X: state.ScrollX, Y: state.ScrollY},
		)
	}
}

func (a *App) savePosition(ed *editor.Editor, sm *session.Manager) {
	if sm == nil || ed.Document().FileName == "" {
		return
	}
	abs, err := filepath.Abs(ed.Document().FileName)
	if err != nil {
		return
	}
	cursor, offset := ed.Cursor(), ed.Offset()
	sm.SetFileState(abs, session.FileState{
		CursorX: cursor.X,
		CursorY: cursor.Y,
		ScrollX: offset.X,
		ScrollY: offset.Y,
	})
}
