// Package app is the terminal front end: it turns tcell events into editor
// events and draws the buffer's frames.
package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/kedit/internal/config"
	"github.com/kobzarvs/kedit/internal/editor"
	"github.com/kobzarvs/kedit/internal/logger"
)

const unsavedQuitMessage = "unsaved changes, save with w or press ctrl+q again to quit"

// App is the top-level runtime for kedit.
type App struct {
	args []string
	// screen replaces the terminal, for tests
	screen tcell.Screen

	buf       *editor.Buffer
	palette   palette
	quitArmed bool
}

func New(args []string) *App {
	return &App{args: args}
}

// Run opens the file argument with cfg and runs the terminal loop until the
// user quits.
func (a *App) Run(cfg config.Config) error {
	runtime.LockOSThread()
	langs, err := config.LoadLanguages()
	if err != nil {
		return fmt.Errorf("load languages: %w", err)
	}
	a.open(cfg, langs)

	s := a.screen
	if s == nil {
		if s, err = tcell.NewScreen(); err != nil {
			return err
		}
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	s.EnableMouse()
	return a.loop(s)
}

// open creates the buffer for the file argument, or an unnamed one.
func (a *App) open(cfg config.Config, langs config.Languages) {
	opts := editor.OptionsFromConfig(cfg)
	opts.Resolver = newResolver(cfg, langs)
	a.palette = newPalette(cfg.Theme, cfg.Highlight.Style)
	if len(a.args) == 0 {
		a.buf = editor.New("", opts)
		return
	}
	path := a.args[0]
	if lang := langs.Match(path); lang != nil {
		opts.CommentToken = lang.CommentToken
	}
	a.buf = editor.Open(path, opts)
	logger.Info("opened file", "path", path, "lines", a.buf.Document().LineCount())
}

func (a *App) loop(s tcell.Screen) error {
	draw(s, a.buf, a.palette)
	s.Show()
	for {
		if a.handle(s, s.PollEvent()) {
			return nil
		}
		draw(s, a.buf, a.palette)
		s.Show()
	}
}

// handle processes one terminal event and reports whether to exit.
func (a *App) handle(s tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		// screen finalised
		return true
	case *tcell.EventKey:
		e, ok := keyEvent(ev)
		if !ok {
			return false
		}
		if err := a.buf.HandleEvent(e); err != nil {
			a.buf.SetStatus(err.Error())
		}
		if a.buf.ConsumeQuit() {
			return a.quit()
		}
		a.quitArmed = false
	case *tcell.EventMouse:
		if e, ok := scrollEvent(ev); ok {
			_ = a.buf.HandleEvent(e)
		}
	case *tcell.EventResize:
		s.Sync()
	}
	return false
}

// quit exits when the buffer can be closed, or on the second request in a
// row.
func (a *App) quit() bool {
	if a.buf.IsClosable() || a.quitArmed {
		return true
	}
	a.quitArmed = true
	a.buf.SetStatus(unsavedQuitMessage)
	logger.Info("quit refused, buffer modified", "title", a.buf.Title())
	return false
}

// Main runs the editor with the process arguments and returns the exit
// status.
func Main(args []string) int {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "kedit: load config:", err)
		return 1
	}
	if err := initLogging(cfg.Log); err != nil {
		fmt.Fprintln(os.Stderr, "kedit: logging disabled:", err)
	}
	defer logger.Close()
	if err := New(args).Run(cfg); err != nil {
		logger.Error("kedit exited", "err", err)
		fmt.Fprintln(os.Stderr, "kedit:", err)
		return 1
	}
	return 0
}

func initLogging(opts config.LogOptions) error {
	path, err := opts.Path()
	if err != nil {
		return err
	}
	return logger.Init(path, opts.Level)
}
