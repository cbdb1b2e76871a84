// Package editor is the text-buffer engine: document storage, cursor
// motion, undo history, modal key handling, search, macros and the
// rendered form of the document.
package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/kobzarvs/kedit/internal/config"
	"github.com/kobzarvs/kedit/internal/highlight"
	"github.com/kobzarvs/kedit/internal/logger"
)

var ErrNoPath = errors.New("buffer has no file name")

// Options configures a buffer.
type Options struct {
	TabWidth     int
	ASCIIOnly    bool
	UndoLimit    int
	ScrollOff    int
	CommentToken string
	Keymap       config.Keymap

	Store             FileStore
	Resolver          highlight.Resolver
	HighlightMode     highlight.Mode
	MaxHighlightBytes int
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		TabWidth:          cfg.Editor.TabWidth,
		ASCIIOnly:         cfg.Editor.ASCIIOnly,
		UndoLimit:         cfg.Editor.UndoLimit,
		ScrollOff:         cfg.Editor.ScrollOff,
		Keymap:            cfg.Keymap,
		HighlightMode:     highlight.ParseMode(cfg.Highlight.Mode),
		MaxHighlightBytes: cfg.Highlight.MaxBytes,
	}
}

// Buffer is one open document with its editing state. It is not safe for
// concurrent use.
type Buffer struct {
	path  string
	opts  Options
	store FileStore

	doc      *Document
	cursor   Cursor
	modified bool
	tick     uint64
	history  *History
	macro    Macro
	pattern  *regexp.Regexp

	mode            Mode
	cmdline         commandLine
	scrollRemainder float64
	quit            bool
	status          string

	top      int
	viewport Viewport

	hl     *highlight.Pipeline
	hlTick uint64
}

func newBuffer(path string, opts Options) *Buffer {
	if opts.TabWidth < 1 {
		opts.TabWidth = 4
	}
	if opts.Keymap.Normal == nil && opts.Keymap.Insert == nil && opts.Keymap.Command == nil {
		opts.Keymap = config.Default().Keymap
	}
	store := opts.Store
	if store == nil {
		store = OSFileStore{}
	}
	return &Buffer{
		path:    path,
		opts:    opts,
		store:   store,
		doc:     NewDocument(""),
		cursor:  Cursor{Line: 1, Col: 1},
		history: NewHistory(opts.UndoLimit),
		top:     1,
	}
}

// Open loads path into a new buffer. A file that is missing or cannot be
// read opens as an empty document.
func Open(path string, opts Options) *Buffer {
	b := newBuffer(path, opts)
	data, err := b.store.ReadFile(path)
	switch {
	case err == nil:
		b.doc = NewDocument(string(data))
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("opening new file", "path", path)
	default:
		logger.Warn("cannot read file, opening empty buffer", "path", path, "err", err)
	}
	b.setupHighlight(len(data))
	return b
}

// New creates an unnamed buffer holding text.
func New(text string, opts Options) *Buffer {
	b := newBuffer("", opts)
	b.doc = NewDocument(text)
	b.setupHighlight(len(text))
	return b
}

func (b *Buffer) setupHighlight(size int) {
	var tok highlight.Tokenizer
	var theme highlight.Theme
	if b.opts.Resolver != nil {
		tok, theme, _ = b.opts.Resolver.Resolve(b.path)
	}
	if tok != nil && b.opts.MaxHighlightBytes > 0 && size > b.opts.MaxHighlightBytes {
		logger.Info("file too large, highlighting disabled", "path", b.path, "bytes", size)
		tok = nil
	}
	b.hl = highlight.NewPipeline(tok, theme, b.opts.HighlightMode)
	b.rehighlight()
}

func (b *Buffer) rehighlight() {
	b.hl.Update(b.doc.Lines())
	b.hlTick = b.tick
}

// Rendered returns the coloured runs of every line.
func (b *Buffer) Rendered() [][]highlight.Run {
	if b.hlTick != b.tick {
		b.rehighlight()
	}
	return b.hl.Rendered()
}

// HandleEvent feeds one input event through the mode state machine. Only
// saving can fail.
func (b *Buffer) HandleEvent(ev Event) error {
	if ev.Kind == EventKey {
		b.status = ""
	}
	st := interpret(b.mode, ev, b.opts.Keymap)
	var err error
	if st.action != "" {
		err = b.apply(st, ev)
	}
	b.mode = st.next
	if b.tick != b.hlTick {
		b.rehighlight()
	}
	return err
}

func (b *Buffer) apply(st step, ev Event) error {
	if b.mode == ModeCommandLine {
		b.applyCommandLine(st)
		return nil
	}
	switch st.action {
	case actionMoveLeft:
		b.Exec(MoveLeft())
	case actionMoveRight:
		b.Exec(MoveRight())
	case actionMoveUp:
		b.Exec(MoveUp())
	case actionMoveDown:
		b.Exec(MoveDown())
	case actionWordLeft:
		b.Exec(MovePrevWord())
	case actionWordRight:
		b.Exec(MoveNextWord())
	case actionLineStart, actionInsertLineStart:
		b.Exec(MoveLineStart())
	case actionLineEnd, actionInsertLineEnd:
		b.Exec(MoveLineEnd())
	case actionDeleteLine:
		b.Exec(DeleteLine())
	case actionUndo:
		b.Exec(Undo())
	case actionRedo:
		b.Exec(Redo())
	case actionInsertLineBelow:
		b.beginEdit()
		b.insertLineBelow()
	case actionToggleComment:
		b.beginEdit()
		b.toggleComment()
	case actionSave:
		if err := b.Save(); err != nil {
			b.status = err.Error()
			return err
		}
		b.status = fmt.Sprintf("%q written, %d lines", b.Title(), b.doc.LineCount())
	case actionToggleRecord:
		b.ToggleRecording()
	case actionReplayMacro:
		b.ReplayMacro()
	case actionSearchForward:
		b.SearchForward()
	case actionSearchBackward:
		b.SearchBackward()
	case actionEnterCommand:
		b.cmdline.reset()
	case actionQuit:
		b.quit = true
	case actionBackspace:
		b.backspace()
	case actionDeleteWord:
		b.Exec(DeleteWord())
	case actionNewline:
		b.newline()
	case actionInsertTab:
		b.Exec(InsertChar('\t'))
	case actionInsertChar:
		b.typeChar(st.ch)
	case actionScroll:
		b.scroll(ev.Scroll)
	}
	return nil
}

func (b *Buffer) applyCommandLine(st step) {
	switch st.action {
	case actionInsertChar:
		b.cmdline.insert(st.ch)
	case actionBackspace:
		b.cmdline.backspace()
	case actionDeleteWord:
		b.cmdline.deleteWord()
	case actionMoveLeft:
		b.cmdline.left()
	case actionMoveRight:
		b.cmdline.right()
	case actionLineStart:
		b.cmdline.home()
	case actionLineEnd:
		b.cmdline.end()
	case actionClearLine:
		b.cmdline.reset()
	case actionKillLine:
		b.cmdline.killLine()
	case actionCancel:
		b.cmdline.reset()
	case actionConfirm:
		b.SetPattern(b.cmdline.String())
		b.cmdline.reset()
	}
}

// scroll moves the cursor by whole lines and keeps the fractional rest for
// the next event.
func (b *Buffer) scroll(delta float64) {
	total := delta + b.scrollRemainder
	lines := int(total)
	b.scrollRemainder = total - float64(lines)
	for ; lines > 0; lines-- {
		b.moveTo(Cursor{Line: b.cursor.Line + 1, Col: b.cursor.Col})
	}
	for ; lines < 0; lines++ {
		b.moveTo(Cursor{Line: b.cursor.Line - 1, Col: b.cursor.Col})
	}
}

// Save trims trailing whitespace and writes the document. On failure the
// buffer keeps its content and stays modified.
func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrNoPath
	}
	lines := b.doc.Lines()
	trimmed := make([]string, len(lines))
	changed := false
	for i, line := range lines {
		trimmed[i] = strings.TrimRightFunc(line, unicode.IsSpace)
		if trimmed[i] != line {
			changed = true
		}
	}
	data := strings.Join(trimmed, "\n") + "\n"
	if err := b.store.WriteFile(b.path, []byte(data)); err != nil {
		logger.Error("save failed", "path", b.path, "err", err)
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	if changed {
		b.doc.replace(trimmed)
		b.cursor = b.clamp(b.cursor)
		b.tick++
	}
	b.modified = false
	b.history.MarkModified()
	logger.Info("saved", "path", b.path, "lines", len(trimmed))
	return nil
}

func (b *Buffer) IsModified() bool {
	return b.modified
}

// IsClosable reports whether the buffer can be dropped without losing work.
func (b *Buffer) IsClosable() bool {
	return !b.modified
}

// IsBusy reports whether the user is in the middle of typing.
func (b *Buffer) IsBusy() bool {
	return b.mode == ModeInsert || b.mode == ModeCommandLine
}

func (b *Buffer) Title() string {
	if b.path == "" {
		return "[scratch]"
	}
	return filepath.Base(b.path)
}

func (b *Buffer) Path() string { return b.path }

func (b *Buffer) Mode() Mode { return b.mode }

func (b *Buffer) Cursor() Cursor { return b.cursor }

func (b *Buffer) Document() *Document { return b.doc }

func (b *Buffer) Lines() []string { return b.doc.Lines() }

func (b *Buffer) Content() string { return b.doc.Content() }

func (b *Buffer) History() *History { return b.history }

func (b *Buffer) Macro() *Macro { return &b.macro }

// ChangeTick increases on every content change, including undo and redo.
func (b *Buffer) ChangeTick() uint64 { return b.tick }

func (b *Buffer) CommandText() string { return b.cmdline.String() }

func (b *Buffer) Status() string { return b.status }

func (b *Buffer) SetStatus(msg string) { b.status = msg }

// ConsumeQuit reports and clears a pending quit request.
func (b *Buffer) ConsumeQuit() bool {
	q := b.quit
	b.quit = false
	return q
}
