package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kobzarvs/kedit/internal/config"
)

type memStore struct {
	files  map[string]string
	writes int
	err    error
}

func newMemStore() *memStore {
	return &memStore{files: map[string]string{}}
}

func (m *memStore) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return []byte(data), nil
}

func (m *memStore) WriteFile(path string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.writes++
	m.files[path] = string(data)
	return nil
}

func newTestBuffer(lines ...string) *Buffer {
	return New(strings.Join(lines, "\n"), DefaultOptions())
}

func assertLines(t *testing.T, b *Buffer, want ...string) {
	t.Helper()
	got := b.Lines()
	if strings.Join(got, "\n") != strings.Join(want, "\n") || len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func assertCursor(t *testing.T, b *Buffer, line, col int) {
	t.Helper()
	if got := b.Cursor(); got != (Cursor{Line: line, Col: col}) {
		t.Fatalf("cursor = %d:%d, want %d:%d", got.Line, got.Col, line, col)
	}
}

func TestNewBufferNeverEmpty(t *testing.T) {
	b := newTestBuffer()
	assertLines(t, b, "")
	assertCursor(t, b, 1, 1)
	if b.IsModified() {
		t.Fatalf("IsModified = true, want false")
	}
	if b.Title() != "[scratch]" {
		t.Fatalf("Title = %q, want %q", b.Title(), "[scratch]")
	}
}

func TestInsertCharAndUndoRedo(t *testing.T) {
	b := newTestBuffer("ab")
	b.Exec(MoveRight())
	b.Exec(InsertChar('x'))
	assertLines(t, b, "axb")
	assertCursor(t, b, 1, 3)
	if !b.IsModified() {
		t.Fatalf("IsModified = false, want true")
	}

	b.Exec(Undo())
	assertLines(t, b, "ab")
	assertCursor(t, b, 1, 2)
	if b.IsModified() {
		t.Fatalf("IsModified after undo = true, want false")
	}

	b.Exec(Redo())
	assertLines(t, b, "axb")
	assertCursor(t, b, 1, 3)
	if !b.IsModified() {
		t.Fatalf("IsModified after redo = false, want true")
	}
}

func TestUndoRedoLaws(t *testing.T) {
	b := newTestBuffer("one", "two")
	edits := []Command{InsertChar('a'), BreakLine(), InsertString("x\ny"), DeleteWord(), DeleteLine()}
	type state struct {
		lines    []string
		cursor   Cursor
		modified bool
	}
	capture := func() state {
		return state{append([]string(nil), b.Lines()...), b.Cursor(), b.IsModified()}
	}
	check := func(what string, want state) {
		t.Helper()
		assertLines(t, b, want.lines...)
		assertCursor(t, b, want.cursor.Line, want.cursor.Col)
		if b.IsModified() != want.modified {
			t.Fatalf("%s: IsModified = %v, want %v", what, b.IsModified(), want.modified)
		}
	}

	var before, after []state
	for _, cmd := range edits {
		before = append(before, capture())
		b.Exec(cmd)
		after = append(after, capture())
	}
	for i := len(edits) - 1; i >= 0; i-- {
		b.Exec(Undo())
		check("undo "+edits[i].String(), before[i])
	}
	if b.History().CanUndo() {
		t.Fatalf("CanUndo = true after undoing everything")
	}
	for i := range edits {
		b.Exec(Redo())
		check("redo "+edits[i].String(), after[i])
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	b := newTestBuffer("")
	b.Exec(InsertChar('a'))
	b.Exec(Undo())
	if !b.History().CanRedo() {
		t.Fatalf("CanRedo = false, want true")
	}
	b.Exec(InsertChar('b'))
	if b.History().CanRedo() {
		t.Fatalf("CanRedo = true after new edit, want false")
	}
	b.Exec(Redo())
	assertLines(t, b, "b")
}

func TestUndoOnEmptyHistoryIsNoop(t *testing.T) {
	b := newTestBuffer("keep")
	tick := b.ChangeTick()
	b.Exec(Undo())
	b.Exec(Redo())
	assertLines(t, b, "keep")
	if b.ChangeTick() != tick {
		t.Fatalf("ChangeTick = %d, want %d", b.ChangeTick(), tick)
	}
}

func TestCursorClamped(t *testing.T) {
	b := newTestBuffer("abc", "x")
	b.Exec(MoveTo(Cursor{Line: 9, Col: 9}))
	assertCursor(t, b, 2, 2)
	b.Exec(MoveTo(Cursor{Line: 0, Col: 0}))
	assertCursor(t, b, 1, 1)
	b.Exec(MoveLineEnd())
	assertCursor(t, b, 1, 4)
	b.Exec(MoveDown())
	assertCursor(t, b, 2, 2)
	b.Exec(MoveRight())
	assertCursor(t, b, 2, 2)
	b.Exec(MoveUp())
	b.Exec(MoveUp())
	assertCursor(t, b, 1, 2)
}

func TestWordMotion(t *testing.T) {
	b := newTestBuffer("foo bar.baz qux")
	var cols []int
	for i := 0; i < 5; i++ {
		b.Exec(MoveNextWord())
		cols = append(cols, b.Cursor().Col)
	}
	want := []int{4, 8, 12, 16, 16}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("next word cols = %v, want %v", cols, want)
		}
	}

	cols = cols[:0]
	for i := 0; i < 4; i++ {
		b.Exec(MovePrevWord())
		cols = append(cols, b.Cursor().Col)
	}
	want = []int{13, 9, 5, 1}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("prev word cols = %v, want %v", cols, want)
		}
	}
}

func TestWordMotionStopsAtUnderscore(t *testing.T) {
	b := newTestBuffer("foo.bar_baz qux")
	b.Exec(MoveNextWord())
	assertCursor(t, b, 1, 4)
	b.Exec(MoveNextWord())
	assertCursor(t, b, 1, 8)
}

func TestLineStartSkipsIndent(t *testing.T) {
	b := newTestBuffer("\t  code", "   ")
	b.Exec(MoveLineEnd())
	b.Exec(MoveLineStart())
	assertCursor(t, b, 1, 4)
	b.Exec(MoveDown())
	b.Exec(MoveLineStart())
	assertCursor(t, b, 2, 4)
}

func TestDeleteCharJoinsLines(t *testing.T) {
	b := newTestBuffer("ab", "cd")
	b.Exec(MoveDown())
	b.Exec(MoveLineStart())
	b.Exec(DeleteChar())
	assertLines(t, b, "abcd")
	assertCursor(t, b, 1, 3)

	b.Exec(MoveTo(Cursor{Line: 1, Col: 1}))
	tick := b.ChangeTick()
	b.Exec(DeleteChar())
	assertLines(t, b, "abcd")
	if b.ChangeTick() != tick {
		t.Fatalf("ChangeTick changed on no-op delete")
	}
}

func TestDeleteWord(t *testing.T) {
	b := newTestBuffer("foo bar")
	b.Exec(MoveLineEnd())
	b.Exec(DeleteWord())
	assertLines(t, b, "foo ")
	assertCursor(t, b, 1, 5)
}

func TestDeleteLine(t *testing.T) {
	b := newTestBuffer("one", "two", "three")
	b.Exec(MoveTo(Cursor{Line: 3, Col: 4}))
	b.Exec(DeleteLine())
	assertLines(t, b, "one", "two")
	assertCursor(t, b, 2, 4)

	single := newTestBuffer("")
	single.Exec(DeleteLine())
	assertLines(t, single, "")
	if single.IsModified() {
		t.Fatalf("IsModified = true after deleting the only empty line")
	}
}

func TestInsertStringMultiline(t *testing.T) {
	b := newTestBuffer("ab")
	b.Exec(MoveRight())
	b.Exec(InsertString("1\n2\n3"))
	assertLines(t, b, "a1", "2", "3b")
	assertCursor(t, b, 3, 2)
	b.Exec(Undo())
	assertLines(t, b, "ab")
}

func TestASCIIOnlyRejectsNonASCII(t *testing.T) {
	opts := DefaultOptions()
	opts.ASCIIOnly = true
	b := New("", opts)
	b.Exec(InsertChar('é'))
	b.Exec(InsertString("aé\x01b"))
	assertLines(t, b, "ab")

	wide := newTestBuffer("")
	wide.Exec(InsertChar('é'))
	assertLines(t, wide, "é")
}

func TestToggleComment(t *testing.T) {
	opts := DefaultOptions()
	opts.CommentToken = "#"
	b := New("\tfoo", opts)
	b.Exec(MoveTo(Cursor{Line: 1, Col: 3}))
	_ = b.HandleEvent(RuneEvent('/'))
	assertLines(t, b, "\t# foo")
	assertCursor(t, b, 1, 5)
	_ = b.HandleEvent(RuneEvent('/'))
	assertLines(t, b, "\tfoo")
	assertCursor(t, b, 1, 3)
	b.Exec(Undo())
	assertLines(t, b, "\t# foo")
}

func TestSaveTrimsAndWrites(t *testing.T) {
	store := newMemStore()
	store.files["/tmp/a.txt"] = "foo  \nbar\t\n"
	opts := DefaultOptions()
	opts.Store = store
	b := Open("/tmp/a.txt", opts)
	assertLines(t, b, "foo  ", "bar\t")
	b.Exec(InsertChar('x'))

	if err := b.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if got := store.files["/tmp/a.txt"]; got != "xfoo\nbar\n" {
		t.Fatalf("written = %q, want %q", got, "xfoo\nbar\n")
	}
	assertLines(t, b, "xfoo", "bar")
	if b.IsModified() {
		t.Fatalf("IsModified after save = true, want false")
	}
	if !b.IsClosable() {
		t.Fatalf("IsClosable after save = false, want true")
	}

	b.Exec(Undo())
	if !b.IsModified() {
		t.Fatalf("IsModified after undo past save = false, want true")
	}
}

func TestSaveFailureKeepsState(t *testing.T) {
	store := newMemStore()
	errDisk := errors.New("disk full")
	store.err = errDisk
	opts := DefaultOptions()
	opts.Store = store
	b := Open("/tmp/b.txt", opts)
	b.Exec(InsertString("data  "))

	err := b.Save()
	if !errors.Is(err, errDisk) {
		t.Fatalf("Save error = %v, want %v", err, errDisk)
	}
	if !b.IsModified() {
		t.Fatalf("IsModified after failed save = false, want true")
	}
	assertLines(t, b, "data  ")
}

func TestSaveWithoutPath(t *testing.T) {
	b := newTestBuffer("x")
	if err := b.Save(); !errors.Is(err, ErrNoPath) {
		t.Fatalf("Save error = %v, want %v", err, ErrNoPath)
	}
}

func TestOpenAndSaveOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	b := Open(path, DefaultOptions())
	assertLines(t, b, "a", "b")
	if b.Title() != "note.txt" {
		t.Fatalf("Title = %q, want %q", b.Title(), "note.txt")
	}
	b.Exec(MoveLineEnd())
	b.Exec(InsertChar('!'))
	if err := b.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "a!\nb\n" {
		t.Fatalf("file = %q, want %q", data, "a!\nb\n")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("perm = %v, want %v", info.Mode().Perm(), os.FileMode(0o600))
	}
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.go")
	b := Open(path, DefaultOptions())
	assertLines(t, b, "")
	if b.IsModified() {
		t.Fatalf("IsModified = true, want false")
	}
	if b.Path() != path {
		t.Fatalf("Path = %q, want %q", b.Path(), path)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.TabWidth = 2
	cfg.Highlight.Mode = "incremental"
	opts := OptionsFromConfig(cfg)
	if opts.TabWidth != 2 {
		t.Fatalf("TabWidth = %d, want 2", opts.TabWidth)
	}
	if opts.HighlightMode.String() != "incremental" {
		t.Fatalf("HighlightMode = %v, want incremental", opts.HighlightMode)
	}
	if opts.Keymap.Normal["h"] != "move_left" {
		t.Fatalf("keymap h = %q, want move_left", opts.Keymap.Normal["h"])
	}
}
