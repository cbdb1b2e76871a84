package editor

import (
	"fmt"
	"strconv"
)

// CommandKind enumerates the primitive editing commands. The set is
// closed; every kind is handled by Exec.
type CommandKind int

const (
	CmdInsertChar CommandKind = iota
	CmdInsertString
	CmdMoveTo
	CmdMoveUp
	CmdMoveDown
	CmdMoveLeft
	CmdMoveRight
	CmdMovePrevWord
	CmdMoveNextWord
	CmdMoveLineStart
	CmdMoveLineEnd
	CmdDeleteLine
	CmdDeleteWord
	CmdDeleteChar
	CmdBreakLine
	CmdUndo
	CmdRedo
)

var commandNames = [...]string{
	CmdInsertChar:    "insert_char",
	CmdInsertString:  "insert_string",
	CmdMoveTo:        "move_to",
	CmdMoveUp:        "move_up",
	CmdMoveDown:      "move_down",
	CmdMoveLeft:      "move_left",
	CmdMoveRight:     "move_right",
	CmdMovePrevWord:  "move_prev_word",
	CmdMoveNextWord:  "move_next_word",
	CmdMoveLineStart: "move_line_start",
	CmdMoveLineEnd:   "move_line_end",
	CmdDeleteLine:    "delete_line",
	CmdDeleteWord:    "delete_word",
	CmdDeleteChar:    "delete_char",
	CmdBreakLine:     "break_line",
	CmdUndo:          "undo",
	CmdRedo:          "redo",
}

func (k CommandKind) String() string {
	if k >= 0 && int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "command(" + strconv.Itoa(int(k)) + ")"
}

// mutates reports whether the command edits content and therefore records
// a history snapshot and drops the redo stack.
func (k CommandKind) mutates() bool {
	switch k {
	case CmdInsertChar, CmdInsertString, CmdDeleteLine, CmdDeleteWord, CmdDeleteChar, CmdBreakLine:
		return true
	}
	return false
}

// Command is one primitive edit or motion. Only the field matching Kind is
// meaningful.
type Command struct {
	Kind CommandKind
	Ch   rune
	Text string
	Pos  Cursor
}

func InsertChar(r rune) Command { return Command{Kind: CmdInsertChar, Ch: r} }
func InsertString(s string) Command { return Command{Kind: CmdInsertString, Text: s} }
func MoveTo(c Cursor) Command { return Command{Kind: CmdMoveTo, Pos: c} }
func MoveUp() Command { return Command{Kind: CmdMoveUp} }
func MoveDown() Command { return Command{Kind: CmdMoveDown} }
func MoveLeft() Command { return Command{Kind: CmdMoveLeft} }
func MoveRight() Command { return Command{Kind: CmdMoveRight} }
func MovePrevWord() Command { return Command{Kind: CmdMovePrevWord} }
func MoveNextWord() Command { return Command{Kind: CmdMoveNextWord} }
func MoveLineStart() Command { return Command{Kind: CmdMoveLineStart} }
func MoveLineEnd() Command { return Command{Kind: CmdMoveLineEnd} }
func DeleteLine() Command { return Command{Kind: CmdDeleteLine} }
func DeleteWord() Command { return Command{Kind: CmdDeleteWord} }
func DeleteChar() Command { return Command{Kind: CmdDeleteChar} }
func BreakLine() Command { return Command{Kind: CmdBreakLine} }
func Undo() Command { return Command{Kind: CmdUndo} }
func Redo() Command { return Command{Kind: CmdRedo} }

func (c Command) String() string {
	switch c.Kind {
	case CmdInsertChar:
		return fmt.Sprintf("%s(%q)", c.Kind, c.Ch)
	case CmdInsertString:
		return fmt.Sprintf("%s(%q)", c.Kind, c.Text)
	case CmdMoveTo:
		return fmt.Sprintf("%s(%d:%d)", c.Kind, c.Pos.Line, c.Pos.Col)
	}
	return c.Kind.String()
}

// Exec applies one command. While a macro is recording the command is
// appended to it first.
func (b *Buffer) Exec(cmd Command) {
	b.macro.record(cmd)
	if cmd.Kind.mutates() {
		b.beginEdit()
	}
	switch cmd.Kind {
	case CmdInsertChar:
		b.insertChar(cmd.Ch)
	case CmdInsertString:
		b.insertString(cmd.Text)
	case CmdMoveTo:
		b.moveTo(cmd.Pos)
	case CmdMoveUp:
		b.moveTo(Cursor{Line: b.cursor.Line - 1, Col: b.cursor.Col})
	case CmdMoveDown:
		b.moveTo(Cursor{Line: b.cursor.Line + 1, Col: b.cursor.Col})
	case CmdMoveLeft:
		b.moveTo(Cursor{Line: b.cursor.Line, Col: b.cursor.Col - 1})
	case CmdMoveRight:
		b.moveTo(Cursor{Line: b.cursor.Line, Col: b.cursor.Col + 1})
	case CmdMovePrevWord:
		b.moveTo(b.prevWord(b.cursor))
	case CmdMoveNextWord:
		if c, ok := b.nextWord(b.cursor); ok {
			b.moveTo(c)
		}
	case CmdMoveLineStart:
		b.moveTo(b.lineStart(b.cursor))
	case CmdMoveLineEnd:
		b.moveTo(b.lineEnd(b.cursor))
	case CmdDeleteLine:
		b.deleteLine()
	case CmdDeleteWord:
		b.deleteWord()
	case CmdDeleteChar:
		b.deleteChar()
	case CmdBreakLine:
		b.breakLine()
	case CmdUndo:
		b.undo()
	case CmdRedo:
		b.redo()
	}
}

func (b *Buffer) snapshot() Snapshot {
	return Snapshot{Lines: b.doc.copyLines(), Cursor: b.cursor, Modified: b.modified}
}

func (b *Buffer) restore(s Snapshot) {
	b.doc.replace(s.Lines)
	b.cursor = b.clamp(s.Cursor)
	b.modified = s.Modified
	b.tick++
}

// beginEdit records the pre-edit state; every content-changing operation
// calls it exactly once before touching the document.
func (b *Buffer) beginEdit() {
	b.history.Push(b.snapshot())
	b.history.ClearRedo()
}

func (b *Buffer) undo() {
	prev, err := b.history.Undo(b.snapshot())
	if err != nil {
		return
	}
	b.restore(prev)
}

func (b *Buffer) redo() {
	next, err := b.history.Redo(b.snapshot())
	if err != nil {
		return
	}
	b.restore(next)
}
