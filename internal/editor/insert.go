package editor

import "strings"

// typeChar inserts a typed character, closing brackets and quotes.
func (b *Buffer) typeChar(r rune) {
	closer, ok := wrapPairs[r]
	if !ok {
		b.Exec(InsertChar(r))
		return
	}
	b.Exec(InsertChar(r))
	b.Exec(InsertChar(closer))
	b.Exec(MoveLeft())
}

// newline breaks the line and indents the new one with tabs. After a scope
// opener the indent grows by one level; if the matching closer follows the
// cursor it is moved to its own line at the original level.
func (b *Buffer) newline() {
	c := b.cursor
	line, _ := b.doc.Line(c.Line)
	level := leadingTabs(line)

	prev, hasPrev := b.doc.CharAt(Cursor{Line: c.Line, Col: c.Col - 1})
	closer, opens := scopeOpeners[prev]
	opens = opens && hasPrev
	next, hasNext := b.doc.CharAt(c)

	b.Exec(BreakLine())
	inner := level
	if opens {
		inner++
	}
	if inner > 0 {
		b.Exec(InsertString(strings.Repeat("\t", inner)))
	}
	if opens && hasNext && next == closer {
		b.Exec(BreakLine())
		if level > 0 {
			b.Exec(InsertString(strings.Repeat("\t", level)))
		}
		b.Exec(MoveUp())
		b.Exec(MoveLineEnd())
	}
}

// backspace deletes the character before the cursor. A closing bracket or
// quote under the cursor goes first, so an auto-inserted pair collapses
// with one key.
func (b *Buffer) backspace() {
	if at, ok := b.doc.CharAt(b.cursor); ok && wrapClosers[at] {
		b.Exec(MoveRight())
		b.Exec(DeleteChar())
	}
	b.Exec(DeleteChar())
}
