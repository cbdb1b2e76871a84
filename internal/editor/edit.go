package editor

import (
	"strings"
	"unicode"
)

// changed marks the content as edited.
func (b *Buffer) changed() {
	b.modified = true
	b.tick++
}

func (b *Buffer) acceptsRune(r rune) bool {
	if r == '\t' {
		return true
	}
	if unicode.IsControl(r) {
		return false
	}
	if b.opts.ASCIIOnly && r > unicode.MaxASCII {
		return false
	}
	return true
}

func (b *Buffer) insertChar(r rune) {
	if r == '\n' {
		b.breakLine()
		return
	}
	if !b.acceptsRune(r) {
		return
	}
	c := b.cursor
	line := b.lineRunes(c.Line)
	i := c.Col - 1
	out := make([]rune, 0, len(line)+1)
	out = append(out, line[:i]...)
	out = append(out, r)
	out = append(out, line[i:]...)
	b.doc.SetLine(c.Line, string(out))
	b.cursor.Col++
	b.changed()
}

// insertString inserts text that may span lines; the cursor ends up after
// the inserted text.
func (b *Buffer) insertString(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		parts[i] = b.filterText(part)
	}
	if len(parts) == 1 && parts[0] == "" {
		return
	}
	c := b.cursor
	line := b.lineRunes(c.Line)
	before := string(line[:c.Col-1])
	after := string(line[c.Col-1:])
	if len(parts) == 1 {
		b.doc.SetLine(c.Line, before+parts[0]+after)
		b.cursor.Col += runeLen(parts[0])
		b.changed()
		return
	}
	b.doc.SetLine(c.Line, before+parts[0])
	for i := 1; i < len(parts)-1; i++ {
		b.doc.InsertLineText(c.Line+i-1, parts[i])
	}
	last := parts[len(parts)-1]
	lastLine := c.Line + len(parts) - 1
	b.doc.InsertLineText(lastLine-1, last+after)
	b.cursor = Cursor{Line: lastLine, Col: runeLen(last) + 1}
	b.changed()
}

func (b *Buffer) filterText(s string) string {
	return strings.Map(func(r rune) rune {
		if b.acceptsRune(r) {
			return r
		}
		return -1
	}, s)
}

// breakLine splits the line at the cursor and moves to the start of the
// new line.
func (b *Buffer) breakLine() {
	c := b.cursor
	line := b.lineRunes(c.Line)
	b.doc.SetLine(c.Line, string(line[:c.Col-1]))
	b.doc.InsertLineText(c.Line, string(line[c.Col-1:]))
	b.cursor = Cursor{Line: c.Line + 1, Col: 1}
	b.changed()
}

// joinPrev merges the cursor line onto the previous one and leaves the
// cursor at the join point.
func (b *Buffer) joinPrev() {
	c := b.cursor
	if c.Line <= 1 {
		return
	}
	prev, _ := b.doc.Line(c.Line - 1)
	cur, _ := b.doc.Line(c.Line)
	b.doc.SetLine(c.Line-1, prev+cur)
	b.doc.DeleteLine(c.Line)
	b.cursor = Cursor{Line: c.Line - 1, Col: runeLen(prev) + 1}
	b.changed()
}

// deleteChar removes the character before the cursor.
func (b *Buffer) deleteChar() {
	c := b.cursor
	if c.Col == 1 {
		b.joinPrev()
		return
	}
	line := b.lineRunes(c.Line)
	i := c.Col - 2
	b.doc.SetLine(c.Line, string(line[:i])+string(line[i+1:]))
	b.cursor.Col--
	b.changed()
}

// deleteWord removes from the previous word boundary up to the cursor.
func (b *Buffer) deleteWord() {
	c := b.cursor
	if c.Col == 1 {
		b.joinPrev()
		return
	}
	start := b.prevWord(c)
	line := b.lineRunes(c.Line)
	b.doc.SetLine(c.Line, string(line[:start.Col-1])+string(line[c.Col-1:]))
	b.cursor = start
	b.changed()
}

func (b *Buffer) deleteLine() {
	before := b.doc.LineCount()
	text, _ := b.doc.Line(b.cursor.Line)
	n := b.doc.DeleteLine(b.cursor.Line)
	b.moveTo(Cursor{Line: n, Col: b.cursor.Col})
	if before > 1 || text != "" {
		b.changed()
	}
}

// insertLineBelow adds an empty line after the cursor line without moving.
func (b *Buffer) insertLineBelow() {
	b.doc.InsertLine(b.cursor.Line)
	b.changed()
}

// toggleComment comments or uncomments the cursor line with the buffer's
// comment token, keeping indentation in place.
func (b *Buffer) toggleComment() {
	prefix := b.opts.CommentToken
	if prefix == "" {
		prefix = "//"
	}
	c := b.cursor
	line, _ := b.doc.Line(c.Line)
	if line == "" {
		return
	}
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	rest := line[indent:]
	var next string
	var shift int
	if strings.HasPrefix(rest, prefix) {
		removeLen := len(prefix)
		if strings.HasPrefix(rest[removeLen:], " ") {
			removeLen++
		}
		next = line[:indent] + rest[removeLen:]
		shift = -runeLen(rest[:removeLen])
	} else {
		next = line[:indent] + prefix + " " + rest
		shift = runeLen(prefix) + 1
	}
	b.doc.SetLine(c.Line, next)
	if c.Col > indent+1 {
		c.Col += shift
	}
	b.moveTo(c)
	b.changed()
}
