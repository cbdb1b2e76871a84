package editor

// wrapPairs maps an opener to the closer inserted alongside it.
var wrapPairs = map[rune]rune{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'"':  '"',
	'\'': '\'',
}

// wrapClosers are removed together with the character before them on
// backspace.
var wrapClosers = map[rune]bool{
	')':  true,
	']':  true,
	'}':  true,
	'"':  true,
	'\'': true,
}

// scopeOpeners grow the indentation of the line that follows them.
var scopeOpeners = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
}

func isBreak(r rune) bool {
	switch r {
	case ' ', '\t', ',', '.', ';', ':', '"', '\'', '(', ')', '{', '}', '[', ']',
		'<', '>', '_', '-', '@', '/', '\\':
		return true
	}
	return false
}

// clamp pulls a cursor back inside the document.
func (b *Buffer) clamp(c Cursor) Cursor {
	c.Line = clampInt(c.Line, 1, b.doc.LineCount())
	c.Col = clampInt(c.Col, 1, b.doc.LineLen(c.Line)+1)
	return c
}

func (b *Buffer) moveTo(c Cursor) {
	b.cursor = b.clamp(c)
}

func (b *Buffer) lineRunes(n int) []rune {
	s, _ := b.doc.Line(n)
	return []rune(s)
}

// nextWord finds the next break character after the cursor and lands just
// before it, or at the end of the line. It reports false at the end of the
// line.
func (b *Buffer) nextWord(c Cursor) (Cursor, bool) {
	line := b.lineRunes(c.Line)
	if c.Col >= len(line) {
		return c, false
	}
	for i, r := range line[c.Col:] {
		if isBreak(r) {
			return Cursor{Line: c.Line, Col: c.Col + i + 1}, true
		}
	}
	return Cursor{Line: c.Line, Col: len(line) + 1}, true
}

// prevWord scans backwards from the character before the one left of the
// cursor and lands just after the first break character, or on column 1.
func (b *Buffer) prevWord(c Cursor) Cursor {
	line := b.lineRunes(c.Line)
	end := clampInt(c.Col-2, 0, len(line))
	for i := end - 1; i >= 0; i-- {
		if isBreak(line[i]) {
			return Cursor{Line: c.Line, Col: i + 2}
		}
	}
	return Cursor{Line: c.Line, Col: 1}
}

// lineStart is the first non-blank column, or the end of an all-blank line.
func (b *Buffer) lineStart(c Cursor) Cursor {
	line := b.lineRunes(c.Line)
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return Cursor{Line: c.Line, Col: i + 1}
		}
	}
	return Cursor{Line: c.Line, Col: len(line) + 1}
}

func (b *Buffer) lineEnd(c Cursor) Cursor {
	return Cursor{Line: c.Line, Col: b.doc.LineLen(c.Line) + 1}
}

func leadingTabs(s string) int {
	n := 0
	for n < len(s) && s[n] == '\t' {
		n++
	}
	return n
}
