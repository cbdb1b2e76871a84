package editor

import "strings"

// Cursor is a 1-based position. Col counts characters, so the column just
// past the last character of a line is len+1.
type Cursor struct {
	Line int
	Col  int
}

// Document is an ordered list of lines. It always holds at least one line.
type Document struct {
	lines []string
}

// NewDocument splits text on newlines. A trailing newline does not produce
// an extra empty line, and CRLF endings are normalised.
func NewDocument(text string) *Document {
	return &Document{lines: splitLines(text)}
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns line n (1-based).
func (d *Document) Line(n int) (string, bool) {
	if n < 1 || n > len(d.lines) {
		return "", false
	}
	return d.lines[n-1], true
}

// LineLen is the length of line n in characters, 0 when out of range.
func (d *Document) LineLen(n int) int {
	s, ok := d.Line(n)
	if !ok {
		return 0
	}
	return runeLen(s)
}

// Lines exposes the backing slice. Callers must not modify it.
func (d *Document) Lines() []string {
	return d.lines
}

func (d *Document) SetLine(n int, s string) bool {
	if n < 1 || n > len(d.lines) {
		return false
	}
	d.lines[n-1] = s
	return true
}

// InsertLine inserts an empty line after line n; n == 0 inserts at the top.
func (d *Document) InsertLine(n int) {
	d.InsertLineText(n, "")
}

func (d *Document) InsertLineText(n int, s string) {
	if n < 0 {
		n = 0
	}
	if n > len(d.lines) {
		n = len(d.lines)
	}
	d.lines = append(d.lines, "")
	copy(d.lines[n+1:], d.lines[n:])
	d.lines[n] = s
}

// DeleteLine removes line n and returns the line the cursor should land on.
// Removing the only line leaves a single empty line.
func (d *Document) DeleteLine(n int) int {
	if n < 1 || n > len(d.lines) {
		return clampInt(n, 1, len(d.lines))
	}
	if len(d.lines) == 1 {
		d.lines[0] = ""
		return 1
	}
	d.lines = append(d.lines[:n-1], d.lines[n:]...)
	return clampInt(n, 1, len(d.lines))
}

// CharAt returns the character under the cursor, the one at index Col-1.
func (d *Document) CharAt(c Cursor) (rune, bool) {
	s, ok := d.Line(c.Line)
	if !ok || c.Col < 1 {
		return 0, false
	}
	i := 0
	for _, r := range s {
		i++
		if i == c.Col {
			return r, true
		}
	}
	return 0, false
}

// Content joins the lines with newlines, without a final terminator.
func (d *Document) Content() string {
	return strings.Join(d.lines, "\n")
}

func (d *Document) replace(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	d.lines = append(d.lines[:0:0], lines...)
}

func (d *Document) copyLines() []string {
	return append([]string(nil), d.lines...)
}

func runeLen(s string) int {
	return len([]rune(s))
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
