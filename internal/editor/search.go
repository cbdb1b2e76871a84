package editor

import (
	"regexp"

	"github.com/kobzarvs/kedit/internal/logger"
)

// SetPattern compiles and installs the search pattern. An invalid pattern
// clears it; the error is only logged.
func (b *Buffer) SetPattern(expr string) {
	re, err := regexp.Compile(expr)
	if err != nil {
		logger.Debug("invalid search pattern", "pattern", expr, "err", err)
		b.pattern = nil
		return
	}
	b.pattern = re
}

func (b *Buffer) Pattern() *regexp.Regexp {
	return b.pattern
}

// matchCols returns the 1-based start columns of every match on a line.
func matchCols(re *regexp.Regexp, line string) []int {
	locs := re.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}
	cols := make([]int, 0, len(locs))
	for _, loc := range locs {
		cols = append(cols, runeLen(line[:loc[0]])+1)
	}
	return cols
}

// SearchForward moves to the first match after the cursor. It does not
// wrap past the end of the document.
func (b *Buffer) SearchForward() bool {
	if b.pattern == nil {
		return false
	}
	for n := b.cursor.Line; n <= b.doc.LineCount(); n++ {
		line, _ := b.doc.Line(n)
		for _, col := range matchCols(b.pattern, line) {
			if n == b.cursor.Line && col <= b.cursor.Col {
				continue
			}
			b.Exec(MoveTo(Cursor{Line: n, Col: col}))
			return true
		}
	}
	return false
}

// SearchBackward moves to the nearest match before the cursor. It does not
// wrap past the start of the document.
func (b *Buffer) SearchBackward() bool {
	if b.pattern == nil {
		return false
	}
	for n := b.cursor.Line; n >= 1; n-- {
		line, _ := b.doc.Line(n)
		cols := matchCols(b.pattern, line)
		for i := len(cols) - 1; i >= 0; i-- {
			if n == b.cursor.Line && cols[i] >= b.cursor.Col {
				continue
			}
			b.Exec(MoveTo(Cursor{Line: n, Col: cols[i]}))
			return true
		}
	}
	return false
}
