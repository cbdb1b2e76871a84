package editor

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/kedit/internal/highlight"
)

// Viewport is the number of text rows and columns available to a buffer.
type Viewport struct {
	Width  int
	Height int
}

// Update scrolls so that the cursor line is visible, keeping ScrollOff
// lines of context where the document allows it.
func (b *Buffer) Update(vp Viewport) {
	b.viewport = vp
	if vp.Height <= 0 {
		return
	}
	off := b.opts.ScrollOff
	if limit := (vp.Height - 1) / 2; off > limit {
		off = limit
	}
	if off < 0 {
		off = 0
	}
	line := b.cursor.Line
	// far jumps centre the cursor instead of dragging the view
	if line < b.top-vp.Height || line >= b.top+2*vp.Height {
		b.top = line - vp.Height/2
	}
	if line-off < b.top {
		b.top = line - off
	}
	if line+off >= b.top+vp.Height {
		b.top = line + off - vp.Height + 1
	}
	maxTop := b.doc.LineCount() - vp.Height + 1
	if b.top > maxTop {
		b.top = maxTop
	}
	if b.top < 1 {
		b.top = 1
	}
}

// Top is the first visible line.
func (b *Buffer) Top() int { return b.top }

// Frame is everything a front end needs to draw one buffer.
type Frame struct {
	// Top is the document line drawn on the first row.
	Top   int
	Lines [][]highlight.Run

	Cursor Cursor
	// CursorRow and CursorX locate the cursor on screen, 0-based and in
	// display cells.
	CursorRow int
	CursorX   int

	Mode      Mode
	Title     string
	Modified  bool
	Recording bool
	Status    string

	// Command and CommandX are set in command-line mode only.
	Command  string
	CommandX int

	TabWidth   int
	Foreground highlight.Color
}

// Render produces the visible part of the buffer as coloured runs.
func (b *Buffer) Render() Frame {
	rendered := b.Rendered()
	height := b.viewport.Height
	if height <= 0 {
		height = len(rendered)
	}
	start := b.top - 1
	end := start + height
	if end > len(rendered) {
		end = len(rendered)
	}
	if start > end {
		start = end
	}
	line, _ := b.doc.Line(b.cursor.Line)
	f := Frame{
		Top:        b.top,
		Lines:      rendered[start:end],
		Cursor:     b.cursor,
		CursorRow:  b.cursor.Line - b.top,
		CursorX:    displayCol([]rune(line), b.cursor.Col-1, b.opts.TabWidth),
		Mode:       b.mode,
		Title:      b.Title(),
		Modified:   b.modified,
		Recording:  b.macro.recording,
		Status:     b.status,
		TabWidth:   b.opts.TabWidth,
		Foreground: b.hl.Theme().Foreground(),
	}
	if b.mode == ModeCommandLine {
		f.Command = b.cmdline.String()
		f.CommandX = displayCol(b.cmdline.text, b.cmdline.pos, 1)
	}
	return f
}

// StatusLine formats the mode, file and cursor position.
func (f Frame) StatusLine() string {
	var parts []string
	parts = append(parts, f.Mode.String())
	title := f.Title
	if f.Modified {
		title += " [+]"
	}
	parts = append(parts, title)
	parts = append(parts, fmt.Sprintf("%d:%d", f.Cursor.Line, f.Cursor.Col))
	if f.Recording {
		parts = append(parts, "REC")
	}
	if f.Status != "" {
		parts = append(parts, f.Status)
	}
	return strings.Join(parts, "  ")
}

// displayCol is the screen column of character index col, expanding tabs
// and counting wide characters as two cells.
func displayCol(line []rune, col int, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if col > len(line) {
		col = len(line)
	}
	x := 0
	for i := 0; i < col; i++ {
		x += cellWidth(line[i], x, tabWidth)
	}
	return x
}

// cellWidth is the number of cells r occupies when drawn at column x.
func cellWidth(r rune, x, tabWidth int) int {
	if r == '\t' {
		return tabWidth - x%tabWidth
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// CellWidth is cellWidth for front ends drawing runs.
func CellWidth(r rune, x, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	return cellWidth(r, x, tabWidth)
}
