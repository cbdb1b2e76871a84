package app

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/kedit/internal/chromahl"
	"github.com/kobzarvs/kedit/internal/config"
	"github.com/kobzarvs/kedit/internal/editor"
	"github.com/kobzarvs/kedit/internal/highlight"
)

type palette struct {
	main      tcell.Style
	status    tcell.Style
	recording tcell.Style
	command   tcell.Style
}

func newPalette(th config.Theme, style string) palette {
	bg := parseColor(th.Background, tcell.ColorDefault)
	if style != "" {
		if c, ok := chromahl.Background(style); ok {
			bg = tcellColor(c, bg)
		}
	}
	fg := parseColor(th.Foreground, tcell.ColorDefault)
	statusFg := parseColor(th.StatuslineForeground, fg)
	statusBg := parseColor(th.StatuslineBackground, bg)
	return palette{
		main:      tcell.StyleDefault.Foreground(fg).Background(bg),
		status:    tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		recording: tcell.StyleDefault.Foreground(parseColor(th.RecordingForeground, statusFg)).Background(statusBg),
		command: tcell.StyleDefault.
			Foreground(parseColor(th.CommandlineForeground, fg)).
			Background(parseColor(th.CommandlineBackground, bg)),
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if c, ok := highlight.ParseHex(name); ok {
		return tcellColor(c, fallback)
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

func tcellColor(c highlight.Color, fallback tcell.Color) tcell.Color {
	if !c.Set {
		return fallback
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// textRows is the number of rows left for the document once the status
// and command lines are drawn.
func textRows(h int) int {
	if h < 2 {
		return 0
	}
	return h - 2
}

// draw paints one frame of b and places the cursor.
func draw(s tcell.Screen, b *editor.Buffer, p palette) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	rows := textRows(h)
	b.Update(editor.Viewport{Width: w, Height: rows})
	f := b.Render()

	s.SetStyle(p.main)
	s.Clear()
	for y := 0; y < rows && y < len(f.Lines); y++ {
		drawRuns(s, y, w, f.Lines[y], f.TabWidth, p.main)
	}

	statusY, cmdY := h-2, h-1
	if h < 2 {
		statusY = -1
	}
	if statusY >= 0 {
		st := p.status
		if f.Recording {
			st = p.recording
		}
		fillRow(s, statusY, w, st)
		drawText(s, 0, statusY, w, f.StatusLine(), st)
	}
	fillRow(s, cmdY, w, p.command)

	s.SetCursorStyle(cursorStyle(b))
	if f.Mode == editor.ModeCommandLine {
		drawText(s, 0, cmdY, w, "?"+f.Command, p.command)
		s.ShowCursor(clampX(1+f.CommandX, w), cmdY)
		return
	}
	if f.CursorRow >= 0 && f.CursorRow < rows {
		s.ShowCursor(clampX(f.CursorX, w), f.CursorRow)
	} else {
		s.HideCursor()
	}
}

// cursorStyle is a bar while the user is typing and a block otherwise.
func cursorStyle(b *editor.Buffer) tcell.CursorStyle {
	if b.IsBusy() {
		return tcell.CursorStyleSteadyBar
	}
	return tcell.CursorStyleSteadyBlock
}

func drawRuns(s tcell.Screen, y, w int, runs []highlight.Run, tabWidth int, base tcell.Style) {
	x := 0
	for _, run := range runs {
		st := base
		if run.Color.Set {
			st = st.Foreground(tcellColor(run.Color, tcell.ColorDefault))
		}
		for _, r := range run.Text {
			if x >= w {
				return
			}
			cw := editor.CellWidth(r, x, tabWidth)
			if r == '\t' {
				for i := 0; i < cw && x+i < w; i++ {
					s.SetContent(x+i, y, ' ', nil, st)
				}
			} else {
				s.SetContent(x, y, r, nil, st)
			}
			x += cw
		}
	}
}

func drawText(s tcell.Screen, x, y, w int, text string, st tcell.Style) {
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, st)
		x += editor.CellWidth(r, x, 1)
	}
}

func fillRow(s tcell.Screen, y, w int, st tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, st)
	}
}

func clampX(x, w int) int {
	if x >= w {
		return w - 1
	}
	return x
}
