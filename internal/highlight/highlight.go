// Package highlight turns document lines into coloured runs using a
// line-stateful tokenizer and a scope-to-colour theme.
package highlight

import (
	"strconv"
	"strings"
)

// Color is a 24-bit colour. The zero value means the terminal default.
type Color struct {
	R, G, B uint8
	Set     bool
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// ParseHex parses "#rrggbb". Anything else reports false.
func ParseHex(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") || len(s) != 7 {
		return Color{}, false
	}
	r, err1 := strconv.ParseUint(s[1:3], 16, 8)
	g, err2 := strconv.ParseUint(s[3:5], 16, 8)
	b, err3 := strconv.ParseUint(s[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return Color{}, false
	}
	return RGB(uint8(r), uint8(g), uint8(b)), true
}

func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	const digits = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		buf[1+i*2] = digits[v>>4]
		buf[2+i*2] = digits[v&0x0f]
	}
	return string(buf)
}

// Span marks the rune range [Start, End) of a line with a scope name.
// Scopes are dotted; "comment.line" falls back to "comment".
type Span struct {
	Start int
	End   int
	Scope string
}

// Run is a piece of a rendered line drawn in one colour.
type Run struct {
	Text  string
	Color Color
}

// State is the tokenizer state carried from the end of one line to the
// start of the next.
type State interface {
	Equal(other State) bool
}

// Tokenizer produces scoped spans one line at a time.
//
// Begin is called once per pass over the document and returns the state
// for line 1. Line-oriented tokenizers ignore the lines; document-level
// tokenizers parse them there and hand out per-line results from Line.
type Tokenizer interface {
	Begin(lines []string) State
	Line(state State, line string) ([]Span, State)
}

// Theme maps scopes to colours.
type Theme interface {
	Color(scope string) Color
	Foreground() Color
}

// Priority orders overlapping scopes; the highest wins.
func Priority(scope string) int {
	switch baseScope(scope) {
	case "comment":
		return 7
	case "string":
		return 6
	case "keyword":
		return 5
	case "constant", "builtin":
		return 4
	case "type", "function", "number", "parameter":
		return 3
	case "field", "variable":
		return 2
	case "operator", "punctuation":
		return 1
	default:
		return 0
	}
}

func baseScope(scope string) string {
	if i := strings.IndexByte(scope, '.'); i >= 0 {
		return scope[:i]
	}
	return scope
}

// Colorize resolves overlapping spans and merges neighbouring runes with
// the same colour into runs. Text outside every span gets the foreground.
func Colorize(line string, spans []Span, theme Theme) []Run {
	if line == "" {
		return nil
	}
	fg := theme.Foreground()
	runes := []rune(line)
	colors := make([]Color, len(runes))
	best := make([]int, len(runes))
	for i := range colors {
		colors[i] = fg
		best[i] = -1
	}
	for _, span := range spans {
		start, end := span.Start, span.End
		if start < 0 {
			start = 0
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start >= end {
			continue
		}
		prio := Priority(span.Scope)
		c := theme.Color(span.Scope)
		if !c.Set {
			c = fg
		}
		for i := start; i < end; i++ {
			if prio > best[i] {
				best[i] = prio
				colors[i] = c
			}
		}
	}

	var runs []Run
	runStart := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && colors[i] == colors[runStart] {
			continue
		}
		runs = append(runs, Run{Text: string(runes[runStart:i]), Color: colors[runStart]})
		runStart = i
	}
	return runs
}

// Plain renders a line as a single run in the foreground colour.
func Plain(line string, theme Theme) []Run {
	return []Run{{Text: line, Color: theme.Foreground()}}
}

// Text concatenates the runs of a line.
func Text(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
