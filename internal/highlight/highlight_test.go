package highlight

import (
	"reflect"
	"testing"
)

type commentState bool

func (s commentState) Equal(other State) bool {
	o, ok := other.(commentState)
	return ok && o == s
}

// blockTokenizer marks /* ... */ as comment, across lines.
type blockTokenizer struct {
	calls int
}

func (t *blockTokenizer) Begin([]string) State {
	return commentState(false)
}

func (t *blockTokenizer) Line(state State, line string) ([]Span, State) {
	t.calls++
	in := bool(state.(commentState))
	runes := []rune(line)
	var spans []Span
	start := 0
	for i := 0; i+1 < len(runes); i++ {
		if !in && runes[i] == '/' && runes[i+1] == '*' {
			in = true
			start = i
			i++
			continue
		}
		if in && runes[i] == '*' && runes[i+1] == '/' {
			spans = append(spans, Span{Start: start, End: i + 2, Scope: "comment"})
			in = false
			i++
		}
	}
	if in {
		spans = append(spans, Span{Start: start, End: len(runes), Scope: "comment"})
	}
	return spans, commentState(in)
}

var (
	fg      = RGB(0xb3, 0xb1, 0xad)
	comment = RGB(0x5c, 0x67, 0x73)
	keyword = RGB(0xff, 0xa7, 0x59)
)

func testTheme() *ScopeTheme {
	return NewScopeTheme(fg, map[string]Color{
		"comment": comment,
		"keyword": keyword,
	})
}

func TestParseHex(t *testing.T) {
	c, ok := ParseHex("#FFA759")
	if !ok {
		t.Fatalf("ParseHex failed")
	}
	if c != keyword {
		t.Fatalf("ParseHex = %#v, want %#v", c, keyword)
	}
	if got := c.Hex(); got != "#ffa759" {
		t.Fatalf("Hex = %q, want %q", got, "#ffa759")
	}
	for _, bad := range []string{"", "red", "#12345", "#zzzzzz"} {
		if _, ok := ParseHex(bad); ok {
			t.Fatalf("ParseHex(%q) ok, want failure", bad)
		}
	}
}

func TestScopeThemeDottedFallback(t *testing.T) {
	th := testTheme()
	if got := th.Color("comment.line.double-slash"); got != comment {
		t.Fatalf("comment.line.double-slash = %#v, want comment colour", got)
	}
	if got := th.Color("unknown"); got != fg {
		t.Fatalf("unknown scope = %#v, want foreground", got)
	}
	th.Set("comment.doc", keyword)
	if got := th.Color("comment.doc.tag"); got != keyword {
		t.Fatalf("comment.doc.tag = %#v, want override", got)
	}
}

func TestColorizePriorityAndMerge(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 2, Scope: "keyword"},
		{Start: 0, End: 8, Scope: "comment"},
	}
	runs := Colorize("if x // y", spans, testTheme())
	want := []Run{
		{Text: "if x // ", Color: comment},
		{Text: "y", Color: fg},
	}
	if !reflect.DeepEqual(runs, want) {
		t.Fatalf("runs = %#v, want %#v", runs, want)
	}
	if got := Text(runs); got != "if x // y" {
		t.Fatalf("Text = %q, want %q", got, "if x // y")
	}
}

func TestColorizeClampsSpans(t *testing.T) {
	runs := Colorize("héllo", []Span{{Start: 3, End: 99, Scope: "keyword"}, {Start: 4, End: 2, Scope: "comment"}}, testTheme())
	want := []Run{
		{Text: "hél", Color: fg},
		{Text: "lo", Color: keyword},
	}
	if !reflect.DeepEqual(runs, want) {
		t.Fatalf("runs = %#v, want %#v", runs, want)
	}
}

func TestPipelineWithoutTokenizer(t *testing.T) {
	p := NewPipeline(nil, testTheme(), ModeFull)
	out := p.Update([]string{"fn main", ""})
	if len(out) != 2 {
		t.Fatalf("rendered len = %d, want 2", len(out))
	}
	if len(out[0]) != 1 || out[0][0].Text != "fn main" || out[0][0].Color != fg {
		t.Fatalf("line 1 = %#v, want one foreground run", out[0])
	}
	if len(out[1]) != 1 || out[1][0].Text != "" {
		t.Fatalf("line 2 = %#v, want one empty run", out[1])
	}
}

func TestPipelineMultiLineState(t *testing.T) {
	p := NewPipeline(&blockTokenizer{}, testTheme(), ModeFull)
	out := p.Update([]string{"a /* b", "c", "d */ e"})
	if out[1][0].Color != comment || out[1][0].Text != "c" {
		t.Fatalf("line 2 = %#v, want comment", out[1])
	}
	last := out[2]
	if last[0].Text != "d */" || last[0].Color != comment {
		t.Fatalf("line 3 first run = %#v, want closing comment", last[0])
	}
	if last[1].Text != " e" || last[1].Color != fg {
		t.Fatalf("line 3 second run = %#v, want foreground", last[1])
	}
}

func TestPipelineIncrementalMatchesFull(t *testing.T) {
	lines := []string{"one", "two", "three", "four", "five", "six", "seven", "eight"}

	incTok := &blockTokenizer{}
	inc := NewPipeline(incTok, testTheme(), ModeIncremental)
	inc.Update(lines)
	if inc.LastWork() != len(lines) {
		t.Fatalf("first pass work = %d, want %d", inc.LastWork(), len(lines))
	}

	edits := []struct {
		name    string
		mutate  func([]string) []string
		maxWork int
		minWork int
	}{
		{
			name:    "edit one line",
			mutate:  func(ls []string) []string { ls[3] = "FOUR"; return ls },
			minWork: 1,
			maxWork: 1,
		},
		{
			name:    "open comment",
			mutate:  func(ls []string) []string { ls[2] = "three /*"; return ls },
			minWork: 6,
			maxWork: 6,
		},
		{
			name:    "close comment",
			mutate:  func(ls []string) []string { ls[5] = "six */"; return ls },
			minWork: 3,
			maxWork: 3,
		},
		{
			name: "insert line",
			mutate: func(ls []string) []string {
				out := append([]string{}, ls[:1]...)
				out = append(out, "new")
				return append(out, ls[1:]...)
			},
			minWork: 1,
			maxWork: 1,
		},
		{
			name: "delete line",
			mutate: func(ls []string) []string {
				return append(append([]string{}, ls[:4]...), ls[5:]...)
			},
			minWork: 0,
			maxWork: 1,
		},
	}
	for _, tt := range edits {
		lines = tt.mutate(append([]string{}, lines...))
		got := inc.Update(lines)
		want := NewPipeline(&blockTokenizer{}, testTheme(), ModeFull).Update(lines)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: incremental = %#v, want %#v", tt.name, got, want)
		}
		if w := inc.LastWork(); w < tt.minWork || w > tt.maxWork {
			t.Fatalf("%s: work = %d, want %d..%d", tt.name, w, tt.minWork, tt.maxWork)
		}
	}
}

type docTokenizer struct {
	pass uint64
}

func (d *docTokenizer) Begin([]string) State {
	d.pass++
	return RowState{Pass: d.pass}
}

func (d *docTokenizer) Line(state State, line string) ([]Span, State) {
	s := state.(RowState)
	return nil, s.Next()
}

func TestPipelineIncrementalFallsBackForDocumentTokenizers(t *testing.T) {
	p := NewPipeline(&docTokenizer{}, testTheme(), ModeIncremental)
	p.Update([]string{"a", "b", "c"})
	p.Update([]string{"a", "B", "c"})
	if p.LastWork() != 3 {
		t.Fatalf("work = %d, want 3", p.LastWork())
	}
}

type stubBackend struct {
	name  string
	langs map[string]bool
}

func (b stubBackend) Name() string { return b.name }

func (b stubBackend) Tokenizer(lang, path string) (Tokenizer, bool) {
	if !b.langs[lang] {
		return nil, false
	}
	return &blockTokenizer{}, true
}

func TestRegistryResolveOrder(t *testing.T) {
	langOf := func(path string) string {
		switch path {
		case "main.go":
			return "go"
		case "lib.rs":
			return "rust"
		}
		return ""
	}
	reg := NewRegistry(testTheme(), langOf,
		stubBackend{name: "syntax", langs: map[string]bool{"rust": true}},
		nil,
		stubBackend{name: "treesitter", langs: map[string]bool{"go": true, "rust": true}},
	)
	if got := reg.Backends(); !reflect.DeepEqual(got, []string{"syntax", "treesitter"}) {
		t.Fatalf("Backends = %v", got)
	}
	name, tok, ok := reg.ResolveBackend("lib.rs")
	if !ok || tok == nil || name != "syntax" {
		t.Fatalf("lib.rs resolved to %q, %v", name, ok)
	}
	name, _, ok = reg.ResolveBackend("main.go")
	if !ok || name != "treesitter" {
		t.Fatalf("main.go resolved to %q, %v", name, ok)
	}
	tok, theme, ok := reg.Resolve("notes.txt")
	if ok || tok != nil {
		t.Fatalf("notes.txt resolved, want no tokenizer")
	}
	if theme == nil {
		t.Fatalf("theme is nil")
	}
}
