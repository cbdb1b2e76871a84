package treesitter

import (
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"

	"github.com/kobzarvs/kedit/internal/config"
	"github.com/kobzarvs/kedit/internal/highlight"
)

func splitDoc(src string) []string {
	return strings.Split(strings.TrimSuffix(src, "\n"), "\n")
}

// tokenize runs one pass of tok and returns the spans of every line.
func tokenize(tok highlight.Tokenizer, lines []string) [][]highlight.Span {
	state := tok.Begin(lines)
	out := make([][]highlight.Span, len(lines))
	for i, line := range lines {
		out[i], state = tok.Line(state, line)
	}
	return out
}

func hasSpan(spans []highlight.Span, scope string, start, end int) bool {
	for _, s := range spans {
		if s.Scope == scope && s.Start == start && s.End == end {
			return true
		}
	}
	return false
}

func hasScope(spans []highlight.Span, prefix string) bool {
	for _, s := range spans {
		if strings.HasPrefix(s.Scope, prefix) {
			return true
		}
	}
	return false
}

func TestGoHighlightsUseRuneColumns(t *testing.T) {
	e := New(config.DefaultLanguages())
	tok, ok := e.Tokenizer("", "main.go")
	if !ok {
		t.Fatalf("Tokenizer main.go ok = false")
	}
	lines := splitDoc(heredoc.Doc(`
		package main

		func main() {
			s := "héllo"
			_ = s
		}
	`))
	rows := tokenize(tok, lines)
	if !hasSpan(rows[0], "keyword", 0, 7) {
		t.Fatalf("row 0 spans = %#v, want keyword 0..7", rows[0])
	}
	if !hasSpan(rows[2], "keyword", 0, 4) {
		t.Fatalf("row 2 spans = %#v, want keyword 0..4", rows[2])
	}
	if !hasSpan(rows[3], "string", 6, 13) {
		t.Fatalf("row 3 spans = %#v, want string 6..13", rows[3])
	}
}

func TestDocumentPassesNeverConverge(t *testing.T) {
	e := New(config.DefaultLanguages())
	tok, _ := e.Tokenizer("yaml", "")
	lines := []string{"a: 1"}
	first := tok.Begin(lines)
	second := tok.Begin(lines)
	if first.Equal(second) {
		t.Fatalf("states of two passes compare equal")
	}
	spans, next := tok.Line(first, lines[0])
	if spans != nil {
		t.Fatalf("stale pass spans = %#v, want nil", spans)
	}
	if next.Equal(first) {
		t.Fatalf("Line did not advance the row")
	}
}

func TestYAMLAndTOML(t *testing.T) {
	e := New(config.DefaultLanguages())
	tests := []struct {
		path  string
		line  string
		scope string
	}{
		{"config.yaml", "name: kedit # editor", "comment"},
		{"config.yaml", "name: kedit", "field"},
		{"Cargo.toml", "[package]", "type"},
		{"Cargo.toml", "edition = 2021", "number"},
		{"run.sh", "echo $HOME", "function"},
	}
	for _, tt := range tests {
		tok, ok := e.Tokenizer("", tt.path)
		if !ok {
			t.Fatalf("Tokenizer %s ok = false", tt.path)
		}
		rows := tokenize(tok, []string{tt.line})
		if !hasScope(rows[0], tt.scope) {
			t.Fatalf("%s %q spans = %#v, want %s", tt.path, tt.line, rows[0], tt.scope)
		}
	}
}

func TestMarkdownInlineAndFences(t *testing.T) {
	e := New(config.DefaultLanguages())
	tok, ok := e.Tokenizer("", "README.md")
	if !ok {
		t.Fatalf("Tokenizer README.md ok = false")
	}
	lines := splitDoc("# Title\n\nsome `code` here\n\n```go\nfunc f() {}\n```\n")
	rows := tokenize(tok, lines)
	if !hasScope(rows[0], "keyword.heading") {
		t.Fatalf("heading spans = %#v", rows[0])
	}
	if !hasSpan(rows[2], "string.code", 5, 11) {
		t.Fatalf("inline spans = %#v, want string.code 5..11", rows[2])
	}
	if !hasSpan(rows[5], "keyword", 0, 4) {
		t.Fatalf("fence spans = %#v, want keyword 0..4", rows[5])
	}
}

func TestJSONLine(t *testing.T) {
	spans := highlightJSONLine(`{"name": "kédit", "n": 12, "ok": true}`)
	if !hasSpan(spans, "field", 1, 7) {
		t.Fatalf("spans = %#v, want field 1..7", spans)
	}
	if !hasSpan(spans, "string", 9, 16) {
		t.Fatalf("spans = %#v, want string 9..16", spans)
	}
	if !hasSpan(spans, "number", 23, 25) {
		t.Fatalf("spans = %#v, want number 23..25", spans)
	}
	if !hasSpan(spans, "constant.language", 33, 37) {
		t.Fatalf("spans = %#v, want constant 33..37", spans)
	}
}

func TestJSONIgnoresDigitsInStrings(t *testing.T) {
	spans := highlightJSONLine(`"v1": "true 2"`)
	for _, s := range spans {
		if s.Scope == "number" || s.Scope == "constant.language" {
			t.Fatalf("span inside string: %#v", s)
		}
	}
}

func TestGitignoreLine(t *testing.T) {
	if got := highlightGitignoreLine("# build output"); !hasSpan(got, "comment", 0, 14) {
		t.Fatalf("comment spans = %#v", got)
	}
	got := highlightGitignoreLine("!build/")
	if !hasSpan(got, "keyword", 0, 1) || !hasSpan(got, "punctuation", 6, 7) {
		t.Fatalf("negation spans = %#v", got)
	}
	if got := highlightGitignoreLine("*.log"); !hasSpan(got, "operator", 0, 1) {
		t.Fatalf("glob spans = %#v", got)
	}
}

func TestLineTokenizersAreIncremental(t *testing.T) {
	e := New(config.DefaultLanguages())
	tok, ok := e.Tokenizer("", "/repo/.gitignore")
	if !ok {
		t.Fatalf("Tokenizer .gitignore ok = false")
	}
	if !tok.Begin(nil).Equal(tok.Begin([]string{"x"})) {
		t.Fatalf("line tokenizer states differ between passes")
	}
}

func TestUnknownLanguage(t *testing.T) {
	e := New(config.DefaultLanguages())
	if _, ok := e.Tokenizer("", "notes.txt"); ok {
		t.Fatalf("Tokenizer notes.txt ok = true")
	}
	if _, ok := e.Tokenizer("rust", "main.rs"); ok {
		t.Fatalf("Tokenizer rust ok = true")
	}
	if e.Name() != "treesitter" {
		t.Fatalf("Name = %q, want treesitter", e.Name())
	}
}
