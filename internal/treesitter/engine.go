// Package treesitter highlights whole documents with tree-sitter grammars
// and highlight queries. JSON and gitignore files, which have no grammar
// here, are highlighted line by line with regular expressions.
package treesitter

import (
	"context"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	tree_sitter_markdown_inline "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown-inline"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/yaml"

	"github.com/kobzarvs/kedit/internal/config"
	"github.com/kobzarvs/kedit/internal/highlight"
	"github.com/kobzarvs/kedit/internal/logger"
)

type grammar struct {
	lang  *sitter.Language
	query *sitter.Query
}

// Engine is the tree-sitter highlight backend. Grammars and queries are
// compiled once by New and shared by every tokenizer it hands out.
type Engine struct {
	langs         config.Languages
	grammars      map[string]grammar
	mdInlineQuery *sitter.Query
}

func New(langs config.Languages) *Engine {
	e := &Engine{
		langs:    langs,
		grammars: make(map[string]grammar),
	}
	languages := []struct {
		name  string
		lang  *sitter.Language
		query string
	}{
		{"go", golang.GetLanguage(), goHighlightQuery},
		{"markdown", tree_sitter_markdown.GetLanguage(), markdownBlockHighlightQuery},
		{"yaml", yaml.GetLanguage(), yamlHighlightQuery},
		{"toml", toml.GetLanguage(), tomlHighlightQuery},
		{"bash", bash.GetLanguage(), bashHighlightQuery},
	}
	for _, l := range languages {
		query, err := sitter.NewQuery([]byte(l.query), l.lang)
		if err != nil {
			logger.Warn("tree-sitter query failed", "lang", l.name, "err", err)
			continue
		}
		e.grammars[l.name] = grammar{lang: l.lang, query: query}
	}

	inlineQuery, err := sitter.NewQuery([]byte(markdownInlineHighlightQuery), tree_sitter_markdown_inline.GetLanguage())
	if err == nil {
		e.mdInlineQuery = inlineQuery
	}
	return e
}

func (e *Engine) Name() string {
	return "treesitter"
}

// Tokenizer returns a tokenizer for lang, detecting the language from path
// when lang is empty.
func (e *Engine) Tokenizer(lang, path string) (highlight.Tokenizer, bool) {
	if lang == "" {
		lang = e.langs.Name(path)
	}
	if lang == "" && strings.EqualFold(baseName(path), ".gitignore") {
		lang = "gitignore"
	}
	switch lang {
	case "json":
		return lineTokenizer{spans: highlightJSONLine}, true
	case "gitignore":
		return lineTokenizer{spans: highlightGitignoreLine}, true
	}
	g, ok := e.grammars[lang]
	if !ok {
		return nil, false
	}
	p := sitter.NewParser()
	p.SetLanguage(g.lang)
	t := &docTokenizer{parser: p, query: g.query}
	if lang == "markdown" {
		t.inline = e.mdInlineQuery
		t.fences = e.grammars
	}
	return t, true
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// docTokenizer parses the whole document in Begin and replays the spans
// row by row.
type docTokenizer struct {
	parser *sitter.Parser
	query  *sitter.Query
	inline *sitter.Query
	// grammars for fenced code blocks, markdown only
	fences map[string]grammar

	pass uint64
	rows [][]highlight.Span
}

func (t *docTokenizer) Begin(lines []string) highlight.State {
	t.pass++
	source := []byte(strings.Join(lines, "\n"))
	tree, err := t.parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		logger.Debug("tree-sitter parse failed", "err", err)
		t.rows = nil
		return highlight.RowState{Pass: t.pass}
	}
	t.rows = queryHighlights(t.query, tree, source, lines)
	if t.inline != nil {
		t.addMarkdownInline(tree, lines)
	}
	return highlight.RowState{Pass: t.pass}
}

func (t *docTokenizer) Line(state highlight.State, line string) ([]highlight.Span, highlight.State) {
	st, _ := state.(highlight.RowState)
	var spans []highlight.Span
	if st.Pass == t.pass && st.Row >= 0 && st.Row < len(t.rows) {
		spans = t.rows[st.Row]
	}
	return spans, st.Next()
}

// queryHighlights runs a highlight query over a parsed document and returns
// the captured spans of each row in rune columns. Capture names are used
// as scopes.
func queryHighlights(query *sitter.Query, tree *sitter.Tree, source []byte, lines []string) [][]highlight.Span {
	out := make([][]highlight.Span, len(lines))
	if query == nil || tree == nil {
		return out
	}
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, tree.RootNode())

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		if match == nil {
			continue
		}
		for _, capture := range match.Captures {
			scope := query.CaptureNameForId(capture.Index)
			start := capture.Node.StartPoint()
			end := capture.Node.EndPoint()
			for row := int(start.Row); row <= int(end.Row) && row < len(lines); row++ {
				line := lines[row]
				startCol := 0
				endCol := utf8.RuneCountInString(line)
				if row == int(start.Row) {
					startCol = runeCol(line, int(start.Column))
				}
				if row == int(end.Row) {
					endCol = runeCol(line, int(end.Column))
				}
				if startCol >= endCol {
					continue
				}
				out[row] = append(out[row], highlight.Span{Start: startCol, End: endCol, Scope: scope})
			}
		}
	}
	return out
}

// runeCol converts a byte column of line to a rune column.
func runeCol(line string, byteCol int) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	return utf8.RuneCountInString(line[:byteCol])
}

// lineTokenizer adapts a stateless per-line highlighter.
type lineTokenizer struct {
	spans func(line string) []highlight.Span
}

type lineState struct{}

func (lineState) Equal(other highlight.State) bool {
	_, ok := other.(lineState)
	return ok
}

func (lineTokenizer) Begin([]string) highlight.State {
	return lineState{}
}

func (t lineTokenizer) Line(state highlight.State, line string) ([]highlight.Span, highlight.State) {
	return t.spans(line), state
}
