package treesitter

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kobzarvs/kedit/internal/highlight"
)

// Regex patterns for languages without a grammar.
var (
	jsonString = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
	jsonNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
	jsonWord   = regexp.MustCompile(`\b(true|false|null)\b`)

	gitComment = regexp.MustCompile(`^\s*#.*`)
	gitGlob    = regexp.MustCompile(`\*\*|[*?]|\[[^\]]+\]`)
)

// highlightJSONLine marks strings, object keys, numbers and literals.
// Keys are strings followed by a colon.
func highlightJSONLine(line string) []highlight.Span {
	var spans []highlight.Span
	strs := jsonString.FindAllStringIndex(line, -1)
	for _, loc := range strs {
		scope := "string"
		if rest := strings.TrimLeft(line[loc[1]:], " \t"); strings.HasPrefix(rest, ":") {
			scope = "field"
		}
		spans = append(spans, byteSpan(line, loc, scope))
	}
	inString := func(off int) bool {
		for _, loc := range strs {
			if off >= loc[0] && off < loc[1] {
				return true
			}
		}
		return false
	}
	for _, loc := range jsonNumber.FindAllStringIndex(line, -1) {
		if !inString(loc[0]) {
			spans = append(spans, byteSpan(line, loc, "number"))
		}
	}
	for _, loc := range jsonWord.FindAllStringIndex(line, -1) {
		if !inString(loc[0]) {
			spans = append(spans, byteSpan(line, loc, "constant.language"))
		}
	}
	return spans
}

func highlightGitignoreLine(line string) []highlight.Span {
	if line == "" {
		return nil
	}
	if gitComment.MatchString(line) {
		return []highlight.Span{{Start: 0, End: utf8.RuneCountInString(line), Scope: "comment"}}
	}
	var spans []highlight.Span
	if strings.HasPrefix(line, "!") {
		spans = append(spans, highlight.Span{Start: 0, End: 1, Scope: "keyword"})
	}
	for _, loc := range gitGlob.FindAllStringIndex(line, -1) {
		spans = append(spans, byteSpan(line, loc, "operator"))
	}
	if strings.HasSuffix(line, "/") {
		n := utf8.RuneCountInString(line)
		spans = append(spans, highlight.Span{Start: n - 1, End: n, Scope: "punctuation"})
	}
	return spans
}

func byteSpan(line string, loc []int, scope string) highlight.Span {
	return highlight.Span{Start: runeCol(line, loc[0]), End: runeCol(line, loc[1]), Scope: scope}
}
