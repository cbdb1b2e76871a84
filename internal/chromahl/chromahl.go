// Package chromahl is the chroma highlight backend. It covers the many
// languages that have no tree-sitter grammar or YAML syntax, and turns
// chroma styles into highlight themes.
package chromahl

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/kobzarvs/kedit/internal/highlight"
	"github.com/kobzarvs/kedit/internal/logger"
)

var ErrUnknownStyle = errors.New("unknown chroma style")

type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string {
	return "chroma"
}

// Tokenizer looks the lexer up by language name, then by file name.
func (b *Backend) Tokenizer(lang, path string) (highlight.Tokenizer, bool) {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil && path != "" {
		lexer = lexers.Match(path)
	}
	if lexer == nil {
		return nil, false
	}
	return &tokenizer{lexer: chroma.Coalesce(lexer)}, true
}

// tokenizer lexes the whole document in Begin and hands out the spans row
// by row.
type tokenizer struct {
	lexer chroma.Lexer
	pass  uint64
	rows  [][]highlight.Span
}

func (t *tokenizer) Begin(lines []string) highlight.State {
	t.pass++
	t.rows = make([][]highlight.Span, len(lines))
	iterator, err := t.lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		logger.Debug("chroma tokenise failed", "lexer", t.lexer.Config().Name, "err", err)
		return highlight.RowState{Pass: t.pass}
	}

	row, col := 0, 0
	for _, token := range iterator.Tokens() {
		scope := Scope(token.Type)
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				row++
				col = 0
			}
			if row >= len(t.rows) {
				break
			}
			n := utf8.RuneCountInString(part)
			if scope != "" && n > 0 {
				t.rows[row] = append(t.rows[row], highlight.Span{Start: col, End: col + n, Scope: scope})
			}
			col += n
		}
	}
	return highlight.RowState{Pass: t.pass}
}

func (t *tokenizer) Line(state highlight.State, line string) ([]highlight.Span, highlight.State) {
	st, _ := state.(highlight.RowState)
	var spans []highlight.Span
	if st.Pass == t.pass && st.Row >= 0 && st.Row < len(t.rows) {
		spans = t.rows[st.Row]
	}
	return spans, st.Next()
}

// Scope maps a chroma token type to a highlight scope, "" for plain text.
func Scope(tt chroma.TokenType) string {
	switch {
	case tt.InCategory(chroma.Comment):
		return "comment"
	case tt == chroma.LiteralStringEscape:
		return "string.escape"
	case tt.InSubCategory(chroma.LiteralString):
		return "string"
	case tt.InSubCategory(chroma.LiteralNumber):
		return "number"
	case tt == chroma.KeywordConstant:
		return "constant.language"
	case tt == chroma.KeywordType:
		return "type.builtin"
	case tt.InCategory(chroma.Keyword):
		return "keyword"
	case tt == chroma.NameBuiltin || tt == chroma.NameBuiltinPseudo:
		return "builtin"
	case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
		return "function"
	case tt == chroma.NameDecorator:
		return "function.decorator"
	case tt == chroma.NameClass || tt == chroma.NameNamespace || tt == chroma.NameException:
		return "type"
	case tt == chroma.NameConstant:
		return "constant"
	case tt == chroma.NameAttribute || tt == chroma.NameProperty || tt == chroma.NameTag:
		return "field"
	case tt == chroma.NameVariable || tt == chroma.NameVariableInstance || tt == chroma.NameVariableGlobal:
		return "variable"
	case tt.InCategory(chroma.Operator):
		return "operator"
	case tt.InCategory(chroma.Punctuation):
		return "punctuation"
	case tt == chroma.GenericHeading || tt == chroma.GenericSubheading:
		return "keyword.heading"
	case tt == chroma.GenericEmph:
		return "type.emphasis"
	case tt == chroma.GenericStrong:
		return "type.strong"
	}
	return ""
}

// styleScopes is the token type whose style colours each scope.
var styleScopes = []struct {
	scope string
	token chroma.TokenType
}{
	{"comment", chroma.Comment},
	{"string", chroma.LiteralString},
	{"string.escape", chroma.LiteralStringEscape},
	{"number", chroma.LiteralNumber},
	{"keyword", chroma.Keyword},
	{"constant", chroma.NameConstant},
	{"constant.language", chroma.KeywordConstant},
	{"builtin", chroma.NameBuiltin},
	{"type", chroma.NameClass},
	{"type.builtin", chroma.KeywordType},
	{"function", chroma.NameFunction},
	{"field", chroma.NameAttribute},
	{"variable", chroma.NameVariable},
	{"operator", chroma.Operator},
	{"punctuation", chroma.Punctuation},
}

// StyleTheme builds a theme from a chroma style. Only scopes whose colour
// differs from the style's plain text colour are set, so callers can fill
// the rest from their own table.
func StyleTheme(name string) (*highlight.ScopeTheme, error) {
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	text := style.Get(chroma.Text).Colour
	theme := highlight.NewScopeTheme(convert(text), nil)
	for _, s := range styleScopes {
		c := style.Get(s.token).Colour
		if !c.IsSet() || c == text {
			continue
		}
		theme.Set(s.scope, convert(c))
	}
	return theme, nil
}

// Background returns the style's background colour.
func Background(name string) (highlight.Color, bool) {
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return highlight.Color{}, false
	}
	bg := style.Get(chroma.Background).Background
	if !bg.IsSet() {
		return highlight.Color{}, false
	}
	return convert(bg), true
}

func convert(c chroma.Colour) highlight.Color {
	if !c.IsSet() {
		return highlight.Color{}
	}
	return highlight.RGB(c.Red(), c.Green(), c.Blue())
}
