package highlight

import "strings"

// ScopeTheme is a Theme backed by a scope table. Lookups walk the dotted
// scope from the most specific name to the least specific one.
type ScopeTheme struct {
	fg     Color
	scopes map[string]Color
}

func NewScopeTheme(fg Color, scopes map[string]Color) *ScopeTheme {
	t := &ScopeTheme{fg: fg, scopes: make(map[string]Color, len(scopes))}
	for k, v := range scopes {
		t.scopes[k] = v
	}
	return t
}

func (t *ScopeTheme) Foreground() Color {
	return t.fg
}

func (t *ScopeTheme) Color(scope string) Color {
	for scope != "" {
		if c, ok := t.scopes[scope]; ok && c.Set {
			return c
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return t.fg
}

// Set overrides the colour of a scope. Unset colours are ignored.
func (t *ScopeTheme) Set(scope string, c Color) {
	if !c.Set {
		return
	}
	t.scopes[scope] = c
}

// Has reports whether the scope has its own entry.
func (t *ScopeTheme) Has(scope string) bool {
	_, ok := t.scopes[scope]
	return ok
}

// DefaultTheme draws everything in the terminal default colour.
func DefaultTheme() *ScopeTheme {
	return NewScopeTheme(Color{}, nil)
}
