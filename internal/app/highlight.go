package app

import (
	"github.com/kobzarvs/kedit/internal/chromahl"
	"github.com/kobzarvs/kedit/internal/config"
	"github.com/kobzarvs/kedit/internal/highlight"
	"github.com/kobzarvs/kedit/internal/logger"
	"github.com/kobzarvs/kedit/internal/syntax"
	"github.com/kobzarvs/kedit/internal/treesitter"
)

// engines lists the backend names in default lookup order.
var engines = []string{"syntax", "treesitter", "chroma"}

// resolver picks a registry by the preferred engine of the file's language.
// Every registry holds the same backends in a different order and is built
// once at start-up.
type resolver struct {
	langs      config.Languages
	engine     string
	registries map[string]*highlight.Registry
}

func (r *resolver) Resolve(path string) (highlight.Tokenizer, highlight.Theme, bool) {
	reg := r.registry(path)
	name, tok, ok := reg.ResolveBackend(path)
	if ok {
		logger.Debug("highlight backend", "path", path, "backend", name)
	}
	return tok, reg.Theme(), ok
}

func (r *resolver) registry(path string) *highlight.Registry {
	if lang := r.langs.Match(path); lang != nil && lang.Engine != "" {
		if reg, ok := r.registries[lang.Engine]; ok {
			return reg
		}
	}
	return r.registries[r.engine]
}

// newResolver builds the highlight backends. It returns nil when
// highlighting is disabled.
func newResolver(cfg config.Config, langs config.Languages) highlight.Resolver {
	if !cfg.Highlight.Enabled {
		return nil
	}
	backends := make(map[string]highlight.Backend, len(engines))
	if set, err := syntax.Load(); err != nil {
		logger.Warn("syntax definitions unavailable", "err", err)
	} else {
		backends["syntax"] = set
	}
	backends["treesitter"] = treesitter.New(langs)
	backends["chroma"] = chromahl.New()

	theme := buildTheme(cfg.Theme, cfg.Highlight.Style)
	r := &resolver{
		langs:      langs,
		engine:     preferredEngine(cfg.Highlight.Engine),
		registries: make(map[string]*highlight.Registry, len(engines)),
	}
	for _, first := range engines {
		ordered := []highlight.Backend{backends[first]}
		for _, name := range engines {
			if name != first {
				ordered = append(ordered, backends[name])
			}
		}
		r.registries[first] = highlight.NewRegistry(theme, langs.Name, ordered...)
	}
	return r
}

func preferredEngine(name string) string {
	for _, e := range engines {
		if e == name {
			return name
		}
	}
	if name != "" {
		logger.Warn("unknown highlight engine, using syntax", "engine", name)
	}
	return engines[0]
}

// buildTheme combines the theme's syntax-* colours with an optional chroma
// style. Scopes the style colours keep the style's colour.
func buildTheme(th config.Theme, style string) *highlight.ScopeTheme {
	fg, _ := highlight.ParseHex(th.Foreground)
	colors := make(map[string]highlight.Color)
	for scope, hex := range th.SyntaxColors() {
		if c, ok := highlight.ParseHex(hex); ok {
			colors[scope] = c
		}
	}
	if style == "" {
		return highlight.NewScopeTheme(fg, colors)
	}
	base, err := chromahl.StyleTheme(style)
	if err != nil {
		logger.Warn("chroma style unavailable", "style", style, "err", err)
		return highlight.NewScopeTheme(fg, colors)
	}
	for scope, c := range colors {
		if !base.Has(scope) {
			base.Set(scope, c)
		}
	}
	return base
}
