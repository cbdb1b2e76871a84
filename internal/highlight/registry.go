package highlight

// Backend builds tokenizers for one highlighting engine.
type Backend interface {
	Name() string
	// Tokenizer returns a fresh tokenizer for a language name and file
	// path. Either may be empty.
	Tokenizer(lang, path string) (Tokenizer, bool)
}

// Resolver picks the tokenizer and theme for a file.
type Resolver interface {
	Resolve(path string) (Tokenizer, Theme, bool)
}

// LanguageFunc maps a file path to a language name, "" when unknown.
type LanguageFunc func(path string) string

// Registry is the read-only set of highlighting backends and the theme.
// It is built once at start-up and shared by every buffer.
type Registry struct {
	theme    Theme
	language LanguageFunc
	backends []Backend
}

// NewRegistry asks backends in order; the first one that knows the file wins.
func NewRegistry(theme Theme, language LanguageFunc, backends ...Backend) *Registry {
	if theme == nil {
		theme = DefaultTheme()
	}
	var bs []Backend
	for _, b := range backends {
		if b != nil {
			bs = append(bs, b)
		}
	}
	return &Registry{theme: theme, language: language, backends: bs}
}

func (r *Registry) Theme() Theme {
	return r.theme
}

// Backends lists backend names in lookup order.
func (r *Registry) Backends() []string {
	names := make([]string, len(r.backends))
	for i, b := range r.backends {
		names[i] = b.Name()
	}
	return names
}

// Resolve returns the tokenizer for path. A file no backend recognises gets
// a nil tokenizer and the registry theme.
func (r *Registry) Resolve(path string) (Tokenizer, Theme, bool) {
	_, tok, ok := r.ResolveBackend(path)
	return tok, r.theme, ok
}

// ResolveBackend is Resolve plus the name of the backend that answered.
func (r *Registry) ResolveBackend(path string) (string, Tokenizer, bool) {
	lang := ""
	if r.language != nil {
		lang = r.language(path)
	}
	for _, b := range r.backends {
		if tok, ok := b.Tokenizer(lang, path); ok {
			return b.Name(), tok, true
		}
	}
	return "", nil, false
}

// RowState is the state used by document-level tokenizers: the pass that
// produced the results and the line about to be read. Two passes never
// compare equal, so an incremental pipeline falls back to a full pass.
type RowState struct {
	Pass uint64
	Row  int
}

func (s RowState) Equal(other State) bool {
	o, ok := other.(RowState)
	return ok && o == s
}

func (s RowState) Next() RowState {
	return RowState{Pass: s.Pass, Row: s.Row + 1}
}
