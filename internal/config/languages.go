package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Language struct {
	Name         string   `toml:"name"`
	FileTypes    []string `toml:"file-types"`
	CommentToken string   `toml:"comment-token"`
	// Engine overrides the highlight backend order for this language.
	Engine string `toml:"engine"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

func DefaultLanguages() Languages {
	return Languages{Languages: []Language{
		{Name: "go", FileTypes: []string{"go"}, CommentToken: "//"},
		{Name: "rust", FileTypes: []string{"rs"}, CommentToken: "//"},
		{Name: "python", FileTypes: []string{"py", "pyi"}, CommentToken: "#"},
		{Name: "c", FileTypes: []string{"c", "h"}, CommentToken: "//"},
		{Name: "javascript", FileTypes: []string{"js", "mjs", "cjs"}, CommentToken: "//"},
		{Name: "yaml", FileTypes: []string{"yaml", "yml"}, CommentToken: "#"},
		{Name: "toml", FileTypes: []string{"toml"}, CommentToken: "#"},
		{Name: "bash", FileTypes: []string{"sh", "bash", "zsh", ".bashrc", ".zshrc"}, CommentToken: "#"},
		{Name: "json", FileTypes: []string{"json"}},
		{Name: "markdown", FileTypes: []string{"md", "markdown"}},
	}}
}

func (l Languages) Match(path string) *Language {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ftLower := strings.ToLower(ft)
			if ftLower == ext || ftLower == baseLower {
				return lang
			}
			if strings.HasPrefix(ftLower, ".") && strings.TrimPrefix(ftLower, ".") == ext {
				return lang
			}
		}
	}
	return nil
}

// Name returns the language name for path, "" when nothing matches.
func (l Languages) Name(path string) string {
	if lang := l.Match(path); lang != nil {
		return lang.Name
	}
	return ""
}

// LoadLanguages reads languages.toml over the built-in table. A user entry
// replaces the built-in one with the same name; new names are tried first.
func LoadLanguages() (Languages, error) {
	langs := DefaultLanguages()
	path, err := LanguagesPath()
	if err != nil {
		return langs, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return langs, nil
		}
		return langs, err
	}

	var user Languages
	if _, err := toml.Decode(string(data), &user); err != nil {
		return langs, err
	}
	return mergeLanguages(langs, user), nil
}

func mergeLanguages(base, user Languages) Languages {
	byName := make(map[string]bool, len(user.Languages))
	out := Languages{}
	for _, lang := range user.Languages {
		byName[lang.Name] = true
		out.Languages = append(out.Languages, lang)
	}
	for _, lang := range base.Languages {
		if !byName[lang.Name] {
			out.Languages = append(out.Languages, lang)
		}
	}
	return out
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
