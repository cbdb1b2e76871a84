package syntax

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kobzarvs/kedit/internal/config"
	"github.com/kobzarvs/kedit/internal/highlight"
	"github.com/kobzarvs/kedit/internal/logger"
)

//go:embed defs/*.yaml
var builtin embed.FS

// Set is the "syntax" highlight backend: every known definition, looked up
// by language name first and file extension second.
type Set struct {
	byName map[string]*Syntax
}

func NewSet(defs ...*Syntax) *Set {
	s := &Set{byName: make(map[string]*Syntax, len(defs))}
	for _, d := range defs {
		s.Add(d)
	}
	return s
}

// Add registers d, replacing any definition with the same name.
func (s *Set) Add(d *Syntax) {
	if d != nil {
		s.byName[d.name] = d
	}
}

func (s *Set) Name() string {
	return "syntax"
}

// Names lists the known definitions in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Set) Get(name string) (*Syntax, bool) {
	d, ok := s.byName[name]
	return d, ok
}

func (s *Set) Tokenizer(lang, path string) (highlight.Tokenizer, bool) {
	if d, ok := s.byName[lang]; ok && lang != "" {
		return d, true
	}
	if path == "" {
		return nil, false
	}
	base := strings.ToLower(filepath.Base(path))
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	for _, name := range s.Names() {
		for _, ft := range s.byName[name].fileTypes {
			ft = strings.ToLower(ft)
			if ft == base || (ext != "" && strings.TrimPrefix(ft, ".") == ext) {
				return s.byName[name], true
			}
		}
	}
	return nil, false
}

// Builtin returns the definitions shipped with the editor.
func Builtin() (*Set, error) {
	s := NewSet()
	if err := s.loadFS(builtin, "defs"); err != nil {
		return nil, err
	}
	return s, nil
}

// Load returns the built-in definitions overlaid with the user's
// <config dir>/syntax/*.yaml files. A user file with the name of a built-in
// definition replaces it. Broken user files are logged and skipped.
func Load() (*Set, error) {
	s, err := Builtin()
	if err != nil {
		return nil, err
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return s, nil
	}
	s.loadDir(filepath.Join(dir, "syntax"))
	return s, nil
}

func (s *Set) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !isDefinition(entry) {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return err
		}
		d, err := Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
		s.Add(d)
	}
	return nil
}

func (s *Set) loadDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("read syntax dir failed", "dir", dir, "err", err)
		}
		return
	}
	for _, entry := range entries {
		if !isDefinition(entry) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("read syntax failed", "path", path, "err", err)
			continue
		}
		d, err := Parse(data)
		if err != nil {
			logger.Warn("invalid syntax definition", "path", path, "err", err)
			continue
		}
		s.Add(d)
		logger.Debug("loaded syntax", "name", d.name, "path", path)
	}
}

func isDefinition(entry fs.DirEntry) bool {
	if entry.IsDir() {
		return false
	}
	ext := filepath.Ext(entry.Name())
	return ext == ".yaml" || ext == ".yml"
}
