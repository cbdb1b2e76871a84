// Package syntax is a line-oriented highlighter driven by YAML syntax
// definitions. A definition is a set of named contexts; each context holds
// regular-expression rules that colour text and push or pop contexts. The
// context stack at the end of a line is the state carried to the next one,
// so constructs such as block comments and raw strings span lines.
package syntax

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/kobzarvs/kedit/internal/highlight"
)

var (
	ErrNoMain         = errors.New("syntax has no main context")
	ErrUnknownContext = errors.New("unknown context")
	ErrNoName         = errors.New("syntax has no name")
)

// File is the YAML form of a definition.
//
//	name: go
//	file-types: [go]
//	contexts:
//	  main:
//	    rules:
//	      - match: '/\*'
//	        scope: comment.block
//	        push: block-comment
//	  block-comment:
//	    scope: comment.block
//	    rules:
//	      - match: '\*/'
//	        pop: true
type File struct {
	Name      string                 `yaml:"name"`
	FileTypes []string               `yaml:"file-types"`
	Contexts  map[string]ContextFile `yaml:"contexts"`
}

type ContextFile struct {
	// Scope colours text in the context that no rule matches.
	Scope string `yaml:"scope"`
	// PopAtEOL drops the context at the end of a line, for constructs that
	// cannot span lines.
	PopAtEOL bool       `yaml:"pop-at-eol"`
	Rules    []RuleFile `yaml:"rules"`
}

type RuleFile struct {
	Match string `yaml:"match"`
	Scope string `yaml:"scope"`
	Push  string `yaml:"push"`
	Pop   bool   `yaml:"pop"`
}

type context struct {
	name     string
	scope    string
	popAtEOL bool
	rules    []rule
}

type rule struct {
	re    *regexp.Regexp
	scope string
	push  *context
	pop   bool
}

// Syntax is a compiled definition. It is a highlight.Tokenizer and holds no
// per-document state, so one Syntax serves any number of buffers.
type Syntax struct {
	name      string
	fileTypes []string
	main      *context
}

// Parse decodes and compiles a YAML definition.
func Parse(data []byte) (*Syntax, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return Compile(f)
}

// Compile checks a definition and compiles its patterns.
func Compile(f File) (*Syntax, error) {
	if f.Name == "" {
		return nil, ErrNoName
	}
	if _, ok := f.Contexts["main"]; !ok {
		return nil, fmt.Errorf("%s: %w", f.Name, ErrNoMain)
	}
	contexts := make(map[string]*context, len(f.Contexts))
	for name, cf := range f.Contexts {
		contexts[name] = &context{name: name, scope: cf.Scope, popAtEOL: cf.PopAtEOL}
	}
	// sorted for stable error messages
	names := make([]string, 0, len(f.Contexts))
	for name := range f.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ctx := contexts[name]
		for i, rf := range f.Contexts[name].Rules {
			re, err := regexp.Compile(rf.Match)
			if err != nil {
				return nil, fmt.Errorf("%s: context %s rule %d: %w", f.Name, name, i+1, err)
			}
			r := rule{re: re, scope: rf.Scope, pop: rf.Pop}
			if rf.Push != "" {
				target, ok := contexts[rf.Push]
				if !ok {
					return nil, fmt.Errorf("%s: context %s rule %d: %w %q", f.Name, name, i+1, ErrUnknownContext, rf.Push)
				}
				r.push = target
			}
			ctx.rules = append(ctx.rules, r)
		}
	}
	return &Syntax{name: f.Name, fileTypes: f.FileTypes, main: contexts["main"]}, nil
}

func (s *Syntax) Name() string { return s.name }

// stack is the tokenizer state. It is never modified once handed out.
type stack []*context

func (st stack) Equal(other highlight.State) bool {
	o, ok := other.(stack)
	if !ok || len(o) != len(st) {
		return false
	}
	for i := range st {
		if st[i] != o[i] {
			return false
		}
	}
	return true
}

func (st stack) top() *context { return st[len(st)-1] }

func (st stack) push(ctx *context) stack {
	return append(st[:len(st):len(st)], ctx)
}

func (st stack) pop() stack {
	if len(st) == 1 {
		return st
	}
	return st[:len(st)-1]
}

func (s *Syntax) Begin([]string) highlight.State {
	return stack{s.main}
}

// Line scans a line left to right. At each position the rule whose match
// starts earliest wins; ties go to the rule listed first. Empty matches
// are ignored.
func (s *Syntax) Line(state highlight.State, line string) ([]highlight.Span, highlight.State) {
	st, ok := state.(stack)
	if !ok || len(st) == 0 {
		st = stack{s.main}
	}
	var spans []highlight.Span
	emit := func(from, to int, scope string) {
		if from >= to || scope == "" {
			return
		}
		start := utf8.RuneCountInString(line[:from])
		end := start + utf8.RuneCountInString(line[from:to])
		if n := len(spans); n > 0 && spans[n-1].End == start && spans[n-1].Scope == scope {
			spans[n-1].End = end
			return
		}
		spans = append(spans, highlight.Span{Start: start, End: end, Scope: scope})
	}

	pos := 0
	for pos < len(line) {
		ctx := st.top()
		best, bestLoc := -1, []int(nil)
		for i, r := range ctx.rules {
			loc := r.re.FindStringIndex(line[pos:])
			if loc == nil || loc[0] == loc[1] {
				continue
			}
			if bestLoc == nil || loc[0] < bestLoc[0] {
				best, bestLoc = i, loc
			}
		}
		if bestLoc == nil {
			break
		}
		start, end := pos+bestLoc[0], pos+bestLoc[1]
		r := ctx.rules[best]
		emit(pos, start, ctx.scope)
		scope := r.scope
		if scope == "" {
			scope = ctx.scope
		}
		emit(start, end, scope)
		if r.pop {
			st = st.pop()
		}
		if r.push != nil {
			st = st.push(r.push)
		}
		pos = end
	}
	emit(pos, len(line), st.top().scope)
	for len(st) > 1 && st.top().popAtEOL {
		st = st.pop()
	}
	return spans, st
}
