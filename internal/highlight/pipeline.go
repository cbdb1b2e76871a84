package highlight

// Mode selects how the pipeline reacts to document changes.
type Mode int

const (
	// ModeFull re-tokenizes the whole document on every update.
	ModeFull Mode = iota
	// ModeIncremental resumes from the first changed line and stops once
	// the tokenizer state converges with the cached one.
	ModeIncremental
)

func ParseMode(s string) Mode {
	if s == "incremental" {
		return ModeIncremental
	}
	return ModeFull
}

func (m Mode) String() string {
	if m == ModeIncremental {
		return "incremental"
	}
	return "full"
}

// Pipeline keeps the rendered form of a document in step with its lines.
// checkpoints[i] is the state at the start of line i+1, so there is one
// more checkpoint than there are lines.
type Pipeline struct {
	tok   Tokenizer
	theme Theme
	mode  Mode

	lines       []string
	checkpoints []State
	rendered    [][]Run

	// lines tokenized by the last Update, for tests and debug logging
	lastWork int
}

func NewPipeline(tok Tokenizer, theme Theme, mode Mode) *Pipeline {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Pipeline{tok: tok, theme: theme, mode: mode}
}

func (p *Pipeline) Mode() Mode { return p.mode }

func (p *Pipeline) Theme() Theme { return p.theme }

// Rendered returns the runs from the last Update, index-aligned with the
// lines passed to it.
func (p *Pipeline) Rendered() [][]Run {
	return p.rendered
}

// LastWork reports how many lines the last Update tokenized.
func (p *Pipeline) LastWork() int {
	return p.lastWork
}

func (p *Pipeline) Update(lines []string) [][]Run {
	switch {
	case p.tok == nil:
		p.plain(lines)
	case p.mode == ModeIncremental && p.checkpoints != nil:
		p.incremental(lines)
	default:
		p.full(lines)
	}
	p.lines = append(p.lines[:0:0], lines...)
	return p.rendered
}

func (p *Pipeline) plain(lines []string) {
	p.rendered = make([][]Run, len(lines))
	for i, line := range lines {
		p.rendered[i] = Plain(line, p.theme)
	}
	p.checkpoints = nil
	p.lastWork = len(lines)
}

func (p *Pipeline) full(lines []string) {
	state := p.tok.Begin(lines)
	p.rendered = make([][]Run, len(lines))
	p.checkpoints = make([]State, 0, len(lines)+1)
	p.checkpoints = append(p.checkpoints, state)
	for i, line := range lines {
		var spans []Span
		spans, state = p.tok.Line(state, line)
		p.rendered[i] = Colorize(line, spans, p.theme)
		p.checkpoints = append(p.checkpoints, state)
	}
	p.lastWork = len(lines)
}

func (p *Pipeline) incremental(lines []string) {
	begin := p.tok.Begin(lines)
	if !begin.Equal(p.checkpoints[0]) {
		p.full(lines)
		return
	}
	old := p.lines
	oldRendered := p.rendered
	oldCheckpoints := p.checkpoints

	prefix := 0
	for prefix < len(lines) && prefix < len(old) && lines[prefix] == old[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(lines)-prefix && suffix < len(old)-prefix &&
		lines[len(lines)-1-suffix] == old[len(old)-1-suffix] {
		suffix++
	}
	delta := len(old) - len(lines)

	rendered := make([][]Run, len(lines))
	copy(rendered, oldRendered[:prefix])
	checkpoints := make([]State, prefix+1, len(lines)+1)
	copy(checkpoints, oldCheckpoints[:prefix+1])

	state := checkpoints[prefix]
	work := 0
	i := prefix
	for ; i < len(lines); i++ {
		if i >= len(lines)-suffix {
			j := i + delta
			if state.Equal(oldCheckpoints[j]) {
				copy(rendered[i:], oldRendered[j:])
				checkpoints = append(checkpoints, oldCheckpoints[j+1:]...)
				break
			}
		}
		var spans []Span
		spans, state = p.tok.Line(state, lines[i])
		rendered[i] = Colorize(lines[i], spans, p.theme)
		checkpoints = append(checkpoints, state)
		work++
	}
	p.rendered = rendered
	p.checkpoints = checkpoints
	p.lastWork = work
}
