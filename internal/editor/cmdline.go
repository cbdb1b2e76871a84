package editor

// commandLine is the single-line input used for search patterns.
type commandLine struct {
	text []rune
	pos  int
}

func (c *commandLine) reset() {
	c.text = c.text[:0]
	c.pos = 0
}

func (c *commandLine) String() string {
	return string(c.text)
}

func (c *commandLine) insert(r rune) {
	c.text = append(c.text[:c.pos], append([]rune{r}, c.text[c.pos:]...)...)
	c.pos++
}

func (c *commandLine) backspace() {
	if c.pos == 0 {
		return
	}
	c.text = append(c.text[:c.pos-1], c.text[c.pos:]...)
	c.pos--
}

// deleteWord removes the word before the cursor using the same break set
// as buffer word motions.
func (c *commandLine) deleteWord() {
	if c.pos == 0 {
		return
	}
	i := c.pos - 1
	for i > 0 && isBreak(c.text[i-1]) {
		i--
	}
	for i > 0 && !isBreak(c.text[i-1]) {
		i--
	}
	c.text = append(c.text[:i], c.text[c.pos:]...)
	c.pos = i
}

func (c *commandLine) left() {
	if c.pos > 0 {
		c.pos--
	}
}

func (c *commandLine) right() {
	if c.pos < len(c.text) {
		c.pos++
	}
}

func (c *commandLine) home() { c.pos = 0 }

func (c *commandLine) end() { c.pos = len(c.text) }

func (c *commandLine) killLine() {
	c.text = c.text[:c.pos]
}
