package editor

import "github.com/kobzarvs/kedit/internal/logger"

// Macro is a single recording slot. Starting a recording discards the
// previous one.
type Macro struct {
	recording bool
	replaying bool
	commands  []Command
}

func (m *Macro) Recording() bool {
	return m.recording
}

func (m *Macro) Commands() []Command {
	return m.commands
}

func (m *Macro) record(cmd Command) {
	if m.recording && !m.replaying {
		m.commands = append(m.commands, cmd)
	}
}

// toggle starts a fresh recording or stops the current one.
func (m *Macro) toggle() bool {
	m.recording = !m.recording
	if m.recording {
		m.commands = nil
	}
	return m.recording
}

// ToggleRecording starts or stops macro recording and reports whether a
// recording is now active.
func (b *Buffer) ToggleRecording() bool {
	on := b.macro.toggle()
	if on {
		logger.Debug("macro recording started", "path", b.path)
	} else {
		logger.Debug("macro recording stopped", "path", b.path, "commands", len(b.macro.commands))
	}
	return on
}

// ReplayMacro re-executes the recorded commands once against the current
// state. Commands executed during replay are not recorded again.
func (b *Buffer) ReplayMacro() {
	cmds := append([]Command(nil), b.macro.commands...)
	if len(cmds) == 0 {
		return
	}
	b.macro.replaying = true
	defer func() { b.macro.replaying = false }()
	for _, cmd := range cmds {
		b.Exec(cmd)
	}
}
