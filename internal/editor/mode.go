package editor

import (
	"unicode"

	"github.com/kobzarvs/kedit/internal/config"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	// ModeSelect is a placeholder: it can be entered and left but has no
	// behaviour of its own.
	ModeSelect
	ModeCommandLine
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeSelect:
		return "SELECT"
	case ModeCommandLine:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

type EventKind int

const (
	EventKey EventKind = iota
	EventScroll
)

// Event is an input event already translated from the terminal.
//
// Key holds the normalised key name used by keymaps: "h", "alt+h",
// "enter", "ctrl+w" and so on. Rune is set for printable characters typed
// without modifiers. Scroll is a signed line delta; positive moves down.
type Event struct {
	Kind   EventKind
	Key    string
	Rune   rune
	Scroll float64
}

// KeyEvent builds an event for a named key.
func KeyEvent(key string) Event {
	return Event{Kind: EventKey, Key: key}
}

// RuneEvent builds an event for a typed character.
func RuneEvent(r rune) Event {
	key := string(r)
	if r == ' ' {
		key = "space"
	}
	return Event{Kind: EventKey, Key: key, Rune: r}
}

func ScrollEvent(delta float64) Event {
	return Event{Kind: EventScroll, Scroll: delta}
}

// Action names. Keymaps bind key names to these.
const (
	actionMoveLeft        = "move_left"
	actionMoveRight       = "move_right"
	actionMoveUp          = "move_up"
	actionMoveDown        = "move_down"
	actionWordLeft        = "word_left"
	actionWordRight       = "word_right"
	actionLineStart       = "line_start"
	actionLineEnd         = "line_end"
	actionDeleteLine      = "delete_line"
	actionUndo            = "undo"
	actionRedo            = "redo"
	actionEnterInsert     = "enter_insert"
	actionEnterNormal     = "enter_normal"
	actionEnterSelect     = "enter_select"
	actionEnterCommand    = "enter_command"
	actionInsertLineStart = "insert_line_start"
	actionInsertLineEnd   = "insert_line_end"
	actionInsertLineBelow = "insert_line_below"
	actionSave            = "save"
	actionToggleRecord    = "toggle_record"
	actionReplayMacro     = "replay_macro"
	actionSearchForward   = "search_forward"
	actionSearchBackward  = "search_backward"
	actionToggleComment   = "toggle_comment"
	actionQuit            = "quit"

	actionBackspace  = "backspace"
	actionDeleteWord = "delete_word"
	actionNewline    = "newline"
	actionInsertTab  = "insert_tab"
	actionInsertChar = "insert_char"

	actionCancel    = "cancel"
	actionConfirm   = "confirm"
	actionClearLine = "clear_line"
	actionKillLine  = "kill_line"

	actionScroll = "scroll"
)

// step is the outcome of interpreting one event: the next mode and the
// effect to apply. An empty action means the event is ignored.
type step struct {
	next   Mode
	action string
	ch     rune
}

// modeAfter lists actions that switch mode. Anything else keeps the
// current mode.
var modeAfter = map[string]Mode{
	actionEnterInsert:     ModeInsert,
	actionInsertLineStart: ModeInsert,
	actionInsertLineEnd:   ModeInsert,
	actionEnterNormal:     ModeNormal,
	actionEnterSelect:     ModeSelect,
	actionEnterCommand:    ModeCommandLine,
	actionCancel:          ModeNormal,
	actionConfirm:         ModeNormal,
}

// interpret is the mode state machine. It has no side effects.
func interpret(mode Mode, ev Event, km config.Keymap) step {
	if ev.Kind == EventScroll {
		if mode == ModeNormal && ev.Scroll != 0 {
			return step{next: mode, action: actionScroll}
		}
		return step{next: mode}
	}

	var action string
	var ch rune
	switch mode {
	case ModeNormal:
		action = km.Normal[ev.Key]
	case ModeInsert:
		action = km.Insert[ev.Key]
		if action == "" && printable(ev.Rune) {
			action, ch = actionInsertChar, ev.Rune
		}
	case ModeCommandLine:
		action = km.Command[ev.Key]
		if action == "" && printable(ev.Rune) {
			action, ch = actionInsertChar, ev.Rune
		}
	case ModeSelect:
		if ev.Key == "esc" {
			action = actionEnterNormal
		}
	}
	if action == "" {
		return step{next: mode}
	}
	next := mode
	if m, ok := modeAfter[action]; ok {
		next = m
	}
	// mode switches are only honoured from the modes that bind them
	if mode == ModeCommandLine && next != ModeNormal {
		next = mode
	}
	return step{next: next, action: action, ch: ch}
}

func printable(r rune) bool {
	return r != 0 && (r == ' ' || unicode.IsPrint(r))
}
