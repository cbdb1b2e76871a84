package app

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/kedit/internal/editor"
)

// keyEvent translates a terminal key press to an editor event. Unnamed keys
// report false.
func keyEvent(ev *tcell.EventKey) (editor.Event, bool) {
	mods := ev.Modifiers()
	if ev.Key() == tcell.KeyRune && mods&(tcell.ModAlt|tcell.ModMeta|tcell.ModCtrl) == 0 {
		return editor.RuneEvent(ev.Rune()), true
	}
	name := keyString(ev)
	if name == "" {
		return editor.Event{}, false
	}
	return editor.KeyEvent(name), true
}

func keyString(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	if mods&tcell.ModAlt != 0 {
		switch ev.Key() {
		case tcell.KeyRune:
			return "alt+" + runeName(ev.Rune())
		case tcell.KeyUp:
			return "alt+up"
		case tcell.KeyDown:
			return "alt+down"
		case tcell.KeyLeft:
			return "alt+left"
		case tcell.KeyRight:
			return "alt+right"
		case tcell.KeyEnter:
			return "alt+enter"
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return "alt+backspace"
		}
	}
	if mods&tcell.ModCtrl != 0 {
		switch ev.Key() {
		case tcell.KeyHome:
			return "ctrl+home"
		case tcell.KeyEnd:
			return "ctrl+end"
		case tcell.KeyRune:
			return "ctrl+" + strings.ToLower(runeName(ev.Rune()))
		}
	}
	if mods&tcell.ModMeta != 0 && ev.Key() == tcell.KeyRune {
		return "cmd+" + strings.ToLower(runeName(ev.Rune()))
	}
	if ev.Key() == tcell.KeyRune {
		return runeName(ev.Rune())
	}
	// KeyTab, KeyEnter and KeyBackspace share codes with ctrl+i, ctrl+m and
	// ctrl+h, so they are named before ctrlKeyName sees them.
	switch ev.Key() {
	case tcell.KeyTab:
		if mods&tcell.ModShift != 0 {
			return "shift+tab"
		}
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		return name
	}
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyDelete:
		return "del"
	case tcell.KeyEscape:
		return "esc"
	}
	return ""
}

func runeName(r rune) string {
	if r == ' ' {
		return "space"
	}
	return string(r)
}

func ctrlKeyName(key tcell.Key) string {
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	return ""
}

// wheelStep is the number of lines one wheel notch scrolls.
const wheelStep = 3

func scrollEvent(ev *tcell.EventMouse) (editor.Event, bool) {
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return editor.ScrollEvent(-wheelStep), true
	case ev.Buttons()&tcell.WheelDown != 0:
		return editor.ScrollEvent(wheelStep), true
	}
	return editor.Event{}, false
}
