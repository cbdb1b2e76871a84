package editor

import "errors"

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Snapshot is a full copy of the editable state.
type Snapshot struct {
	Lines    []string
	Cursor   Cursor
	Modified bool
}

func (s Snapshot) equal(o Snapshot) bool {
	if s.Cursor != o.Cursor || s.Modified != o.Modified || len(s.Lines) != len(o.Lines) {
		return false
	}
	for i := range s.Lines {
		if s.Lines[i] != o.Lines[i] {
			return false
		}
	}
	return true
}

// History holds the undo and redo stacks. Pushing a snapshot equal to the
// top of its stack is a no-op. A limit of 0 keeps every entry.
type History struct {
	undo  []Snapshot
	redo  []Snapshot
	limit int
}

func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

func (h *History) Push(s Snapshot) {
	h.undo = pushDedup(h.undo, s, h.limit)
}

func (h *History) ClearRedo() {
	h.redo = nil
}

// Undo pops the newest snapshot and parks current on the redo stack.
func (h *History) Undo(current Snapshot) (Snapshot, error) {
	if len(h.undo) == 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = pushDedup(h.redo, current, h.limit)
	return prev, nil
}

// Redo pops the newest redo snapshot and pushes current back onto undo.
func (h *History) Redo(current Snapshot) (Snapshot, error) {
	if len(h.redo) == 0 {
		return Snapshot{}, ErrNothingToRedo
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = pushDedup(h.undo, current, h.limit)
	return next, nil
}

// MarkModified flags every stacked snapshot as modified. Called after a
// save so that stepping back past it reports unsaved changes.
func (h *History) MarkModified() {
	for i := range h.undo {
		h.undo[i].Modified = true
	}
	for i := range h.redo {
		h.redo[i].Modified = true
	}
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

func (h *History) UndoLen() int { return len(h.undo) }

func (h *History) RedoLen() int { return len(h.redo) }

func pushDedup(stack []Snapshot, s Snapshot, limit int) []Snapshot {
	if n := len(stack); n > 0 && stack[n-1].equal(s) {
		return stack
	}
	stack = append(stack, s)
	if limit > 0 && len(stack) > limit {
		stack = append(stack[:0], stack[len(stack)-limit:]...)
	}
	return stack
}
