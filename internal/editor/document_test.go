package editor

import "testing"

func TestNewDocumentSplitsLines(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\n", []string{"a", ""}},
		{"a\r\nb", []string{"a", "b"}},
	}
	for _, tt := range tests {
		d := NewDocument(tt.text)
		got := d.Lines()
		if len(got) != len(tt.want) {
			t.Fatalf("NewDocument(%q) = %q, want %q", tt.text, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("NewDocument(%q) = %q, want %q", tt.text, got, tt.want)
			}
		}
	}
}

func TestDocumentLineEdits(t *testing.T) {
	d := NewDocument("b")
	d.InsertLineText(0, "a")
	d.InsertLine(2)
	if d.Content() != "a\nb\n" {
		t.Fatalf("Content = %q, want %q", d.Content(), "a\nb\n")
	}
	if n := d.DeleteLine(3); n != 2 {
		t.Fatalf("DeleteLine = %d, want 2", n)
	}
	if d.SetLine(5, "x") {
		t.Fatalf("SetLine out of range = true")
	}
	if _, ok := d.Line(0); ok {
		t.Fatalf("Line(0) ok = true")
	}
	d.DeleteLine(1)
	d.DeleteLine(1)
	if d.LineCount() != 1 || d.Content() != "" {
		t.Fatalf("document = %q, want a single empty line", d.Lines())
	}
}

func TestCharAt(t *testing.T) {
	d := NewDocument("aé")
	if r, ok := d.CharAt(Cursor{Line: 1, Col: 2}); !ok || r != 'é' {
		t.Fatalf("CharAt 1:2 = %q %v, want 'é'", r, ok)
	}
	if _, ok := d.CharAt(Cursor{Line: 1, Col: 3}); ok {
		t.Fatalf("CharAt past end ok = true")
	}
	if _, ok := d.CharAt(Cursor{Line: 1, Col: 0}); ok {
		t.Fatalf("CharAt col 0 ok = true")
	}
	if d.LineLen(1) != 2 {
		t.Fatalf("LineLen = %d, want 2", d.LineLen(1))
	}
}

func TestHistoryDedupAndLimit(t *testing.T) {
	h := NewHistory(2)
	a := Snapshot{Lines: []string{"a"}}
	b := Snapshot{Lines: []string{"b"}}
	c := Snapshot{Lines: []string{"c"}}
	h.Push(a)
	h.Push(a)
	if h.UndoLen() != 1 {
		t.Fatalf("UndoLen = %d, want 1", h.UndoLen())
	}
	h.Push(b)
	h.Push(c)
	if h.UndoLen() != 2 {
		t.Fatalf("UndoLen = %d, want 2", h.UndoLen())
	}
	got, err := h.Undo(Snapshot{Lines: []string{"d"}})
	if err != nil || got.Lines[0] != "c" {
		t.Fatalf("Undo = %v %v, want c", got.Lines, err)
	}
	got, err = h.Undo(c)
	if err != nil || got.Lines[0] != "b" {
		t.Fatalf("Undo = %v %v, want b", got.Lines, err)
	}
	if _, err := h.Undo(b); err != ErrNothingToUndo {
		t.Fatalf("Undo error = %v, want %v", err, ErrNothingToUndo)
	}
	if h.RedoLen() != 2 {
		t.Fatalf("RedoLen = %d, want 2", h.RedoLen())
	}
	h.MarkModified()
	got, err = h.Redo(b)
	if err != nil || got.Lines[0] != "c" || !got.Modified {
		t.Fatalf("Redo = %#v %v, want modified c", got, err)
	}
	h.ClearRedo()
	if _, err := h.Redo(c); err != ErrNothingToRedo {
		t.Fatalf("Redo error = %v, want %v", err, ErrNothingToRedo)
	}
}
