package editorcore

import "testing"

func caretSnapshot(line, col int) selectionSetSnapshot {
	return selectionSetSnapshot{selections: []Selection{NewCaret(Position{Line: line, Column: col})}}
}

func TestUndoManagerPushAssignsNewGroupWhenNoneOpen(t *testing.T) {
	m := NewUndoManager(100)
	edits := []TextEdit{{StartBefore: 0, StartAfter: 0, InsertedText: "a"}}
	g1 := m.Push(edits, caretSnapshot(0, 0), caretSnapshot(0, 1))
	if g1 != 0 {
		t.Errorf("expected first group id 0, got %d", g1)
	}
	if m.UndoDepth() != 1 {
		t.Errorf("UndoDepth() = %d, want 1", m.UndoDepth())
	}
}

func TestUndoManagerCoalescesConsecutivePureInserts(t *testing.T) {
	m := NewUndoManager(100)
	g1 := m.Push([]TextEdit{{InsertedText: "a"}}, caretSnapshot(0, 0), caretSnapshot(0, 1))
	g2 := m.Push([]TextEdit{{InsertedText: "b"}}, caretSnapshot(0, 1), caretSnapshot(0, 2))
	if g1 != g2 {
		t.Errorf("expected consecutive pure inserts to share a group, got %d and %d", g1, g2)
	}
}

func TestUndoManagerClosesGroupOnDelete(t *testing.T) {
	m := NewUndoManager(100)
	g1 := m.Push([]TextEdit{{InsertedText: "a"}}, caretSnapshot(0, 0), caretSnapshot(0, 1))
	g2 := m.Push([]TextEdit{{DeletedText: "a"}}, caretSnapshot(0, 1), caretSnapshot(0, 0))
	if g1 == g2 {
		t.Error("expected a delete to close the open group")
	}

	g3 := m.Push([]TextEdit{{InsertedText: "c"}}, caretSnapshot(0, 0), caretSnapshot(0, 1))
	if g3 == g2 {
		t.Error("expected a fresh group to start after the non-coalescible edit")
	}
}

func TestUndoManagerClosesGroupOnNewline(t *testing.T) {
	m := NewUndoManager(100)
	g1 := m.Push([]TextEdit{{InsertedText: "a"}}, caretSnapshot(0, 0), caretSnapshot(0, 1))
	g2 := m.Push([]TextEdit{{InsertedText: "\n"}}, caretSnapshot(0, 1), caretSnapshot(1, 0))
	if g1 == g2 {
		t.Error("expected a newline insert to not coalesce with the prior group")
	}
}

func TestUndoManagerEndGroupForcesFreshGroupNextPush(t *testing.T) {
	m := NewUndoManager(100)
	g1 := m.Push([]TextEdit{{InsertedText: "a"}}, caretSnapshot(0, 0), caretSnapshot(0, 1))
	m.EndGroup()
	g2 := m.Push([]TextEdit{{InsertedText: "b"}}, caretSnapshot(0, 1), caretSnapshot(0, 2))
	if g1 == g2 {
		t.Error("expected EndGroup to prevent coalescing with the next push")
	}
}

func TestUndoManagerMarkCleanAndIsClean(t *testing.T) {
	m := NewUndoManager(100)
	if !m.IsClean() {
		t.Fatal("expected a fresh manager to be clean")
	}
	m.Push([]TextEdit{{InsertedText: "a"}}, caretSnapshot(0, 0), caretSnapshot(0, 1))
	if m.IsClean() {
		t.Fatal("expected manager to be dirty after a push")
	}
	m.MarkClean()
	if !m.IsClean() {
		t.Fatal("expected manager to be clean after MarkClean")
	}
}

func TestUndoManagerPushClearsRedoAndLeavesCleanPoint(t *testing.T) {
	m := NewUndoManager(100)
	m.Push([]TextEdit{{InsertedText: "a"}}, caretSnapshot(0, 0), caretSnapshot(0, 1))
	m.MarkClean()
	m.EndGroup()
	m.Push([]TextEdit{{DeletedText: "", InsertedText: "b"}}, caretSnapshot(0, 1), caretSnapshot(0, 2))
	steps := m.popUndoGroup()
	if len(steps) != 1 {
		t.Fatalf("expected 1 step popped, got %d", len(steps))
	}
	m.redoStack = append(m.redoStack, steps...)

	if !m.IsClean() {
		t.Fatal("expected manager to be clean with the edit undone")
	}

	m.Push([]TextEdit{{InsertedText: "c"}}, caretSnapshot(0, 1), caretSnapshot(0, 2))
	if m.IsClean() {
		t.Error("expected manager dirty after a new edit past the clean point")
	}
	if len(m.redoStack) != 0 {
		t.Error("expected redo stack cleared by the new push")
	}
}

func TestUndoManagerBoundedHistoryDropsOldest(t *testing.T) {
	m := NewUndoManager(2)
	m.Push([]TextEdit{{DeletedText: "x", InsertedText: ""}}, caretSnapshot(0, 0), caretSnapshot(0, 0))
	m.EndGroup()
	m.Push([]TextEdit{{DeletedText: "y", InsertedText: ""}}, caretSnapshot(0, 0), caretSnapshot(0, 0))
	m.EndGroup()
	m.Push([]TextEdit{{DeletedText: "z", InsertedText: ""}}, caretSnapshot(0, 0), caretSnapshot(0, 0))

	if m.UndoDepth() != 2 {
		t.Errorf("UndoDepth() = %d, want 2 (bounded to maxUndo)", m.UndoDepth())
	}
}

func TestUndoStepIsCoalescible(t *testing.T) {
	pure := undoStep{edits: []TextEdit{{InsertedText: "a"}}}
	if !pure.isCoalescible() {
		t.Error("expected pure insert with no newline to be coalescible")
	}
	withDelete := undoStep{edits: []TextEdit{{DeletedText: "x", InsertedText: "a"}}}
	if withDelete.isCoalescible() {
		t.Error("expected an edit with deleted text to be non-coalescible")
	}
	withNewline := undoStep{edits: []TextEdit{{InsertedText: "a\nb"}}}
	if withNewline.isCoalescible() {
		t.Error("expected an edit whose inserted text has a newline to be non-coalescible")
	}
}
