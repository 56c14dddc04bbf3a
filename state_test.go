package editorcore

import "testing"

func TestStateManagerVersionBumpsOnRealChange(t *testing.T) {
	m := NewStateManager("hello", 80)
	if m.Version() != 0 {
		t.Fatalf("expected initial version 0, got %d", m.Version())
	}
	if _, err := m.Execute(Command{Edit: CommandInsert{Offset: 5, Text: "!"}}); err != nil {
		t.Fatal(err)
	}
	if m.Version() != 1 {
		t.Errorf("Version() = %d, want 1", m.Version())
	}
	if !m.IsModified() {
		t.Error("expected IsModified() after an edit")
	}
}

func TestStateManagerEndUndoGroupNeverBumpsVersion(t *testing.T) {
	m := NewStateManager("hello", 80)
	if _, err := m.Execute(Command{Edit: CommandEndUndoGroup{}}); err != nil {
		t.Fatal(err)
	}
	if m.Version() != 0 {
		t.Errorf("Version() = %d, want 0 after EndUndoGroup", m.Version())
	}
}

func TestStateManagerZeroLengthDeleteDoesNotBumpVersion(t *testing.T) {
	m := NewStateManager("hello", 80)
	if _, err := m.Execute(Command{Edit: CommandDelete{Start: 1, Length: 0}}); err != nil {
		t.Fatal(err)
	}
	if m.Version() != 0 {
		t.Errorf("Version() = %d, want 0 for a zero-length delete", m.Version())
	}
}

func TestStateManagerBackspaceAtStartIsNoVersionBump(t *testing.T) {
	m := NewStateManager("hello", 80)
	if _, err := m.Execute(Command{Cursor: CommandMoveTo{Line: 0, Column: 0}}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Execute(Command{Edit: CommandBackspace{}}); err != nil {
		t.Fatal(err)
	}
	if m.Version() != 0 {
		t.Errorf("Version() = %d, want 0 (the caret already sits at (0,0), so neither command changes state)", m.Version())
	}
}

func TestStateManagerSubscriberReceivesChange(t *testing.T) {
	m := NewStateManager("hello", 80)
	var got StateChange
	m.Subscribe(func(c StateChange) { got = c })
	if _, err := m.Execute(Command{Edit: CommandInsert{Offset: 0, Text: "x"}}); err != nil {
		t.Fatal(err)
	}
	if got.ChangeType != StateChangeDocument {
		t.Errorf("ChangeType = %v, want StateChangeDocument", got.ChangeType)
	}
	if got.NewVersion != 1 || got.OldVersion != 0 {
		t.Errorf("expected version 0 -> 1, got %d -> %d", got.OldVersion, got.NewVersion)
	}
}

func TestStateManagerMarkSavedClearsModified(t *testing.T) {
	m := NewStateManager("hello", 80)
	if _, err := m.Execute(Command{Edit: CommandInsert{Offset: 0, Text: "x"}}); err != nil {
		t.Fatal(err)
	}
	if !m.IsModified() {
		t.Fatal("expected modified after edit")
	}
	m.MarkSaved()
	if m.IsModified() {
		t.Error("expected not modified after MarkSaved")
	}
}

type fakeProcessor struct {
	edits []ProcessingEdit
}

func (f fakeProcessor) Process(state *StateManager) ([]ProcessingEdit, error) {
	return f.edits, nil
}

func TestStateManagerApplyProcessorReplacesStyleLayer(t *testing.T) {
	m := NewStateManager("hello world", 80)
	proc := fakeProcessor{edits: []ProcessingEdit{
		ReplaceStyleLayerEdit{Layer: StyleLayerSimpleSyntax, Intervals: []Interval{NewInterval(0, 5, 1)}},
	}}
	if err := m.ApplyProcessor(proc); err != nil {
		t.Fatal(err)
	}
	if m.executor.styles.Layer(StyleLayerSimpleSyntax).Len() != 1 {
		t.Error("expected one interval installed in the syntax layer")
	}
	if m.Version() != 1 {
		t.Errorf("Version() = %d, want 1", m.Version())
	}
}
