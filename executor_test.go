package editorcore

import "testing"

func newExecutor(text string) *CommandExecutor {
	return NewCommandExecutor(text, 80)
}

func TestExecutorInsertAndGetText(t *testing.T) {
	e := newExecutor("hello")
	if _, err := e.Execute(Command{Edit: CommandInsert{Offset: 5, Text: " world"}}); err != nil {
		t.Fatal(err)
	}
	if got := e.GetText(); got != "hello world" {
		t.Errorf("GetText() = %q, want %q", got, "hello world")
	}
}

func TestExecutorInsertEmptyTextIsError(t *testing.T) {
	e := newExecutor("hello")
	if _, err := e.Execute(Command{Edit: CommandInsert{Offset: 0, Text: ""}}); err == nil {
		t.Fatal("expected EmptyTextError")
	} else if _, ok := err.(EmptyTextError); !ok {
		t.Errorf("expected EmptyTextError, got %T", err)
	}
}

func TestExecutorDeleteZeroLengthIsNoop(t *testing.T) {
	e := newExecutor("hello")
	res, err := e.Execute(Command{Edit: CommandDelete{Start: 2, Length: 0}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != ResultSuccess {
		t.Errorf("expected Success, got %v", res.Kind)
	}
	if e.GetText() != "hello" {
		t.Errorf("expected unchanged text, got %q", e.GetText())
	}
}

func TestExecutorInvalidRangeError(t *testing.T) {
	e := newExecutor("hello")
	if _, err := e.Execute(Command{Edit: CommandDelete{Start: 3, Length: 10}}); err == nil {
		t.Fatal("expected InvalidRangeError")
	}
}

func TestExecutorInsertTextMultiCaret(t *testing.T) {
	e := newExecutor("aa\nbb\n")
	e.cursor = Position{Line: 0, Column: 2}
	e.secondary = []Selection{NewCaret(Position{Line: 1, Column: 2})}
	if _, err := e.Execute(Command{Edit: CommandInsertText{Text: "!"}}); err != nil {
		t.Fatal(err)
	}
	if e.GetText() != "aa!\nbb!\n" {
		t.Errorf("GetText() = %q, want %q", e.GetText(), "aa!\nbb!\n")
	}
}

func TestExecutorBackspaceAtDocumentStartIsNoop(t *testing.T) {
	e := newExecutor("hello")
	e.cursor = Position{Line: 0, Column: 0}
	res, err := e.Execute(Command{Edit: CommandBackspace{}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != ResultSuccess {
		t.Errorf("expected Success, got %v", res.Kind)
	}
	if e.GetText() != "hello" {
		t.Errorf("expected unchanged text, got %q", e.GetText())
	}
}

func TestExecutorUndoRedoRoundTrip(t *testing.T) {
	e := newExecutor("hello")
	if _, err := e.Execute(Command{Edit: CommandInsert{Offset: 5, Text: " world"}}); err != nil {
		t.Fatal(err)
	}
	e.undo.EndGroup()
	if _, err := e.Execute(Command{Edit: CommandUndo{}}); err != nil {
		t.Fatal(err)
	}
	if e.GetText() != "hello" {
		t.Errorf("after undo: GetText() = %q, want %q", e.GetText(), "hello")
	}
	if _, err := e.Execute(Command{Edit: CommandRedo{}}); err != nil {
		t.Fatal(err)
	}
	if e.GetText() != "hello world" {
		t.Errorf("after redo: GetText() = %q, want %q", e.GetText(), "hello world")
	}
}

func TestExecutorMoveToClampsAndRejectsInvalidLine(t *testing.T) {
	e := newExecutor("hello\nworld")
	if _, err := e.Execute(Command{Cursor: CommandMoveTo{Line: 0, Column: 100}}); err != nil {
		t.Fatal(err)
	}
	if e.CursorPosition() != (Position{Line: 0, Column: 5}) {
		t.Errorf("expected column clamped to 5, got %+v", e.CursorPosition())
	}
	if _, err := e.Execute(Command{Cursor: CommandMoveTo{Line: 5, Column: 0}}); err == nil {
		t.Fatal("expected InvalidPositionError for out-of-range line")
	}
}

func TestExecutorSetAndClearSelection(t *testing.T) {
	e := newExecutor("hello world")
	if _, err := e.Execute(Command{Cursor: CommandSetSelection{
		Start: Position{Line: 0, Column: 0},
		End:   Position{Line: 0, Column: 5},
	}}); err != nil {
		t.Fatal(err)
	}
	if e.Selection() == nil || e.Selection().IsEmpty() {
		t.Fatal("expected a non-empty primary selection")
	}
	if _, err := e.Execute(Command{Cursor: CommandClearSelection{}}); err != nil {
		t.Fatal(err)
	}
	if e.Selection() != nil {
		t.Error("expected selection cleared")
	}
}

func TestExecutorFindNextDoesNotWrap(t *testing.T) {
	e := newExecutor("foo bar foo")
	e.cursor = Position{Line: 0, Column: 9}
	res, err := e.Execute(Command{Edit: CommandFindNext{Query: "foo", Options: SearchOptions{CaseSensitive: true}}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != ResultSearchNotFound {
		t.Errorf("expected SearchNotFound, got %v", res.Kind)
	}
}

func TestExecutorReplaceAll(t *testing.T) {
	e := newExecutor("cat cat cat")
	res, err := e.Execute(Command{Edit: CommandReplaceAll{Query: "cat", Replacement: "dog", Options: SearchOptions{CaseSensitive: true}}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Replaced != 3 {
		t.Errorf("Replaced = %d, want 3", res.Replaced)
	}
	if e.GetText() != "dog dog dog" {
		t.Errorf("GetText() = %q, want %q", e.GetText(), "dog dog dog")
	}
}

func TestExecutorFoldAndUnfold(t *testing.T) {
	e := newExecutor("a\nb\nc\nd\n")
	if _, err := e.Execute(Command{Style: CommandFold{StartLine: 0, EndLine: 2}}); err != nil {
		t.Fatal(err)
	}
	if region, ok := e.folding.GetRegionForLine(1); !ok || !region.IsCollapsed {
		t.Fatal("expected a collapsed region covering line 1")
	}
	if _, err := e.Execute(Command{Style: CommandUnfold{StartLine: 0}}); err != nil {
		t.Fatal(err)
	}
	if region, ok := e.folding.GetRegionForLine(1); ok && region.IsCollapsed {
		t.Error("expected region expanded after Unfold")
	}
}

func TestExecutorSetViewportWidthRejectsZero(t *testing.T) {
	e := newExecutor("hello")
	if _, err := e.Execute(Command{View: CommandSetViewportWidth{Width: 0}}); err == nil {
		t.Fatal("expected an error for zero viewport width")
	}
}

func TestExecutorGetViewportReturnsGrid(t *testing.T) {
	e := newExecutor("hello\nworld\n")
	res, err := e.Execute(Command{View: CommandGetViewport{StartRow: 0, Count: 10}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != ResultViewport {
		t.Fatalf("expected Viewport result, got %v", res.Kind)
	}
	if res.Viewport.ActualLineCount() == 0 {
		t.Error("expected a non-empty viewport")
	}
}
