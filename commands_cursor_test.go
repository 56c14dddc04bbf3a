package editorcore

import "testing"

func TestDoMoveWordRight(t *testing.T) {
	e := newExecutor("foo bar baz")
	e.cursor = Position{Line: 0, Column: 0}
	if _, err := e.Execute(Command{Cursor: CommandMoveWordRight{}}); err != nil {
		t.Fatal(err)
	}
	if e.CursorPosition() != (Position{Line: 0, Column: 3}) {
		t.Errorf("after one MoveWordRight: got %+v, want column 3", e.CursorPosition())
	}
	if _, err := e.Execute(Command{Cursor: CommandMoveWordRight{}}); err != nil {
		t.Fatal(err)
	}
	if e.CursorPosition() != (Position{Line: 0, Column: 7}) {
		t.Errorf("after two MoveWordRight: got %+v, want column 7", e.CursorPosition())
	}
}

func TestDoMoveWordLeft(t *testing.T) {
	e := newExecutor("foo bar baz")
	e.cursor = Position{Line: 0, Column: 11}
	if _, err := e.Execute(Command{Cursor: CommandMoveWordLeft{}}); err != nil {
		t.Fatal(err)
	}
	if e.CursorPosition() != (Position{Line: 0, Column: 8}) {
		t.Errorf("after one MoveWordLeft: got %+v, want column 8", e.CursorPosition())
	}
	if _, err := e.Execute(Command{Cursor: CommandMoveWordLeft{}}); err != nil {
		t.Fatal(err)
	}
	if e.CursorPosition() != (Position{Line: 0, Column: 4}) {
		t.Errorf("after two MoveWordLeft: got %+v, want column 4", e.CursorPosition())
	}
}

func TestDoMoveWordRightClearsSelection(t *testing.T) {
	e := newExecutor("foo bar")
	e.cursor = Position{Line: 0, Column: 0}
	sel := normalizeSelection(Position{Line: 0, Column: 0}, Position{Line: 0, Column: 3})
	e.selection = &sel
	if _, err := e.Execute(Command{Cursor: CommandMoveWordRight{}}); err != nil {
		t.Fatal(err)
	}
	if e.Selection() != nil {
		t.Error("expected selection cleared after MoveWordRight")
	}
}

func TestDoMoveWordRightAtEndOfTextIsNoop(t *testing.T) {
	e := newExecutor("foo")
	e.cursor = Position{Line: 0, Column: 3}
	res, err := e.Execute(Command{Cursor: CommandMoveWordRight{}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Position != (Position{Line: 0, Column: 3}) {
		t.Errorf("expected cursor to stay at end, got %+v", res.Position)
	}
}

func TestDoSetRectSelectionSpansLines(t *testing.T) {
	e := newExecutor("aaaa\nbbbb\ncccc\n")
	res, err := e.Execute(Command{Cursor: CommandSetRectSelection{
		Anchor: Position{Line: 0, Column: 1},
		Active: Position{Line: 2, Column: 3},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != ResultSuccess {
		t.Errorf("expected Success, got %v", res.Kind)
	}
	if len(e.secondary)+1 != 3 {
		t.Fatalf("expected 3 total selections (1 primary + 2 secondary), got %d", len(e.secondary)+1)
	}
	if e.selection == nil {
		t.Fatal("expected a primary selection")
	}
}

func TestDoSetRectSelectionRejectsOutOfRangeLine(t *testing.T) {
	e := newExecutor("aaaa\nbbbb\n")
	if _, err := e.Execute(Command{Cursor: CommandSetRectSelection{
		Anchor: Position{Line: 0, Column: 0},
		Active: Position{Line: 5, Column: 0},
	}}); err == nil {
		t.Fatal("expected InvalidPositionError for out-of-range active line")
	}
}

func TestCommandExtendSelectionFromCaret(t *testing.T) {
	e := newExecutor("hello world")
	e.cursor = Position{Line: 0, Column: 5}
	if _, err := e.Execute(Command{Cursor: CommandExtendSelection{To: Position{Line: 0, Column: 11}}}); err != nil {
		t.Fatal(err)
	}
	sel := e.Selection()
	if sel == nil {
		t.Fatal("expected a selection after ExtendSelection")
	}
	if sel.Start.Column != 5 || sel.End.Column != 11 {
		t.Errorf("expected selection [5,11), got [%d,%d)", sel.Start.Column, sel.End.Column)
	}
}

func TestCommandExtendSelectionFromExistingBackwardSelection(t *testing.T) {
	e := newExecutor("hello world")
	sel := Selection{Start: Position{Line: 0, Column: 2}, End: Position{Line: 0, Column: 8}, Direction: SelectionBackward}
	e.selection = &sel
	if _, err := e.Execute(Command{Cursor: CommandExtendSelection{To: Position{Line: 0, Column: 0}}}); err != nil {
		t.Fatal(err)
	}
	got := e.Selection()
	if got == nil {
		t.Fatal("expected a selection")
	}
	if got.Start.Column != 0 || got.End.Column != 8 {
		t.Errorf("expected selection anchored at 8 extending to 0, got [%d,%d)", got.Start.Column, got.End.Column)
	}
}

func TestCommandSetSelectionsRejectsEmpty(t *testing.T) {
	e := newExecutor("hello")
	if _, err := e.Execute(Command{Cursor: CommandSetSelections{Selections: nil, PrimaryIndex: 0}}); err == nil {
		t.Fatal("expected an error for empty selections")
	}
}

func TestCommandSetSelectionsRejectsInvalidPrimaryIndex(t *testing.T) {
	e := newExecutor("hello")
	sels := []Selection{NewCaret(Position{Line: 0, Column: 0})}
	if _, err := e.Execute(Command{Cursor: CommandSetSelections{Selections: sels, PrimaryIndex: 3}}); err == nil {
		t.Fatal("expected an error for out-of-range primary index")
	}
}

func TestCommandSetSelectionsNormalizesOverlaps(t *testing.T) {
	e := newExecutor("hello world")
	sels := []Selection{
		normalizeSelection(Position{Line: 0, Column: 0}, Position{Line: 0, Column: 5}),
		normalizeSelection(Position{Line: 0, Column: 3}, Position{Line: 0, Column: 8}),
	}
	if _, err := e.Execute(Command{Cursor: CommandSetSelections{Selections: sels, PrimaryIndex: 1}}); err != nil {
		t.Fatal(err)
	}
	if len(e.secondary) != 0 {
		t.Errorf("expected overlapping selections merged into one, got %d secondary", len(e.secondary))
	}
	if e.selection == nil || e.selection.End.Column != 8 {
		t.Errorf("expected merged selection ending at column 8, got %+v", e.selection)
	}
}

func TestCommandClearSecondarySelections(t *testing.T) {
	e := newExecutor("aa\nbb\n")
	e.secondary = []Selection{NewCaret(Position{Line: 1, Column: 0})}
	if _, err := e.Execute(Command{Cursor: CommandClearSecondarySelections{}}); err != nil {
		t.Fatal(err)
	}
	if len(e.secondary) != 0 {
		t.Error("expected secondary selections cleared")
	}
}
