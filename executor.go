package editorcore

import "sort"

const defaultMaxUndo = 1000

// CommandExecutor owns every mutable subsystem of the kernel and is the
// sole place text actually changes. It consumes one Command per call and
// returns a CommandResult or a CommandError; a returned error leaves every
// owned structure exactly as it was before the call.
type CommandExecutor struct {
	pieceTable *PieceTable
	lineIndex  *LineIndex
	layout     *LayoutEngine
	styles     *StyleLayers
	folding    *FoldingManager
	undo       *UndoManager

	cursor         Position
	selection      *Selection
	secondary      []Selection
	tabKeyBehavior TabKeyBehavior

	lastDelta *TextDelta
}

// NewCommandExecutor builds an executor over the given initial text and
// viewport width.
func NewCommandExecutor(text string, viewportWidth int) *CommandExecutor {
	pt := NewPieceTable(text)
	li := NewLineIndex(text)
	layout := NewLayoutEngine(viewportWidth)
	layout.SetLineTexts(allLineTexts(li))

	return &CommandExecutor{
		pieceTable: pt,
		lineIndex:  li,
		layout:     layout,
		styles:     NewStyleLayers(),
		folding:    NewFoldingManager(),
		undo:       NewUndoManager(defaultMaxUndo),
		cursor:     Position{},
	}
}

func allLineTexts(li *LineIndex) []string {
	lines := make([]string, li.LineCount())
	for i := range lines {
		text, _ := li.GetLineText(i)
		lines[i] = text
	}
	return lines
}

// GetText returns the full current document text.
func (c *CommandExecutor) GetText() string { return c.lineIndex.GetText() }

// CharCount returns the document's character count.
func (c *CommandExecutor) CharCount() int { return c.lineIndex.CharCount() }

// LineCount returns the document's logical line count.
func (c *CommandExecutor) LineCount() int { return c.lineIndex.LineCount() }

// ViewportWidth returns the layout engine's current viewport width.
func (c *CommandExecutor) ViewportWidth() int { return c.layout.ViewportWidth() }

// VisualLineCount returns the number of visual rows across visible logical lines.
func (c *CommandExecutor) VisualLineCount() int { return VisualLineCount(c.layout, c.folding) }

// CursorPosition returns the primary caret position.
func (c *CommandExecutor) CursorPosition() Position { return c.cursor }

// Selection returns the primary selection, or nil when the primary is a
// zero-width caret with no explicit selection.
func (c *CommandExecutor) Selection() *Selection { return c.selection }

// SecondarySelections returns the non-primary carets/selections.
func (c *CommandExecutor) SecondarySelections() []Selection { return c.secondary }

// CanUndo / CanRedo / UndoDepth / RedoDepth delegate to the undo manager.
func (c *CommandExecutor) CanUndo() bool  { return c.undo.CanUndo() }
func (c *CommandExecutor) CanRedo() bool  { return c.undo.CanRedo() }
func (c *CommandExecutor) UndoDepth() int { return c.undo.UndoDepth() }
func (c *CommandExecutor) RedoDepth() int { return c.undo.RedoDepth() }

// IsClean reports whether the document is at its last-marked-clean state.
func (c *CommandExecutor) IsClean() bool { return c.undo.IsClean() }

// MarkClean records the current undo position as the saved point.
func (c *CommandExecutor) MarkClean() { c.undo.MarkClean() }

// LastTextDelta returns the delta produced by the most recent edit, if any.
func (c *CommandExecutor) LastTextDelta() *TextDelta { return c.lastDelta }

// TakeLastTextDelta returns and clears the delta produced by the most
// recent edit.
func (c *CommandExecutor) TakeLastTextDelta() *TextDelta {
	d := c.lastDelta
	c.lastDelta = nil
	return d
}

// Execute dispatches command to the appropriate sub-handler.
func (c *CommandExecutor) Execute(cmd Command) (CommandResult, CommandError) {
	switch {
	case cmd.Edit != nil:
		return c.executeEdit(cmd.Edit)
	case cmd.Cursor != nil:
		res, err := c.executeCursor(cmd.Cursor)
		if err == nil {
			c.undo.EndGroup()
		}
		return res, err
	case cmd.View != nil:
		res, err := c.executeView(cmd.View)
		if err == nil {
			c.undo.EndGroup()
		}
		return res, err
	case cmd.Style != nil:
		res, err := c.executeStyle(cmd.Style)
		if err == nil {
			c.undo.EndGroup()
		}
		return res, err
	default:
		return CommandResult{}, newOtherError("empty command")
	}
}

// selectionSet returns the normalized (primary + secondary) selection set
// and the index of the primary within it.
func (c *CommandExecutor) selectionSet() ([]Selection, int) {
	primary := c.primarySelection()
	all := append([]Selection{primary}, c.secondary...)
	return normalizeSelections(c.lineIndex, all, 0)
}

func (c *CommandExecutor) primarySelection() Selection {
	if c.selection != nil {
		return *c.selection
	}
	return NewCaret(c.cursor)
}

// applyEdits applies a batch of single-point edits in descending
// start-before order, keeping the piece table, interval trees, line index,
// and layout consistent; it rebuilds the line index once and either
// rebuilds the full layout (if any edit's inserted or deleted text contains
// a newline) or updates only the affected lines.
func (c *CommandExecutor) applyEdits(edits []TextEdit) {
	sorted := append([]TextEdit{}, edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartBefore > sorted[j].StartBefore })

	lineCountBefore := c.lineIndex.LineCount()
	editLine := 0
	if len(sorted) > 0 {
		editLine = c.lineIndex.CharOffsetToPosition(sorted[len(sorted)-1].StartBefore).Line
	}

	crossesNewline := false
	for _, e := range sorted {
		delLen := e.deletedLen()
		if delLen > 0 {
			c.pieceTable.Delete(e.StartBefore, delLen)
			c.styles.UpdateForDeletion(e.StartBefore, e.StartBefore+delLen)
		}
		if e.InsertedText != "" {
			c.pieceTable.Insert(e.StartBefore, e.InsertedText)
			c.styles.UpdateForInsertion(e.StartBefore, countRunes(e.InsertedText))
		}
		if containsNewline(e.DeletedText) || containsNewline(e.InsertedText) {
			crossesNewline = true
		}
	}

	newText := c.pieceTable.GetText()
	c.lineIndex.Rebuild(newText)
	lineDelta := c.lineIndex.LineCount() - lineCountBefore
	if lineDelta != 0 {
		c.folding.ApplyLineDelta(editLine, lineDelta)
	}
	c.folding.ClampToLineCount(c.lineIndex.LineCount())

	if crossesNewline {
		c.layout.SetLineTexts(allLineTexts(c.lineIndex))
	} else {
		for _, e := range sorted {
			line := c.lineIndex.CharOffsetToPosition(e.StartAfter).Line
			text, ok := c.lineIndex.GetLineText(line)
			if ok {
				c.layout.UpdateLine(line, text)
			}
		}
	}
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}

// clampLineColumn validates (line, column) against the current document,
// rejecting a line outside [0, line_count) with InvalidPositionError.
func (c *CommandExecutor) clampLineColumn(line, column int) (Position, CommandError) {
	if line < 0 || line >= c.lineIndex.LineCount() {
		return Position{}, InvalidPositionError{Line: line, Column: column}
	}
	if column < 0 {
		column = 0
	}
	lineLen := countRunes(mustLineText(c.lineIndex, line))
	if column > lineLen {
		column = lineLen
	}
	return Position{Line: line, Column: column}, nil
}

func mustLineText(li *LineIndex, line int) string {
	text, _ := li.GetLineText(line)
	return text
}
