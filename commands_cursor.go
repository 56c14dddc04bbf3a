package editorcore

import "github.com/rivo/uniseg"

func (c *CommandExecutor) executeCursor(cmd CursorCommand) (CommandResult, CommandError) {
	switch m := cmd.(type) {
	case CommandMoveTo:
		pos, err := c.clampLineColumn(m.Line, m.Column)
		if err != nil {
			return CommandResult{}, err
		}
		c.cursor = pos
		c.selection = nil
		c.secondary = nil
		return CommandResult{Kind: ResultPosition, Position: pos}, nil

	case CommandMoveBy:
		return c.doMoveBy(m.DeltaLine, m.DeltaColumn)

	case CommandMoveWordLeft:
		return c.doMoveWord(false)

	case CommandMoveWordRight:
		return c.doMoveWord(true)

	case CommandSetSelection:
		start, err := c.clampLineColumn(m.Start.Line, m.Start.Column)
		if err != nil {
			return CommandResult{}, err
		}
		end, err := c.clampLineColumn(m.End.Line, m.End.Column)
		if err != nil {
			return CommandResult{}, err
		}
		sel := normalizeSelection(start, end)
		c.selection = &sel
		c.cursor = end
		c.secondary = nil
		return successResult(), nil

	case CommandExtendSelection:
		to, err := c.clampLineColumn(m.To.Line, m.To.Column)
		if err != nil {
			return CommandResult{}, err
		}
		anchor := c.cursor
		if c.selection != nil {
			anchor = c.selection.Start
			if c.selection.Direction == SelectionBackward {
				anchor = c.selection.End
			}
		}
		sel := normalizeSelection(anchor, to)
		c.selection = &sel
		c.cursor = to
		return successResult(), nil

	case CommandClearSelection:
		c.selection = nil
		return successResult(), nil

	case CommandSetSelections:
		if len(m.Selections) == 0 {
			return CommandResult{}, newOtherError("selections must not be empty")
		}
		if m.PrimaryIndex < 0 || m.PrimaryIndex >= len(m.Selections) {
			return CommandResult{}, newOtherError("invalid primary index %d", m.PrimaryIndex)
		}
		for _, s := range m.Selections {
			if _, err := c.clampLineColumn(s.Start.Line, s.Start.Column); err != nil {
				return CommandResult{}, err
			}
			if _, err := c.clampLineColumn(s.End.Line, s.End.Column); err != nil {
				return CommandResult{}, err
			}
		}
		normalized, primaryIdx := normalizeSelections(c.lineIndex, m.Selections, m.PrimaryIndex)
		c.setSelectionsFromSlice(normalized, primaryIdx)
		return successResult(), nil

	case CommandClearSecondarySelections:
		c.secondary = nil
		return successResult(), nil

	case CommandSetRectSelection:
		return c.doSetRectSelection(m.Anchor, m.Active)

	default:
		return CommandResult{}, newOtherError("unknown cursor command")
	}
}

func (c *CommandExecutor) doMoveBy(deltaLine, deltaColumn int) (CommandResult, CommandError) {
	line := c.cursor.Line + deltaLine
	if line < 0 {
		line = 0
	}
	if line >= c.lineIndex.LineCount() {
		line = c.lineIndex.LineCount() - 1
	}
	column := c.cursor.Column + deltaColumn
	if column < 0 {
		column = 0
	}
	pos, err := c.clampLineColumn(line, column)
	if err != nil {
		return CommandResult{}, err
	}
	c.cursor = pos
	c.selection = nil
	c.secondary = nil
	return CommandResult{Kind: ResultPosition, Position: pos}, nil
}

// graphemeClusters splits s into its Unicode grapheme clusters, so a
// multi-rune emoji or combining-mark sequence is never split mid-cluster
// while scanning for a word boundary.
func graphemeClusters(s string) []string {
	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}

func clusterIsWord(cluster string) bool {
	for _, r := range cluster {
		return isWordRune(r)
	}
	return false
}

// doMoveWord moves the primary caret to the previous/next word boundary,
// scanning grapheme clusters (not raw runes) so multi-rune clusters move
// atomically.
func (c *CommandExecutor) doMoveWord(forward bool) (CommandResult, CommandError) {
	text := c.GetText()
	offset := c.lineIndex.PositionToCharOffset(c.cursor.Line, c.cursor.Column)
	byteOffset := charIndexToByteOffset(text, offset)

	var newOffset int
	if forward {
		clusters := graphemeClusters(text[byteOffset:])
		pos := offset
		sawWord := false
		for _, cl := range clusters {
			isWord := clusterIsWord(cl)
			if isWord {
				sawWord = true
			} else if sawWord {
				break
			}
			pos += countRunes(cl)
		}
		newOffset = pos
	} else {
		clusters := graphemeClusters(text[:byteOffset])
		i := len(clusters) - 1
		for i >= 0 && !clusterIsWord(clusters[i]) {
			i--
		}
		for i >= 0 && clusterIsWord(clusters[i]) {
			i--
		}
		pos := 0
		for j := 0; j <= i; j++ {
			pos += countRunes(clusters[j])
		}
		newOffset = pos
	}

	newPos := c.lineIndex.CharOffsetToPosition(newOffset)
	c.cursor = newPos
	c.selection = nil
	c.secondary = nil
	return CommandResult{Kind: ResultPosition, Position: newPos}, nil
}

// doSetRectSelection materializes one selection per logical line between
// the anchor and active lines. The anchor column stays fixed; the active
// column defines the varying end, and both may exceed line length as
// virtual columns.
func (c *CommandExecutor) doSetRectSelection(anchor, active Position) (CommandResult, CommandError) {
	if anchor.Line < 0 || anchor.Line >= c.lineIndex.LineCount() {
		return CommandResult{}, InvalidPositionError{Line: anchor.Line, Column: anchor.Column}
	}
	if active.Line < 0 || active.Line >= c.lineIndex.LineCount() {
		return CommandResult{}, InvalidPositionError{Line: active.Line, Column: active.Column}
	}

	lo, hi := anchor.Line, active.Line
	if lo > hi {
		lo, hi = hi, lo
	}

	selections := make([]Selection, 0, hi-lo+1)
	primaryIndex := 0
	for line := lo; line <= hi; line++ {
		start := Position{Line: line, Column: anchor.Column}
		end := Position{Line: line, Column: active.Column}
		selections = append(selections, normalizeSelection(start, end))
		if line == active.Line {
			primaryIndex = len(selections) - 1
		}
	}

	c.setSelectionsFromSlice(selections, primaryIndex)
	return successResult(), nil
}
