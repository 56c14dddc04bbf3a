package editorcore

import "strings"

func (c *CommandExecutor) executeEdit(cmd EditCommand) (CommandResult, CommandError) {
	switch e := cmd.(type) {
	case CommandInsert:
		return c.doInsert(e.Offset, e.Text)
	case CommandDelete:
		return c.doDelete(e.Start, e.Length)
	case CommandReplace:
		return c.doReplace(e.Start, e.Length, e.Text)
	case CommandInsertText:
		return c.doInsertText(e.Text)
	case CommandInsertTab:
		return c.doInsertTab()
	case CommandBackspace:
		return c.doDeleteAtCarets(true)
	case CommandDeleteForward:
		return c.doDeleteAtCarets(false)
	case CommandUndo:
		return c.doUndo()
	case CommandRedo:
		return c.doRedo()
	case CommandEndUndoGroup:
		c.undo.EndGroup()
		return successResult(), nil
	case CommandFindNext:
		return c.doFindNext(e.Query, e.Options)
	case CommandFindPrev:
		return c.doFindPrev(e.Query, e.Options)
	case CommandReplaceCurrent:
		return c.doReplaceCurrent(e.Query, e.Replacement, e.Options)
	case CommandReplaceAll:
		return c.doReplaceAll(e.Query, e.Replacement, e.Options)
	default:
		return CommandResult{}, newOtherError("unknown edit command")
	}
}

func (c *CommandExecutor) doInsert(offset int, text string) (CommandResult, CommandError) {
	if text == "" {
		return CommandResult{}, EmptyTextError{}
	}
	if offset < 0 || offset > c.CharCount() {
		return CommandResult{}, InvalidOffsetError{Offset: offset}
	}
	edit := TextEdit{StartBefore: offset, StartAfter: offset, InsertedText: text}
	c.commitSingleEdit(edit)
	return successResult(), nil
}

func (c *CommandExecutor) doDelete(start, length int) (CommandResult, CommandError) {
	if start < 0 || start+length > c.CharCount() || length < 0 {
		return CommandResult{}, InvalidRangeError{Start: start, End: start + length}
	}
	if length == 0 {
		return successResult(), nil
	}
	deleted := c.pieceTable.GetRange(start, length)
	edit := TextEdit{StartBefore: start, StartAfter: start, DeletedText: deleted}
	c.commitSingleEdit(edit)
	return successResult(), nil
}

func (c *CommandExecutor) doReplace(start, length int, text string) (CommandResult, CommandError) {
	if start < 0 || start+length > c.CharCount() || length < 0 {
		return CommandResult{}, InvalidRangeError{Start: start, End: start + length}
	}
	if length == 0 && text == "" {
		return successResult(), nil
	}
	deleted := ""
	if length > 0 {
		deleted = c.pieceTable.GetRange(start, length)
	}
	edit := TextEdit{StartBefore: start, StartAfter: start, DeletedText: deleted, InsertedText: text}
	c.commitSingleEdit(edit)
	return successResult(), nil
}

// commitSingleEdit applies one edit, records it as its own undo step, and
// publishes a TextDelta.
func (c *CommandExecutor) commitSingleEdit(edit TextEdit) {
	before := c.snapshotSelections()
	charCountBefore := c.CharCount()

	c.applyEdits([]TextEdit{edit})
	c.adjustCaretsForEdits([]TextEdit{edit})

	after := c.snapshotSelections()
	groupID := c.undo.Push([]TextEdit{edit}, before, after)
	c.publishDelta(charCountBefore, []TextEdit{edit}, &groupID)
}

// doInsertText applies text to every caret/selection at once: normalize the
// selection set, compute each selection's pre-edit character range (padding
// virtual columns beyond line length with spaces), sweep ascending to learn
// each caret's final offset, then apply descending.
func (c *CommandExecutor) doInsertText(text string) (CommandResult, CommandError) {
	selections, _ := c.selectionSet()
	if len(selections) == 0 {
		selections = []Selection{NewCaret(c.cursor)}
	}

	before := c.snapshotSelections()
	charCountBefore := c.CharCount()

	type resolved struct {
		startOffset, endOffset int
		deletedText            string
		insertedText           string
	}
	res := make([]resolved, len(selections))
	for i, s := range selections {
		startOff, pad := c.resolveVirtualOffset(s.Start)
		endOff, _ := c.resolveVirtualOffset(s.End)
		deleted := ""
		if endOff > startOff {
			deleted = c.pieceTable.GetRange(startOff, endOff-startOff)
		}
		res[i] = resolved{
			startOffset:  startOff,
			endOffset:    endOff,
			deletedText:  deleted,
			insertedText: strings.Repeat(" ", pad) + text,
		}
	}

	edits := make([]TextEdit, len(res))
	finalCarets := make([]int, len(res))
	delta := 0
	for i, r := range res {
		startAfter := r.startOffset + delta
		edits[i] = TextEdit{StartBefore: r.startOffset, StartAfter: startAfter, DeletedText: r.deletedText, InsertedText: r.insertedText}
		insertedLen := countRunes(r.insertedText)
		deletedLen := countRunes(r.deletedText)
		finalCarets[i] = startAfter + insertedLen
		delta += insertedLen - deletedLen
	}

	c.applyEdits(edits)

	newSelections := make([]Selection, len(finalCarets))
	for i, off := range finalCarets {
		newSelections[i] = NewCaret(c.lineIndex.CharOffsetToPosition(off))
	}
	c.setSelectionsFromSlice(newSelections, 0)

	after := c.snapshotSelections()
	groupID := c.undo.Push(edits, before, after)
	c.publishDelta(charCountBefore, edits, &groupID)
	return successResult(), nil
}

// resolveVirtualOffset converts a Position that may have a column beyond
// the line's length into a char offset plus the number of virtual spaces
// that must be inserted to materialize it.
func (c *CommandExecutor) resolveVirtualOffset(pos Position) (offset, pad int) {
	lineLen := countRunes(mustLineText(c.lineIndex, pos.Line))
	if pos.Column > lineLen {
		return c.lineIndex.PositionToCharOffset(pos.Line, lineLen), pos.Column - lineLen
	}
	return c.lineIndex.PositionToCharOffset(pos.Line, pos.Column), 0
}

func (c *CommandExecutor) doInsertTab() (CommandResult, CommandError) {
	if c.tabKeyBehavior == TabKeySpaces {
		selections, _ := c.selectionSet()
		tabWidth := c.layout.TabWidth()
		// Spaces mode with a single caret pads to the next tab stop, using the
		// caret's column as its cell-X. With several carets every caret gets
		// tabWidth spaces; per-caret tab stops are not computed.
		if len(selections) == 1 {
			x := selections[0].Caret().Column
			n := tabWidth - (x % tabWidth)
			return c.doInsertText(strings.Repeat(" ", n))
		}
		return c.doInsertText(strings.Repeat(" ", tabWidth))
	}
	return c.doInsertText("\t")
}

// doDeleteAtCarets implements Backspace (backward=true) and DeleteForward.
// For each selection: a non-empty selection's range is deleted; an empty
// caret deletes one character before/after it (a no-op at the document
// boundary). Deletion-like commands always close the open undo group.
func (c *CommandExecutor) doDeleteAtCarets(backward bool) (CommandResult, CommandError) {
	selections, _ := c.selectionSet()
	if len(selections) == 0 {
		selections = []Selection{NewCaret(c.cursor)}
	}
	before := c.snapshotSelections()
	charCountBefore := c.CharCount()

	type resolved struct {
		start, end int
	}
	res := make([]resolved, 0, len(selections))
	for _, s := range selections {
		if !s.IsEmpty() {
			startOff := c.lineIndex.PositionToCharOffset(s.Start.Line, s.Start.Column)
			endOff := c.lineIndex.PositionToCharOffset(s.End.Line, s.End.Column)
			res = append(res, resolved{startOff, endOff})
			continue
		}
		caretOff := c.lineIndex.PositionToCharOffset(s.Caret().Line, s.Caret().Column)
		if backward {
			if caretOff > 0 {
				res = append(res, resolved{caretOff - 1, caretOff})
			}
		} else {
			if caretOff < charCountBefore {
				res = append(res, resolved{caretOff, caretOff + 1})
			}
		}
	}

	c.undo.EndGroup()

	if len(res) == 0 {
		return successResult(), nil
	}

	edits := make([]TextEdit, len(res))
	finalCarets := make([]int, len(res))
	delta := 0
	for i, r := range res {
		deleted := c.pieceTable.GetRange(r.start, r.end-r.start)
		startAfter := r.start + delta
		edits[i] = TextEdit{StartBefore: r.start, StartAfter: startAfter, DeletedText: deleted}
		finalCarets[i] = startAfter
		delta -= countRunes(deleted)
	}

	c.applyEdits(edits)

	newSelections := make([]Selection, len(finalCarets))
	for i, off := range finalCarets {
		newSelections[i] = NewCaret(c.lineIndex.CharOffsetToPosition(off))
	}
	c.setSelectionsFromSlice(newSelections, 0)

	after := c.snapshotSelections()
	groupID := c.undo.Push(edits, before, after)
	c.publishDelta(charCountBefore, edits, &groupID)
	return successResult(), nil
}

func (c *CommandExecutor) doUndo() (CommandResult, CommandError) {
	steps := c.undo.popUndoGroup()
	if len(steps) == 0 {
		return CommandResult{}, newOtherError("nothing to undo")
	}
	charCountBefore := c.CharCount()
	var allEdits []TextEdit
	for _, step := range steps {
		inverted := make([]TextEdit, len(step.edits))
		for i, e := range step.edits {
			inverted[i] = TextEdit{StartBefore: e.StartAfter, StartAfter: e.StartBefore, DeletedText: e.InsertedText, InsertedText: e.DeletedText}
		}
		c.applyEdits(inverted)
		allEdits = append(allEdits, inverted...)
	}
	c.restoreSelections(steps[len(steps)-1].beforeSelections)
	c.undo.redoStack = append(c.undo.redoStack, reverseSteps(steps)...)
	c.publishDelta(charCountBefore, allEdits, nil)
	return successResult(), nil
}

func (c *CommandExecutor) doRedo() (CommandResult, CommandError) {
	steps := c.undo.popRedoGroup()
	if len(steps) == 0 {
		return CommandResult{}, newOtherError("nothing to redo")
	}
	charCountBefore := c.CharCount()
	reordered := reverseSteps(steps)
	var allEdits []TextEdit
	for _, step := range reordered {
		c.applyEdits(step.edits)
		allEdits = append(allEdits, step.edits...)
	}
	last := reordered[len(reordered)-1]
	c.restoreSelections(last.afterSelections)
	c.undo.undoStack = append(c.undo.undoStack, reordered...)
	c.publishDelta(charCountBefore, allEdits, nil)
	return successResult(), nil
}

func reverseSteps(steps []undoStep) []undoStep {
	out := make([]undoStep, len(steps))
	for i, s := range steps {
		out[len(steps)-1-i] = s
	}
	return out
}

func (c *CommandExecutor) doFindNext(query string, opts SearchOptions) (CommandResult, CommandError) {
	from := c.lineIndex.PositionToCharOffset(c.primarySelection().Caret().Line, c.primarySelection().Caret().Column)
	m, ok, err := findNext(c.GetText(), query, from, opts)
	if err != nil {
		return CommandResult{}, newOtherError("search error: %v", err)
	}
	if !ok {
		return CommandResult{Kind: ResultSearchNotFound}, nil
	}
	c.setPrimarySelectionToMatch(m)
	return CommandResult{Kind: ResultSearchMatch, MatchStart: m.Start, MatchEnd: m.End}, nil
}

func (c *CommandExecutor) doFindPrev(query string, opts SearchOptions) (CommandResult, CommandError) {
	from := c.lineIndex.PositionToCharOffset(c.primarySelection().Start.Line, c.primarySelection().Start.Column)
	m, ok, err := findPrev(c.GetText(), query, from, opts)
	if err != nil {
		return CommandResult{}, newOtherError("search error: %v", err)
	}
	if !ok {
		return CommandResult{Kind: ResultSearchNotFound}, nil
	}
	c.setPrimarySelectionToMatch(m)
	return CommandResult{Kind: ResultSearchMatch, MatchStart: m.Start, MatchEnd: m.End}, nil
}

func (c *CommandExecutor) setPrimarySelectionToMatch(m SearchMatch) {
	start := c.lineIndex.CharOffsetToPosition(m.Start)
	end := c.lineIndex.CharOffsetToPosition(m.End)
	sel := normalizeSelection(start, end)
	c.selection = &sel
	c.cursor = end
	c.secondary = nil
}

func (c *CommandExecutor) doReplaceCurrent(query, replacement string, opts SearchOptions) (CommandResult, CommandError) {
	text := c.GetText()
	primary := c.primarySelection()
	start := c.lineIndex.PositionToCharOffset(primary.Start.Line, primary.Start.Column)
	end := c.lineIndex.PositionToCharOffset(primary.End.Line, primary.End.Column)

	var match SearchMatch
	if !primary.IsEmpty() && textEquals(text, start, end, query, opts) {
		match = SearchMatch{Start: start, End: end}
	} else {
		m, ok, err := findNext(text, query, end, opts)
		if err != nil {
			return CommandResult{}, newOtherError("search error: %v", err)
		}
		if !ok {
			return CommandResult{Kind: ResultSearchNotFound}, nil
		}
		match = m
	}

	repl := replacement
	if opts.Regex {
		matches, err := findAllRegex(text, query, opts)
		if err == nil {
			for _, m := range matches {
				if m.Start == match.Start && m.End == match.End {
					repl = expandReplacement(replacement, m.Groups)
					break
				}
			}
		}
	}

	res, cerr := c.doReplace(match.Start, match.End-match.Start, repl)
	if cerr != nil {
		return res, cerr
	}
	return CommandResult{Kind: ResultReplace, Replaced: 1}, nil
}

func textEquals(text string, start, end int, query string, opts SearchOptions) bool {
	candidate := sliceRunes(text, start, end-start)
	if opts.CaseSensitive {
		return candidate == query
	}
	return foldCaser.String(candidate) == foldCaser.String(query)
}

func (c *CommandExecutor) doReplaceAll(query, replacement string, opts SearchOptions) (CommandResult, CommandError) {
	text := c.GetText()
	matches, err := findAll(text, query, opts)
	if err != nil {
		return CommandResult{}, newOtherError("search error: %v", err)
	}
	if len(matches) == 0 {
		return CommandResult{Kind: ResultReplace, Replaced: 0}, nil
	}

	before := c.snapshotSelections()
	charCountBefore := c.CharCount()

	edits := make([]TextEdit, len(matches))
	delta := 0
	firstStartAfter := 0
	firstInsertedLen := 0
	for i, m := range matches {
		repl := replacement
		if opts.Regex {
			repl = expandReplacement(replacement, m.Groups)
		}
		deleted := sliceRunes(text, m.Start, m.End-m.Start)
		startAfter := m.Start + delta
		edits[i] = TextEdit{StartBefore: m.Start, StartAfter: startAfter, DeletedText: deleted, InsertedText: repl}
		if i == 0 {
			firstStartAfter = startAfter
			firstInsertedLen = countRunes(repl)
		}
		delta += countRunes(repl) - countRunes(deleted)
	}

	c.applyEdits(edits)

	start := c.lineIndex.CharOffsetToPosition(firstStartAfter)
	end := c.lineIndex.CharOffsetToPosition(firstStartAfter + firstInsertedLen)
	sel := normalizeSelection(start, end)
	c.selection = &sel
	c.cursor = end
	c.secondary = nil

	after := c.snapshotSelections()
	groupID := c.undo.Push(edits, before, after)
	c.publishDelta(charCountBefore, edits, &groupID)
	return CommandResult{Kind: ResultReplace, Replaced: len(matches)}, nil
}
