package editorcore

// snapshotSelections captures the full selection state for undo/redo
// restoration.
func (c *CommandExecutor) snapshotSelections() selectionSetSnapshot {
	selections, primaryIndex := c.selectionSet()
	return selectionSetSnapshot{selections: selections, primaryIndex: primaryIndex}
}

// restoreSelections reinstates a previously captured selection set.
func (c *CommandExecutor) restoreSelections(snap selectionSetSnapshot) {
	if len(snap.selections) == 0 {
		return
	}
	c.setSelectionsFromSlice(snap.selections, snap.primaryIndex)
}

// setSelectionsFromSlice installs selections as the new selection set,
// picking primaryIndex (clamped) as the primary.
func (c *CommandExecutor) setSelectionsFromSlice(selections []Selection, primaryIndex int) {
	if len(selections) == 0 {
		return
	}
	if primaryIndex < 0 || primaryIndex >= len(selections) {
		primaryIndex = 0
	}
	primary := selections[primaryIndex]
	c.cursor = primary.Caret()
	if primary.IsEmpty() {
		c.selection = nil
	} else {
		s := primary
		c.selection = &s
	}
	c.secondary = nil
	for i, s := range selections {
		if i != primaryIndex {
			c.secondary = append(c.secondary, s)
		}
	}
}

// adjustCaretsForEdits re-resolves the primary caret/selection and every
// secondary selection against the post-edit document, keeping each
// (line, column) and clamping it into the new bounds. Positions are not
// shifted by the edits' offsets or lengths.
func (c *CommandExecutor) adjustCaretsForEdits(edits []TextEdit) {
	adjust := func(pos Position) Position {
		offset := c.posOffsetBeforeEdits(pos, edits)
		return c.lineIndex.CharOffsetToPosition(offset)
	}
	c.cursor = adjust(c.cursor)
	if c.selection != nil {
		start := adjust(c.selection.Start)
		end := adjust(c.selection.End)
		sel := normalizeSelection(start, end)
		c.selection = &sel
	}
	for i, s := range c.secondary {
		start := adjust(s.Start)
		end := adjust(s.End)
		c.secondary[i] = normalizeSelection(start, end)
	}
}

// posOffsetBeforeEdits is intentionally approximate: it re-derives an
// offset from pos using the (already rebuilt) post-edit line index, which
// is only valid when pos was already expressed against the pre-edit
// document and no edit changed line count before this point. Low-level
// Insert/Delete/Replace commands don't move the caret relative to an edit
// elsewhere in the document, so this resolves to a same-offset clamp.
func (c *CommandExecutor) posOffsetBeforeEdits(pos Position, edits []TextEdit) int {
	total := c.lineIndex.CharCount()
	offset := pos.Column
	_ = offset
	// Re-resolve purely by clamping into the new document bounds.
	if pos.Line >= c.lineIndex.LineCount() {
		return total
	}
	return c.lineIndex.PositionToCharOffset(pos.Line, pos.Column)
}

// publishDelta builds and stores the TextDelta for a committed batch of
// edits, sorted by Start descending per the reference format.
func (c *CommandExecutor) publishDelta(charCountBefore int, edits []TextEdit, groupID *uint64) {
	deltaEdits := make([]TextDeltaEdit, len(edits))
	for i, e := range edits {
		deltaEdits[i] = TextDeltaEdit{Start: e.StartBefore, DeletedText: e.DeletedText, InsertedText: e.InsertedText}
	}
	for i := 0; i < len(deltaEdits); i++ {
		for j := i + 1; j < len(deltaEdits); j++ {
			if deltaEdits[j].Start > deltaEdits[i].Start {
				deltaEdits[i], deltaEdits[j] = deltaEdits[j], deltaEdits[i]
			}
		}
	}
	c.lastDelta = &TextDelta{
		BeforeCharCount: charCountBefore,
		AfterCharCount:  c.CharCount(),
		Edits:           deltaEdits,
		UndoGroupID:     groupID,
	}
}
