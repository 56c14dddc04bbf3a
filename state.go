package editorcore

// StateChangeType classifies what kind of observable state a command
// actually altered.
type StateChangeType int

const (
	StateChangeDocument StateChangeType = iota
	StateChangeCursor
	StateChangeSelection
	StateChangeViewport
	StateChangeFolding
	StateChangeStyle
	StateChangeDecorations
	StateChangeDiagnostics
)

// StateChange is the record delivered to subscribers after a command
// produces a real, observable change.
type StateChange struct {
	ChangeType     StateChangeType
	OldVersion     uint64
	NewVersion     uint64
	AffectedRegion *[2]int
	TextDelta      *TextDelta
}

// StateChangeCallback observes state changes.
type StateChangeCallback func(StateChange)

// StateManager wraps a CommandExecutor and layers version tracking,
// modification tracking, and change notification on top of it. Every
// command the frontend issues should go through Execute rather than the
// executor directly, so subscribers stay in sync.
type StateManager struct {
	executor *CommandExecutor

	version    uint64
	isModified bool
	callbacks  []StateChangeCallback

	scrollTop      int
	viewportHeight *int

	lastTextDelta *TextDelta

	diagnostics []Diagnostic
	decorations map[DecorationLayerId][]Decoration
}

// NewStateManager creates a manager over a fresh executor seeded with text
// and viewportWidth.
func NewStateManager(text string, viewportWidth int) *StateManager {
	return &StateManager{executor: NewCommandExecutor(text, viewportWidth)}
}

// Version returns the current state version.
func (m *StateManager) Version() uint64 { return m.version }

// IsModified reports whether the document has unsaved changes.
func (m *StateManager) IsModified() bool { return m.isModified }

// Subscribe registers a callback invoked after every real state change.
func (m *StateManager) Subscribe(cb StateChangeCallback) {
	m.callbacks = append(m.callbacks, cb)
}

// SetViewportHeight sets the optional viewport height used by viewport-state queries.
func (m *StateManager) SetViewportHeight(height int) { h := height; m.viewportHeight = &h }

// SetScrollTop updates the scroll position, notifying subscribers on change.
func (m *StateManager) SetScrollTop(scrollTop int) {
	old := m.scrollTop
	m.scrollTop = scrollTop
	if old != scrollTop {
		m.notify(StateChangeViewport, nil)
	}
}

func changeTypeForCommand(cmd Command) (StateChangeType, bool) {
	switch {
	case cmd.Edit != nil:
		switch cmd.Edit.(type) {
		case CommandEndUndoGroup:
			return 0, false
		default:
			return StateChangeDocument, true
		}
	case cmd.Cursor != nil:
		switch cmd.Cursor.(type) {
		case CommandSetSelection, CommandExtendSelection, CommandClearSelection,
			CommandSetSelections, CommandClearSecondarySelections, CommandSetRectSelection:
			return StateChangeSelection, true
		default:
			return StateChangeCursor, true
		}
	case cmd.View != nil:
		switch cmd.View.(type) {
		case CommandSetViewportWidth, CommandSetWrapMode, CommandSetWrapIndent, CommandSetTabWidth:
			return StateChangeViewport, true
		default:
			return 0, false
		}
	case cmd.Style != nil:
		switch cmd.Style.(type) {
		case CommandAddStyle, CommandRemoveStyle:
			return StateChangeStyle, true
		default:
			return StateChangeFolding, true
		}
	}
	return 0, false
}

func isDeleteLike(cmd Command) bool {
	switch cmd.Edit.(type) {
	case CommandBackspace, CommandDeleteForward:
		return true
	default:
		return false
	}
}

// Execute runs command through the executor, deriving whether the
// resulting state actually changed and, only then, bumping the version and
// notifying subscribers.
func (m *StateManager) Execute(command Command) (CommandResult, CommandError) {
	changeType, tracked := changeTypeForCommand(command)
	deleteLike := isDeleteLike(command)

	cursorBefore := m.executor.CursorPosition()
	selectionBefore := m.executor.Selection()
	secondaryBefore := append([]Selection{}, m.executor.SecondarySelections()...)
	viewportWidthBefore := m.executor.ViewportWidth()
	charCountBefore := m.executor.CharCount()

	result, err := m.executor.Execute(command)
	if err != nil {
		return result, err
	}

	if !tracked {
		return result, nil
	}

	changed := false
	switch changeType {
	case StateChangeCursor:
		changed = m.executor.CursorPosition() != cursorBefore ||
			!selectionsEqual(m.executor.SecondarySelections(), secondaryBefore)
	case StateChangeSelection:
		changed = m.executor.CursorPosition() != cursorBefore ||
			!selectionPtrEqual(m.executor.Selection(), selectionBefore) ||
			!selectionsEqual(m.executor.SecondarySelections(), secondaryBefore)
	case StateChangeViewport:
		changed = m.executor.ViewportWidth() != viewportWidthBefore
	case StateChangeDocument:
		if deleteLike {
			changed = m.executor.CharCount() != charCountBefore
		} else {
			changed = m.executor.LastTextDelta() != nil
		}
	case StateChangeFolding, StateChangeStyle, StateChangeDecorations, StateChangeDiagnostics:
		changed = true
	}

	if !changed {
		return result, nil
	}

	var delta *TextDelta
	if changeType == StateChangeDocument {
		delta = m.executor.TakeLastTextDelta()
		m.lastTextDelta = delta
		m.isModified = !m.executor.IsClean()
	}
	m.noteChange(changeType, delta)

	return result, nil
}

func selectionPtrEqual(a, b *Selection) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func selectionsEqual(a, b []Selection) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// noteChange increments the version and invokes every subscriber with a
// StateChange carrying delta. ProcessingEdit.applyTo and low-level mutators
// that bypass Execute call this directly.
func (m *StateManager) noteChange(changeType StateChangeType, delta *TextDelta) {
	old := m.version
	m.version++
	change := StateChange{ChangeType: changeType, OldVersion: old, NewVersion: m.version, TextDelta: delta}
	for _, cb := range m.callbacks {
		cb(change)
	}
}

func (m *StateManager) notify(changeType StateChangeType, delta *TextDelta) {
	m.noteChange(changeType, delta)
}

// ApplyProcessor runs processor against the current state and applies the
// edits it returns.
func (m *StateManager) ApplyProcessor(processor DocumentProcessor) error {
	edits, err := processor.Process(m)
	if err != nil {
		return err
	}
	for _, e := range edits {
		e.applyTo(m)
	}
	return nil
}

// MarkSaved clears the modified flag and records the current undo position
// as the clean point.
func (m *StateManager) MarkSaved() {
	m.executor.MarkClean()
	m.isModified = false
}

// GetViewport is a convenience query wrapper that does not go through
// Execute (it never changes state).
func (m *StateManager) GetViewport(startRow, count int) HeadlessGrid {
	result, _ := m.executor.executeView(CommandGetViewport{StartRow: startRow, Count: count})
	return result.Viewport
}

// Diagnostics returns the current diagnostics list.
func (m *StateManager) Diagnostics() []Diagnostic { return m.diagnostics }

// Decorations returns the decorations installed on layer.
func (m *StateManager) Decorations(layer DecorationLayerId) []Decoration { return m.decorations[layer] }
