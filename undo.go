package editorcore

import "strings"

// TextEdit is one atomic text mutation within an UndoStep: one per caret in
// a multi-caret command.
type TextEdit struct {
	StartBefore  int
	StartAfter   int
	DeletedText  string
	InsertedText string
}

func (e TextEdit) deletedLen() int  { return countRunes(e.DeletedText) }
func (e TextEdit) insertedLen() int { return countRunes(e.InsertedText) }

// TextDeltaEdit is the externally-published form of a TextEdit: offsets
// refer to the pre-edit document.
type TextDeltaEdit struct {
	Start        int
	DeletedText  string
	InsertedText string
}

// TextDelta is the canonical change record published after every
// successful edit, consumed by external processors and adapters.
type TextDelta struct {
	BeforeCharCount int
	AfterCharCount  int
	Edits           []TextDeltaEdit // sorted by Start, descending
	UndoGroupID     *uint64
}

// selectionSetSnapshot captures the full selection state (primary +
// secondaries) for undo/redo restoration.
type selectionSetSnapshot struct {
	selections   []Selection
	primaryIndex int
}

// undoStep bundles every TextEdit produced by one command, tagged with the
// undo group it belongs to, plus the selection state before and after.
type undoStep struct {
	groupID          uint64
	edits            []TextEdit
	beforeSelections selectionSetSnapshot
	afterSelections  selectionSetSnapshot
}

// isCoalescible reports whether every edit in the step is a pure insertion
// (no deleted text) with no newline in the inserted text, the only steps
// eligible to be merged into an open undo group.
func (s undoStep) isCoalescible() bool {
	for _, e := range s.edits {
		if e.DeletedText != "" || strings.Contains(e.InsertedText, "\n") {
			return false
		}
	}
	return true
}

// UndoManager owns the undo/redo stacks and the open-group coalescing state
// machine described for the multi-caret executor: a run of consecutive
// pure-insert, no-newline edits shares one undo group, which a single Undo
// reverts as a unit, unless a clean point, a non-coalescible edit, or a
// non-edit command intervenes. Each edit stays its own step on the stack.
type UndoManager struct {
	undoStack []undoStep
	redoStack []undoStep
	maxUndo   int

	cleanIndex  *int
	nextGroupID uint64
	openGroupID *uint64
}

// NewUndoManager creates a manager bounded to maxUndo steps, starting at a
// clean point.
func NewUndoManager(maxUndo int) *UndoManager {
	zero := 0
	return &UndoManager{maxUndo: maxUndo, cleanIndex: &zero}
}

// CanUndo reports whether the undo stack has any step.
func (m *UndoManager) CanUndo() bool { return len(m.undoStack) > 0 }

// CanRedo reports whether the redo stack has any step.
func (m *UndoManager) CanRedo() bool { return len(m.redoStack) > 0 }

// UndoDepth returns the number of steps on the undo stack.
func (m *UndoManager) UndoDepth() int { return len(m.undoStack) }

// RedoDepth returns the number of steps on the redo stack.
func (m *UndoManager) RedoDepth() int { return len(m.redoStack) }

// IsClean reports whether the undo stack is exactly at the last saved point.
func (m *UndoManager) IsClean() bool {
	return m.cleanIndex != nil && *m.cleanIndex == len(m.undoStack)
}

// MarkClean records the current undo stack depth as the saved position and
// closes any open coalescing group.
func (m *UndoManager) MarkClean() {
	idx := len(m.undoStack)
	m.cleanIndex = &idx
	m.EndGroup()
}

// EndGroup closes the currently open coalescing group, if any. Any non-edit
// command, as well as an explicit EndUndoGroup, calls this.
func (m *UndoManager) EndGroup() { m.openGroupID = nil }

func (m *UndoManager) clearRedoAndAdjustClean() {
	if len(m.redoStack) == 0 {
		return
	}
	if m.cleanIndex != nil && *m.cleanIndex > len(m.undoStack) {
		m.cleanIndex = nil
	}
	m.redoStack = nil
}

// pushStep appends a new step, possibly reusing the currently open group,
// and returns the group id it was assigned.
func (m *UndoManager) pushStep(step undoStep, coalescibleInsert bool) uint64 {
	m.clearRedoAndAdjustClean()

	if len(m.undoStack) >= m.maxUndo {
		m.undoStack = m.undoStack[1:]
		if m.cleanIndex != nil {
			if *m.cleanIndex == 0 {
				m.cleanIndex = nil
			} else {
				idx := *m.cleanIndex - 1
				m.cleanIndex = &idx
			}
		}
	}

	reuseOpenGroup := coalescibleInsert && m.openGroupID != nil &&
		!(m.cleanIndex != nil && *m.cleanIndex == len(m.undoStack))

	if reuseOpenGroup {
		step.groupID = *m.openGroupID
	} else {
		step.groupID = m.nextGroupID
		m.nextGroupID++
	}

	if coalescibleInsert {
		groupID := step.groupID
		m.openGroupID = &groupID
	} else {
		m.openGroupID = nil
	}

	m.undoStack = append(m.undoStack, step)
	return step.groupID
}

// Push records a new step produced by a command, honoring the coalescing
// rules, and returns the assigned group id.
func (m *UndoManager) Push(edits []TextEdit, before, after selectionSetSnapshot) uint64 {
	step := undoStep{edits: edits, beforeSelections: before, afterSelections: after}
	return m.pushStep(step, step.isCoalescible())
}

func (m *UndoManager) popUndoGroup() []undoStep {
	if len(m.undoStack) == 0 {
		return nil
	}
	lastGroup := m.undoStack[len(m.undoStack)-1].groupID
	var steps []undoStep
	for len(m.undoStack) > 0 && m.undoStack[len(m.undoStack)-1].groupID == lastGroup {
		n := len(m.undoStack)
		steps = append(steps, m.undoStack[n-1])
		m.undoStack = m.undoStack[:n-1]
	}
	return steps
}

func (m *UndoManager) popRedoGroup() []undoStep {
	if len(m.redoStack) == 0 {
		return nil
	}
	lastGroup := m.redoStack[len(m.redoStack)-1].groupID
	var steps []undoStep
	for len(m.redoStack) > 0 && m.redoStack[len(m.redoStack)-1].groupID == lastGroup {
		n := len(m.redoStack)
		steps = append(steps, m.redoStack[n-1])
		m.redoStack = m.redoStack[:n-1]
	}
	return steps
}
