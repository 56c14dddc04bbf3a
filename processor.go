package editorcore

import "sort"

// DiagnosticSeverity classifies a Diagnostic's urgency. The core treats the
// value as opaque pass-through metadata; only external adapters interpret it.
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is a pass-through record keyed by a character range; the core
// never interprets Severity, Code, or Message.
type Diagnostic struct {
	Start    int
	End      int
	Severity DiagnosticSeverity
	Code     string
	Message  string
}

// Decoration is a pass-through, non-style visual marker (bookmark,
// breakpoint, ...) keyed by a character range within a DecorationLayerId.
type Decoration struct {
	Start int
	End   int
	Kind  string
}

// ProcessingEdit is the sum type an external DocumentProcessor returns: a
// batch of derived-state replacements the state manager applies back into
// style layers, folds, diagnostics, and decorations.
type ProcessingEdit interface {
	applyTo(m *StateManager)
}

// ReplaceStyleLayerEdit clears layer and installs intervals in its place.
type ReplaceStyleLayerEdit struct {
	Layer     StyleLayerId
	Intervals []Interval
}

// ClearStyleLayerEdit empties layer.
type ClearStyleLayerEdit struct {
	Layer StyleLayerId
}

// ReplaceFoldingRegionsEdit replaces the derived fold tier. When
// PreserveCollapsed is set, a new region matching an existing derived
// collapsed region by (StartLine, EndLine) keeps IsCollapsed true.
type ReplaceFoldingRegionsEdit struct {
	Regions           []FoldRegion
	PreserveCollapsed bool
}

// ClearFoldingRegionsEdit clears the derived fold tier, leaving user folds.
type ClearFoldingRegionsEdit struct{}

// ReplaceDiagnosticsEdit replaces the diagnostics list wholesale.
type ReplaceDiagnosticsEdit struct {
	Diagnostics []Diagnostic
}

// ClearDiagnosticsEdit empties the diagnostics list.
type ClearDiagnosticsEdit struct{}

// ReplaceDecorationsEdit replaces one decoration layer's contents,
// deterministically sorted by (Start, End).
type ReplaceDecorationsEdit struct {
	Layer       DecorationLayerId
	Decorations []Decoration
}

// ClearDecorationsEdit empties one decoration layer.
type ClearDecorationsEdit struct {
	Layer DecorationLayerId
}

func (e ReplaceStyleLayerEdit) applyTo(m *StateManager) {
	m.executor.styles.ReplaceLayer(e.Layer, e.Intervals)
	m.noteChange(StateChangeStyle, nil)
}

func (e ClearStyleLayerEdit) applyTo(m *StateManager) {
	m.executor.styles.ClearLayer(e.Layer)
	m.noteChange(StateChangeStyle, nil)
}

func (e ReplaceFoldingRegionsEdit) applyTo(m *StateManager) {
	regions := append([]FoldRegion{}, e.Regions...)
	if e.PreserveCollapsed {
		collapsed := make(map[[2]int]bool)
		for _, r := range m.executor.folding.DerivedRegions() {
			if r.IsCollapsed {
				collapsed[[2]int{r.StartLine, r.EndLine}] = true
			}
		}
		for i, r := range regions {
			if collapsed[[2]int{r.StartLine, r.EndLine}] {
				regions[i].IsCollapsed = true
			}
		}
	}
	m.executor.folding.ReplaceDerivedRegions(regions)
	m.noteChange(StateChangeFolding, nil)
}

func (e ClearFoldingRegionsEdit) applyTo(m *StateManager) {
	m.executor.folding.ClearDerivedRegions()
	m.noteChange(StateChangeFolding, nil)
}

func (e ReplaceDiagnosticsEdit) applyTo(m *StateManager) {
	m.diagnostics = append([]Diagnostic{}, e.Diagnostics...)
	m.noteChange(StateChangeDiagnostics, nil)
}

func (e ClearDiagnosticsEdit) applyTo(m *StateManager) {
	m.diagnostics = nil
	m.noteChange(StateChangeDiagnostics, nil)
}

func (e ReplaceDecorationsEdit) applyTo(m *StateManager) {
	decorations := append([]Decoration{}, e.Decorations...)
	sortDecorations(decorations)
	if m.decorations == nil {
		m.decorations = make(map[DecorationLayerId][]Decoration)
	}
	m.decorations[e.Layer] = decorations
	m.noteChange(StateChangeDecorations, nil)
}

func (e ClearDecorationsEdit) applyTo(m *StateManager) {
	delete(m.decorations, e.Layer)
	m.noteChange(StateChangeDecorations, nil)
}

func sortDecorations(decorations []Decoration) {
	sort.SliceStable(decorations, func(i, j int) bool {
		if decorations[i].Start != decorations[j].Start {
			return decorations[i].Start < decorations[j].Start
		}
		return decorations[i].End < decorations[j].End
	})
}

// DocumentProcessor is an external derived-state producer (syntax
// highlighter, LSP client, Tree-sitter re-parser). Implementations must be
// pure with respect to the state passed in, must not mutate it, and should
// be idempotent: running twice on the same state should produce equivalent
// edits.
type DocumentProcessor interface {
	Process(state *StateManager) ([]ProcessingEdit, error)
}
