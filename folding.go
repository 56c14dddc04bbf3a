package editorcore

import "sort"

// FoldRegion is an inclusive [StartLine, EndLine] range of logical lines
// that can be collapsed into a single placeholder row.
type FoldRegion struct {
	StartLine   int
	EndLine     int
	IsCollapsed bool
	Placeholder string
}

// NewFoldRegion creates an expanded fold region with the default placeholder.
func NewFoldRegion(startLine, endLine int) FoldRegion {
	return FoldRegion{StartLine: startLine, EndLine: endLine, Placeholder: "[...]"}
}

// NewFoldRegionWithPlaceholder creates an expanded fold region with a
// custom placeholder string.
func NewFoldRegionWithPlaceholder(startLine, endLine int, placeholder string) FoldRegion {
	return FoldRegion{StartLine: startLine, EndLine: endLine, Placeholder: placeholder}
}

// Expand marks the region as not collapsed.
func (r *FoldRegion) Expand() { r.IsCollapsed = false }

// Collapse marks the region as collapsed.
func (r *FoldRegion) Collapse() { r.IsCollapsed = true }

// Toggle flips the collapsed state.
func (r *FoldRegion) Toggle() { r.IsCollapsed = !r.IsCollapsed }

// ContainsLine reports whether line falls within [StartLine, EndLine].
func (r FoldRegion) ContainsLine(line int) bool {
	return line >= r.StartLine && line <= r.EndLine
}

// FoldingManager tracks two tiers of fold regions: ones derived from an
// external source (LSP folding ranges, syntax-aware folding), and ones the
// user created explicitly. It exposes a merged, deduplicated view used for
// rendering and logical/visual line mapping.
type FoldingManager struct {
	derivedRegions []FoldRegion
	userRegions    []FoldRegion
	mergedRegions  []FoldRegion
}

// NewFoldingManager creates an empty folding manager.
func NewFoldingManager() *FoldingManager {
	return &FoldingManager{}
}

func sortAndDedupRegions(regions []FoldRegion) []FoldRegion {
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].StartLine != regions[j].StartLine {
			return regions[i].StartLine < regions[j].StartLine
		}
		return regions[i].EndLine < regions[j].EndLine
	})
	out := regions[:0]
	for i, r := range regions {
		if i > 0 && r.StartLine == out[len(out)-1].StartLine && r.EndLine == out[len(out)-1].EndLine {
			continue
		}
		out = append(out, r)
	}
	return out
}

func normalizeRegions(regions []FoldRegion) []FoldRegion {
	regions = sortAndDedupRegions(regions)
	out := regions[:0]
	for _, r := range regions {
		if r.EndLine > r.StartLine {
			out = append(out, r)
		}
	}
	return out
}

func clampRegions(regions []FoldRegion, maxLine int) []FoldRegion {
	for i := range regions {
		if regions[i].StartLine > maxLine {
			regions[i].StartLine = maxLine
		}
		if regions[i].EndLine > maxLine {
			regions[i].EndLine = maxLine
		}
	}
	return normalizeRegions(regions)
}

func (m *FoldingManager) rebuildMergedRegions() {
	merged := make([]FoldRegion, 0, len(m.derivedRegions)+len(m.userRegions))
	merged = append(merged, m.derivedRegions...)
	merged = append(merged, m.userRegions...)
	m.mergedRegions = sortAndDedupRegions(merged)
}

// AddRegion inserts a user-created fold region, keeping the user tier
// sorted, deduplicated, and free of zero/negative-width regions.
func (m *FoldingManager) AddRegion(region FoldRegion) {
	pos := sort.Search(len(m.userRegions), func(i int) bool {
		return m.userRegions[i].StartLine >= region.StartLine
	})
	m.userRegions = append(m.userRegions, FoldRegion{})
	copy(m.userRegions[pos+1:], m.userRegions[pos:])
	m.userRegions[pos] = region
	m.userRegions = normalizeRegions(m.userRegions)
	m.rebuildMergedRegions()
}

// RemoveRegion deletes the user region exactly matching startLine/endLine.
func (m *FoldingManager) RemoveRegion(startLine, endLine int) bool {
	for i, r := range m.userRegions {
		if r.StartLine == startLine && r.EndLine == endLine {
			m.userRegions = append(m.userRegions[:i], m.userRegions[i+1:]...)
			m.rebuildMergedRegions()
			return true
		}
	}
	return false
}

// GetRegionForLine returns the merged-view region containing line, if any.
func (m *FoldingManager) GetRegionForLine(line int) (FoldRegion, bool) {
	for _, r := range m.mergedRegions {
		if r.ContainsLine(line) {
			return r, true
		}
	}
	return FoldRegion{}, false
}

func (m *FoldingManager) regionForLineMut(line int) *FoldRegion {
	for i := range m.userRegions {
		if m.userRegions[i].ContainsLine(line) {
			return &m.userRegions[i]
		}
	}
	for i := range m.derivedRegions {
		if m.derivedRegions[i].ContainsLine(line) {
			return &m.derivedRegions[i]
		}
	}
	return nil
}

// CollapseLine collapses the region (user region preferred) containing
// line. Reports whether a region was found.
func (m *FoldingManager) CollapseLine(line int) bool {
	if r := m.regionForLineMut(line); r != nil {
		r.Collapse()
		m.rebuildMergedRegions()
		return true
	}
	return false
}

// ExpandLine expands the region (user region preferred) containing line.
func (m *FoldingManager) ExpandLine(line int) bool {
	if r := m.regionForLineMut(line); r != nil {
		r.Expand()
		m.rebuildMergedRegions()
		return true
	}
	return false
}

// ToggleLine toggles the region (user region preferred) containing line.
func (m *FoldingManager) ToggleLine(line int) bool {
	if r := m.regionForLineMut(line); r != nil {
		r.Toggle()
		m.rebuildMergedRegions()
		return true
	}
	return false
}

// ToggleRegionStartingAtLine toggles the innermost region (smallest
// EndLine, user regions winning ties) whose StartLine equals startLine.
// LSP folding ranges are often nested, and a cursor sitting on a shared
// start line should fold the tightest region around it.
func (m *FoldingManager) ToggleRegionStartingAtLine(startLine int) bool {
	if len(m.mergedRegions) == 0 {
		return false
	}

	type candidate struct {
		isUser bool
		idx    int
	}
	var best *candidate
	bestEnd := int(^uint(0) >> 1)

	consider := func(regions []FoldRegion, isUser bool) {
		for i, r := range regions {
			if r.StartLine != startLine {
				continue
			}
			if r.EndLine <= r.StartLine {
				continue
			}
			if r.EndLine < bestEnd || (r.EndLine == bestEnd && best != nil && !best.isUser && isUser) {
				bestEnd = r.EndLine
				best = &candidate{isUser: isUser, idx: i}
			}
		}
	}
	consider(m.userRegions, true)
	consider(m.derivedRegions, false)

	if best == nil {
		return false
	}
	if best.isUser {
		m.userRegions[best.idx].Toggle()
	} else {
		m.derivedRegions[best.idx].Toggle()
	}
	m.rebuildMergedRegions()
	return true
}

// LogicalToVisual maps a logical line to a visual line number, or reports
// ok=false if the line is hidden inside a collapsed fold.
func (m *FoldingManager) LogicalToVisual(logicalLine, baseVisual int) (visual int, ok bool) {
	hidden := 0
	for _, r := range m.mergedRegions {
		if !r.IsCollapsed {
			continue
		}
		if logicalLine > r.StartLine && logicalLine <= r.EndLine {
			return 0, false
		}
		if logicalLine > r.EndLine {
			hidden += r.EndLine - r.StartLine
		}
	}
	return baseVisual + logicalLine - hidden, true
}

// VisualToLogical maps a visual line number back to a logical line.
func (m *FoldingManager) VisualToLogical(visualLine, baseVisual int) int {
	logical := visualLine - baseVisual
	for _, r := range m.mergedRegions {
		if !r.IsCollapsed {
			continue
		}
		hidden := r.EndLine - r.StartLine
		if logical == r.StartLine {
			return r.StartLine
		} else if logical > r.StartLine {
			logical += hidden
		}
	}
	return logical
}

// Regions returns the merged, sorted, deduplicated view of all fold regions.
func (m *FoldingManager) Regions() []FoldRegion { return m.mergedRegions }

// DerivedRegions returns the derived-tier regions.
func (m *FoldingManager) DerivedRegions() []FoldRegion { return m.derivedRegions }

// UserRegions returns the user-tier regions.
func (m *FoldingManager) UserRegions() []FoldRegion { return m.userRegions }

// Clear removes every fold region from both tiers.
func (m *FoldingManager) Clear() {
	m.derivedRegions = nil
	m.userRegions = nil
	m.mergedRegions = nil
}

// ClearDerivedRegions removes derived-tier regions, leaving user folds intact.
func (m *FoldingManager) ClearDerivedRegions() {
	m.derivedRegions = nil
	m.rebuildMergedRegions()
}

// ReplaceDerivedRegions overwrites the derived tier with a new, normalized
// set of regions.
func (m *FoldingManager) ReplaceDerivedRegions(regions []FoldRegion) {
	m.derivedRegions = normalizeRegions(append([]FoldRegion{}, regions...))
	m.rebuildMergedRegions()
}

// ExpandAll expands every fold region in both tiers.
func (m *FoldingManager) ExpandAll() {
	for i := range m.derivedRegions {
		m.derivedRegions[i].Expand()
	}
	for i := range m.userRegions {
		m.userRegions[i].Expand()
	}
	m.rebuildMergedRegions()
}

// CollapseAll collapses every fold region in both tiers.
func (m *FoldingManager) CollapseAll() {
	for i := range m.derivedRegions {
		m.derivedRegions[i].Collapse()
	}
	for i := range m.userRegions {
		m.userRegions[i].Collapse()
	}
	m.rebuildMergedRegions()
}

// ApplyLineDelta shifts fold region bounds to account for an edit that
// inserted or removed lineDelta logical lines at editLine, keeping user
// folds stable across newline insertions/deletions.
func (m *FoldingManager) ApplyLineDelta(editLine, lineDelta int) {
	if lineDelta == 0 {
		return
	}
	apply := func(regions []FoldRegion) {
		for i := range regions {
			r := &regions[i]
			switch {
			case editLine <= r.StartLine:
				r.StartLine = maxInt(r.StartLine+lineDelta, 0)
				r.EndLine = maxInt(r.EndLine+lineDelta, 0)
			case editLine <= r.EndLine:
				r.EndLine = maxInt(r.EndLine+lineDelta, r.StartLine)
			}
		}
	}
	apply(m.derivedRegions)
	apply(m.userRegions)
	m.rebuildMergedRegions()
}

// ClampToLineCount clamps every region's bounds to a document of lineCount
// lines, dropping regions that collapse to zero or negative width.
func (m *FoldingManager) ClampToLineCount(lineCount int) {
	maxLine := lineCount - 1
	if maxLine < 0 {
		maxLine = 0
	}
	m.derivedRegions = clampRegions(m.derivedRegions, maxLine)
	m.userRegions = clampRegions(m.userRegions, maxLine)
	m.rebuildMergedRegions()
}
