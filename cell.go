package editorcore

import "sort"

// Cell is a single rendered character with its visual width and the
// styles applied to it, stable-sorted and deduplicated by StyleId.
type Cell struct {
	Ch     rune
	Width  int
	Styles []StyleId
}

// NewCell creates a cell with no styles applied.
func NewCell(ch rune, width int) Cell {
	return Cell{Ch: ch, Width: width}
}

// NewCellWithStyles creates a cell carrying the given styles, stable-sorted
// and deduplicated.
func NewCellWithStyles(ch rune, width int, styles []StyleId) Cell {
	return Cell{Ch: ch, Width: width, Styles: dedupeStyleIDs(styles)}
}

func dedupeStyleIDs(styles []StyleId) []StyleId {
	if len(styles) == 0 {
		return nil
	}
	sorted := append([]StyleId{}, styles...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := sorted[:0]
	for i, id := range sorted {
		if i > 0 && id == out[len(out)-1] {
			continue
		}
		out = append(out, id)
	}
	return out
}

// HeadlessLine is one visual row: either a whole logical line or the
// continuation of one produced by soft wrapping.
type HeadlessLine struct {
	LogicalLineIndex int
	IsWrappedPart    bool
	Cells            []Cell
}

// NewHeadlessLine creates an empty visual row for logicalLineIndex.
func NewHeadlessLine(logicalLineIndex int, isWrappedPart bool) HeadlessLine {
	return HeadlessLine{LogicalLineIndex: logicalLineIndex, IsWrappedPart: isWrappedPart}
}

// AddCell appends a cell to the line.
func (l *HeadlessLine) AddCell(c Cell) {
	l.Cells = append(l.Cells, c)
}

// VisualWidth sums the widths of every cell in the line.
func (l HeadlessLine) VisualWidth() int {
	w := 0
	for _, c := range l.Cells {
		w += c.Width
	}
	return w
}

// HeadlessGrid is a window of visual rows returned by the snapshot generator.
type HeadlessGrid struct {
	Lines          []HeadlessLine
	StartVisualRow int
	Count          int
}

// NewHeadlessGrid creates an empty grid for the requested visual range.
func NewHeadlessGrid(startVisualRow, count int) HeadlessGrid {
	return HeadlessGrid{StartVisualRow: startVisualRow, Count: count}
}

// AddLine appends a visual row to the grid.
func (g *HeadlessGrid) AddLine(l HeadlessLine) {
	g.Lines = append(g.Lines, l)
}

// ActualLineCount returns the number of rows actually populated, which may
// be less than Count near the end of the document.
func (g HeadlessGrid) ActualLineCount() int {
	return len(g.Lines)
}
