package editorcore

import "sort"

// WrapMode selects whether a logical line may be split across multiple
// visual rows.
type WrapMode int

const (
	// WrapNone disables soft wrapping: one logical line is one visual row.
	WrapNone WrapMode = iota
	// WrapSoft enables soft wrapping at the viewport width.
	WrapSoft
)

// WrapPoint marks where a logical line is split into another visual row.
type WrapPoint struct {
	CharIndex  int
	ByteOffset int
}

// LineLayout holds the wrap points computed for one logical line.
type LineLayout struct {
	VisualLineCount int
	WrapPoints      []WrapPoint
}

func newLineLayout() LineLayout {
	return LineLayout{VisualLineCount: 1}
}

// LayoutEngine computes soft-wrap points for each logical line given a
// viewport width, tab width, and wrap policy.
type LayoutEngine struct {
	viewportWidth int
	tabWidth      int
	wrapMode      WrapMode
	wrapIndent    int

	lineTexts []string
	layouts   []LineLayout
}

// NewLayoutEngine creates a layout engine with the given viewport width.
// tabWidth defaults to 8 and wrap mode defaults to WrapSoft.
func NewLayoutEngine(viewportWidth int) *LayoutEngine {
	return &LayoutEngine{
		viewportWidth: viewportWidth,
		tabWidth:      8,
		wrapMode:      WrapSoft,
	}
}

// SetViewportWidth updates the viewport width and recomputes every layout
// if the value changed.
func (le *LayoutEngine) SetViewportWidth(width int) {
	if le.viewportWidth != width {
		le.viewportWidth = width
		le.recalculateAll()
	}
}

// ViewportWidth returns the current viewport width.
func (le *LayoutEngine) ViewportWidth() int { return le.viewportWidth }

// SetTabWidth updates the tab width and recomputes every layout if changed.
func (le *LayoutEngine) SetTabWidth(width int) {
	if le.tabWidth != width {
		le.tabWidth = width
		le.recalculateAll()
	}
}

// TabWidth returns the current tab width.
func (le *LayoutEngine) TabWidth() int { return le.tabWidth }

// SetWrapMode updates the wrap mode and recomputes every layout if changed.
func (le *LayoutEngine) SetWrapMode(mode WrapMode) {
	if le.wrapMode != mode {
		le.wrapMode = mode
		le.recalculateAll()
	}
}

// WrapMode returns the current wrap mode.
func (le *LayoutEngine) WrapMode() WrapMode { return le.wrapMode }

// SetWrapIndent updates the wrap indent and recomputes every layout if
// changed.
func (le *LayoutEngine) SetWrapIndent(indent int) {
	if le.wrapIndent != indent {
		le.wrapIndent = indent
		le.recalculateAll()
	}
}

// WrapIndent returns the current wrap indent.
func (le *LayoutEngine) WrapIndent() int { return le.wrapIndent }

// effectiveWidth returns the viewport width to lay out against, accounting
// for wrap mode: WrapNone behaves as an unbounded line (no wrap points).
func (le *LayoutEngine) effectiveWidth() int {
	if le.wrapMode == WrapNone {
		return 0
	}
	return le.viewportWidth
}

// calculateWrapPoints computes wrap points for text at the given viewport
// width and tab width. viewportWidth == 0 produces no wrap points.
func calculateWrapPoints(text string, viewportWidth, tabWidth, wrapIndent int) []WrapPoint {
	if viewportWidth <= 0 {
		return nil
	}

	var points []WrapPoint
	x := 0
	runes := []rune(text)
	byteOffsets := make([]int, len(runes)+1)
	{
		off := 0
		for i, r := range runes {
			byteOffsets[i] = off
			off += len(string(r))
		}
		byteOffsets[len(runes)] = off
	}

	segmentBudget := viewportWidth
	for i, ch := range runes {
		w := charCellWidth(ch, x, tabWidth)

		if x+w > segmentBudget {
			points = append(points, WrapPoint{CharIndex: i, ByteOffset: byteOffsets[i]})
			x = wrapIndent
			segmentBudget = viewportWidth
			w = charCellWidth(ch, x, tabWidth)
		}
		x += w

		if x == segmentBudget && i+1 < len(runes) {
			points = append(points, WrapPoint{CharIndex: i + 1, ByteOffset: byteOffsets[i+1]})
			x = wrapIndent
			segmentBudget = viewportWidth
		}
	}

	return points
}

func layoutForLine(text string, viewportWidth, tabWidth, wrapIndent int) LineLayout {
	wp := calculateWrapPoints(text, viewportWidth, tabWidth, wrapIndent)
	return LineLayout{VisualLineCount: len(wp) + 1, WrapPoints: wp}
}

// SetLineTexts replaces every logical line's text and recomputes all
// layouts.
func (le *LayoutEngine) SetLineTexts(lines []string) {
	le.lineTexts = append([]string{}, lines...)
	le.recalculateAll()
}

// UpdateLine recomputes the layout for a single logical line in place. The
// caller guarantees the edit did not cross a newline.
func (le *LayoutEngine) UpdateLine(line int, text string) {
	for line >= len(le.lineTexts) {
		le.lineTexts = append(le.lineTexts, "")
		le.layouts = append(le.layouts, newLineLayout())
	}
	le.lineTexts[line] = text
	le.layouts[line] = layoutForLine(text, le.effectiveWidth(), le.tabWidth, le.wrapIndent)
}

func (le *LayoutEngine) recalculateAll() {
	le.layouts = make([]LineLayout, len(le.lineTexts))
	w := le.effectiveWidth()
	for i, t := range le.lineTexts {
		le.layouts[i] = layoutForLine(t, w, le.tabWidth, le.wrapIndent)
	}
}

// Layout returns the computed layout for logical line, or a single-visual-
// line default if out of range.
func (le *LayoutEngine) Layout(line int) LineLayout {
	if line < 0 || line >= len(le.layouts) {
		return newLineLayout()
	}
	return le.layouts[line]
}

// LineCount returns the number of logical lines currently laid out.
func (le *LayoutEngine) LineCount() int { return len(le.layouts) }

// LogicalToVisual converts a (line, column) position into a (visualRow,
// xInSegment) pair relative to the start of line's first visual row.
func (le *LayoutEngine) LogicalToVisual(line, column int) (visualRow, x int) {
	layout := le.Layout(line)
	text := ""
	if line >= 0 && line < len(le.lineTexts) {
		text = le.lineTexts[line]
	}
	runes := []rune(text)

	segIdx := sort.Search(len(layout.WrapPoints), func(i int) bool {
		return layout.WrapPoints[i].CharIndex > column
	})
	segStartCol := 0
	if segIdx > 0 {
		segStartCol = layout.WrapPoints[segIdx-1].CharIndex
	}

	xPos := 0
	if segIdx > 0 {
		xPos = le.wrapIndent
	}
	for i := segStartCol; i < column && i < len(runes); i++ {
		xPos += charCellWidth(runes[i], xPos, le.tabWidth)
	}
	return segIdx, xPos
}

// VisualToLogical converts a 0-based visual row (within the document, after
// expanding every logical line's wraps) into a (logicalLine,
// visualInLogical) pair.
func (le *LayoutEngine) VisualToLogical(visualRow int) (logicalLine, visualInLogical int) {
	remaining := visualRow
	for i, layout := range le.layouts {
		if remaining < layout.VisualLineCount {
			return i, remaining
		}
		remaining -= layout.VisualLineCount
	}
	if len(le.layouts) == 0 {
		return 0, 0
	}
	return len(le.layouts) - 1, le.layouts[len(le.layouts)-1].VisualLineCount - 1
}

// TotalVisualLines sums VisualLineCount across all logical lines.
func (le *LayoutEngine) TotalVisualLines() int {
	n := 0
	for _, l := range le.layouts {
		n += l.VisualLineCount
	}
	return n
}
