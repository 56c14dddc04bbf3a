package editorcore

// SnapshotSource supplies the document content the snapshot generator walks
// over. *LineIndex implements it directly.
type SnapshotSource interface {
	LineCount() int
	GetLineText(line int) (string, bool)
	LineToCharOffset(line int) int
}

// GenerateHeadlessGrid walks visible logical lines (folded ones skipped)
// and emits up to count visual rows starting at startVisualRow, applying
// tab-aware cell widths and merged style ids from styles. Collapsed fold
// start lines get their placeholder text appended as trailing cells on
// their last visual segment.
func GenerateHeadlessGrid(src SnapshotSource, layout *LayoutEngine, folding *FoldingManager, styles StyleProvider, tabWidth, startVisualRow, count int) HeadlessGrid {
	grid := NewHeadlessGrid(startVisualRow, count)
	if count == 0 {
		return grid
	}

	totalVisual := visualLineCount(layout, folding)
	if startVisualRow >= totalVisual {
		return grid
	}
	endVisual := startVisualRow + count
	if endVisual > totalVisual {
		endVisual = totalVisual
	}

	currentVisual := 0
	for logicalLine := 0; logicalLine < layout.LineCount(); logicalLine++ {
		if hidden := isLineHidden(folding, logicalLine); hidden {
			continue
		}

		lineText, ok := src.GetLineText(logicalLine)
		if !ok {
			lineText = ""
		}
		lineCharLen := countRunes(lineText)
		lineStartOffset := src.LineToCharOffset(logicalLine)
		lineLayout := layout.Layout(logicalLine)

		foldRegion, isFoldStart := foldRegionStartingAt(folding, logicalLine)

		for visualInLine := 0; visualInLine < lineLayout.VisualLineCount; visualInLine++ {
			if currentVisual >= endVisual {
				return grid
			}

			if currentVisual >= startVisualRow {
				segStartCol := 0
				if visualInLine > 0 {
					segStartCol = minInt(lineLayout.WrapPoints[visualInLine-1].CharIndex, lineCharLen)
				}
				segEndCol := lineCharLen
				if visualInLine < len(lineLayout.WrapPoints) {
					segEndCol = minInt(lineLayout.WrapPoints[visualInLine].CharIndex, lineCharLen)
				}

				hl := NewHeadlessLine(logicalLine, visualInLine > 0)
				x := segmentStartX(lineText, segStartCol, tabWidth)
				runes := []rune(lineText)
				for i := segStartCol; i < segEndCol && i < len(runes); i++ {
					ch := runes[i]
					w := charCellWidth(ch, x, tabWidth)
					x += w
					var ids []StyleId
					if styles != nil {
						ids = styles.StylesAt(lineStartOffset + i)
					}
					hl.AddCell(NewCellWithStyles(ch, w, ids))
				}

				if isFoldStart && foldRegion.IsCollapsed && visualInLine == lineLayout.VisualLineCount-1 {
					placeholderStyles := []StyleId{FoldPlaceholderStyleID}
					hl.AddCell(NewCellWithStyles(' ', charCellWidth(' ', x, tabWidth), placeholderStyles))
					x += 1
					for _, ch := range foldRegion.Placeholder {
						w := charCellWidth(ch, x, tabWidth)
						x += w
						hl.AddCell(NewCellWithStyles(ch, w, placeholderStyles))
					}
				}

				grid.AddLine(hl)
			}

			currentVisual++
		}
	}

	return grid
}

// VisualLineCount returns the number of visible visual rows, i.e. the
// count GenerateHeadlessGrid(0, total) would return.
func VisualLineCount(layout *LayoutEngine, folding *FoldingManager) int {
	return visualLineCount(layout, folding)
}

func visualLineCount(layout *LayoutEngine, folding *FoldingManager) int {
	n := 0
	for line := 0; line < layout.LineCount(); line++ {
		if isLineHidden(folding, line) {
			continue
		}
		n += layout.Layout(line).VisualLineCount
	}
	return n
}

func isLineHidden(folding *FoldingManager, line int) bool {
	if folding == nil {
		return false
	}
	for _, r := range folding.Regions() {
		if r.IsCollapsed && line > r.StartLine && line <= r.EndLine {
			return true
		}
	}
	return false
}

func foldRegionStartingAt(folding *FoldingManager, line int) (FoldRegion, bool) {
	if folding == nil {
		return FoldRegion{}, false
	}
	for _, r := range folding.Regions() {
		if r.StartLine == line {
			return r, true
		}
	}
	return FoldRegion{}, false
}

func segmentStartX(lineText string, col, tabWidth int) int {
	x := 0
	for i, ch := range []rune(lineText) {
		if i >= col {
			break
		}
		x += charCellWidth(ch, x, tabWidth)
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
