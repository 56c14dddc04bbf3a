package editorcore

import "sort"

// normalizeSelections sorts selections by their minimum offset, drops exact
// duplicates, and merges overlapping ranges, returning the normalized slice
// along with the index of the selection that was `selections[primaryIndex]`
// before normalization.
func normalizeSelections(li *LineIndex, selections []Selection, primaryIndex int) ([]Selection, int) {
	if len(selections) == 0 {
		return selections, 0
	}
	if primaryIndex < 0 || primaryIndex >= len(selections) {
		primaryIndex = 0
	}
	primaryMarker := selections[primaryIndex]

	type tagged struct {
		sel Selection
		min int
	}
	minOffset := func(s Selection) int {
		a := li.PositionToCharOffset(s.Start.Line, s.Start.Column)
		b := li.PositionToCharOffset(s.End.Line, s.End.Column)
		if a < b {
			return a
		}
		return b
	}
	maxOffset := func(s Selection) int {
		a := li.PositionToCharOffset(s.Start.Line, s.Start.Column)
		b := li.PositionToCharOffset(s.End.Line, s.End.Column)
		if a > b {
			return a
		}
		return b
	}

	tag := make([]tagged, len(selections))
	for i, s := range selections {
		tag[i] = tagged{sel: s, min: minOffset(s)}
	}
	sort.SliceStable(tag, func(i, j int) bool { return tag[i].min < tag[j].min })

	var merged []Selection
	primaryNewIndex := 0
	for _, t := range tag {
		if len(merged) > 0 {
			last := merged[len(merged)-1]
			lastMax := maxOffset(last)
			lastMin := minOffset(last)
			curMin := t.min
			curMax := maxOffset(t.sel)
			if curMin >= lastMin && curMax <= lastMax {
				// fully contained duplicate/sub-range
				if t.sel == primaryMarker {
					primaryNewIndex = len(merged) - 1
				}
				continue
			}
			if curMin <= lastMax {
				start := last.Start
				if curMin < lastMin {
					start = t.sel.Start
				}
				end := t.sel.End
				if curMax < lastMax {
					end = last.End
				}
				mergedSel := normalizeSelection(start, end)
				merged[len(merged)-1] = mergedSel
				if t.sel == primaryMarker {
					primaryNewIndex = len(merged) - 1
				}
				continue
			}
		}
		merged = append(merged, t.sel)
		if t.sel == primaryMarker {
			primaryNewIndex = len(merged) - 1
		}
	}
	return merged, primaryNewIndex
}
