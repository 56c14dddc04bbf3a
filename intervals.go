package editorcore

import "sort"

// StyleId identifies a single visual style (e.g. a syntax scope, a
// diagnostic severity, or a search highlight).
type StyleId uint32

// Built-in style ids reserved by the kernel itself, outside any style
// layer's own id space.
const (
	// FoldPlaceholderStyleID is the style applied to a fold's placeholder text.
	FoldPlaceholderStyleID StyleId = 0x0300_0001

	// DocumentHighlightTextStyleID marks an LSP documentHighlight of kind Text.
	DocumentHighlightTextStyleID StyleId = 0x0400_0001
	// DocumentHighlightReadStyleID marks an LSP documentHighlight of kind Read.
	DocumentHighlightReadStyleID StyleId = 0x0400_0002
	// DocumentHighlightWriteStyleID marks an LSP documentHighlight of kind Write.
	DocumentHighlightWriteStyleID StyleId = 0x0400_0003
)

// StyleLayerId distinguishes independent sources of style intervals (LSP
// semantic tokens, regex syntax highlighting, diagnostics, ...) so that one
// source's intervals can be replaced or cleared without touching another's.
type StyleLayerId uint32

// Built-in style layers.
const (
	// StyleLayerSemanticTokens is the recommended layer for LSP semanticTokens.
	StyleLayerSemanticTokens StyleLayerId = 1
	// StyleLayerSimpleSyntax is for lightweight regex-based highlighting.
	StyleLayerSimpleSyntax StyleLayerId = 2
	// StyleLayerSublimeSyntax is for .sublime-syntax based highlighting.
	StyleLayerSublimeSyntax StyleLayerId = 3
	// StyleLayerDiagnostics is for LSP diagnostics overlays.
	StyleLayerDiagnostics StyleLayerId = 4
	// StyleLayerDocumentHighlights is for LSP documentHighlight overlays.
	StyleLayerDocumentHighlights StyleLayerId = 5
)

// Interval is a half-open [Start, End) range tagged with a style.
type Interval struct {
	Start   int
	End     int
	StyleID StyleId
}

// NewInterval creates an interval with the given bounds and style.
func NewInterval(start, end int, styleID StyleId) Interval {
	return Interval{Start: start, End: end, StyleID: styleID}
}

// Contains reports whether pos falls within [Start, End).
func (iv Interval) Contains(pos int) bool {
	return iv.Start <= pos && pos < iv.End
}

// Overlaps reports whether iv and other share any position.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// IntervalTree manages style intervals in a vector sorted by start
// position, with a prefix-max-end array for pruning point/range queries.
// Query complexity is O(log n + k) where k is the number of results;
// insertion is O(n) to keep the vector sorted.
type IntervalTree struct {
	intervals    []Interval
	prefixMaxEnd []int
}

// NewIntervalTree creates an empty interval tree.
func NewIntervalTree() *IntervalTree {
	return &IntervalTree{}
}

func (t *IntervalTree) rebuildPrefixMaxEndFrom(startIdx int) {
	if len(t.intervals) == 0 {
		t.prefixMaxEnd = nil
		return
	}
	if len(t.prefixMaxEnd) != len(t.intervals) {
		grown := make([]int, len(t.intervals))
		copy(grown, t.prefixMaxEnd)
		t.prefixMaxEnd = grown
	}

	maxEnd := 0
	if startIdx > 0 {
		maxEnd = t.prefixMaxEnd[startIdx-1]
	}
	for idx := startIdx; idx < len(t.intervals); idx++ {
		if t.intervals[idx].End > maxEnd {
			maxEnd = t.intervals[idx].End
		}
		t.prefixMaxEnd[idx] = maxEnd
	}
}

func (t *IntervalTree) rebuildPrefixMaxEnd() {
	t.rebuildPrefixMaxEndFrom(0)
}

// Insert adds an interval, keeping the internal vector sorted by Start.
func (t *IntervalTree) Insert(iv Interval) {
	pos := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].Start >= iv.Start
	})
	t.intervals = append(t.intervals, Interval{})
	copy(t.intervals[pos+1:], t.intervals[pos:])
	t.intervals[pos] = iv

	t.prefixMaxEnd = append(t.prefixMaxEnd, 0)
	copy(t.prefixMaxEnd[pos+1:], t.prefixMaxEnd[pos:])
	t.rebuildPrefixMaxEndFrom(pos)
}

// Remove deletes the interval exactly matching start, end, styleID. It
// reports whether a matching interval was found.
func (t *IntervalTree) Remove(start, end int, styleID StyleId) bool {
	for pos, iv := range t.intervals {
		if iv.Start == start && iv.End == end && iv.StyleID == styleID {
			t.intervals = append(t.intervals[:pos], t.intervals[pos+1:]...)
			t.prefixMaxEnd = append(t.prefixMaxEnd[:pos], t.prefixMaxEnd[pos+1:]...)
			if pos < len(t.intervals) {
				t.rebuildPrefixMaxEndFrom(pos)
			}
			return true
		}
	}
	return false
}

// QueryPoint returns every interval containing pos.
func (t *IntervalTree) QueryPoint(pos int) []Interval {
	if len(t.intervals) == 0 {
		return nil
	}

	var result []Interval
	searchKey := pos + 1
	idx := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].Start >= searchKey
	})

	for i := idx - 1; i >= 0; i-- {
		if t.prefixMaxEnd[i] <= pos {
			break
		}
		if t.intervals[i].Contains(pos) {
			result = append(result, t.intervals[i])
		}
	}
	return result
}

// QueryRange returns every interval overlapping [start, end).
func (t *IntervalTree) QueryRange(start, end int) []Interval {
	if len(t.intervals) == 0 || start >= end {
		return nil
	}

	var result []Interval
	searchEnd := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].Start >= end
	})
	if searchEnd == 0 {
		return result
	}

	scanStart := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].Start >= start
	})
	if scanStart > searchEnd {
		scanStart = searchEnd
	}
	for scanStart > 0 && t.prefixMaxEnd[scanStart-1] > start {
		scanStart--
	}

	for _, iv := range t.intervals[scanStart:searchEnd] {
		if iv.Start < end && iv.End > start {
			result = append(result, iv)
		}
	}
	return result
}

// Clear removes every interval.
func (t *IntervalTree) Clear() {
	t.intervals = nil
	t.prefixMaxEnd = nil
}

// Len returns the number of intervals stored.
func (t *IntervalTree) Len() int { return len(t.intervals) }

// IsEmpty reports whether the tree holds no intervals.
func (t *IntervalTree) IsEmpty() bool { return len(t.intervals) == 0 }

// UpdateForInsertion shifts interval bounds to account for inserting delta
// characters at pos: intervals entirely after pos shift by delta; an
// interval spanning pos grows by delta.
func (t *IntervalTree) UpdateForInsertion(pos, delta int) {
	for i := range t.intervals {
		iv := &t.intervals[i]
		switch {
		case iv.Start >= pos:
			iv.Start += delta
			iv.End += delta
		case iv.End > pos:
			iv.End += delta
		}
	}
	t.rebuildPrefixMaxEnd()
}

// UpdateForDeletion shifts and shrinks interval bounds to account for
// deleting [start, end), dropping any interval entirely within the
// deleted range.
func (t *IntervalTree) UpdateForDeletion(start, end int) {
	delta := end - start
	toRemove := make([]int, 0)

	for idx := range t.intervals {
		iv := &t.intervals[idx]
		switch {
		case iv.End <= start:
			// unaffected
		case iv.Start >= end:
			iv.Start -= delta
			iv.End -= delta
		case iv.Start >= start && iv.End <= end:
			toRemove = append(toRemove, idx)
		case iv.Start < start && iv.End > end:
			iv.End -= delta
		case iv.Start < start:
			iv.End = start
		default:
			iv.Start = start
			iv.End -= delta
		}
	}

	for i := len(toRemove) - 1; i >= 0; i-- {
		idx := toRemove[i]
		t.intervals = append(t.intervals[:idx], t.intervals[idx+1:]...)
	}
	t.rebuildPrefixMaxEnd()
}
