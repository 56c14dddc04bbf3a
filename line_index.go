package editorcore

import (
	"sort"
	"strings"
)

// LineIndex maps between character offsets and (line, column) positions in
// O(log N) using a sorted slice of line-start character offsets. The
// ecosystem has no maintained balanced-rope package; a sorted offset slice
// with binary search gives the same asymptotic lookup cost the reference
// design gets from a rope, and the executor already rebuilds the index
// wholesale on any multi-line edit (see LineIndex.Rebuild), so there is no
// need for a persistent tree structure here.
type LineIndex struct {
	text       string
	lineStarts []int // char offset of the start of each line
	charCount  int
}

// NewLineIndex builds a line index over text.
func NewLineIndex(text string) *LineIndex {
	li := &LineIndex{}
	li.Rebuild(text)
	return li
}

// Rebuild recomputes the index from scratch for the given text.
func (li *LineIndex) Rebuild(text string) {
	li.text = text
	li.lineStarts = li.lineStarts[:0]
	li.lineStarts = append(li.lineStarts, 0)
	offset := 0
	for _, r := range text {
		offset++
		if r == '\n' {
			li.lineStarts = append(li.lineStarts, offset)
		}
	}
	li.charCount = offset
}

// LineCount returns the number of logical lines; always >= 1.
func (li *LineIndex) LineCount() int {
	return len(li.lineStarts)
}

// CharCount returns the total number of characters in the document.
func (li *LineIndex) CharCount() int {
	return li.charCount
}

// ByteCount returns the total number of UTF-8 bytes in the document.
func (li *LineIndex) ByteCount() int {
	return len(li.text)
}

// GetText returns the full document text.
func (li *LineIndex) GetText() string {
	return li.text
}

func (li *LineIndex) lineStart(line int) int {
	if line < 0 {
		return li.lineStarts[0]
	}
	if line >= len(li.lineStarts) {
		return li.lineStarts[len(li.lineStarts)-1]
	}
	return li.lineStarts[line]
}

// lineCharLen returns the character length of a logical line, newline
// excluded.
func (li *LineIndex) lineCharLen(line int) int {
	start := li.lineStart(line)
	var end int
	if line+1 < len(li.lineStarts) {
		end = li.lineStarts[line+1] - 1 // exclude the '\n'
	} else {
		end = li.CharCount()
	}
	if end < start {
		end = start
	}
	return end - start
}

// GetLineText returns the text of line (0-based), newline and any trailing
// '\r' stripped.
func (li *LineIndex) GetLineText(line int) (string, bool) {
	if line < 0 || line >= len(li.lineStarts) {
		return "", false
	}
	start := li.lineStarts[line]
	length := li.lineCharLen(line)
	text := sliceRunes(li.text, start, length)
	text = strings.TrimSuffix(text, "\r")
	return text, true
}

// CharOffsetToPosition converts a character offset into a (line, column)
// position, clamped to the document bounds.
func (li *LineIndex) CharOffsetToPosition(offset int) Position {
	total := li.CharCount()
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	// Last lineStart <= offset.
	line := sort.Search(len(li.lineStarts), func(i int) bool { return li.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Position{Line: line, Column: offset - li.lineStarts[line]}
}

// PositionToCharOffset converts a (line, column) position into a character
// offset. Column is clamped to the line's length; a line past the last one
// maps to the end of the document.
func (li *LineIndex) PositionToCharOffset(line, column int) int {
	if line < 0 {
		line = 0
	}
	if line >= len(li.lineStarts) {
		return li.CharCount()
	}
	lineLen := li.lineCharLen(line)
	if column < 0 {
		column = 0
	}
	if column > lineLen {
		column = lineLen
	}
	return li.lineStarts[line] + column
}

// LineToCharOffset returns the character offset of the start of line.
func (li *LineIndex) LineToCharOffset(line int) int {
	return li.lineStart(line)
}

// Insert mirrors a single-point text insertion. Text containing '\n' is
// handled too: the line starts are recomputed after every insert.
func (li *LineIndex) Insert(offset int, text string) {
	total := li.CharCount()
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	byteOff := charIndexToByteOffset(li.text, offset)
	li.text = li.text[:byteOff] + text + li.text[byteOff:]
	li.Rebuild(li.text)
}

// Delete mirrors a single-point text deletion.
func (li *LineIndex) Delete(start, length int) {
	total := li.CharCount()
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + length
	if end > total {
		end = total
	}
	if start >= end {
		return
	}
	startByte := charIndexToByteOffset(li.text, start)
	endByte := charIndexToByteOffset(li.text, end)
	li.text = li.text[:startByte] + li.text[endByte:]
	li.Rebuild(li.text)
}
