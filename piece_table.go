package editorcore

import "strings"

// bufferKind identifies which backing buffer a Piece references.
type bufferKind uint8

const (
	bufferOriginal bufferKind = iota
	bufferAdd
)

// Piece references a byte-slice fragment of one of the PieceTable's two
// buffers. A document's text is the concatenation of its pieces' slices, in
// order.
type Piece struct {
	buffer    bufferKind
	start     int // byte offset into the buffer
	byteLen   int
	charCount int
}

// defaultGCThreshold is the number of mutating operations after which a
// PieceTable compacts its add buffer automatically. The original
// implementation uses 1000; SetGCThreshold overrides it.
const defaultGCThreshold = 1000

// PieceTable is an append-only text storage structure: edits never mutate
// the original document bytes, they only append to an add buffer and
// splice the piece list that describes how to reassemble the text.
type PieceTable struct {
	original []byte
	add      []byte
	pieces   []Piece

	opCount     int
	gcThreshold int
}

// NewPieceTable creates a PieceTable seeded with text.
func NewPieceTable(text string) *PieceTable {
	pt := &PieceTable{gcThreshold: defaultGCThreshold}
	if len(text) > 0 {
		pt.original = []byte(text)
		pt.pieces = []Piece{{
			buffer:    bufferOriginal,
			start:     0,
			byteLen:   len(pt.original),
			charCount: countRunes(text),
		}}
	}
	return pt
}

// SetGCThreshold configures how many mutating operations trigger an
// automatic Compact.
func (pt *PieceTable) SetGCThreshold(n int) {
	pt.gcThreshold = n
}

func countRunes(s string) int {
	return len([]rune(s))
}

// CharCount returns the total number of characters in the document.
func (pt *PieceTable) CharCount() int {
	n := 0
	for _, p := range pt.pieces {
		n += p.charCount
	}
	return n
}

// ByteCount returns the total number of UTF-8 bytes in the document.
func (pt *PieceTable) ByteCount() int {
	n := 0
	for _, p := range pt.pieces {
		n += p.byteLen
	}
	return n
}

func (pt *PieceTable) bufferFor(k bufferKind) []byte {
	if k == bufferOriginal {
		return pt.original
	}
	return pt.add
}

// pieceText returns the decoded string slice a piece refers to.
func (pt *PieceTable) pieceText(p Piece) string {
	return string(pt.bufferFor(p.buffer)[p.start : p.start+p.byteLen])
}

// findPieceAtOffset locates the piece containing char offset, returning its
// index and the char offset within that piece. If offset lands exactly on a
// piece boundary, the piece to the left is returned with an in-piece offset
// equal to its length (offset 0 returns the first piece at in-piece 0).
func (pt *PieceTable) findPieceAtOffset(offset int) (int, int, bool) {
	cur := 0
	for i, p := range pt.pieces {
		next := cur + p.charCount
		if offset <= next {
			return i, offset - cur, true
		}
		cur = next
	}
	if len(pt.pieces) == 0 {
		return 0, 0, false
	}
	return len(pt.pieces) - 1, pt.pieces[len(pt.pieces)-1].charCount, true
}

// splitPiece splits p at the given in-piece character offset into a
// (left, right) pair of pieces referencing the same buffer.
func (pt *PieceTable) splitPiece(p Piece, charOffset int) (Piece, Piece) {
	text := pt.pieceText(p)
	byteOffset := charIndexToByteOffset(text, charOffset)

	left := Piece{buffer: p.buffer, start: p.start, byteLen: byteOffset, charCount: charOffset}
	right := Piece{
		buffer:    p.buffer,
		start:     p.start + byteOffset,
		byteLen:   p.byteLen - byteOffset,
		charCount: p.charCount - charOffset,
	}
	return left, right
}

// charIndexToByteOffset returns the UTF-8 byte offset of the charIndex-th
// rune in s, or len(s) if charIndex is out of range.
func charIndexToByteOffset(s string, charIndex int) int {
	if charIndex <= 0 {
		return 0
	}
	i := 0
	for byteOff := range s {
		if i == charIndex {
			return byteOff
		}
		i++
	}
	return len(s)
}

// Insert inserts text at char offset, clamped to [0, CharCount()]. Inserting
// empty text is a no-op.
func (pt *PieceTable) Insert(offset int, text string) {
	if text == "" {
		return
	}
	if offset < 0 {
		offset = 0
	}
	if max := pt.CharCount(); offset > max {
		offset = max
	}

	addStart := len(pt.add)
	pt.add = append(pt.add, text...)
	newPiece := Piece{buffer: bufferAdd, start: addStart, byteLen: len(text), charCount: countRunes(text)}

	idx, inPiece, ok := pt.findPieceAtOffset(offset)
	switch {
	case !ok:
		pt.pieces = append(pt.pieces, newPiece)
	case inPiece == 0:
		pt.pieces = insertPieceAt(pt.pieces, idx, newPiece)
	case inPiece == pt.pieces[idx].charCount:
		pt.pieces = insertPieceAt(pt.pieces, idx+1, newPiece)
	default:
		left, right := pt.splitPiece(pt.pieces[idx], inPiece)
		replacement := []Piece{left, newPiece, right}
		pt.pieces = spliceRange(pt.pieces, idx, idx+1, replacement)
	}

	pt.mergeAdjacent()
	pt.checkGC()
}

func insertPieceAt(pieces []Piece, idx int, p Piece) []Piece {
	pieces = append(pieces, Piece{})
	copy(pieces[idx+1:], pieces[idx:])
	pieces[idx] = p
	return pieces
}

// spliceRange replaces pieces[lo:hi] with replacement, returning the new
// slice (mirrors Rust's Vec::splice used throughout the reference design).
func spliceRange(pieces []Piece, lo, hi int, replacement []Piece) []Piece {
	tail := append([]Piece{}, pieces[hi:]...)
	out := append(pieces[:lo], replacement...)
	return append(out, tail...)
}

func (pt *PieceTable) canMerge(a, b Piece) bool {
	return a.buffer == bufferAdd && b.buffer == bufferAdd && a.start+a.byteLen == b.start
}

func (pt *PieceTable) mergeAdjacent() {
	i := 0
	for i+1 < len(pt.pieces) {
		a, b := pt.pieces[i], pt.pieces[i+1]
		if pt.canMerge(a, b) {
			merged := Piece{buffer: bufferAdd, start: a.start, byteLen: a.byteLen + b.byteLen, charCount: a.charCount + b.charCount}
			pt.pieces = spliceRange(pt.pieces, i, i+2, []Piece{merged})
			continue
		}
		i++
	}
}

// Delete removes length characters starting at char offset start. Offsets
// are clamped; a zero length is a no-op.
func (pt *PieceTable) Delete(start, length int) {
	if length <= 0 {
		return
	}
	if start < 0 {
		start = 0
	}
	total := pt.CharCount()
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

	startIdx, startInPiece, startOK := pt.findPieceAtOffset(start)
	endIdx, endInPiece, endOK := pt.findPieceAtOffset(end)

	switch {
	case startOK && endOK && startIdx == endIdx:
		p := pt.pieces[startIdx]
		switch {
		case startInPiece == 0 && endInPiece == p.charCount:
			pt.pieces = spliceRange(pt.pieces, startIdx, startIdx+1, nil)
		case startInPiece == 0:
			_, right := pt.splitPiece(p, endInPiece)
			pt.pieces[startIdx] = right
		case endInPiece == p.charCount:
			left, _ := pt.splitPiece(p, startInPiece)
			pt.pieces[startIdx] = left
		default:
			left, temp := pt.splitPiece(p, startInPiece)
			_, right := pt.splitPiece(temp, endInPiece-startInPiece)
			pt.pieces = spliceRange(pt.pieces, startIdx, startIdx+1, []Piece{left, right})
		}
	case startOK && endOK:
		startPiece := pt.pieces[startIdx]
		endPiece := pt.pieces[endIdx]
		var replacement []Piece
		if startInPiece > 0 {
			left, _ := pt.splitPiece(startPiece, startInPiece)
			replacement = append(replacement, left)
		}
		if endInPiece < endPiece.charCount {
			_, right := pt.splitPiece(endPiece, endInPiece)
			replacement = append(replacement, right)
		}
		pt.pieces = spliceRange(pt.pieces, startIdx, endIdx+1, replacement)
	case startOK:
		p := pt.pieces[startIdx]
		if startInPiece == 0 {
			pt.pieces = pt.pieces[:startIdx]
		} else {
			left, _ := pt.splitPiece(p, startInPiece)
			pt.pieces = append(pt.pieces[:startIdx], left)
		}
	}

	pt.checkGC()
}

// GetText returns the full document text.
func (pt *PieceTable) GetText() string {
	var b strings.Builder
	for _, p := range pt.pieces {
		b.WriteString(pt.pieceText(p))
	}
	return b.String()
}

// GetRange returns the text of length characters starting at char offset
// start.
func (pt *PieceTable) GetRange(start, length int) string {
	var b strings.Builder
	cur := 0
	end := start + length
	for _, p := range pt.pieces {
		pieceEnd := cur + p.charCount
		if cur >= end {
			break
		}
		if pieceEnd > start {
			text := pt.pieceText(p)
			skip := start - cur
			if skip < 0 {
				skip = 0
			}
			var take int
			if pieceEnd > end {
				take = end - maxInt(cur, start)
			} else {
				take = p.charCount - skip
			}
			b.WriteString(sliceRunes(text, skip, take))
		}
		cur = pieceEnd
	}
	return b.String()
}

func sliceRunes(s string, skip, take int) string {
	if take <= 0 {
		return ""
	}
	i := 0
	startByte := -1
	endByte := len(s)
	for byteOff := range s {
		if i == skip {
			startByte = byteOff
		}
		if i == skip+take {
			endByte = byteOff
			break
		}
		i++
	}
	if startByte == -1 {
		if skip >= i {
			return ""
		}
		startByte = len(s)
	}
	return s[startByte:endByte]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Compact rebuilds the add buffer to contain only bytes still referenced by
// a piece, remapping piece offsets accordingly. get_text() is unchanged by
// compaction.
func (pt *PieceTable) Compact() {
	type rng struct{ start, end int }
	var ranges []rng
	for _, p := range pt.pieces {
		if p.buffer == bufferAdd {
			ranges = append(ranges, rng{p.start, p.start + p.byteLen})
		}
	}
	if len(ranges) == 0 {
		pt.add = nil
		pt.opCount = 0
		return
	}

	for i := 1; i < len(ranges); i++ {
		for j := i; j > 0 && ranges[j-1].start > ranges[j].start; j-- {
			ranges[j-1], ranges[j] = ranges[j], ranges[j-1]
		}
	}

	merged := []rng{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.start <= last.end {
			if r.end > last.end {
				last.end = r.end
			}
		} else {
			merged = append(merged, r)
		}
	}

	mappings := make([]mapping, 0, len(merged))
	newAdd := make([]byte, 0, len(pt.add))
	for _, r := range merged {
		mappings = append(mappings, mapping{r.start, r.end, len(newAdd)})
		newAdd = append(newAdd, pt.add[r.start:r.end]...)
	}

	for i := range pt.pieces {
		p := &pt.pieces[i]
		if p.buffer != bufferAdd {
			continue
		}
		idx := searchMappings(mappings, p.start)
		m := mappings[idx]
		if p.start < m.oldEnd {
			p.start = m.newStart + (p.start - m.oldStart)
		}
	}

	pt.add = newAdd
	pt.opCount = 0
}

// mapping records where a surviving add-buffer range moved to during Compact.
type mapping struct{ oldStart, oldEnd, newStart int }

func searchMappings(mappings []mapping, start int) int {
	lo, hi := 0, len(mappings)
	for lo < hi {
		mid := (lo + hi) / 2
		if mappings[mid].oldStart <= start {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0
	}
	return lo - 1
}

func (pt *PieceTable) checkGC() {
	pt.opCount++
	if pt.gcThreshold > 0 && pt.opCount >= pt.gcThreshold {
		pt.Compact()
	}
}
