package editorcore

import "testing"

func TestNewPieceTable(t *testing.T) {
	pt := NewPieceTable("Hello")
	if got := pt.GetText(); got != "Hello" {
		t.Errorf("GetText() = %q, want %q", got, "Hello")
	}
	if got := pt.CharCount(); got != 5 {
		t.Errorf("CharCount() = %d, want 5", got)
	}
}

func TestPieceTableInsert(t *testing.T) {
	pt := NewPieceTable("Hello")
	pt.Insert(5, " World")
	if got := pt.GetText(); got != "Hello World" {
		t.Errorf("GetText() = %q, want %q", got, "Hello World")
	}
	if got := pt.CharCount(); got != 11 {
		t.Errorf("CharCount() = %d, want 11", got)
	}
}

func TestPieceTableInsertEmptyIsNoop(t *testing.T) {
	pt := NewPieceTable("Hello")
	pt.Insert(2, "")
	if got := pt.GetText(); got != "Hello" {
		t.Errorf("GetText() = %q, want unchanged %q", got, "Hello")
	}
}

func TestPieceTableInsertMiddleSplits(t *testing.T) {
	pt := NewPieceTable("Hello")
	pt.Insert(2, "XY")
	if got := pt.GetText(); got != "HeXYllo" {
		t.Errorf("GetText() = %q, want %q", got, "HeXYllo")
	}
}

func TestPieceTableDelete(t *testing.T) {
	pt := NewPieceTable("Hello World")
	pt.Delete(5, 6)
	if got := pt.GetText(); got != "Hello" {
		t.Errorf("GetText() = %q, want %q", got, "Hello")
	}
}

func TestPieceTableDeleteAcrossPieces(t *testing.T) {
	pt := NewPieceTable("Hello")
	pt.Insert(5, " World")
	pt.Insert(11, "!")
	pt.Delete(3, 6) // "lo Wor" -> "Hel" + "ld!"
	if got := pt.GetText(); got != "Held!" {
		t.Errorf("GetText() = %q, want %q", got, "Held!")
	}
}

func TestPieceTableDeleteZeroLengthNoop(t *testing.T) {
	pt := NewPieceTable("Hello")
	pt.Delete(2, 0)
	if got := pt.GetText(); got != "Hello" {
		t.Errorf("GetText() = %q, want unchanged", got)
	}
}

func TestPieceTableGetRange(t *testing.T) {
	pt := NewPieceTable("Hello World")
	if got := pt.GetRange(6, 5); got != "World" {
		t.Errorf("GetRange(6,5) = %q, want %q", got, "World")
	}
}

func TestPieceTableRoundTripAgainstReferenceString(t *testing.T) {
	pt := NewPieceTable("")
	ref := []rune{}

	ops := []struct {
		insert bool
		offset int
		text   string
		length int
	}{
		{true, 0, "hello", 0},
		{true, 5, " world", 0},
		{false, 0, "", 3},
		{true, 0, "XYZ", 0},
		{true, 2, "你好", 0},
		{false, 1, "", 4},
	}

	for _, op := range ops {
		if op.insert {
			pt.Insert(op.offset, op.text)
			ref = insertRunes(ref, op.offset, []rune(op.text))
		} else {
			pt.Delete(op.offset, op.length)
			ref = deleteRunes(ref, op.offset, op.length)
		}
	}

	if got, want := pt.GetText(), string(ref); got != want {
		t.Fatalf("round trip mismatch: got %q want %q", got, want)
	}
}

func insertRunes(s []rune, offset int, text []rune) []rune {
	if offset > len(s) {
		offset = len(s)
	}
	out := append([]rune{}, s[:offset]...)
	out = append(out, text...)
	out = append(out, s[offset:]...)
	return out
}

func deleteRunes(s []rune, start, length int) []rune {
	if start > len(s) {
		start = len(s)
	}
	end := start + length
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return s
	}
	out := append([]rune{}, s[:start]...)
	out = append(out, s[end:]...)
	return out
}

func TestPieceTableCompactPreservesText(t *testing.T) {
	pt := NewPieceTable("Hello")
	pt.Insert(5, " World")
	pt.Delete(0, 1)
	before := pt.GetText()
	pt.Compact()
	if got := pt.GetText(); got != before {
		t.Errorf("Compact changed text: got %q want %q", got, before)
	}
}

func TestPieceTableAutoGC(t *testing.T) {
	pt := NewPieceTable("x")
	pt.SetGCThreshold(3)
	pt.Insert(1, "a")
	pt.Insert(2, "b")
	before := pt.GetText()
	pt.Insert(3, "c") // crosses threshold, triggers automatic compaction
	if got := pt.GetText(); got != before+"c" {
		t.Errorf("GetText() = %q, want %q", got, before+"c")
	}
}
