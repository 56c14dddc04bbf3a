package editorcore

import "github.com/unilibs/uniwidth"

// runeWidth returns the display width of r: 2 for wide characters (CJK,
// fullwidth forms, emoji), 1 for normal characters, 0 for zero-width marks.
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// StringWidth returns the total display width of s (sum of rune widths),
// ignoring tab expansion.
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}

// tabWidthAt returns the cell width of a tab character starting at cell-X x
// given tabWidth, per spec: tab_width - (x mod tab_width), never less than 1.
func tabWidthAt(x, tabWidth int) int {
	if tabWidth <= 0 {
		return 1
	}
	w := tabWidth - (x % tabWidth)
	if w < 1 {
		w = 1
	}
	return w
}

// charCellWidth returns the display width of ch at cell-X x, honoring tab
// expansion.
func charCellWidth(ch rune, x, tabWidth int) int {
	if ch == '\t' {
		return tabWidthAt(x, tabWidth)
	}
	return runeWidth(ch)
}
