package editorcore

import (
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
)

// SearchOptions controls how FindAll/FindNext/FindPrev/ReplaceX match text.
type SearchOptions struct {
	CaseSensitive bool
	WholeWord     bool
	Regex         bool
}

// SearchMatch is a single match expressed as a half-open character range,
// plus the capture groups when the match came from a regex query (used to
// expand replacement capture references).
type SearchMatch struct {
	Start  int
	End    int
	Groups []string
}

var foldCaser = cases.Fold()

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// findAll returns every non-overlapping match of query in text, left to
// right, as char offsets.
func findAll(text, query string, opts SearchOptions) ([]SearchMatch, error) {
	if opts.Regex {
		return findAllRegex(text, query, opts)
	}
	return findAllLiteral(text, query, opts), nil
}

func findAllLiteral(text, query string, opts SearchOptions) []SearchMatch {
	if query == "" {
		return nil
	}
	runes := []rune(text)
	queryRunes := []rune(query)
	haystack := runes
	needle := queryRunes
	if !opts.CaseSensitive {
		haystack = []rune(foldCaser.String(text))
		needle = []rune(foldCaser.String(query))
		if len(haystack) != len(runes) {
			// Case folding rarely changes rune count, but guard against it by
			// falling back to a byte-oriented scan over the folded strings.
			return findAllLiteralFoldedFallback(text, query)
		}
	}

	var matches []SearchMatch
	i := 0
	for i+len(needle) <= len(haystack) {
		if runesEqual(haystack[i:i+len(needle)], needle) {
			start, end := i, i+len(queryRunes)
			if !opts.WholeWord || isWholeWordMatch(runes, start, end) {
				matches = append(matches, SearchMatch{Start: start, End: end})
				i = end
				continue
			}
		}
		i++
	}
	return matches
}

func findAllLiteralFoldedFallback(text, query string) []SearchMatch {
	folded := foldCaser.String(text)
	foldedQuery := foldCaser.String(query)
	var matches []SearchMatch
	searchFrom := 0
	for {
		idx := strings.Index(folded[searchFrom:], foldedQuery)
		if idx < 0 {
			break
		}
		byteStart := searchFrom + idx
		byteEnd := byteStart + len(foldedQuery)
		matches = append(matches, SearchMatch{
			Start: countRunes(folded[:byteStart]),
			End:   countRunes(folded[:byteEnd]),
		})
		searchFrom = byteEnd
	}
	return matches
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isWholeWordMatch(runes []rune, start, end int) bool {
	if start > 0 && isWordRune(runes[start-1]) {
		return false
	}
	if end < len(runes) && isWordRune(runes[end]) {
		return false
	}
	return true
}

func findAllRegex(text, query string, opts SearchOptions) ([]SearchMatch, error) {
	options := regexp2.Multiline
	if !opts.CaseSensitive {
		options |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(query, options)
	if err != nil {
		return nil, err
	}

	runes := []rune(text)
	var matches []SearchMatch
	m, err := re.FindStringMatch(text)
	if err != nil {
		return nil, err
	}
	for m != nil {
		// regexp2 reports Index and Length in runes, i.e. char offsets.
		start := m.Index
		end := m.Index + m.Length
		if !opts.WholeWord || isWholeWordMatch(runes, start, end) {
			groups := make([]string, len(m.Groups()))
			for i, g := range m.Groups() {
				groups[i] = g.String()
			}
			matches = append(matches, SearchMatch{Start: start, End: end, Groups: groups})
		}
		m, err = re.FindNextMatch(m)
		if err != nil {
			return nil, err
		}
	}
	return matches, nil
}

// findNext returns the first match at or after fromOffset. The reference
// design never cycles: reaching the end of the document without a match
// reports ok=false rather than wrapping back to the start.
func findNext(text, query string, fromOffset int, opts SearchOptions) (SearchMatch, bool, error) {
	matches, err := findAll(text, query, opts)
	if err != nil {
		return SearchMatch{}, false, err
	}
	for _, m := range matches {
		if m.Start >= fromOffset {
			return m, true, nil
		}
	}
	return SearchMatch{}, false, nil
}

// findPrev returns the last match starting before fromOffset.
func findPrev(text, query string, fromOffset int, opts SearchOptions) (SearchMatch, bool, error) {
	matches, err := findAll(text, query, opts)
	if err != nil {
		return SearchMatch{}, false, err
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Start < fromOffset {
			return matches[i], true, nil
		}
	}
	return SearchMatch{}, false, nil
}

// expandReplacement substitutes $1, $2, ... capture references in
// replacement with groups captured by a regex match. Non-regex replacements
// are returned unchanged.
func expandReplacement(replacement string, groups []string) string {
	if len(groups) == 0 {
		return replacement
	}
	var b strings.Builder
	runes := []rune(replacement)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '$' && i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
			j := i + 1
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			idx := 0
			for _, d := range runes[i+1 : j] {
				idx = idx*10 + int(d-'0')
			}
			if idx < len(groups) {
				b.WriteString(groups[idx])
			}
			i = j - 1
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
