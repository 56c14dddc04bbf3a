package editorcore

import "testing"

func TestFindAllLiteral(t *testing.T) {
	matches, err := findAll("the cat sat on the mat", "at", SearchOptions{CaseSensitive: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d: %+v", len(matches), matches)
	}
}

func TestFindAllCaseInsensitive(t *testing.T) {
	matches, err := findAll("Hello hello HELLO", "hello", SearchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 case-insensitive matches, got %d", len(matches))
	}
}

func TestFindAllWholeWord(t *testing.T) {
	matches, err := findAll("cat category cat", "cat", SearchOptions{CaseSensitive: true, WholeWord: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 whole-word matches, got %d: %+v", len(matches), matches)
	}
}

func TestFindAllRegex(t *testing.T) {
	matches, err := findAll("a1 b22 c333", `\d+`, SearchOptions{Regex: true, CaseSensitive: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 regex matches, got %d", len(matches))
	}
}

func TestFindNextDoesNotWrap(t *testing.T) {
	text := "foo bar foo"
	if _, ok, _ := findNext(text, "foo", 4, SearchOptions{CaseSensitive: true}); !ok {
		t.Fatal("expected a match after offset 4")
	}
	if _, ok, _ := findNext(text, "foo", 9, SearchOptions{CaseSensitive: true}); ok {
		t.Fatal("expected no match past the last occurrence, and no wraparound")
	}
}

func TestFindPrev(t *testing.T) {
	text := "foo bar foo"
	m, ok, err := findPrev(text, "foo", 10, SearchOptions{CaseSensitive: true})
	if err != nil || !ok || m.Start != 8 {
		t.Fatalf("findPrev = %+v, %v, %v; want start 8", m, ok, err)
	}
}

func TestExpandReplacementCaptures(t *testing.T) {
	got := expandReplacement("$1-$0", []string{"full", "cap1"})
	if got != "cap1-full" {
		t.Errorf("expandReplacement = %q, want %q", got, "cap1-full")
	}
}

func TestExpandReplacementNoGroupsPassesThrough(t *testing.T) {
	got := expandReplacement("plain text", nil)
	if got != "plain text" {
		t.Errorf("expandReplacement = %q, want unchanged", got)
	}
}
