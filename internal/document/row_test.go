package document

import (
	"testing"

	"github.com/kobzarvs/orged/internal/highlight"
)

func TestInsertDeleteRestore(t *testing.T) {
	r := NewRow("héllo")
	orig := r.String()
	origLen := r.Len()
	for i := 0; i < origLen; i++ {
		cl := graphemes(orig)[i]
		r.Delete(i)
		for _, c := range cl {
			r.Insert(i, c)
		}
		if r.String() != orig {
			t.Fatalf("after delete+insert at %d: got %q, want %q", i, r.String(), orig)
		}
		if r.Len() != origLen {
			t.Fatalf("length after delete+insert at %d: got %d, want %d", i, r.Len(), origLen)
		}
	}
}

func TestLengthTracksGraphemeCount(t *testing.T) {
	r := NewRow("")
	check := func(step string) {
		t.Helper()
		if r.Len() != graphemeCount(r.String()) {
			t.Fatalf("%s: length %d, independent count %d", step, r.Len(), graphemeCount(r.String()))
		}
	}
	r.Insert(0, 'a')
	check("insert a")
	r.Insert(99, 'é')
	check("append é")
	r.Insert(1, 'x')
	check("insert x")
	r.Delete(0)
	check("delete 0")
	other := r.Split(1)
	check("split")
	r.Append(other)
	check("append row")
}

func TestSplitAppendReconstitutes(t *testing.T) {
	orig := "añ👍b"
	for at := 0; at <= graphemeCount(orig); at++ {
		r := NewRow(orig)
		rest := r.Split(at)
		r.Append(rest)
		if r.String() != orig {
			t.Errorf("split at %d: got %q, want %q", at, r.String(), orig)
		}
		if r.Len() != graphemeCount(orig) {
			t.Errorf("split at %d: length %d, want %d", at, r.Len(), graphemeCount(orig))
		}
	}
}

func TestInsertPastEndAppends(t *testing.T) {
	r := NewRow("ab")
	r.Insert(10, 'c')
	if got := r.String(); got != "abc" {
		t.Fatalf("got %q, want %q", got, "abc")
	}
}

func TestDeletePastEndIsNoop(t *testing.T) {
	r := NewRow("ab")
	r.Delete(5)
	if got := r.String(); got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
}

func TestFindForward(t *testing.T) {
	r := NewRow("no match here")
	if _, ok := r.Find("xyz", 0, Forward); ok {
		t.Fatal("found xyz in a row without it")
	}
	i, ok := r.Find("match", 0, Forward)
	if !ok || i != 3 {
		t.Fatalf("Find(match) = %d,%v, want 3,true", i, ok)
	}
	if _, ok := r.Find("match", 4, Forward); ok {
		t.Fatal("forward search past the match should miss")
	}
}

func TestFindBackward(t *testing.T) {
	r := NewRow("aba aba")
	i, ok := r.Find("ab", 6, Backward)
	if !ok || i != 4 {
		t.Fatalf("backward Find = %d,%v, want 4,true (closest before cursor)", i, ok)
	}
	if _, ok := r.Find("ab", 0, Backward); ok {
		t.Fatal("backward search from column 0 should miss")
	}
}

func TestFindBackwardExcludesStraddlingMatch(t *testing.T) {
	r := NewRow("abcdef")
	if _, ok := r.Find("cde", 4, Backward); ok {
		t.Fatal("match extending past the search column reported")
	}
	if i, ok := r.Find("cd", 4, Backward); !ok || i != 2 {
		t.Fatalf("backward Find = %d,%v, want 2,true", i, ok)
	}
}

func TestFindEmptyQuery(t *testing.T) {
	r := NewRow("abc")
	if _, ok := r.Find("", 0, Forward); ok {
		t.Fatal("empty query must return no match")
	}
}

func TestFindGraphemeBoundaries(t *testing.T) {
	r := NewRow("x👩‍🔬y")
	i, ok := r.Find("y", 0, Forward)
	if !ok || i != 2 {
		t.Fatalf("Find(y) = %d,%v, want 2,true", i, ok)
	}
	// A query matching only part of a cluster must not match at all.
	if _, ok := r.Find("👩", 0, Forward); ok {
		t.Fatal("partial-cluster query must not match")
	}
}

func TestHighlightKeywords(t *testing.T) {
	r := NewRow("fn main() {")
	r.Highlight("", false, highlight.Detect("main.rs"))
	for i := 0; i < 2; i++ {
		if got := r.Category(i); got != highlight.PrimaryKeyword {
			t.Errorf("column %d = %v, want PrimaryKeyword", i, got)
		}
	}
	for i := 2; i < r.Len(); i++ {
		if got := r.Category(i); got != highlight.None {
			t.Errorf("column %d = %v, want None", i, got)
		}
	}
}

func TestHighlightIdempotent(t *testing.T) {
	r := NewRow("let x = 42; // note")
	ft := highlight.Detect("main.rs")
	r.Highlight("42", false, ft)
	first := make([]highlight.Category, r.Len())
	for i := range first {
		first[i] = r.Category(i)
	}
	r.Highlight("42", false, ft)
	for i := range first {
		if got := r.Category(i); got != first[i] {
			t.Errorf("column %d changed on rerun: %v then %v", i, first[i], got)
		}
	}
}

func TestHighlightSearchOverlay(t *testing.T) {
	r := NewRow("abab")
	r.Highlight("ab", false, highlight.Detect(""))
	for i := 0; i < 4; i++ {
		if got := r.Category(i); got != highlight.Match {
			t.Errorf("column %d = %v, want Match", i, got)
		}
	}
	// Clearing the search word must drop the overlay.
	r.Highlight("", false, highlight.Detect(""))
	for i := 0; i < 4; i++ {
		if got := r.Category(i); got != highlight.None {
			t.Errorf("column %d = %v after clearing search, want None", i, got)
		}
	}
}

func TestHighlightOrgHeadline(t *testing.T) {
	r := NewRow("* TODO write docs")
	r.Highlight("", false, highlight.Detect("notes.org"))
	if got := r.Category(0); got != highlight.Headline {
		t.Errorf("column 0 = %v, want Headline", got)
	}
	for i := 2; i <= 5; i++ {
		if got := r.Category(i); got != highlight.TodoKeyword {
			t.Errorf("column %d = %v, want TodoKeyword", i, got)
		}
	}
	for i := 6; i < r.Len(); i++ {
		if got := r.Category(i); got != highlight.Headline {
			t.Errorf("column %d = %v, want Headline", i, got)
		}
	}
}

func TestRenderRuns(t *testing.T) {
	r := NewRow("fn\tx")
	r.Highlight("", false, highlight.Detect("main.rs"))
	runs := r.Render(0, r.Len())
	want := []Run{
		{Category: highlight.PrimaryKeyword, Text: "fn"},
		{Category: highlight.None, Text: " x"},
	}
	if len(runs) != len(want) {
		t.Fatalf("got %d runs %v, want %d", len(runs), runs, len(want))
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Errorf("run %d = %+v, want %+v", i, runs[i], want[i])
		}
	}
}

func TestRenderClamps(t *testing.T) {
	r := NewRow("abc")
	runs := r.Render(2, 10)
	if len(runs) != 1 || runs[0].Text != "c" {
		t.Fatalf("got %v, want single run %q", runs, "c")
	}
	if runs := r.Render(5, 2); runs != nil {
		t.Fatalf("inverted window: got %v, want nil", runs)
	}
}
