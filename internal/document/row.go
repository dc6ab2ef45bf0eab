package document

import (
	"strings"

	"github.com/kobzarvs/orged/internal/highlight"
)

// Row owns one line of text and its per-grapheme classification. All
// indices are grapheme columns; out-of-range indices clamp or no-op.
type Row struct {
	text           string
	hl             []highlight.Category
	highlighted    bool
	openComment    bool
	startedComment bool
	lastSearch     string
	length         int
}

// Run is a maximal span of clusters sharing one category, produced by
// Render for the paint layer.
type Run struct {
	Category highlight.Category
	Text     string
}

func NewRow(text string) *Row {
	return &Row{
		text:   text,
		length: graphemeCount(text),
	}
}

func (r *Row) String() string { return r.text }

// Clusters returns the row's grapheme clusters in order.
func (r *Row) Clusters() []string { return graphemes(r.text) }

func (r *Row) Len() int { return r.length }

// Category returns the cached classification for one column. Columns not
// covered by the last Highlight call read as None.
func (r *Row) Category(at int) highlight.Category {
	if at < 0 || at >= len(r.hl) {
		return highlight.None
	}
	return r.hl[at]
}

// Render returns the visible slice between grapheme columns start and end,
// split into category runs. Tabs render as a single space.
func (r *Row) Render(start, end int) []Run {
	if end > r.length {
		end = r.length
	}
	if start > end {
		start = end
	}
	if start < 0 {
		start = 0
	}
	cl := graphemes(r.text)
	var runs []Run
	var b strings.Builder
	current := highlight.None
	for i := start; i < end; i++ {
		g := cl[i]
		if g == "\t" {
			g = " "
		}
		cat := r.Category(i)
		if cat != current && b.Len() > 0 {
			runs = append(runs, Run{Category: current, Text: b.String()})
			b.Reset()
		}
		current = cat
		b.WriteString(g)
	}
	if b.Len() > 0 {
		runs = append(runs, Run{Category: current, Text: b.String()})
	}
	return runs
}

// Insert places c before grapheme index at, appending when at is past the
// end.
func (r *Row) Insert(at int, c rune) {
	if at >= r.length {
		r.text += string(c)
		r.invalidate()
		return
	}
	if at < 0 {
		at = 0
	}
	cl := graphemes(r.text)
	var b strings.Builder
	for i, g := range cl {
		if i == at {
			b.WriteRune(c)
		}
		b.WriteString(g)
	}
	r.text = b.String()
	r.invalidate()
}

// Delete removes the grapheme at the given column, a no-op past the end.
func (r *Row) Delete(at int) {
	if at < 0 || at >= r.length {
		return
	}
	cl := graphemes(r.text)
	r.text = strings.Join(cl[:at], "") + strings.Join(cl[at+1:], "")
	r.invalidate()
}

// Split truncates the row at the given column and returns the remainder as
// a new row with fresh highlighting state.
func (r *Row) Split(at int) *Row {
	if at < 0 {
		at = 0
	}
	if at > r.length {
		at = r.length
	}
	cl := graphemes(r.text)
	rest := strings.Join(cl[at:], "")
	r.text = strings.Join(cl[:at], "")
	r.invalidate()
	return NewRow(rest)
}

// Append concatenates another row's text onto this one.
func (r *Row) Append(other *Row) {
	r.text += other.text
	r.invalidate()
}

// Find locates query as a literal substring. Forward scans [at, length),
// Backward scans [0, at) returning the match closest to at; a backward
// match must end at or before at, never straddle it. Matches only start
// and end on cluster boundaries.
func (r *Row) Find(query string, at int, dir SearchDirection) (int, bool) {
	if query == "" || r.length == 0 {
		return 0, false
	}
	cl := graphemes(r.text)
	if at > len(cl) {
		at = len(cl)
	}
	if at < 0 {
		at = 0
	}
	if dir == Forward {
		for i := at; i < len(cl); i++ {
			if _, ok := matchSpanAt(cl, i, query); ok {
				return i, true
			}
		}
		return 0, false
	}
	for i := at - 1; i >= 0; i-- {
		if span, ok := matchSpanAt(cl, i, query); ok && i+span <= at {
			return i, true
		}
	}
	return 0, false
}

// Highlight recomputes the row's classification and reports whether the
// row ends inside an open multiline comment. The cached result is reused
// when the text has not changed, no search word is active, and neither the
// carry-in nor carry-out flag involves an open comment state change.
func (r *Row) Highlight(word string, startsInComment bool, ft highlight.FileType) bool {
	if r.highlighted && word == "" && r.lastSearch == "" &&
		!r.openComment && startsInComment == r.startedComment {
		return r.openComment
	}
	cl := graphemes(r.text)
	hl, open := highlight.Classify(r.text, cl, ft, startsInComment)
	if word != "" {
		overlayMatches(hl, cl, word)
	}
	r.hl = hl
	r.openComment = open
	r.startedComment = startsInComment
	r.lastSearch = word
	r.highlighted = true
	return open
}

// overlayMatches stamps Match over every non-overlapping occurrence of
// word, left to right, on top of the base classification.
func overlayMatches(hl []highlight.Category, cl []string, word string) {
	i := 0
	for i < len(cl) {
		n, ok := matchSpanAt(cl, i, word)
		if !ok {
			i++
			continue
		}
		for j := i; j < i+n; j++ {
			hl[j] = highlight.Match
		}
		i += n
	}
}

func (r *Row) invalidate() {
	r.length = graphemeCount(r.text)
	r.highlighted = false
}

func (r *Row) indent() {
	r.text = "\t" + r.text
	r.invalidate()
}

// unindent strips one leading tab, or up to four leading spaces, and
// reports whether anything was removed.
func (r *Row) unindent() bool {
	if strings.HasPrefix(r.text, "\t") {
		r.text = r.text[1:]
		r.invalidate()
		return true
	}
	trimmed := 0
	for trimmed < 4 && trimmed < len(r.text) && r.text[trimmed] == ' ' {
		trimmed++
	}
	if trimmed == 0 {
		return false
	}
	r.text = r.text[trimmed:]
	r.invalidate()
	return true
}

// trimTrailing removes trailing spaces and tabs, reporting whether the
// row changed.
func (r *Row) trimTrailing() bool {
	t := strings.TrimRight(r.text, " \t")
	if t == r.text {
		return false
	}
	r.text = t
	r.invalidate()
	return true
}

// slice returns the text between grapheme columns a and b, clamped.
func (r *Row) slice(a, b int) string {
	if a < 0 {
		a = 0
	}
	if b > r.length {
		b = r.length
	}
	if a >= b {
		return ""
	}
	cl := graphemes(r.text)
	return strings.Join(cl[a:b], "")
}

// cut removes and returns the text between grapheme columns a and b.
func (r *Row) cut(a, b int) string {
	if a < 0 {
		a = 0
	}
	if b > r.length {
		b = r.length
	}
	if a >= b {
		return ""
	}
	cl := graphemes(r.text)
	out := strings.Join(cl[a:b], "")
	r.text = strings.Join(cl[:a], "") + strings.Join(cl[b:], "")
	r.invalidate()
	return out
}
