package document

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kobzarvs/orged/internal/highlight"
)

// ErrNoFileName is returned by Save when the document has never been
// given a path.
var ErrNoFileName = errors.New("document has no file name")

// Document is an ordered sequence of rows plus the file identity that
// drives highlighting.
type Document struct {
	rows     []*Row
	FileName string
	fileType highlight.FileType
	dirty    bool
}

// New returns an empty, unnamed document.
func New() *Document {
	return &Document{fileType: highlight.Detect("")}
}

// Open reads path line by line into rows. An I/O failure surfaces to the
// caller with no partial document.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d := &Document{
		FileName: path,
		fileType: highlight.Detect(path),
	}
	lines := strings.Split(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for _, line := range lines {
		d.rows = append(d.rows, NewRow(strings.TrimSuffix(line, "\r")))
	}
	return d, nil
}

// Save writes every row followed by a line terminator and clears dirty on
// success.
func (d *Document) Save() error {
	if d.FileName == "" {
		return ErrNoFileName
	}
	var b strings.Builder
	for _, r := range d.rows {
		b.WriteString(r.text)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(d.FileName, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", d.FileName, err)
	}
	d.dirty = false
	return nil
}

// SaveAs rebinds the document to path, rederives the file type, and saves.
func (d *Document) SaveAs(path string) error {
	d.FileName = path
	d.fileType = highlight.Detect(path)
	return d.Save()
}

func (d *Document) FileType() highlight.FileType { return d.fileType }

func (d *Document) IsDirty() bool { return d.dirty }

func (d *Document) IsEmpty() bool { return len(d.rows) == 0 }

func (d *Document) Len() int { return len(d.rows) }

// Row returns row i, or nil when i is out of range.
func (d *Document) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// Insert places c at pos. A newline splits the row; a position on the
// insertion point past the last row appends a new row.
func (d *Document) Insert(pos Position, c rune) {
	if pos.Y > len(d.rows) {
		return
	}
	d.dirty = true
	if c == '\n' {
		d.insertNewline(pos)
		return
	}
	if pos.Y == len(d.rows) {
		d.rows = append(d.rows, NewRow(string(c)))
		return
	}
	d.rows[pos.Y].Insert(pos.X, c)
}

func (d *Document) insertNewline(pos Position) {
	if pos.Y == len(d.rows) {
		d.rows = append(d.rows, NewRow(""))
		return
	}
	rest := d.rows[pos.Y].Split(pos.X)
	d.rows = append(d.rows, nil)
	copy(d.rows[pos.Y+2:], d.rows[pos.Y+1:])
	d.rows[pos.Y+1] = rest
}

// Delete removes the grapheme at pos. At the end of a row the next row is
// merged up instead. A position at the logical end of the document is a
// no-op.
func (d *Document) Delete(pos Position) {
	if pos.Y >= len(d.rows) {
		return
	}
	row := d.rows[pos.Y]
	if pos.X >= row.Len() {
		if pos.Y+1 >= len(d.rows) {
			return
		}
		row.Append(d.rows[pos.Y+1])
		d.rows = append(d.rows[:pos.Y+1], d.rows[pos.Y+2:]...)
		d.dirty = true
		return
	}
	row.Delete(pos.X)
	d.dirty = true
}

// Highlight reclassifies rows 0..until, threading the multiline-comment
// carry row to row. until < 0 means the whole document.
func (d *Document) Highlight(word string, until int) {
	if until < 0 || until > len(d.rows) {
		until = len(d.rows)
	}
	inComment := false
	for i := 0; i < until; i++ {
		inComment = d.rows[i].Highlight(word, inComment, d.fileType)
	}
}

// Find searches row by row from pos. It does not wrap past the document
// start or end; wrap-around is the caller's choice.
func (d *Document) Find(query string, from Position, dir SearchDirection) (Position, bool) {
	if query == "" || len(d.rows) == 0 {
		return Position{}, false
	}
	x, y := from.X, from.Y
	if y >= len(d.rows) {
		y = len(d.rows) - 1
		x = d.rows[y].Len()
	}
	for {
		if i, ok := d.rows[y].Find(query, x, dir); ok {
			return Position{X: i, Y: y}, true
		}
		if dir == Forward {
			y++
			if y >= len(d.rows) {
				return Position{}, false
			}
			x = 0
		} else {
			y--
			if y < 0 {
				return Position{}, false
			}
			x = d.rows[y].Len()
		}
	}
}

// DeleteLines removes up to n whole rows starting at row `at` and returns
// their text.
func (d *Document) DeleteLines(at, n int) []string {
	at, n = d.clampLineRange(at, n)
	if n == 0 {
		return nil
	}
	out := make([]string, 0, n)
	for _, r := range d.rows[at : at+n] {
		out = append(out, r.text)
	}
	d.rows = append(d.rows[:at], d.rows[at+n:]...)
	d.dirty = true
	return out
}

// InsertLines splices lines in as whole rows before row `at`. at == Len()
// appends.
func (d *Document) InsertLines(at int, lines []string) {
	if len(lines) == 0 {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(d.rows) {
		at = len(d.rows)
	}
	rows := make([]*Row, len(lines))
	for i, l := range lines {
		rows[i] = NewRow(l)
	}
	d.rows = append(d.rows[:at], append(rows, d.rows[at:]...)...)
	d.dirty = true
}

// IndentLines prefixes up to n rows starting at `at` with one tab.
func (d *Document) IndentLines(at, n int) {
	at, n = d.clampLineRange(at, n)
	for _, r := range d.rows[at : at+n] {
		r.indent()
	}
	if n > 0 {
		d.dirty = true
	}
}

// UnindentLines strips one level of leading indentation from up to n rows.
func (d *Document) UnindentLines(at, n int) {
	at, n = d.clampLineRange(at, n)
	changed := false
	for _, r := range d.rows[at : at+n] {
		if r.unindent() {
			changed = true
		}
	}
	if changed {
		d.dirty = true
	}
}

// TrimTrailingLines removes trailing whitespace from up to n rows.
func (d *Document) TrimTrailingLines(at, n int) {
	at, n = d.clampLineRange(at, n)
	changed := false
	for _, r := range d.rows[at : at+n] {
		if r.trimTrailing() {
			changed = true
		}
	}
	if changed {
		d.dirty = true
	}
}

// TextRange copies the span from start up to and including the cluster at
// end, split at row boundaries. start and end must be in document order.
func (d *Document) TextRange(start, end Position) []string {
	if start.Y >= len(d.rows) {
		return nil
	}
	if end.Y >= len(d.rows) {
		end = Position{Y: len(d.rows) - 1, X: d.rows[len(d.rows)-1].Len()}
	}
	if start.Y == end.Y {
		return []string{d.rows[start.Y].slice(start.X, end.X+1)}
	}
	out := []string{d.rows[start.Y].slice(start.X, d.rows[start.Y].Len())}
	for y := start.Y + 1; y < end.Y; y++ {
		out = append(out, d.rows[y].text)
	}
	out = append(out, d.rows[end.Y].slice(0, end.X+1))
	return out
}

// DeleteRange removes the span from start up to and including the cluster
// at end, merging the surviving row tails, and returns the removed text.
func (d *Document) DeleteRange(start, end Position) []string {
	out := d.TextRange(start, end)
	if out == nil {
		return nil
	}
	if end.Y >= len(d.rows) {
		end = Position{Y: len(d.rows) - 1, X: d.rows[len(d.rows)-1].Len()}
	}
	if start.Y == end.Y {
		d.rows[start.Y].cut(start.X, end.X+1)
		d.dirty = true
		return out
	}
	first := d.rows[start.Y]
	last := d.rows[end.Y]
	first.cut(start.X, first.Len())
	last.cut(0, end.X+1)
	first.Append(last)
	d.rows = append(d.rows[:start.Y+1], d.rows[end.Y+1:]...)
	d.dirty = true
	return out
}

func (d *Document) clampLineRange(at, n int) (int, int) {
	if at < 0 {
		at = 0
	}
	if at >= len(d.rows) {
		return 0, 0
	}
	if n < 0 {
		n = 0
	}
	if at+n > len(d.rows) {
		n = len(d.rows) - at
	}
	return at, n
}
