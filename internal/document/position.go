package document

// Position addresses a grapheme column X on row Y. Y == Len() is a valid
// insertion point past the last row.
type Position struct {
	X int
	Y int
}

// SearchDirection selects which way Find scans.
type SearchDirection int

const (
	Forward SearchDirection = iota
	Backward
)
