package document

import (
	"strings"

	"github.com/rivo/uniseg"
)

func graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cl string
		cl, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cl)
	}
	return out
}

func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// matchSpanAt reports whether query starts at cluster i and how many
// clusters it covers. A match must end on a cluster boundary.
func matchSpanAt(cl []string, i int, query string) (int, bool) {
	rest := query
	j := i
	for j < len(cl) && rest != "" {
		if !strings.HasPrefix(rest, cl[j]) {
			return 0, false
		}
		rest = rest[len(cl[j]):]
		j++
	}
	if rest != "" {
		return 0, false
	}
	return j - i, true
}
