package highlight

import (
	"strings"
	"unicode/utf8"
)

// Classify produces one category per grapheme cluster of a single row.
// startsInComment carries an open multiline comment from the previous row;
// the returned flag reports whether this row ends inside one.
func Classify(text string, clusters []string, ft FileType, startsInComment bool) ([]Category, bool) {
	switch ft.Ruleset {
	case RulesetCode:
		return classifyCode(clusters, ft.Options, startsInComment)
	case RulesetOrg:
		return classifyOrg(clusters), false
	case RulesetMarkdown:
		return classifyMarkdown(text, clusters), false
	default:
		return make([]Category, len(clusters)), false
	}
}

func classifyCode(clusters []string, opts Options, startsInComment bool) ([]Category, bool) {
	n := len(clusters)
	hl := make([]Category, n)
	i := 0
	if startsInComment {
		closing := findCloser(clusters, 0)
		if closing == -1 {
			for j := range hl {
				hl[j] = MultilineComment
			}
			return hl, true
		}
		for j := 0; j < closing; j++ {
			hl[j] = MultilineComment
		}
		i = closing
	}
	open := false
	for i < n {
		c := clusters[i]
		if opts.Comments && c == "/" && i+1 < n && clusters[i+1] == "/" {
			for j := i; j < n; j++ {
				hl[j] = Comment
			}
			break
		}
		if opts.MultilineComments && c == "/" && i+1 < n && clusters[i+1] == "*" {
			closing := findCloser(clusters, i+2)
			end := n
			if closing != -1 {
				end = closing
			} else {
				open = true
			}
			for j := i; j < end; j++ {
				hl[j] = MultilineComment
			}
			i = end
			continue
		}
		if opts.Strings && c == `"` {
			hl[i] = String
			j := i + 1
			for j < n {
				hl[j] = String
				if clusters[j] == "\\" && j+1 < n {
					hl[j+1] = String
					j += 2
					continue
				}
				if clusters[j] == `"` {
					j++
					break
				}
				j++
			}
			i = j
			continue
		}
		if opts.Characters && c == "'" {
			if j, ok := scanCharLiteral(clusters, i); ok {
				for k := i; k < j; k++ {
					hl[k] = Character
				}
				i = j
				continue
			}
		}
		if opts.Numbers && isDigit(c) && atWordBoundary(clusters, i) {
			j := i
			for j < n && (isDigit(clusters[j]) || (clusters[j] == "." && j+1 < n && isDigit(clusters[j+1]))) {
				hl[j] = Number
				j++
			}
			i = j
			continue
		}
		if !isSeparator(c) && atWordBoundary(clusters, i) {
			j := i
			for j < n && !isSeparator(clusters[j]) {
				j++
			}
			word := strings.Join(clusters[i:j], "")
			cat := None
			switch {
			case containsWord(opts.PrimaryKeywords, word):
				cat = PrimaryKeyword
			case containsWord(opts.SecondaryKeywords, word):
				cat = SecondaryKeyword
			}
			for k := i; k < j; k++ {
				hl[k] = cat
			}
			i = j
			continue
		}
		i++
	}
	return hl, open
}

// findCloser returns the index just past the next "*/", or -1.
func findCloser(clusters []string, from int) int {
	for j := from; j+1 < len(clusters); j++ {
		if clusters[j] == "*" && clusters[j+1] == "/" {
			return j + 2
		}
	}
	return -1
}

// scanCharLiteral matches 'x' and '\x' starting at the opening quote.
func scanCharLiteral(clusters []string, i int) (int, bool) {
	j := i + 1
	if j < len(clusters) && clusters[j] == "\\" {
		j++
	}
	if j >= len(clusters) {
		return 0, false
	}
	j++
	if j < len(clusters) && clusters[j] == "'" {
		return j + 1, true
	}
	return 0, false
}

func atWordBoundary(clusters []string, i int) bool {
	return i == 0 || isSeparator(clusters[i-1])
}

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// isSeparator reports whether a cluster terminates a candidate word.
// Separators are ASCII punctuation or whitespace.
func isSeparator(c string) bool {
	if c == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(c)
	return r == ' ' || r == '\t' || strings.ContainsRune(asciiPunct, r)
}

func isDigit(c string) bool {
	if c == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(c)
	return r >= '0' && r <= '9'
}

func containsWord(words []string, w string) bool {
	for _, k := range words {
		if k == w {
			return true
		}
	}
	return false
}
