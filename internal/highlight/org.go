package highlight

import "sync"

// orgClassifier holds the inline marker table for org lines. A single
// shared instance is built lazily and serialized behind orgMu; when the
// lock cannot be taken the row degrades to an empty classification
// rather than waiting.
type orgClassifier struct {
	inline map[string]Category
}

var (
	orgOnce sync.Once
	orgMu   sync.Mutex
	orgInst *orgClassifier
)

func orgShared() *orgClassifier {
	orgOnce.Do(func() {
		orgInst = &orgClassifier{
			inline: map[string]Category{
				"*": Bold,
				"/": Italic,
				"_": Underline,
				"+": MultilineComment,
				"~": CodeBlock,
				"=": CodeBlock,
			},
		}
	})
	return orgInst
}

func classifyOrg(clusters []string) []Category {
	o := orgShared()
	if !orgMu.TryLock() {
		return make([]Category, len(clusters))
	}
	defer orgMu.Unlock()
	return o.classifyLine(clusters)
}

func (o *orgClassifier) classifyLine(clusters []string) []Category {
	n := len(clusters)
	hl := make([]Category, n)
	if n == 0 {
		return hl
	}

	// Headline: the whole line, with an optional TODO/DONE keyword
	// right after the stars.
	if clusters[0] == "*" {
		for j := range hl {
			hl[j] = Headline
		}
		k := 0
		for k < n && clusters[k] == "*" {
			k++
		}
		for k < n && clusters[k] == " " {
			k++
		}
		if kw, cat := matchStateKeyword(clusters, k); kw > 0 {
			for j := k; j < k+kw; j++ {
				hl[j] = cat
			}
		}
		return hl
	}

	// List item: the marker and its trailing space only.
	if n >= 2 && (clusters[0] == "-" || clusters[0] == "+") && clusters[1] == " " {
		hl[0] = ListMarker
		hl[1] = ListMarker
		return hl
	}

	// Property-style line: every colon on a line containing "::".
	if hasDoubleColon(clusters) {
		for i, c := range clusters {
			if c == ":" {
				hl[i] = Tag
			}
		}
		return hl
	}

	i := 0
	for i < n {
		c := clusters[i]
		if c == "[" && i+1 < n && clusters[i+1] == "[" {
			closing := -1
			for j := i + 2; j+1 < n; j++ {
				if clusters[j] == "]" && clusters[j+1] == "]" {
					closing = j + 2
					break
				}
			}
			if closing != -1 {
				for j := i; j < closing; j++ {
					hl[j] = Link
				}
				i = closing
				continue
			}
			i += 2
			continue
		}
		if cat, ok := o.inline[c]; ok && i+1 < n && !isSpaceCluster(clusters[i+1]) && clusters[i+1] != c {
			closing := -1
			for j := i + 1; j < n; j++ {
				if clusters[j] == c {
					closing = j
					break
				}
			}
			if closing != -1 {
				for j := i; j <= closing; j++ {
					hl[j] = cat
				}
				i = closing + 1
				continue
			}
		}
		i++
	}
	return hl
}

// matchStateKeyword recognizes "TODO " and "DONE " at position k and
// returns the keyword length without the trailing space.
func matchStateKeyword(clusters []string, k int) (int, Category) {
	for _, kw := range []struct {
		word string
		cat  Category
	}{
		{"TODO", TodoKeyword},
		{"DONE", DoneKeyword},
	} {
		w := len(kw.word)
		if k+w >= len(clusters) {
			continue
		}
		match := clusters[k+w] == " "
		for j := 0; match && j < w; j++ {
			if clusters[k+j] != string(kw.word[j]) {
				match = false
			}
		}
		if match {
			return w, kw.cat
		}
	}
	return 0, None
}

func hasDoubleColon(clusters []string) bool {
	for i := 0; i+1 < len(clusters); i++ {
		if clusters[i] == ":" && clusters[i+1] == ":" {
			return true
		}
	}
	return false
}

func isSpaceCluster(c string) bool {
	return c == " " || c == "\t"
}
