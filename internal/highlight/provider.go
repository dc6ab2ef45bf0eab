package highlight

import "sync"

// Provider classifies a single row of markup text into per-grapheme
// categories. The tree-sitter engine registers itself here so that the
// document layer stays free of parser dependencies.
type Provider interface {
	ClassifyRow(text string) []Category
}

var (
	mdMu       sync.RWMutex
	mdProvider Provider
)

// SetMarkdownProvider installs p as the classifier for markdown rows.
// Passing nil disables markdown classification.
func SetMarkdownProvider(p Provider) {
	mdMu.Lock()
	mdProvider = p
	mdMu.Unlock()
}

func classifyMarkdown(text string, clusters []string) []Category {
	mdMu.RLock()
	p := mdProvider
	mdMu.RUnlock()
	if p == nil {
		return make([]Category, len(clusters))
	}
	hl := p.ClassifyRow(text)
	if len(hl) > len(clusters) {
		hl = hl[:len(clusters)]
	}
	for len(hl) < len(clusters) {
		hl = append(hl, None)
	}
	return hl
}
