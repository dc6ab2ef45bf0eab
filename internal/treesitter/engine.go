package treesitter

import (
	"context"
	"sync"

	"github.com/rivo/uniseg"
	sitter "github.com/smacker/go-tree-sitter"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	tree_sitter_markdown_inline "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown-inline"

	"github.com/kobzarvs/orged/internal/highlight"
	"github.com/kobzarvs/orged/internal/logger"
)

// Engine classifies single markdown rows through the tree-sitter block and
// inline grammars. It implements highlight.Provider and is shared
// process-wide; callers that cannot take the lock get an empty
// classification instead of blocking.
type Engine struct {
	blockParser  *sitter.Parser
	inlineParser *sitter.Parser
	blockQuery   *sitter.Query
	inlineQuery  *sitter.Query
}

var (
	once   sync.Once
	mu     sync.Mutex
	shared *Engine
)

// Shared returns the lazily built singleton engine.
func Shared() *Engine {
	once.Do(func() {
		shared = newEngine()
	})
	return shared
}

func newEngine() *Engine {
	e := &Engine{
		blockParser:  sitter.NewParser(),
		inlineParser: sitter.NewParser(),
	}
	e.blockParser.SetLanguage(tree_sitter_markdown.GetLanguage())
	e.inlineParser.SetLanguage(tree_sitter_markdown_inline.GetLanguage())

	q, err := sitter.NewQuery([]byte(markdownBlockHighlightQuery), tree_sitter_markdown.GetLanguage())
	if err != nil {
		logger.Warn("markdown block query failed", "error", err)
	} else {
		e.blockQuery = q
	}
	q, err = sitter.NewQuery([]byte(markdownInlineHighlightQuery), tree_sitter_markdown_inline.GetLanguage())
	if err != nil {
		logger.Warn("markdown inline query failed", "error", err)
	} else {
		e.inlineQuery = q
	}
	return e
}

type span struct {
	startByte int
	endByte   int
	cat       highlight.Category
}

// ClassifyRow parses one row of markdown and returns a category per
// grapheme cluster. Inline captures override block captures.
func (e *Engine) ClassifyRow(text string) []highlight.Category {
	if text == "" {
		return nil
	}
	if !mu.TryLock() {
		return nil
	}
	defer mu.Unlock()

	src := []byte(text)
	var spans []span
	// The block grammar only closes constructs at a newline, which rows
	// never carry. Parse with one appended and clamp spans back.
	blockSpans := e.captureSpans(e.blockParser, e.blockQuery, append([]byte(text), '\n'))
	for _, s := range blockSpans {
		if s.endByte > len(src) {
			s.endByte = len(src)
		}
		if s.startByte >= s.endByte {
			continue
		}
		spans = append(spans, s)
	}
	spans = append(spans, e.captureSpans(e.inlineParser, e.inlineQuery, src)...)
	return stampSpans(text, spans)
}

func (e *Engine) captureSpans(parser *sitter.Parser, query *sitter.Query, src []byte) []span {
	if query == nil {
		return nil
	}
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil || tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, tree.RootNode())

	var out []span
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, src)
		if match == nil {
			continue
		}
		for _, capture := range match.Captures {
			cat, ok := categoryForCapture(query.CaptureNameForId(capture.Index))
			if !ok {
				continue
			}
			out = append(out, span{
				startByte: int(capture.Node.StartByte()),
				endByte:   int(capture.Node.EndByte()),
				cat:       cat,
			})
		}
	}
	return out
}

// stampSpans converts byte spans into per-cluster categories. A cluster is
// covered when its byte range overlaps the span.
func stampSpans(text string, spans []span) []highlight.Category {
	type clusterPos struct {
		start int
		end   int
	}
	var positions []clusterPos
	offset := 0
	rest := text
	state := -1
	for len(rest) > 0 {
		var cl string
		cl, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		positions = append(positions, clusterPos{start: offset, end: offset + len(cl)})
		offset += len(cl)
	}
	out := make([]highlight.Category, len(positions))
	for _, s := range spans {
		for i, p := range positions {
			if p.start < s.endByte && p.end > s.startByte {
				out[i] = s.cat
			}
		}
	}
	return out
}

func categoryForCapture(name string) (highlight.Category, bool) {
	switch name {
	case "headline":
		return highlight.Headline, true
	case "list_marker":
		return highlight.ListMarker, true
	case "todo":
		return highlight.TodoKeyword, true
	case "done":
		return highlight.DoneKeyword, true
	case "comment":
		return highlight.Comment, true
	case "code_block":
		return highlight.CodeBlock, true
	case "bold":
		return highlight.Bold, true
	case "italic":
		return highlight.Italic, true
	case "strike":
		return highlight.MultilineComment, true
	case "link":
		return highlight.Link, true
	default:
		return highlight.None, false
	}
}

const markdownBlockHighlightQuery = `
(atx_heading) @headline
(setext_heading) @headline
(thematic_break) @comment
(block_quote_marker) @comment
(list_marker_plus) @list_marker
(list_marker_minus) @list_marker
(list_marker_star) @list_marker
(list_marker_dot) @list_marker
(list_marker_parenthesis) @list_marker
(task_list_marker_checked) @done
(task_list_marker_unchecked) @todo
(fenced_code_block_delimiter) @code_block
(indented_code_block) @code_block
(info_string) @comment
(language) @code_block
(link_reference_definition) @link
`

const markdownInlineHighlightQuery = `
(code_span) @code_block
(emphasis) @italic
(strong_emphasis) @bold
(strikethrough) @strike
(inline_link) @link
(full_reference_link) @link
(collapsed_reference_link) @link
(shortcut_link) @link
(image) @link
(uri_autolink) @link
(email_autolink) @link
`
