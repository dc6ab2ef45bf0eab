package highlight

// Category classifies a single grapheme cluster for rendering. The render
// layer maps each category to a fixed color and nothing else.
type Category int

const (
	None Category = iota
	Number
	Match
	String
	Character
	Comment
	MultilineComment
	PrimaryKeyword
	SecondaryKeyword
	Headline
	TodoKeyword
	DoneKeyword
	Tag
	ListMarker
	Bold
	Italic
	Underline
	Link
	CodeBlock
)

func (c Category) String() string {
	switch c {
	case None:
		return "none"
	case Number:
		return "number"
	case Match:
		return "match"
	case String:
		return "string"
	case Character:
		return "character"
	case Comment:
		return "comment"
	case MultilineComment:
		return "multiline-comment"
	case PrimaryKeyword:
		return "primary-keyword"
	case SecondaryKeyword:
		return "secondary-keyword"
	case Headline:
		return "headline"
	case TodoKeyword:
		return "todo"
	case DoneKeyword:
		return "done"
	case Tag:
		return "tag"
	case ListMarker:
		return "list-marker"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	case Link:
		return "link"
	case CodeBlock:
		return "code-block"
	default:
		return "unknown"
	}
}
