package highlight

import (
	"path/filepath"
	"strings"
)

// Ruleset selects one of the closed set of classifier strategies.
type Ruleset int

const (
	RulesetNone Ruleset = iota
	RulesetCode
	RulesetOrg
	RulesetMarkdown
)

// Options configures the code ruleset scanner.
type Options struct {
	Numbers           bool
	Strings           bool
	Characters        bool
	Comments          bool
	MultilineComments bool
	PrimaryKeywords   []string
	SecondaryKeywords []string
}

// FileType binds a display name to the ruleset used for classification.
type FileType struct {
	Name    string
	Ruleset Ruleset
	Options Options
}

// Detect derives the file type from a file name. Unknown extensions get no
// classification beyond the search overlay.
func Detect(filename string) FileType {
	if filename == "" {
		return FileType{Name: "no ft"}
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	switch ext {
	case ".org":
		return FileType{Name: "org", Ruleset: RulesetOrg}
	case ".md", ".markdown":
		return FileType{Name: "markdown", Ruleset: RulesetMarkdown}
	case ".go":
		return FileType{
			Name:    "go",
			Ruleset: RulesetCode,
			Options: Options{
				Numbers:           true,
				Strings:           true,
				Characters:        true,
				Comments:          true,
				MultilineComments: true,
				PrimaryKeywords:   goPrimaryKeywords,
				SecondaryKeywords: goSecondaryKeywords,
			},
		}
	case ".rs":
		return FileType{
			Name:    "rust",
			Ruleset: RulesetCode,
			Options: Options{
				Numbers:           true,
				Strings:           true,
				Characters:        true,
				Comments:          true,
				MultilineComments: true,
				PrimaryKeywords:   rustPrimaryKeywords,
				SecondaryKeywords: rustSecondaryKeywords,
			},
		}
	case ".c", ".h":
		return FileType{
			Name:    "c",
			Ruleset: RulesetCode,
			Options: Options{
				Numbers:           true,
				Strings:           true,
				Characters:        true,
				Comments:          true,
				MultilineComments: true,
				PrimaryKeywords:   cPrimaryKeywords,
				SecondaryKeywords: cSecondaryKeywords,
			},
		}
	default:
		return FileType{Name: "no ft"}
	}
}

var goPrimaryKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch",
	"type", "var",
}

var goSecondaryKeywords = []string{
	"bool", "byte", "rune", "string", "int", "int8", "int16", "int32",
	"int64", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	"float32", "float64", "complex64", "complex128", "error", "any",
	"true", "false", "nil", "iota",
}

var rustPrimaryKeywords = []string{
	"as", "break", "const", "continue", "crate", "dyn", "else", "enum",
	"extern", "false", "fn", "for", "if", "impl", "in", "let", "loop",
	"match", "mod", "move", "mut", "pub", "ref", "return", "self", "Self",
	"static", "struct", "super", "trait", "true", "type", "unsafe", "use",
	"where", "while",
}

var rustSecondaryKeywords = []string{
	"bool", "char", "i8", "i16", "i32", "i64", "isize", "u8", "u16", "u32",
	"u64", "usize", "f32", "f64", "str", "String",
}

var cPrimaryKeywords = []string{
	"auto", "break", "case", "const", "continue", "default", "do", "else",
	"enum", "extern", "for", "goto", "if", "inline", "register", "restrict",
	"return", "sizeof", "static", "struct", "switch", "typedef", "union",
	"volatile", "while",
}

var cSecondaryKeywords = []string{
	"char", "double", "float", "int", "long", "short", "signed", "unsigned",
	"void",
}
