package highlight

import "github.com/alecthomas/chroma/v2"

// Class is one of the fixed display classes a token can render as.
type Class int

const (
	ClassPlain Class = iota
	ClassKeyword
	ClassBuiltin
	ClassString
	ClassNumber
	ClassComment
	ClassOperator
	ClassFunction
	ClassClass
	ClassPunctuation
)

func (c Class) String() string {
	switch c {
	case ClassKeyword:
		return "keyword"
	case ClassBuiltin:
		return "builtin"
	case ClassString:
		return "string"
	case ClassNumber:
		return "number"
	case ClassComment:
		return "comment"
	case ClassOperator:
		return "operator"
	case ClassFunction:
		return "function"
	case ClassClass:
		return "class"
	case ClassPunctuation:
		return "punctuation"
	default:
		return "plain"
	}
}

// Classify maps a chroma token type to a display class. Total and
// deterministic: any token kind chroma can produce gets exactly one class,
// and unknown kinds fall through to plain. Specific name kinds are checked
// before the broad categories so NameBuiltin does not classify as plain via
// the Name category.
func Classify(tt chroma.TokenType) Class {
	switch tt {
	case chroma.NameBuiltin, chroma.NameBuiltinPseudo:
		return ClassBuiltin
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return ClassFunction
	case chroma.NameClass:
		return ClassClass
	}

	switch {
	case tt.InCategory(chroma.Keyword):
		return ClassKeyword
	case tt.InSubCategory(chroma.LiteralString):
		return ClassString
	case tt.InSubCategory(chroma.LiteralNumber):
		return ClassNumber
	case tt.InCategory(chroma.Comment):
		return ClassComment
	case tt.InCategory(chroma.Operator):
		return ClassOperator
	case tt.InCategory(chroma.Punctuation):
		return ClassPunctuation
	default:
		return ClassPlain
	}
}
