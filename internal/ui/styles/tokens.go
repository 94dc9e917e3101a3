package styles

// ColorToken identifies one themable color. Tokens are grouped into the
// "ui." namespace for chrome colors and "token." for syntax display
// classes.
type ColorToken string

const (
	TokenBackground ColorToken = "ui.background"
	TokenForeground ColorToken = "ui.foreground"
	TokenGutterBg   ColorToken = "ui.gutter_bg"
	TokenGutterFg   ColorToken = "ui.gutter_fg"
	TokenCaret      ColorToken = "ui.caret"
	TokenSelectBg   ColorToken = "ui.select_bg"
	TokenSelectFg   ColorToken = "ui.select_fg"
	TokenAccent     ColorToken = "ui.accent"

	TokenSynKeyword     ColorToken = "token.keyword"
	TokenSynBuiltin     ColorToken = "token.builtin"
	TokenSynString      ColorToken = "token.string"
	TokenSynNumber      ColorToken = "token.number"
	TokenSynComment     ColorToken = "token.comment"
	TokenSynOperator    ColorToken = "token.operator"
	TokenSynFunction    ColorToken = "token.function"
	TokenSynClass       ColorToken = "token.class"
	TokenSynPunctuation ColorToken = "token.punctuation"
	TokenSynPlain       ColorToken = "token.plain"
)

// allTokens lists every valid token for override validation.
var allTokens = []ColorToken{
	TokenBackground, TokenForeground, TokenGutterBg, TokenGutterFg,
	TokenCaret, TokenSelectBg, TokenSelectFg, TokenAccent,
	TokenSynKeyword, TokenSynBuiltin, TokenSynString, TokenSynNumber,
	TokenSynComment, TokenSynOperator, TokenSynFunction, TokenSynClass,
	TokenSynPunctuation, TokenSynPlain,
}

func isValidToken(t ColorToken) bool {
	for _, known := range allTokens {
		if known == t {
			return true
		}
	}
	return false
}
