package tpl

import (
	"strings"

	"github.com/rohanthewiz/rurl/consts"
)

// separators in match order: longer separators must come first
// so that "://" wins over "//", and "//" wins over "/".
var separators = [...]string{
	consts.SchemeDelimiter,
	consts.SchemeRelative,
	consts.Colon,
	consts.FwdSlash,
	consts.Question,
	consts.Ampersand,
	consts.Equals,
	consts.Hash,
	consts.At,
}

// Tokenize splits one literal fragment into separator and literal tokens.
// Literal tokens are never empty.
//
// Example:
//
//	Fragment: "http://example.com:8080/a"
//	Tokens:   "http" "://" "example.com" ":" "8080" "/" "a"
func Tokenize(fragment string) []Token {
	var tokens []Token
	start := 0 // start of the pending literal

	for i := 0; i < len(fragment); {
		sep := matchSeparator(fragment[i:])
		if sep == "" {
			i++
			continue
		}

		if i > start {
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: fragment[start:i]})
		}
		tokens = append(tokens, Token{Kind: TokenSeparator, Text: sep})

		i += len(sep)
		start = i
	}

	if start < len(fragment) {
		tokens = append(tokens, Token{Kind: TokenLiteral, Text: fragment[start:]})
	}

	return tokens
}

// Stream returns the token stream of a whole template:
// the tokens of each fragment with a TokenParam between every two fragments.
func Stream(fragments []string) []Token {
	tokens := make([]Token, 0, len(fragments)*4)

	for i, fragment := range fragments {
		if i > 0 {
			tokens = append(tokens, Token{Kind: TokenParam, Index: i - 1})
		}
		tokens = append(tokens, Tokenize(fragment)...)
	}

	return tokens
}

// matchSeparator returns the separator s starts with, or "".
func matchSeparator(s string) string {
	switch s[0] {
	case consts.RuneColon, consts.RuneFwdSlash, consts.RuneQuestion,
		consts.RuneAmp, consts.RuneEquals, consts.RuneHash, consts.RuneAt:
	default:
		return ""
	}

	for _, sep := range separators {
		if strings.HasPrefix(s, sep) {
			return sep
		}
	}
	return ""
}
