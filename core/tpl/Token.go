package tpl

import "strconv"

// TokenKind classifies a template token.
type TokenKind uint8

const (
	// TokenLiteral is non-empty text between separators.
	TokenLiteral TokenKind = iota

	// TokenSeparator is one of "://", "//", ":", "/", "?", "&", "=", "#", "@".
	TokenSeparator

	// TokenParam stands for a placeholder value between two fragments.
	TokenParam
)

// Token is one element of the token stream built from a template.
type Token struct {
	Kind  TokenKind
	Text  string // literal or separator text
	Index int    // placeholder position, only for TokenParam
}

// String returns the token as it would appear in an error message.
func (t Token) String() string {
	if t.Kind == TokenParam {
		return "placeholder #" + strconv.Itoa(t.Index)
	}
	return t.Text
}

// is reports whether the token is the separator sep.
func (t Token) is(sep string) bool {
	return t.Kind == TokenSeparator && t.Text == sep
}
