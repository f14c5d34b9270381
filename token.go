package hip

import "fmt"

// TokenKind identifies the kind of a Token.
type TokenKind uint8

const (
	tokenEOF TokenKind = iota

	// Literals
	TokenString
	TokenInt
	TokenFloat
	TokenBool
	TokenNull

	// Structural
	TokenHyphen
	TokenColon
	TokenComma

	TokenIdent

	// Discarded by the scanner, never emitted.
	tokenComment
	tokenBreak
	tokenSpace
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case tokenEOF:
		return "EOF"
	case TokenString:
		return "STRING"
	case TokenInt:
		return "INT"
	case TokenFloat:
		return "FLOAT"
	case TokenBool:
		return "BOOL"
	case TokenNull:
		return "NULL"
	case TokenHyphen:
		return "-"
	case TokenColon:
		return ":"
	case TokenComma:
		return ","
	case TokenIdent:
		return "IDENT"
	case tokenComment:
		return "COMMENT"
	case tokenBreak:
		return "BREAK"
	case tokenSpace:
		return "SPACE"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexical unit of a Hip document.
type Token struct {
	Kind TokenKind
	// Text is the raw source text of the token.
	Text string
	// Value is the decoded literal for scalar kinds; null otherwise.
	Value Value
	// Indent is the number of leading spaces on the line the token
	// belongs to. Every token of a line shares it.
	Indent int
	// Line is the zero-based source line.
	Line int
}

// IsScalar reports whether t is a string, number, boolean or null literal.
func (t Token) IsScalar() bool {
	switch t.Kind {
	case TokenString, TokenInt, TokenFloat, TokenBool, TokenNull:
		return true
	}
	return false
}

// String returns a debug representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Line, t.Indent)
}
