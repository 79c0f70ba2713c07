package expr

import (
	"fmt"
)

// Word is the native unsigned machine word of the emulated ISA.
type Word = uint32

// Kind is the lexical class of a token.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	TOKEN_NUMBER   = Kind(0) // number
	TOKEN_PLUS     = Kind(1) // +
	TOKEN_MINUS    = Kind(2) // -
	TOKEN_STAR     = Kind(3) // *
	TOKEN_SLASH    = Kind(4) // /
	TOKEN_LPAREN   = Kind(5) // (
	TOKEN_RPAREN   = Kind(6) // )
	TOKEN_EQUAL    = Kind(7) // ==
	TOKEN_REGISTER = Kind(8) // register
)

// Operator returns true if the token kind is a binary operator.
func (kind Kind) Operator() bool {
	_, ok := precedence(kind)
	return ok
}

// Token is a single lexical unit of an expression.
type Token struct {
	Kind Kind   // Lexical class.
	Text string // Literal text, for numbers and registers only.
	Pos  int    // Byte offset of the token in the source text.
}

// Len returns the length of the token in the source text.
func (tok Token) Len() int {
	switch tok.Kind {
	case TOKEN_NUMBER, TOKEN_REGISTER:
		return len(tok.Text)
	case TOKEN_EQUAL:
		return 2
	}
	return 1
}

func (tok Token) String() string {
	switch tok.Kind {
	case TOKEN_NUMBER, TOKEN_REGISTER:
		return fmt.Sprintf("%v(%v)", tok.Kind, tok.Text)
	}
	return tok.Kind.String()
}

// Span is a half-open range [Start, End) of token indexes.
type Span struct {
	Start int
	End   int
}

// Len returns the number of tokens in the span.
func (span Span) Len() int {
	return span.End - span.Start
}

// valid returns true if the span lies inside a sequence of n tokens.
func (span Span) valid(n int) bool {
	return span.Start >= 0 && span.Start <= span.End && span.End <= n
}

func (span Span) String() string {
	return fmt.Sprintf("[%d,%d)", span.Start, span.End)
}
