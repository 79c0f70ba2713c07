// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expr

import (
	"regexp"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

const (
	MAX_TOKENS     = 32 // Default maximum number of tokens in an expression.
	MAX_DIGITS     = 9  // Default maximum decimal literal width.
	MAX_HEX_DIGITS = 8  // Maximum hexadecimal literal width.
)

var logger logrus.FieldLogger = logrus.New()

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { logger = l }

// ruleClass is what a lexical rule produces on a match.
type ruleClass int

const (
	ruleToken ruleClass = iota // Emits a token of the rule's kind.
	ruleSpace                  // Consumed and discarded.
	ruleHex                    // Hexadecimal number literal.
	ruleDecimal                // Decimal number literal.
)

type rule struct {
	re    *regexp.Regexp
	class ruleClass
	kind  Kind
}

// rules is tried in order at each position; the first match wins.
var rules = []rule{
	{regexp.MustCompile(`^\(`), ruleToken, TOKEN_LPAREN},
	{regexp.MustCompile(`^\)`), ruleToken, TOKEN_RPAREN},
	{regexp.MustCompile(`^\s+`), ruleSpace, 0},
	{regexp.MustCompile(`^\*`), ruleToken, TOKEN_STAR},
	{regexp.MustCompile(`^/`), ruleToken, TOKEN_SLASH},
	{regexp.MustCompile(`^\+`), ruleToken, TOKEN_PLUS},
	{regexp.MustCompile(`^-`), ruleToken, TOKEN_MINUS},
	{regexp.MustCompile(`^==`), ruleToken, TOKEN_EQUAL},
	{regexp.MustCompile(`^\$\$?[0-9A-Za-z_]+`), ruleToken, TOKEN_REGISTER},
	{regexp.MustCompile(`^0[xX][0-9a-fA-F]+`), ruleHex, TOKEN_NUMBER},
	{regexp.MustCompile(`^[0-9]+`), ruleDecimal, TOKEN_NUMBER},
}

// Lexer converts expression text into tokens. The zero value uses the
// default limits.
type Lexer struct {
	MaxTokens int // Maximum tokens per expression, MAX_TOKENS if zero.
	MaxDigits int // Maximum decimal literal width, MAX_DIGITS if zero.
}

func (lex *Lexer) maxTokens() int {
	if lex.MaxTokens <= 0 {
		return MAX_TOKENS
	}
	return lex.MaxTokens
}

func (lex *Lexer) maxDigits() int {
	if lex.MaxDigits <= 0 || lex.MaxDigits > MAX_DIGITS {
		return MAX_DIGITS
	}
	return lex.MaxDigits
}

// Tokenize scans the input left to right, producing a fresh token sequence.
// No partial sequence is returned on failure.
func (lex *Lexer) Tokenize(input string) (tokens []Token, err error) {
	limit := lex.maxTokens()
	digits := lex.maxDigits()

	position := 0
	for position < len(input) {
		var loc []int
		var n int
		for n = range rules {
			loc = rules[n].re.FindStringIndex(input[position:])
			if loc != nil {
				break
			}
		}
		if loc == nil {
			err = ErrUnexpectedChar{Pos: position}
			return nil, err
		}

		r := &rules[n]
		text := input[position : position+loc[1]]

		logger.Debugf("match rules[%d] = %q at position %d with len %d: %v",
			n, r.re.String(), position, len(text), text)

		switch r.class {
		case ruleSpace:
			position += len(text)
			continue
		case ruleHex:
			if len(text)-2 > MAX_HEX_DIGITS {
				err = ErrNumberTooWide{Pos: position, Width: MAX_HEX_DIGITS}
				return nil, err
			}
		case ruleDecimal:
			if len(text) > digits {
				err = ErrNumberTooWide{Pos: position, Width: digits}
				return nil, err
			}
		}

		if len(tokens) == limit {
			err = ErrTooManyTokens{Pos: position, Limit: limit}
			return nil, err
		}

		tok := Token{Kind: r.kind, Pos: position}
		if r.kind == TOKEN_NUMBER || r.kind == TOKEN_REGISTER {
			tok.Text = text
		}
		tokens = append(tokens, tok)

		position += len(text)
	}

	logger.Debugf("tokens: %s", spew.Sprint(tokens))

	return
}

// Tokenize scans the input with the default limits.
func Tokenize(input string) (tokens []Token, err error) {
	lex := &Lexer{}
	return lex.Tokenize(input)
}
