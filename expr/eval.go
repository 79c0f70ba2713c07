// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expr

import (
	"strconv"
	"strings"
)

// Registers resolves a register name, without its '$' sigil, to its
// current value.
type Registers interface {
	ValueOf(name string) (value Word, ok bool)
}

// RegisterMap is a fixed register table.
type RegisterMap map[string]Word

func (rm RegisterMap) ValueOf(name string) (value Word, ok bool) {
	value, ok = rm[name]
	return
}

// Evaluator turns expression text into a word. An Evaluator holds no per
// call state, and may be shared by concurrent callers as long as its
// Registers may be.
type Evaluator struct {
	Lexer               // Tokenizer limits.
	Registers Registers // Register lookup, if nil all references fail.
}

// Evaluate tokenizes the text and evaluates the whole token sequence.
// Failures are returned as an ErrExpr wrapping the specific error.
func (ev *Evaluator) Evaluate(text string) (value Word, err error) {
	defer func() {
		if err != nil {
			err = ErrExpr{Expr: text, Err: err}
		}
	}()

	tokens, err := ev.Tokenize(text)
	if err != nil {
		return
	}

	value, err = ev.Eval(tokens, Span{Start: 0, End: len(tokens)})

	logger.Debugf("expression %q value is: %v (err %v)", text, value, err)

	return
}

// Eval evaluates a span of tokens.
func (ev *Evaluator) Eval(tokens []Token, span Span) (value Word, err error) {
	if !span.valid(len(tokens)) || span.Len() == 0 {
		err = ev.malformed(tokens, span)
		return
	}

	if span.Len() == 1 {
		return ev.atom(tokens, span.Start)
	}

	if !IsBalanced(tokens, span) {
		err = ev.malformed(tokens, span)
		return
	}

	if IsFullyParenthesized(tokens, span) {
		return ev.Eval(tokens, Span{Start: span.Start + 1, End: span.End - 1})
	}

	op, ok := MainOperator(tokens, span)
	if !ok {
		err = ev.malformed(tokens, span)
		return
	}

	left, err := ev.Eval(tokens, Span{Start: span.Start, End: op})
	if err != nil {
		return
	}

	right, err := ev.Eval(tokens, Span{Start: op + 1, End: span.End})
	if err != nil {
		return
	}

	switch tokens[op].Kind {
	case TOKEN_PLUS:
		value = left + right
	case TOKEN_MINUS:
		value = left - right
	case TOKEN_STAR:
		value = left * right
	case TOKEN_SLASH:
		if right == 0 {
			err = ErrDivisionByZero{Span: span, Pos: tokens[op].Pos}
			return
		}
		value = left / right
	case TOKEN_EQUAL:
		if left == right {
			value = 1
		}
	}

	return
}

// atom evaluates the single token at index n.
func (ev *Evaluator) atom(tokens []Token, n int) (value Word, err error) {
	tok := tokens[n]
	switch tok.Kind {
	case TOKEN_NUMBER:
		var v64 uint64
		if strings.HasPrefix(tok.Text, "0x") || strings.HasPrefix(tok.Text, "0X") {
			v64, err = strconv.ParseUint(tok.Text[2:], 16, 32)
		} else {
			v64, err = strconv.ParseUint(tok.Text, 10, 32)
		}
		if err != nil {
			err = ErrNumberTooWide{Pos: tok.Pos, Width: len(tok.Text)}
			return
		}
		value = Word(v64)
	case TOKEN_REGISTER:
		name := tok.Text[1:]
		var ok bool
		if ev.Registers != nil {
			value, ok = ev.Registers.ValueOf(name)
		}
		if !ok {
			err = ErrUnknownRegister{Name: name, Pos: tok.Pos}
			return
		}
	default:
		err = ErrMalformed{Span: Span{Start: n, End: n + 1}, Pos: tok.Pos}
	}

	return
}

// malformed builds an ErrMalformed for the span, locating it in the source.
func (ev *Evaluator) malformed(tokens []Token, span Span) error {
	var pos int
	switch {
	case span.Start >= 0 && span.Start < len(tokens):
		pos = tokens[span.Start].Pos
	case len(tokens) > 0:
		last := tokens[len(tokens)-1]
		pos = last.Pos + last.Len()
	}

	return ErrMalformed{Span: span, Pos: pos}
}

// Evaluate evaluates text with the default limits and no registers.
func Evaluate(text string) (value Word, err error) {
	ev := &Evaluator{}
	return ev.Evaluate(text)
}
