package expr

import (
	"strings"

	"github.com/ezrec/sdb/translate"
)

var f = translate.From

// ErrUnexpectedChar indicates that no lexical rule matched at Pos.
type ErrUnexpectedChar struct {
	Pos int
}

func (err ErrUnexpectedChar) Error() string {
	return f("unexpected character at position %d", err.Pos)
}

func (err ErrUnexpectedChar) Is(target error) (ok bool) {
	_, ok = target.(ErrUnexpectedChar)
	return
}

func (err ErrUnexpectedChar) Position() int { return err.Pos }

// ErrNumberTooWide indicates a numeric literal with more than Width digits.
type ErrNumberTooWide struct {
	Pos   int
	Width int
}

func (err ErrNumberTooWide) Error() string {
	return f("number at position %d wider than %d digits", err.Pos, err.Width)
}

func (err ErrNumberTooWide) Is(target error) (ok bool) {
	_, ok = target.(ErrNumberTooWide)
	return
}

func (err ErrNumberTooWide) Position() int { return err.Pos }

// ErrTooManyTokens indicates an expression longer than Limit tokens.
type ErrTooManyTokens struct {
	Pos   int
	Limit int
}

func (err ErrTooManyTokens) Error() string {
	return f("more than %d tokens at position %d", err.Limit, err.Pos)
}

func (err ErrTooManyTokens) Is(target error) (ok bool) {
	_, ok = target.(ErrTooManyTokens)
	return
}

func (err ErrTooManyTokens) Position() int { return err.Pos }

// ErrMalformed indicates unbalanced or empty parentheses, a missing
// operand, or a token range with no operator to split on.
type ErrMalformed struct {
	Span Span
	Pos  int
}

func (err ErrMalformed) Error() string {
	return f("malformed expression at tokens %v", err.Span)
}

func (err ErrMalformed) Is(target error) (ok bool) {
	_, ok = target.(ErrMalformed)
	return
}

func (err ErrMalformed) Position() int { return err.Pos }

// ErrUnknownRegister indicates a register reference that did not resolve.
type ErrUnknownRegister struct {
	Name string
	Pos  int
}

func (err ErrUnknownRegister) Error() string {
	return f("unknown register '$%v'", err.Name)
}

func (err ErrUnknownRegister) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownRegister)
	return
}

func (err ErrUnknownRegister) Position() int { return err.Pos }

// ErrDivisionByZero indicates a '/' whose right operand evaluated to zero.
type ErrDivisionByZero struct {
	Span Span
	Pos  int
}

func (err ErrDivisionByZero) Error() string {
	return f("division by zero at tokens %v", err.Span)
}

func (err ErrDivisionByZero) Is(target error) (ok bool) {
	_, ok = target.(ErrDivisionByZero)
	return
}

func (err ErrDivisionByZero) Position() int { return err.Pos }

// ErrExpr attaches the source text to an evaluation failure.
type ErrExpr struct {
	Expr string
	Err  error
}

func (err ErrExpr) Error() string {
	return f("'%v' %v", err.Expr, err.Err)
}

func (err ErrExpr) Unwrap() error {
	return err.Err
}

// Caret returns the source text with a marker line under the offending
// offset, or just the source text if the failure has no offset.
func (err ErrExpr) Caret() string {
	pos, ok := err.Err.(interface{ Position() int })
	if !ok {
		return err.Expr
	}

	offset := min(max(pos.Position(), 0), len(err.Expr))
	return err.Expr + "\n" + strings.Repeat(" ", offset) + "^"
}
