package expr

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		input string
		value Word
	}){
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-3-2", 5},
		{"100/7/2", 7},
		{"8/3", 2},
		{"2*(3+4)*5", 70},
		{"(1+2)*(3+4)", 21},
		{"((1))", 1},
		{" 1 + 2 ", 3},
		{"0x10*2", 32},
		{"0xFFFFFFFF+1", 0},
		{"3-5", 0xfffffffe},
		{"999999999*5", 705032699},
		{"1+1==2", 1},
		{"2==3", 0},
		{"1==1==1", 1},
		{"4/(1+1)", 2},
		{"0", 0},
	}

	for _, entry := range table {
		value, err := Evaluate(entry.input)
		assert.NoError(err, entry.input)
		assert.Equal(entry.value, value, entry.input)
	}
}

func TestEvaluateErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		input string
		err   error
	}){
		{"5/0", ErrDivisionByZero{}},
		{"1/(2-2)", ErrDivisionByZero{}},
		{"(1+2", ErrMalformed{}},
		{"1+2)", ErrMalformed{}},
		{"()", ErrMalformed{}},
		{"", ErrMalformed{}},
		{"1+", ErrMalformed{}},
		{"-1", ErrMalformed{}},
		{"1 2", ErrMalformed{}},
		{"(", ErrMalformed{}},
		{"+", ErrMalformed{}},
		{"99999999999999999999", ErrNumberTooWide{}},
		{"1 @ 2", ErrUnexpectedChar{}},
		{"$a0", ErrUnknownRegister{}},
	}

	for _, entry := range table {
		_, err := Evaluate(entry.input)
		assert.ErrorIs(err, entry.err, entry.input)

		var expr_err ErrExpr
		assert.True(errors.As(err, &expr_err), entry.input)
		assert.Equal(entry.input, expr_err.Expr, entry.input)
	}
}

func TestEvaluateErrorDetail(t *testing.T) {
	assert := assert.New(t)

	_, err := Evaluate("1+5/0")
	var div ErrDivisionByZero
	assert.True(errors.As(err, &div))
	assert.Equal(Span{2, 5}, div.Span)
	assert.Equal(3, div.Pos)

	_, err = Evaluate("(1+2")
	var bad ErrMalformed
	assert.True(errors.As(err, &bad))
	assert.Equal(Span{0, 4}, bad.Span)

	_, err = Evaluate("1+")
	assert.True(errors.As(err, &bad))
	assert.Equal(Span{2, 2}, bad.Span)
	assert.Equal(2, bad.Pos)
}

func TestEvaluateRegisters(t *testing.T) {
	assert := assert.New(t)

	ev := &Evaluator{Registers: RegisterMap{"a0": 7, "$0": 0, "sp": 0x80001000}}

	value, err := ev.Evaluate("$a0+1")
	assert.NoError(err)
	assert.Equal(Word(8), value)

	value, err = ev.Evaluate("$sp - 0x10")
	assert.NoError(err)
	assert.Equal(Word(0x80000ff0), value)

	value, err = ev.Evaluate("$$0 == 0")
	assert.NoError(err)
	assert.Equal(Word(1), value)

	_, err = ev.Evaluate("$zz+1")
	var unknown ErrUnknownRegister
	assert.True(errors.As(err, &unknown))
	assert.Equal(ErrUnknownRegister{Name: "zz", Pos: 0}, unknown)

	// The first failure short-circuits; $zz is never resolved.
	_, err = ev.Evaluate("1/0+$zz")
	assert.ErrorIs(err, ErrDivisionByZero{})
}

func TestEvaluateCaret(t *testing.T) {
	assert := assert.New(t)

	_, err := Evaluate("1 @ 2")
	var expr_err ErrExpr
	assert.True(errors.As(err, &expr_err))
	assert.Equal("1 @ 2\n  ^", expr_err.Caret())

	no_pos := ErrExpr{Expr: "1", Err: errors.New("other")}
	assert.Equal("1", no_pos.Caret())
}

func TestEvalSpan(t *testing.T) {
	assert := assert.New(t)

	tokens := mustTokenize(t, "(1+2)*(3+4)")
	ev := &Evaluator{}

	value, err := ev.Eval(tokens, Span{0, 5})
	assert.NoError(err)
	assert.Equal(Word(3), value)

	value, err = ev.Eval(tokens, Span{6, 11})
	assert.NoError(err)
	assert.Equal(Word(7), value)

	_, err = ev.Eval(tokens, Span{5, 6})
	assert.ErrorIs(err, ErrMalformed{})

	_, err = ev.Eval(tokens, Span{0, 12})
	assert.ErrorIs(err, ErrMalformed{})
}

func TestEvaluateConcurrent(t *testing.T) {
	assert := assert.New(t)

	ev := &Evaluator{Registers: RegisterMap{"a0": 7}}

	var wg sync.WaitGroup
	values := make([]Word, 64)
	errs := make([]error, 64)
	for n := range values {
		wg.Add(1)
		go func() {
			defer wg.Done()
			values[n], errs[n] = ev.Evaluate(fmt.Sprintf("(%d + $a0) * 2", n))
		}()
	}
	wg.Wait()

	for n := range values {
		assert.NoError(errs[n])
		assert.Equal(Word((n+7)*2), values[n])
	}
}
