// Package oracle generates random expressions and computes their expected
// values independently of the expression engine.
package oracle

import (
	"errors"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/sdb/expr"
	"github.com/ezrec/sdb/translate"
)

var f = translate.From

var (
	ErrDivisionByZero = errors.New(f("division by zero"))
	ErrResult         = errors.New(f("expression did not produce a word"))
)

// Everything is masked to the machine word.
const prelude = `
def w(x):
    return x & 0xffffffff
`

// Eval computes the value of an expression tree with starlark, masking
// every intermediate result to 32 bits.
func Eval(node *Node) (value expr.Word, err error) {
	var text strings.Builder
	node.starlark(&text)

	divZero := false
	div := starlark.NewBuiltin("div", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
		var x, y starlark.Int
		err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y)
		if err != nil {
			return
		}
		if y.Sign() == 0 {
			divZero = true
			err = ErrDivisionByZero
			return
		}
		rc, err = starlark.Binary(syntax.SLASHSLASH, x, y)
		return
	})

	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{"div": div}
	prog := prelude + "rc=" + text.String() + "\n"

	dict, err := starlark.ExecFileOptions(&opts, &thread, "oracle", prog, pred)
	if divZero {
		err = ErrDivisionByZero
		return
	}
	if err != nil {
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrResult
		return
	}
	st_uint64, ok := st_int.Uint64()
	if !ok || st_uint64 > 0xffffffff {
		err = ErrResult
		return
	}

	value = expr.Word(st_uint64)
	return
}
