package oracle

import (
	"fmt"
	"strings"

	"github.com/ezrec/sdb/expr"
)

// Node is an expression tree. Leaves are numbers; TOKEN_LPAREN is an
// explicit parenthesized group around Left.
type Node struct {
	Op    expr.Kind
	Value expr.Word // Leaf value.
	Hex   bool      // Leaf is rendered in hexadecimal.
	Left  *Node
	Right *Node
}

// Number returns a decimal leaf.
func Number(value expr.Word) *Node {
	return &Node{Op: expr.TOKEN_NUMBER, Value: value}
}

// Binary returns an operator node.
func Binary(op expr.Kind, left, right *Node) *Node {
	return &Node{Op: op, Left: left, Right: right}
}

// Group returns a parenthesized node.
func Group(inner *Node) *Node {
	return &Node{Op: expr.TOKEN_LPAREN, Left: inner}
}

// tier is the binding strength of an operator; -1 for non-operators.
func tier(op expr.Kind) int {
	switch op {
	case expr.TOKEN_EQUAL:
		return 0
	case expr.TOKEN_PLUS, expr.TOKEN_MINUS:
		return 1
	case expr.TOKEN_STAR, expr.TOKEN_SLASH:
		return 2
	}
	return -1
}

// wrap reports whether a child must be parenthesized under its parent for
// left-associative parsing to rebuild the same tree.
func (node *Node) wrap(child *Node, right bool) bool {
	ct := tier(child.Op)
	if ct < 0 {
		return false
	}
	pt := tier(node.Op)
	return ct < pt || (right && ct == pt)
}

// render writes the expression text, calling space between tokens, and
// returns the number of tokens written.
func (node *Node) render(text *strings.Builder, space func() string) (tokens int) {
	text.WriteString(space())

	switch node.Op {
	case expr.TOKEN_NUMBER:
		if node.Hex {
			fmt.Fprintf(text, "0x%x", node.Value)
		} else {
			fmt.Fprintf(text, "%d", node.Value)
		}
		tokens = 1
	case expr.TOKEN_LPAREN:
		text.WriteString("(")
		tokens = 2 + node.Left.render(text, space)
		text.WriteString(space())
		text.WriteString(")")
	default:
		tokens = 1
		for n, child := range []*Node{node.Left, node.Right} {
			if n == 1 {
				text.WriteString(space())
				text.WriteString(node.Op.String())
			}
			if node.wrap(child, n == 1) {
				tokens += Group(child).render(text, space)
			} else {
				tokens += child.render(text, space)
			}
		}
	}

	return
}

// String returns the expression text without spaces.
func (node *Node) String() string {
	var text strings.Builder
	node.render(&text, func() string { return "" })
	return text.String()
}

// Tokens returns the number of tokens in the expression text.
func (node *Node) Tokens() int {
	var text strings.Builder
	return node.render(&text, func() string { return "" })
}

// starlark writes the word-masked starlark form of the expression.
func (node *Node) starlark(text *strings.Builder) {
	switch node.Op {
	case expr.TOKEN_NUMBER:
		fmt.Fprintf(text, "%d", node.Value)
	case expr.TOKEN_LPAREN:
		node.Left.starlark(text)
	case expr.TOKEN_SLASH:
		text.WriteString("div(")
		node.Left.starlark(text)
		text.WriteString(", ")
		node.Right.starlark(text)
		text.WriteString(")")
	case expr.TOKEN_EQUAL:
		text.WriteString("(1 if ")
		node.Left.starlark(text)
		text.WriteString(" == ")
		node.Right.starlark(text)
		text.WriteString(" else 0)")
	default:
		text.WriteString("w(")
		node.Left.starlark(text)
		text.WriteString(" " + node.Op.String() + " ")
		node.Right.starlark(text)
		text.WriteString(")")
	}
}
