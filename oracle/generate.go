package oracle

import (
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/ezrec/sdb/expr"
)

const (
	MAX_DEPTH   = 6    // Default maximum tree depth.
	MAX_RETRIES = 1000 // Attempts before Generate gives up.
)

var (
	ErrExhausted = errors.New(f("no valid expression generated"))
)

var operators = []expr.Kind{
	expr.TOKEN_PLUS, expr.TOKEN_PLUS,
	expr.TOKEN_MINUS, expr.TOKEN_MINUS,
	expr.TOKEN_STAR, expr.TOKEN_STAR,
	expr.TOKEN_SLASH,
	expr.TOKEN_EQUAL,
}

// Generator produces random expressions the engine accepts.
type Generator struct {
	Rand      *rand.Rand
	MaxDepth  int // MAX_DEPTH if zero.
	MaxTokens int // expr.MAX_TOKENS if zero.
}

// NewGenerator returns a generator with a seeded source.
func NewGenerator(seed uint64) *Generator {
	return &Generator{Rand: rand.New(rand.NewPCG(seed, seed^0x5eed))}
}

func (gen *Generator) number() (node *Node) {
	switch gen.Rand.IntN(8) {
	case 0:
		node = &Node{Op: expr.TOKEN_NUMBER, Value: gen.Rand.Uint32(), Hex: true}
	case 1:
		node = Number(expr.Word(gen.Rand.IntN(1_000_000_000)))
	default:
		node = Number(expr.Word(gen.Rand.IntN(100)))
	}
	return
}

// Node returns a random expression tree.
func (gen *Generator) Node(depth int) (node *Node) {
	maxDepth := gen.MaxDepth
	if maxDepth <= 0 {
		maxDepth = MAX_DEPTH
	}

	if depth >= maxDepth {
		return gen.number()
	}

	switch gen.Rand.IntN(6) {
	case 0, 1:
		node = gen.number()
	case 2:
		node = Group(gen.Node(depth + 1))
	default:
		op := operators[gen.Rand.IntN(len(operators))]
		node = Binary(op, gen.Node(depth+1), gen.Node(depth+1))
	}
	return
}

func (gen *Generator) space() string {
	if gen.Rand.IntN(4) == 0 {
		return " "
	}
	return ""
}

// Generate returns the text of a random expression and its value. Trees
// with too many tokens or a zero divisor are discarded.
func (gen *Generator) Generate() (text string, value expr.Word, err error) {
	maxTokens := gen.MaxTokens
	if maxTokens <= 0 {
		maxTokens = expr.MAX_TOKENS
	}

	for range MAX_RETRIES {
		node := gen.Node(0)
		if node.Tokens() > maxTokens {
			continue
		}

		value, err = Eval(node)
		if errors.Is(err, ErrDivisionByZero) {
			continue
		}
		if err != nil {
			return
		}

		var builder strings.Builder
		node.render(&builder, gen.space)
		text = builder.String()
		return
	}

	err = ErrExhausted
	return
}
