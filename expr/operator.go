package expr

// Precedence tiers; the lowest tier in a range is applied last.
const (
	TIER_EQUAL = 0 // ==
	TIER_SUM   = 1 // + -
	TIER_TERM  = 2 // * /
)

// precedence returns the tier of a binary operator kind.
func precedence(kind Kind) (tier int, ok bool) {
	switch kind {
	case TOKEN_EQUAL:
		return TIER_EQUAL, true
	case TOKEN_PLUS, TOKEN_MINUS:
		return TIER_SUM, true
	case TOKEN_STAR, TOKEN_SLASH:
		return TIER_TERM, true
	}

	return
}

// MainOperator returns the index of the operator to be applied last when
// evaluating the span.
//
// Operators nested inside parentheses are not candidates. Among the rest,
// the lowest precedence tier wins, and within a tier the rightmost operator
// wins, so that "a-b-c" splits as "(a-b)-c".
func MainOperator(tokens []Token, span Span) (index int, ok bool) {
	if !span.valid(len(tokens)) {
		return
	}

	var depth int
	var best int
	for n := span.Start; n < span.End; n++ {
		kind := tokens[n].Kind
		switch kind {
		case TOKEN_LPAREN:
			depth++
			continue
		case TOKEN_RPAREN:
			depth--
			continue
		}

		if depth > 0 {
			continue
		}

		tier, is_op := precedence(kind)
		if !is_op {
			continue
		}

		if !ok || tier <= best {
			index = n
			best = tier
			ok = true
		}
	}

	return
}
