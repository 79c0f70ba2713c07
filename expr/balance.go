package expr

// IsBalanced returns true if every '(' in the span has a matching ')' at a
// greater index inside the span, and vice versa.
func IsBalanced(tokens []Token, span Span) bool {
	if !span.valid(len(tokens)) {
		return false
	}

	var parens int
	for _, tok := range tokens[span.Start:span.End] {
		if tok.Kind == TOKEN_LPAREN || tok.Kind == TOKEN_RPAREN {
			parens++
		}
	}
	if parens%2 != 0 {
		return false
	}

	var depth int
	for _, tok := range tokens[span.Start:span.End] {
		switch tok.Kind {
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			if depth == 0 {
				return false
			}
			depth--
		}
	}

	return depth == 0
}

// IsFullyParenthesized returns true if the first token of the span is a '('
// whose partner is exactly the last token of the span.
//
// "(1+2)*(3+4)" is balanced, but not fully parenthesized.
func IsFullyParenthesized(tokens []Token, span Span) bool {
	if !span.valid(len(tokens)) || span.Len() < 2 {
		return false
	}

	if tokens[span.Start].Kind != TOKEN_LPAREN || tokens[span.End-1].Kind != TOKEN_RPAREN {
		return false
	}

	partner, ok := closing(tokens, span)
	return ok && partner == span.End-1
}

// closing returns the index of the ')' that matches the '(' at the start of
// the span.
func closing(tokens []Token, span Span) (index int, ok bool) {
	var depth int
	for n := span.Start; n < span.End; n++ {
		switch tokens[n].Kind {
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			depth--
			if depth == 0 {
				return n, true
			}
		}
	}

	return
}
