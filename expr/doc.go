// Package expr implements the expression engine of the debugging monitor.
//
// An expression is turned into a machine word in four steps: the text is
// tokenized with a fixed, priority ordered table of lexical rules; the token
// range is checked for well formed parentheses; the operator applied last is
// selected by precedence with a rightmost tie-break; and the range is then
// evaluated recursively around that operator.
//
// The grammar understood by the engine is:
//
//	expr   := cmp
//	cmp    := sum ('==' sum)*
//	sum    := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := NUMBER | '$' REGISTER | '(' expr ')'
//	NUMBER := [0-9]{1,9} | 0x[0-9a-fA-F]{1,8}
//
// All arithmetic is unsigned and wraps at the 32-bit word width. Division
// truncates, and a zero divisor is an error.
package expr
