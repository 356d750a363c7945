// Package postfix reorders infix tokens into postfix (reverse Polish)
// order using the shunting-yard algorithm.
package postfix

import "github.com/randalmurphal/exprkit/pkg/exprkit/token"

// Convert returns tokens in postfix order.
//
// Operands go straight to the output. An incoming operator first moves to
// the output every stacked operator that binds tighter, or equally tight
// when the incoming one is left-associative; prefix operators move
// nothing. A right parenthesis drains the stack down to the matching left
// parenthesis, and both are dropped.
//
// Convert never fails. Unbalanced parentheses are passed to the output so
// that evaluation reports the expression as malformed.
func Convert(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	var ops stack[token.Token]

	for _, tok := range tokens {
		switch {
		case tok.IsLiteral(), tok.IsVariable():
			out = append(out, tok)

		case tok.IsOperator():
			for !tok.Operator.Unary {
				top, ok := ops.peek()
				if !ok || !top.IsOperator() || !yields(top.Operator, tok.Operator) {
					break
				}
				ops.pop()
				out = append(out, top)
			}
			ops.push(tok)

		case tok.IsLeftParen():
			ops.push(tok)

		case tok.IsRightParen():
			matched := false
			for ops.len() > 0 {
				top, _ := ops.pop()
				if top.IsLeftParen() {
					matched = true
					break
				}
				out = append(out, top)
			}
			if !matched {
				out = append(out, tok)
			}
		}
	}

	for ops.len() > 0 {
		top, _ := ops.pop()
		out = append(out, top)
	}
	return out
}

// yields reports whether the stacked operator top must be output before
// incoming is pushed.
func yields(top, incoming token.Operator) bool {
	if top.Precedence > incoming.Precedence {
		return true
	}
	return top.Precedence == incoming.Precedence && incoming.LeftAssociative
}
