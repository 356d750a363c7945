package eval

import (
	"fmt"

	exprerrors "github.com/randalmurphal/exprkit/pkg/exprkit/errors"
	"github.com/randalmurphal/exprkit/pkg/exprkit/token"
)

// Evaluate runs the postfix sequence on a value stack and returns the
// single remaining value.
//
// A variable token fails with MissingKeyError because substitution should
// have replaced it. A parenthesis fails with MalformedError.
func Evaluate(postfix []token.Token) (token.Literal, error) {
	values := make([]token.Literal, 0, len(postfix))

	for _, tok := range postfix {
		switch tok.Kind {
		case token.KindLiteral:
			values = append(values, tok.Literal)

		case token.KindOperator:
			op := tok.Operator
			if len(values) < op.Arity() {
				return token.Literal{}, &exprerrors.StackUnderflowError{
					Operator:  op.Symbol,
					Needed:    op.Arity(),
					Available: len(values),
				}
			}

			var (
				result token.Literal
				err    error
			)
			if op.Unary {
				operand := values[len(values)-1]
				values = values[:len(values)-1]
				result, err = Unary(op.Kind, operand)
			} else {
				right := values[len(values)-1]
				left := values[len(values)-2]
				values = values[:len(values)-2]
				result, err = Binary(op.Kind, left, right)
			}
			if err != nil {
				return token.Literal{}, err
			}
			values = append(values, result)

		case token.KindVariable:
			return token.Literal{}, &exprerrors.MissingKeyError{Name: tok.Name}

		case token.KindParen:
			return token.Literal{}, &exprerrors.MalformedError{
				Remaining: len(values),
				Reason:    fmt.Sprintf("unbalanced parenthesis %q", tok.String()),
			}

		default:
			return token.Literal{}, &exprerrors.MalformedError{
				Remaining: len(values),
				Reason:    "invalid token",
			}
		}
	}

	switch len(values) {
	case 1:
		return values[0], nil
	case 0:
		return token.Literal{}, &exprerrors.MalformedError{Reason: "expression is empty"}
	default:
		return token.Literal{}, &exprerrors.MalformedError{
			Remaining: len(values),
			Reason:    fmt.Sprintf("%d values left without an operator", len(values)),
		}
	}
}
