package eval

import (
	"cmp"

	exprerrors "github.com/randalmurphal/exprkit/pkg/exprkit/errors"
	"github.com/randalmurphal/exprkit/pkg/exprkit/token"
)

// Binary applies a two-operand operator.
func Binary(kind token.OperatorKind, left, right token.Literal) (token.Literal, error) {
	lt, rt := left.Type(), right.Type()

	switch {
	case lt == token.IntegerType && rt == token.IntegerType:
		l, _ := left.AsInteger()
		r, _ := right.AsInteger()
		return integerOp(kind, l, r)

	case isNumeric(lt) && isNumeric(rt):
		return decimalOp(kind, toDecimal(left), toDecimal(right), lt, rt)

	case lt == token.BooleanType && rt == token.BooleanType:
		l, _ := left.AsBool()
		r, _ := right.AsBool()
		return booleanOp(kind, l, r)

	case lt == token.StringType && rt == token.StringType:
		l, _ := left.AsString()
		r, _ := right.AsString()
		return stringOp(kind, l, r)
	}
	return token.Literal{}, mismatch(kind, lt, rt)
}

// Unary applies a one-operand operator. Only ! on a boolean is defined.
func Unary(kind token.OperatorKind, operand token.Literal) (token.Literal, error) {
	if b, ok := operand.AsBool(); ok && kind == token.Not {
		return token.Bool(!b), nil
	}
	return token.Literal{}, &exprerrors.TypeMismatchError{
		Operator: kind.String(),
		Left:     operand.Type().String(),
	}
}

func integerOp(kind token.OperatorKind, l, r int64) (token.Literal, error) {
	switch kind {
	case token.Equal, token.NotEqual, token.Greater, token.GreaterOrEqual, token.Less, token.LessOrEqual:
		return token.Bool(relate(kind, l, r)), nil
	case token.Plus:
		return token.Integer(l + r), nil
	case token.Minus:
		return token.Integer(l - r), nil
	case token.Multiply:
		return token.Integer(l * r), nil
	case token.Divide:
		if r == 0 {
			return token.Literal{}, &exprerrors.ArithmeticError{Operator: kind.String(), Message: "integer division by zero"}
		}
		return token.Integer(l / r), nil
	case token.PowerOf:
		if r < 0 {
			return token.Literal{}, &exprerrors.ArithmeticError{Operator: kind.String(), Message: "negative integer exponent"}
		}
		return token.Integer(ipow(l, r)), nil
	case token.Or, token.And, token.Not:
		return token.Literal{}, mismatch(kind, token.IntegerType, token.IntegerType)
	}
	return token.Literal{}, mismatch(kind, token.IntegerType, token.IntegerType)
}

func decimalOp(kind token.OperatorKind, l, r float64, lt, rt token.LiteralType) (token.Literal, error) {
	switch kind {
	case token.Equal, token.NotEqual, token.Greater, token.GreaterOrEqual, token.Less, token.LessOrEqual:
		return token.Bool(relate(kind, l, r)), nil
	case token.Plus:
		return token.Decimal(l + r), nil
	case token.Minus:
		return token.Decimal(l - r), nil
	case token.Multiply:
		return token.Decimal(l * r), nil
	case token.Divide:
		return token.Decimal(l / r), nil
	case token.PowerOf, token.Or, token.And, token.Not:
		return token.Literal{}, mismatch(kind, lt, rt)
	}
	return token.Literal{}, mismatch(kind, lt, rt)
}

func booleanOp(kind token.OperatorKind, l, r bool) (token.Literal, error) {
	switch kind {
	case token.Or:
		return token.Bool(l || r), nil
	case token.And:
		return token.Bool(l && r), nil
	case token.Equal, token.NotEqual, token.Greater, token.GreaterOrEqual, token.Less, token.LessOrEqual:
		return token.Bool(relate(kind, boolRank(l), boolRank(r))), nil
	case token.Plus, token.Minus, token.Multiply, token.Divide, token.PowerOf, token.Not:
		return token.Literal{}, mismatch(kind, token.BooleanType, token.BooleanType)
	}
	return token.Literal{}, mismatch(kind, token.BooleanType, token.BooleanType)
}

func stringOp(kind token.OperatorKind, l, r string) (token.Literal, error) {
	switch kind {
	case token.Equal, token.NotEqual, token.Greater, token.GreaterOrEqual, token.Less, token.LessOrEqual:
		return token.Bool(relate(kind, l, r)), nil
	case token.Plus, token.Minus, token.Multiply, token.Divide, token.PowerOf, token.Or, token.And, token.Not:
		return token.Literal{}, mismatch(kind, token.StringType, token.StringType)
	}
	return token.Literal{}, mismatch(kind, token.StringType, token.StringType)
}

// relate evaluates a comparison kind. Any other kind reports false.
func relate[T cmp.Ordered](kind token.OperatorKind, l, r T) bool {
	switch kind {
	case token.Equal:
		return l == r
	case token.NotEqual:
		return l != r
	case token.Greater:
		return l > r
	case token.GreaterOrEqual:
		return l >= r
	case token.Less:
		return l < r
	case token.LessOrEqual:
		return l <= r
	}
	return false
}

// ipow computes base^exp by squaring. Overflow wraps.
func ipow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isNumeric(t token.LiteralType) bool {
	return t == token.IntegerType || t == token.DecimalType
}

func toDecimal(l token.Literal) float64 {
	if i, ok := l.AsInteger(); ok {
		return float64(i)
	}
	f, _ := l.AsDecimal()
	return f
}

func mismatch(kind token.OperatorKind, lt, rt token.LiteralType) error {
	return &exprerrors.TypeMismatchError{
		Operator: kind.String(),
		Left:     lt.String(),
		Right:    rt.String(),
	}
}
