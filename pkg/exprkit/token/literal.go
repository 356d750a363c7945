package token

import (
	"math"
	"strconv"
	"strings"
)

// LiteralType identifies which variant a Literal holds.
type LiteralType uint8

const (
	// InvalidType is the zero value; it is never produced by the lexer.
	InvalidType LiteralType = iota
	StringType
	BooleanType
	DecimalType
	IntegerType
)

// String returns the type name used in error messages.
func (t LiteralType) String() string {
	switch t {
	case StringType:
		return "string"
	case BooleanType:
		return "boolean"
	case DecimalType:
		return "decimal"
	case IntegerType:
		return "integer"
	default:
		return "invalid"
	}
}

// Literal is an immutable typed value: a string, a boolean, a 64-bit float
// or a 64-bit signed integer. The zero Literal is invalid.
type Literal struct {
	typ LiteralType
	s   string
	b   bool
	f   float64
	i   int64
}

// String creates a string literal.
func String(s string) Literal {
	return Literal{typ: StringType, s: s}
}

// Bool creates a boolean literal.
func Bool(b bool) Literal {
	return Literal{typ: BooleanType, b: b}
}

// Decimal creates a decimal literal.
func Decimal(f float64) Literal {
	return Literal{typ: DecimalType, f: f}
}

// Integer creates an integer literal.
func Integer(i int64) Literal {
	return Literal{typ: IntegerType, i: i}
}

// Type returns the literal's variant.
func (l Literal) Type() LiteralType {
	return l.typ
}

// IsValid reports whether the literal was built by one of the constructors.
func (l Literal) IsValid() bool {
	return l.typ != InvalidType
}

// AsString returns the string value and whether the literal is a string.
func (l Literal) AsString() (string, bool) {
	return l.s, l.typ == StringType
}

// AsBool returns the boolean value and whether the literal is a boolean.
func (l Literal) AsBool() (bool, bool) {
	return l.b, l.typ == BooleanType
}

// AsDecimal returns the decimal value and whether the literal is a decimal.
func (l Literal) AsDecimal() (float64, bool) {
	return l.f, l.typ == DecimalType
}

// AsInteger returns the integer value and whether the literal is an integer.
func (l Literal) AsInteger() (int64, bool) {
	return l.i, l.typ == IntegerType
}

// Value returns the literal as a plain Go value (string, bool, float64 or
// int64), or nil for the zero Literal.
func (l Literal) Value() any {
	switch l.typ {
	case StringType:
		return l.s
	case BooleanType:
		return l.b
	case DecimalType:
		return l.f
	case IntegerType:
		return l.i
	default:
		return nil
	}
}

// Equal reports whether two literals have the same type and value.
// Decimals compare with ==, so NaN is never equal to itself.
func (l Literal) Equal(o Literal) bool {
	if l.typ != o.typ {
		return false
	}
	switch l.typ {
	case StringType:
		return l.s == o.s
	case BooleanType:
		return l.b == o.b
	case DecimalType:
		return l.f == o.f
	case IntegerType:
		return l.i == o.i
	default:
		return true
	}
}

// Text renders the literal as expression source.
//
// Strings are quoted with ' unless they contain one, in which case " is
// used. Decimals always carry a '.' so they tokenize back to a decimal.
// Negative numbers, NaN and infinities have no source form; their text is
// informational only.
func (l Literal) Text() string {
	switch l.typ {
	case StringType:
		if strings.ContainsRune(l.s, '\'') {
			return `"` + l.s + `"`
		}
		return "'" + l.s + "'"
	case BooleanType:
		return strconv.FormatBool(l.b)
	case DecimalType:
		return formatDecimal(l.f)
	case IntegerType:
		return strconv.FormatInt(l.i, 10)
	default:
		return "<invalid>"
	}
}

// String implements fmt.Stringer.
func (l Literal) String() string {
	return l.Text()
}

// FormatDecimal renders f the way a decimal literal is written in source.
func FormatDecimal(f float64) string {
	return formatDecimal(f)
}

func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}
