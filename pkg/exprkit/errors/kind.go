// Package errors defines the failures the evaluation pipeline can report.
//
// Every failure carries a Kind so callers can branch on the class of error
// without matching on message text:
//   - KindLex and KindNumberFormat come from tokenizing
//   - KindMissingKey comes from substitution or from a variable that reached
//     the evaluator unresolved
//   - KindTypeMismatch, KindStackUnderflow, KindMalformed and KindArithmetic
//     come from evaluation
package errors

import "errors"

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindUnknown is reported for nil or foreign errors.
	KindUnknown Kind = iota

	// KindLex indicates unrecognizable input such as an unterminated string.
	KindLex

	// KindNumberFormat indicates a digit run that is not a valid number,
	// for example "1.2.3".
	KindNumberFormat

	// KindMissingKey indicates a variable with no value in the context.
	KindMissingKey

	// KindTypeMismatch indicates an operator applied to operand types it
	// does not support.
	KindTypeMismatch

	// KindStackUnderflow indicates an operator without enough operands.
	KindStackUnderflow

	// KindMalformed indicates leftover values or stray parentheses.
	KindMalformed

	// KindArithmetic indicates integer division by zero or a negative
	// integer exponent.
	KindArithmetic
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindNumberFormat:
		return "number_format"
	case KindMissingKey:
		return "missing_key"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindStackUnderflow:
		return "stack_underflow"
	case KindMalformed:
		return "malformed"
	case KindArithmetic:
		return "arithmetic"
	default:
		return "unknown"
	}
}

// Kinded is implemented by every error type in this package.
type Kinded interface {
	error
	Kind() Kind
}

// KindOf returns the kind of the first Kinded error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var k Kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// IsKind reports whether err's chain contains an error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func IsLex(err error) bool            { return IsKind(err, KindLex) }
func IsNumberFormat(err error) bool   { return IsKind(err, KindNumberFormat) }
func IsMissingKey(err error) bool     { return IsKind(err, KindMissingKey) }
func IsTypeMismatch(err error) bool   { return IsKind(err, KindTypeMismatch) }
func IsStackUnderflow(err error) bool { return IsKind(err, KindStackUnderflow) }
func IsMalformed(err error) bool      { return IsKind(err, KindMalformed) }
func IsArithmetic(err error) bool     { return IsKind(err, KindArithmetic) }
