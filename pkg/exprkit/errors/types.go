package errors

import "fmt"

// LexError reports input the tokenizer cannot accept.
type LexError struct {
	// Column is the 1-based character position where the problem starts.
	Column  int
	Char    rune
	Message string
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at column %d: %s", e.Column, e.Message)
}

// Kind returns KindLex.
func (e *LexError) Kind() Kind { return KindLex }

// NumberFormatError reports a numeric run that does not parse.
type NumberFormatError struct {
	Column int
	Text   string
	Err    error
}

// Error implements the error interface.
func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("invalid number %q at column %d", e.Text, e.Column)
}

// Unwrap returns the parse error.
func (e *NumberFormatError) Unwrap() error {
	return e.Err
}

// Kind returns KindNumberFormat.
func (e *NumberFormatError) Kind() Kind { return KindNumberFormat }

// MissingKeyError reports a variable with no value.
type MissingKeyError struct {
	Name string
}

// Error implements the error interface.
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("variable %q has no value", e.Name)
}

// Kind returns KindMissingKey.
func (e *MissingKeyError) Kind() Kind { return KindMissingKey }

// TypeMismatchError reports an operator applied to unsupported operand
// types. Right is empty for unary operators.
type TypeMismatchError struct {
	Operator string
	Left     string
	Right    string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	if e.Right == "" {
		return fmt.Sprintf("operator %q cannot be applied to %s", e.Operator, e.Left)
	}
	return fmt.Sprintf("operator %q cannot be applied to %s and %s", e.Operator, e.Left, e.Right)
}

// Kind returns KindTypeMismatch.
func (e *TypeMismatchError) Kind() Kind { return KindTypeMismatch }

// StackUnderflowError reports an operator that found too few operands.
type StackUnderflowError struct {
	Operator  string
	Needed    int
	Available int
}

// Error implements the error interface.
func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("operator %q needs %d operand(s), found %d", e.Operator, e.Needed, e.Available)
}

// Kind returns KindStackUnderflow.
func (e *StackUnderflowError) Kind() Kind { return KindStackUnderflow }

// MalformedError reports an expression that did not reduce to one value.
type MalformedError struct {
	// Remaining is the number of values left on the stack, when known.
	Remaining int
	Reason    string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed expression: %s", e.Reason)
}

// Kind returns KindMalformed.
func (e *MalformedError) Kind() Kind { return KindMalformed }

// ArithmeticError reports an integer operation with no defined result.
type ArithmeticError struct {
	Operator string
	Message  string
}

// Error implements the error interface.
func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error in %q: %s", e.Operator, e.Message)
}

// Kind returns KindArithmetic.
func (e *ArithmeticError) Kind() Kind { return KindArithmetic }
