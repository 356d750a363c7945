// Package eval reduces a postfix token sequence to a single literal.
//
// Operands are pushed onto a value stack. A binary operator pops its right
// operand and then its left operand, a unary operator pops one, and the
// result is pushed back. A well-formed expression leaves exactly one value.
//
// # Type rules
//
// Integer with Integer stays Integer for + - * / and ^; division truncates
// toward zero and overflow wraps. Integer with Decimal promotes the integer
// to Decimal. Decimal arithmetic follows IEEE 754, so dividing by zero
// yields an infinity. ^ is defined only for integers with a non-negative
// exponent.
//
// Booleans support || && == != and ordering with false < true. Strings
// support == != and lexicographic ordering. Every other combination is a
// type mismatch; there is no implicit conversion between strings, booleans
// and numbers.
package eval
