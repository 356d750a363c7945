// Package token defines the vocabulary shared by every stage of the
// evaluation pipeline: typed literals, operator descriptors, variables
// and parentheses.
package token

import (
	"fmt"
	"strings"
)

// Kind classifies a Token.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindOperator
	KindLiteral
	KindVariable
	KindParen
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindOperator:
		return "operator"
	case KindLiteral:
		return "literal"
	case KindVariable:
		return "variable"
	case KindParen:
		return "paren"
	default:
		return "invalid"
	}
}

// Token is one lexical unit. Only the field matching Kind is meaningful:
// Operator for KindOperator, Literal for KindLiteral, Name for KindVariable
// and Open for KindParen.
type Token struct {
	Kind     Kind
	Operator Operator
	Literal  Literal
	Name     string
	Open     bool
}

// Op creates an operator token. It panics on an undefined kind.
func Op(kind OperatorKind) Token {
	op, ok := Lookup(kind)
	if !ok {
		panic(fmt.Sprintf("token: undefined operator kind %d", kind))
	}
	return Token{Kind: KindOperator, Operator: op}
}

// Lit creates a literal token.
func Lit(l Literal) Token {
	return Token{Kind: KindLiteral, Literal: l}
}

// Var creates a variable token.
func Var(name string) Token {
	return Token{Kind: KindVariable, Name: name}
}

// LeftParen creates a "(" token.
func LeftParen() Token {
	return Token{Kind: KindParen, Open: true}
}

// RightParen creates a ")" token.
func RightParen() Token {
	return Token{Kind: KindParen}
}

func (t Token) IsOperator() bool   { return t.Kind == KindOperator }
func (t Token) IsLiteral() bool    { return t.Kind == KindLiteral }
func (t Token) IsVariable() bool   { return t.Kind == KindVariable }
func (t Token) IsLeftParen() bool  { return t.Kind == KindParen && t.Open }
func (t Token) IsRightParen() bool { return t.Kind == KindParen && !t.Open }

// Equal reports whether two tokens are the same unit.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindOperator:
		return t.Operator.Kind == o.Operator.Kind
	case KindLiteral:
		return t.Literal.Equal(o.Literal)
	case KindVariable:
		return t.Name == o.Name
	case KindParen:
		return t.Open == o.Open
	default:
		return true
	}
}

// String renders the token as source text. The result tokenizes back to
// an equal token.
func (t Token) String() string {
	switch t.Kind {
	case KindOperator:
		return t.Operator.Symbol
	case KindLiteral:
		return t.Literal.Text()
	case KindVariable:
		return t.Name
	case KindParen:
		if t.Open {
			return "("
		}
		return ")"
	default:
		return "<invalid>"
	}
}

// Render joins tokens with single spaces.
func Render(tokens []Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}
