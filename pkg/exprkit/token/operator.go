package token

// OperatorKind identifies one of the fourteen operators.
type OperatorKind uint8

const (
	Or OperatorKind = iota + 1
	And
	Not
	NotEqual
	Equal
	Greater
	GreaterOrEqual
	Less
	LessOrEqual
	Plus
	Minus
	Divide
	Multiply
	PowerOf

	kindLimit
)

// Binding strength, loosest first.
const (
	PrecedenceOr             = 1
	PrecedenceAnd            = 2
	PrecedenceEquality       = 3
	PrecedenceRelational     = 4
	PrecedenceAdditive       = 5
	PrecedenceMultiplicative = 6
	PrecedencePower          = 7
	PrecedenceNot            = 8
)

// Operator describes an operator's source symbol, precedence, associativity
// and arity.
type Operator struct {
	Kind            OperatorKind
	Symbol          string
	Precedence      int
	LeftAssociative bool
	Unary           bool
}

// Arity returns the number of operands the operator consumes.
func (o Operator) Arity() int {
	if o.Unary {
		return 1
	}
	return 2
}

// String returns the operator's symbol.
func (o Operator) String() string {
	return o.Symbol
}

var operators = [kindLimit]Operator{
	Or:             {Kind: Or, Symbol: "||", Precedence: PrecedenceOr, LeftAssociative: true},
	And:            {Kind: And, Symbol: "&&", Precedence: PrecedenceAnd, LeftAssociative: true},
	Not:            {Kind: Not, Symbol: "!", Precedence: PrecedenceNot, Unary: true},
	NotEqual:       {Kind: NotEqual, Symbol: "!=", Precedence: PrecedenceEquality, LeftAssociative: true},
	Equal:          {Kind: Equal, Symbol: "==", Precedence: PrecedenceEquality, LeftAssociative: true},
	Greater:        {Kind: Greater, Symbol: ">", Precedence: PrecedenceRelational, LeftAssociative: true},
	GreaterOrEqual: {Kind: GreaterOrEqual, Symbol: ">=", Precedence: PrecedenceRelational, LeftAssociative: true},
	Less:           {Kind: Less, Symbol: "<", Precedence: PrecedenceRelational, LeftAssociative: true},
	LessOrEqual:    {Kind: LessOrEqual, Symbol: "<=", Precedence: PrecedenceRelational, LeftAssociative: true},
	Plus:           {Kind: Plus, Symbol: "+", Precedence: PrecedenceAdditive, LeftAssociative: true},
	Minus:          {Kind: Minus, Symbol: "-", Precedence: PrecedenceAdditive, LeftAssociative: true},
	Divide:         {Kind: Divide, Symbol: "/", Precedence: PrecedenceMultiplicative, LeftAssociative: true},
	Multiply:       {Kind: Multiply, Symbol: "*", Precedence: PrecedenceMultiplicative, LeftAssociative: true},
	PowerOf:        {Kind: PowerOf, Symbol: "^", Precedence: PrecedencePower},
}

// symbols maps every accepted source spelling, including the typographic
// glyphs, to its operator kind.
var symbols = map[string]OperatorKind{
	"||": Or,
	"&&": And,
	"!":  Not,
	"!=": NotEqual,
	"==": Equal,
	">":  Greater,
	">=": GreaterOrEqual,
	"<":  Less,
	"<=": LessOrEqual,
	"+":  Plus,
	"-":  Minus,
	"−":  Minus,
	"/":  Divide,
	"÷":  Divide,
	"*":  Multiply,
	"×":  Multiply,
	"^":  PowerOf,
}

// Valid reports whether k names one of the defined operators.
func (k OperatorKind) Valid() bool {
	return k > 0 && k < kindLimit
}

// String returns the kind's canonical symbol.
func (k OperatorKind) String() string {
	if !k.Valid() {
		return "<invalid operator>"
	}
	return operators[k].Symbol
}

// Lookup returns the descriptor for kind.
func Lookup(kind OperatorKind) (Operator, bool) {
	if !kind.Valid() {
		return Operator{}, false
	}
	return operators[kind], true
}

// LookupSymbol returns the descriptor for a source spelling such as "&&"
// or "×".
func LookupSymbol(symbol string) (Operator, bool) {
	kind, ok := symbols[symbol]
	if !ok {
		return Operator{}, false
	}
	return operators[kind], true
}

// Kinds returns every operator kind in declaration order.
func Kinds() []OperatorKind {
	kinds := make([]OperatorKind, 0, kindLimit-1)
	for k := Or; k < kindLimit; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
