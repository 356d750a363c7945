package token

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralTypeString(t *testing.T) {
	tests := []struct {
		typ      LiteralType
		expected string
	}{
		{StringType, "string"},
		{BooleanType, "boolean"},
		{DecimalType, "decimal"},
		{IntegerType, "integer"},
		{InvalidType, "invalid"},
		{LiteralType(42), "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.expected {
				t.Errorf("LiteralType(%d).String() = %s, want %s", tt.typ, got, tt.expected)
			}
		})
	}
}

func TestLiteralAccessors(t *testing.T) {
	s, ok := String("hi").AsString()
	assert.True(t, ok)
	assert.Equal(t, "hi", s)

	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	f, ok := Decimal(2.5).AsDecimal()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	i, ok := Integer(-7).AsInteger()
	assert.True(t, ok)
	assert.Equal(t, int64(-7), i)

	_, ok = Integer(1).AsDecimal()
	assert.False(t, ok, "integer is not a decimal")
	_, ok = String("1").AsInteger()
	assert.False(t, ok, "string is not an integer")

	assert.False(t, Literal{}.IsValid())
	assert.Nil(t, Literal{}.Value())
	assert.Equal(t, int64(3), Integer(3).Value())
}

func TestLiteralEqual(t *testing.T) {
	assert.True(t, Integer(1).Equal(Integer(1)))
	assert.False(t, Integer(1).Equal(Decimal(1)), "type participates in equality")
	assert.False(t, String("a").Equal(String("b")))
	assert.True(t, Bool(false).Equal(Bool(false)))
	assert.False(t, Decimal(math.NaN()).Equal(Decimal(math.NaN())))
}

func TestLiteralText(t *testing.T) {
	tests := []struct {
		name string
		lit  Literal
		want string
	}{
		{"integer", Integer(42), "42"},
		{"negative integer", Integer(-3), "-3"},
		{"decimal", Decimal(7.5), "7.5"},
		{"whole decimal keeps point", Decimal(3), "3.0"},
		{"large decimal", Decimal(1e21), "1000000000000000000000.0"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"string", String("hello world"), "'hello world'"},
		{"string with single quote", String("it's"), `"it's"`},
		{"empty string", String(""), "''"},
		{"infinity", Decimal(math.Inf(1)), "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lit.Text())
		})
	}
}

func TestOperatorTable(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 14)

	for _, kind := range kinds {
		op, ok := Lookup(kind)
		require.True(t, ok, "kind %d has no descriptor", kind)
		assert.Equal(t, kind, op.Kind)
		assert.NotEmpty(t, op.Symbol)
		assert.GreaterOrEqual(t, op.Precedence, PrecedenceOr)
		assert.LessOrEqual(t, op.Precedence, PrecedenceNot)

		bySymbol, ok := LookupSymbol(op.Symbol)
		require.True(t, ok, "symbol %q not registered", op.Symbol)
		assert.Equal(t, kind, bySymbol.Kind)
	}

	_, ok := Lookup(OperatorKind(0))
	assert.False(t, ok)
	_, ok = Lookup(kindLimit)
	assert.False(t, ok)
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		kind       OperatorKind
		precedence int
		left       bool
		arity      int
	}{
		{Or, 1, true, 2},
		{And, 2, true, 2},
		{Equal, 3, true, 2},
		{NotEqual, 3, true, 2},
		{Greater, 4, true, 2},
		{GreaterOrEqual, 4, true, 2},
		{Less, 4, true, 2},
		{LessOrEqual, 4, true, 2},
		{Plus, 5, true, 2},
		{Minus, 5, true, 2},
		{Multiply, 6, true, 2},
		{Divide, 6, true, 2},
		{PowerOf, 7, false, 2},
		{Not, 8, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			op, ok := Lookup(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.precedence, op.Precedence)
			assert.Equal(t, tt.left, op.LeftAssociative)
			assert.Equal(t, tt.arity, op.Arity())
		})
	}
}

func TestLookupSymbolGlyphs(t *testing.T) {
	for symbol, want := range map[string]OperatorKind{"−": Minus, "×": Multiply, "÷": Divide} {
		op, ok := LookupSymbol(symbol)
		require.True(t, ok, symbol)
		assert.Equal(t, want, op.Kind)
		assert.NotEqual(t, symbol, op.Symbol, "descriptor carries the ASCII spelling")
	}

	_, ok := LookupSymbol("%")
	assert.False(t, ok)
}

func TestTokenEqual(t *testing.T) {
	assert.True(t, Op(Plus).Equal(Op(Plus)))
	assert.False(t, Op(Plus).Equal(Op(Minus)))
	assert.True(t, Var("x").Equal(Var("x")))
	assert.False(t, Var("x").Equal(Lit(String("x"))))
	assert.True(t, LeftParen().Equal(LeftParen()))
	assert.False(t, LeftParen().Equal(RightParen()))
	assert.True(t, Lit(Integer(2)).Equal(Lit(Integer(2))))
}

func TestTokenPredicates(t *testing.T) {
	assert.True(t, Op(Not).IsOperator())
	assert.True(t, Lit(Bool(true)).IsLiteral())
	assert.True(t, Var("a").IsVariable())
	assert.True(t, LeftParen().IsLeftParen())
	assert.False(t, LeftParen().IsRightParen())
	assert.True(t, RightParen().IsRightParen())
}

func TestOpPanicsOnUndefinedKind(t *testing.T) {
	assert.Panics(t, func() { Op(OperatorKind(0)) })
}

func TestRender(t *testing.T) {
	tokens := []Token{
		LeftParen(),
		Var("x"),
		Op(Plus),
		Lit(Decimal(2)),
		RightParen(),
		Op(GreaterOrEqual),
		Lit(String("a b")),
		Op(And),
		Op(Not),
		Lit(Bool(false)),
	}
	assert.Equal(t, "( x + 2.0 ) >= 'a b' && ! false", Render(tokens))
	assert.Equal(t, "", Render(nil))
}
