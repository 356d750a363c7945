package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exprerrors "github.com/randalmurphal/exprkit/pkg/exprkit/errors"
	"github.com/randalmurphal/exprkit/pkg/exprkit/token"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Token
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: " \t\n ",
			want:  nil,
		},
		{
			name:  "arithmetic",
			input: "3 + 4*2",
			want: []token.Token{
				token.Lit(token.Integer(3)),
				token.Op(token.Plus),
				token.Lit(token.Integer(4)),
				token.Op(token.Multiply),
				token.Lit(token.Integer(2)),
			},
		},
		{
			name:  "decimal and parens",
			input: "(2.5 - x)",
			want: []token.Token{
				token.LeftParen(),
				token.Lit(token.Decimal(2.5)),
				token.Op(token.Minus),
				token.Var("x"),
				token.RightParen(),
			},
		},
		{
			name:  "booleans and logic",
			input: "true && !false || flag",
			want: []token.Token{
				token.Lit(token.Bool(true)),
				token.Op(token.And),
				token.Op(token.Not),
				token.Lit(token.Bool(false)),
				token.Op(token.Or),
				token.Var("flag"),
			},
		},
		{
			name:  "comparison operators",
			input: "a == b != c < d <= e > f >= g",
			want: []token.Token{
				token.Var("a"), token.Op(token.Equal),
				token.Var("b"), token.Op(token.NotEqual),
				token.Var("c"), token.Op(token.Less),
				token.Var("d"), token.Op(token.LessOrEqual),
				token.Var("e"), token.Op(token.Greater),
				token.Var("f"), token.Op(token.GreaterOrEqual),
				token.Var("g"),
			},
		},
		{
			name:  "typographic glyphs",
			input: "6 × 2 ÷ 3 − 1 ^ 2",
			want: []token.Token{
				token.Lit(token.Integer(6)), token.Op(token.Multiply),
				token.Lit(token.Integer(2)), token.Op(token.Divide),
				token.Lit(token.Integer(3)), token.Op(token.Minus),
				token.Lit(token.Integer(1)), token.Op(token.PowerOf),
				token.Lit(token.Integer(2)),
			},
		},
		{
			name:  "strings keep inner quotes of the other style",
			input: `'say "hi"' == "it's"`,
			want: []token.Token{
				token.Lit(token.String(`say "hi"`)),
				token.Op(token.Equal),
				token.Lit(token.String("it's")),
			},
		},
		{
			name:  "string preserves spaces and operators",
			input: "'a + b'",
			want:  []token.Token{token.Lit(token.String("a + b"))},
		},
		{
			name:  "no whitespace needed",
			input: "x>=10&&y<2",
			want: []token.Token{
				token.Var("x"), token.Op(token.GreaterOrEqual), token.Lit(token.Integer(10)),
				token.Op(token.And),
				token.Var("y"), token.Op(token.Less), token.Lit(token.Integer(2)),
			},
		},
		{
			name:  "letters and digits split",
			input: "abc123",
			want:  []token.Token{token.Var("abc"), token.Lit(token.Integer(123))},
		},
		{
			name:  "lone pipe ampersand and equals are dropped",
			input: "a | b & c = d",
			want:  []token.Token{token.Var("a"), token.Var("b"), token.Var("c"), token.Var("d")},
		},
		{
			name:  "unknown characters are dropped",
			input: "1 # 2 % 3",
			want: []token.Token{
				token.Lit(token.Integer(1)),
				token.Lit(token.Integer(2)),
				token.Lit(token.Integer(3)),
			},
		},
		{
			name:  "trailing dot is a decimal",
			input: "3.",
			want:  []token.Token{token.Lit(token.Decimal(3))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		opts   []Option
		kind   exprerrors.Kind
		column int
	}{
		{"two decimal points", "1.2.3", nil, exprerrors.KindNumberFormat, 1},
		{"integer out of range", "1 + 99999999999999999999", nil, exprerrors.KindNumberFormat, 5},
		{"unterminated single quote", "x == 'abc", nil, exprerrors.KindLex, 6},
		{"unterminated double quote", `"abc`, nil, exprerrors.KindLex, 1},
		{"strict lone pipe", "a | b", []Option{WithStrict(true)}, exprerrors.KindLex, 3},
		{"strict unknown character", "1 ÷ 2 # 3", []Option{WithStrict(true)}, exprerrors.KindLex, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input, tt.opts...)
			require.Error(t, err)
			assert.Equal(t, tt.kind, exprerrors.KindOf(err))

			switch e := err.(type) {
			case *exprerrors.LexError:
				assert.Equal(t, tt.column, e.Column)
			case *exprerrors.NumberFormatError:
				assert.Equal(t, tt.column, e.Column)
			default:
				t.Fatalf("unexpected error type %T", err)
			}
		})
	}
}

func TestStrictAcceptsValidInput(t *testing.T) {
	got, err := Tokenize("x || y && !(z == 'q')", WithStrict(true))
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestNextIsIncremental(t *testing.T) {
	l := New("1 + 2")

	var kinds []token.Kind
	for {
		tok, ok, err := l.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{token.KindLiteral, token.KindOperator, token.KindLiteral}, kinds)

	_, ok, err := l.Next()
	assert.NoError(t, err)
	assert.False(t, ok, "exhausted lexer keeps reporting end of input")
}

func TestRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"3 + 4 * 2 / ( 1 - 5 ) ^ 2 ^ 3",
		"x >= 10.25 && name != 'bob' || !flag",
		`"it's" == 'it' + "'s"`,
		"7.0 × 2 ÷ 3.5",
		"true == false",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Tokenize(input)
			require.NoError(t, err)

			second, err := Tokenize(token.Render(first))
			require.NoError(t, err)

			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("round trip mismatch (-first +second):\n%s", diff)
			}
		})
	}
}
