package benchmarks

import (
	"testing"

	"github.com/randalmurphal/exprkit/pkg/exprkit/eval"
	"github.com/randalmurphal/exprkit/pkg/exprkit/lexer"
	"github.com/randalmurphal/exprkit/pkg/exprkit/postfix"
	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

const mixedExpression = "(price * qty) + 2.5 > limit && name != 'none' || !(qty == 0)"

// BenchmarkTokenize measures the tokenizer alone.
func BenchmarkTokenize(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = lexer.Tokenize(mixedExpression)
	}
}

// BenchmarkTokenize_Long measures the tokenizer on 1000 terms.
func BenchmarkTokenize_Long(b *testing.B) {
	expression := buildSum(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = lexer.Tokenize(expression)
	}
}

// BenchmarkSubstitute measures variable substitution.
func BenchmarkSubstitute(b *testing.B) {
	tokens, err := lexer.Tokenize(mixedExpression)
	if err != nil {
		b.Fatal(err)
	}
	values := vars.Vars{"price": "9.99", "qty": "3", "limit": "20", "name": "'widget'"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = vars.Substitute(tokens, values)
	}
}

// BenchmarkConvert measures infix to postfix conversion.
func BenchmarkConvert(b *testing.B) {
	tokens, err := lexer.Tokenize(mixedExpression)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = postfix.Convert(tokens)
	}
}

// BenchmarkConvert_Nested measures conversion of deeply nested groups.
func BenchmarkConvert_Nested(b *testing.B) {
	expression := "1"
	for i := 0; i < 100; i++ {
		expression = "(" + expression + " + 1)"
	}
	tokens, err := lexer.Tokenize(expression)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = postfix.Convert(tokens)
	}
}

// BenchmarkEvaluatePostfix measures the postfix evaluator alone.
func BenchmarkEvaluatePostfix(b *testing.B) {
	tokens, err := lexer.Tokenize(mixedExpression)
	if err != nil {
		b.Fatal(err)
	}
	tokens, err = vars.Substitute(tokens, vars.Vars{"price": "9.99", "qty": "3", "limit": "20", "name": "'widget'"})
	if err != nil {
		b.Fatal(err)
	}
	rpn := postfix.Convert(tokens)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = eval.Evaluate(rpn)
	}
}
