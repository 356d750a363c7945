package vars

import (
	"fmt"

	exprerrors "github.com/randalmurphal/exprkit/pkg/exprkit/errors"
	"github.com/randalmurphal/exprkit/pkg/exprkit/lexer"
	"github.com/randalmurphal/exprkit/pkg/exprkit/token"
)

// Substitute replaces every variable token with the tokens of its
// replacement text. Variables produced by a replacement are converted to
// string literals carrying their name. opts are applied when tokenizing
// replacement text.
//
// A variable with no entry in v fails with a MissingKeyError. A nil v has
// no entries.
func Substitute(tokens []token.Token, v Vars, opts ...lexer.Option) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.IsVariable() {
			out = append(out, tok)
			continue
		}

		text, ok := v.Lookup(tok.Name)
		if !ok {
			return nil, &exprerrors.MissingKeyError{Name: tok.Name}
		}

		replacement, err := lexer.Tokenize(text, opts...)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", tok.Name, err)
		}
		for _, r := range replacement {
			if r.IsVariable() {
				r = token.Lit(token.String(r.Name))
			}
			out = append(out, r)
		}
	}
	return out, nil
}
