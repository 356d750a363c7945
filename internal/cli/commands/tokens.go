package commands

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprkit/internal/cli/output"
	"github.com/randalmurphal/exprkit/pkg/exprkit/lexer"
	"github.com/randalmurphal/exprkit/pkg/exprkit/postfix"
	"github.com/randalmurphal/exprkit/pkg/exprkit/token"
)

// TokensOptions holds options for the tokens command.
type TokensOptions struct {
	Postfix bool
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	opts := &TokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens EXPRESSION...",
		Short: "Show the tokens of an expression",
		Long: `Tokenize an expression and list each token with its kind and details.

Variables are not substituted. With --postfix the tokens are shown in
evaluation order after conversion from infix.`,
		Example: `  exprkit tokens "(1 + 2) * x"
  exprkit tokens "2 ^ 3 ^ 2" --postfix`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			return runTokens(app.Renderer, joinExpression(args), app.Config.Strict, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Postfix, "postfix", false, "Show tokens in postfix order")
	return cmd
}

func runTokens(r *output.Renderer, expression string, strict bool, opts *TokensOptions) error {
	tokens, err := lexer.Tokenize(expression, lexer.WithStrict(strict))
	if err != nil {
		return err
	}
	if opts.Postfix {
		tokens = postfix.Convert(tokens)
	}

	if r.Mode() == output.ModeJSON {
		return r.JSON(tokensJSON(tokens))
	}
	return r.Table(tokenHeader, tokenRows(tokens))
}

type tokenJSON struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Detail string `json:"detail,omitempty"`
}

func tokensJSON(tokens []token.Token) []tokenJSON {
	out := make([]tokenJSON, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenJSON{Kind: tok.Kind.String(), Text: tok.String(), Detail: tokenDetail(tok)}
	}
	return out
}
