package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprkit/internal/cli/output"
	"github.com/randalmurphal/exprkit/pkg/exprkit"
	"github.com/randalmurphal/exprkit/pkg/exprkit/observability"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explain EXPRESSION...",
		Short: "Show each evaluation stage of an expression",
		Long: `Evaluate an expression and show the token sequence produced by every
stage: tokenize, substitute, postfix and evaluate.

When a stage fails, the stages that completed are shown before the error.`,
		Example: `  exprkit explain "1 + 2 * 3"
  exprkit explain "price * qty > 100" --var price=2.5 --var qty=50`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := AppFrom(cmd.Context())
			if err != nil {
				return err
			}

			expression := joinExpression(args)
			res, runErr := app.Engine.Run(cmd.Context(), expression, app.values())
			if err := renderExplain(app.Renderer, expression, res, runErr); err != nil {
				return err
			}
			return runErr
		},
	}
}

func renderExplain(r *output.Renderer, expression string, res *exprkit.Result, runErr error) error {
	if r.Mode() == output.ModeJSON {
		return r.JSON(newResultJSON(expression, res, runErr, true))
	}
	if res == nil {
		return nil
	}

	stages := []struct {
		title string
		show  bool
		rows  [][]string
	}{
		{"Tokens", res.Tokens != nil, tokenRows(res.Tokens)},
		{"Substituted", res.Substituted != nil, tokenRows(res.Substituted)},
		{"Postfix", res.Postfix != nil, tokenRows(res.Postfix)},
	}
	for _, stage := range stages {
		if !stage.show {
			continue
		}
		r.Section(stage.title)
		if err := r.Table(tokenHeader, stage.rows); err != nil {
			return err
		}
	}

	if runErr != nil {
		return nil
	}
	r.Section("Result")
	return r.Table([]string{"Value", "Type", "Duration"}, [][]string{{
		res.Value.Text(),
		res.Value.Type().String(),
		fmt.Sprintf("%.3fms", observability.Milliseconds(res.Duration)),
	}})
}
