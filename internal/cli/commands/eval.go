package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprkit/internal/cli/output"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	var showType bool

	cmd := &cobra.Command{
		Use:   "eval EXPRESSION...",
		Short: "Evaluate an expression",
		Long: `Evaluate an expression and print its value.

Arguments are joined with spaces into one expression, so quoting the whole
expression is optional. Identifiers are resolved from --var flags, the vars
file and the vars section of the config file.`,
		Example: `  exprkit eval "2 + 3 * 4"
  exprkit eval 'name == "widget" && qty > 3' --var name="'widget'" --var qty=5
  exprkit eval "2 ^ 10" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := AppFrom(cmd.Context())
			if err != nil {
				return err
			}

			expression := joinExpression(args)
			if expression == "" {
				return errors.New("expression is empty")
			}

			res, err := app.Engine.Run(cmd.Context(), expression, app.values())
			r := app.Renderer
			if r.Mode() == output.ModeJSON {
				if jsonErr := r.JSON(newResultJSON(expression, res, err, false)); jsonErr != nil {
					return jsonErr
				}
				return err
			}
			if err != nil {
				return err
			}

			if showType {
				r.Printf("%s %s\n", r.Styles.Value.Render(res.Value.Text()), r.Styles.Type.Render("("+res.Value.Type().String()+")"))
				return nil
			}
			r.Println(res.Value.Text())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "T", false, "Print the result type after the value")
	return cmd
}
