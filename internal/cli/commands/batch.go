package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprkit/internal/cli/output"
	"github.com/randalmurphal/exprkit/pkg/exprkit"
	exprerrors "github.com/randalmurphal/exprkit/pkg/exprkit/errors"
	"github.com/randalmurphal/exprkit/pkg/exprkit/observability"
)

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [FILE]",
		Short: "Evaluate one expression per line",
		Long: `Evaluate every line of FILE as an independent expression.

Blank lines and lines starting with # are skipped. Without FILE, or with
"-", expressions are read from stdin. Expressions run concurrently, up to
--batch-limit at a time; results are printed in input order. The command
fails when any expression fails.`,
		Example: `  exprkit batch checks.txt
  printf '1 + 1\n2 ^ 8\n' | exprkit batch -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := AppFrom(cmd.Context())
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open batch file: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			expressions, err := readExpressions(in)
			if err != nil {
				return err
			}

			elapsed := observability.TimedOperation()
			items := app.Engine.EvaluateBatch(cmd.Context(), expressions, app.values())
			failed := countFailed(items)
			app.Logger.Info("batch complete",
				"expressions", len(items),
				"failed", failed,
				"duration_ms", elapsed())

			if err := renderBatch(app.Renderer, items); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d expressions failed", failed, len(items))
			}
			return nil
		},
	}
}

// readExpressions returns the non-blank, non-comment lines of r.
func readExpressions(r io.Reader) ([]string, error) {
	var expressions []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		expressions = append(expressions, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expressions: %w", err)
	}
	return expressions, nil
}

func countFailed(items []exprkit.BatchItem) int {
	n := 0
	for _, item := range items {
		if item.Err != nil {
			n++
		}
	}
	return n
}

func renderBatch(r *output.Renderer, items []exprkit.BatchItem) error {
	if r.Mode() == output.ModeJSON {
		results := make([]resultJSON, len(items))
		for i, item := range items {
			results[i] = newResultJSON(item.Expression, item.Result, item.Err, false)
		}
		return r.JSON(results)
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		row := []string{strconv.Itoa(item.Index + 1), item.Expression, "", "", ""}
		if item.Err != nil {
			row[4] = exprerrors.KindOf(item.Err).String() + ": " + item.Err.Error()
		} else {
			row[2] = item.Result.Value.Text()
			row[3] = item.Result.Value.Type().String()
		}
		rows[i] = row
	}
	return r.Table([]string{"#", "Expression", "Value", "Type", "Error"}, rows)
}
