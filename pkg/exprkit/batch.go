package exprkit

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

// BatchItem is the outcome of one expression in a batch.
type BatchItem struct {
	Index      int
	Expression string
	Result     *Result
	Err        error
}

// EvaluateBatch evaluates expressions concurrently, at most the configured
// batch limit at a time, and returns one item per input in input order.
// A failing expression does not stop the others. values is shared by all
// evaluations and must not be modified until EvaluateBatch returns.
func (e *Engine) EvaluateBatch(ctx context.Context, expressions []string, values vars.Vars) []BatchItem {
	items := make([]BatchItem, len(expressions))

	var g errgroup.Group
	g.SetLimit(e.cfg.batchLimit)

	for i, expression := range expressions {
		i, expression := i, expression
		g.Go(func() error {
			item := BatchItem{Index: i, Expression: expression}
			if err := ctx.Err(); err != nil {
				item.Err = err
			} else {
				item.Result, item.Err = e.Run(ctx, expression, values)
			}
			items[i] = item
			return nil
		})
	}

	_ = g.Wait()
	return items
}
