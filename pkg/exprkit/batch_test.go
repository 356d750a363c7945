package exprkit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exprerrors "github.com/randalmurphal/exprkit/pkg/exprkit/errors"
	"github.com/randalmurphal/exprkit/pkg/exprkit/history"
	"github.com/randalmurphal/exprkit/pkg/exprkit/token"
	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

func TestEvaluateBatch(t *testing.T) {
	engine := New(WithBatchLimit(2))

	items := engine.EvaluateBatch(context.Background(), []string{
		"1 + 1",
		"x * 10",
		"true + false",
		"missing",
		"'a' < 'b'",
	}, vars.Vars{"x": "4"})

	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, i, item.Index, "items keep input order")
	}

	require.NoError(t, items[0].Err)
	assert.True(t, token.Integer(2).Equal(items[0].Result.Value))

	require.NoError(t, items[1].Err)
	assert.True(t, token.Integer(40).Equal(items[1].Result.Value))

	assert.True(t, exprerrors.IsTypeMismatch(items[2].Err))
	assert.True(t, exprerrors.IsMissingKey(items[3].Err))

	require.NoError(t, items[4].Err)
	assert.True(t, token.Bool(true).Equal(items[4].Result.Value))
}

func TestEvaluateBatchManyWithHistory(t *testing.T) {
	store := history.NewMemoryStore()
	engine := New(WithBatchLimit(4), WithHistory(store))

	exprs := make([]string, 100)
	for i := range exprs {
		exprs[i] = fmt.Sprintf("%d * 2", i)
	}

	items := engine.EvaluateBatch(context.Background(), exprs, nil)
	require.Len(t, items, len(exprs))

	for i, item := range items {
		require.NoError(t, item.Err)
		assert.Equal(t, exprs[i], item.Expression)
		assert.True(t, token.Integer(int64(i*2)).Equal(item.Result.Value))
	}
	assert.Equal(t, len(exprs), store.Len())
}

func TestEvaluateBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := New().EvaluateBatch(ctx, []string{"1", "2"}, nil)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.ErrorIs(t, item.Err, context.Canceled)
		assert.Nil(t, item.Result)
	}
}

func TestEvaluateBatchEmpty(t *testing.T) {
	assert.Empty(t, New().EvaluateBatch(context.Background(), nil, nil))
}

func TestWithBatchLimitIgnoresNonPositive(t *testing.T) {
	e := New(WithBatchLimit(0))
	assert.Equal(t, 8, e.cfg.batchLimit)
}
