package exprkit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	exprerrors "github.com/randalmurphal/exprkit/pkg/exprkit/errors"
	"github.com/randalmurphal/exprkit/pkg/exprkit/eval"
	"github.com/randalmurphal/exprkit/pkg/exprkit/history"
	"github.com/randalmurphal/exprkit/pkg/exprkit/lexer"
	"github.com/randalmurphal/exprkit/pkg/exprkit/observability"
	"github.com/randalmurphal/exprkit/pkg/exprkit/postfix"
	"github.com/randalmurphal/exprkit/pkg/exprkit/token"
	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

// Engine evaluates expressions with a fixed configuration.
// An Engine is safe for concurrent use; evaluations share no state beyond
// the optional history store.
type Engine struct {
	cfg engineConfig
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{cfg: cfg}
}

// Result is the outcome of one evaluation together with the token
// sequence each stage produced.
type Result struct {
	// ID identifies the evaluation in logs, spans and history.
	ID         string
	Expression string

	// Tokens is the tokenizer output.
	Tokens []token.Token
	// Substituted is the sequence after variable substitution, nil when
	// the evaluation had no variable context.
	Substituted []token.Token
	// Postfix is the converter output.
	Postfix []token.Token

	// Value is the result. It is invalid when evaluation failed.
	Value    token.Literal
	Duration time.Duration
}

// Evaluate tokenizes, converts and evaluates expression. Variables are not
// resolved, so any identifier fails with a MissingKeyError.
func (e *Engine) Evaluate(ctx context.Context, expression string) (token.Literal, error) {
	res, err := e.Run(ctx, expression, nil)
	if err != nil {
		return token.Literal{}, err
	}
	return res.Value, nil
}

// EvaluateWithContext substitutes identifiers from values before
// converting and evaluating. A nil or empty values resolves nothing.
func (e *Engine) EvaluateWithContext(ctx context.Context, expression string, values vars.Vars) (token.Literal, error) {
	if values == nil {
		values = vars.Vars{}
	}
	res, err := e.Run(ctx, expression, values)
	if err != nil {
		return token.Literal{}, err
	}
	return res.Value, nil
}

// Run evaluates expression and returns every intermediate token sequence.
// Substitution runs only when values is non-nil.
//
// On failure the returned Result holds the stages that completed and the
// error is a *StageError.
func (e *Engine) Run(ctx context.Context, expression string, values vars.Vars) (*Result, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	res := &Result{ID: uuid.NewString(), Expression: expression}
	logger := observability.EnrichLogger(e.cfg.logger, res.ID, expression)
	observability.LogEvaluationStart(logger)

	ctx, span := e.cfg.spans.StartEvaluationSpan(ctx, res.ID, expression)
	start := time.Now()

	err := e.execute(ctx, logger, res, values)
	res.Duration = time.Since(start)

	e.finish(ctx, logger, res, err)
	e.cfg.spans.EndSpanWithError(span, err)
	return res, err
}

// execute runs the pipeline stages in order, stopping at the first failure.
func (e *Engine) execute(ctx context.Context, logger *slog.Logger, res *Result, values vars.Vars) error {
	lexOpts := []lexer.Option{lexer.WithStrict(e.cfg.strict)}

	err := e.runStage(ctx, logger, res, StageTokenize, func() (int, error) {
		tokens, err := lexer.Tokenize(res.Expression, lexOpts...)
		res.Tokens = tokens
		return len(tokens), err
	})
	if err != nil {
		return err
	}

	infix := res.Tokens
	if values != nil {
		err = e.runStage(ctx, logger, res, StageSubstitute, func() (int, error) {
			substituted, err := vars.Substitute(res.Tokens, values, lexOpts...)
			res.Substituted = substituted
			return len(substituted), err
		})
		if err != nil {
			return err
		}
		infix = res.Substituted
	}

	_ = e.runStage(ctx, logger, res, StagePostfix, func() (int, error) {
		res.Postfix = postfix.Convert(infix)
		return len(res.Postfix), nil
	})

	return e.runStage(ctx, logger, res, StageEvaluate, func() (int, error) {
		value, err := eval.Evaluate(res.Postfix)
		res.Value = value
		return len(res.Postfix), err
	})
}

// runStage times fn, reports it to logs, metrics and a child span, and
// wraps any error in a StageError.
func (e *Engine) runStage(ctx context.Context, logger *slog.Logger, res *Result, stage Stage, fn func() (int, error)) error {
	stageCtx, span := e.cfg.spans.StartStageSpan(ctx, string(stage))
	start := time.Now()

	count, err := fn()
	elapsed := time.Since(start)

	e.cfg.metrics.RecordStage(stageCtx, string(stage), elapsed, err)
	if err != nil {
		err = &StageError{Stage: stage, Expression: res.Expression, Err: err}
	} else {
		e.cfg.metrics.RecordTokens(stageCtx, string(stage), int64(count))
		observability.LogStage(logger, string(stage), count, observability.Milliseconds(elapsed))
	}
	e.cfg.spans.EndSpanWithError(span, err)
	return err
}

// finish records the outcome in logs, metrics and history.
func (e *Engine) finish(ctx context.Context, logger *slog.Logger, res *Result, err error) {
	rec := history.Record{
		ID:         res.ID,
		Expression: res.Expression,
		Duration:   res.Duration,
		CreatedAt:  time.Now().UTC(),
	}

	if err != nil {
		kind := exprerrors.KindOf(err).String()
		observability.LogEvaluationError(logger, err, string(StageOf(err)), kind, observability.Milliseconds(res.Duration))
		e.cfg.metrics.RecordEvaluation(ctx, false, kind, res.Duration)
		rec.Error = err.Error()
		rec.ErrorKind = kind
	} else {
		typ := res.Value.Type().String()
		observability.LogEvaluationComplete(logger, observability.Milliseconds(res.Duration), typ)
		e.cfg.metrics.RecordEvaluation(ctx, true, "", res.Duration)
		rec.Value = res.Value.Text()
		rec.ValueType = typ
	}

	if e.cfg.history == nil {
		return
	}
	if saveErr := e.cfg.history.Save(rec); saveErr != nil {
		observability.LogHistoryError(logger, "save", saveErr)
		return
	}
	e.cfg.spans.AddSpanEvent(ctx, "history.saved", attribute.String("record.id", rec.ID))
}

var defaultEngine = New()

// Evaluate evaluates expression with a default Engine.
func Evaluate(expression string) (token.Literal, error) {
	return defaultEngine.Evaluate(context.Background(), expression)
}

// EvaluateWithContext evaluates expression with a default Engine after
// substituting identifiers from values.
func EvaluateWithContext(expression string, values map[string]string) (token.Literal, error) {
	return defaultEngine.EvaluateWithContext(context.Background(), expression, values)
}
