package exprkit

import (
	"errors"
	"fmt"
)

// Stage names one step of the evaluation pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageTokenize   Stage = "tokenize"
	StageSubstitute Stage = "substitute"
	StagePostfix    Stage = "postfix"
	StageEvaluate   Stage = "evaluate"
)

// Sentinel errors for engine use.
var (
	// ErrNilContext indicates Run() was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)

// StageError wraps a pipeline failure with the stage that produced it.
// Use errors.As with the types in the errors subpackage, or KindOf, to
// inspect the cause.
type StageError struct {
	// Stage is the step that failed.
	Stage Stage
	// Expression is the source being evaluated.
	Expression string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the stage that produced err, or "" if err did not come
// from the pipeline.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
