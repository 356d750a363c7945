/*
Package exprkit evaluates small infix expressions over strings, booleans,
decimals and integers.

# Overview

An expression passes through four stages:

  - tokenize: source text becomes literals, operators, variables and parentheses
  - substitute: each variable is replaced by the tokens of its context text
  - postfix: shunting-yard reorders the tokens into reverse Polish order
  - evaluate: a value stack reduces the postfix sequence to one literal

Each stage lives in its own subpackage (lexer, vars, postfix, eval) and can
be used directly. This package ties them together.

# Basic Usage

	v, err := exprkit.Evaluate("3 + 4 * 2 / (1 - 5) ^ 2 ^ 3")
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(v) // 3

Variables are resolved from a context of replacement text:

	v, err := exprkit.EvaluateWithContext("price * qty > 100", map[string]string{
	    "price": "12.5",
	    "qty":   "9",
	})
	// v is Boolean(true)

Replacement text is spliced in without parentheses, so {"x": "1 + 1"}
turns "x * 2" into "1 + 1 * 2".

# Operators

From loosest to tightest binding:

	||            logical or
	&&            logical and
	== !=         equality
	< <= > >=     ordering
	+ -           additive (also −)
	* /           multiplicative (also × ÷)
	^             integer power, right-associative
	!             logical not, prefix

# Engine

An Engine adds logging, OpenTelemetry metrics and tracing, strict lexing,
evaluation history and concurrent batches:

	engine := exprkit.New(
	    exprkit.WithLogger(logger),
	    exprkit.WithTracing(true),
	    exprkit.WithHistory(history.NewMemoryStore()),
	)
	res, err := engine.Run(ctx, "x + 1", vars.Vars{"x": "41"})
	fmt.Println(token.Render(res.Postfix)) // 41 1 +

# Errors

Failures from Engine.Run are *StageError values naming the failed stage.
Their cause is one of the typed errors in the errors subpackage; use
errors.KindOf to classify it:

	_, err := exprkit.Evaluate("true + false")
	exprerrors.KindOf(err) // KindTypeMismatch
*/
package exprkit
