package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/randalmurphal/exprkit/pkg/exprkit"
	exprerrors "github.com/randalmurphal/exprkit/pkg/exprkit/errors"
	"github.com/randalmurphal/exprkit/pkg/exprkit/observability"
	"github.com/randalmurphal/exprkit/pkg/exprkit/token"
)

var tokenHeader = []string{"#", "Kind", "Text", "Detail"}

// tokenRows describes each token for a table.
func tokenRows(tokens []token.Token) [][]string {
	rows := make([][]string, len(tokens))
	for i, tok := range tokens {
		rows[i] = []string{strconv.Itoa(i + 1), tok.Kind.String(), tok.String(), tokenDetail(tok)}
	}
	return rows
}

func tokenDetail(tok token.Token) string {
	switch tok.Kind {
	case token.KindOperator:
		op := tok.Operator
		assoc := "right"
		if op.LeftAssociative {
			assoc = "left"
		}
		arity := "binary"
		if op.Unary {
			arity = "unary"
		}
		return fmt.Sprintf("%s, precedence %d, %s-assoc", arity, op.Precedence, assoc)
	case token.KindLiteral:
		return tok.Literal.Type().String()
	case token.KindVariable:
		return "unresolved"
	case token.KindParen:
		if tok.Open {
			return "open"
		}
		return "close"
	default:
		return ""
	}
}

// tokenStrings renders each token as source text.
func tokenStrings(tokens []token.Token) []string {
	if tokens == nil {
		return nil
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.String()
	}
	return out
}

// resultJSON is the JSON form of one evaluation.
type resultJSON struct {
	ID          string   `json:"id,omitempty"`
	Expression  string   `json:"expression"`
	Value       any      `json:"value"`
	Type        string   `json:"type,omitempty"`
	Text        string   `json:"text,omitempty"`
	Tokens      []string `json:"tokens,omitempty"`
	Substituted []string `json:"substituted,omitempty"`
	Postfix     []string `json:"postfix,omitempty"`
	DurationMs  float64  `json:"duration_ms"`
	Error       string   `json:"error,omitempty"`
	ErrorKind   string   `json:"error_kind,omitempty"`
	Stage       string   `json:"stage,omitempty"`
}

func newResultJSON(expression string, res *exprkit.Result, err error, withStages bool) resultJSON {
	out := resultJSON{Expression: expression}
	if res != nil {
		out.ID = res.ID
		out.DurationMs = observability.Milliseconds(res.Duration)
		if withStages {
			out.Tokens = tokenStrings(res.Tokens)
			out.Substituted = tokenStrings(res.Substituted)
			out.Postfix = tokenStrings(res.Postfix)
		}
	}
	if err != nil {
		out.Error = err.Error()
		out.ErrorKind = exprerrors.KindOf(err).String()
		out.Stage = string(exprkit.StageOf(err))
		return out
	}
	out.Value = res.Value.Value()
	if f, ok := res.Value.AsDecimal(); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		// JSON has no encoding for these.
		out.Value = res.Value.Text()
	}
	out.Type = res.Value.Type().String()
	out.Text = res.Value.Text()
	return out
}

// truncate shortens s to n runes with a trailing ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// joinExpression joins command arguments into one expression.
func joinExpression(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
