package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprkit/internal/cli/output"
	"github.com/randalmurphal/exprkit/pkg/exprkit/history"
	"github.com/randalmurphal/exprkit/pkg/exprkit/observability"
)

// shortIDLen is how much of a record ID list output shows. Any unique
// prefix is accepted by "history show".
const shortIDLen = 8

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past evaluations",
		Long: `List recorded evaluations, newest first.

Every evaluation made by eval, explain, batch and repl is recorded in the
history database (--history). Use "history show" to inspect one record and
"history clear" to remove all of them.`,
		Example: `  exprkit history
  exprkit history -n 50 -o json
  exprkit history show 3f2a91c0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = app.Config.HistoryLimit
			}

			records, err := app.History.List(limit)
			if err != nil {
				return err
			}
			return renderHistory(app.Renderer, records)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum records to show (0 for all, default from --history-limit)")

	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryClearCommand())
	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one recorded evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := AppFrom(cmd.Context())
			if err != nil {
				return err
			}

			rec, err := findRecord(app.History, args[0])
			if err != nil {
				return err
			}

			r := app.Renderer
			if r.Mode() == output.ModeJSON {
				data, err := rec.Marshal()
				if err != nil {
					return err
				}
				r.Println(string(data))
				return nil
			}

			result := rec.Value
			if rec.Failed() {
				result = rec.Error
			}
			return r.Table([]string{"Field", "Value"}, [][]string{
				{"ID", rec.ID},
				{"Time", rec.CreatedAt.Local().Format("2006-01-02 15:04:05")},
				{"Expression", rec.Expression},
				{"Result", result},
				{"Type", firstNonEmpty(rec.ValueType, rec.ErrorKind)},
				{"Duration", fmt.Sprintf("%.3fms", observability.Milliseconds(rec.Duration))},
			})
		},
	}
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded evaluations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.History.Clear(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "History cleared")
			return nil
		},
	}
}

// findRecord looks up id exactly, then as a unique prefix.
func findRecord(store history.Store, id string) (history.Record, error) {
	rec, err := store.Get(id)
	if err == nil || !errors.Is(err, history.ErrNotFound) {
		return rec, err
	}

	all, err := store.List(0)
	if err != nil {
		return history.Record{}, err
	}
	var matches []history.Record
	for _, candidate := range all {
		if strings.HasPrefix(candidate.ID, id) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return history.Record{}, fmt.Errorf("%w: %s", history.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return history.Record{}, fmt.Errorf("id prefix %q matches %d records", id, len(matches))
	}
}

func renderHistory(r *output.Renderer, records []history.Record) error {
	if r.Mode() == output.ModeJSON {
		if records == nil {
			records = []history.Record{}
		}
		return r.JSON(records)
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		result := rec.Value
		if rec.Failed() {
			result = "error: " + rec.ErrorKind
		}
		rows[i] = []string{
			shortID(rec.ID),
			rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(rec.Expression, 48),
			truncate(result, 32),
		}
	}
	return r.Table([]string{"ID", "Time", "Expression", "Result"}, rows)
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
