package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprkit/internal/cli/config"
	"github.com/randalmurphal/exprkit/internal/cli/output"
	"github.com/randalmurphal/exprkit/internal/testutil"
	"github.com/randalmurphal/exprkit/pkg/exprkit"
	"github.com/randalmurphal/exprkit/pkg/exprkit/history"
	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

// testApp is an App wired to in-memory history and captured output.
type testApp struct {
	*App
	Store  *history.MemoryStore
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

func newTestApp(t *testing.T, mode output.OutputMode, values vars.Vars) *testApp {
	t.Helper()
	output.DisableColor()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	store := history.NewMemoryStore()
	logger := testutil.NewTestLogger(t)

	cfg := &config.Config{
		OutputFormat: string(mode),
		HistoryLimit: config.DefaultHistoryLimit,
		BatchLimit:   config.DefaultBatchLimit,
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		History:  store,
		Renderer: output.NewRendererWithTTY(out, errOut, false, mode),
		Vars:     values,
		Engine: exprkit.New(
			exprkit.WithLogger(logger),
			exprkit.WithHistory(store),
		),
	}
	return &testApp{App: app, Store: store, Out: out, ErrOut: errOut}
}

// execute runs cmd with args and the test app in its context.
func execute(cmd *cobra.Command, app *testApp, args ...string) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetArgs(args)
	cmd.SetOut(app.Out)
	cmd.SetErr(app.ErrOut)
	return cmd.ExecuteContext(WithApp(context.Background(), app.App))
}
