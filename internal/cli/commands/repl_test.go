package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/exprkit/internal/cli/output"
	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

func TestSession_Evaluate(t *testing.T) {
	app := newTestApp(t, output.ModeText, vars.Vars{"qty": "4"})
	s := newSession(app.App)

	assert.False(t, s.handle(context.Background(), "qty * 2.5"))
	assert.Equal(t, "10.0 decimal\n", app.Out.String())

	assert.False(t, s.handle(context.Background(), "qty + 'x'"))
	assert.Contains(t, app.ErrOut.String(), "Error:")
	assert.Contains(t, app.ErrOut.String(), "cannot be applied to integer and string")
}

func TestSession_BlankLine(t *testing.T) {
	app := newTestApp(t, output.ModeText, nil)
	s := newSession(app.App)

	assert.False(t, s.handle(context.Background(), "   "))
	assert.Empty(t, app.Out.String())
	assert.Equal(t, 0, app.Store.Len())
}

func TestSession_Quit(t *testing.T) {
	app := newTestApp(t, output.ModeText, nil)
	s := newSession(app.App)

	for _, line := range []string{".quit", ".exit", ".QUIT"} {
		assert.True(t, s.handle(context.Background(), line), line)
	}
}

func TestSession_SetAndUnset(t *testing.T) {
	app := newTestApp(t, output.ModeText, vars.Vars{"a": "1"})
	s := newSession(app.App)
	ctx := context.Background()

	s.handle(ctx, ".set b a + 1")
	assert.Equal(t, vars.Vars{"a": "1", "b": "a + 1"}, s.values())

	s.handle(ctx, ".set a 10")
	assert.Equal(t, "10", s.values()["a"], "session bindings win over loaded ones")

	s.handle(ctx, ".unset a")
	assert.Equal(t, "1", s.values()["a"])

	app.ErrOut.Reset()
	s.handle(ctx, ".unset a")
	assert.Contains(t, app.ErrOut.String(), "a was not set in this session")

	app.ErrOut.Reset()
	s.handle(ctx, ".set nope")
	assert.Contains(t, app.ErrOut.String(), "Usage: .set")

	app.ErrOut.Reset()
	s.handle(ctx, ".set bad_name 1")
	assert.Contains(t, app.ErrOut.String(), "Error:")
	assert.NotContains(t, s.values(), "bad_name")
}

func TestSession_ValuesEmpty(t *testing.T) {
	app := newTestApp(t, output.ModeText, nil)
	s := newSession(app.App)
	assert.Nil(t, s.values())
}

func TestSession_Vars(t *testing.T) {
	app := newTestApp(t, output.ModeMarkdown, vars.Vars{"rate": "0.5"})
	s := newSession(app.App)
	ctx := context.Background()

	s.handle(ctx, ".set name 'widget'")
	s.handle(ctx, ".vars")

	got := app.Out.String()
	assert.Contains(t, got, "| name | 'widget' | session |")
	assert.Contains(t, got, "| rate | 0.5 | config |")
	assert.Less(t, strings.Index(got, "| name |"), strings.Index(got, "| rate |"))
}

func TestSession_Inspection(t *testing.T) {
	app := newTestApp(t, output.ModeMarkdown, nil)
	s := newSession(app.App)
	ctx := context.Background()

	s.handle(ctx, ".tokens 1 + 2")
	assert.Contains(t, app.Out.String(), "| 2 | operator | + |")

	app.Out.Reset()
	s.handle(ctx, ".explain 1 + 2")
	assert.Contains(t, app.Out.String(), "### Postfix")
	assert.Contains(t, app.Out.String(), "| 3 | integer |")

	app.Out.Reset()
	s.handle(ctx, ".history")
	assert.Contains(t, app.Out.String(), "| 1 + 2 | 3 |")

	app.ErrOut.Reset()
	s.handle(ctx, ".history many")
	assert.Contains(t, app.ErrOut.String(), "Usage: .history")

	app.ErrOut.Reset()
	s.handle(ctx, ".tokens")
	assert.Contains(t, app.ErrOut.String(), "Usage: .tokens")
}

func TestSession_UnknownCommand(t *testing.T) {
	app := newTestApp(t, output.ModeText, nil)
	s := newSession(app.App)

	assert.False(t, s.handle(context.Background(), ".frobnicate"))
	assert.Contains(t, app.ErrOut.String(), "Unknown command: .frobnicate")
}

func TestSession_Help(t *testing.T) {
	app := newTestApp(t, output.ModeText, nil)
	s := newSession(app.App)

	s.handle(context.Background(), ".help")
	for _, cmd := range []string{".vars", ".set", ".unset", ".tokens", ".explain", ".history", ".quit"} {
		assert.Contains(t, app.Out.String(), cmd)
	}
}

func TestSession_WatchReloadsVars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limit: 1\n"), 0o644))

	app := newTestApp(t, output.ModeText, nil)
	// The watcher may still log after the test returns.
	app.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	app.Config.VarsFile = path
	loaded, err := app.LoadVars()
	require.NoError(t, err)
	app.Vars = loaded

	s := newSession(app.App)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.watch(ctx, path))

	require.NoError(t, os.WriteFile(path, []byte("limit: 2\n"), 0o644))

	assert.Eventually(t, func() bool {
		return s.values()["limit"] == "2"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestRunREPL_WatchRequiresVarsFile(t *testing.T) {
	app := newTestApp(t, output.ModeText, nil)
	err := runREPL(context.Background(), app.App, &ReplOptions{Watch: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch requires a vars file")
}
