// Package commands implements the exprkit CLI commands.
package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/randalmurphal/exprkit/internal/cli/config"
	"github.com/randalmurphal/exprkit/internal/cli/output"
	"github.com/randalmurphal/exprkit/pkg/exprkit"
	"github.com/randalmurphal/exprkit/pkg/exprkit/history"
	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

// App holds the state shared by all commands. The root command builds it
// before any command runs.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Engine   *exprkit.Engine
	History  history.Store
	Renderer *output.Renderer

	// FlagVars holds --var assignments. They win over the vars file and
	// the config file.
	FlagVars vars.Vars
	// Vars is the merged variable context.
	Vars vars.Vars
}

// ErrNoApp is returned when a command runs without an initialized App.
var ErrNoApp = errors.New("command requires an initialized application")

type appKey struct{}

// WithApp returns a context carrying app.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// AppFrom retrieves the App stored by WithApp.
func AppFrom(ctx context.Context) (*App, error) {
	if ctx == nil {
		return nil, ErrNoApp
	}
	if app, ok := ctx.Value(appKey{}).(*App); ok && app != nil {
		return app, nil
	}
	return nil, ErrNoApp
}

// LoadVars merges, lowest to highest precedence, the config file vars, the
// vars file and the --var flags.
func (a *App) LoadVars() (vars.Vars, error) {
	merged := vars.Vars(a.Config.Vars).Merge(nil)
	if a.Config.VarsFile != "" {
		fileVars, err := vars.FromFile(a.Config.VarsFile)
		if err != nil {
			return nil, err
		}
		merged = merged.Merge(fileVars)
	}
	return merged.Merge(a.FlagVars), nil
}

// values returns the variable context for an evaluation. Without any
// variables substitution is skipped entirely.
func (a *App) values() vars.Vars {
	if len(a.Vars) == 0 {
		return nil
	}
	return a.Vars
}
