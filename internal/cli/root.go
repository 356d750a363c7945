// Package cli provides the command-line interface for exprkit.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprkit/internal/cli/commands"
	"github.com/randalmurphal/exprkit/internal/cli/config"
	"github.com/randalmurphal/exprkit/internal/cli/output"
	"github.com/randalmurphal/exprkit/pkg/exprkit"
	"github.com/randalmurphal/exprkit/pkg/exprkit/history"
	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

// Version information (set at build time).
var Version = "0.1.0"

// resources tracks what PersistentPreRunE opened so it can be released
// once the command returns, whether or not it failed.
type resources struct {
	closers []func(context.Context) error
}

func (r *resources) add(fn func(context.Context) error) {
	r.closers = append(r.closers, fn)
}

// close releases resources in reverse order of acquisition.
func (r *resources) close(ctx context.Context) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i](ctx))
	}
	r.closers = nil
	return errors.Join(errs...)
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&resources{})
}

func newRootCmd(res *resources) *cobra.Command {
	var (
		cfgFile  string
		varPairs []string
	)

	rootCmd := &cobra.Command{
		Use:   "exprkit",
		Short: "exprkit - expression evaluator",
		Long: `exprkit evaluates infix expressions over strings, booleans, integers and
decimals, with variables resolved from the command line, a vars file or the
config file.

Operators, loosest binding first: || && (== !=) (> >= < <=) (+ -) (* /) ^ !`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipInit(cmd) {
				return nil
			}

			app, err := buildApp(cmd, cfgFile, varPairs, res)
			if err != nil {
				return err
			}
			cmd.SetContext(commands.WithApp(cmd.Context(), app))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./exprkit.yaml)")
	pf.Bool("strict", false, "Reject stray characters instead of skipping them")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("history", "", "Path to the history database (default: "+config.DefaultHistoryFile+", empty keeps history in memory)")
	pf.Int("history-limit", config.DefaultHistoryLimit, "Records shown by history listings")
	pf.String("vars-file", "", "YAML or JSON file of variables")
	pf.StringArrayVar(&varPairs, "var", nil, "Variable as name=text (repeatable)")
	pf.Int("batch-limit", config.DefaultBatchLimit, "Expressions evaluated at once by batch")
	pf.Bool("metrics", false, "Log evaluation metrics on exit")
	pf.Bool("tracing", false, "Log evaluation spans as they finish")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagFilename("vars-file", "yaml", "yml", "json")

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewEvalCommand())
	rootCmd.AddCommand(commands.NewExplainCommand())
	rootCmd.AddCommand(commands.NewTokensCommand())
	rootCmd.AddCommand(commands.NewBatchCommand())
	rootCmd.AddCommand(commands.NewReplCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// skipInit reports whether cmd runs without configuration or a history
// database.
func skipInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "version", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// buildApp loads configuration and opens everything commands share.
func buildApp(cmd *cobra.Command, cfgFile string, varPairs []string, res *resources) (*commands.App, error) {
	cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}

	if cfg.NoColor || os.Getenv("NO_COLOR") != "" {
		output.DisableColor()
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if cfg.File != "" {
		logger.Debug("using config file", "path", cfg.File)
	}

	flagVars, err := vars.Parse(varPairs)
	if err != nil {
		return nil, err
	}

	tel := setupTelemetry(cfg, slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)))
	res.add(tel.Shutdown)

	store, err := openHistory(cfg.HistoryPath)
	if err != nil {
		return nil, err
	}
	res.add(func(context.Context) error { return store.Close() })

	app := &commands.App{
		Config:   cfg,
		Logger:   logger,
		History:  store,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
		FlagVars: flagVars,
	}
	if app.Vars, err = app.LoadVars(); err != nil {
		return nil, err
	}
	logger.Debug("variables loaded", "count", len(app.Vars))

	app.Engine = exprkit.New(
		exprkit.WithLogger(logger),
		exprkit.WithMetrics(cfg.Metrics),
		exprkit.WithTracing(cfg.Tracing),
		exprkit.WithStrictLexing(cfg.Strict),
		exprkit.WithHistory(store),
		exprkit.WithBatchLimit(cfg.BatchLimit),
	)
	return app, nil
}

// openHistory opens the SQLite history at path, creating its directory.
// An empty path keeps history in memory for this run only.
func openHistory(path string) (history.Store, error) {
	if path == "" {
		return history.NewMemoryStore(), nil
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	store, err := history.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes the CLI with explicit arguments and streams, releasing
// everything the command opened before returning.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	res := &resources{}
	rootCmd := newRootCmd(res)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if closeErr := res.close(context.Background()); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for exprkit.

To load completions:

Bash:
  $ source <(exprkit completion bash)

Zsh:
  $ exprkit completion zsh > "${fpath[1]}/_exprkit"

Fish:
  $ exprkit completion fish | source

PowerShell:
  PS> exprkit completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
