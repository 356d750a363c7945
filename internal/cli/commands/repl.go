package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprkit/internal/cli/output"
	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

const replPrompt = "exprkit> "

// ReplOptions holds options for the repl command.
type ReplOptions struct {
	Watch       bool
	HistoryFile string
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	opts := &ReplOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Long: `Start an interactive session. Each line is evaluated as an expression
with the current variables; lines starting with '.' are session commands
(type .help to list them).

With --watch the vars file is reloaded whenever it changes.`,
		Example: `  exprkit repl
  exprkit repl --vars-file vars.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			return runREPL(cmd.Context(), app, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Reload the vars file when it changes")
	cmd.Flags().StringVar(&opts.HistoryFile, "history-file", "", "Line history file (default: next to the history database)")
	return cmd
}

func runREPL(ctx context.Context, app *App, opts *ReplOptions) error {
	s := newSession(app)

	if opts.Watch {
		if app.Config.VarsFile == "" {
			return errors.New("--watch requires a vars file (--vars-file)")
		}
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := s.watch(watchCtx, app.Config.VarsFile); err != nil {
			return err
		}
	}

	historyFile := opts.HistoryFile
	if historyFile == "" && app.Config.HistoryPath != "" {
		historyFile = filepath.Join(filepath.Dir(app.Config.HistoryPath), "repl_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          app.Renderer.Out(),
		Stderr:          app.Renderer.ErrOut(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	app.Renderer.Println("exprkit interactive mode")
	app.Renderer.Println(app.Renderer.Styles.Muted.Render("Type .help for commands, .quit to exit"))
	app.Renderer.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit := s.handle(ctx, line); quit {
			return nil
		}
	}
}

// session is the state of one interactive run: the variables loaded at
// startup (or on reload) and those assigned with .set.
type session struct {
	app *App
	r   *output.Renderer

	mu   sync.RWMutex
	base vars.Vars
	set  vars.Vars
}

func newSession(app *App) *session {
	return &session{
		app:  app,
		r:    app.Renderer,
		base: app.Vars,
		set:  vars.Vars{},
	}
}

// values returns the merged variables, nil when there are none.
func (s *session) values() vars.Vars {
	s.mu.RLock()
	defer s.mu.RUnlock()

	merged := s.base.Merge(s.set)
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// reload re-reads the configured variables, keeping .set assignments.
func (s *session) reload() error {
	loaded, err := s.app.LoadVars()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.base = loaded
	s.mu.Unlock()
	return nil
}

// handle processes one input line and reports whether the session should
// end.
func (s *session) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.command(ctx, line)
	}
	s.evaluate(ctx, line)
	return false
}

func (s *session) evaluate(ctx context.Context, expression string) {
	value, err := s.app.Engine.EvaluateWithContext(ctx, expression, s.values())
	if err != nil {
		s.r.Errorf("Error: %v", err)
		return
	}
	s.r.Printf("%s %s\n", s.r.Styles.Value.Render(value.Text()), s.r.Styles.Type.Render(value.Type().String()))
}

func (s *session) command(ctx context.Context, line string) bool {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.r.Out())

	case ".vars":
		s.printVars()

	case ".set":
		varName, text, found := strings.Cut(rest, " ")
		text = strings.TrimSpace(text)
		if !found || text == "" {
			s.r.Errorf("Usage: .set <name> <text>")
			return false
		}
		if err := vars.ValidateName(varName); err != nil {
			s.r.Errorf("Error: %v", err)
			return false
		}
		s.mu.Lock()
		s.set[varName] = text
		s.mu.Unlock()

	case ".unset":
		if rest == "" {
			s.r.Errorf("Usage: .unset <name>")
			return false
		}
		s.mu.Lock()
		_, ok := s.set[rest]
		delete(s.set, rest)
		s.mu.Unlock()
		if !ok {
			s.r.Errorf("%s was not set in this session", rest)
		}

	case ".tokens":
		if rest == "" {
			s.r.Errorf("Usage: .tokens <expression>")
			return false
		}
		if err := runTokens(s.r, rest, s.app.Config.Strict, &TokensOptions{}); err != nil {
			s.r.Errorf("Error: %v", err)
		}

	case ".explain":
		if rest == "" {
			s.r.Errorf("Usage: .explain <expression>")
			return false
		}
		res, err := s.app.Engine.Run(ctx, rest, s.values())
		if renderErr := renderExplain(s.r, rest, res, err); renderErr != nil {
			s.r.Errorf("Error: %v", renderErr)
		}
		if err != nil {
			s.r.Errorf("Error: %v", err)
		}

	case ".history":
		limit := s.app.Config.HistoryLimit
		if rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil || n < 0 {
				s.r.Errorf("Usage: .history [count]")
				return false
			}
			limit = n
		}
		records, err := s.app.History.List(limit)
		if err == nil {
			err = renderHistory(s.r, records)
		}
		if err != nil {
			s.r.Errorf("Error: %v", err)
		}

	case ".clear":
		s.r.Printf("\033[H\033[2J")

	default:
		s.r.Errorf("Unknown command: %s (type .help for commands)", name)
	}
	return false
}

func (s *session) printVars() {
	s.mu.RLock()
	merged := s.base.Merge(s.set)
	rows := make([][]string, 0, len(merged))
	for _, name := range merged.Names() {
		source := "config"
		if _, ok := s.set[name]; ok {
			source = "session"
		}
		rows = append(rows, []string{name, merged[name], source})
	}
	s.mu.RUnlock()

	if err := s.r.Table([]string{"Name", "Text", "Source"}, rows); err != nil {
		s.r.Errorf("Error: %v", err)
	}
}

// watch reloads the variables whenever path is written. The parent
// directory is watched so files replaced by rename are still seen.
func (s *session) watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	logger := s.app.Logger.With("vars_file", path)

	go func() {
		defer func() { _ = watcher.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.reload(); err != nil {
					logger.Warn("vars reload failed", "error", err)
					continue
				}
				logger.Info("vars reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "error", err)
			}
		}
	}()
	return nil
}

func (s *session) completer() *readline.PrefixCompleter {
	names := func(string) []string {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.base.Merge(s.set).Names()
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".vars"),
		readline.PcItem(".set", readline.PcItemDynamic(names)),
		readline.PcItem(".unset", readline.PcItemDynamic(names)),
		readline.PcItem(".tokens"),
		readline.PcItem(".explain"),
		readline.PcItem(".history"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help                Show this help message
  .vars                List variables and where they come from
  .set <name> <text>   Bind a variable to replacement text for this session
  .unset <name>        Remove a session binding
  .tokens <expr>       Show the tokens of an expression
  .explain <expr>      Show every evaluation stage of an expression
  .history [count]     List recent evaluations
  .clear               Clear the screen
  .quit / .exit        Exit the REPL

Tips:
  - Variable text is expression source: .set name 'widget' binds a string
  - Use arrow keys to navigate line history
  - Tab completes commands and variable names
`
	_, _ = fmt.Fprintln(w, help)
}
