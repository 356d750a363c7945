package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.Bool("strict", false, "")
	fs.StringP("output", "o", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Bool("no-color", false, "")
	fs.String("history", "", "")
	fs.Int("history-limit", 0, "")
	fs.String("vars-file", "", "")
	fs.StringArray("var", nil, "")
	fs.Int("batch-limit", 0, "")
	fs.Bool("metrics", false, "")
	fs.Bool("tracing", false, "")
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exprkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultHistoryFile, cfg.HistoryPath)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, DefaultBatchLimit, cfg.BatchLimit)
	assert.False(t, cfg.Strict)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Vars)
	assert.Empty(t, cfg.File)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
strict: true
output: json
history_limit: 5
vars:
  rate: 3.0
  count: 5
  enabled: true
  name: "'widget'"
`)

	cfg, err := Load(path, newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, map[string]string{
		"rate":    "3.0",
		"count":   "5",
		"enabled": "true",
		"name":    "'widget'",
	}, cfg.Vars)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "output: json\nbatch_limit: 2\n")
	t.Setenv("EXPRKIT_OUTPUT", "markdown")
	t.Setenv("EXPRKIT_BATCH_LIMIT", "4")

	cfg, err := Load(path, newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, 4, cfg.BatchLimit)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("EXPRKIT_OUTPUT", "markdown")

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"-o", "text", "--history", "/tmp/h.db", "--history-limit", "3", "--strict"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, "/tmp/h.db", cfg.HistoryPath)
	assert.Equal(t, 3, cfg.HistoryLimit)
	assert.True(t, cfg.Strict)
}

func TestLoad_UnchangedFlagsKeepFileValues(t *testing.T) {
	path := writeConfig(t, "batch_limit: 3\nmetrics: true\n")

	cfg, err := Load(path, newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.BatchLimit)
	assert.True(t, cfg.Metrics)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad output", content: "output: xml\n", wantErr: "invalid output format"},
		{name: "negative history limit", content: "history_limit: -1\n", wantErr: "history_limit"},
		{name: "zero batch limit", content: "batch_limit: 0\n", wantErr: "batch_limit"},
		{name: "bad var name", content: "vars:\n  rate2: 1\n", wantErr: "only letters are allowed"},
		{name: "malformed yaml", content: "output: [json\n", wantErr: "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path, newFlagSet())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestScalarTextHook(t *testing.T) {
	hook := scalarTextHook()
	stringType := reflect.TypeOf("")

	tests := []struct {
		name string
		data interface{}
		want interface{}
	}{
		{name: "float keeps point", data: 2.0, want: "2.0"},
		{name: "int", data: 7, want: "7"},
		{name: "bool", data: false, want: "false"},
		{name: "string untouched", data: "x + 1", want: "x + 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hook(reflect.TypeOf(tt.data), stringType, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("non-string target untouched", func(t *testing.T) {
		got, err := hook(reflect.TypeOf(3), reflect.TypeOf(0), 3)
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})
}
