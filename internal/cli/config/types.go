// Package config provides configuration management for the exprkit CLI.
//
// Values are layered, lowest to highest: built-in defaults, the config file
// (exprkit.yaml), EXPRKIT_ environment variables and explicitly set flags.
package config

import (
	"fmt"

	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

// Config holds all CLI configuration options.
type Config struct {
	Strict       bool              `koanf:"strict"`
	OutputFormat string            `koanf:"output"`
	Verbose      bool              `koanf:"verbose"`
	NoColor      bool              `koanf:"no_color"`
	HistoryPath  string            `koanf:"history_path"`
	HistoryLimit int               `koanf:"history_limit"`
	VarsFile     string            `koanf:"vars_file"`
	Vars         map[string]string `koanf:"vars"`
	BatchLimit   int               `koanf:"batch_limit"`
	Metrics      bool              `koanf:"metrics"`
	Tracing      bool              `koanf:"tracing"`

	// File is the config file that was read, empty when none was found.
	File string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultHistoryFile  = ".exprkit/history.db"
	DefaultHistoryLimit = 20
	DefaultBatchLimit   = 8
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// OutputFormats lists the accepted values of the output option.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate reports the first invalid option.
func (c *Config) Validate() error {
	if !validOutput(c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want one of %v)", c.OutputFormat, OutputFormats)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	if c.BatchLimit < 1 {
		return fmt.Errorf("batch_limit must be at least 1, got %d", c.BatchLimit)
	}
	for name := range c.Vars {
		if err := vars.ValidateName(name); err != nil {
			return fmt.Errorf("config vars: %w", err)
		}
	}
	return nil
}

func validOutput(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
