package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/randalmurphal/exprkit/pkg/exprkit/vars"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "EXPRKIT_"

// flagKeys maps flag names to config keys where they differ.
var flagKeys = map[string]string{
	"history": "history_path",
}

// skippedFlags are handled by the root command rather than the config.
var skippedFlags = map[string]bool{
	"config": true,
	"var":    true,
	"help":   true,
}

// findConfigFile finds the config file to use.
// Priority: explicit path > exprkit.yaml > exprkit.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"exprkit.yaml", "exprkit.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"strict":        false,
		"output":        DefaultOutput,
		"verbose":       false,
		"no_color":      false,
		"history_path":  DefaultHistoryFile,
		"history_limit": DefaultHistoryLimit,
		"vars_file":     "",
		"batch_limit":   DefaultBatchLimit,
		"metrics":       false,
		"tracing":       false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment variables: EXPRKIT_HISTORY_PATH -> history_path
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those set on the command line
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || skippedFlags[f.Name] {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       scalarTextHook(),
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// scalarTextHook decodes non-string scalars headed for string fields the
// same way vars files do, so "x: 3.0" under vars stays a decimal.
func scalarTextHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to.Kind() != reflect.String {
			return data, nil
		}
		switch from.Kind() {
		case reflect.Bool, reflect.Int, reflect.Int64, reflect.Uint64, reflect.Float64:
			return vars.ScalarText(data)
		default:
			return data, nil
		}
	}
}
