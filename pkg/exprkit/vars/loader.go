package vars

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/exprkit/pkg/exprkit/token"
)

// FromFile loads variables from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Vars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vars file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported vars file extension: %s", ext)
	}
}

// FromYAML parses a flat YAML mapping into Vars.
//
// Scalars are converted to source text: strings are used verbatim,
// booleans become true/false, integers keep their digits and floats
// always carry a decimal point. Nested values are rejected.
func FromYAML(data []byte) (Vars, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return fromMap(m)
}

// FromJSON parses a flat JSON object into Vars, converting scalars the
// same way as FromYAML.
func FromJSON(data []byte) (Vars, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return fromMap(m)
}

func fromMap(m map[string]any) (Vars, error) {
	v := make(Vars, len(m))
	for name, raw := range m {
		text, err := ScalarText(raw)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		v[name] = text
	}
	return v, nil
}

// ScalarText converts a decoded YAML or JSON scalar to replacement text.
func ScalarText(raw any) (string, error) {
	switch val := raw.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return token.FormatDecimal(val), nil
	case json.Number:
		s := val.String()
		if !strings.ContainsAny(s, ".eE") {
			return s, nil
		}
		f, err := val.Float64()
		if err != nil {
			return "", err
		}
		return token.FormatDecimal(f), nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		return "", fmt.Errorf("unsupported value of type %T, expected a scalar", raw)
	}
}
