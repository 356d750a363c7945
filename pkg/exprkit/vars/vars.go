// Package vars holds the variable context used to resolve identifiers in
// an expression.
//
// Each variable maps to replacement source text rather than a value. The
// text is tokenized and spliced into the expression in place of the
// variable, so "x" => "2 + 3" substitutes three tokens. Identifiers that
// appear inside replacement text are not resolved again; they become
// string literals.
package vars

import (
	"fmt"
	"sort"
	"strings"
)

// Vars maps variable names to replacement source text.
type Vars map[string]string

// Lookup returns the replacement text for name.
func (v Vars) Lookup(name string) (string, bool) {
	text, ok := v[name]
	return text, ok
}

// Names returns the variable names in sorted order.
func (v Vars) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new Vars holding v overlaid with other. Entries in other
// win.
func (v Vars) Merge(other Vars) Vars {
	merged := make(Vars, len(v)+len(other))
	for name, text := range v {
		merged[name] = text
	}
	for name, text := range other {
		merged[name] = text
	}
	return merged
}

// Parse builds Vars from "name=text" pairs, as given on a command line.
// Only the first '=' separates name from text, so text may contain "==".
func Parse(pairs []string) (Vars, error) {
	v := make(Vars, len(pairs))
	for _, pair := range pairs {
		name, text, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid variable %q: expected name=text", pair)
		}
		name = strings.TrimSpace(name)
		if err := ValidateName(name); err != nil {
			return nil, err
		}
		v[name] = text
	}
	return v, nil
}

// ValidateName reports whether name can be referenced from an expression.
// Identifiers are runs of ASCII letters other than "true" and "false".
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("variable name is empty")
	}
	for _, ch := range name {
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') {
			return fmt.Errorf("invalid variable name %q: only letters are allowed", name)
		}
	}
	if name == "true" || name == "false" {
		return fmt.Errorf("invalid variable name %q: reserved word", name)
	}
	return nil
}
