// Package suggest picks an icon for free-form suggestion text.
//
// Matching is a keyword heuristic: rules are tried in order and the first
// rule with a keyword contained in the text wins.
package suggest

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/rules.yaml
var builtinFS embed.FS

// Rules is an ordered icon rule set.
type Rules struct {
	Default string `yaml:"default"`
	Rules   []Rule `yaml:"rules"`
}

// Rule maps any of its keywords to an icon.
type Rule struct {
	Name     string   `yaml:"name"`
	Icon     string   `yaml:"icon"`
	Keywords []string `yaml:"keywords"`
}

// Builtin returns the rule set shipped with the binary.
func Builtin() (*Rules, error) {
	data, err := builtinFS.ReadFile("builtin/rules.yaml")
	if err != nil {
		return nil, fmt.Errorf("suggest.Builtin: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("suggest.Builtin: %w", err)
	}
	return r, nil
}

// LoadFile reads a rule set from a YAML file.
func LoadFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("suggest.LoadFile: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("suggest.LoadFile: %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a YAML rule set. Keywords are lowercased.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if r.Default == "" {
		return nil, fmt.Errorf("rules: default icon required")
	}
	for i := range r.Rules {
		rule := &r.Rules[i]
		if rule.Icon == "" {
			return nil, fmt.Errorf("rules[%d]: icon required", i)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("rules[%d]: at least one keyword required", i)
		}
		for j, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("rules[%d].keywords[%d]: empty keyword", i, j)
			}
			rule.Keywords[j] = kw
		}
	}
	return &r, nil
}

// Icon returns the icon of the first matching rule, or the default.
func (r *Rules) Icon(suggestion string) string {
	text := strings.ToLower(suggestion)
	for _, rule := range r.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Icon
			}
		}
	}
	return r.Default
}

// MustBuiltin is like Builtin but panics if the embedded rules are invalid.
func MustBuiltin() *Rules {
	r, err := Builtin()
	if err != nil {
		panic(err)
	}
	return r
}
