package style

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tilescape/internal/mesh"
)

// Rule is the immutable drawing rule for one layer.
type Rule struct {
	Fill    mesh.Color
	Extrude bool
}

// RuleSet maps layer names to drawing rules. Loaded once, looked up per
// feature.
type RuleSet struct {
	rules    map[string]Rule
	fallback Rule
}

// Lookup returns the rule for a layer, or the default rule for layers
// without one.
func (r *RuleSet) Lookup(layer string) Rule {
	if rule, ok := r.rules[layer]; ok {
		return rule
	}
	return r.fallback
}

// DefaultRules returns the built-in layer rule table.
func DefaultRules() *RuleSet {
	return &RuleSet{
		rules: map[string]Rule{
			"buildings": {Fill: mesh.RGBA(0xf2, 0xf0, 0xe6, 0xff), Extrude: true},
			"water":     {Fill: mesh.RGBA(0x1a, 0x7d, 0x91, 0xff), Extrude: true},
			"roads":     {Fill: mesh.RGBA(0x96, 0x96, 0x96, 0xff), Extrude: true},
			"earth":     {Fill: mesh.RGBA(0xc2, 0xb9, 0xa9, 0xff), Extrude: true},
			"landuse":   {Fill: mesh.RGBA(0x71, 0x91, 0x66, 0xff), Extrude: true},
		},
		fallback: Rule{Fill: mesh.RGBA(0xaa, 0xaa, 0xaa, 0xff), Extrude: true},
	}
}

// ruleFile is the yaml shape of a rules file: layer name to rule, with
// an optional "default" entry replacing the built-in fallback.
type ruleFile map[string]struct {
	Fill    string `yaml:"fill"`
	Extrude *bool  `yaml:"extrude"`
}

// LoadRules reads a layer rule table from a yaml file. Missing extrude
// flags default to true, matching the built-in table.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style rules: %w", err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing style rules %s: %w", path, err)
	}

	rs := DefaultRules()
	for layer, entry := range file {
		fill, err := parseHexColor(entry.Fill)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer, err)
		}
		rule := Rule{Fill: fill, Extrude: true}
		if entry.Extrude != nil {
			rule.Extrude = *entry.Extrude
		}
		if layer == "default" {
			rs.fallback = rule
		} else {
			rs.rules[layer] = rule
		}
	}
	return rs, nil
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa".
func parseHexColor(s string) (mesh.Color, error) {
	if len(s) == 0 || s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return mesh.Color{}, fmt.Errorf("invalid color %q, want #rrggbb or #rrggbbaa", s)
	}

	var r, g, b uint8
	a := uint8(0xff)
	if _, err := fmt.Sscanf(s[1:7], "%02x%02x%02x", &r, &g, &b); err != nil {
		return mesh.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(s) == 9 {
		if _, err := fmt.Sscanf(s[7:9], "%02x", &a); err != nil {
			return mesh.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	}
	return mesh.RGBA(r, g, b, a), nil
}
