// Package style defines the styling contract for preview rendering: a
// rule table keyed by syntax kind, split into two tiers. Structural
// kinds (headings, strong) inherit the ambient text color and only vary
// weight or size; decorative kinds (emphasis, quotes, list markers)
// draw from named color variables supplied by configuration. The core
// never hardcodes color values.
package style

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/livemark/pkg/syntax"
)

// Tier classifies how a rule colors its text.
type Tier int

const (
	// TierStructural rules inherit the ambient text color.
	TierStructural Tier = iota
	// TierDecorative rules resolve their color from a named variable.
	TierDecorative
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierStructural:
		return "structural"
	case TierDecorative:
		return "decorative"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Rule describes the style attributes applied to one syntax kind.
type Rule struct {
	Tier          Tier
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool

	// Scale is a relative text size multiplier. Zero means inherit.
	Scale float64

	// ColorVar names the color variable a decorative rule draws from.
	// Empty for structural rules.
	ColorVar string
}

// Sheet is a complete styling table: per-kind rules plus the values of
// the color variables decorative rules reference.
type Sheet struct {
	rules  map[syntax.Kind]Rule
	colors map[string]string
}

// Color variable names referenced by the default sheet.
const (
	VarEmphasis = "emphasis"
	VarQuote    = "quote"
	VarList     = "list"
	VarCode     = "code"
)

// DefaultSheet returns the built-in styling table. Structural kinds
// vary only weight and scale; decorative kinds reference color
// variables with terminal-safe ANSI defaults.
func DefaultSheet() *Sheet {
	return &Sheet{
		rules: map[syntax.Kind]Rule{
			syntax.KindHeading:       {Tier: TierStructural, Bold: true, Scale: 1.25},
			syntax.KindStrong:        {Tier: TierStructural, Bold: true},
			syntax.KindEmphasis:      {Tier: TierDecorative, Italic: true, ColorVar: VarEmphasis},
			syntax.KindBlockquote:    {Tier: TierDecorative, Italic: true, ColorVar: VarQuote},
			syntax.KindListMark:      {Tier: TierDecorative, ColorVar: VarList},
			syntax.KindCodeSpan:      {Tier: TierDecorative, ColorVar: VarCode},
			syntax.KindCodeBlock:     {Tier: TierDecorative, ColorVar: VarCode},
			syntax.KindLink:          {Tier: TierStructural, Underline: true},
			syntax.KindStrikethrough: {Tier: TierStructural, Strikethrough: true},
		},
		colors: map[string]string{
			VarEmphasis: "13",
			VarQuote:    "8",
			VarList:     "12",
			VarCode:     "10",
		},
	}
}

// Rule returns the rule for a kind, if one exists.
func (s *Sheet) Rule(kind syntax.Kind) (Rule, bool) {
	rule, ok := s.rules[kind]
	return rule, ok
}

// Color resolves a color variable. Missing variables resolve to the
// empty string, which renderers treat as the ambient color.
func (s *Sheet) Color(variable string) string {
	return s.colors[variable]
}

// SetColor overrides one color variable.
func (s *Sheet) SetColor(variable, value string) {
	if s.colors == nil {
		s.colors = make(map[string]string)
	}
	s.colors[variable] = value
}

// sheetYAML is the on-disk form: kinds and tiers as names.
type sheetYAML struct {
	Rules  map[string]ruleYAML `yaml:"rules"`
	Colors map[string]string   `yaml:"colors"`
}

type ruleYAML struct {
	Tier          string  `yaml:"tier,omitempty"`
	Bold          bool    `yaml:"bold,omitempty"`
	Italic        bool    `yaml:"italic,omitempty"`
	Underline     bool    `yaml:"underline,omitempty"`
	Strikethrough bool    `yaml:"strikethrough,omitempty"`
	Scale         float64 `yaml:"scale,omitempty"`
	ColorVar      string  `yaml:"color_var,omitempty"`
}

// FromYAML parses a sheet overlay from YAML and applies it on top of
// the default sheet: listed kinds replace their default rule, listed
// color variables replace their default value, everything else keeps
// its default.
func FromYAML(data []byte) (*Sheet, error) {
	var raw sheetYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse style sheet: %w", err)
	}

	sheet := DefaultSheet()

	for name, yamlRule := range raw.Rules {
		kind, ok := syntax.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("parse style sheet: unknown kind %q", name)
		}
		rule, err := yamlRule.toRule()
		if err != nil {
			return nil, fmt.Errorf("parse style sheet: kind %q: %w", name, err)
		}
		sheet.rules[kind] = rule
	}

	for variable, value := range raw.Colors {
		sheet.colors[variable] = value
	}

	return sheet, nil
}

func (r ruleYAML) toRule() (Rule, error) {
	rule := Rule{
		Bold:          r.Bold,
		Italic:        r.Italic,
		Underline:     r.Underline,
		Strikethrough: r.Strikethrough,
		Scale:         r.Scale,
		ColorVar:      r.ColorVar,
	}

	switch r.Tier {
	case "", "structural":
		rule.Tier = TierStructural
	case "decorative":
		rule.Tier = TierDecorative
	default:
		return Rule{}, fmt.Errorf("unknown tier %q", r.Tier)
	}

	if rule.Tier == TierStructural && rule.ColorVar != "" {
		return Rule{}, fmt.Errorf("structural rules inherit the ambient color, color_var %q not allowed", rule.ColorVar)
	}
	return rule, nil
}
