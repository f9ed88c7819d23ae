package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/livemark/pkg/syntax"
)

// Theme is a Sheet compiled to lipgloss terminal styles. Terminals have
// no text scale, so Scale is ignored here; everything else maps
// directly.
type Theme struct {
	styles map[syntax.Kind]lipgloss.Style
}

// NewTheme compiles a sheet. With color disabled, decorative rules keep
// their text attributes but render in the ambient color, same as
// structural rules always do.
func NewTheme(sheet *Sheet, colorEnabled bool) *Theme {
	if sheet == nil {
		sheet = DefaultSheet()
	}

	theme := &Theme{styles: make(map[syntax.Kind]lipgloss.Style, len(sheet.rules))}
	for kind, rule := range sheet.rules {
		theme.styles[kind] = compileRule(sheet, rule, colorEnabled)
	}
	return theme
}

// Style returns the terminal style for a kind. Kinds without a rule get
// the zero style, which renders text unchanged.
func (t *Theme) Style(kind syntax.Kind) lipgloss.Style {
	return t.styles[kind]
}

// Has reports whether the theme carries a rule for the kind.
func (t *Theme) Has(kind syntax.Kind) bool {
	_, ok := t.styles[kind]
	return ok
}

func compileRule(sheet *Sheet, rule Rule, colorEnabled bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Bold(rule.Bold).
		Italic(rule.Italic).
		Underline(rule.Underline).
		Strikethrough(rule.Strikethrough)

	if colorEnabled && rule.Tier == TierDecorative && rule.ColorVar != "" {
		if value := sheet.Color(rule.ColorVar); value != "" {
			s = s.Foreground(lipgloss.Color(value))
		}
	}
	return s
}
