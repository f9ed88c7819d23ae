package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemark/pkg/style"
	"github.com/yaklabco/livemark/pkg/syntax"
)

func TestDefaultSheetTiers(t *testing.T) {
	t.Parallel()

	sheet := style.DefaultSheet()

	tests := []struct {
		name string
		kind syntax.Kind
		tier style.Tier
	}{
		{"heading is structural", syntax.KindHeading, style.TierStructural},
		{"strong is structural", syntax.KindStrong, style.TierStructural},
		{"emphasis is decorative", syntax.KindEmphasis, style.TierDecorative},
		{"blockquote is decorative", syntax.KindBlockquote, style.TierDecorative},
		{"link is structural", syntax.KindLink, style.TierStructural},
		{"strikethrough is structural", syntax.KindStrikethrough, style.TierStructural},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rule, ok := sheet.Rule(testCase.kind)
			require.True(t, ok)
			assert.Equal(t, testCase.tier, rule.Tier)
		})
	}
}

func TestDefaultSheetStructuralRulesHaveNoColor(t *testing.T) {
	t.Parallel()

	sheet := style.DefaultSheet()

	for _, kind := range []syntax.Kind{syntax.KindHeading, syntax.KindStrong, syntax.KindLink, syntax.KindStrikethrough} {
		rule, ok := sheet.Rule(kind)
		require.True(t, ok, kind.String())
		assert.Empty(t, rule.ColorVar, kind.String())
	}
}

func TestDefaultSheetDecorativeRulesResolveColors(t *testing.T) {
	t.Parallel()

	sheet := style.DefaultSheet()

	rule, ok := sheet.Rule(syntax.KindEmphasis)
	require.True(t, ok)
	require.NotEmpty(t, rule.ColorVar)
	assert.NotEmpty(t, sheet.Color(rule.ColorVar))
}

func TestFromYAMLOverlaysDefaults(t *testing.T) {
	t.Parallel()

	input := []byte(`
rules:
  Emphasis:
    tier: decorative
    italic: true
    bold: true
    color_var: emphasis
colors:
  emphasis: "201"
`)

	sheet, err := style.FromYAML(input)
	require.NoError(t, err)

	// The overlay replaced the emphasis rule and its color variable.
	rule, ok := sheet.Rule(syntax.KindEmphasis)
	require.True(t, ok)
	assert.True(t, rule.Bold)
	assert.Equal(t, "201", sheet.Color("emphasis"))

	// Untouched defaults survive.
	heading, ok := sheet.Rule(syntax.KindHeading)
	require.True(t, ok)
	assert.True(t, heading.Bold)
}

func TestFromYAMLRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := style.FromYAML([]byte("rules:\n  Nonsense:\n    bold: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestFromYAMLRejectsStructuralColor(t *testing.T) {
	t.Parallel()

	input := []byte(`
rules:
  Heading:
    tier: structural
    color_var: emphasis
`)

	_, err := style.FromYAML(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambient")
}

func TestFromYAMLRejectsUnknownTier(t *testing.T) {
	t.Parallel()

	_, err := style.FromYAML([]byte("rules:\n  Emphasis:\n    tier: sparkly\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tier")
}

func TestFromYAMLRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := style.FromYAML([]byte("rules: [unclosed"))
	assert.Error(t, err)
}

func TestSetColor(t *testing.T) {
	t.Parallel()

	sheet := style.DefaultSheet()
	sheet.SetColor("emphasis", "99")

	assert.Equal(t, "99", sheet.Color("emphasis"))
}
