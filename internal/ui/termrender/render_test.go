package termrender_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemark/internal/ui/termrender"
	"github.com/yaklabco/livemark/pkg/doc"
	"github.com/yaklabco/livemark/pkg/preview"
	"github.com/yaklabco/livemark/pkg/style"
	"github.com/yaklabco/livemark/pkg/syntax"
	"github.com/yaklabco/livemark/pkg/widget"
)

func TestRenderPassthroughWithoutDecorations(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("plain text\nsecond line\n"))
	renderer := termrender.New(nil)

	out := renderer.Render(snap, nil, nil)
	assert.Equal(t, "plain text\nsecond line\n", out)
}

func TestRenderDeletionRemovesText(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("# Title\n"))
	renderer := termrender.New(nil)

	out := renderer.Render(snap, nil, []preview.Decoration{
		{Span: doc.Span{From: 0, To: 2}},
	})

	assert.Equal(t, "Title\n", out)
}

func TestRenderBulletSubstitution(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("- item\n"))
	renderer := termrender.New(nil)

	out := renderer.Render(snap, nil, []preview.Decoration{
		{Span: doc.Span{From: 0, To: 1}, Widget: widget.Bullet{}},
	})

	assert.Contains(t, out, widget.BulletGlyph)
	assert.Contains(t, out, "item")
	assert.NotContains(t, out, "-")
}

func TestRenderImagePlaceholder(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("![](pic.png)\n"))
	renderer := termrender.New(nil)

	out := renderer.Render(snap, nil, []preview.Decoration{
		{Span: doc.Span{From: 0, To: 12}, Widget: widget.Image{URL: "pic.png"}},
	})

	assert.Equal(t, "[image: pic.png]\n", out)
}

func TestRenderAltTextSubstitution(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("![a photo](pic.png)\n"))
	renderer := termrender.New(nil)

	out := renderer.Render(snap, nil, []preview.Decoration{
		{Span: doc.Span{From: 0, To: 19}, Widget: widget.Text{Content: "a photo"}},
	})

	assert.Equal(t, "a photo\n", out)
}

func TestRenderHTMLWidgetFlattensToText(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("<b>hi</b>\n"))
	renderer := termrender.New(nil)

	out := renderer.Render(snap, nil, []preview.Decoration{
		{Span: doc.Span{From: 0, To: 9}, Widget: widget.NewHTML("<b>hi</b>", nil)},
	})

	assert.Contains(t, out, "hi")
	assert.NotContains(t, out, "<b>")
}

func TestRenderStyledHeadingKeepsText(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("# Title\n"))

	root := syntax.NewNode(syntax.KindDocument, 0, snap.Len())
	heading := syntax.NewNode(syntax.KindHeading, 0, 7)
	syntax.AppendChild(root, heading)
	syntax.AppendChild(heading, syntax.NewNode(syntax.KindHeaderMark, 0, 1))
	tree := syntax.NewTree(root)

	theme := style.NewTheme(style.DefaultSheet(), false)
	renderer := termrender.New(theme)

	out := renderer.Render(snap, tree, []preview.Decoration{
		{Span: doc.Span{From: 0, To: 2}},
	})

	assert.Contains(t, out, "Title")
	assert.NotContains(t, out, "#")
}

func TestRenderWidthWraps(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("a long line that should wrap at a narrow width"))
	renderer := termrender.New(nil, termrender.WithWidth(10))

	out := renderer.Render(snap, nil, nil)
	require.NotEmpty(t, out)
	assert.Greater(t, len(strings.Split(out, "\n")), 1)
}

func TestRenderNilSnapshot(t *testing.T) {
	t.Parallel()

	renderer := termrender.New(nil)
	assert.Empty(t, renderer.Render(nil, nil, nil))
}

func TestIsColorEnabled(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		expected bool
	}{
		{"always", "always", true},
		{"never", "never", false},
		{"auto non-tty", "auto", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, testCase.expected, termrender.IsColorEnabled(testCase.mode, &buf))
		})
	}
}

func TestIsColorEnabledRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	assert.False(t, termrender.IsColorEnabled("auto", &buf))
}
