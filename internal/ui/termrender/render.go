// Package termrender approximates the live preview on a terminal: it
// applies a decoration set to a document snapshot, substituting widget
// text for hidden markup, and colors the visible text through a style
// theme.
package termrender

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/yaklabco/livemark/pkg/doc"
	"github.com/yaklabco/livemark/pkg/preview"
	"github.com/yaklabco/livemark/pkg/style"
	"github.com/yaklabco/livemark/pkg/syntax"
	"github.com/yaklabco/livemark/pkg/widget"
)

// Renderer renders snapshots with decorations applied.
type Renderer struct {
	theme *style.Theme
	width int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth wraps output at the given column count. Zero disables
// wrapping.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		r.width = width
	}
}

// New creates a Renderer. A nil theme renders unstyled text.
func New(theme *style.Theme, opts ...Option) *Renderer {
	r := &Renderer{theme: theme}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the terminal approximation: decoration spans are
// replaced with widget text (or removed for pure deletions), everything
// else is the snapshot's own text, styled by the innermost themed node
// covering it. Decorations must be ordered and non-overlapping, which is
// what the builder emits.
func (r *Renderer) Render(snap *doc.Snapshot, tree syntax.Tree, decorations []preview.Decoration) string {
	if snap == nil {
		return ""
	}

	runs := r.collectRuns(tree, snap.Len())

	var out strings.Builder
	pos := 0
	for _, deco := range decorations {
		if deco.Span.From > pos {
			r.writeStyled(&out, snap, runs, pos, deco.Span.From)
		}
		out.WriteString(r.widgetText(deco.Widget))
		if deco.Span.To > pos {
			pos = deco.Span.To
		}
	}
	if pos < snap.Len() {
		r.writeStyled(&out, snap, runs, pos, snap.Len())
	}

	rendered := out.String()
	if r.width > 0 {
		rendered = lipgloss.NewStyle().Width(r.width).Render(rendered)
	}
	return rendered
}

// styleRun is a themed node span, in pre-order. Later runs are deeper in
// the tree, so the last run containing an offset is the innermost.
type styleRun struct {
	span doc.Span
	st   lipgloss.Style
}

func (r *Renderer) collectRuns(tree syntax.Tree, docLen int) []styleRun {
	if tree == nil || r.theme == nil {
		return nil
	}

	var runs []styleRun
	tree.Iterate(doc.Span{From: 0, To: docLen}, func(n *syntax.Node) bool {
		if r.theme.Has(n.Kind) && !n.Span().IsEmpty() {
			runs = append(runs, styleRun{span: n.Span(), st: r.theme.Style(n.Kind)})
		}
		return true
	})
	return runs
}

// writeStyled emits snapshot text in [from, to), split at style
// boundaries so each chunk gets the innermost covering style.
func (r *Renderer) writeStyled(out *strings.Builder, snap *doc.Snapshot, runs []styleRun, from, to int) {
	pos := from
	for pos < to {
		st, end := styleAt(runs, pos)
		if end > to {
			end = to
		}
		chunk := snap.Slice(doc.Span{From: pos, To: end})
		out.WriteString(st.Render(chunk))
		pos = end
	}
}

// styleAt returns the innermost style covering pos and the offset where
// that styling decision stops holding.
func styleAt(runs []styleRun, pos int) (lipgloss.Style, int) {
	st := lipgloss.NewStyle()
	end := int(^uint(0) >> 1)

	for _, run := range runs {
		if run.span.From > pos {
			if run.span.From < end {
				end = run.span.From
			}
			break
		}
		if run.span.To <= pos {
			continue
		}
		st = run.st
		if run.span.To < end {
			end = run.span.To
		}
	}
	return st, end
}

// widgetText converts a widget to its terminal stand-in. Deletions (nil
// widget) produce nothing.
func (r *Renderer) widgetText(w widget.Widget) string {
	switch v := w.(type) {
	case nil:
		return ""
	case widget.Bullet:
		st := lipgloss.NewStyle().Bold(true)
		if r.theme != nil && r.theme.Has(syntax.KindListMark) {
			st = r.theme.Style(syntax.KindListMark)
		}
		return st.Render(widget.BulletGlyph + " ")
	case widget.Text:
		return v.Content
	case widget.Image:
		return "[image: " + v.URL + "]"
	case widget.HTML:
		return nodeText(v.Render())
	default:
		return nodeText(w.Render())
	}
}

// nodeText flattens a rendered widget node to its text content, which is
// the best a terminal can do with an HTML fragment.
func nodeText(n *html.Node) string {
	var out strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			out.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out.String()
}
