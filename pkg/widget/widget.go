// Package widget defines the renderable units substituted for hidden
// markup: an HTML fragment, an image, plain alt text, and a list bullet.
// The set is closed; each variant is a pure value whose Render method
// produces a DOM-like node with no side effects. Widgets never swallow
// pointer or selection events, so clicks inside rendered output still let
// the host editor place the caret correctly.
package widget

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/livemark/pkg/sanitize"
)

// Widget is one of the closed set of inline renderables: HTML, Image,
// Text, or Bullet.
type Widget interface {
	// Render produces the widget's DOM-like output. The returned node is
	// freshly allocated on every call.
	Render() *html.Node

	// IgnoreEvent reports whether the widget hides host events from the
	// editor. All variants return false: events pass through.
	IgnoreEvent() bool
}

// HTML renders a sanitized HTML fragment inline. The Markup payload is
// expected to be minified but untrusted; sanitization happens inside
// Render and is never skipped.
type HTML struct {
	// Markup is the minified, unsanitized fragment.
	Markup string

	sanitizer sanitize.Sanitizer
}

// NewHTML creates an HTML widget. A nil sanitizer selects the default
// policy; there is no way to construct an HTML widget that skips
// sanitization.
func NewHTML(markup string, sanitizer sanitize.Sanitizer) HTML {
	if sanitizer == nil {
		sanitizer = sanitize.NewPolicy()
	}
	return HTML{Markup: markup, sanitizer: sanitizer}
}

// Render returns a span containing the sanitized fragment's nodes.
func (w HTML) Render() *html.Node {
	container := element(atom.Span, "livemark-html")

	sanitizer := w.sanitizer
	if sanitizer == nil {
		sanitizer = sanitize.NewPolicy()
	}
	safe := sanitizer.Sanitize(w.Markup)

	children, err := html.ParseFragment(strings.NewReader(safe), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		// Sanitized output that still fails to parse renders as nothing.
		return container
	}
	for _, child := range children {
		container.AppendChild(child)
	}
	return container
}

// IgnoreEvent implements Widget.
func (w HTML) IgnoreEvent() bool { return false }

// Image renders an image element for the given URL, width-constrained to
// its container.
type Image struct {
	URL string
}

// Render returns an img node sourced at the widget URL.
func (w Image) Render() *html.Node {
	img := element(atom.Img, "livemark-image")
	img.Attr = append(img.Attr,
		html.Attribute{Key: "src", Val: w.URL},
		html.Attribute{Key: "style", Val: "max-width:100%"},
	)
	return img
}

// IgnoreEvent implements Widget.
func (w Image) IgnoreEvent() bool { return false }

// Text renders an arbitrary string as plain text.
type Text struct {
	Content string
}

// Render returns a span holding the content as a text node.
func (w Text) Render() *html.Node {
	span := element(atom.Span, "livemark-alt")
	span.AppendChild(&html.Node{Type: html.TextNode, Data: w.Content})
	return span
}

// IgnoreEvent implements Widget.
func (w Text) IgnoreEvent() bool { return false }

// BulletGlyph is the fixed glyph Bullet renders, followed by a space.
const BulletGlyph = "•"

// Bullet renders a fixed bold bullet glyph in place of a list marker.
type Bullet struct{}

// Render returns a bold span holding the bullet glyph and a space.
func (w Bullet) Render() *html.Node {
	span := element(atom.Span, "livemark-bullet")
	span.Attr = append(span.Attr, html.Attribute{Key: "style", Val: "font-weight:bold"})
	span.AppendChild(&html.Node{Type: html.TextNode, Data: BulletGlyph + " "})
	return span
}

// IgnoreEvent implements Widget.
func (w Bullet) IgnoreEvent() bool { return false }

// RenderString serializes a widget's rendered node to HTML text.
func RenderString(w Widget) (string, error) {
	var out strings.Builder
	if err := html.Render(&out, w.Render()); err != nil {
		return "", err
	}
	return out.String(), nil
}

func element(a atom.Atom, class string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
}
