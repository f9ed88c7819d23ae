package preview

import (
	"regexp"
	"sort"

	"github.com/yaklabco/livemark/pkg/doc"
	"github.com/yaklabco/livemark/pkg/htmlmin"
	"github.com/yaklabco/livemark/pkg/sanitize"
	"github.com/yaklabco/livemark/pkg/syntax"
	"github.com/yaklabco/livemark/pkg/widget"
)

// imagePattern matches the inline image syntax ![alt](url). Nodes
// classified as images whose text does not match are left undecorated.
var imagePattern = regexp.MustCompile(`^!\[(.*?)\]\((.*?)\)$`)

// Builder computes decoration sets. It is stateless between builds: the
// output is a pure function of the snapshot, tree, selection, and visible
// ranges passed to Build.
type Builder struct {
	// blockKinds receive block reveal semantics: the selection is compared
	// against the node's own range. All other decorated kinds use line
	// semantics, comparing against the full line containing the node
	// start, so edits anywhere on the line keep its markup revealed.
	blockKinds syntax.KindSet

	sanitizer sanitize.Sanitizer
}

// Option configures a Builder.
type Option func(*Builder)

// WithBlockKinds overrides the set of kinds that use block reveal
// semantics. The default is {HTMLTag, HTMLBlock}.
func WithBlockKinds(kinds syntax.KindSet) Option {
	return func(b *Builder) {
		b.blockKinds = kinds
	}
}

// WithSanitizer overrides the sanitizer handed to HTML widgets.
func WithSanitizer(s sanitize.Sanitizer) Option {
	return func(b *Builder) {
		b.sanitizer = s
	}
}

// NewBuilder creates a Builder with the default block-semantics kinds and
// the default sanitization policy.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		blockKinds: syntax.NewKindSet(syntax.KindHTMLTag, syntax.KindHTMLBlock),
		sanitizer:  sanitize.NewPolicy(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build walks the syntax tree over the visible ranges and returns the
// decoration set: one entry per hidden node, ordered by ascending start
// offset, never overlapping. Nodes the selection touches are skipped so
// their raw markup stays visible for editing.
func (b *Builder) Build(
	snap *doc.Snapshot,
	tree syntax.Tree,
	sel doc.Selection,
	visible []doc.Span,
) []Decoration {
	if snap == nil || tree == nil {
		return nil
	}

	windows := orderedWindows(visible)
	selSpan := sel.Span()

	var decorations []Decoration
	// lastEnd guards against duplicates when a node straddles two visible
	// ranges and is therefore visited once per range.
	lastEnd := -1

	for _, window := range windows {
		tree.Iterate(window, func(n *syntax.Node) bool {
			deco, ok := b.decide(snap, selSpan, n)
			if ok && deco.Span.From >= lastEnd {
				decorations = append(decorations, deco)
				lastEnd = deco.Span.To
			}
			return true
		})
	}

	return decorations
}

// decide applies the reveal/hide decision for a single node. It returns
// false when the node is not a decorated kind, when the selection touches
// its reveal range, or when the node's text does not carry the expected
// shape (malformed image syntax).
func (b *Builder) decide(snap *doc.Snapshot, selSpan doc.Span, n *syntax.Node) (Decoration, bool) {
	switch n.Kind {
	case syntax.KindHeaderMark, syntax.KindEmphasisMark, syntax.KindCodeMark,
		syntax.KindListMark, syntax.KindImage, syntax.KindHTMLTag, syntax.KindHTMLBlock:
	default:
		return Decoration{}, false
	}

	revealRange := snap.LineSpanAt(n.From)
	if b.blockKinds.Has(n.Kind) {
		revealRange = n.Span()
	}
	if selSpan.Touches(revealRange) {
		return Decoration{}, false
	}

	switch n.Kind {
	case syntax.KindHeaderMark:
		return Decoration{Span: b.headerMarkSpan(snap, n)}, true

	case syntax.KindEmphasisMark, syntax.KindCodeMark:
		return Decoration{Span: n.Span()}, true

	case syntax.KindListMark:
		return Decoration{Span: n.Span(), Widget: widget.Bullet{}}, true

	case syntax.KindImage:
		return b.imageDecoration(snap, n)

	case syntax.KindHTMLTag, syntax.KindHTMLBlock:
		markup := htmlmin.Minify(snap.Slice(n.Span()))
		return Decoration{
			Span:   n.Span(),
			Widget: widget.NewHTML(markup, b.sanitizer),
		}, true
	}

	return Decoration{}, false
}

// headerMarkSpan extends the hidden range by one character when a single
// space follows the mark, so "# Title" renders as "Title" without a
// leading space. The bounds check keeps a mark at the very end of the
// document from reading past it.
func (b *Builder) headerMarkSpan(snap *doc.Snapshot, n *syntax.Node) doc.Span {
	span := n.Span()
	if next, ok := snap.ByteAt(span.To); ok && next == ' ' {
		span.To++
	}
	return span
}

// imageDecoration hides an image node behind an Image widget when the alt
// text is empty, or a plain Text widget rendering the alt text otherwise.
// Nodes whose text does not match ![alt](url) get no decoration at all;
// the raw text stays visible. This fallback is silent, not an error.
func (b *Builder) imageDecoration(snap *doc.Snapshot, n *syntax.Node) (Decoration, bool) {
	match := imagePattern.FindStringSubmatch(snap.Slice(n.Span()))
	if match == nil {
		return Decoration{}, false
	}

	alt, url := match[1], match[2]
	if alt == "" {
		return Decoration{Span: n.Span(), Widget: widget.Image{URL: url}}, true
	}
	return Decoration{Span: n.Span(), Widget: widget.Text{Content: alt}}, true
}

// orderedWindows returns the visible ranges sorted by ascending start so
// the emitted decorations are ordered regardless of how the host lists
// its ranges.
func orderedWindows(visible []doc.Span) []doc.Span {
	if len(visible) <= 1 {
		return visible
	}
	windows := make([]doc.Span, len(visible))
	copy(windows, visible)
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].From < windows[j].From
	})
	return windows
}
