// Package goldmark provides a syntax.Tree implementation backed by the
// goldmark Markdown parser. It maps goldmark's AST onto kind-labeled,
// byte-ranged syntax nodes and synthesizes the mark nodes (heading hashes,
// emphasis delimiters, backticks, list bullets) the preview engine
// decorates, since goldmark's AST does not expose delimiter positions
// directly.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/livemark/pkg/syntax"
)

// Provider parses Markdown content into syntax trees.
type Provider struct {
	md goldmark.Markdown
}

// New creates a Provider with GFM extensions enabled, so strikethrough
// and other GitHub-flavored constructs are classified rather than treated
// as plain text.
func New() *Provider {
	return &Provider{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Parse converts Markdown bytes into a traversable syntax tree.
func (p *Provider) Parse(ctx context.Context, content []byte) (*syntax.NodeTree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	reader := text.NewReader(content)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	m := &mapper{content: content}
	root := syntax.NewNode(syntax.KindDocument, 0, len(content))
	m.mapChildren(gmDoc, root)

	return syntax.NewTree(root), nil
}

// mapper converts a goldmark AST into a syntax.Node tree.
type mapper struct {
	content []byte

	// imageScan is the offset the next empty-alt image scan starts from.
	// Empty-alt images have no label children to recover a position from,
	// so they are matched against the source in document order; advancing
	// the cursor past each match keeps later images from resolving to an
	// earlier one's span.
	imageScan int
}

// mapChildren recursively maps all children of a goldmark node onto parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent *syntax.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if node := m.mapNode(child); node != nil {
			syntax.AppendChild(parent, node)
		}
	}
}

// mapNode converts a single goldmark node, synthesizing mark children
// where the preview engine needs them. Returns nil for constructs the
// preview has no use for.
func (m *mapper) mapNode(gmNode ast.Node) *syntax.Node {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		return m.mapHeading(gmn)

	case *ast.Paragraph:
		return m.mapContainer(gmn, syntax.KindParagraph)

	case *ast.TextBlock:
		return m.mapContainer(gmn, syntax.KindParagraph)

	case *ast.List:
		return m.mapContainer(gmn, syntax.KindList)

	case *ast.ListItem:
		return m.mapListItem(gmn)

	case *ast.Blockquote:
		return m.mapContainer(gmn, syntax.KindBlockquote)

	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node := syntax.NewNode(syntax.KindCodeBlock, 0, 0)
		setSpanFromLines(node, gmn)
		return node

	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn)

	case *ast.Text:
		seg := gmn.Segment
		return syntax.NewNode(syntax.KindText, seg.Start, seg.Stop)

	case *ast.Emphasis:
		return m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		return m.mapCodeSpan(gmn)

	case *ast.Link:
		return m.mapInlineContainer(gmn, syntax.KindLink, 0)

	case *ast.Image:
		return m.mapImage(gmn)

	case *ast.RawHTML:
		return m.mapRawHTML(gmn)

	case *east.Strikethrough:
		return m.mapDelimited(gmn, syntax.KindStrikethrough, 2)

	default:
		// Thematic breaks, autolinks, tables, and anything unrecognized
		// are not decorated; fold their children into a raw node when
		// they have a usable span, otherwise drop them.
		if gmNode.Type() == ast.TypeBlock {
			node := syntax.NewNode(syntax.KindRaw, 0, 0)
			setSpanFromLines(node, gmNode)
			m.mapChildren(gmNode, node)
			growToChildren(node)
			return node
		}
		return nil
	}
}

// mapContainer maps a block container: span from its source lines, grown
// to cover any children that extend past them.
func (m *mapper) mapContainer(gmNode ast.Node, kind syntax.Kind) *syntax.Node {
	node := syntax.NewNode(kind, 0, 0)
	setSpanFromLines(node, gmNode)
	m.mapChildren(gmNode, node)
	growToChildren(node)
	return node
}

// mapHeading maps an ATX heading and synthesizes its HeaderMark covering
// the run of '#' characters at the line start. Setext headings get no
// mark; their underline is a separate line the preview leaves alone.
func (m *mapper) mapHeading(gmn *ast.Heading) *syntax.Node {
	node := syntax.NewNode(syntax.KindHeading, 0, 0)
	setSpanFromLines(node, gmn)

	if mark, ok := m.findHeaderMark(node.From); ok {
		node.From = mark.From
		syntax.AppendChild(node, mark)
	}

	m.mapChildren(gmn, node)
	growToChildren(node)
	return node
}

// findHeaderMark locates the '#' run on the line containing contentStart.
func (m *mapper) findHeaderMark(contentStart int) (*syntax.Node, bool) {
	lineStart := m.lineStart(contentStart)
	pos := m.skipIndent(lineStart)

	count := 0
	for pos+count < len(m.content) && m.content[pos+count] == '#' {
		count++
	}
	if count < 1 || count > 6 {
		return nil, false
	}
	return syntax.NewNode(syntax.KindHeaderMark, pos, pos+count), true
}

// mapListItem maps a list item and synthesizes its ListMark covering the
// bullet or ordered marker.
func (m *mapper) mapListItem(gmn *ast.ListItem) *syntax.Node {
	node := syntax.NewNode(syntax.KindListItem, 0, 0)

	m.mapChildren(gmn, node)
	growToChildren(node)

	if node.FirstChild == nil {
		return node
	}

	if mark, ok := m.findListMark(node.FirstChild.From); ok {
		node.From = mark.From
		// The marker precedes the existing children.
		prependChild(node, mark)
	}
	return node
}

// findListMark scans the line containing contentStart for a list marker:
// a single bullet character or an ordered marker (digits plus delimiter).
func (m *mapper) findListMark(contentStart int) (*syntax.Node, bool) {
	lineStart := m.lineStart(contentStart)
	pos := m.skipIndent(lineStart)
	if pos >= len(m.content) || pos >= contentStart {
		return nil, false
	}

	switch c := m.content[pos]; {
	case c == '-' || c == '+' || c == '*':
		return syntax.NewNode(syntax.KindListMark, pos, pos+1), true
	case c >= '0' && c <= '9':
		end := pos
		for end < len(m.content) && m.content[end] >= '0' && m.content[end] <= '9' {
			end++
		}
		if end < len(m.content) && (m.content[end] == '.' || m.content[end] == ')') {
			return syntax.NewNode(syntax.KindListMark, pos, end+1), true
		}
	}
	return nil, false
}

// mapFencedCodeBlock maps a fenced code block, synthesizing CodeMark
// nodes over the opening and closing fence runs.
func (m *mapper) mapFencedCodeBlock(gmn *ast.FencedCodeBlock) *syntax.Node {
	node := syntax.NewNode(syntax.KindCodeBlock, 0, 0)
	setSpanFromLines(node, gmn)

	if node.From > 0 || node.To > 0 {
		if open, ok := m.findFenceMark(m.prevLineStart(node.From)); ok {
			node.From = min(node.From, open.From)
			syntax.AppendChild(node, open)
		}
		if closing, ok := m.findFenceMark(node.To); ok {
			syntax.AppendChild(node, closing)
			node.To = max(node.To, closing.To)
		}
	}
	return node
}

// findFenceMark checks whether the line starting near pos opens with a
// fence run (``` or ~~~) and returns a CodeMark covering it.
func (m *mapper) findFenceMark(lineStart int) (*syntax.Node, bool) {
	pos := m.skipIndent(lineStart)
	if pos >= len(m.content) {
		return nil, false
	}
	fence := m.content[pos]
	if fence != '`' && fence != '~' {
		return nil, false
	}
	end := pos
	for end < len(m.content) && m.content[end] == fence {
		end++
	}
	if end-pos < 3 {
		return nil, false
	}
	return syntax.NewNode(syntax.KindCodeMark, pos, end), true
}

// mapHTMLBlock maps an HTML block, including its closure line when the
// block has one.
func (m *mapper) mapHTMLBlock(gmn *ast.HTMLBlock) *syntax.Node {
	node := syntax.NewNode(syntax.KindHTMLBlock, 0, 0)
	setSpanFromLines(node, gmn)

	if gmn.HasClosure() {
		closure := gmn.ClosureLine
		if closure.Stop > node.To {
			node.To = closure.Stop
		}
		if node.From == 0 && node.To == 0 {
			node.From, node.To = closure.Start, closure.Stop
		}
	}

	// Trim the trailing newline so the hidden range stays within the
	// block's own lines.
	for node.To > node.From && (m.content[node.To-1] == '\n' || m.content[node.To-1] == '\r') {
		node.To--
	}
	return node
}

// mapEmphasis maps *em* / **strong** and synthesizes the delimiter marks.
func (m *mapper) mapEmphasis(gmn *ast.Emphasis) *syntax.Node {
	kind := syntax.KindEmphasis
	if gmn.Level >= 2 {
		kind = syntax.KindStrong
	}
	return m.mapDelimited(gmn, kind, gmn.Level)
}

// mapDelimited maps an inline node wrapped in delimiter runs of the given
// width on both sides, adding EmphasisMark children for the delimiters.
func (m *mapper) mapDelimited(gmNode ast.Node, kind syntax.Kind, width int) *syntax.Node {
	node := m.mapInlineContainer(gmNode, kind, width)
	if node == nil || width == 0 {
		return node
	}

	if node.From+width <= len(m.content) {
		prependChild(node, syntax.NewNode(syntax.KindEmphasisMark, node.From, node.From+width))
	}
	if node.To-width >= 0 {
		syntax.AppendChild(node, syntax.NewNode(syntax.KindEmphasisMark, node.To-width, node.To))
	}
	return node
}

// mapInlineContainer maps an inline container node whose span is derived
// from its children, widened by the delimiter width on each side.
func (m *mapper) mapInlineContainer(gmNode ast.Node, kind syntax.Kind, width int) *syntax.Node {
	node := syntax.NewNode(kind, 0, 0)
	m.mapChildren(gmNode, node)
	if node.FirstChild == nil {
		return nil
	}

	growToChildren(node)
	node.From = max(0, node.From-width)
	node.To = min(len(m.content), node.To+width)
	return node
}

// mapCodeSpan maps `code`, locating the backtick runs on both sides of
// the content segment.
func (m *mapper) mapCodeSpan(gmn *ast.CodeSpan) *syntax.Node {
	node := syntax.NewNode(syntax.KindCodeSpan, 0, 0)
	m.mapChildren(gmn, node)
	if node.FirstChild == nil {
		return nil
	}
	growToChildren(node)

	// Opening run: backticks immediately before the content.
	openEnd := node.From
	openStart := openEnd
	for openStart > 0 && m.content[openStart-1] == '`' {
		openStart--
	}
	// Closing run: backticks immediately after the content.
	closeStart := node.To
	closeEnd := closeStart
	for closeEnd < len(m.content) && m.content[closeEnd] == '`' {
		closeEnd++
	}

	if openStart < openEnd {
		node.From = openStart
		prependChild(node, syntax.NewNode(syntax.KindCodeMark, openStart, openEnd))
	}
	if closeStart < closeEnd {
		node.To = closeEnd
		syntax.AppendChild(node, syntax.NewNode(syntax.KindCodeMark, closeStart, closeEnd))
	}
	return node
}

// mapImage maps ![alt](url) to a leaf Image node covering the full
// syntax. goldmark does not record the outer span, so it is recovered
// from the label children when present, or by scanning the source when
// the alt text is empty. Nodes whose span cannot be recovered are
// dropped; the raw text simply stays visible.
func (m *mapper) mapImage(gmn *ast.Image) *syntax.Node {
	if span, ok := m.findImageSpan(gmn); ok {
		return syntax.NewNode(syntax.KindImage, span.from, span.to)
	}
	return nil
}

type byteSpan struct {
	from int
	to   int
}

func (m *mapper) findImageSpan(gmn *ast.Image) (byteSpan, bool) {
	labelFrom, labelTo := childSegmentRange(gmn)
	if labelFrom < 0 {
		return m.scanImageSpan()
	}

	// "![" before the label.
	from := labelFrom - 2
	if from < 0 || m.content[from] != '!' || m.content[from+1] != '[' {
		return byteSpan{}, false
	}

	// "](url)" after the label.
	pos := labelTo
	if pos >= len(m.content) || m.content[pos] != ']' {
		return byteSpan{}, false
	}
	pos++
	if pos >= len(m.content) || m.content[pos] != '(' {
		return byteSpan{}, false
	}
	for pos < len(m.content) && m.content[pos] != ')' && m.content[pos] != '\n' {
		pos++
	}
	if pos >= len(m.content) || m.content[pos] != ')' {
		return byteSpan{}, false
	}
	return byteSpan{from: from, to: pos + 1}, true
}

// scanImageSpan recovers the span of an empty-alt image (no label
// children) by scanning the source for the next "![](...)" occurrence.
// Images are mapped in document order, so each match moves the scan
// cursor forward and successive empty-alt images resolve to successive
// occurrences.
func (m *mapper) scanImageSpan() (byteSpan, bool) {
	for i := m.imageScan; i+3 < len(m.content); i++ {
		if m.content[i] != '!' || m.content[i+1] != '[' || m.content[i+2] != ']' || m.content[i+3] != '(' {
			continue
		}
		pos := i + 4
		for pos < len(m.content) && m.content[pos] != ')' && m.content[pos] != '\n' {
			pos++
		}
		if pos < len(m.content) && m.content[pos] == ')' {
			m.imageScan = pos + 1
			return byteSpan{from: i, to: pos + 1}, true
		}
	}
	return byteSpan{}, false
}

// mapRawHTML maps inline HTML to an HTMLTag node spanning its segments.
func (m *mapper) mapRawHTML(gmn *ast.RawHTML) *syntax.Node {
	segs := gmn.Segments
	if segs.Len() == 0 {
		return nil
	}
	first := segs.At(0)
	last := segs.At(segs.Len() - 1)
	return syntax.NewNode(syntax.KindHTMLTag, first.Start, last.Stop)
}

// childSegmentRange returns the byte range covered by a node's text
// children, or (-1, -1) when there are none.
func childSegmentRange(gmNode ast.Node) (int, int) {
	from, to := -1, -1
	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		t, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		seg := t.Segment
		if from == -1 || seg.Start < from {
			from = seg.Start
		}
		if seg.Stop > to {
			to = seg.Stop
		}
	}
	return from, to
}

// setSpanFromLines sets a node's span from a goldmark block node's source
// lines, when it has any.
func setSpanFromLines(node *syntax.Node, gmNode ast.Node) {
	lines := gmNode.Lines()
	if lines.Len() == 0 {
		return
	}
	node.From = lines.At(0).Start
	node.To = lines.At(lines.Len() - 1).Stop
}

// growToChildren widens a node's span to cover all of its children.
func growToChildren(node *syntax.Node) {
	for child := node.FirstChild; child != nil; child = child.Next {
		if node.From == 0 && node.To == 0 && (child.From != 0 || child.To != 0) {
			node.From, node.To = child.From, child.To
			continue
		}
		if child.From < node.From {
			node.From = child.From
		}
		if child.To > node.To {
			node.To = child.To
		}
	}
}

// prependChild attaches child as the first child of parent.
func prependChild(parent, child *syntax.Node) {
	child.Parent = parent
	child.Next = parent.FirstChild
	child.Prev = nil

	if parent.FirstChild != nil {
		parent.FirstChild.Prev = child
	} else {
		parent.LastChild = child
	}
	parent.FirstChild = child
}

// lineStart returns the offset of the first byte of the line containing
// offset.
func (m *mapper) lineStart(offset int) int {
	if offset > len(m.content) {
		offset = len(m.content)
	}
	for offset > 0 && m.content[offset-1] != '\n' {
		offset--
	}
	return offset
}

// prevLineStart returns the start offset of the line before the line
// starting at lineStart.
func (m *mapper) prevLineStart(lineStart int) int {
	if lineStart <= 0 {
		return 0
	}
	end := lineStart - 1 // the newline ending the previous line
	return m.lineStart(end)
}

// skipIndent advances past leading spaces and tabs.
func (m *mapper) skipIndent(pos int) int {
	for pos < len(m.content) && (m.content[pos] == ' ' || m.content[pos] == '\t') {
		pos++
	}
	return pos
}
