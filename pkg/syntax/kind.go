package syntax

import "fmt"

// Kind classifies the syntactic role of a span of document text.
type Kind uint16

// Node kinds. The decoration builder only acts on the mark and raw-HTML
// kinds; the container kinds exist so the styling layer can distinguish
// structure, and so traversal order matches the source document.
const (
	KindDocument Kind = iota

	// Container kinds.
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindBlockquote
	KindCodeBlock
	KindCodeSpan
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindLink
	KindText

	// Decorated kinds.
	KindHeaderMark
	KindEmphasisMark
	KindCodeMark
	KindListMark
	KindImage
	KindHTMLTag
	KindHTMLBlock

	// Fallback for unrecognized content.
	KindRaw
)

var kindNames = map[Kind]string{
	KindDocument:      "Document",
	KindParagraph:     "Paragraph",
	KindHeading:       "Heading",
	KindList:          "List",
	KindListItem:      "ListItem",
	KindBlockquote:    "Blockquote",
	KindCodeBlock:     "CodeBlock",
	KindCodeSpan:      "CodeSpan",
	KindEmphasis:      "Emphasis",
	KindStrong:        "Strong",
	KindStrikethrough: "Strikethrough",
	KindLink:          "Link",
	KindText:          "Text",
	KindHeaderMark:    "HeaderMark",
	KindEmphasisMark:  "EmphasisMark",
	KindCodeMark:      "CodeMark",
	KindListMark:      "ListMark",
	KindImage:         "Image",
	KindHTMLTag:       "HTMLTag",
	KindHTMLBlock:     "HTMLBlock",
	KindRaw:           "Raw",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// ParseKind resolves a kind name as produced by String. The second
// result is false for unknown names.
func ParseKind(name string) (Kind, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, true
		}
	}
	return 0, false
}

// KindSet is a set of node kinds, used to configure which kinds receive
// block-range reveal semantics in the decoration builder.
type KindSet map[Kind]struct{}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	set := make(KindSet, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}

// Has reports whether the kind is in the set.
func (s KindSet) Has(k Kind) bool {
	_, ok := s[k]
	return ok
}
