package doc

// Span is a half-open [From, To) byte range in the document.
type Span struct {
	From int
	To   int
}

// IsEmpty returns true if the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.From >= s.To
}

// Len returns the span length in bytes, never negative.
func (s Span) Len() int {
	if s.To < s.From {
		return 0
	}
	return s.To - s.From
}

// Touches reports whether the two ranges overlap or share an endpoint.
// The comparison is inclusive on both edges: a cursor sitting exactly at
// a range boundary touches it. This is the reveal test used by the
// decoration builder for both block-range and line-range semantics.
func (s Span) Touches(other Span) bool {
	return s.From <= other.To && s.To >= other.From
}

// Overlaps reports whether the two half-open ranges share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.From < other.To && s.To > other.From
}

// Contains reports whether the offset lies within the half-open span.
func (s Span) Contains(offset int) bool {
	return offset >= s.From && offset < s.To
}

// Selection is the host editor's primary selection: an anchor (where the
// selection started) and a head (where the cursor is). Anchor and head may
// be in either order; use Span to get the normalized range. A selection
// with Anchor == Head is a bare cursor.
type Selection struct {
	Anchor int
	Head   int
}

// Cursor returns an empty selection at the given offset.
func Cursor(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection is a bare cursor.
func (sel Selection) IsEmpty() bool {
	return sel.Anchor == sel.Head
}

// Span returns the selection normalized to From <= To.
func (sel Selection) Span() Span {
	if sel.Anchor <= sel.Head {
		return Span{From: sel.Anchor, To: sel.Head}
	}
	return Span{From: sel.Head, To: sel.Anchor}
}
