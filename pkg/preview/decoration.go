// Package preview implements the decoration-selection reconciliation at
// the heart of the live-preview experience: deciding, per syntax node,
// whether its markup is hidden behind a rendered widget or revealed as raw
// text because the selection touches it. A Builder computes a fresh,
// ordered, non-overlapping decoration set over the visible ranges; a
// Controller rebuilds that set whenever the document, viewport, or
// selection changes and publishes it atomically.
package preview

import (
	"github.com/yaklabco/livemark/pkg/doc"
	"github.com/yaklabco/livemark/pkg/widget"
)

// Decoration instructs the rendering layer to replace the document text
// covered by Span with the widget's rendered output, or with nothing when
// Widget is nil.
type Decoration struct {
	Span doc.Span

	// Widget is the replacement content. Nil means the range is simply
	// removed from the rendered view.
	Widget widget.Widget
}

// IsDeletion returns true when the decoration removes text without
// substituting any content.
func (d Decoration) IsDeletion() bool {
	return d.Widget == nil
}
