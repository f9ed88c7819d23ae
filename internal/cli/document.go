package cli

import (
	"context"
	"fmt"

	"github.com/yaklabco/livemark/pkg/doc"
	"github.com/yaklabco/livemark/pkg/fsutil"
	"github.com/yaklabco/livemark/pkg/style"
	"github.com/yaklabco/livemark/pkg/syntax"
	gmprovider "github.com/yaklabco/livemark/pkg/syntax/goldmark"
)

// selectionFlags are the flags shared by commands that take a cursor or
// selection position.
type selectionFlags struct {
	cursor int
	anchor int
	from   int
	to     int
}

func (f *selectionFlags) selection(snap *doc.Snapshot) doc.Selection {
	head := clamp(f.cursor, 0, snap.Len())
	if f.anchor < 0 {
		return doc.Cursor(head)
	}
	return doc.Selection{Anchor: clamp(f.anchor, 0, snap.Len()), Head: head}
}

// visible returns the viewport span, defaulting to the whole document.
func (f *selectionFlags) visible(snap *doc.Snapshot) []doc.Span {
	from, to := f.from, f.to
	if from < 0 {
		from = 0
	}
	if to < 0 || to > snap.Len() {
		to = snap.Len()
	}
	if from > to {
		from = to
	}
	return []doc.Span{{From: from, To: to}}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// loadDocument reads a Markdown file and parses it into a snapshot and
// syntax tree.
func loadDocument(ctx context.Context, path string) (*doc.Snapshot, *syntax.NodeTree, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	tree, err := gmprovider.New().Parse(ctx, content)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return doc.NewSnapshot(content), tree, nil
}

// loadSheet loads a style sheet overlay, or the defaults when path is
// empty.
func loadSheet(ctx context.Context, path string) (*style.Sheet, error) {
	if path == "" {
		return style.DefaultSheet(), nil
	}

	data, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	sheet, err := style.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStyleConfig, path, err)
	}
	return sheet, nil
}
