package syntax

import (
	"errors"

	"github.com/yaklabco/livemark/pkg/doc"
)

// WalkFunc is the function signature for Walk callbacks.
// Return SkipChildren to skip the node's subtree, or any other non-nil
// error to stop the walk.
type WalkFunc func(n *Node) error

// SkipChildren, returned by a WalkFunc, prunes the current node's
// subtree without stopping the walk.
var SkipChildren = errors.New("skip children")

// Walk performs a pre-order traversal of the tree starting at root:
// each node is visited before its children. If walkFunc returns a
// non-nil error other than SkipChildren, the walk stops immediately and
// returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// Tree is the capability the preview engine requires from a parser: ranged,
// pre-order traversal of kind-labeled nodes. Parents are visited before
// their children. The visitor returns false to stop the iteration early.
type Tree interface {
	Iterate(window doc.Span, visit func(n *Node) bool)
}

// NodeTree is the reference Tree implementation over a Node tree.
type NodeTree struct {
	Root *Node
}

// NewTree wraps a root node as a Tree.
func NewTree(root *Node) *NodeTree {
	return &NodeTree{Root: root}
}

// errStopIteration signals an early stop requested by the visitor.
var errStopIteration = errors.New("stop iteration")

// Iterate visits, in pre-order, every node whose span intersects the
// window. Subtrees entirely outside the window are skipped, keeping the
// work proportional to the visible content rather than the document size.
func (t *NodeTree) Iterate(window doc.Span, visit func(n *Node) bool) {
	_ = Walk(t.Root, func(n *Node) error {
		if !intersectsWindow(n, window) {
			return SkipChildren
		}
		if !visit(n) {
			return errStopIteration
		}
		return nil
	})
}

// intersectsWindow reports whether the node's range falls inside the
// window. Zero-length nodes count when they sit within the window bounds.
func intersectsWindow(n *Node, window doc.Span) bool {
	if n.From == n.To {
		return n.From >= window.From && n.From <= window.To
	}
	return n.Span().Overlaps(window)
}
