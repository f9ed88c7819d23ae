// Package syntax defines the parsed-structure model the preview engine
// consumes: kind-labeled nodes with half-open byte spans, arranged in a
// tree and visited in pre-order. The engine does not parse markup itself;
// it depends only on the Tree capability, which any parser can supply.
package syntax

import "github.com/yaklabco/livemark/pkg/doc"

// Node is a single node in the parsed structure. Nodes form a tree with
// parent/child/sibling pointers; a node's span covers all of its children.
type Node struct {
	// Kind identifies the syntactic role of this node.
	Kind Kind

	// From and To are the node's half-open [From, To) byte range.
	From int
	To   int

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node
}

// NewNode creates a node of the given kind covering [from, to).
func NewNode(kind Kind, from, to int) *Node {
	return &Node{Kind: kind, From: from, To: to}
}

// Span returns the node's byte range as a doc.Span.
func (n *Node) Span() doc.Span {
	return doc.Span{From: n.From, To: n.To}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// AppendChild attaches child as the last child of parent.
func AppendChild(parent, child *Node) {
	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}
