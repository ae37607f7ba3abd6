package types

import "errors"

// NodeKind represents the kind of a top-level structural node
type NodeKind string

const (
	NodeFunction NodeKind = "function"
	NodeMethod   NodeKind = "method"
	NodeType     NodeKind = "type"
	NodeDecl     NodeKind = "decl"    // const/var/import group
	NodeSection  NodeKind = "section" // markdown heading section
)

// Node is a parser-reported top-level declaration boundary. Offsets are rune
// offsets into the parsed text, the same unit the splitter uses. Nodes from a
// single parse are ordered by StartOffset and do not overlap; gaps between
// nodes are the caller's to handle.
type Node struct {
	Kind        NodeKind
	Name        string // declaration name when the parser knows it
	StartOffset int    // rune offset, inclusive
	EndOffset   int    // rune offset, exclusive
}

// Len returns the node span length in runes
func (n *Node) Len() int {
	return n.EndOffset - n.StartOffset
}

// Validate checks the node's offset invariants
func (n *Node) Validate() error {
	if n.StartOffset < 0 {
		return errors.New("node start offset must be non-negative")
	}
	if n.StartOffset >= n.EndOffset {
		return errors.New("node start offset must be before end offset")
	}
	return nil
}

// ValidateNodes checks that a parse result is ordered and non-overlapping
func ValidateNodes(nodes []Node) error {
	for i := range nodes {
		if err := nodes[i].Validate(); err != nil {
			return err
		}
		if i > 0 && nodes[i].StartOffset < nodes[i-1].EndOffset {
			return errors.New("nodes must be ordered and non-overlapping")
		}
	}
	return nil
}
