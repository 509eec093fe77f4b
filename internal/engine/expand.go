package engine

import "github.com/alexanderramin/dasha/internal/domain"

// Expand returns a deep copy of n with sub-periods generated down to depth
// levels below it. Existing children are kept; terminal nodes stay terminal.
// A degenerate node is copied without children.
func Expand(n *domain.DashaNode, depth int) *domain.DashaNode {
	c := n.Clone()
	expandInPlace(c, depth)
	return c
}

// ExpandAll applies Expand to every root.
func ExpandAll(roots []*domain.DashaNode, depth int) []*domain.DashaNode {
	out := make([]*domain.DashaNode, len(roots))
	for i, r := range roots {
		out[i] = Expand(r, depth)
	}
	return out
}

// expandInPlace only ever touches the private copy made by Expand.
func expandInPlace(n *domain.DashaNode, depth int) {
	if depth <= 0 {
		return
	}
	if n.ChildState == domain.ChildrenUnmaterialized {
		children, err := SubdivideNode(n)
		if err != nil {
			return
		}
		n.Children = children
		n.ChildState = domain.ChildrenMaterialized
	}
	for _, child := range n.Children {
		expandInPlace(child, depth-1)
	}
}
