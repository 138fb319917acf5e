package fstree

import "github.com/vanderheijden86/vcd/pkg/metrics"

// Connector and marker glyphs used in row prefixes.
const (
	GlyphPipe   = "│   "
	GlyphBlank  = "    "
	GlyphBranch = "├── "
	GlyphCorner = "└── "

	MarkerCollapsed = "▸ "
	MarkerExpanded  = "▾ "
	MarkerEmpty     = "• "
)

// Row is one visible line of the flattened tree. Rows are rebuilt after every
// change to the tree's loaded shape and never patched in place.
type Row struct {
	Node   *TreeNode
	Prefix string
	Depth  int
}

// Flatten lists the root and every loaded descendant in pre-order. Unloaded
// nodes appear as collapsed leaves. The result depends only on the tree's
// current loaded shape.
func Flatten(root *TreeNode) []Row {
	if root == nil {
		return nil
	}
	defer metrics.Timer(metrics.Flatten)()

	rows := []Row{{Node: root, Prefix: Marker(root)}}

	var walk func(node *TreeNode, indent string, depth int)
	walk = func(node *TreeNode, indent string, depth int) {
		children := node.Children()
		for i, child := range children {
			branch, next := GlyphBranch, indent+GlyphPipe
			if i == len(children)-1 {
				branch, next = GlyphCorner, indent+GlyphBlank
			}
			rows = append(rows, Row{
				Node:   child,
				Prefix: indent + branch + Marker(child),
				Depth:  depth,
			})
			if child.IsLoaded() {
				walk(child, next, depth+1)
			}
		}
	}
	walk(root, "", 1)

	return rows
}

// Marker returns the expand state glyph for node.
func Marker(node *TreeNode) string {
	switch {
	case !node.IsLoaded():
		return MarkerCollapsed
	case len(node.Children()) == 0:
		return MarkerEmpty
	default:
		return MarkerExpanded
	}
}

// IndexOf returns the index of node's row, or -1.
func IndexOf(rows []Row, node *TreeNode) int {
	for i, r := range rows {
		if r.Node == node {
			return i
		}
	}
	return -1
}
