package formatting

import (
	"strings"
)

// TreeNode is one line of a rendered tree.
type TreeNode struct {
	Name   string
	Depth  int
	IsLast bool   // last child of its parent
	Detail string // appended after the name, e.g. "(count 3)"
}

// TreeRenderer draws nodes with box-drawing branches:
//
//	Work
//	├── Tasks
//	│   └── Report (count 3)
//	└── Notes
type TreeRenderer struct{}

// NewTreeRenderer creates a new TreeRenderer instance.
func NewTreeRenderer() *TreeRenderer {
	return &TreeRenderer{}
}

// Render joins the nodes into one string. Nodes must be in depth-first
// order with Depth and IsLast set.
func (r *TreeRenderer) Render(nodes []TreeNode) string {
	var out strings.Builder
	open := make(map[int]bool) // depths with siblings still to come

	for i, node := range nodes {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(r.prefix(node, open))
		out.WriteString(node.Name)
		if node.Detail != "" {
			out.WriteString(" ")
			out.WriteString(node.Detail)
		}

		open[node.Depth] = !node.IsLast
	}
	return out.String()
}

func (r *TreeRenderer) prefix(node TreeNode, open map[int]bool) string {
	if node.Depth == 0 {
		return ""
	}

	var p strings.Builder
	for d := 1; d < node.Depth; d++ {
		if open[d] {
			p.WriteString("│   ")
		} else {
			p.WriteString("    ")
		}
	}
	if node.IsLast {
		p.WriteString("└── ")
	} else {
		p.WriteString("├── ")
	}
	return p.String()
}
