// Package tree assembles a flat, parent-pointer list of menu items into a
// nested forest.
package tree

import "github.com/alexanderramin/menus/internal/domain"

// Node is a copy of a menu item together with its assembled children.
type Node struct {
	Item     domain.MenuItem
	Children []*Node
}

// Build links items into a forest in O(n). Within every sibling group the
// relative input order is kept, so callers pass items sorted by sort order.
// An item whose parent is absent from items (filtered out, deleted, or nil)
// becomes a root. Repeated ids after the first occurrence are ignored.
func Build(items []*domain.MenuItem) []*Node {
	lookup := make(map[string]*Node, len(items))
	order := make([]*Node, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if _, dup := lookup[item.ID]; dup {
			continue
		}
		n := &Node{Item: *item, Children: []*Node{}}
		lookup[item.ID] = n
		order = append(order, n)
	}

	roots := make([]*Node, 0)
	for _, n := range order {
		pid := n.Item.ParentID
		if pid != nil && *pid != n.Item.ID {
			if parent, ok := lookup[*pid]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}

// Walk visits every node depth-first, parents before children, passing the
// depth (0 for roots). Returning false from fn skips the node's subtree.
func Walk(roots []*Node, fn func(n *Node, depth int) bool) {
	type frame struct {
		node  *Node
		depth int
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{roots[i], 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.node, f.depth) {
			continue
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], f.depth + 1})
		}
	}
}

// Count returns the number of nodes in the forest.
func Count(roots []*Node) int {
	n := 0
	Walk(roots, func(*Node, int) bool {
		n++
		return true
	})
	return n
}
