// ABOUTME: Utility functions for working with dominator trees
// ABOUTME: Depth, dominator chains and dominance queries over immediate dominators

package graph

// DominatorDepth computes the depth of each node in the dominator tree.
// The super-root has depth 0 and each root depth 1.
func DominatorDepth(tree map[ObjID][]ObjID) map[ObjID]int {
	depth := map[ObjID]int{0: 0}
	queue := []ObjID{0}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, child := range tree[node] {
			depth[child] = depth[node] + 1
			queue = append(queue, child)
		}
	}

	return depth
}

// DominatorPath returns the chain of dominators from node up to the
// super-root, node first and 0 last.
func DominatorPath(idom map[ObjID]ObjID, node ObjID) []ObjID {
	path := []ObjID{node}
	for current := node; current != 0; {
		dom, ok := idom[current]
		if !ok {
			dom = 0
		}
		path = append(path, dom)
		current = dom
	}
	return path
}

// IsDominated reports whether every path from the roots to node passes
// through dominator. A node dominates itself.
func IsDominated(idom map[ObjID]ObjID, node, dominator ObjID) bool {
	if node == dominator || dominator == 0 {
		return true
	}

	current := node
	for {
		dom, ok := idom[current]
		if !ok || dom == 0 {
			return false
		}
		if dom == dominator {
			return true
		}
		current = dom
	}
}
