// ABOUTME: Computes immediate dominators with the iterative Cooper-Harvey-Kennedy algorithm
// ABOUTME: A chunk's dominator is the one whose removal would make it garbage

package graph

// Dominators computes the immediate dominator of every object reachable from
// the roots. The super-root (ID 0) points at all roots, dominates everything
// and is not included in the result. Returns a map from object ID to its
// immediate dominator ID.
func Dominators(g Graph) map[ObjID]ObjID {
	succ := func(id ObjID) []ObjID {
		if id == 0 {
			return g.GetRoots().IDs
		}
		if obj := g.GetObject(id); obj != nil {
			return obj.Ptrs
		}
		return nil
	}
	exists := func(id ObjID) bool {
		return id == 0 || g.GetObject(id) != nil
	}

	// Iterative DFS from the super-root giving postorder numbers.
	post := make(map[ObjID]int)
	var order []ObjID // postorder
	type frame struct {
		id   ObjID
		next int
	}
	visited := map[ObjID]bool{0: true}
	stack := []frame{{id: 0}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := succ(top.id)
		if top.next < len(children) {
			child := children[top.next]
			top.next++
			if !visited[child] && exists(child) {
				visited[child] = true
				stack = append(stack, frame{id: child})
			}
			continue
		}
		post[top.id] = len(order)
		order = append(order, top.id)
		stack = stack[:len(stack)-1]
	}

	// Predecessors restricted to reachable objects.
	preds := make(map[ObjID][]ObjID)
	for _, id := range order {
		for _, child := range succ(id) {
			if visited[child] {
				preds[child] = append(preds[child], id)
			}
		}
	}

	idom := map[ObjID]ObjID{0: 0}
	intersect := func(a, b ObjID) ObjID {
		for a != b {
			for post[a] < post[b] {
				a = idom[a]
			}
			for post[b] < post[a] {
				b = idom[b]
			}
		}
		return a
	}

	for changed := true; changed; {
		changed = false
		// Reverse postorder, skipping the super-root.
		for i := len(order) - 2; i >= 0; i-- {
			id := order[i]
			var newIdom ObjID
			found := false
			for _, p := range preds[id] {
				if _, ok := idom[p]; !ok {
					continue
				}
				if !found {
					newIdom = p
					found = true
					continue
				}
				newIdom = intersect(p, newIdom)
			}
			if !found {
				continue
			}
			if cur, ok := idom[id]; !ok || cur != newIdom {
				idom[id] = newIdom
				changed = true
			}
		}
	}

	delete(idom, 0)
	return idom
}

// DominatorTree builds a tree structure from immediate dominators.
// Returns a map from each node to its list of immediately dominated nodes.
func DominatorTree(idom map[ObjID]ObjID) map[ObjID][]ObjID {
	tree := make(map[ObjID][]ObjID)

	for node := range idom {
		tree[node] = []ObjID{}
	}
	tree[0] = []ObjID{} // super-root

	for node, dom := range idom {
		tree[dom] = append(tree[dom], node)
	}

	return tree
}
