// ABOUTME: Calculates retained sizes using the dominator tree
// ABOUTME: Retained size is what the next collection frees if an object becomes garbage

package graph

// RetainedSize computes the retained size for each reachable object: the
// total size of the objects it dominates, itself included. These are the
// chunks a collection would reclaim if that object stopped being referenced.
func RetainedSize(g Graph) map[ObjID]uint64 {
	r := newRetainer(g)
	for node := range r.tree {
		r.retained(node)
	}
	delete(r.memo, 0)
	return r.memo
}

// RetainedSizeSubsets computes retained sizes only for targetIDs. IDs that
// are missing or unreachable are left out of the result.
func RetainedSizeSubsets(g Graph, targetIDs []ObjID) map[ObjID]uint64 {
	result := make(map[ObjID]uint64)
	if len(targetIDs) == 0 {
		return result
	}

	r := newRetainer(g)
	for _, id := range targetIDs {
		if _, ok := r.tree[id]; ok && id != 0 {
			result[id] = r.retained(id)
		}
	}
	return result
}

type retainer struct {
	tree  map[ObjID][]ObjID
	sizes map[ObjID]uint64
	memo  map[ObjID]uint64
}

func newRetainer(g Graph) *retainer {
	r := &retainer{
		tree:  DominatorTree(Dominators(g)),
		sizes: make(map[ObjID]uint64),
		memo:  make(map[ObjID]uint64),
	}
	g.ForEachObject(func(obj *Object) {
		r.sizes[obj.ID] = obj.Size
	})
	return r
}

// retained sums sizes over the dominator subtree of node.
func (r *retainer) retained(node ObjID) uint64 {
	if size, ok := r.memo[node]; ok {
		return size
	}
	size := r.sizes[node]
	for _, child := range r.tree[node] {
		size += r.retained(child)
	}
	r.memo[node] = size
	return size
}
