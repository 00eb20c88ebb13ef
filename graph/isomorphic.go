// ABOUTME: Root-anchored structural comparison of two heap graphs
// ABOUTME: Used to check that a collection preserved the live object graph

package graph

// Isomorphic reports whether the parts of a and b reachable from their roots
// have the same shape. Root stacks are matched position by position, objects
// must agree on kind, leaf value and pointer count, and the matching must be
// one-to-one, so a shared chunk on one side cannot correspond to two copies on
// the other. Unreachable objects and IDs are ignored.
func Isomorphic(a, b Graph) bool {
	rootsA, rootsB := a.GetRoots().IDs, b.GetRoots().IDs
	if len(rootsA) != len(rootsB) {
		return false
	}

	ab := make(map[ObjID]ObjID)
	ba := make(map[ObjID]ObjID)

	type pair struct{ x, y ObjID }
	queue := make([]pair, 0, len(rootsA))
	for i := range rootsA {
		queue = append(queue, pair{rootsA[i], rootsB[i]})
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		mx, seenX := ab[p.x]
		my, seenY := ba[p.y]
		if seenX || seenY {
			if !seenX || !seenY || mx != p.y || my != p.x {
				return false
			}
			continue
		}
		ab[p.x] = p.y
		ba[p.y] = p.x

		ox, oy := a.GetObject(p.x), b.GetObject(p.y)
		if ox == nil || oy == nil {
			if ox != oy {
				return false
			}
			continue
		}
		if ox.Kind != oy.Kind || ox.Value != oy.Value || len(ox.Ptrs) != len(oy.Ptrs) {
			return false
		}
		for i := range ox.Ptrs {
			queue = append(queue, pair{ox.Ptrs[i], oy.Ptrs[i]})
		}
	}

	return true
}
