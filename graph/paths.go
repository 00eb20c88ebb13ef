// ABOUTME: BFS algorithm for finding paths from a chunk back to the roots
// ABOUTME: Explains why a chunk survives a collection; cycles are skipped per path

package graph

// Path is a chain of object IDs from a target to a root
type Path struct {
	IDs []ObjID // Target first, root last
}

// PathsToRoots returns up to maxPaths shortest-first paths from an object to
// the roots, following pointers backwards.
func PathsToRoots(g Graph, from ObjID, maxPaths int) []Path {
	if maxPaths <= 0 {
		return nil
	}

	reverse := BuildReverseEdges(g)

	rootSet := make(map[ObjID]bool)
	for _, id := range g.GetRoots().IDs {
		rootSet[id] = true
	}

	if rootSet[from] {
		return []Path{{IDs: []ObjID{from}}}
	}

	var result []Path
	queue := [][]ObjID{{from}}

	for len(queue) > 0 && len(result) < maxPaths {
		path := queue[0]
		queue = queue[1:]
		tip := path[len(path)-1]

		for _, referrer := range dedupe(reverse[tip]) {
			if contains(path, referrer) {
				continue
			}

			next := make([]ObjID, len(path)+1)
			copy(next, path)
			next[len(path)] = referrer

			if rootSet[referrer] {
				result = append(result, Path{IDs: next})
				if len(result) >= maxPaths {
					break
				}
				continue
			}
			queue = append(queue, next)
		}
	}

	return result
}

func contains(ids []ObjID, id ObjID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// dedupe drops repeated referrers while keeping first-seen order.
func dedupe(ids []ObjID) []ObjID {
	if len(ids) < 2 {
		return ids
	}
	out := make([]ObjID, 0, len(ids))
	for _, id := range ids {
		if !contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
