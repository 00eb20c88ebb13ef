// ABOUTME: Shared fixtures for graph tests
// ABOUTME: Builds small chunk graphs from adjacency lists

package graph

import "sort"

// build creates a graph with one object per key of edges. Objects with
// pointers are "ref" chunks, the rest "int" leaves; sizes come from sizes
// when given.
func build(roots []ObjID, edges map[ObjID][]ObjID, sizes map[ObjID]uint64) *MemGraph {
	g := NewMemGraph()
	for id, ptrs := range edges {
		kind := "int"
		if len(ptrs) > 0 {
			kind = "ref"
		}
		g.AddObject(&Object{ID: id, Kind: kind, Size: sizes[id], Ptrs: ptrs})
	}
	g.SetRoots(Roots{IDs: roots})
	return g
}

func sorted(ids []ObjID) []ObjID {
	out := append([]ObjID{}, ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
