// ABOUTME: Builds reverse edges for graph traversal
// ABOUTME: Maps chunks to the chunks that reference them

package graph

// ReverseEdges maps each object to the objects that point to it
type ReverseEdges map[ObjID][]ObjID

// BuildReverseEdges creates a map of reverse edges. A self reference appears
// as its own referrer.
func BuildReverseEdges(g Graph) ReverseEdges {
	reverse := make(ReverseEdges)

	g.ForEachObject(func(obj *Object) {
		for _, targetID := range obj.Ptrs {
			reverse[targetID] = append(reverse[targetID], obj.ID)
		}
	})

	return reverse
}
