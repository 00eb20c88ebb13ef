// ABOUTME: Reachability from the roots, the liveness rule of the collector
// ABOUTME: Breadth-first walk that terminates on cycles and shared chunks

package graph

// Reachable returns the set of objects reachable from the roots through zero
// or more pointer hops. Pointers to missing objects are ignored.
func Reachable(g Graph) map[ObjID]bool {
	live := make(map[ObjID]bool)
	queue := append([]ObjID(nil), g.GetRoots().IDs...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if live[id] {
			continue
		}
		obj := g.GetObject(id)
		if obj == nil {
			continue
		}
		live[id] = true
		queue = append(queue, obj.Ptrs...)
	}

	return live
}

// Garbage returns the IDs of objects not reachable from the roots, ascending.
func Garbage(g Graph) []ObjID {
	live := Reachable(g)
	var dead []ObjID
	g.ForEachObject(func(obj *Object) {
		if !live[obj.ID] {
			dead = append(dead, obj.ID)
		}
	})
	return dead
}
