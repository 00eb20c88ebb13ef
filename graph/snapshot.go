// ABOUTME: Builds a graph from a collector snapshot
// ABOUTME: Slot i becomes object i+1 so that ID 0 stays free for the super-root

package graph

import "github.com/prateek/twospace/heap"

// FromSnapshot converts a heap snapshot into a graph. Every occupied slot
// becomes an object, garbage included; roots keep their stack order.
func FromSnapshot(snap heap.Snapshot) *MemGraph {
	g := NewMemGraph()

	for _, rec := range snap.Chunks {
		obj := &Object{
			ID:   SlotID(rec.Slot),
			Kind: rec.Tag.String(),
			Size: heap.ChunkBytes,
			Ptrs: []ObjID{},
		}
		switch rec.Tag {
		case heap.TagLeaf:
			obj.Value = rec.Value
		case heap.TagRef:
			obj.Ptrs = []ObjID{SlotID(rec.Target)}
		}
		g.AddObject(obj)
	}

	roots := Roots{IDs: make([]ObjID, 0, len(snap.Roots))}
	for _, slot := range snap.Roots {
		roots.IDs = append(roots.IDs, SlotID(slot))
	}
	g.SetRoots(roots)

	return g
}
