// ABOUTME: Tests for the graph data structures and interfaces
// ABOUTME: Validates object storage, ordered iteration and roots

package graph

import (
	"testing"
)

func TestSlotMapping(t *testing.T) {
	for _, slot := range []uint32{0, 1, 41, 1023} {
		id := SlotID(slot)
		if id == 0 {
			t.Errorf("Expected non-zero ID for slot %d", slot)
		}
		if id.Slot() != slot {
			t.Errorf("Expected slot %d, got %d", slot, id.Slot())
		}
	}
}

func TestGraphInterface(t *testing.T) {
	g := NewMemGraph()

	g.AddObject(&Object{ID: 1, Kind: "ref", Size: 24, Ptrs: []ObjID{2}})
	g.AddObject(&Object{ID: 2, Kind: "int", Value: 42, Size: 24})

	retrieved := g.GetObject(2)
	if retrieved == nil {
		t.Fatal("Expected to retrieve object 2")
	}
	if retrieved.Value != 42 {
		t.Errorf("Expected value 42, got %d", retrieved.Value)
	}

	if g.NumObjects() != 2 {
		t.Errorf("Expected 2 objects, got %d", g.NumObjects())
	}

	g.SetRoots(Roots{IDs: []ObjID{1, 1}})
	roots := g.GetRoots()
	if len(roots.IDs) != 2 || roots.IDs[0] != 1 || roots.IDs[1] != 1 {
		t.Errorf("Expected roots [1 1], got %v", roots.IDs)
	}
}

func TestForEachObjectOrdered(t *testing.T) {
	g := NewMemGraph()
	for _, id := range []ObjID{5, 3, 9, 1, 7} {
		g.AddObject(&Object{ID: id, Kind: "int"})
	}

	var seen []ObjID
	g.ForEachObject(func(obj *Object) {
		seen = append(seen, obj.ID)
	})

	want := []ObjID{1, 3, 5, 7, 9}
	if len(seen) != len(want) {
		t.Fatalf("Expected %d objects, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Expected ascending order %v, got %v", want, seen)
			break
		}
	}
}

func TestForEachObjectCanReadGraph(t *testing.T) {
	g := build([]ObjID{1}, map[ObjID][]ObjID{1: {2}, 2: nil}, nil)

	count := 0
	g.ForEachObject(func(obj *Object) {
		for _, p := range obj.Ptrs {
			if g.GetObject(p) == nil {
				t.Errorf("Expected pointer target %d to exist", p)
			}
		}
		count++
	})
	if count != 2 {
		t.Errorf("Expected to iterate over 2 objects, got %d", count)
	}
}

func TestIDUniqueness(t *testing.T) {
	g := NewMemGraph()

	g.AddObject(&Object{ID: 1, Kind: "int", Value: 1})
	g.AddObject(&Object{ID: 1, Kind: "int", Value: 2}) // replaces the first

	if g.NumObjects() != 1 {
		t.Errorf("Expected 1 object after duplicate ID, got %d", g.NumObjects())
	}
	if got := g.GetObject(1).Value; got != 2 {
		t.Errorf("Expected duplicate to replace first, got value %d", got)
	}
}

func TestMissingObject(t *testing.T) {
	g := NewMemGraph()

	if obj := g.GetObject(999); obj != nil {
		t.Error("Expected nil for non-existent object")
	}
	if g.NumObjects() != 0 {
		t.Errorf("Expected 0 objects in empty graph, got %d", g.NumObjects())
	}
}
