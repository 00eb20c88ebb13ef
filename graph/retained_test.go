// ABOUTME: Tests for retained size calculation using dominator trees
// ABOUTME: Sizes are in bytes; chunk graphs use one size per chunk

package graph

import (
	"reflect"
	"testing"
)

func TestRetainedSize(t *testing.T) {
	tests := []struct {
		name     string
		roots    []ObjID
		edges    map[ObjID][]ObjID
		sizes    map[ObjID]uint64
		expected map[ObjID]uint64
	}{
		{
			name:     "linear chain",
			roots:    []ObjID{1},
			edges:    map[ObjID][]ObjID{1: {2}, 2: {3}, 3: nil},
			sizes:    map[ObjID]uint64{1: 100, 2: 50, 3: 25},
			expected: map[ObjID]uint64{1: 175, 2: 75, 3: 25},
		},
		{
			name:     "diamond",
			roots:    []ObjID{1},
			edges:    map[ObjID][]ObjID{1: {2, 3}, 2: {4}, 3: {4}, 4: nil},
			sizes:    map[ObjID]uint64{1: 100, 2: 30, 3: 40, 4: 20},
			expected: map[ObjID]uint64{1: 190, 2: 30, 3: 40, 4: 20},
		},
		{
			name:     "shared between roots",
			roots:    []ObjID{1, 2},
			edges:    map[ObjID][]ObjID{1: {3}, 2: {3}, 3: nil},
			sizes:    map[ObjID]uint64{1: 100, 2: 200, 3: 50},
			expected: map[ObjID]uint64{1: 100, 2: 200, 3: 50},
		},
		{
			name:     "garbage retained by nobody",
			roots:    []ObjID{1},
			edges:    map[ObjID][]ObjID{1: {2}, 2: nil, 3: {2}},
			sizes:    map[ObjID]uint64{1: 100, 2: 50, 3: 75},
			expected: map[ObjID]uint64{1: 150, 2: 50},
		},
		{
			name:     "cycle counted once",
			roots:    []ObjID{1},
			edges:    map[ObjID][]ObjID{1: {2}, 2: {3}, 3: {2}},
			sizes:    map[ObjID]uint64{1: 24, 2: 24, 3: 24},
			expected: map[ObjID]uint64{1: 72, 2: 48, 3: 24},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retained := RetainedSize(build(tt.roots, tt.edges, tt.sizes))
			if !reflect.DeepEqual(retained, tt.expected) {
				t.Errorf("RetainedSize() = %v, want %v", retained, tt.expected)
			}
		})
	}
}

func TestRetainedSizeWithDominators(t *testing.T) {
	g := build([]ObjID{1}, map[ObjID][]ObjID{1: {2, 3}, 2: {4}, 3: {4, 5}, 4: nil, 5: nil},
		map[ObjID]uint64{1: 100, 2: 30, 3: 40, 4: 20, 5: 15})

	dominators := Dominators(g)
	retained := RetainedSize(g)

	for node, dom := range dominators {
		if dom == 0 {
			continue
		}
		if retained[dom] < retained[node] {
			t.Errorf("dominator %d retains %d, less than dominated %d (%d)",
				dom, retained[dom], node, retained[node])
		}
	}

	g.ForEachObject(func(obj *Object) {
		if size, ok := retained[obj.ID]; ok && size < obj.Size {
			t.Errorf("node %d: retained size %d < object size %d", obj.ID, size, obj.Size)
		}
	})
}

func TestRetainedSizeSubsets(t *testing.T) {
	g := build([]ObjID{1}, map[ObjID][]ObjID{1: {2, 3}, 2: {4}, 3: nil, 4: nil},
		map[ObjID]uint64{1: 100, 2: 30, 3: 40, 4: 20})

	tests := []struct {
		name     string
		ids      []ObjID
		expected map[ObjID]uint64
	}{
		{name: "single node", ids: []ObjID{2}, expected: map[ObjID]uint64{2: 50}},
		{name: "multiple nodes", ids: []ObjID{2, 3}, expected: map[ObjID]uint64{2: 50, 3: 40}},
		{name: "nonexistent node", ids: []ObjID{999}, expected: map[ObjID]uint64{}},
		{name: "super-root skipped", ids: []ObjID{0}, expected: map[ObjID]uint64{}},
		{name: "no targets", ids: nil, expected: map[ObjID]uint64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retained := RetainedSizeSubsets(g, tt.ids)
			if !reflect.DeepEqual(retained, tt.expected) {
				t.Errorf("retained sizes = %v, want %v", retained, tt.expected)
			}
		})
	}
}
