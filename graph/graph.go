// ABOUTME: Graph interface and in-memory implementation
// ABOUTME: Objects are kept in a btree so iteration is in ascending ID order

package graph

import (
	"sync"

	"github.com/google/btree"
)

// Graph is a heap object graph
type Graph interface {
	// AddObject adds an object, replacing any object with the same ID
	AddObject(obj *Object)

	// GetObject retrieves an object by ID, nil if absent
	GetObject(id ObjID) *Object

	// NumObjects returns the total number of objects
	NumObjects() int

	// ForEachObject iterates over all objects in ascending ID order
	ForEachObject(fn func(*Object))

	// SetRoots sets the roots
	SetRoots(roots Roots)

	// GetRoots returns the roots
	GetRoots() Roots
}

// MemGraph is an in-memory implementation of Graph
type MemGraph struct {
	mu      sync.RWMutex
	objects *btree.BTreeG[*Object]
	roots   Roots
}

func objectLess(a, b *Object) bool { return a.ID < b.ID }

// NewMemGraph creates an empty graph
func NewMemGraph() *MemGraph {
	return &MemGraph{
		objects: btree.NewG(16, objectLess),
	}
}

// AddObject adds an object to the graph
func (g *MemGraph) AddObject(obj *Object) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects.ReplaceOrInsert(obj)
}

// GetObject retrieves an object by ID
func (g *MemGraph) GetObject(id ObjID) *Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	obj, ok := g.objects.Get(&Object{ID: id})
	if !ok {
		return nil
	}
	return obj
}

// NumObjects returns the total number of objects
func (g *MemGraph) NumObjects() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.objects.Len()
}

// ForEachObject iterates over all objects. fn must not add objects.
func (g *MemGraph) ForEachObject(fn func(*Object)) {
	g.mu.RLock()
	objs := make([]*Object, 0, g.objects.Len())
	g.objects.Ascend(func(obj *Object) bool {
		objs = append(objs, obj)
		return true
	})
	g.mu.RUnlock()

	for _, obj := range objs {
		fn(obj)
	}
}

// SetRoots sets the roots
func (g *MemGraph) SetRoots(roots Roots) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roots = roots
}

// GetRoots returns the roots
func (g *MemGraph) GetRoots() Roots {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.roots
}
