// ABOUTME: Core data types for the chunk heap graph
// ABOUTME: Defines Object, ObjID and Roots, and the slot <-> ID mapping

package graph

// ObjID identifies an object in the graph. ID 0 is reserved for the
// super-root that points at every root.
type ObjID uint64

// SlotID returns the ID of the chunk stored in a semispace slot.
func SlotID(slot uint32) ObjID { return ObjID(slot) + 1 }

// Slot returns the semispace slot of a chunk ID.
func (id ObjID) Slot() uint32 { return uint32(id - 1) }

// Object is a single heap chunk
type Object struct {
	ID    ObjID   // Unique identifier
	Kind  string  // "int", "ref" or "none"
	Value uint64  // Scalar for "int" chunks
	Size  uint64  // Size in bytes
	Ptrs  []ObjID // IDs of objects this object points to
}

// Roots is the root stack, bottom first. Duplicates are allowed.
type Roots struct {
	IDs []ObjID
}
