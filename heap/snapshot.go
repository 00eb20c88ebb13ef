// ABOUTME: Read-only views of a collector: occupancy and plain-data snapshots
// ABOUTME: Snapshots feed diagnostic dumps and graph analysis

package heap

import (
	"fmt"

	"github.com/inhies/go-bytesize"
)

// Occupancy is the fill level of the active semispace.
type Occupancy struct {
	Used     int
	Capacity int
}

// Bytes returns the nominal size of the used chunks.
func (o Occupancy) Bytes() bytesize.ByteSize {
	return bytesize.New(float64(o.Used * ChunkBytes))
}

func (o Occupancy) String() string {
	return fmt.Sprintf("%d/%d chunks (%s)", o.Used, o.Capacity, o.Bytes())
}

// Occupancy reports how much of the active semispace is allocated.
func (c *Collector) Occupancy() Occupancy {
	return Occupancy{Used: c.store.Len(), Capacity: c.store.Cap()}
}

// ChunkRecord is one occupied slot in a Snapshot. Value is set for leaves and
// Target for references.
type ChunkRecord struct {
	Slot   uint32
	Tag    Tag
	Value  uint64
	Target uint32
}

// Snapshot is a plain-data copy of the active semispace and the root stack.
type Snapshot struct {
	ID            string
	Epoch         uint32
	SemispaceSize int
	RootStackSize int
	Chunks        []ChunkRecord
	Roots         []uint32 // slots, bottom of the stack first
}

// Snapshot copies the current heap state.
func (c *Collector) Snapshot() Snapshot {
	snap := Snapshot{
		ID:            c.id.String(),
		Epoch:         c.store.Epoch(),
		SemispaceSize: c.store.Cap(),
		RootStackSize: c.roots.Cap(),
		Chunks:        make([]ChunkRecord, 0, c.store.Len()),
		Roots:         make([]uint32, 0, c.roots.Len()),
	}
	c.store.each(func(h Handle, p Payload) {
		rec := ChunkRecord{Slot: h.index, Tag: TagOf(p)}
		switch v := p.(type) {
		case Leaf:
			rec.Value = uint64(v)
		case Ref:
			rec.Target = v.index
		}
		snap.Chunks = append(snap.Chunks, rec)
	})
	for _, h := range c.roots.Handles() {
		snap.Roots = append(snap.Roots, h.index)
	}
	return snap
}
