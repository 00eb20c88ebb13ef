// ABOUTME: Chunk data model: handles, tags and the Leaf/Ref payload sum type
// ABOUTME: Chunks are the fixed-size relocatable units managed by the collector

package heap

import "fmt"

// ChunkBytes is the nominal footprint of one chunk (tag word, forwarding word,
// payload word) used when reporting occupancy in bytes.
const ChunkBytes = 24

// Handle identifies a chunk in the active semispace. The epoch counts
// completed collections; a handle from an earlier epoch is stale.
type Handle struct {
	index uint32
	epoch uint32
}

// Index returns the slot of the chunk within its semispace.
func (h Handle) Index() int { return int(h.index) }

// Epoch returns the collection epoch the handle belongs to.
func (h Handle) Epoch() uint32 { return h.epoch }

func (h Handle) String() string {
	return fmt.Sprintf("#%d@%d", h.index, h.epoch)
}

// Tag names the variant held by a chunk.
type Tag uint8

const (
	// TagNone marks a chunk whose payload has not been set.
	TagNone Tag = iota
	TagLeaf
	TagRef
)

func (t Tag) String() string {
	switch t {
	case TagLeaf:
		return "int"
	case TagRef:
		return "ref"
	default:
		return "none"
	}
}

// ParseTag is the inverse of Tag.String.
func ParseTag(s string) (Tag, bool) {
	switch s {
	case "int":
		return TagLeaf, true
	case "ref":
		return TagRef, true
	case "none":
		return TagNone, true
	}
	return TagNone, false
}

// Payload is the contents of a chunk. It is either a Leaf or a Ref; no other
// implementations exist.
type Payload interface {
	Tag() Tag
	sealed()
}

// Leaf is an unsigned scalar payload.
type Leaf uint64

// Ref is a reference to another chunk in the same semispace.
type Ref Handle

func (Leaf) Tag() Tag { return TagLeaf }
func (Leaf) sealed()  {}

func (Ref) Tag() Tag { return TagRef }
func (Ref) sealed()  {}

// Target returns the referenced chunk's handle.
func (r Ref) Target() Handle { return Handle(r) }

// TagOf reports the tag of p, TagNone for a nil payload.
func TagOf(p Payload) Tag {
	if p == nil {
		return TagNone
	}
	return p.Tag()
}

// chunk is one slot of a semispace. forward is meaningful only while moved is
// set, which happens only during a collection.
type chunk struct {
	payload Payload
	forward uint32
	moved   bool
}
