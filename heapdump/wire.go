// ABOUTME: Format-neutral dump document shared by the structured codecs
// ABOUTME: Converts between heap snapshots and their serialised form

package heapdump

import (
	"errors"
	"fmt"

	"github.com/prateek/twospace/heap"
)

// Magic is the value of the "format" field in structured dumps.
const Magic = "twospace"

// ErrMalformed is returned when a dump decodes but does not describe a heap
var ErrMalformed = errors.New("malformed dump")

type document struct {
	Format        string   `json:"format" yaml:"format" cbor:"format"`
	ID            string   `json:"id" yaml:"id" cbor:"id"`
	Epoch         uint32   `json:"epoch" yaml:"epoch" cbor:"epoch"`
	SemispaceSize int      `json:"semispace_size" yaml:"semispace_size" cbor:"semispace_size"`
	RootStackSize int      `json:"root_stack_size" yaml:"root_stack_size" cbor:"root_stack_size"`
	Chunks        []record `json:"chunks" yaml:"chunks" cbor:"chunks"`
	Roots         []uint32 `json:"roots" yaml:"roots" cbor:"roots"`
}

type record struct {
	Slot   uint32  `json:"slot" yaml:"slot" cbor:"slot"`
	Tag    string  `json:"tag" yaml:"tag" cbor:"tag"`
	Value  *uint64 `json:"value,omitempty" yaml:"value,omitempty" cbor:"value,omitempty"`
	Target *uint32 `json:"target,omitempty" yaml:"target,omitempty" cbor:"target,omitempty"`
}

func newDocument(snap heap.Snapshot) document {
	doc := document{
		Format:        Magic,
		ID:            snap.ID,
		Epoch:         snap.Epoch,
		SemispaceSize: snap.SemispaceSize,
		RootStackSize: snap.RootStackSize,
		Chunks:        make([]record, 0, len(snap.Chunks)),
		Roots:         append([]uint32{}, snap.Roots...),
	}
	for _, c := range snap.Chunks {
		rec := record{Slot: c.Slot, Tag: c.Tag.String()}
		switch c.Tag {
		case heap.TagLeaf:
			v := c.Value
			rec.Value = &v
		case heap.TagRef:
			t := c.Target
			rec.Target = &t
		}
		doc.Chunks = append(doc.Chunks, rec)
	}
	return doc
}

func (d document) snapshot() (heap.Snapshot, error) {
	if d.Format != Magic {
		return heap.Snapshot{}, fmt.Errorf("format %q: %w", d.Format, ErrMalformed)
	}

	snap := heap.Snapshot{
		ID:            d.ID,
		Epoch:         d.Epoch,
		SemispaceSize: d.SemispaceSize,
		RootStackSize: d.RootStackSize,
		Chunks:        make([]heap.ChunkRecord, 0, len(d.Chunks)),
		Roots:         append([]uint32{}, d.Roots...),
	}
	for i, rec := range d.Chunks {
		c, err := rec.chunk()
		if err != nil {
			return heap.Snapshot{}, fmt.Errorf("chunk %d: %w", i, err)
		}
		snap.Chunks = append(snap.Chunks, c)
	}
	return snap, validate(snap)
}

func (r record) chunk() (heap.ChunkRecord, error) {
	tag, ok := heap.ParseTag(r.Tag)
	if !ok {
		return heap.ChunkRecord{}, fmt.Errorf("tag %q: %w", r.Tag, ErrMalformed)
	}
	c := heap.ChunkRecord{Slot: r.Slot, Tag: tag}
	switch tag {
	case heap.TagLeaf:
		if r.Value == nil {
			return c, fmt.Errorf("int chunk without value: %w", ErrMalformed)
		}
		c.Value = *r.Value
	case heap.TagRef:
		if r.Target == nil {
			return c, fmt.Errorf("ref chunk without target: %w", ErrMalformed)
		}
		c.Target = *r.Target
	}
	return c, nil
}

// validate checks that slots are dense and ascending and that roots and
// references name occupied slots.
func validate(snap heap.Snapshot) error {
	n := uint32(len(snap.Chunks))
	if snap.SemispaceSize < int(n) {
		return fmt.Errorf("%d chunks in a semispace of %d: %w", n, snap.SemispaceSize, ErrMalformed)
	}
	for i, c := range snap.Chunks {
		if c.Slot != uint32(i) {
			return fmt.Errorf("chunk %d has slot %d: %w", i, c.Slot, ErrMalformed)
		}
		if c.Tag == heap.TagRef && c.Target >= n {
			return fmt.Errorf("slot %d references %d of %d: %w", c.Slot, c.Target, n, ErrMalformed)
		}
	}
	if snap.RootStackSize < len(snap.Roots) {
		return fmt.Errorf("%d roots on a stack of %d: %w", len(snap.Roots), snap.RootStackSize, ErrMalformed)
	}
	for i, slot := range snap.Roots {
		if slot >= n {
			return fmt.Errorf("root %d names slot %d of %d: %w", i, slot, n, ErrMalformed)
		}
	}
	return nil
}
