// ABOUTME: Codec interface for heap snapshot dump formats
// ABOUTME: Defines the contract for pluggable encoders and decoders

package heapdump

import (
	"io"

	"github.com/prateek/twospace/heap"
)

// Codec reads and writes heap snapshots in one dump format.
type Codec interface {
	// Name is the format name used to select the codec, e.g. "json".
	Name() string

	// CanParse reports whether head, the first bytes of a dump, looks like
	// this format. It must not assume head holds the whole dump.
	CanParse(head []byte) bool

	// Decode reads a complete dump.
	Decode(r io.Reader) (heap.Snapshot, error)

	// Encode writes snap as a complete dump.
	Encode(w io.Writer, snap heap.Snapshot) error
}
