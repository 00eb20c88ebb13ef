// ABOUTME: CBOR dump codec
// ABOUTME: Canonical encoding behind the self-describe tag so dumps are byte-stable

package heapdump

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/prateek/twospace/heap"
)

// selfDescribe is tag 55799, which CBOR decoders skip.
const selfDescribe = 55799

var cborMagic = []byte{0xd9, 0xd9, 0xf7}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("heapdump: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
	Register(CBOR{})
}

// CBOR is the binary dump codec.
type CBOR struct{}

func (CBOR) Name() string { return "cbor" }

func (CBOR) CanParse(head []byte) bool {
	return bytes.HasPrefix(head, cborMagic)
}

func (CBOR) Decode(r io.Reader) (heap.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return heap.Snapshot{}, err
	}
	var doc document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return heap.Snapshot{}, err
	}
	return doc.snapshot()
}

func (CBOR) Encode(w io.Writer, snap heap.Snapshot) error {
	data, err := cborEncMode.Marshal(cbor.Tag{Number: selfDescribe, Content: newDocument(snap)})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
