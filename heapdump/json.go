// ABOUTME: JSON dump codec
// ABOUTME: Indented documents with a "format" marker field

package heapdump

import (
	"bytes"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/prateek/twospace/heap"
)

// JSON is the JSON dump codec.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) CanParse(head []byte) bool {
	head = bytes.TrimLeft(head, " \t\r\n")
	return len(head) > 0 && head[0] == '{' && bytes.Contains(head, []byte(`"format"`))
}

func (JSON) Decode(r io.Reader) (heap.Snapshot, error) {
	var doc document
	if err := json.UnmarshalRead(r, &doc); err != nil {
		return heap.Snapshot{}, err
	}
	return doc.snapshot()
}

func (JSON) Encode(w io.Writer, snap heap.Snapshot) error {
	if err := json.MarshalWrite(w, newDocument(snap), jsontext.WithIndent("  ")); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func init() {
	Register(JSON{})
}
