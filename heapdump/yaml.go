// ABOUTME: YAML dump codec
// ABOUTME: Same document as the JSON codec, easier to read by hand

package heapdump

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/prateek/twospace/heap"
)

// YAML is the YAML dump codec.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) CanParse(head []byte) bool {
	head = bytes.TrimLeft(head, " \t\r\n")
	head = bytes.TrimPrefix(head, []byte("---\n"))
	return bytes.HasPrefix(head, []byte("format: "+Magic))
}

func (YAML) Decode(r io.Reader) (heap.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return heap.Snapshot{}, err
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return heap.Snapshot{}, err
	}
	return doc.snapshot()
}

func (YAML) Encode(w io.Writer, snap heap.Snapshot) error {
	data, err := yaml.Marshal(newDocument(snap))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func init() {
	Register(YAML{})
}
