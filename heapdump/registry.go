// ABOUTME: Registry for dump codecs
// ABOUTME: Looks codecs up by name and sniffs the format of incoming dumps

package heapdump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/prateek/twospace/heap"
)

var (
	// ErrNoParser is returned when no codec recognises a dump
	ErrNoParser = errors.New("no parser found for dump format")

	// ErrUnknownFormat is returned when no codec has the requested name
	ErrUnknownFormat = errors.New("unknown dump format")
)

// sniffBytes is how much of a dump Open shows to CanParse.
const sniffBytes = 512

type codecRegistry struct {
	mu     sync.RWMutex
	codecs []Codec
}

var registry = &codecRegistry{}

// Register adds a codec. Codecs are tried by Open in registration order; a
// later codec with the same name shadows an earlier one for Lookup.
func Register(c Codec) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.codecs = append(registry.codecs, c)
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for i := len(registry.codecs) - 1; i >= 0; i-- {
		if registry.codecs[i].Name() == name {
			return registry.codecs[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// Formats returns the names of the registered codecs, sorted.
func Formats() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	seen := make(map[string]bool)
	var names []string
	for _, c := range registry.codecs {
		if !seen[c.Name()] {
			seen[c.Name()] = true
			names = append(names, c.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Open reads a dump in any registered format.
func Open(r io.Reader) (heap.Snapshot, error) {
	br := bufio.NewReaderSize(r, sniffBytes)
	head, err := br.Peek(sniffBytes)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return heap.Snapshot{}, err
	}

	registry.mu.RLock()
	var codec Codec
	for _, c := range registry.codecs {
		if c.CanParse(head) {
			codec = c
			break
		}
	}
	registry.mu.RUnlock()

	if codec == nil {
		return heap.Snapshot{}, ErrNoParser
	}
	snap, err := codec.Decode(br)
	if err != nil {
		return heap.Snapshot{}, fmt.Errorf("%s dump: %w", codec.Name(), err)
	}
	return snap, nil
}

// Write encodes snap in the named format.
func Write(w io.Writer, format string, snap heap.Snapshot) error {
	codec, err := Lookup(format)
	if err != nil {
		return err
	}
	return codec.Encode(w, snap)
}
