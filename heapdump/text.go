// ABOUTME: Line-oriented text dump codec, one chunk per line
// ABOUTME: Meant for eyeballing a heap between collections

package heapdump

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prateek/twospace/heap"
)

// Text is the human-readable dump codec. A dump looks like:
//
//	heap id=... epoch=1 semispace=4 stack=4
//	0: CHUNK: tag=ref, target=1
//	1: CHUNK: tag=int, data=42
//	root 0 = 0
//	end
type Text struct{}

func (Text) Name() string { return "text" }

func (Text) CanParse(head []byte) bool {
	return bytes.HasPrefix(head, []byte("heap "))
}

func (Text) Encode(w io.Writer, snap heap.Snapshot) error {
	bw := bufio.NewWriter(w)

	id := snap.ID
	if id == "" {
		id = "-"
	}
	fmt.Fprintf(bw, "heap id=%s epoch=%d semispace=%d stack=%d\n",
		id, snap.Epoch, snap.SemispaceSize, snap.RootStackSize)

	for _, c := range snap.Chunks {
		switch c.Tag {
		case heap.TagLeaf:
			fmt.Fprintf(bw, "%d: CHUNK: tag=%s, data=%d\n", c.Slot, c.Tag, c.Value)
		case heap.TagRef:
			fmt.Fprintf(bw, "%d: CHUNK: tag=%s, target=%d\n", c.Slot, c.Tag, c.Target)
		default:
			fmt.Fprintf(bw, "%d: CHUNK: tag=%s\n", c.Slot, c.Tag)
		}
	}
	for i, slot := range snap.Roots {
		fmt.Fprintf(bw, "root %d = %d\n", i, slot)
	}
	fmt.Fprintln(bw, "end")

	return bw.Flush()
}

func (Text) Decode(r io.Reader) (heap.Snapshot, error) {
	snap := heap.Snapshot{Chunks: []heap.ChunkRecord{}, Roots: []uint32{}}
	sc := bufio.NewScanner(r)
	line := 0
	header, done := false, false

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if done {
			return snap, fmt.Errorf("line %d: content after end: %w", line, ErrMalformed)
		}

		var err error
		switch {
		case !header:
			err = parseHeader(text, &snap)
			header = true
		case text == "end":
			done = true
		case strings.HasPrefix(text, "root "):
			err = parseRoot(text, &snap)
		default:
			err = parseChunk(text, &snap)
		}
		if err != nil {
			return snap, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return snap, err
	}
	if !done {
		return snap, fmt.Errorf("missing end line: %w", ErrMalformed)
	}
	return snap, validate(snap)
}

func parseHeader(text string, snap *heap.Snapshot) error {
	fields := strings.Fields(text)
	if len(fields) == 0 || fields[0] != "heap" {
		return fmt.Errorf("expected heap header: %w", ErrMalformed)
	}
	for _, f := range fields[1:] {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("header field %q: %w", f, ErrMalformed)
		}
		var err error
		switch key {
		case "id":
			if val != "-" {
				snap.ID = val
			}
		case "epoch":
			var n uint64
			n, err = strconv.ParseUint(val, 10, 32)
			snap.Epoch = uint32(n)
		case "semispace":
			snap.SemispaceSize, err = strconv.Atoi(val)
		case "stack":
			snap.RootStackSize, err = strconv.Atoi(val)
		default:
			return fmt.Errorf("header field %q: %w", key, ErrMalformed)
		}
		if err != nil {
			return fmt.Errorf("header field %q: %w", key, err)
		}
	}
	return nil
}

func parseRoot(text string, snap *heap.Snapshot) error {
	var pos int
	var slot uint32
	if _, err := fmt.Sscanf(text, "root %d = %d", &pos, &slot); err != nil {
		return fmt.Errorf("root line: %w", err)
	}
	if pos != len(snap.Roots) {
		return fmt.Errorf("root %d out of order: %w", pos, ErrMalformed)
	}
	snap.Roots = append(snap.Roots, slot)
	return nil
}

func parseChunk(text string, snap *heap.Snapshot) error {
	slotText, rest, ok := strings.Cut(text, ": CHUNK: ")
	if !ok {
		return fmt.Errorf("unrecognised line %q: %w", text, ErrMalformed)
	}
	slot, err := strconv.ParseUint(slotText, 10, 32)
	if err != nil {
		return fmt.Errorf("chunk slot: %w", err)
	}

	c := heap.ChunkRecord{Slot: uint32(slot)}
	for _, f := range strings.Split(rest, ", ") {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("chunk field %q: %w", f, ErrMalformed)
		}
		switch key {
		case "tag":
			tag, ok := heap.ParseTag(val)
			if !ok {
				return fmt.Errorf("tag %q: %w", val, ErrMalformed)
			}
			c.Tag = tag
		case "data":
			c.Value, err = strconv.ParseUint(val, 10, 64)
		case "target":
			var n uint64
			n, err = strconv.ParseUint(val, 10, 32)
			c.Target = uint32(n)
		default:
			return fmt.Errorf("chunk field %q: %w", key, ErrMalformed)
		}
		if err != nil {
			return fmt.Errorf("chunk field %q: %w", key, err)
		}
	}
	snap.Chunks = append(snap.Chunks, c)
	return nil
}

func init() {
	Register(Text{})
}
