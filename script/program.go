// ABOUTME: TOML driver programs: a heap size plus an ordered list of mutator steps
// ABOUTME: Parsing checks the shape of every step before anything runs

package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/prateek/twospace/heap"
)

// ErrInvalidProgram is returned for programs that cannot be run
var ErrInvalidProgram = errors.New("invalid program")

// Operations understood by Run.
const (
	OpAlloc  = "alloc"
	OpSet    = "set"
	OpPush   = "push"
	OpPop    = "pop"
	OpPeek   = "peek"
	OpGC     = "gc"
	OpDump   = "dump"
	OpExpect = "expect"
)

// Program is a parsed driver program.
type Program struct {
	Heap  Heap   `toml:"heap"`
	Steps []Step `toml:"step"`
}

// Heap overrides collector sizes; zero keeps the caller's value.
type Heap struct {
	Semispace int `toml:"semispace"`
	Roots     int `toml:"roots"`
}

// Step is one mutator action.
//
// alloc binds Name to a new chunk holding Leaf, a reference to Ref, or
// nothing. set changes the payload of Name the same way. push roots Name,
// peek binds Name to the top root, pop drops it. dump hands a snapshot
// labelled Label to the caller. expect checks Live and Depth. Any step may
// name an Error it is expected to fail with.
type Step struct {
	Op    string  `toml:"op"`
	Name  string  `toml:"name"`
	Leaf  *uint64 `toml:"leaf"`
	Ref   string  `toml:"ref"`
	Label string  `toml:"label"`
	Live  *int    `toml:"live"`
	Depth *int    `toml:"depth"`
	Error string  `toml:"error"`
}

// errorKinds are the failures a step can expect, by name.
var errorKinds = map[string]error{
	"out_of_memory":   heap.ErrOutOfMemory,
	"stack_overflow":  heap.ErrStackOverflow,
	"stack_underflow": heap.ErrStackUnderflow,
	"bad_tag":         heap.ErrBadTag,
	"not_reference":   heap.ErrNotReference,
	"invalid_handle":  heap.ErrInvalidHandle,
	"stale_handle":    heap.ErrStaleHandle,
	"unusable":        heap.ErrUnusable,
}

// ErrorKinds lists the names accepted in a step's error field.
func ErrorKinds() []string {
	names := make([]string, 0, len(errorKinds))
	for name := range errorKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse reads a TOML program.
func Parse(r io.Reader) (*Program, error) {
	var p Program
	md, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidProgram, strings.Join(keys, ", "))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load parses the program stored at path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks every step in isolation. Whether names are bound is only
// known while running.
func (p *Program) Validate() error {
	if p.Heap.Semispace < 0 || p.Heap.Roots < 0 {
		return fmt.Errorf("%w: negative heap size", ErrInvalidProgram)
	}
	for i, s := range p.Steps {
		if err := s.validate(); err != nil {
			return fmt.Errorf("%w: step %d (%s): %w", ErrInvalidProgram, i, s.Op, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	if s.Error != "" {
		if _, ok := errorKinds[s.Error]; !ok {
			return fmt.Errorf("unknown error %q", s.Error)
		}
	}
	if s.Leaf != nil && s.Ref != "" {
		return errors.New("leaf and ref are exclusive")
	}

	switch s.Op {
	case OpAlloc, OpPush, OpPeek:
		if s.Name == "" {
			return errors.New("missing name")
		}
	case OpSet:
		if s.Name == "" {
			return errors.New("missing name")
		}
		if s.Leaf == nil && s.Ref == "" {
			return errors.New("set needs leaf or ref")
		}
	case OpExpect:
		if s.Live == nil && s.Depth == nil {
			return errors.New("expect needs live or depth")
		}
	case OpPop, OpGC, OpDump:
	case "":
		return errors.New("missing op")
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	return nil
}

// Config applies the program's heap sizes to base.
func (p *Program) Config(base heap.Config) heap.Config {
	if p.Heap.Semispace > 0 {
		base.SemispaceSize = p.Heap.Semispace
	}
	if p.Heap.Roots > 0 {
		base.RootStackSize = p.Heap.Roots
	}
	return base
}
