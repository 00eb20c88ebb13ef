// ABOUTME: Tests for parsing and running driver programs
// ABOUTME: Covers the demo, binding rules, expected errors and step reporting

package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/fulldump/biff"

	"github.com/prateek/twospace/heap"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	p, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return p
}

func newCollector(t *testing.T, p *Program) *heap.Collector {
	t.Helper()
	c, err := heap.New(p.Config(heap.Config{SemispaceSize: 8, RootStackSize: 4}))
	if err != nil {
		t.Fatalf("Failed to create collector: %v", err)
	}
	return c
}

func TestDemo(t *testing.T) {
	p := Demo()
	c, err := heap.New(p.Config(heap.DefaultConfig()))
	biff.AssertNil(err)

	var labels []string
	var live []int
	err = Run(p, c, Hooks{
		Dump: func(step int, label string, snap heap.Snapshot) error {
			labels = append(labels, label)
			return nil
		},
		Collected: func(step int, st heap.Stats) {
			live = append(live, st.Live)
		},
	})

	biff.AssertNil(err)
	biff.AssertEqual(len(labels), 8)
	biff.AssertEqual(labels[0], "self reference")
	biff.AssertEqual(live, []int{0, 1, 0, 2, 2})
	biff.AssertEqual(c.Epoch(), uint32(5))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "Bad TOML", src: `[[step]`},
		{name: "Unknown op", src: "[[step]]\nop = \"free\"\n"},
		{name: "Missing op", src: "[[step]]\nname = \"a\"\n"},
		{name: "Unknown key", src: "[[step]]\nop = \"gc\"\ncolour = \"red\"\n"},
		{name: "Alloc without name", src: "[[step]]\nop = \"alloc\"\n"},
		{name: "Set without payload", src: "[[step]]\nop = \"set\"\nname = \"a\"\n"},
		{name: "Leaf and ref", src: "[[step]]\nop = \"alloc\"\nname = \"a\"\nleaf = 1\nref = \"b\"\n"},
		{name: "Empty expect", src: "[[step]]\nop = \"expect\"\n"},
		{name: "Unknown error kind", src: "[[step]]\nop = \"pop\"\nerror = \"oops\"\n"},
		{name: "Negative size", src: "[heap]\nsemispace = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			if !errors.Is(err, ErrInvalidProgram) {
				t.Errorf("Expected ErrInvalidProgram, got %v", err)
			}
		})
	}
}

func TestConfig(t *testing.T) {
	p := mustParse(t, "[heap]\nsemispace = 16\n")
	cfg := p.Config(heap.Config{SemispaceSize: 4, RootStackSize: 2})

	if cfg.SemispaceSize != 16 || cfg.RootStackSize != 2 {
		t.Errorf("Expected 16/2, got %d/%d", cfg.SemispaceSize, cfg.RootStackSize)
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		index   int
		wantErr error
	}{
		{
			name:    "Unbound name",
			src:     "[[step]]\nop = \"gc\"\n[[step]]\nop = \"push\"\nname = \"ghost\"\n",
			index:   1,
			wantErr: ErrUnbound,
		},
		{
			name:    "Underflow",
			src:     "[[step]]\nop = \"pop\"\n",
			index:   0,
			wantErr: heap.ErrStackUnderflow,
		},
		{
			name:    "Live mismatch",
			src:     "[[step]]\nop = \"alloc\"\nname = \"a\"\nleaf = 1\n[[step]]\nop = \"expect\"\nlive = 2\n",
			index:   1,
			wantErr: ErrExpectation,
		},
		{
			name:    "Expected error did not happen",
			src:     "[[step]]\nop = \"alloc\"\nname = \"a\"\nerror = \"out_of_memory\"\n",
			index:   0,
			wantErr: ErrExpectation,
		},
		{
			name: "Stale name after gc",
			src: "[[step]]\nop = \"alloc\"\nname = \"a\"\nleaf = 1\n" +
				"[[step]]\nop = \"push\"\nname = \"a\"\n" +
				"[[step]]\nop = \"gc\"\n" +
				"[[step]]\nop = \"push\"\nname = \"a\"\n",
			index:   3,
			wantErr: heap.ErrStaleHandle,
		},
		{
			name:    "Uninitialised root",
			src:     "[[step]]\nop = \"alloc\"\nname = \"a\"\n[[step]]\nop = \"push\"\nname = \"a\"\n[[step]]\nop = \"gc\"\n",
			index:   2,
			wantErr: heap.ErrBadTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustParse(t, tt.src)
			err := Run(p, newCollector(t, p), Hooks{})

			var se *StepError
			if !errors.As(err, &se) {
				t.Fatalf("Expected StepError, got %v", err)
			}
			if se.Index != tt.index {
				t.Errorf("Expected failure at step %d, got %d", tt.index, se.Index)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpectedErrors(t *testing.T) {
	src := `
[heap]
semispace = 2
roots = 1

[[step]]
op = "alloc"
name = "a"
leaf = 1
[[step]]
op = "alloc"
name = "b"
ref = "a"
[[step]]
op = "alloc"
name = "c"
error = "out_of_memory"
[[step]]
op = "push"
name = "b"
[[step]]
op = "push"
name = "a"
error = "stack_overflow"
[[step]]
op = "gc"
[[step]]
op = "peek"
name = "b"
[[step]]
op = "set"
name = "b"
leaf = 9
[[step]]
op = "gc"
[[step]]
op = "expect"
live = 1
depth = 1
[[step]]
op = "pop"
[[step]]
op = "pop"
error = "stack_underflow"
`
	p := mustParse(t, src)
	c := newCollector(t, p)

	if err := Run(p, c, Hooks{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if c.Occupancy().Capacity != 2 {
		t.Errorf("Expected program heap size 2, got %d", c.Occupancy().Capacity)
	}
}

func TestDumpHookError(t *testing.T) {
	p := mustParse(t, "[[step]]\nop = \"dump\"\nlabel = \"x\"\n")
	boom := errors.New("boom")

	err := Run(p, newCollector(t, p), Hooks{
		Dump: func(int, string, heap.Snapshot) error { return boom },
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected hook error, got %v", err)
	}
}

func TestErrorKinds(t *testing.T) {
	kinds := ErrorKinds()
	if len(kinds) != len(errorKinds) {
		t.Fatalf("Expected %d kinds, got %d", len(errorKinds), len(kinds))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Errorf("Expected sorted kinds, got %v", kinds)
		}
	}
}
