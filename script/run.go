// ABOUTME: Executes driver programs against a collector
// ABOUTME: Names bind handles; a step failure stops the run and reports the step

package script

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/prateek/twospace/heap"
)

var (
	// ErrExpectation is returned when an expect step or an expected error does not hold
	ErrExpectation = errors.New("expectation failed")

	// ErrUnbound is returned when a step uses a name no earlier step bound
	ErrUnbound = errors.New("unbound name")
)

var log = commonlog.GetLogger("twospace.script")

// Hooks receive a program's observable events. Nil hooks are skipped.
type Hooks struct {
	// Dump is called by dump steps.
	Dump func(step int, label string, snap heap.Snapshot) error

	// Collected is called after every successful gc step.
	Collected func(step int, st heap.Stats)
}

// StepError reports the step a run stopped at.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %s", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

type runner struct {
	c     *heap.Collector
	hooks Hooks
	names map[string]heap.Handle
}

// Run executes p's steps in order on c.
func Run(p *Program, c *heap.Collector, hooks Hooks) error {
	r := &runner{c: c, hooks: hooks, names: make(map[string]heap.Handle)}

	for i, s := range p.Steps {
		log.Debug("running step", "index", i, "op", s.Op, "name", s.Name)
		err := r.step(i, s)
		if s.Error != "" {
			want := errorKinds[s.Error]
			switch {
			case errors.Is(err, want):
				log.Debugf("step %d failed as expected: %s", i, err)
				err = nil
			case err == nil:
				err = fmt.Errorf("expected %s error: %w", s.Error, ErrExpectation)
			default:
				err = fmt.Errorf("expected %s error, got %w", s.Error, err)
			}
		}
		if err != nil {
			return &StepError{Index: i, Op: s.Op, Err: err}
		}
	}
	return nil
}

func (r *runner) lookup(name string) (heap.Handle, error) {
	h, ok := r.names[name]
	if !ok {
		return heap.Handle{}, fmt.Errorf("%q: %w", name, ErrUnbound)
	}
	return h, nil
}

func (r *runner) step(i int, s Step) error {
	switch s.Op {
	case OpAlloc:
		return r.alloc(s)
	case OpSet:
		return r.set(s)
	case OpPush:
		h, err := r.lookup(s.Name)
		if err != nil {
			return err
		}
		return r.c.Push(h)
	case OpPop:
		return r.c.Pop()
	case OpPeek:
		h, err := r.c.Peek()
		if err != nil {
			return err
		}
		r.names[s.Name] = h
		return nil
	case OpGC:
		st, err := r.c.Collect()
		if err != nil {
			return err
		}
		if r.hooks.Collected != nil {
			r.hooks.Collected(i, st)
		}
		return nil
	case OpDump:
		if r.hooks.Dump == nil {
			return nil
		}
		return r.hooks.Dump(i, s.Label, r.c.Snapshot())
	case OpExpect:
		return r.expect(s)
	default:
		return fmt.Errorf("unknown op %q: %w", s.Op, ErrInvalidProgram)
	}
}

func (r *runner) alloc(s Step) error {
	var h heap.Handle
	var err error

	switch {
	case s.Leaf != nil:
		h, err = r.c.AllocLeaf(*s.Leaf)
	case s.Ref != "":
		target, lerr := r.lookup(s.Ref)
		if lerr != nil {
			return lerr
		}
		h, err = r.c.AllocRef(target)
	default:
		h, err = r.c.Allocate()
	}
	if err != nil {
		return err
	}
	r.names[s.Name] = h
	return nil
}

func (r *runner) set(s Step) error {
	h, err := r.lookup(s.Name)
	if err != nil {
		return err
	}
	if s.Leaf != nil {
		return r.c.SetLeaf(h, *s.Leaf)
	}
	target, err := r.lookup(s.Ref)
	if err != nil {
		return err
	}
	return r.c.SetRef(h, target)
}

func (r *runner) expect(s Step) error {
	if s.Live != nil {
		if used := r.c.Occupancy().Used; used != *s.Live {
			return fmt.Errorf("live: expected %d, got %d: %w", *s.Live, used, ErrExpectation)
		}
	}
	if s.Depth != nil {
		if depth := r.c.Depth(); depth != *s.Depth {
			return fmt.Errorf("depth: expected %d, got %d: %w", *s.Depth, depth, ErrExpectation)
		}
	}
	return nil
}
