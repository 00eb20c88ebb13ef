// ABOUTME: Collector owns a semispace store and a root stack and exposes the mutator API
// ABOUTME: Handles are validated here before they reach the store or the roots

package heap

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

// Collector is one independent two-space heap. It is not safe for concurrent
// use; a host running several goroutines must stop them around Collect.
type Collector struct {
	id    uuid.UUID
	store *Store
	roots *RootStack
	phase Phase
	last  Stats
	err   error
	log   commonlog.Logger
}

// New creates a collector with empty semispaces and an empty root stack.
func New(cfg Config) (*Collector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	log := cfg.Logger
	if log == nil {
		log = commonlog.GetLogger("twospace.heap")
	}

	return &Collector{
		id:    id,
		store: NewStore(cfg.SemispaceSize),
		roots: NewRootStack(cfg.RootStackSize),
		log:   commonlog.NewKeyValueLogger(log, "heap", id.String()),
	}, nil
}

// ID returns the collector's instance identifier.
func (c *Collector) ID() uuid.UUID { return c.id }

// Epoch returns the number of completed collections.
func (c *Collector) Epoch() uint32 { return c.store.Epoch() }

// Phase returns the current collection phase.
func (c *Collector) Phase() Phase { return c.phase }

// LastStats returns the statistics of the most recent collection.
func (c *Collector) LastStats() Stats { return c.last }

// Err returns the error that made the collector unusable, if any.
func (c *Collector) Err() error { return c.err }

func (c *Collector) usable() error {
	if c.err != nil {
		return fmt.Errorf("%w: %w", ErrUnusable, c.err)
	}
	return nil
}

// Allocate returns a fresh chunk with no payload.
func (c *Collector) Allocate() (Handle, error) {
	if err := c.usable(); err != nil {
		return Handle{}, err
	}
	return c.store.Allocate()
}

// AllocLeaf allocates a chunk holding v.
func (c *Collector) AllocLeaf(v uint64) (Handle, error) {
	h, err := c.Allocate()
	if err != nil {
		return Handle{}, err
	}
	return h, c.store.Set(h, Leaf(v))
}

// AllocRef allocates a chunk referencing target.
func (c *Collector) AllocRef(target Handle) (Handle, error) {
	if err := c.usable(); err != nil {
		return Handle{}, err
	}
	// Validate first so a bad target does not consume a slot.
	if err := c.store.check(target); err != nil {
		return Handle{}, fmt.Errorf("reference target: %w", err)
	}
	h, err := c.store.Allocate()
	if err != nil {
		return Handle{}, err
	}
	return h, c.store.Set(h, Ref(target))
}

// Set replaces the payload of h.
func (c *Collector) Set(h Handle, p Payload) error {
	if err := c.usable(); err != nil {
		return err
	}
	return c.store.Set(h, p)
}

// SetLeaf makes h an integer leaf holding v.
func (c *Collector) SetLeaf(h Handle, v uint64) error {
	return c.Set(h, Leaf(v))
}

// SetRef makes h a reference to target, which may be h itself.
func (c *Collector) SetRef(h, target Handle) error {
	return c.Set(h, Ref(target))
}

// Get returns the payload of h; nil if none was set.
func (c *Collector) Get(h Handle) (Payload, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	return c.store.Get(h)
}

// Deref follows the reference held by h.
func (c *Collector) Deref(h Handle) (Handle, error) {
	p, err := c.Get(h)
	if err != nil {
		return Handle{}, err
	}
	switch v := p.(type) {
	case Ref:
		return v.Target(), nil
	case Leaf:
		return Handle{}, fmt.Errorf("dereferencing %s: %w", h, ErrNotReference)
	default:
		return Handle{}, fmt.Errorf("dereferencing %s: %w", h, ErrBadTag)
	}
}

// Push registers h as a root.
func (c *Collector) Push(h Handle) error {
	if err := c.usable(); err != nil {
		return err
	}
	if err := c.store.check(h); err != nil {
		return err
	}
	return c.roots.Push(h)
}

// Pop unregisters the most recently pushed root.
func (c *Collector) Pop() error {
	if err := c.usable(); err != nil {
		return err
	}
	return c.roots.Pop()
}

// Peek returns the most recently pushed root. After a collection this is the
// way to recover a current handle for a root.
func (c *Collector) Peek() (Handle, error) {
	if err := c.usable(); err != nil {
		return Handle{}, err
	}
	return c.roots.Peek()
}

// Depth returns the number of roots.
func (c *Collector) Depth() int { return c.roots.Len() }

// Roots returns a copy of the root stack, bottom first.
func (c *Collector) Roots() []Handle { return c.roots.Handles() }

// Chunks calls fn for every occupied slot of the active semispace, in slot
// order, including garbage not yet reclaimed.
func (c *Collector) Chunks(fn func(h Handle, p Payload)) {
	c.store.each(fn)
}
