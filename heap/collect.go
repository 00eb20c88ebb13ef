// ABOUTME: Cheney-style stop-the-world copying collection between the two semispaces
// ABOUTME: Forwarding indices guarantee each live chunk is copied exactly once

package heap

import (
	"fmt"
	"time"
)

// Phase is the state of a collection.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRoots
	PhaseScan
	PhaseFlipped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRoots:
		return "roots"
	case PhaseScan:
		return "scan"
	case PhaseFlipped:
		return "flipped"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Stats describes one collection. The counters are diagnostic only.
type Stats struct {
	Epoch           uint32        // epoch after the collection
	Roots           int           // root entries rewritten
	RootsRelocated  int           // roots whose chunk was copied (not already forwarded)
	ChunksRelocated int           // chunks copied into the to-space
	RefsRewritten   int           // reference payloads rewritten during the scan
	Live            int           // occupied slots after the collection
	Reclaimed       int           // occupied slots before minus Live
	Duration        time.Duration // wall time
}

// Collect relocates every chunk reachable from the root stack into the
// inactive semispace and makes it active. Handles not held on the root stack
// are stale afterwards. A failure leaves the collector unusable.
func (c *Collector) Collect() (Stats, error) {
	if err := c.usable(); err != nil {
		return Stats{}, err
	}

	c.log.Info("starting collection", "epoch", c.store.Epoch(), "used", c.store.Len(), "roots", c.roots.Len())
	start := time.Now()

	st, err := c.collect()
	st.Duration = time.Since(start)
	c.phase = PhaseIdle
	if err != nil {
		c.err = err
		c.log.Errorf("collection failed: %s", err)
		return st, err
	}

	c.last = st
	c.log.Info("collection finished",
		"epoch", st.Epoch,
		"live", st.Live,
		"reclaimed", st.Reclaimed,
		"copied", st.ChunksRelocated,
		"duration", st.Duration)
	return st, nil
}

func (c *Collector) collect() (Stats, error) {
	from := c.store.from()
	to := c.store.to()
	epoch := c.store.Epoch() + 1

	st := Stats{Epoch: epoch}
	var free uint32

	// evacuate returns the to-space index of from[idx], copying it on the
	// first visit.
	evacuate := func(idx uint32) (uint32, error) {
		if int(idx) >= len(from) {
			return 0, fmt.Errorf("from-space slot %d of %d: %w", idx, len(from), ErrInvalidHandle)
		}
		src := &from[idx]
		if src.moved {
			return src.forward, nil
		}
		switch src.payload.(type) {
		case Leaf, Ref:
		default:
			return 0, fmt.Errorf("from-space slot %d: %w", idx, ErrBadTag)
		}
		if int(free) >= len(to) {
			return 0, fmt.Errorf("to-space full at %d chunks: %w", free, ErrOutOfMemory)
		}
		to[free] = chunk{payload: src.payload}
		src.forward = free
		src.moved = true
		free++
		st.ChunksRelocated++
		c.log.Debugf("relocated %d -> %d", idx, src.forward)
		return src.forward, nil
	}

	c.phase = PhaseRoots
	c.log.Debug("copying roots", "roots", c.roots.Len())
	err := c.roots.rewrite(func(h Handle) (Handle, error) {
		before := st.ChunksRelocated
		idx, err := evacuate(h.index)
		if err != nil {
			return h, err
		}
		st.Roots++
		if st.ChunksRelocated > before {
			st.RootsRelocated++
		}
		return Handle{index: idx, epoch: epoch}, nil
	})
	if err != nil {
		return st, fmt.Errorf("copying roots: %w", err)
	}

	c.phase = PhaseScan
	c.log.Debug("scanning chunks", "copied", free)
	for scan := uint32(0); scan < free; scan++ {
		switch p := to[scan].payload.(type) {
		case Leaf:
		case Ref:
			idx, err := evacuate(p.index)
			if err != nil {
				return st, fmt.Errorf("scanning slot %d: %w", scan, err)
			}
			to[scan].payload = Ref{index: idx, epoch: epoch}
			st.RefsRewritten++
		default:
			return st, fmt.Errorf("scanning slot %d: %w", scan, ErrBadTag)
		}
	}

	st.Live = int(free)
	st.Reclaimed = len(from) - st.Live
	c.store.flip(free)
	c.phase = PhaseFlipped
	return st, nil
}
