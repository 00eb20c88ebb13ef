// ABOUTME: RootStack is the bounded LIFO of handles the client declares live
// ABOUTME: The collector rewrites entries in place when it relocates chunks

package heap

import "fmt"

// RootStack holds root handles, bottom first. Entries are not deduplicated.
type RootStack struct {
	entries []Handle
	limit   int
}

// NewRootStack creates an empty stack holding at most limit entries.
func NewRootStack(limit int) *RootStack {
	return &RootStack{
		entries: make([]Handle, 0, limit),
		limit:   limit,
	}
}

// Push appends h as the new top.
func (r *RootStack) Push(h Handle) error {
	if len(r.entries) >= r.limit {
		return fmt.Errorf("pushing %s onto %d roots: %w", h, r.limit, ErrStackOverflow)
	}
	r.entries = append(r.entries, h)
	return nil
}

// Pop removes and discards the top entry.
func (r *RootStack) Pop() error {
	if len(r.entries) == 0 {
		return ErrStackUnderflow
	}
	r.entries = r.entries[:len(r.entries)-1]
	return nil
}

// Peek returns the top entry without removing it.
func (r *RootStack) Peek() (Handle, error) {
	if len(r.entries) == 0 {
		return Handle{}, ErrStackUnderflow
	}
	return r.entries[len(r.entries)-1], nil
}

// Len returns the number of entries.
func (r *RootStack) Len() int { return len(r.entries) }

// Cap returns the maximum number of entries.
func (r *RootStack) Cap() int { return r.limit }

// At returns entry i, where 0 is the bottom of the stack.
func (r *RootStack) At(i int) Handle { return r.entries[i] }

// Handles returns a copy of the entries, bottom first.
func (r *RootStack) Handles() []Handle {
	out := make([]Handle, len(r.entries))
	copy(out, r.entries)
	return out
}

// rewrite replaces every entry, bottom to top, with fn's result. It stops at
// the first error.
func (r *RootStack) rewrite(fn func(Handle) (Handle, error)) error {
	for i, h := range r.entries {
		moved, err := fn(h)
		if err != nil {
			return fmt.Errorf("root %d (%s): %w", i, h, err)
		}
		r.entries[i] = moved
	}
	return nil
}
