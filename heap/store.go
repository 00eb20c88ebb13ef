// ABOUTME: Store is a bump allocator over two equal fixed-capacity semispaces
// ABOUTME: Exactly one semispace is active; a collection flips between them

package heap

import "fmt"

// Store holds the two semispaces. Allocation bumps a cursor through the
// active one; there is no per-chunk free.
type Store struct {
	spaces [2][]chunk
	active int
	cursor uint32
	epoch  uint32
}

// NewStore creates a store whose semispaces each hold capacity chunks.
func NewStore(capacity int) *Store {
	return &Store{
		spaces: [2][]chunk{
			make([]chunk, capacity),
			make([]chunk, capacity),
		},
	}
}

// Allocate hands out the next free slot of the active semispace. The chunk
// has no payload until one is set.
func (s *Store) Allocate() (Handle, error) {
	space := s.spaces[s.active]
	if int(s.cursor) >= len(space) {
		return Handle{}, fmt.Errorf("allocating chunk %d of %d: %w", s.cursor+1, len(space), ErrOutOfMemory)
	}
	space[s.cursor] = chunk{}
	h := Handle{index: s.cursor, epoch: s.epoch}
	s.cursor++
	return h, nil
}

// Len returns the number of occupied slots in the active semispace.
func (s *Store) Len() int { return int(s.cursor) }

// Cap returns the capacity of one semispace.
func (s *Store) Cap() int { return len(s.spaces[s.active]) }

// Free returns the number of slots still available for allocation.
func (s *Store) Free() int { return s.Cap() - s.Len() }

// Epoch returns the number of completed flips.
func (s *Store) Epoch() uint32 { return s.epoch }

// Get returns the payload of the chunk named by h.
func (s *Store) Get(h Handle) (Payload, error) {
	c, err := s.lookup(h)
	if err != nil {
		return nil, err
	}
	return c.payload, nil
}

// Set replaces the payload of the chunk named by h. A Ref payload must name a
// chunk of the active semispace.
func (s *Store) Set(h Handle, p Payload) error {
	c, err := s.lookup(h)
	if err != nil {
		return err
	}
	switch v := p.(type) {
	case Leaf:
	case Ref:
		if err := s.check(v.Target()); err != nil {
			return fmt.Errorf("reference target: %w", err)
		}
	default:
		return fmt.Errorf("setting chunk %s: %w", h, ErrBadTag)
	}
	c.payload = p
	return nil
}

// check validates that h names an occupied slot of the current epoch.
func (s *Store) check(h Handle) error {
	if h.epoch != s.epoch {
		return fmt.Errorf("handle %s, current epoch %d: %w", h, s.epoch, ErrStaleHandle)
	}
	if h.index >= s.cursor {
		return fmt.Errorf("handle %s, %d chunks allocated: %w", h, s.cursor, ErrInvalidHandle)
	}
	return nil
}

func (s *Store) lookup(h Handle) (*chunk, error) {
	if err := s.check(h); err != nil {
		return nil, err
	}
	return &s.spaces[s.active][h.index], nil
}

// from and to are the semispaces seen by a collection in progress.
func (s *Store) from() []chunk { return s.spaces[s.active][:s.cursor] }
func (s *Store) to() []chunk   { return s.spaces[1-s.active] }

// flip makes the to-space active with cursor slots occupied. The old space
// is wiped so no forwarding state survives the collection.
func (s *Store) flip(cursor uint32) {
	clear(s.spaces[s.active])
	s.active = 1 - s.active
	s.cursor = cursor
	s.epoch++
}

// each calls fn for every occupied slot of the active semispace in order.
func (s *Store) each(fn func(h Handle, p Payload)) {
	for i, c := range s.from() {
		fn(Handle{index: uint32(i), epoch: s.epoch}, c.payload)
	}
}
