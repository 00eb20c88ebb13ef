// ABOUTME: Sentinel errors reported by the store, root stack and collector
// ABOUTME: Callers match them with errors.Is; context is added by wrapping

package heap

import "errors"

var (
	// ErrOutOfMemory is returned when a semispace has no free slot left
	ErrOutOfMemory = errors.New("out of memory")

	// ErrStackOverflow is returned when pushing onto a full root stack
	ErrStackOverflow = errors.New("root stack overflow")

	// ErrStackUnderflow is returned when popping or peeking an empty root stack
	ErrStackUnderflow = errors.New("root stack underflow")

	// ErrBadTag is returned when a chunk without a valid payload is reached
	ErrBadTag = errors.New("bad chunk tag")

	// ErrNotReference is returned when dereferencing a leaf chunk
	ErrNotReference = errors.New("chunk is not a reference")

	// ErrInvalidHandle is returned for a handle outside the occupied slots
	ErrInvalidHandle = errors.New("invalid chunk handle")

	// ErrStaleHandle is returned for a handle from before the last collection
	ErrStaleHandle = errors.New("stale chunk handle")

	// ErrInvalidConfig is returned by New for unusable sizes
	ErrInvalidConfig = errors.New("invalid heap configuration")

	// ErrUnusable is returned by every operation after a failed collection
	ErrUnusable = errors.New("collector is unusable")
)
