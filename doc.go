// Package buddy implements a fixed-capacity buddy memory allocator over a
// single contiguous byte arena owned by the Allocator.
//
// Given a heap size M and a minimum block size B (both powers of two, with
// M a multiple of B), an Allocator subdivides the arena into power-of-two
// blocks and serves AllocBytes/Free requests against a binary buddy tree.
// The tree's own nodes come from a fixed-size node pool owned by the
// Allocator rather than from a Go allocation per node. The arena bytes and
// the pool's cells are each allocated once, by New or Init, as slices
// referenced from the Allocator; they are not stored inline in the
// Allocator value, and no further allocation happens after construction.
//
// An Allocator is not safe for concurrent use; callers sharing one across
// goroutines must serialize access with an external sync.Mutex.
package buddy
