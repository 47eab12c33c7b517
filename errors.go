package buddy

import "errors"

// Alloc errors are returned by AllocBytes and Alloc.
var (
	// ErrOutOfMemory is returned when the arena has no free block large
	// enough to satisfy the request.
	ErrOutOfMemory = errors.New("buddy: out of memory")
	// ErrZeroAllocation is returned when a zero-byte allocation is requested.
	ErrZeroAllocation = errors.New("buddy: zero-size allocation")
)

// Free errors are returned by Free and FreeValue.
var (
	// ErrDoubleFree is returned when a pointer that is already free is
	// freed again.
	ErrDoubleFree = errors.New("buddy: double free")
	// ErrUnalignedFree is returned when a pointer does not exactly match
	// the start of a live allocated block.
	ErrUnalignedFree = errors.New("buddy: unaligned free")
	// ErrNullPtrFree is returned when Free is called with a nil pointer.
	ErrNullPtrFree = errors.New("buddy: null pointer free")
	// ErrFreeOutOfBounds is returned when a pointer lies outside the arena.
	ErrFreeOutOfBounds = errors.New("buddy: free out of bounds")
)
