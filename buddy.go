package buddy

import (
	"fmt"
	"unsafe"
)

// Allocator is a fixed-capacity buddy allocator over an embedded arena.
//
// The zero value is not ready to use: either construct one with New, or
// declare a zero-value Allocator (on the stack, as a struct field, or as a
// package-level var) and call Init on it exactly once before first use.
// Do not copy an Allocator after it has been initialised: two copies would
// each believe they own the same node pool and free-byte counter and would
// drift out of sync with each other.
type Allocator struct {
	arena      []byte
	base       unsafe.Pointer
	upperBound uintptr

	pool nodePool
	root blockNode

	minBlock  int
	heapSize  int
	totalFree int
}

// New allocates and initialises an Allocator on the heap, returning a
// stable handle to it. This is the "boxed" construction path; see Init for
// the in-place alternative used for stack or static placement.
func New(heapSize, minBlock int, zeroInit bool) (*Allocator, error) {
	a := new(Allocator)
	if err := a.Init(heapSize, minBlock, zeroInit); err != nil {
		return nil, err
	}
	return a, nil
}

// Init establishes the arena, node pool and root block of a zero-value
// Allocator. heapSize (M) and minBlock (B) must both be powers of two with
// heapSize a multiple of minBlock; otherwise Init returns a descriptive
// error and leaves the Allocator unusable.
//
// zeroInit requests that the arena bytes be zero-filled; Go's runtime
// always zero-fills freshly allocated memory, so this flag is honoured
// regardless of its value, unlike an implementation over raw, possibly
// garbage-filled memory.
func (a *Allocator) Init(heapSize, minBlock int, zeroInit bool) error {
	if heapSize <= 0 || heapSize&(heapSize-1) != 0 {
		return fmt.Errorf("buddy: heap size must be a power of two, got %d", heapSize)
	}
	if minBlock <= 0 || minBlock&(minBlock-1) != 0 {
		return fmt.Errorf("buddy: block size must be a power of two, got %d", minBlock)
	}
	if minBlock > heapSize {
		return fmt.Errorf("buddy: block size (%d) must be <= heap size (%d)", minBlock, heapSize)
	}
	if heapSize%minBlock != 0 {
		return fmt.Errorf("buddy: heap size (%d) must be a multiple of block size (%d)", heapSize, minBlock)
	}

	arena := make([]byte, heapSize)
	nodeCount := 2*(heapSize/minBlock) - 1

	a.arena = arena
	a.base = unsafe.Pointer(&arena[0])
	a.upperBound = uintptr(a.base) + uintptr(heapSize)
	a.minBlock = minBlock
	a.heapSize = heapSize
	a.pool = newNodePool(nodeCount)
	a.root = freeLeaf(0, heapSize)
	a.totalFree = heapSize
	return nil
}

// AllocBytes allocates a block of memory big enough to hold size bytes,
// returning a pointer to its start within the arena.
func (a *Allocator) AllocBytes(size int) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, ErrZeroAllocation
	}
	if size > a.totalFree {
		return nil, ErrOutOfMemory
	}

	offset, consumed, ok := a.root.alloc(size, a.minBlock, &a.pool)
	if !ok {
		return nil, ErrOutOfMemory
	}

	a.totalFree -= consumed
	return unsafe.Add(a.base, offset), nil
}

// Alloc allocates a block of memory big enough to hold one T, returning a
// pointer to it. The returned pointer is suitably aligned for T only when
// the allocator's minBlock is at least as large as alignof(T); callers
// that need a stricter guarantee must choose minBlock accordingly, since
// honouring arbitrary alignment is outside this package's scope.
func Alloc[T any](a *Allocator) (*T, error) {
	var zero T
	ptr, err := a.AllocBytes(int(unsafe.Sizeof(zero)))
	if err != nil {
		return nil, err
	}
	return (*T)(ptr), nil
}

// Free returns the block at ptr to the allocator. ptr must be a pointer
// previously returned by AllocBytes or Alloc on this same Allocator, or
// nil.
func (a *Allocator) Free(ptr unsafe.Pointer) error {
	if ptr == nil {
		return ErrNullPtrFree
	}
	return a.freeAt(ptr)
}

// FreeValue returns the block backing *ptr to the allocator. ptr must be a
// pointer previously returned by Alloc[T] on this same Allocator, or nil.
func FreeValue[T any](a *Allocator, ptr *T) error {
	if ptr == nil {
		return ErrNullPtrFree
	}
	return a.freeAt(unsafe.Pointer(ptr))
}

func (a *Allocator) freeAt(ptr unsafe.Pointer) error {
	addr := uintptr(ptr)
	base := uintptr(a.base)
	if addr < base || addr >= a.upperBound {
		return ErrFreeOutOfBounds
	}

	offset := int(addr - base)
	released, err := a.root.free(offset, &a.pool)
	if err != nil {
		return err
	}

	a.totalFree += released
	return nil
}

// TotalFree returns the total amount of free memory in the heap. Note that
// this memory may not be usable as a single allocation because of
// fragmentation.
func (a *Allocator) TotalFree() int {
	return a.totalFree
}

// HeapSize returns the total size of the allocator's heap (M).
func (a *Allocator) HeapSize() int {
	return a.heapSize
}

// TotalAllocated returns the amount of memory currently in use.
func (a *Allocator) TotalAllocated() int {
	return a.heapSize - a.totalFree
}

// FreeAll resets the allocator to a single free block spanning the whole
// arena. It is unsafe: every pointer previously returned by AllocBytes or
// Alloc becomes dangling and must not be dereferenced or freed again.
func (a *Allocator) FreeAll() {
	a.pool.freeAll()
	a.root = freeLeaf(0, a.heapSize)
	a.totalFree = a.heapSize
}
