package tensor

import (
	"fmt"
	"math"
	"sync"
	"unsafe"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// MaxAllocation is the largest payload, in bytes, the HeapAllocator hands out:
// 4 GiB, or math.MaxInt where int is 32 bits wide.
const MaxAllocation = min(math.MaxInt, 1<<32)

// Allocator hands out zeroed payload blocks and takes them back.
//
// Every container payload comes from exactly one Allocate call and is returned
// with exactly one Free call, using the same allocator.
type Allocator interface {
	Allocate(size int) ([]byte, error)
	Free(buf []byte)
}

// HeapAllocator allocates zeroed, 8-byte aligned blocks on the Go heap.
// Free is a no-op; the garbage collector reclaims released blocks.
type HeapAllocator struct{}

// Allocate returns a zeroed block of size bytes.
func (HeapAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 || size > MaxAllocation {
		return nil, AllocationError("HeapAllocator.Allocate", size,
			fmt.Errorf("size %d outside (0, %d]", size, MaxAllocation))
	}
	// Back the block with uint64 words so typed views over it are aligned.
	words := make([]uint64, (size+7)/8)
	//nolint:gosec // unsafe.Slice reinterprets the word buffer as bytes, length bounded by cap
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size), nil
}

// Free does nothing.
func (HeapAllocator) Free([]byte) {}

var defaultAllocator Allocator = HeapAllocator{}

// DefaultAllocator returns the allocator used when Options leave it unset.
func DefaultAllocator() Allocator {
	return defaultAllocator
}

// AllocStats is a snapshot of a TrackingAllocator.
type AllocStats struct {
	Allocations int // successful Allocate calls
	Frees       int // Free calls
	LiveBlocks  int
	LiveBytes   int
	PeakBytes   int
	IndexBytes  int // index-table bytes of live blocks, charged against Limit
	Failures    int // Allocate calls refused
}

// TrackingAllocator wraps another allocator and records every block it hands
// out. It can refuse allocations past Limit bytes of live memory, which makes
// allocation failure reproducible in tests and bounds what an untrusted
// stream can make the process allocate. The Go-heap index tables of matrices
// and tensors built on it count toward Limit too.
type TrackingAllocator struct {
	Base  Allocator // defaults to HeapAllocator
	Limit int       // max live bytes; 0 means unlimited

	mu    sync.Mutex
	live  map[*byte]int
	stats AllocStats
}

// NewTrackingAllocator creates a tracking allocator over the heap.
func NewTrackingAllocator(limit int) *TrackingAllocator {
	return &TrackingAllocator{Base: HeapAllocator{}, Limit: limit}
}

// Allocate records and returns a block from the base allocator.
func (a *TrackingAllocator) Allocate(size int) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Limit > 0 && a.stats.LiveBytes+a.stats.IndexBytes+size > a.Limit {
		a.stats.Failures++
		return nil, AllocationError("TrackingAllocator.Allocate", size,
			fmt.Errorf("limit %d bytes, %d live", a.Limit, a.stats.LiveBytes))
	}

	base := a.Base
	if base == nil {
		base = HeapAllocator{}
	}
	buf, err := base.Allocate(size)
	if err != nil {
		a.stats.Failures++
		return nil, err
	}

	if a.live == nil {
		a.live = make(map[*byte]int)
	}
	a.live[&buf[0]] = size
	a.stats.Allocations++
	a.stats.LiveBlocks++
	a.stats.LiveBytes += size
	a.stats.PeakBytes = max(a.stats.PeakBytes, a.stats.LiveBytes)
	return buf, nil
}

// Free forgets buf and hands it back to the base allocator.
// Freeing a block this allocator does not own panics.
func (a *TrackingAllocator) Free(buf []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(buf) == 0 {
		panic("tensor: free of empty block")
	}
	key := &buf[0]
	size, ok := a.live[key]
	if !ok {
		panic("tensor: free of block not owned by this allocator (double free?)")
	}
	delete(a.live, key)
	a.stats.Frees++
	a.stats.LiveBlocks--
	a.stats.LiveBytes -= size

	if a.Base != nil {
		a.Base.Free(buf)
	}
}

// reserve charges size bytes of index tables against Limit.
func (a *TrackingAllocator) reserve(size int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Limit > 0 && a.stats.LiveBytes+a.stats.IndexBytes+size > a.Limit {
		a.stats.Failures++
		return fmt.Errorf("index tables need %d bytes, limit %d bytes, %d live",
			size, a.Limit, a.stats.LiveBytes+a.stats.IndexBytes)
	}
	a.stats.IndexBytes += size
	a.stats.PeakBytes = max(a.stats.PeakBytes, a.stats.LiveBytes+a.stats.IndexBytes)
	return nil
}

// unreserve returns index-table bytes charged by reserve.
func (a *TrackingAllocator) unreserve(size int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.IndexBytes -= size
}

// Stats returns a snapshot of the counters.
func (a *TrackingAllocator) Stats() AllocStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Live returns the number of blocks allocated but not yet freed.
func (a *TrackingAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats.LiveBlocks
}

// Leaks returns one error per live block, or nil when everything was freed.
func (a *TrackingAllocator) Leaks() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var err error
	for p, size := range a.live {
		err = multierr.Append(err, fmt.Errorf("leaked block %p (%d bytes)", p, size))
	}
	return err
}

// AllocationSize returns the payload size in bytes of a block of the given
// kind and extents, one sentinel slot per axis included.
func AllocationSize(kind Kind, extents ...int) (int, error) {
	if !kind.Valid() {
		return 0, &Error{Kind: KindUnsupportedElementType, Op: "AllocationSize", Detail: "unknown kind"}
	}
	size := kind.Size()
	for _, e := range extents {
		if e < 0 {
			return 0, AllocationError("AllocationSize", 0, fmt.Errorf("negative extent %d", e))
		}
		if size > math.MaxInt/(e+1) {
			return 0, AllocationError("AllocationSize", 0, fmt.Errorf("size overflow for extents %v", extents))
		}
		size *= e + 1
	}
	return size, nil
}

// indexBudget is implemented by allocators that also account for the index
// tables of the blocks they back.
type indexBudget interface {
	reserve(size int) error
	unreserve(size int)
}

// IndexTableSize returns the bytes of Go-heap index tables a block of the
// given layout and extents carries: none for vectors, one entry per leading
// line for matrices, and a second table of fibre starts for tensors.
func IndexTableSize(layout Layout, extents ...int) (int, error) {
	if len(extents) < 2 {
		return 0, nil
	}
	for _, e := range extents {
		if e < 0 {
			return 0, AllocationError("IndexTableSize", 0, fmt.Errorf("negative extent %d", e))
		}
	}
	lead, inner := layout.physical(extents[0], extents[1])
	entries := lead + 1
	if len(extents) == 3 {
		if lead+1 > (math.MaxInt-entries)/(inner+1) {
			return 0, AllocationError("IndexTableSize", 0, fmt.Errorf("size overflow for extents %v", extents))
		}
		entries += (lead + 1) * (inner + 1)
	}
	const word = int(unsafe.Sizeof(int(0)))
	if entries > math.MaxInt/word {
		return 0, AllocationError("IndexTableSize", 0, fmt.Errorf("size overflow for extents %v", extents))
	}
	return entries * word, nil
}

// reserveIndex charges size bytes of index tables to alloc when it keeps a
// budget.
func reserveIndex(alloc Allocator, op string, size int) error {
	budget, ok := alloc.(indexBudget)
	if !ok || size == 0 {
		return nil
	}
	if err := budget.reserve(size); err != nil {
		Logger().Debug("index reservation failed", zap.String("op", op), zap.Int("bytes", size), zap.Error(err))
		return AllocationError(op, size, err)
	}
	return nil
}

// unreserveIndex undoes reserveIndex.
func unreserveIndex(alloc Allocator, size int) {
	if budget, ok := alloc.(indexBudget); ok && size > 0 {
		budget.unreserve(size)
	}
}

// allocate obtains a block of size bytes from alloc, logging the outcome.
func allocate(alloc Allocator, op string, size int) ([]byte, error) {
	buf, err := alloc.Allocate(size)
	if err != nil {
		Logger().Debug("allocation failed", zap.String("op", op), zap.Int("bytes", size), zap.Error(err))
		return nil, AllocationError(op, size, err)
	}
	if len(buf) < size {
		if len(buf) > 0 {
			alloc.Free(buf)
		}
		return nil, AllocationError(op, size, fmt.Errorf("allocator returned %d bytes", len(buf)))
	}
	Logger().Debug("allocated", zap.String("op", op), zap.Int("bytes", size))
	return buf[:size], nil
}
