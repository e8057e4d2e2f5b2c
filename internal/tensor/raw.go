package tensor

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"
)

// RawBlock is the untyped container representation: a shape header, an
// element kind, a layout, one payload allocation and the index tables that
// stride into it.
//
// The payload holds (e0+1)*(e1+1)*(e2+1) slots for the axes present. Slot 0
// of every axis is a sentinel, so valid positions run from 1 to the extent.
// The index tables hold element offsets into the payload:
//
//	lead[i]          start of leading line i (rank 2) or of mid row group i (rank 3)
//	mid[lead[i]+j]   start of the depth fibre (i, j) (rank 3 only)
//
// Typed containers (Vector, Matrix, Tensor) are views over a RawBlock.
type RawBlock struct {
	header   Header
	kind     Kind
	layout   Layout
	data     []byte // payload, as returned by alloc
	lead     []int
	mid      []int
	alloc    Allocator
	index    int // index-table bytes reserved with alloc
	released bool
}

// NewRawBlock allocates a zeroed block for the given kind and extents
// (columns[, rows[, depths]]) and wires its index tables.
func NewRawBlock(kind Kind, layout Layout, alloc Allocator, extents ...int) (*RawBlock, error) {
	return newRawBlock("NewRawBlock", kind, layout, alloc, 0, extents...)
}

// newRawBlock allocates room for at least capacity slots past the sentinel on
// a rank-1 block; higher ranks ignore capacity.
func newRawBlock(op string, kind Kind, layout Layout, alloc Allocator, capacity int, extents ...int) (*RawBlock, error) {
	if !kind.Valid() {
		return nil, &Error{Kind: KindUnsupportedElementType, Op: op, Detail: fmt.Sprintf("unknown kind %d", kind)}
	}
	header, err := NewHeader(extents...)
	if err != nil {
		return nil, dimensionError(op, err.Error())
	}
	if alloc == nil {
		alloc = DefaultAllocator()
	}

	sizeExtents := extents
	if header.Rank == 1 && capacity > header.Columns() {
		sizeExtents = []int{capacity}
	}
	size, err := AllocationSize(kind, sizeExtents...)
	if err != nil {
		return nil, err
	}
	index, err := IndexTableSize(layout, extents...)
	if err != nil {
		return nil, err
	}
	if err := reserveIndex(alloc, op, index); err != nil {
		return nil, err
	}
	data, err := allocate(alloc, op, size)
	if err != nil {
		unreserveIndex(alloc, index)
		return nil, err
	}

	b := &RawBlock{
		header: header,
		kind:   kind,
		layout: layout,
		data:   data,
		alloc:  alloc,
		index:  index,
	}
	b.wire()
	return b, nil
}

// wire builds the index tables top-down from the header and layout.
func (b *RawBlock) wire() {
	b.lead, b.mid = nil, nil
	switch b.header.Rank {
	case 2:
		lead, inner := b.layout.physical(b.header.Columns(), b.header.Rows())
		b.lead = make([]int, lead+1)
		for i := range b.lead {
			b.lead[i] = i * (inner + 1)
		}
	case 3:
		lead, mid := b.layout.physical(b.header.Columns(), b.header.Rows())
		depths := b.header.Depths()
		b.lead = make([]int, lead+1)
		b.mid = make([]int, (lead+1)*(mid+1))
		for i := range b.lead {
			b.lead[i] = i * (mid + 1)
			for j := 0; j <= mid; j++ {
				b.mid[b.lead[i]+j] = (b.lead[i] + j) * (depths + 1)
			}
		}
	}
}

// Header returns the block's shape header.
func (b *RawBlock) Header() Header { return b.header }

// Kind returns the element kind.
func (b *RawBlock) Kind() Kind { return b.kind }

// Layout returns the storage layout.
func (b *RawBlock) Layout() Layout { return b.layout }

// ElemSize returns the byte size of one element.
func (b *RawBlock) ElemSize() int { return b.kind.Size() }

// Released reports whether Release has been called.
func (b *RawBlock) Released() bool { return b == nil || b.released }

// Capacity returns the number of payload slots the allocation can hold past
// the sentinel on a rank-1 block, and NumSlots for higher ranks.
func (b *RawBlock) Capacity() int {
	slots := len(b.data) / b.ElemSize()
	if b.header.Rank == 1 {
		return slots - 1
	}
	return slots
}

// Bytes returns the payload in use, sentinel slots included.
// WARNING: Direct access to underlying memory. Use with caution.
func (b *RawBlock) Bytes() []byte {
	return b.data[:b.header.NumSlots()*b.ElemSize()]
}

// Offset returns the element offset of the 1-based position idx.
// It panics if the block is released, the number of indices does not match
// the rank, or any index falls outside [1, extent].
func (b *RawBlock) Offset(idx ...int) int {
	if b.Released() {
		panic("tensor: access to released container")
	}
	if len(idx) != b.header.Rank {
		panic(fmt.Sprintf("tensor: %d indices for rank %d container", len(idx), b.header.Rank))
	}
	for axis, i := range idx {
		if i < 1 || i > b.header.Extents[axis] {
			panic(fmt.Sprintf("tensor: index %d out of range [1, %d] on axis %d",
				i, b.header.Extents[axis], axis))
		}
	}
	return b.offset(idx...)
}

// offset computes an element offset without bounds checks.
func (b *RawBlock) offset(idx ...int) int {
	switch b.header.Rank {
	case 1:
		return idx[0]
	case 2:
		return b.offset2(idx[0], idx[1])
	default:
		lead, mid := b.layout.physical(idx[0], idx[1])
		return b.mid[b.lead[lead]+mid] + idx[2]
	}
}

// offset2 is offset for rank-2 blocks.
func (b *RawBlock) offset2(col, row int) int {
	lead, inner := b.layout.physical(col, row)
	return b.lead[lead] + inner
}

// Element returns the bytes of the element at the 1-based position idx.
func (b *RawBlock) Element(idx ...int) []byte {
	size := b.ElemSize()
	off := b.Offset(idx...) * size
	return b.data[off : off+size]
}

// Fibre returns the bytes of the depth fibre (col, row) of a rank-3 block:
// depths consecutive elements starting at depth 1.
func (b *RawBlock) Fibre(col, row int) []byte {
	if b.header.Rank != 3 {
		panic(fmt.Sprintf("tensor: Fibre on rank %d container", b.header.Rank))
	}
	if b.header.Depths() == 0 {
		return nil
	}
	b.Offset(col, row, 1)
	size := b.ElemSize()
	lead, mid := b.layout.physical(col, row)
	start := (b.mid[b.lead[lead]+mid] + 1) * size
	return b.data[start : start+b.header.Depths()*size]
}

// Release hands the payload back to the allocator. A second call returns
// ErrNullPointer and frees nothing.
func (b *RawBlock) Release() error {
	if b.Released() {
		return nullError("Release")
	}
	Logger().Debug("release",
		zap.Stringer("kind", b.kind),
		zap.Stringer("shape", b.header),
		zap.Int("bytes", len(b.data)))
	b.alloc.Free(b.data)
	unreserveIndex(b.alloc, b.index)
	b.data, b.lead, b.mid = nil, nil, nil
	b.index = 0
	b.released = true
	return nil
}

// reshape1 changes the length of a rank-1 block to n, reallocating through
// the block's allocator when capacity is short. New slots are zero.
func (b *RawBlock) reshape1(op string, n int) error {
	if n < 0 {
		return dimensionError(op, fmt.Sprintf("negative length %d", n), b.header)
	}
	old := b.header.Columns()
	if n <= b.Capacity() {
		if n < old {
			clear(b.data[(n+1)*b.ElemSize() : (old+1)*b.ElemSize()])
		}
		b.header.Extents[AxisColumns] = n
		return nil
	}

	capacity := max(n, 2*b.Capacity(), 4)
	size, err := AllocationSize(b.kind, capacity)
	if err != nil {
		return err
	}
	data, err := allocate(b.alloc, op, size)
	if err != nil {
		return err
	}
	copy(data, b.data[:(old+1)*b.ElemSize()])
	b.alloc.Free(b.data)

	Logger().Debug("grow",
		zap.String("op", op),
		zap.Int("length", n),
		zap.Int("capacity", capacity))
	b.data = data
	b.header.Extents[AxisColumns] = n
	return nil
}

// moveTo transfers ownership of the payload to a fresh RawBlock and leaves b
// released, so the old handle can no longer reach the memory.
func (b *RawBlock) moveTo() *RawBlock {
	nb := *b
	b.data, b.lead, b.mid = nil, nil, nil
	b.index = 0
	b.released = true
	return &nb
}

// clone allocates a new block with the same header, kind and layout and
// copies the payload into it.
func (b *RawBlock) clone(op string) (*RawBlock, error) {
	nb, err := newRawBlock(op, b.kind, b.layout, b.alloc, 0, b.header.Extents[:b.header.Rank]...)
	if err != nil {
		return nil, err
	}
	copy(nb.data, b.Bytes())
	return nb, nil
}

// view reinterprets the whole payload as a []T, sentinel slots included.
func view[T DType](b *RawBlock) []T {
	if b.Released() || len(b.data) == 0 {
		return nil
	}
	n := len(b.data) / sizeOf[T]()
	//nolint:gosec // unsafe.Slice for zero-copy access, length bounded by the allocation
	return unsafe.Slice((*T)(unsafe.Pointer(&b.data[0])), n)
}

func sizeOf[T DType]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
