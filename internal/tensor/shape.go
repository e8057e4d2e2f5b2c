package tensor

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// MaxRank is the highest number of axes a container can have.
const MaxRank = 3

// Axis names, in header order.
const (
	AxisColumns = iota
	AxisRows
	AxisDepths
)

// Header is the shape record of a container: one extent per axis, ordered
// columns, rows, depths. A Vector uses only the first slot.
type Header struct {
	Rank    int
	Extents [MaxRank]int
}

// NewHeader builds a header from the given extents.
func NewHeader(extents ...int) (Header, error) {
	if len(extents) == 0 || len(extents) > MaxRank {
		return Header{}, fmt.Errorf("invalid rank %d (must be 1..%d)", len(extents), MaxRank)
	}
	h := Header{Rank: len(extents)}
	for i, e := range extents {
		if e < 0 {
			return Header{}, fmt.Errorf("invalid extent at axis %d: %d (must be >= 0)", i, e)
		}
		h.Extents[i] = e
	}
	return h, nil
}

// Columns returns the first extent.
func (h Header) Columns() int { return h.Extents[AxisColumns] }

// Rows returns the second extent (0 for a Vector).
func (h Header) Rows() int { return h.Extents[AxisRows] }

// Depths returns the third extent (0 below rank 3).
func (h Header) Depths() int { return h.Extents[AxisDepths] }

// NumElements returns the number of addressable elements (sentinels excluded).
func (h Header) NumElements() int {
	n := 1
	for i := 0; i < h.Rank; i++ {
		n *= h.Extents[i]
	}
	return n
}

// NumSlots returns the number of payload slots, one sentinel per axis included.
func (h Header) NumSlots() int {
	n := 1
	for i := 0; i < h.Rank; i++ {
		n *= h.Extents[i] + 1
	}
	return n
}

// Equal checks if two headers describe the same shape.
func (h Header) Equal(other Header) bool {
	return h == other
}

// Fits reports whether every extent of h is <= the matching extent of outer.
func (h Header) Fits(outer Header) bool {
	if h.Rank != outer.Rank {
		return false
	}
	for i := 0; i < h.Rank; i++ {
		if h.Extents[i] > outer.Extents[i] {
			return false
		}
	}
	return true
}

// String renders the header as [c, r, d].
func (h Header) String() string {
	parts := make([]string, h.Rank)
	for i := 0; i < h.Rank; i++ {
		parts[i] = fmt.Sprint(h.Extents[i])
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Layout selects the storage order of a container's payload.
type Layout int

// Supported layouts.
const (
	// ColumnMajor keeps each column contiguous; the index table runs over columns.
	ColumnMajor Layout = iota
	// RowMajor keeps each row contiguous; the index table runs over rows.
	RowMajor
)

// String returns a human-readable layout name.
func (l Layout) String() string {
	switch l {
	case ColumnMajor:
		return "column-major"
	case RowMajor:
		return "row-major"
	default:
		return "unknown"
	}
}

// ParseLayout accepts "column", "column-major", "row" and "row-major".
func ParseLayout(s string) (Layout, bool) {
	switch s {
	case "column", "column-major", "col":
		return ColumnMajor, true
	case "row", "row-major":
		return RowMajor, true
	default:
		return 0, false
	}
}

var defaultLayout atomic.Int32

// DefaultLayout returns the process-wide layout DefaultOptions starts from.
func DefaultLayout() Layout {
	return Layout(defaultLayout.Load())
}

// SetDefaultLayout changes the process-wide default layout. Containers that
// already exist keep the layout they were built with.
func SetDefaultLayout(l Layout) {
	defaultLayout.Store(int32(l))
}

// physical maps logical (column, row) coordinates to (leading, inner) storage
// coordinates for the layout.
func (l Layout) physical(col, row int) (int, int) {
	if l == RowMajor {
		return row, col
	}
	return col, row
}
