package serialization

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/born-ml/simutil/internal/tensor"
)

// Container ranks accepted by ReadBlock.
const (
	RankVector = 1
	RankMatrix = 2
	RankTensor = 3
)

// DimSize is the byte size of one dimension field.
const DimSize = 4

// zstdMagic opens every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// RankName returns "vector", "matrix" or "tensor".
func RankName(rank int) string {
	switch rank {
	case RankVector:
		return "vector"
	case RankMatrix:
		return "matrix"
	case RankTensor:
		return "tensor"
	default:
		return fmt.Sprintf("rank(%d)", rank)
	}
}

// ParseRank converts a container name back to its rank.
func ParseRank(s string) (int, bool) {
	for rank := RankVector; rank <= RankTensor; rank++ {
		if RankName(rank) == s {
			return rank, true
		}
	}
	return 0, false
}

// dimFields lists the header fields of a rank in stream order.
func dimFields(rank int) []string {
	switch rank {
	case RankVector:
		return []string{"length"}
	case RankMatrix:
		return []string{"rows", "columns"}
	default:
		return []string{"rows", "columns", "depths"}
	}
}

// streamDims returns the header values in stream order.
func streamDims(h tensor.Header) []int {
	switch h.Rank {
	case RankVector:
		return []int{h.Columns()}
	case RankMatrix:
		return []int{h.Rows(), h.Columns()}
	default:
		return []int{h.Rows(), h.Columns(), h.Depths()}
	}
}

// extentsOf converts stream-order dims to (columns, rows, depths) extents.
func extentsOf(rank int, dims []int) []int {
	switch rank {
	case RankVector:
		return []int{dims[0]}
	case RankMatrix:
		return []int{dims[1], dims[0]}
	default:
		return []int{dims[1], dims[0], dims[2]}
	}
}

func checkDim(field string, n int) error {
	if uint64(n) > math.MaxUint32 {
		return &tensor.Error{Kind: tensor.KindDimensionMismatch, Op: "WriteBlock",
			Detail: fmt.Sprintf("%s %d does not fit in %d bytes", field, n, DimSize)}
	}
	return nil
}

var hostLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// swapElems converts a run of size-byte elements between host order and
// little-endian, in place. It is a no-op on little-endian hosts.
func swapElems(buf []byte, size int) {
	if hostLittleEndian || size == 1 {
		return
	}
	for i := 0; i+size <= len(buf); i += size {
		slices.Reverse(buf[i : i+size])
	}
}
