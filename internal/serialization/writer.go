package serialization

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/born-ml/simutil/internal/tensor"
)

// WriteBlock writes b to w: the dimension fields of its rank, then every live
// element in logical order.
func WriteBlock(w io.Writer, b *tensor.RawBlock) error {
	return writeBlock("WriteBlock", w, b)
}

//nolint:gocyclo,cyclop // one traversal per rank
func writeBlock(op string, w io.Writer, b *tensor.RawBlock) error {
	if b.Released() {
		return nullError(op)
	}
	h := b.Header()
	fields := dimFields(h.Rank)
	dims := streamDims(h)

	head := make([]byte, 0, len(dims)*DimSize)
	for i, n := range dims {
		if err := checkDim(fields[i], n); err != nil {
			return err
		}
		//nolint:gosec // G115: bounded by checkDim
		head = binary.LittleEndian.AppendUint32(head, uint32(n))
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(head); err != nil {
		return writeError(fields[0], err)
	}

	size := b.ElemSize()
	switch h.Rank {
	case RankVector:
		n := h.Columns()
		buf := make([]byte, n*size)
		copy(buf, b.Bytes()[size:(n+1)*size])
		swapElems(buf, size)
		if _, err := bw.Write(buf); err != nil {
			return writeError("elements", err)
		}
	case RankMatrix:
		row := make([]byte, h.Columns()*size)
		for r := 1; r <= h.Rows(); r++ {
			for c := 1; c <= h.Columns(); c++ {
				copy(row[(c-1)*size:], b.Element(c, r))
			}
			swapElems(row, size)
			if _, err := bw.Write(row); err != nil {
				return writeError(fmt.Sprintf("row %d", r), err)
			}
		}
	case RankTensor:
		fibre := make([]byte, h.Depths()*size)
		for c := 1; c <= h.Columns(); c++ {
			for r := 1; r <= h.Rows(); r++ {
				copy(fibre, b.Fibre(c, r))
				swapElems(fibre, size)
				if _, err := bw.Write(fibre); err != nil {
					return writeError(fmt.Sprintf("fibre [%d, %d]", c, r), err)
				}
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return writeError("elements", err)
	}
	tensor.Logger().Debug("saved",
		zap.String("op", op),
		zap.Stringer("kind", b.Kind()),
		zap.Stringer("shape", h))
	return nil
}

// SaveVector writes v to w.
func SaveVector[T tensor.DType](w io.Writer, v *tensor.Vector[T]) error {
	if v == nil {
		return nullError("SaveVector")
	}
	return writeBlock("SaveVector", w, v.Raw())
}

// SaveMatrix writes m to w.
func SaveMatrix[T tensor.DType](w io.Writer, m *tensor.Matrix[T]) error {
	if m == nil {
		return nullError("SaveMatrix")
	}
	return writeBlock("SaveMatrix", w, m.Raw())
}

// SaveTensor writes t to w.
func SaveTensor[T tensor.DType](w io.Writer, t *tensor.Tensor[T]) error {
	if t == nil {
		return nullError("SaveTensor")
	}
	return writeBlock("SaveTensor", w, t.Raw())
}
