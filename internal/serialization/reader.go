package serialization

import (
	"encoding/binary"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/born-ml/simutil/internal/tensor"
)

// ReadBlock reads a container of the given rank and element kind from r and
// builds it with opts. On any failure the partially filled block is released
// and nil is returned. The block takes opts.Layout as given, so Options{}
// loads column-major; pass tensor.DefaultOptions() for the process default.
//
// r is read exactly as far as the block extends, so several blocks can be
// read back to back from one stream.
func ReadBlock(r io.Reader, rank int, kind tensor.Kind, opts tensor.Options) (*tensor.RawBlock, error) {
	return readBlock("ReadBlock", r, rank, kind, opts)
}

//nolint:gocyclo,cyclop // one traversal per rank
func readBlock(op string, r io.Reader, rank int, kind tensor.Kind, opts tensor.Options) (*tensor.RawBlock, error) {
	if rank < RankVector || rank > RankTensor {
		return nil, fmt.Errorf("%s: %w: %d", op, ErrInvalidRank, rank)
	}

	fields := dimFields(rank)
	dims := make([]int, len(fields))
	var word [DimSize]byte
	for i, field := range fields {
		if _, err := io.ReadFull(r, word[:]); err != nil {
			return nil, readError(op, field, err)
		}
		dims[i] = int(binary.LittleEndian.Uint32(word[:]))
	}

	b, err := tensor.NewRawBlock(kind, opts.Layout, opts.Allocator, extentsOf(rank, dims)...)
	if err != nil {
		return nil, err
	}
	if err := readPayload(op, r, b); err != nil {
		_ = b.Release()
		return nil, err
	}

	tensor.Logger().Debug("loaded",
		zap.String("op", op),
		zap.Stringer("kind", kind),
		zap.Stringer("shape", b.Header()),
		zap.Stringer("layout", b.Layout()))
	return b, nil
}

func readPayload(op string, r io.Reader, b *tensor.RawBlock) error {
	h := b.Header()
	size := b.ElemSize()
	switch h.Rank {
	case RankVector:
		elems := b.Bytes()[size : (h.Columns()+1)*size]
		if _, err := io.ReadFull(r, elems); err != nil {
			return readError(op, "elements", err)
		}
		swapElems(elems, size)
	case RankMatrix:
		row := make([]byte, h.Columns()*size)
		for rr := 1; rr <= h.Rows(); rr++ {
			if _, err := io.ReadFull(r, row); err != nil {
				return readError(op, fmt.Sprintf("row %d", rr), err)
			}
			swapElems(row, size)
			for c := 1; c <= h.Columns(); c++ {
				copy(b.Element(c, rr), row[(c-1)*size:c*size])
			}
		}
	case RankTensor:
		for c := 1; c <= h.Columns(); c++ {
			for rr := 1; rr <= h.Rows(); rr++ {
				fibre := b.Fibre(c, rr)
				if _, err := io.ReadFull(r, fibre); err != nil {
					return readError(op, fmt.Sprintf("fibre [%d, %d]", c, rr), err)
				}
				swapElems(fibre, size)
			}
		}
	}
	return nil
}

// LoadVector reads a vector of element type T from r.
func LoadVector[T tensor.DType](r io.Reader, opts tensor.Options) (*tensor.Vector[T], error) {
	b, err := readBlock("LoadVector", r, RankVector, tensor.KindOf[T](), opts)
	if err != nil {
		return nil, err
	}
	return tensor.VectorFromRaw[T](b, opts)
}

// LoadMatrix reads a matrix of element type T from r.
func LoadMatrix[T tensor.DType](r io.Reader, opts tensor.Options) (*tensor.Matrix[T], error) {
	b, err := readBlock("LoadMatrix", r, RankMatrix, tensor.KindOf[T](), opts)
	if err != nil {
		return nil, err
	}
	return tensor.MatrixFromRaw[T](b, opts)
}

// LoadTensor reads a tensor of element type T from r.
func LoadTensor[T tensor.DType](r io.Reader, opts tensor.Options) (*tensor.Tensor[T], error) {
	b, err := readBlock("LoadTensor", r, RankTensor, tensor.KindOf[T](), opts)
	if err != nil {
		return nil, err
	}
	return tensor.TensorFromRaw[T](b, opts)
}
