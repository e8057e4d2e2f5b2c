// Package serialization saves and loads Vector, Matrix and Tensor containers
// in a compact little-endian binary format.
//
// The format carries no type tag; the caller names the element kind on load:
//
//	Vector:  [uint32 length]                               [length elements]
//	Matrix:  [uint32 rows][uint32 columns]                 [elements, row by row]
//	Tensor:  [uint32 rows][uint32 columns][uint32 depths]  [elements, column, row, depth]
//
// Elements are written in logical order regardless of the storage layout, so
// a file written from a ColumnMajor matrix loads into a RowMajor one. Sentinel
// slots are never written. That includes the depth sentinel, so each tensor
// fibre takes exactly depths elements, not depths+1.
//
// SaveFile and LoadFile add optional zstd compression; LoadFile recognizes a
// compressed file by its frame magic.
//
// Example usage:
//
//	m, _ := tensor.MatrixFromArray([][]float64{{2, 3}, {1, 1}}, tensor.DefaultOptions())
//	var buf bytes.Buffer
//	if err := serialization.SaveMatrix(&buf, m); err != nil {
//	    log.Fatal(err)
//	}
//	loaded, err := serialization.LoadMatrix[float64](&buf, tensor.DefaultOptions())
package serialization
