package serialization

import (
	"errors"
	"fmt"
	"io"

	"github.com/born-ml/simutil/internal/tensor"
)

// ErrInvalidRank is returned when a load asks for a rank other than 1, 2 or 3.
var ErrInvalidRank = errors.New("invalid container rank")

// FieldError names the part of the stream that could not be read or written:
// "length", "rows", "columns", "depths", "elements", "row 3", "fibre [2, 1]".
type FieldError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// readError wraps a failed read of field. Every read failure, EOF included,
// is reported as truncated data.
func readError(op, field string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &FieldError{Field: field, Err: tensor.TruncatedError(op, field, err)}
}

func writeError(field string, err error) error {
	return &FieldError{Field: field, Err: fmt.Errorf("write: %w", err)}
}

func nullError(op string) error {
	return &tensor.Error{Kind: tensor.KindNullPointer, Op: op, Detail: "received nil or released container"}
}
