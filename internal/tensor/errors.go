package tensor

import (
	"strconv"
	"strings"
)

// ErrorKind categorizes container errors.
type ErrorKind string

// Error kinds.
const (
	KindAllocationFailure      ErrorKind = "allocation_failure"
	KindDimensionMismatch      ErrorKind = "dimension_mismatch"
	KindUnsupportedElementType ErrorKind = "unsupported_element_type"
	KindNullPointer            ErrorKind = "null_pointer"
	KindTruncatedData          ErrorKind = "truncated_data"
	KindInvalidOperator        ErrorKind = "invalid_operator"
)

// Sentinel errors, one per kind. errors.Is matches any *Error of the same kind.
var (
	ErrAllocationFailure      = &Error{Kind: KindAllocationFailure}
	ErrDimensionMismatch      = &Error{Kind: KindDimensionMismatch}
	ErrUnsupportedElementType = &Error{Kind: KindUnsupportedElementType}
	ErrNullPointer            = &Error{Kind: KindNullPointer}
	ErrTruncatedData          = &Error{Kind: KindTruncatedData}
	ErrInvalidOperator        = &Error{Kind: KindInvalidOperator}
)

// Error is the structured error returned by container operations.
type Error struct {
	Cause  error
	Kind   ErrorKind
	Op     string   // operation that failed, e.g. "Matrix.Apply"
	Shapes []Header // conflicting shapes, for dimension errors
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Kind))
	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if len(e.Shapes) > 0 {
		b.WriteString(": shapes ")
		for i, s := range e.Shapes {
			if i > 0 {
				b.WriteString(" vs ")
			}
			b.WriteString(s.String())
		}
	}

	if e.Detail != "" {
		if len(e.Shapes) > 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func newError(kind ErrorKind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

func dimensionError(op, detail string, shapes ...Header) *Error {
	return &Error{Kind: KindDimensionMismatch, Op: op, Shapes: shapes, Detail: detail}
}

func kindError(op string, got, want Kind) *Error {
	return newError(KindUnsupportedElementType, op, "block holds "+got.String()+", want "+want.String())
}

func nullError(op string) *Error {
	return &Error{Kind: KindNullPointer, Op: op, Detail: "received nil or released container"}
}

// AllocationError reports a failed allocation of size bytes.
func AllocationError(op string, size int, cause error) *Error {
	e := &Error{Kind: KindAllocationFailure, Op: op, Cause: cause}
	if size > 0 {
		e.Detail = "could not obtain " + strconv.Itoa(size) + " bytes"
	}
	return e
}

// TruncatedError reports a short read of the named field.
func TruncatedError(op, field string, cause error) *Error {
	return &Error{Kind: KindTruncatedData, Op: op, Detail: "short read of " + field, Cause: cause}
}
