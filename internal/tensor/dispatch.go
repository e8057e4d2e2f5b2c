package tensor

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Dereferencer reads one element from its raw bytes.
type Dereferencer func(elem []byte) any

// Formatter renders a dereferenced element.
type Formatter func(v any, style Style) string

// ElementCodec is the (formatter, dereferencer) pair resolved for a Kind.
type ElementCodec struct {
	Kind   Kind
	Format Formatter
	Deref  Dereferencer
}

// FormatElement dereferences and formats one element.
func (c ElementCodec) FormatElement(elem []byte, style Style) string {
	return c.Format(c.Deref(elem), style)
}

func verbs(pretty, plain string) Formatter {
	return func(v any, style Style) string {
		if style == StyleBracketed {
			return fmt.Sprintf(pretty, v)
		}
		return fmt.Sprintf(plain, v)
	}
}

var (
	floatFormat = verbs("%6.3f", "%.3f")
	intFormat   = verbs("%3d", "%d")
)

// Payload bytes are in host order; the dereferencers read them through
// binary.NativeEndian.
var codecs = map[Kind]ElementCodec{
	Int8: {Kind: Int8, Format: intFormat, Deref: func(b []byte) any {
		return int8(b[0])
	}},
	Int16: {Kind: Int16, Format: intFormat, Deref: func(b []byte) any {
		return int16(binary.NativeEndian.Uint16(b))
	}},
	Int32: {Kind: Int32, Format: intFormat, Deref: func(b []byte) any {
		return int32(binary.NativeEndian.Uint32(b))
	}},
	Int64: {Kind: Int64, Format: intFormat, Deref: func(b []byte) any {
		return int64(binary.NativeEndian.Uint64(b))
	}},
	Uint8: {Kind: Uint8, Format: intFormat, Deref: func(b []byte) any {
		return b[0]
	}},
	Uint16: {Kind: Uint16, Format: intFormat, Deref: func(b []byte) any {
		return binary.NativeEndian.Uint16(b)
	}},
	Uint32: {Kind: Uint32, Format: intFormat, Deref: func(b []byte) any {
		return binary.NativeEndian.Uint32(b)
	}},
	Uint64: {Kind: Uint64, Format: intFormat, Deref: func(b []byte) any {
		return binary.NativeEndian.Uint64(b)
	}},
	Float32: {Kind: Float32, Format: floatFormat, Deref: func(b []byte) any {
		return math.Float32frombits(binary.NativeEndian.Uint32(b))
	}},
	Float64: {Kind: Float64, Format: floatFormat, Deref: func(b []byte) any {
		return math.Float64frombits(binary.NativeEndian.Uint64(b))
	}},
}

// Lookup resolves the codec for kind. Kinds without an entry (Float128)
// return ErrUnsupportedElementType.
func Lookup(kind Kind) (ElementCodec, error) {
	c, ok := codecs[kind]
	if !ok {
		return ElementCodec{}, newError(KindUnsupportedElementType, "Lookup",
			fmt.Sprintf("no formatter for %s (%d-byte elements)", kind, kind.Size()))
	}
	return c, nil
}
