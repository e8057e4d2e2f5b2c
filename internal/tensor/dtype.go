// Package tensor provides the contiguous container types (Vector, Matrix,
// Tensor) and the allocation, dispatch and element-operation machinery
// underneath them.
package tensor

// DType is a constraint for supported element types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Kind is the runtime element type tag carried by every container.
type Kind int

// Supported element kinds.
const (
	Int8 Kind = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	// Float128 is the extended-precision float (80 bits padded to 16 bytes).
	// Blocks of this kind can be allocated and persisted but not formatted.
	Float128
)

// Size returns the byte size of one element of the kind.
func (k Kind) Size() int {
	switch k {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	case Float128:
		return 16
	default:
		return 0
	}
}

// Valid reports whether k is one of the enumerated kinds.
func (k Kind) Valid() bool {
	return k >= Int8 && k <= Float128
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64 || k == Float128
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Float128:
		return "float128"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind name (as produced by Kind.String) back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k := Int8; k <= Float128; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// KindOf returns the Kind tag of the static element type T.
func KindOf[T DType]() Kind {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	}
	return kindBySize[T]()
}

// kindBySize resolves named types (~T) that the type switch above misses.
func kindBySize[T DType]() Kind {
	var zero T
	one := T(1)
	half := one / 2
	float := half != zero
	neg := zero - one
	signed := neg < zero
	switch sizeOf[T]() {
	case 1:
		if signed {
			return Int8
		}
		return Uint8
	case 2:
		if signed {
			return Int16
		}
		return Uint16
	case 4:
		if float {
			return Float32
		}
		if signed {
			return Int32
		}
		return Uint32
	default:
		if float {
			return Float64
		}
		if signed {
			return Int64
		}
		return Uint64
	}
}
