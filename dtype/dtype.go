// Package dtype defines the logical element types of columnar data and the
// native-width classification used to dispatch width-generic kernels.
package dtype

import "fmt"

// Type identifies the logical element type of a column.
type Type int

const (
	// Invalid is the zero value and not a usable element type.
	Invalid Type = iota
	// Boolean is a bit-packed true/false value. It has no fixed native
	// byte width and is not reinterpretable.
	Boolean
	// Int8 is a signed 8-bit integer.
	Int8
	// Int16 is a signed 16-bit integer.
	Int16
	// Int32 is a signed 32-bit integer.
	Int32
	// Int64 is a signed 64-bit integer.
	Int64
	// Uint8 is an unsigned 8-bit integer.
	Uint8
	// Uint16 is an unsigned 16-bit integer.
	Uint16
	// Uint32 is an unsigned 32-bit integer.
	Uint32
	// Uint64 is an unsigned 64-bit integer.
	Uint64
	// Float32 is an IEEE 754 single-precision float.
	Float32
	// Float64 is an IEEE 754 double-precision float.
	Float64
	// Date32 is a temporal value counting days since the Unix epoch,
	// stored as a 32-bit integer.
	Date32
	// Date64 is a temporal value counting milliseconds since the Unix
	// epoch, stored as a 64-bit integer.
	Date64
)

var typeNames = map[Type]string{
	Invalid: "invalid",
	Boolean: "boolean",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	Date32:  "date32",
	Date64:  "date64",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Width returns the native storage width of one element in bytes, or 0 for
// types without a fixed byte width (Boolean, Invalid).
func (t Type) Width() int {
	switch t {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32, Date32:
		return 4
	case Int64, Uint64, Float64, Date64:
		return 8
	default:
		return 0
	}
}

// IsWide reports whether the type's native width is exactly 8 bytes, making
// it eligible for the 64-bit bit-pattern conversion.
func (t Type) IsWide() bool { return t.Width() == 8 }

// IsNarrow reports whether the type's native width is exactly 4 bytes,
// making it eligible for the 32-bit bit-pattern conversion.
func (t Type) IsNarrow() bool { return t.Width() == 4 }

// IsNumeric reports whether the type is a fixed-width numeric or temporal
// scalar type.
func (t Type) IsNumeric() bool { return t.Width() > 0 }

// IsSigned reports whether the type is a signed integer or temporal type.
// Temporal values are signed counters relative to the epoch.
func (t Type) IsSigned() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Date32, Date64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the type is a floating-point type.
func (t Type) IsFloat() bool { return t == Float32 || t == Float64 }

// BitPatternType returns the unsigned integer type of the same native width,
// or Invalid when the width is not 4 or 8 bytes.
func (t Type) BitPatternType() Type {
	switch t.Width() {
	case 8:
		return Uint64
	case 4:
		return Uint32
	default:
		return Invalid
	}
}
