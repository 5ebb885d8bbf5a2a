package dtype

// Element is the constraint satisfied by Go representations of fixed-width
// column elements.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Of returns the logical type corresponding to the Go element type T.
// Temporal types have no distinct Go representation; build them through a
// typed constructor that tags the chunk with Date32/Date64 explicitly.
func Of[T Element]() Type {
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
	default:
		return Invalid
	}
}
