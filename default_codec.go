package apexJSON

import "time"

// DefaultCodec resolves the canonical codec for a scalar Go type T via a
// runtime type switch on T's zero value. This is the Go realization of the
// spec's default-codec template specialization: C++ picks the
// default_codec_t specialization for T at compile time; Go generics cannot
// specialize a generic function body per instantiation, so the equivalent
// dispatch happens at run time, in the type switch below, on every call to
// DefaultCodec[T]; the result is not cached. Composite types (pointers,
// slices, maps) are not resolved here; construct those explicitly with
// Nullable, Slice, and Map, composing over another DefaultCodec[T] call or a
// hand-built codec, the same way the teacher's composite marshal paths
// compose over scalar ones.
func DefaultCodec[T any]() Codec[T] {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(String()).(Codec[T])
	case bool:
		return any(Bool()).(Codec[T])
	case int:
		return any(Number[int]()).(Codec[T])
	case int8:
		return any(Number[int8]()).(Codec[T])
	case int16:
		return any(Number[int16]()).(Codec[T])
	case int32:
		return any(Number[int32]()).(Codec[T])
	case int64:
		return any(Number[int64]()).(Codec[T])
	case uint:
		return any(Number[uint]()).(Codec[T])
	case uint8:
		return any(Number[uint8]()).(Codec[T])
	case uint16:
		return any(Number[uint16]()).(Codec[T])
	case uint32:
		return any(Number[uint32]()).(Codec[T])
	case uint64:
		return any(Number[uint64]()).(Codec[T])
	case float32:
		return any(Number[float32]()).(Codec[T])
	case float64:
		return any(Number[float64]()).(Codec[T])
	case time.Time:
		return any(Time()).(Codec[T])
	case time.Duration:
		return any(Duration()).(Codec[T])
	default:
		panic("apexJSON: no default codec for this type; construct one explicitly")
	}
}
